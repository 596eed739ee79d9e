package outreach

import (
	"fmt"
	"sort"
	"time"

	"github.com/cadencehq/cadence/internal/analyses"
	"github.com/cadencehq/cadence/internal/conversations"
)

// GracePeriod is the buffer added to a step's delay before a due step
// is escalated to overdue.
const GracePeriod = 48 * time.Hour

// Position is the derived sequencing state of one conversation at one
// instant. It is recomputed from history on every pass and never
// persisted, so the stored state can never drift from reality.
type Position struct {
	Sequence      string        `json:"sequence"`
	StepIndex     int           `json:"step_index"`
	Step          Step          `json:"step"`
	Complete      bool          `json:"complete"`
	Replied       bool          `json:"replied"`
	Due           bool          `json:"due"`
	Overdue       bool          `json:"overdue"`
	DueAt         time.Time     `json:"due_at"`
	LastMessageAt time.Time     `json:"last_message_at"`
	SinceLast     time.Duration `json:"since_last"`
}

// ResolvePosition maps a conversation's message history and its current
// analysis (nil when unclassified) onto the applicable sequence and
// step. Pure: identical inputs and now always yield identical output.
func ResolvePosition(
	catalog *Catalog,
	messages []conversations.Message,
	analysis *analyses.Analysis,
	now time.Time,
) (Position, error) {
	if len(messages) == 0 {
		return Position{}, ErrNoMessages
	}

	sorted := make([]conversations.Message, len(messages))
	copy(sorted, messages)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SentAt.After(sorted[j].SentAt)
	})

	latest := sorted[0]
	replied := latest.Sender == conversations.SenderOther

	// Consecutive trailing self-messages are follow-ups already sent
	// without a reply; that count is the current step index.
	sent := 0
	for _, m := range sorted {
		if m.Sender != conversations.SenderSelf {
			break
		}
		sent++
	}

	name := selectSequence(replied, analysis)
	seq, ok := catalog.Sequence(name)
	if !ok {
		return Position{}, fmt.Errorf("%w: %q", ErrSequenceNotFound, name)
	}

	index := sent
	if replied {
		index = 0
	}

	pos := Position{
		Sequence:      name,
		Replied:       replied,
		LastMessageAt: latest.SentAt,
		SinceLast:     now.Sub(latest.SentAt),
	}

	if index >= len(seq.Steps) {
		// A finished sequence keeps reporting its final state rather
		// than indexing out of bounds.
		pos.Complete = true
		pos.StepIndex = len(seq.Steps) - 1
		pos.Step = seq.Steps[pos.StepIndex]
		return pos, nil
	}

	step := seq.Steps[index]
	pos.StepIndex = index
	pos.Step = step
	pos.DueAt = latest.SentAt.Add(step.Delay)
	pos.Due = !now.Before(pos.DueAt)
	pos.Overdue = pos.SinceLast > step.Delay+GracePeriod

	return pos, nil
}

// selectSequence applies the sequence precedence: a prospect reply
// beats everything, then tested-but-not-converted, then temperature.
// Unclassified conversations default to the cold sequence.
func selectSequence(replied bool, analysis *analyses.Analysis) string {
	if replied {
		return SequenceReplied
	}

	if analysis == nil {
		return SequenceCold
	}

	if analysis.HasTested && analysis.LeadStatus != analyses.LeadHot {
		return SequenceTested
	}

	switch analysis.LeadStatus {
	case analyses.LeadHot:
		return SequenceHot
	case analyses.LeadWarm:
		return SequenceWarm
	default:
		return SequenceCold
	}
}
