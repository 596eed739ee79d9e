package outreach

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cadencehq/cadence/internal/analyses"
	"github.com/cadencehq/cadence/internal/conversations"
	"github.com/cadencehq/cadence/internal/prospects"
	"github.com/google/uuid"
)

// DueSoonWindow is the look-ahead for the "due soon" bucket.
const DueSoonWindow = 72 * time.Hour

// Bundle is everything the engine needs to evaluate one conversation.
// Analysis is nil when the conversation has never been classified.
type Bundle struct {
	Conversation conversations.Conversation
	Prospect     prospects.Prospect
	Messages     []conversations.Message
	Analysis     *analyses.Analysis
}

// Source supplies the bundles for every non-terminal conversation.
type Source interface {
	ActiveBundles(ctx context.Context) ([]Bundle, error)
}

// Entry is one ranked contact in the report, denormalized so the list
// is actionable without further lookups.
type Entry struct {
	ConversationID uuid.UUID `json:"conversation_id"`
	ProspectID     uuid.UUID `json:"prospect_id"`
	Name           string    `json:"name"`
	Company        string    `json:"company"`
	JobTitle       string    `json:"job_title"`
	Sequence       string    `json:"sequence"`
	StepIndex      int       `json:"step_index"`
	Tactic         string    `json:"tactic"`
	Style          Style     `json:"style"`
	Priority       int       `json:"priority"`
	DueAt          time.Time `json:"due_at,omitzero"`
	Overdue        bool      `json:"overdue"`
	Replied        bool      `json:"replied"`
	Timing         string    `json:"timing"`
	Reason         string    `json:"reason"`
}

// Skip records why a conversation was excluded from every ranked bucket.
type Skip struct {
	ConversationID uuid.UUID `json:"conversation_id"`
	Reason         string    `json:"reason"`
}

// Summary counts the report's buckets.
type Summary struct {
	DueToday         int `json:"due_today"`
	DueSoon          int `json:"due_soon"`
	SequenceComplete int `json:"sequence_complete"`
	Skipped          int `json:"skipped"`
}

// Report is the output of one full evaluation pass.
type Report struct {
	GeneratedAt      time.Time `json:"generated_at"`
	Summary          Summary   `json:"summary"`
	DueToday         []Entry   `json:"due_today"`
	DueSoon          []Entry   `json:"due_soon"`
	SequenceComplete []Entry   `json:"sequence_complete"`
	Skipped          []Skip    `json:"skipped"`
}

type outcome struct {
	entry  *Entry
	skip   *Skip
	bucket string
}

// BuildContactList runs a full evaluation pass: fetch every active
// bundle, resolve and score each one in parallel, then reduce into
// buckets in input order so priority ties break by insertion order.
// A failed fetch fails the whole pass; per-item anomalies only skip
// that conversation.
func BuildContactList(
	ctx context.Context,
	source Source,
	catalog *Catalog,
	logger *slog.Logger,
	concurrency int,
	now time.Time,
) (*Report, error) {
	bundles, err := source.ActiveBundles(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceFailed, err)
	}

	outcomes := make([]outcome, len(bundles))

	eg, egCtx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		eg.SetLimit(concurrency)
	}

	for i, bundle := range bundles {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			outcomes[i] = evaluate(catalog, bundle, now)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	report := &Report{GeneratedAt: now}

	for i, o := range outcomes {
		switch {
		case o.skip != nil:
			report.Skipped = append(report.Skipped, *o.skip)
		case o.bucket == "due_today":
			report.DueToday = append(report.DueToday, *o.entry)
		case o.bucket == "due_soon":
			report.DueSoon = append(report.DueSoon, *o.entry)
		case o.bucket == "complete":
			report.SequenceComplete = append(report.SequenceComplete, *o.entry)
		default:
			logger.Warn("conversation produced no outcome",
				"conversation_id", bundles[i].Conversation.ID,
			)
		}
	}

	sortByPriority(report.DueToday)
	sortByPriority(report.DueSoon)

	report.Summary = Summary{
		DueToday:         len(report.DueToday),
		DueSoon:          len(report.DueSoon),
		SequenceComplete: len(report.SequenceComplete),
		Skipped:          len(report.Skipped),
	}

	logger.Info("contact list built",
		"due_today", report.Summary.DueToday,
		"due_soon", report.Summary.DueSoon,
		"sequence_complete", report.Summary.SequenceComplete,
		"skipped", report.Summary.Skipped,
	)

	return report, nil
}

// evaluate places one conversation in exactly one bucket or skips it
// with a recorded reason.
func evaluate(catalog *Catalog, bundle Bundle, now time.Time) outcome {
	conv := bundle.Conversation

	if conv.Status.Terminal() {
		return skip(conv.ID, fmt.Sprintf("conversation status is %s", conv.Status))
	}

	if len(bundle.Messages) == 0 {
		return skip(conv.ID, "no messages")
	}

	if bundle.Analysis != nil && bundle.Analysis.RecommendedAction == analyses.ActionIgnore {
		return skip(conv.ID, "analysis recommends ignore")
	}

	pos, err := ResolvePosition(catalog, bundle.Messages, bundle.Analysis, now)
	if err != nil {
		return skip(conv.ID, err.Error())
	}

	entry := buildEntry(bundle, pos, now)

	if pos.Complete {
		return outcome{entry: &entry, bucket: "complete"}
	}

	// Overdue/due/replied outrank the look-ahead window: an overdue
	// step never lands in due_soon even when its due date also falls
	// inside the window.
	if pos.Replied || pos.Overdue || pos.Due {
		return outcome{entry: &entry, bucket: "due_today"}
	}

	if pos.DueAt.Sub(now) <= DueSoonWindow {
		return outcome{entry: &entry, bucket: "due_soon"}
	}

	return skip(conv.ID, fmt.Sprintf(
		"not due until %s", pos.DueAt.Format(time.RFC3339),
	))
}

func buildEntry(bundle Bundle, pos Position, now time.Time) Entry {
	pattern := AnalyzeResponsePattern(bundle.Messages)
	timing := OptimalTiming(pattern, bundle.Analysis)
	priority := Score(bundle.Analysis, &bundle.Prospect, pos, now)

	entry := Entry{
		ConversationID: bundle.Conversation.ID,
		ProspectID:     bundle.Prospect.ID,
		Name:           bundle.Prospect.Name,
		Company:        bundle.Prospect.Company,
		JobTitle:       bundle.Prospect.JobTitle,
		Sequence:       pos.Sequence,
		StepIndex:      pos.StepIndex,
		Tactic:         pos.Step.Tactic,
		Style:          pos.Step.Style,
		Priority:       priority,
		DueAt:          pos.DueAt,
		Overdue:        pos.Overdue,
		Replied:        pos.Replied,
		Timing:         timing.Label,
		Reason:         reason(bundle, pos),
	}

	if pos.Complete {
		entry.Priority = 0
		entry.Timing = ""
	}

	return entry
}

func reason(bundle Bundle, pos Position) string {
	name := bundle.Prospect.Name
	if name == "" {
		name = "prospect"
	}

	days := int(pos.SinceLast.Hours() / 24)

	switch {
	case pos.Replied:
		return fmt.Sprintf("%s replied %dd ago; respond now", name, days)
	case pos.Complete:
		return fmt.Sprintf("%s sequence exhausted after step %d", pos.Sequence, pos.StepIndex)
	case pos.Overdue:
		return fmt.Sprintf("step %d of %s overdue; last message %dd ago",
			pos.StepIndex, pos.Sequence, days)
	case pos.Due:
		return fmt.Sprintf("step %d of %s due (%s)",
			pos.StepIndex, pos.Sequence, pos.Step.Tactic)
	default:
		return fmt.Sprintf("step %d of %s due %s",
			pos.StepIndex, pos.Sequence, pos.DueAt.Format("2006-01-02"))
	}
}

func skip(id uuid.UUID, why string) outcome {
	return outcome{skip: &Skip{ConversationID: id, Reason: why}}
}

func sortByPriority(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Priority > entries[j].Priority
	})
}
