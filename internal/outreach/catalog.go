// Package outreach implements the sequencing and prioritization engine
// for Cadence: the policy that decides, per conversation, which nurture
// sequence applies, which step is due, and how all due contacts rank
// into a single daily list.
package outreach

import (
	"fmt"
	"sort"
	"time"
)

// Sequence names.
const (
	SequenceHot     = "hot_lead"
	SequenceWarm    = "warm_lead"
	SequenceCold    = "cold_lead"
	SequenceTested  = "tested_not_converted"
	SequenceReplied = "replied"
)

// Style is the message-length guidance attached to a step.
type Style string

const (
	StyleUltraShort Style = "ultra_short"
	StyleShort      Style = "short"
	StyleMedium     Style = "medium"
	StyleLong       Style = "long"
)

// Step is one position within a sequence: how long to wait after the
// conversation's last message, what the touch is trying to achieve, and
// how the message should read.
type Step struct {
	Ordinal  int           `json:"ordinal"`
	Delay    time.Duration `json:"delay"`
	Tactic   string        `json:"tactic"`
	Style    Style         `json:"style"`
	Guidance string        `json:"guidance"`
}

// Sequence is a named, ordered multi-touch outreach program.
type Sequence struct {
	Name  string `json:"name"`
	Steps []Step `json:"steps"`
}

// Catalog holds every sequence definition. Built once at startup,
// immutable afterward, and passed explicitly to the resolver so tests
// can substitute alternates.
type Catalog struct {
	sequences map[string]Sequence
}

// NewCatalog builds a catalog from the given sequences, validating that
// each sequence is non-empty, ordinals are contiguous from zero, and
// step delays are monotonically non-decreasing.
func NewCatalog(sequences ...Sequence) (*Catalog, error) {
	m := make(map[string]Sequence, len(sequences))

	for _, seq := range sequences {
		if seq.Name == "" {
			return nil, fmt.Errorf("%w: unnamed sequence", ErrInvalidCatalog)
		}
		if len(seq.Steps) == 0 {
			return nil, fmt.Errorf("%w: sequence %q has no steps", ErrInvalidCatalog, seq.Name)
		}
		if _, exists := m[seq.Name]; exists {
			return nil, fmt.Errorf("%w: duplicate sequence %q", ErrInvalidCatalog, seq.Name)
		}

		for i, step := range seq.Steps {
			if step.Ordinal != i {
				return nil, fmt.Errorf(
					"%w: sequence %q step %d has ordinal %d",
					ErrInvalidCatalog, seq.Name, i, step.Ordinal,
				)
			}
			if i > 0 && step.Delay < seq.Steps[i-1].Delay {
				return nil, fmt.Errorf(
					"%w: sequence %q delays decrease at step %d",
					ErrInvalidCatalog, seq.Name, i,
				)
			}
		}

		m[seq.Name] = seq
	}

	return &Catalog{sequences: m}, nil
}

// Sequence returns the named sequence definition.
func (c *Catalog) Sequence(name string) (Sequence, bool) {
	seq, ok := c.sequences[name]
	return seq, ok
}

// Names returns all sequence names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.sequences))
	for name := range c.sequences {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultCatalog returns the production sequence definitions.
func DefaultCatalog() *Catalog {
	catalog, err := NewCatalog(
		Sequence{
			Name: SequenceHot,
			Steps: []Step{
				{
					Ordinal:  0,
					Delay:    0,
					Tactic:   "initial",
					Style:    StyleShort,
					Guidance: "Get an immediate test: concrete value, social proof, zero-friction ask.",
				},
				{
					Ordinal:  1,
					Delay:    48 * time.Hour,
					Tactic:   "follow_up_1",
					Style:    StyleMedium,
					Guidance: "Address likely objections: success story from a similar profile, sector-specific use case.",
				},
				{
					Ordinal:  2,
					Delay:    120 * time.Hour,
					Tactic:   "follow_up_2",
					Style:    StyleUltraShort,
					Guidance: "Final push with urgency: what they are missing, one direct question about their research pain.",
				},
			},
		},
		Sequence{
			Name: SequenceWarm,
			Steps: []Step{
				{
					Ordinal:  0,
					Delay:    0,
					Tactic:   "initial",
					Style:    StyleShort,
					Guidance: "Build interest and trust: educational value, soft social proof, low-pressure ask.",
				},
				{
					Ordinal:  1,
					Delay:    72 * time.Hour,
					Tactic:   "follow_up_1",
					Style:    StyleMedium,
					Guidance: "Provide concrete value: a relevant insight or a case study from their sector.",
				},
				{
					Ordinal:  2,
					Delay:    168 * time.Hour,
					Tactic:   "follow_up_2",
					Style:    StyleShort,
					Guidance: "Convert to a tester: time-sensitive opportunity or personalized demo offer.",
				},
			},
		},
		Sequence{
			Name: SequenceCold,
			Steps: []Step{
				{
					Ordinal:  0,
					Delay:    0,
					Tactic:   "initial",
					Style:    StyleMedium,
					Guidance: "Get on their radar: pure value with no ask, relevant industry insight.",
				},
				{
					Ordinal:  1,
					Delay:    336 * time.Hour,
					Tactic:   "follow_up_1",
					Style:    StyleLong,
					Guidance: "Build credibility: share a success story or an industry trend, very soft ask.",
				},
			},
		},
		Sequence{
			Name: SequenceTested,
			Steps: []Step{
				{
					Ordinal:  0,
					Delay:    24 * time.Hour,
					Tactic:   "feedback_request",
					Style:    StyleShort,
					Guidance: "Understand objections: ask for honest feedback, offer personalized onboarding.",
				},
				{
					Ordinal:  1,
					Delay:    120 * time.Hour,
					Tactic:   "objection_handler",
					Style:    StyleMedium,
					Guidance: "Overcome the specific objection: new capabilities or a success story addressing their concern.",
				},
			},
		},
		Sequence{
			Name: SequenceReplied,
			Steps: []Step{
				{
					Ordinal:  0,
					Delay:    0,
					Tactic:   "reply",
					Style:    StyleUltraShort,
					Guidance: "They wrote back: answer their message directly, keep momentum, no canned pitch.",
				},
			},
		},
	)
	if err != nil {
		// Definitions above are static; a validation failure is a programming error.
		panic(err)
	}
	return catalog
}
