package outreach_test

import (
	"testing"
	"time"

	"github.com/cadencehq/cadence/internal/analyses"
	"github.com/cadencehq/cadence/internal/outreach"
	"github.com/cadencehq/cadence/internal/prospects"
)

// Fixed weekdays so the midweek bonus is under test control.
var (
	monday  = time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC)
	tuesday = time.Date(2025, 6, 17, 10, 0, 0, 0, time.UTC)
)

func prospect(jobTitle string) *prospects.Prospect {
	return &prospects.Prospect{Name: "Test Prospect", JobTitle: jobTitle}
}

func TestScoreBounds(t *testing.T) {
	t.Run("never exceeds 100", func(t *testing.T) {
		// Every term maxed: reply, perfect lead score, overdue,
		// primary role, first step, midweek.
		pos := outreach.Position{Replied: true, Overdue: true, Due: true, StepIndex: 0}
		analysis := &analyses.Analysis{LeadScore: 100}

		got := outreach.Score(analysis, prospect("Avocat fiscaliste"), pos, tuesday)
		if got != 100 {
			t.Errorf("saturated score: got %d, want 100", got)
		}
	})

	t.Run("never negative", func(t *testing.T) {
		pos := outreach.Position{StepIndex: 10}
		got := outreach.Score(nil, nil, pos, monday)
		if got < 0 || got > 100 {
			t.Errorf("score %d outside [0, 100]", got)
		}
	})
}

func TestScoreHotReplyOutranksWarmDueToday(t *testing.T) {
	reply := outreach.Position{Replied: true, Due: true, StepIndex: 0}
	hotReply := outreach.Score(
		&analyses.Analysis{LeadScore: 85, LeadStatus: analyses.LeadHot},
		prospect("Consultant"),
		reply,
		monday,
	)

	due := outreach.Position{Due: true, StepIndex: 1}
	warmDue := outreach.Score(
		&analyses.Analysis{LeadScore: 55, LeadStatus: analyses.LeadWarm},
		prospect("Consultant"),
		due,
		monday,
	)

	if hotReply <= warmDue {
		t.Errorf("hot reply (%d) should outrank warm due-today (%d)", hotReply, warmDue)
	}
}

func TestScoreOverdueBeatsDueToday(t *testing.T) {
	analysis := &analyses.Analysis{LeadScore: 50}

	overdue := outreach.Score(analysis, prospect("Consultant"),
		outreach.Position{Due: true, Overdue: true, StepIndex: 1}, monday)
	due := outreach.Score(analysis, prospect("Consultant"),
		outreach.Position{Due: true, StepIndex: 1}, monday)

	if overdue <= due {
		t.Errorf("overdue (%d) should outrank due-today (%d)", overdue, due)
	}
}

func TestScoreRoleBands(t *testing.T) {
	pos := outreach.Position{Due: true, StepIndex: 0}
	analysis := &analyses.Analysis{LeadScore: 50}

	score := func(title string) int {
		return outreach.Score(analysis, prospect(title), pos, monday)
	}

	base := score("Software Engineer")

	tests := []struct {
		name  string
		title string
		delta int
	}{
		{"avocat is primary", "Avocat en droit fiscal", 10},
		{"lawyer is primary", "Tax Lawyer", 10},
		{"expert is primary", "Expert-comptable", 10},
		{"director is secondary", "Tax Director", 5},
		{"head of tax is secondary", "Head of Tax EMEA", 5},
		{"unknown title is default", "Product Manager", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := score(tt.title); got != base+tt.delta {
				t.Errorf("%q: got %d, want %d", tt.title, got, base+tt.delta)
			}
		})
	}
}

func TestScoreStepDecay(t *testing.T) {
	analysis := &analyses.Analysis{LeadScore: 50}

	score := func(step int) int {
		return outreach.Score(analysis, prospect("Consultant"),
			outreach.Position{Due: true, StepIndex: step}, monday)
	}

	if diff := score(0) - score(1); diff != 4 {
		t.Errorf("step 0 vs 1: diff %d, want 4", diff)
	}
	if diff := score(2) - score(3); diff != 4 {
		t.Errorf("step 2 vs 3: diff %d, want 4", diff)
	}
	// Bonus floors at zero rather than penalizing late steps.
	if diff := score(3) - score(5); diff != 0 {
		t.Errorf("step 3 vs 5: diff %d, want 0", diff)
	}
}

func TestScoreMidweekBonus(t *testing.T) {
	pos := outreach.Position{Due: true, StepIndex: 0}
	analysis := &analyses.Analysis{LeadScore: 50}

	mon := outreach.Score(analysis, prospect("Consultant"), pos, monday)
	tue := outreach.Score(analysis, prospect("Consultant"), pos, tuesday)

	if tue-mon != 5 {
		t.Errorf("midweek bonus: got %d, want 5", tue-mon)
	}
}

func TestScoreNilAnalysisContributesZero(t *testing.T) {
	pos := outreach.Position{Due: true, StepIndex: 0}

	withNil := outreach.Score(nil, prospect("Consultant"), pos, monday)
	withZero := outreach.Score(&analyses.Analysis{LeadScore: 0}, prospect("Consultant"), pos, monday)

	if withNil != withZero {
		t.Errorf("nil analysis (%d) should equal zero lead score (%d)", withNil, withZero)
	}
}

func TestScoreLeadScoreWeight(t *testing.T) {
	pos := outreach.Position{Due: true, StepIndex: 0}

	low := outreach.Score(&analyses.Analysis{LeadScore: 0}, prospect("Consultant"), pos, monday)
	high := outreach.Score(&analyses.Analysis{LeadScore: 100}, prospect("Consultant"), pos, monday)

	if high-low != 40 {
		t.Errorf("lead score span: got %d, want 40", high-low)
	}
}
