package outreach_test

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/cadencehq/cadence/internal/analyses"
	"github.com/cadencehq/cadence/internal/conversations"
	"github.com/cadencehq/cadence/internal/outreach"
)

var resolveNow = time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC)

func hotAnalysis() *analyses.Analysis {
	return &analyses.Analysis{LeadStatus: analyses.LeadHot, LeadScore: 85}
}

func warmAnalysis() *analyses.Analysis {
	return &analyses.Analysis{LeadStatus: analyses.LeadWarm, LeadScore: 55}
}

func TestResolvePositionNoMessages(t *testing.T) {
	_, err := outreach.ResolvePosition(outreach.DefaultCatalog(), nil, nil, resolveNow)
	if !errors.Is(err, outreach.ErrNoMessages) {
		t.Fatalf("got %v, want ErrNoMessages", err)
	}
}

func TestResolvePositionReplyOverridesEverything(t *testing.T) {
	msgs := []conversations.Message{
		message(conversations.SenderSelf, resolveNow.Add(-72*time.Hour)),
		message(conversations.SenderOther, resolveNow.Add(-2*time.Hour)),
	}

	pos, err := outreach.ResolvePosition(outreach.DefaultCatalog(), msgs, hotAnalysis(), resolveNow)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if pos.Sequence != outreach.SequenceReplied {
		t.Errorf("sequence: got %s, want replied", pos.Sequence)
	}
	if pos.StepIndex != 0 {
		t.Errorf("step index: got %d, want 0", pos.StepIndex)
	}
	if !pos.Replied {
		t.Error("replied flag not set")
	}
	if !pos.Due {
		t.Error("a reply with zero delay should be due immediately")
	}
}

func TestResolvePositionTrailingSelfCount(t *testing.T) {
	// One reply followed by two unanswered follow-ups puts the
	// conversation at step 2 of its sequence.
	msgs := []conversations.Message{
		message(conversations.SenderOther, resolveNow.Add(-300*time.Hour)),
		message(conversations.SenderSelf, resolveNow.Add(-200*time.Hour)),
		message(conversations.SenderSelf, resolveNow.Add(-100*time.Hour)),
	}

	pos, err := outreach.ResolvePosition(outreach.DefaultCatalog(), msgs, warmAnalysis(), resolveNow)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if pos.Sequence != outreach.SequenceWarm {
		t.Errorf("sequence: got %s, want warm_lead", pos.Sequence)
	}
	if pos.StepIndex != 2 {
		t.Errorf("step index: got %d, want 2", pos.StepIndex)
	}
	if pos.Complete {
		t.Error("step 2 of 3 should not be complete")
	}
}

func TestResolvePositionSequenceExhausted(t *testing.T) {
	// Three unanswered follow-ups exhaust a three-step sequence.
	msgs := []conversations.Message{
		message(conversations.SenderOther, resolveNow.Add(-500*time.Hour)),
		message(conversations.SenderSelf, resolveNow.Add(-400*time.Hour)),
		message(conversations.SenderSelf, resolveNow.Add(-300*time.Hour)),
		message(conversations.SenderSelf, resolveNow.Add(-200*time.Hour)),
	}

	pos, err := outreach.ResolvePosition(outreach.DefaultCatalog(), msgs, hotAnalysis(), resolveNow)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if !pos.Complete {
		t.Fatal("expected complete sequence")
	}
	if pos.StepIndex != 2 {
		t.Errorf("step index: got %d, want 2 (clamped to final step)", pos.StepIndex)
	}
	if pos.Due || pos.Overdue {
		t.Error("a complete sequence is never due")
	}
}

func TestResolvePositionOverdueColdFollowUp(t *testing.T) {
	// Cold sequence step 1 has a 14-day delay. A follow-up sent 25 days
	// ago blew through delay plus grace, so the step is overdue.
	msgs := []conversations.Message{
		message(conversations.SenderOther, resolveNow.Add(-40*24*time.Hour)),
		message(conversations.SenderSelf, resolveNow.Add(-25*24*time.Hour)),
	}

	pos, err := outreach.ResolvePosition(outreach.DefaultCatalog(), msgs, nil, resolveNow)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if pos.Sequence != outreach.SequenceCold {
		t.Errorf("sequence: got %s, want cold_lead (nil analysis)", pos.Sequence)
	}
	if pos.StepIndex != 1 {
		t.Errorf("step index: got %d, want 1", pos.StepIndex)
	}
	if !pos.Due {
		t.Error("expected due")
	}
	if !pos.Overdue {
		t.Error("expected overdue: 25d since last > 14d delay + 48h grace")
	}
}

func TestResolvePositionWithinGraceNotOverdue(t *testing.T) {
	// Due but still inside the grace window.
	msgs := []conversations.Message{
		message(conversations.SenderOther, resolveNow.Add(-200*time.Hour)),
		message(conversations.SenderSelf, resolveNow.Add(-50*time.Hour)),
	}

	pos, err := outreach.ResolvePosition(outreach.DefaultCatalog(), msgs, hotAnalysis(), resolveNow)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	// Hot step 1: 48h delay. 50h since last is due, but under 48h+48h grace.
	if pos.StepIndex != 1 {
		t.Fatalf("step index: got %d, want 1", pos.StepIndex)
	}
	if !pos.Due {
		t.Error("expected due after the 48h delay")
	}
	if pos.Overdue {
		t.Error("not overdue while inside the grace period")
	}
}

func TestResolvePositionSequenceSelection(t *testing.T) {
	msgs := []conversations.Message{
		message(conversations.SenderOther, resolveNow.Add(-100*time.Hour)),
		message(conversations.SenderSelf, resolveNow.Add(-10*time.Hour)),
	}

	tests := []struct {
		name     string
		analysis *analyses.Analysis
		want     string
	}{
		{"hot lead", hotAnalysis(), outreach.SequenceHot},
		{"warm lead", warmAnalysis(), outreach.SequenceWarm},
		{"cold lead", &analyses.Analysis{LeadStatus: analyses.LeadCold}, outreach.SequenceCold},
		{"unclassified defaults to cold", nil, outreach.SequenceCold},
		{
			"tested warm goes to tested sequence",
			&analyses.Analysis{LeadStatus: analyses.LeadWarm, HasTested: true},
			outreach.SequenceTested,
		},
		{
			"tested hot stays hot",
			&analyses.Analysis{LeadStatus: analyses.LeadHot, HasTested: true},
			outreach.SequenceHot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, err := outreach.ResolvePosition(outreach.DefaultCatalog(), msgs, tt.analysis, resolveNow)
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if pos.Sequence != tt.want {
				t.Errorf("sequence: got %s, want %s", pos.Sequence, tt.want)
			}
		})
	}
}

func TestResolvePositionDeterministic(t *testing.T) {
	msgs := []conversations.Message{
		message(conversations.SenderSelf, resolveNow.Add(-100*time.Hour)),
		message(conversations.SenderOther, resolveNow.Add(-90*time.Hour)),
		message(conversations.SenderSelf, resolveNow.Add(-40*time.Hour)),
	}

	first, err := outreach.ResolvePosition(outreach.DefaultCatalog(), msgs, warmAnalysis(), resolveNow)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	for range 5 {
		again, err := outreach.ResolvePosition(outreach.DefaultCatalog(), msgs, warmAnalysis(), resolveNow)
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("resolution not deterministic: %+v vs %+v", first, again)
		}
	}
}

func TestResolvePositionIgnoresInputOrder(t *testing.T) {
	a := message(conversations.SenderOther, resolveNow.Add(-100*time.Hour))
	b := message(conversations.SenderSelf, resolveNow.Add(-10*time.Hour))

	ordered, err := outreach.ResolvePosition(
		outreach.DefaultCatalog(),
		[]conversations.Message{a, b},
		warmAnalysis(),
		resolveNow,
	)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	shuffled, err := outreach.ResolvePosition(
		outreach.DefaultCatalog(),
		[]conversations.Message{b, a},
		warmAnalysis(),
		resolveNow,
	)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if !reflect.DeepEqual(ordered, shuffled) {
		t.Errorf("input order changed result: %+v vs %+v", ordered, shuffled)
	}
}
