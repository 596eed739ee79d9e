// Package analyses implements the conversation analysis domain for Cadence.
// Each active conversation carries at most one analysis row, refreshed by
// the AI workflow when the stored result goes stale.
package analyses

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// FreshnessWindow is how long an analysis remains current before the
// batch pass re-analyzes its conversation.
const FreshnessWindow = 24 * time.Hour

// LeadStatus is the temperature classification assigned by analysis.
type LeadStatus string

const (
	LeadHot  LeadStatus = "hot"
	LeadWarm LeadStatus = "warm"
	LeadCold LeadStatus = "cold"
)

// ParseLeadStatus validates and converts a string to a LeadStatus.
func ParseLeadStatus(s string) (LeadStatus, error) {
	switch LeadStatus(s) {
	case LeadHot, LeadWarm, LeadCold:
		return LeadStatus(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidLeadStatus, s)
	}
}

// Action is the next step the analysis recommends for a conversation.
type Action string

const (
	ActionFollowUp Action = "follow_up"
	ActionWait     Action = "wait"
	ActionClose    Action = "close"
	ActionIgnore   Action = "ignore"
)

// ParseAction validates and converts a string to an Action.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionFollowUp, ActionWait, ActionClose, ActionIgnore:
		return Action(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidAction, s)
	}
}

// Analysis is the stored AI assessment of a conversation.
type Analysis struct {
	ID                   uuid.UUID  `json:"id"`
	ConversationID       uuid.UUID  `json:"conversation_id"`
	IsRelevant           bool       `json:"is_relevant"`
	LeadScore            int        `json:"lead_score"`
	LeadStatus           LeadStatus `json:"lead_status"`
	Sentiment            string     `json:"sentiment"`
	InterestLevel        string     `json:"interest_level"`
	HasTested            bool       `json:"has_tested"`
	KeyPoints            []string   `json:"key_points"`
	RecommendedAction    Action     `json:"recommended_action"`
	FollowUpTiming       string     `json:"follow_up_timing"`
	PersonalizationHints string     `json:"personalization_hints"`
	Reasoning            string     `json:"reasoning"`
	ModelName            string     `json:"model_name"`
	ProviderName         string     `json:"provider_name"`
	AnalyzedAt           time.Time  `json:"analyzed_at"`
}

// Fresh reports whether the analysis is recent enough to skip re-analysis.
func (a *Analysis) Fresh(now time.Time) bool {
	return now.Sub(a.AnalyzedAt) < FreshnessWindow
}

// BatchSummary reports the outcome of a batch analysis pass.
type BatchSummary struct {
	Examined int          `json:"examined"`
	Analyzed int          `json:"analyzed"`
	Hot      int          `json:"hot"`
	Warm     int          `json:"warm"`
	Cold     int          `json:"cold"`
	Drafts   int          `json:"drafts"`
	Failed   int          `json:"failed"`
	Errors   []BatchError `json:"errors,omitempty"`
}

// BatchError records a single conversation failure during a batch pass.
type BatchError struct {
	ConversationID uuid.UUID `json:"conversation_id"`
	Error          string    `json:"error"`
}
