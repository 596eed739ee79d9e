package workflow

import (
	"time"

	"github.com/google/uuid"
)

// State bag keys shared across graph nodes.
const (
	KeyConversationID = "conversation_id"
	KeyProspect       = "prospect"
	KeyTranscript     = "transcript"
	KeyAnalysis       = "analysis"
	KeyDraft          = "draft"
)

// AnalysisResult is the structured judgment returned by the analyze
// stage. Field names mirror the JSON specification given to the model.
type AnalysisResult struct {
	IsRelevant           bool     `json:"is_relevant"`
	LeadScore            int      `json:"lead_score"`
	LeadStatus           string   `json:"lead_status"`
	Sentiment            string   `json:"sentiment"`
	InterestLevel        string   `json:"interest_level"`
	HasTested            bool     `json:"has_tested"`
	KeyPoints            []string `json:"key_points"`
	RecommendedAction    string   `json:"recommended_action"`
	FollowUpTiming       string   `json:"follow_up_timing"`
	PersonalizationHints string   `json:"personalization_hints"`
	Reasoning            string   `json:"reasoning"`
}

// Normalize replaces missing or malformed fields with safe neutral
// values so a sloppy model response degrades the judgment instead of
// crashing the pass.
func (r *AnalysisResult) Normalize() {
	if r.LeadScore < 0 {
		r.LeadScore = 0
	}
	if r.LeadScore > 100 {
		r.LeadScore = 100
	}

	switch r.LeadStatus {
	case "hot", "warm", "cold":
	default:
		r.LeadStatus = "cold"
	}

	switch r.RecommendedAction {
	case "follow_up", "wait", "close", "ignore":
	default:
		r.RecommendedAction = "wait"
	}

	switch r.FollowUpTiming {
	case "immediate", "3_days", "1_week":
	default:
		r.FollowUpTiming = "1_week"
	}
}

// draftResponse is the structured output of the draft stage.
type draftResponse struct {
	Message   string `json:"message"`
	Rationale string `json:"rationale"`
}

// Result is the final output of one workflow execution. Draft is nil
// when the analysis did not recommend a follow-up.
type Result struct {
	ConversationID uuid.UUID      `json:"conversation_id"`
	Analysis       AnalysisResult `json:"analysis"`
	Draft          *string        `json:"draft,omitempty"`
	CompletedAt    time.Time      `json:"completed_at"`
}
