package analyses

import (
	"encoding/json"
	"net/url"

	"github.com/google/uuid"

	"github.com/cadencehq/cadence/pkg/query"
	"github.com/cadencehq/cadence/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "analyses", "a").
	Project("id", "ID").
	Project("conversation_id", "ConversationID").
	Project("is_relevant", "IsRelevant").
	Project("lead_score", "LeadScore").
	Project("lead_status", "LeadStatus").
	Project("sentiment", "Sentiment").
	Project("interest_level", "InterestLevel").
	Project("has_tested", "HasTested").
	Project("key_points", "KeyPoints").
	Project("recommended_action", "RecommendedAction").
	Project("follow_up_timing", "FollowUpTiming").
	Project("personalization_hints", "PersonalizationHints").
	Project("reasoning", "Reasoning").
	Project("model_name", "ModelName").
	Project("provider_name", "ProviderName").
	Project("analyzed_at", "AnalyzedAt")

var defaultSort = query.SortField{
	Field:      "AnalyzedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for analysis queries.
type Filters struct {
	LeadStatus        *string    `json:"lead_status,omitempty"`
	RecommendedAction *string    `json:"recommended_action,omitempty"`
	ConversationID    *uuid.UUID `json:"conversation_id,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b.WhereEquals("LeadStatus", f.LeadStatus)
	b.WhereEquals("RecommendedAction", f.RecommendedAction)

	if f.ConversationID != nil {
		id := f.ConversationID.String()
		b.WhereEquals("ConversationID", &id)
	}

	return b
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("lead_status"); s != "" {
		f.LeadStatus = &s
	}

	if a := values.Get("recommended_action"); a != "" {
		f.RecommendedAction = &a
	}

	if c := values.Get("conversation_id"); c != "" {
		if id, err := uuid.Parse(c); err == nil {
			f.ConversationID = &id
		}
	}

	return f
}

// scanAnalysis reads an analysis row. key_points is stored as jsonb and
// decoded from raw bytes.
func scanAnalysis(s repository.Scanner) (Analysis, error) {
	var (
		a         Analysis
		keyPoints []byte
	)

	err := s.Scan(
		&a.ID,
		&a.ConversationID,
		&a.IsRelevant,
		&a.LeadScore,
		&a.LeadStatus,
		&a.Sentiment,
		&a.InterestLevel,
		&a.HasTested,
		&keyPoints,
		&a.RecommendedAction,
		&a.FollowUpTiming,
		&a.PersonalizationHints,
		&a.Reasoning,
		&a.ModelName,
		&a.ProviderName,
		&a.AnalyzedAt,
	)
	if err != nil {
		return a, err
	}

	if len(keyPoints) > 0 {
		if err := json.Unmarshal(keyPoints, &a.KeyPoints); err != nil {
			return a, err
		}
	}

	return a, nil
}
