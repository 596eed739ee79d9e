package drafts

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/cadencehq/cadence/pkg/query"
	"github.com/cadencehq/cadence/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "drafts", "d").
	Project("id", "ID").
	Project("conversation_id", "ConversationID").
	Project("analysis_id", "AnalysisID").
	Project("body", "Body").
	Project("status", "Status").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for draft queries.
type Filters struct {
	Status         *string    `json:"status,omitempty"`
	ConversationID *uuid.UUID `json:"conversation_id,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b.WhereEquals("Status", f.Status)

	if f.ConversationID != nil {
		id := f.ConversationID.String()
		b.WhereEquals("ConversationID", &id)
	}

	return b
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	if c := values.Get("conversation_id"); c != "" {
		if id, err := uuid.Parse(c); err == nil {
			f.ConversationID = &id
		}
	}

	return f
}

func scanDraft(s repository.Scanner) (Draft, error) {
	var d Draft
	err := s.Scan(
		&d.ID,
		&d.ConversationID,
		&d.AnalysisID,
		&d.Body,
		&d.Status,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	return d, err
}
