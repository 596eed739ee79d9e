package conversations

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/cadencehq/cadence/pkg/query"
	"github.com/cadencehq/cadence/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "conversations", "c").
	Project("id", "ID").
	Project("prospect_id", "ProspectID").
	Project("external_id", "ExternalID").
	Project("status", "Status").
	Project("last_message_at", "LastMessageAt").
	Project("last_message_by", "LastMessageBy").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "LastMessageAt",
	Descending: true,
}

// Filters contains optional filtering criteria for conversation queries.
type Filters struct {
	Status     *string    `json:"status,omitempty"`
	ProspectID *uuid.UUID `json:"prospect_id,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b.WhereEquals("Status", f.Status)

	if f.ProspectID != nil {
		id := f.ProspectID.String()
		b.WhereEquals("ProspectID", &id)
	}

	return b
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	if p := values.Get("prospect_id"); p != "" {
		if id, err := uuid.Parse(p); err == nil {
			f.ProspectID = &id
		}
	}

	return f
}

func scanConversation(s repository.Scanner) (Conversation, error) {
	var c Conversation
	err := s.Scan(
		&c.ID,
		&c.ProspectID,
		&c.ExternalID,
		&c.Status,
		&c.LastMessageAt,
		&c.LastMessageBy,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

func scanMessage(s repository.Scanner) (Message, error) {
	var m Message
	err := s.Scan(
		&m.ID,
		&m.ConversationID,
		&m.Sender,
		&m.Content,
		&m.SentAt,
	)
	return m, err
}
