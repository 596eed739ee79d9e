// Package conversations implements the conversation domain for Cadence.
// A conversation is the message thread with a single prospect. Ingest
// replaces the stored transcript with the latest observed state, so
// repeated scrape passes converge rather than duplicate.
package conversations

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a conversation.
type Status string

const (
	// StatusActive conversations are eligible for outreach planning.
	StatusActive Status = "active"
	// StatusConverted conversations reached their goal and leave the pipeline.
	StatusConverted Status = "converted"
	// StatusIrrelevant conversations were judged not worth pursuing.
	StatusIrrelevant Status = "irrelevant"
)

// ParseStatus validates and converts a string to a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusActive, StatusConverted, StatusIrrelevant:
		return Status(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// Terminal reports whether the status removes the conversation from
// outreach planning.
func (s Status) Terminal() bool {
	return s == StatusConverted || s == StatusIrrelevant
}

// Sender identifies which party authored a message.
type Sender string

const (
	// SenderSelf marks messages sent by the operating account.
	SenderSelf Sender = "self"
	// SenderOther marks messages sent by the prospect.
	SenderOther Sender = "other"
)

// ParseSender validates and converts a string to a Sender.
func ParseSender(s string) (Sender, error) {
	switch Sender(s) {
	case SenderSelf, SenderOther:
		return Sender(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSender, s)
	}
}

// Conversation represents a message thread with a prospect.
// ExternalID is the LinkedIn thread reference and the natural key for ingest.
type Conversation struct {
	ID            uuid.UUID `json:"id"`
	ProspectID    uuid.UUID `json:"prospect_id"`
	ExternalID    string    `json:"external_id"`
	Status        Status    `json:"status"`
	LastMessageAt time.Time `json:"last_message_at"`
	LastMessageBy Sender    `json:"last_message_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Message is a single entry in a conversation transcript.
type Message struct {
	ID             uuid.UUID `json:"id"`
	ConversationID uuid.UUID `json:"conversation_id"`
	Sender         Sender    `json:"sender"`
	Content        string    `json:"content"`
	SentAt         time.Time `json:"sent_at"`
}

// IngestMessage is a raw transcript entry as captured by the scraper.
// SentAt is a string because scraped timestamps arrive in several formats.
type IngestMessage struct {
	Sender  string `json:"sender"`
	Content string `json:"content"`
	SentAt  string `json:"sent_at"`
}

// IngestCommand carries one scraped conversation: the prospect it belongs
// to and the full transcript as currently visible.
type IngestCommand struct {
	ExternalID string          `json:"external_id"`
	Prospect   ProspectPayload `json:"prospect"`
	Messages   []IngestMessage `json:"messages"`
}

// ProspectPayload is the prospect data captured alongside a conversation.
type ProspectPayload struct {
	Name       string `json:"name"`
	JobTitle   string `json:"job_title"`
	Company    string `json:"company"`
	Sector     string `json:"sector"`
	Location   string `json:"location"`
	ProfileURL string `json:"profile_url"`
}

var sentAtLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseSentAt converts a scraped timestamp to a time.Time. Unparsable
// values return the Unix epoch so the message sorts before everything
// genuine instead of poisoning recency calculations.
func ParseSentAt(raw string) (time.Time, bool) {
	for _, layout := range sentAtLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Unix(0, 0).UTC(), false
}
