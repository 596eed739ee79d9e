// Package drafts implements the draft review queue for Cadence.
// Follow-up messages produced by the analysis workflow land here as
// pending drafts; an operator approves, edits, or rejects them before
// anything is sent.
package drafts

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status represents the review state of a draft.
type Status string

const (
	// StatusPending drafts await operator review.
	StatusPending Status = "pending"
	// StatusApproved drafts are cleared for sending.
	StatusApproved Status = "approved"
	// StatusRejected drafts were discarded by the operator.
	StatusRejected Status = "rejected"
	// StatusSent drafts have been delivered.
	StatusSent Status = "sent"
)

// ParseStatus validates and converts a string to a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected, StatusSent:
		return Status(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// Draft is a generated follow-up message awaiting review.
// AnalysisID links back to the analysis run that produced it, when one did.
type Draft struct {
	ID             uuid.UUID  `json:"id"`
	ConversationID uuid.UUID  `json:"conversation_id"`
	AnalysisID     *uuid.UUID `json:"analysis_id,omitempty"`
	Body           string     `json:"body"`
	Status         Status     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// CreateCommand carries the data for a new pending draft.
type CreateCommand struct {
	ConversationID uuid.UUID  `json:"conversation_id"`
	AnalysisID     *uuid.UUID `json:"analysis_id,omitempty"`
	Body           string     `json:"body"`
}

// ApproveCommand optionally replaces the draft body during approval,
// preserving any operator edits made in review.
type ApproveCommand struct {
	Body *string `json:"body,omitempty"`
}
