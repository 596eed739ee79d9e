package analyses

import (
	"errors"
	"net/http"
)

// Domain errors for analysis operations.
var (
	ErrNotFound          = errors.New("analysis not found")
	ErrDuplicate         = errors.New("analysis already exists")
	ErrInvalidLeadStatus = errors.New("invalid lead status")
	ErrInvalidAction     = errors.New("invalid recommended action")
	ErrConversationGone  = errors.New("conversation not found")
	ErrEmptyTranscript   = errors.New("conversation has no messages")
)

// MapHTTPStatus maps analysis domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConversationGone) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidLeadStatus) ||
		errors.Is(err, ErrInvalidAction) ||
		errors.Is(err, ErrEmptyTranscript) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
