package conversations

import (
	"errors"
	"net/http"
)

// Domain errors for conversation operations.
var (
	ErrNotFound      = errors.New("conversation not found")
	ErrDuplicate     = errors.New("conversation already exists")
	ErrInvalidStatus = errors.New("invalid conversation status")
	ErrInvalidSender = errors.New("invalid message sender")
	ErrEmptyIngest   = errors.New("ingest requires an external_id and a prospect profile_url")
)

// MapHTTPStatus maps conversation domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrInvalidSender) ||
		errors.Is(err, ErrEmptyIngest) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
