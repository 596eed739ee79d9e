package outreach

import (
	"errors"
	"net/http"
)

// Domain errors for the outreach engine.
var (
	ErrInvalidCatalog      = errors.New("invalid sequence catalog")
	ErrSequenceNotFound    = errors.New("sequence not found")
	ErrNoMessages          = errors.New("conversation has no messages")
	ErrSourceFailed        = errors.New("active conversation fetch failed")
	ErrExportNotConfigured = errors.New("report export storage not configured")
)

// MapHTTPStatus maps outreach domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrSequenceNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrNoMessages) {
		return http.StatusUnprocessableEntity
	}
	if errors.Is(err, ErrExportNotConfigured) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
