package drafts

import (
	"errors"
	"net/http"
)

// Domain errors for draft operations.
var (
	ErrNotFound      = errors.New("draft not found")
	ErrDuplicate     = errors.New("draft already exists")
	ErrInvalidStatus = errors.New("invalid draft status")
	ErrNotPending    = errors.New("draft is not pending review")
	ErrNotApproved   = errors.New("draft is not approved for sending")
	ErrEmptyBody     = errors.New("draft body required")
)

// MapHTTPStatus maps draft domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrNotPending) || errors.Is(err, ErrNotApproved) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidStatus) || errors.Is(err, ErrEmptyBody) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
