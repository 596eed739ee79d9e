package prospects

import (
	"errors"
	"net/http"
)

// Domain errors for prospect operations.
var (
	ErrNotFound   = errors.New("prospect not found")
	ErrDuplicate  = errors.New("prospect already exists")
	ErrProfileURL = errors.New("profile_url required")
)

// MapHTTPStatus maps prospect domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrProfileURL) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
