// Package apperr defines the error kinds shared by every service.
// Services wrap these sentinels with %w so handlers can map them to
// HTTP statuses with errors.Is.
package apperr

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthenticated covers missing, malformed, tampered or expired tokens
	// and failed logins.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden means the token verified but the role is insufficient.
	// Kept distinct from ErrUnauthenticated so authorization failures are
	// never reported as authentication failures.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound means the targeted tool or review does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput covers malformed path parameters and unrecognized
	// enum values (e.g. a review status outside the three known ones).
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when a signup reuses an existing username.
	ErrConflict = errors.New("conflict")

	// ErrStoreUnavailable wraps backing-store failures. Fatal for the
	// request; never retried at this layer.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// HTTPStatus maps an error to the status code handlers should respond with.
// Unknown errors map to 500.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
