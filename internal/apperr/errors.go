package apperr

import (
	"errors"
	"net/http"
)

// Sentinel errors shared by repositories and handlers. Repositories wrap
// these with fmt.Errorf("...: %w", Err...) so handlers can map them to an
// HTTP status with errors.Is without string comparison.
var (
	// ErrValidation is returned when a payload is malformed or a required
	// field is missing or empty.
	ErrValidation = errors.New("validation failed")

	// ErrForbidden is returned when the actor lacks ownership or role for
	// the requested mutation.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned on duplicate unique fields, e.g. an email or
	// username that is already registered.
	ErrConflict = errors.New("conflict")

	// ErrInvalidState is returned when an operation is not legal for the
	// entity's current state, e.g. editing a deleted message.
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidReference is returned when a reply or annotation points at
	// a target that is missing or out of scope.
	ErrInvalidReference = errors.New("invalid reference")
)

// Status maps an error to its HTTP status code. Unrecognized errors are
// treated as internal.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidState), errors.Is(err, ErrInvalidReference):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
