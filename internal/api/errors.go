package api

import (
	"errors"
	"net/http"

	"github.com/pkarhu/rehearse/internal/service/review"
	"github.com/pkarhu/rehearse/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, store.ErrCardNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, review.ErrInvalidAnswer),
		errors.Is(err, review.ErrNoDecksSelected):
		return http.StatusBadRequest

	// Session state errors
	case errors.Is(err, review.ErrNoActiveSession),
		errors.Is(err, review.ErrNoActiveCard):
		return http.StatusConflict

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, store.ErrCardNotFound):
		return "Card not found"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid data"

	case errors.Is(err, review.ErrInvalidAnswer):
		return "Invalid answer: grade must be one of again, hard, good"

	case errors.Is(err, review.ErrNoDecksSelected):
		return "At least one deck must be selected"

	case errors.Is(err, review.ErrNoActiveSession):
		return "No review session in progress"

	case errors.Is(err, review.ErrNoActiveCard):
		return "No card is currently being reviewed"

	default:
		return "An unexpected error occurred"
	}
}
