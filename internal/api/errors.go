package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ayumu838/kotoba-api/internal/service/auth"
	"github.com/ayumu838/kotoba-api/internal/service/progress"
	"github.com/ayumu838/kotoba-api/internal/service/review"
	"github.com/ayumu838/kotoba-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, review.ErrCardNotOwned),
		errors.Is(err, review.ErrDeckAccessDenied),
		errors.Is(err, progress.ErrDeckAccessDenied):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, review.ErrDeckNotFound),
		errors.Is(err, review.ErrCardNotFound),
		errors.Is(err, progress.ErrDeckNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, review.ErrNotEnoughCards):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, review.ErrInvalidRating),
		errors.Is(err, review.ErrInvalidMode),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token"

	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	// Authorization errors
	case errors.Is(err, review.ErrCardNotOwned):
		return "You do not own this card"

	case errors.Is(err, review.ErrDeckAccessDenied),
		errors.Is(err, progress.ErrDeckAccessDenied):
		return "You do not have access to this deck"

	// Not found errors
	case errors.Is(err, review.ErrDeckNotFound),
		errors.Is(err, progress.ErrDeckNotFound):
		return "Deck not found"

	case errors.Is(err, review.ErrCardNotFound):
		return "Card not found"

	// Conflict errors
	case errors.Is(err, review.ErrNotEnoughCards):
		return "Not enough cards to build a quiz"

	// Bad request errors
	case errors.Is(err, review.ErrInvalidRating):
		return "Invalid rating"

	case errors.Is(err, review.ErrInvalidMode):
		return "Invalid study mode"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	// Default case for unknown errors
	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// Example: "Key: 'SubmitReviewRequest.Rating' Error:Field validation
		// for 'Rating' failed on the 'oneof' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
