package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/servicehub-api/internal/api/shared"
	"github.com/phrazzld/servicehub-api/internal/domain"
	"github.com/phrazzld/servicehub-api/internal/service/auth"
	"github.com/phrazzld/servicehub-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes. Anything
// unrecognised is a 500.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidQuery),
		errors.Is(err, store.ErrInvalidQuery),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return http.StatusUnauthorized

	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-safe message for err. Validation
// errors carry their own field and message, which are built from static
// text and are safe to return.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var ve *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID format"

	case errors.Is(err, domain.ErrInvalidQuery), errors.Is(err, store.ErrInvalidQuery):
		return "Invalid search expression"

	case errors.As(err, &ve):
		return "Validation error: " + ve.Error()

	case errors.Is(err, domain.ErrValidation):
		return "Validation error"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case MapErrorToStatusCode(err) == http.StatusUnauthorized:
		return domain.ErrUnauthorized.Error()

	case errors.Is(err, domain.ErrForbidden):
		return domain.ErrForbidden.Error()

	case errors.Is(err, store.ErrUnavailable):
		return "Service temporarily unavailable"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the response for err. For 500s, fallback replaces
// the generic message when given.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" && !errors.Is(err, store.ErrUnavailable) {
		message = fallback
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
