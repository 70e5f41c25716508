package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gatewaylabs/gateway-api/internal/api/shared"
	"github.com/gatewaylabs/gateway-api/internal/domain"
	"github.com/gatewaylabs/gateway-api/internal/service/auth"
	"github.com/gatewaylabs/gateway-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrBadOperatorSecret):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrTokenNotFound),
		errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrTokenExists),
		errors.Is(err, domain.ErrTaskFulfilled),
		errors.Is(err, domain.ErrMetadataComplete):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrExtensionMissing),
		errors.Is(err, domain.ErrTasksMissing),
		errors.Is(err, domain.ErrInvalidFields),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrTokenOwnerEmpty),
		errors.Is(err, domain.ErrTokenIDInvalid),
		errors.Is(err, domain.ErrMintWithTasks),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal
// details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrBadOperatorSecret):
		return "Invalid operator secret"

	// Authorization errors
	case errors.Is(err, domain.ErrUnauthorized):
		return "Caller is not authorized for this operation"

	// Not found errors
	case errors.Is(err, store.ErrTokenNotFound):
		return "Token not found"

	case errors.Is(err, domain.ErrTaskNotFound):
		return "Task not found"

	// Conflict errors
	case errors.Is(err, store.ErrTokenExists):
		return "Token id already exists"

	case errors.Is(err, domain.ErrTaskFulfilled):
		return "Task output has already been recorded"

	case errors.Is(err, domain.ErrMetadataComplete):
		return "Title and description are already filled"

	// Bad request errors
	case errors.Is(err, domain.ErrExtensionMissing):
		return "Token has no extension"

	case errors.Is(err, domain.ErrTasksMissing):
		return "Token has no tasks"

	case errors.Is(err, domain.ErrInvalidFields):
		return "Invalid metadata fields"

	case errors.Is(err, domain.ErrMintWithTasks):
		return "Minted extension cannot carry tasks"

	case errors.Is(err, domain.ErrTokenOwnerEmpty):
		return "Token owner is required"

	case errors.Is(err, domain.ErrTokenIDInvalid),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps err to a status code and safe message and writes the
// error response, logging the full (redacted) error. An explicit
// fallbackMessage overrides the generic message for 5xx responses.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string) {
	statusCode := MapErrorToStatusCode(err)
	safeMessage := GetSafeErrorMessage(err)

	if statusCode == http.StatusInternalServerError && fallbackMessage != "" {
		safeMessage = fallbackMessage
	}

	shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'MintTokenRequest.Owner' Error:Field
	// validation for 'Owner' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
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
	case "numeric":
		return "must be numeric"
	default:
		return "validation failed"
	}
}
