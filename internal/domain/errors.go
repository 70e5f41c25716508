package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrExtensionMissing is returned when an operation requires a token's
	// extension record and the token does not carry one.
	ErrExtensionMissing = errors.New("token extension is not valid")

	// ErrTasksMissing is returned when an operation requires the task list
	// and the extension has never had a task appended.
	ErrTasksMissing = errors.New("tasks are not valid")

	// ErrTaskNotFound is returned when no task with the given id exists
	// in a token's task list.
	ErrTaskNotFound = errors.New("task not found")

	// ErrTaskFulfilled is returned when a response targets a task whose
	// output has already been set. Outputs are write-once.
	ErrTaskFulfilled = errors.New("task output already set")

	// ErrMetadataComplete is returned when an update targets a token whose
	// title and description are both already filled in.
	ErrMetadataComplete = errors.New("both title and description fields are already filled")

	// ErrInvalidFields is returned when a metadata update targets a token
	// without a usable extension record.
	ErrInvalidFields = errors.New("invalid fields")

	// ErrUnauthorized is returned when an operation is not permitted for
	// the calling principal.
	ErrUnauthorized = errors.New("unauthorized operation")
)

// ValidationError wraps ErrValidation with the field that failed and a
// human-readable reason, so callers can report precise validation failures
// while still matching errors.Is(err, ErrValidation).
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
