package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested record does not exist in the
	// store. Entity-specific variants below wrap this error.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique record.
	ErrDuplicate = errors.New("record already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTokenNotFound indicates that the requested token does not exist.
	ErrTokenNotFound = fmt.Errorf("%w: token", ErrNotFound)

	// ErrTokenExists indicates an id collision at mint time. Under correct
	// counter sequencing this never fires; it is a defensive check only.
	ErrTokenExists = fmt.Errorf("%w: token id", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError is a custom error type for store-specific failures with
// additional context about the entity and operation involved.
type StoreError struct {
	Entity    string // The entity type (e.g., "token", "incomplete_index")
	Operation string // The operation that failed (e.g., "create", "save")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation on %s failed: %s: %v",
			e.Operation, e.Entity, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation,
// message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
