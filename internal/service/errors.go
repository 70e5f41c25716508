// Package service implements the gateway's application services: the mint
// coordinator, the task queue manager, and the metadata-completion
// workflow. Each operation runs as a single database transaction; on any
// error the whole operation rolls back and neither storage writes nor
// audit events are observable.
package service

import "fmt"

// ServiceError is a custom error type for gateway service failures. It
// names the operation that failed while wrapping the underlying sentinel
// error so callers can still match with errors.Is.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("gateway service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("gateway service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
