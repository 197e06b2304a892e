// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// It is always wrapped by a *ValidationError carrying the specific message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvariantViolation is returned when a caller breaks a precondition
	// that cannot happen through normal use, such as updating an entry that
	// was never saved. It is not a business-rule failure.
	ErrInvariantViolation = errors.New("invariant violation")
)

// ValidationError describes the first rule an entity broke.
// Message is safe to show to API clients.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap returns the wrapped sentinel so errors.Is(err, ErrValidation) works.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError for field. When err is nil
// ErrValidation is wrapped.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}

// InvariantViolation reports a programming error in how an operation was
// called. The API layer never shows its message to clients.
type InvariantViolation struct {
	Operation string
	Reason    string
}

// Error implements the error interface.
func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvariantViolation, e.Operation, e.Reason)
}

// Unwrap returns ErrInvariantViolation.
func (e *InvariantViolation) Unwrap() error {
	return ErrInvariantViolation
}

// NewInvariantViolation creates an InvariantViolation for operation.
func NewInvariantViolation(operation, reason string) *InvariantViolation {
	return &InvariantViolation{
		Operation: operation,
		Reason:    reason,
	}
}
