package service

import (
	"errors"
)

// Sentinel errors for expected business-rule failures.
// The API layer maps these to 400 Bad Request.
var (
	// ErrEmailInUse is returned when registering an email that already belongs to a user.
	ErrEmailInUse = errors.New("email already in use")

	// ErrAuthentication is the sentinel wrapped by every *AuthError.
	ErrAuthentication = errors.New("authentication failed")
)

// Authentication failure messages.
const (
	MsgEmailNotRegistered = "email not registered"
	MsgInvalidPassword    = "invalid password"
)

// AuthError reports why an authentication attempt was rejected.
type AuthError struct {
	Message string
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return e.Message
}

// Unwrap returns ErrAuthentication.
func (e *AuthError) Unwrap() error {
	return ErrAuthentication
}

// NewAuthError creates an AuthError with the given message.
func NewAuthError(message string) *AuthError {
	return &AuthError{Message: message}
}
