// Package auth holds credential checks used by the user service.
package auth

import "crypto/subtle"

// PasswordVerifier defines the interface for comparing passwords.
type PasswordVerifier interface {
	// Compare checks candidate against the stored password.
	// Returns nil on success, or an error on failure (e.g., mismatch).
	Compare(storedPassword, candidate string) error
}

// PlaintextVerifier compares passwords stored in clear text.
//
// SECURITY: passwords are persisted unhashed. This verifier exists only
// because the stored data is plaintext; replace both with a hashing scheme
// before production use.
type PlaintextVerifier struct{}

// NewPlaintextVerifier creates a new PlaintextVerifier.
func NewPlaintextVerifier() *PlaintextVerifier {
	return &PlaintextVerifier{}
}

// Compare implements PasswordVerifier with a constant-time equality check.
func (v *PlaintextVerifier) Compare(storedPassword, candidate string) error {
	if subtle.ConstantTimeCompare([]byte(storedPassword), []byte(candidate)) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}
