package mocks

import "errors"

// MockPasswordVerifier implements auth.PasswordVerifier for testing
type MockPasswordVerifier struct {
	// ShouldSucceed determines whether the password comparison should succeed
	ShouldSucceed bool

	// CompareFn allows for custom comparison logic in tests
	CompareFn func(storedPassword, candidate string) error

	// CompareCalledWith stores the arguments passed to Compare for verification
	CompareCalledWith struct {
		StoredPassword string
		Candidate      string
	}

	// CompareCallCount tracks how many times Compare was called
	CompareCallCount int
}

// Compare implements the auth.PasswordVerifier interface
func (m *MockPasswordVerifier) Compare(storedPassword, candidate string) error {
	m.CompareCalledWith.StoredPassword = storedPassword
	m.CompareCalledWith.Candidate = candidate
	m.CompareCallCount++

	if m.CompareFn != nil {
		return m.CompareFn(storedPassword, candidate)
	}
	if m.ShouldSucceed {
		return nil
	}
	return errors.New("password mismatch")
}
