package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaintextVerifier(t *testing.T) {
	v := NewPlaintextVerifier()

	assert.NoError(t, v.Compare("secret", "secret"))
	assert.ErrorIs(t, v.Compare("secret", "Secret"), ErrPasswordMismatch)
	assert.ErrorIs(t, v.Compare("secret", "secret "), ErrPasswordMismatch)
	assert.ErrorIs(t, v.Compare("secret", ""), ErrPasswordMismatch)
	assert.NoError(t, v.Compare("", ""))
}

func TestPlaintextVerifierSatisfiesInterface(t *testing.T) {
	var _ PasswordVerifier = NewPlaintextVerifier()
}
