package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("month", MsgInvalidMonth, nil)

	assert.Equal(t, MsgInvalidMonth, err.Error())
	assert.True(t, errors.Is(err, ErrValidation))

	wrapped := NewValidationError("id", "has invalid format", ErrInvalidID)
	assert.True(t, errors.Is(wrapped, ErrInvalidID))
	assert.False(t, errors.Is(wrapped, ErrValidation))
}

func TestInvariantViolation(t *testing.T) {
	err := NewInvariantViolation("update entry", "entry has no ID")

	assert.True(t, errors.Is(err, ErrInvariantViolation))
	assert.False(t, errors.Is(err, ErrValidation))
	assert.Contains(t, err.Error(), "update entry")
	assert.Contains(t, err.Error(), "entry has no ID")

	var iv *InvariantViolation
	assert.True(t, errors.As(error(err), &iv))
}
