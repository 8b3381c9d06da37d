package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	err := NewExternalError("triage call failed", errors.New("connection refused"))
	assert.Equal(t, "EXTERNAL: triage call failed: connection refused", err.Error())

	err = NewNotFoundError("staff member not found")
	assert.Equal(t, "NOT_FOUND: staff member not found", err.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("duplicate key")
	err := NewPersistenceError("insert triage decision", cause)

	assert.ErrorIs(t, err, cause)
}

func TestIsType(t *testing.T) {
	err := NewPersistenceError("upsert forecast", errors.New("timeout"))

	assert.True(t, IsType(err, ErrorTypePersistence))
	assert.False(t, IsType(err, ErrorTypeExternal))

	// Wrapped AppErrors are still classified
	wrapped := fmt.Errorf("daily workflow: %w", err)
	assert.True(t, IsType(wrapped, ErrorTypePersistence))

	assert.False(t, IsType(errors.New("plain"), ErrorTypeInternal))
	assert.False(t, IsType(nil, ErrorTypeInternal))
}
