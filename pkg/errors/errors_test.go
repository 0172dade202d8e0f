package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_CollectsAllMessages(t *testing.T) {
	err := NewValidationError("", "Email is required", "Password must be at least 6 characters long")

	assert.Contains(t, err.Error(), "Email is required")
	assert.Contains(t, err.Error(), "Password must be at least 6 characters long")

	ext := err.Extensions()
	assert.Equal(t, CodeValidation, ext["code"])
	assert.Equal(t, []string{"Email is required", "Password must be at least 6 characters long"}, ext["messages"])
	_, hasField := ext["field"]
	assert.False(t, hasField)
}

func TestValidationError_FieldScoped(t *testing.T) {
	err := NewValidationError("email", "Email format is invalid")

	assert.Equal(t, "validation failed: email - Email format is invalid", err.Error())
	assert.Equal(t, "email", err.Extensions()["field"])
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("user", "")
	assert.Equal(t, "user not found", err.Error())
	assert.Equal(t, CodeNotFound, err.Extensions()["code"])

	withMsg := NewNotFoundError("user", "User not found")
	assert.Equal(t, "User not found", withMsg.Error())
}

func TestConflictError(t *testing.T) {
	err := NewConflictError("user", "User with this email already exists")
	assert.Equal(t, "User with this email already exists", err.Error())
	assert.Equal(t, CodeConflict, err.Extensions()["code"])
	assert.Equal(t, "user", err.Extensions()["resource"])
}

func TestStorageError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStorageError("failed to query users", cause)

	assert.Equal(t, "failed to query users: connection refused", err.Error())
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, CodeStorage, err.Extensions()["code"])

	wrapped := fmt.Errorf("outer: %w", err)
	var se *StorageError
	assert.True(t, errors.As(wrapped, &se))
}
