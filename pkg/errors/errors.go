package errors

import (
	"fmt"
	"strings"
)

// Error codes surfaced to API clients through GraphQL error extensions.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeConflict   = "CONFLICT"
	CodeStorage    = "STORAGE_ERROR"
)

// ValidationError represents a validation failure carrying every violated
// rule, not just the first one.
type ValidationError struct {
	Field    string
	Messages []string
}

// NewValidationError creates a new validation error from the collected
// rule messages.
func NewValidationError(field string, messages ...string) *ValidationError {
	return &ValidationError{
		Field:    field,
		Messages: messages,
	}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed: %s - %s", e.Field, strings.Join(e.Messages, ", "))
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Messages, ", "))
}

// Extensions returns the GraphQL error extensions for this error
func (e *ValidationError) Extensions() map[string]interface{} {
	ext := map[string]interface{}{
		"code":     CodeValidation,
		"messages": e.Messages,
	}
	if e.Field != "" {
		ext["field"] = e.Field
	}
	return ext
}

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	Message  string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource, message string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Extensions returns the GraphQL error extensions for this error
func (e *NotFoundError) Extensions() map[string]interface{} {
	return map[string]interface{}{
		"code":     CodeNotFound,
		"resource": e.Resource,
	}
}

// ConflictError represents a unique-key conflict on create
type ConflictError struct {
	Resource string
	Message  string
}

// NewConflictError creates a new conflict error
func NewConflictError(resource, message string) *ConflictError {
	return &ConflictError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s already exists", e.Resource)
}

// Extensions returns the GraphQL error extensions for this error
func (e *ConflictError) Extensions() map[string]interface{} {
	return map[string]interface{}{
		"code":     CodeConflict,
		"resource": e.Resource,
	}
}

// StorageError represents an opaque persistence-layer failure. It is never
// retried and surfaces as an internal failure to the caller.
type StorageError struct {
	Message string
	Err     error
}

// NewStorageError creates a new storage error wrapping the underlying cause
func NewStorageError(message string, err error) *StorageError {
	return &StorageError{
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface
func (e *StorageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *StorageError) Unwrap() error {
	return e.Err
}

// Extensions returns the GraphQL error extensions for this error
func (e *StorageError) Extensions() map[string]interface{} {
	return map[string]interface{}{
		"code": CodeStorage,
	}
}
