package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrConflict      = errors.New("conflict")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// PersistenceError reports a failed chunk upsert. Chunks before Chunk
// are already committed; Chunk and everything after it were not applied.
type PersistenceError struct {
	// Chunk is the zero-based index of the failing chunk.
	Chunk int
	// Rows is the number of records in the failing chunk.
	Rows int
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist url rewrites: chunk %d (%d rows): %v", e.Chunk, e.Rows, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
