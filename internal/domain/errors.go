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
	ErrUnauthorized  = errors.New("unauthorized")

	// ErrNoCredentials means the agent's token is expired and could not be
	// refreshed. Fatal to the calling operation, never to the whole tick batch.
	ErrNoCredentials = errors.New("no valid credentials")

	// ErrNoTopics means the topic catalog is empty and discovery failed.
	ErrNoTopics = errors.New("no topics available")

	// ErrNoAgents means no agent with valid stored credentials exists.
	ErrNoAgents = errors.New("no active agents")

	// ErrLowQuality means a draft was rejected by the quality gate.
	// Distinct from transport errors: callers log and move on without retry.
	ErrLowQuality = errors.New("low quality content")
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
		return fmt.Sprintf("validation: %s %s", e.Errors[0].Field, e.Errors[0].Message)
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

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}
