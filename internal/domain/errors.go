package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")

	ErrInsufficientData  = errors.New("insufficient data")
	ErrIncompleteAnswers = errors.New("incomplete answers")
	ErrSessionFinished   = errors.New("session finished")
	ErrRemoteMutation    = errors.New("remote mutation failed")
	ErrStaleSession      = errors.New("stale session")
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

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// IncompleteAnswersError is returned by Submit while questions remain unanswered.
// QuestionID is the first unanswered question in presentation order.
type IncompleteAnswersError struct {
	QuestionID CardID
	Missing    int
}

func (e *IncompleteAnswersError) Error() string {
	return fmt.Sprintf("incomplete answers: %d unanswered, first %s", e.Missing, e.QuestionID)
}

func (e *IncompleteAnswersError) Unwrap() error { return ErrIncompleteAnswers }

// RemoteMutationError reports a flag toggle the backend rejected.
// The local value has already been rolled back when this is returned.
type RemoteMutationError struct {
	CardID CardID
	Flag   CardFlag
	Err    error
}

func (e *RemoteMutationError) Error() string {
	return fmt.Sprintf("toggle %s for card %s: %v", e.Flag, e.CardID, e.Err)
}

func (e *RemoteMutationError) Unwrap() []error { return []error{ErrRemoteMutation, e.Err} }
