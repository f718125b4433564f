package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies pipeline failures so callers can branch on the
// category instead of matching message text.
type ErrorKind string

const (
	ErrKindValidation  ErrorKind = "validation"
	ErrKindVectorStore ErrorKind = "vector_store"
	ErrKindGeneration  ErrorKind = "generation"
	ErrKindRateLimited ErrorKind = "rate_limited"
	ErrKindInternal    ErrorKind = "internal"
)

// PipelineError is the typed error produced by the tutoring pipeline.
// It carries a kind for classification and wraps the underlying cause.
type PipelineError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a validation-kind error with the given reason
func NewValidationError(message string) *PipelineError {
	return &PipelineError{Kind: ErrKindValidation, Message: message}
}

// NewVectorStoreError wraps a vector store failure
func NewVectorStoreError(message string, err error) *PipelineError {
	return &PipelineError{Kind: ErrKindVectorStore, Message: message, Err: err}
}

// NewGenerationError wraps an LLM generation failure
func NewGenerationError(message string, err error) *PipelineError {
	return &PipelineError{Kind: ErrKindGeneration, Message: message, Err: err}
}

// NewRateLimitError creates a rate-limited-kind error
func NewRateLimitError(message string) *PipelineError {
	return &PipelineError{Kind: ErrKindRateLimited, Message: message}
}

// NewInternalError wraps an unexpected failure
func NewInternalError(message string, err error) *PipelineError {
	return &PipelineError{Kind: ErrKindInternal, Message: message, Err: err}
}

// KindOf returns the error kind for err, or ErrKindInternal when err is
// not a PipelineError.
func KindOf(err error) ErrorKind {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ErrKindInternal
}

// IsKind reports whether err carries the given kind
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
