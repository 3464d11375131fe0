package service

import (
	"errors"
	"fmt"

	"event-judging/internal/metrics"
)

// Error kinds returned by every workflow operation. Callers match them with
// errors.Is; anything else is an internal failure.
var (
	ErrForbidden  = errors.New("forbidden")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
)

// WorkflowError pairs an error kind with a message safe to show to users
type WorkflowError struct {
	Kind    error
	Message string
}

func (e *WorkflowError) Error() string {
	return e.Message
}

func (e *WorkflowError) Unwrap() error {
	return e.Kind
}

func forbidden(format string, args ...any) error {
	return &WorkflowError{Kind: ErrForbidden, Message: fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...any) error {
	return &WorkflowError{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func conflict(format string, args ...any) error {
	return &WorkflowError{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

func invalid(format string, args ...any) error {
	return &WorkflowError{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

// Outcome maps an operation result to its metrics label
func Outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, ErrForbidden):
		return metrics.OutcomeForbidden
	case errors.Is(err, ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, ErrConflict):
		return metrics.OutcomeConflict
	case errors.Is(err, ErrValidation):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}

func record(workflow, operation string, err error) {
	metrics.WorkflowTransitionsTotal.WithLabelValues(workflow, operation, Outcome(err)).Inc()
}
