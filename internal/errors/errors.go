package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Exit codes reported to the operating system. Scripts wrapping the CLI
// branch on these, so the values are stable.
const (
	ExitSuccess       = 0
	ExitErrorGeneric  = 1
	ExitErrorTimeout  = 2
	ExitErrorConfig   = 4   // configuration or validation failure
	ExitErrorCanceled = 130 // interrupted, 128+SIGINT
)

// ConfigError reports invalid user input: a malformed flag value, a rule
// definition that does not parse, an unknown shell name. The process
// cannot start the requested work.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError builds a ConfigError from a format string.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// BatchError wraps whatever went wrong while a sequence batch was being
// produced, keeping the cause reachable for errors.Is and errors.As.
type BatchError struct {
	Cause error
}

func (e BatchError) Error() string { return e.Cause.Error() }

// Unwrap exposes the cause to the errors package helpers.
func (e BatchError) Unwrap() error { return e.Cause }

// TimeoutError reports a run that exceeded its time budget, naming the
// operation and the budget it blew through.
type TimeoutError struct {
	Operation string
	Limit     time.Duration
}

func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError reports a value that failed an input check, identifying
// the field so callers can point the user at the right flag.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for field from a format
// string.
func NewValidationError(field, format string, a ...any) error {
	return ValidationError{Field: field, Message: fmt.Sprintf(format, a...)}
}

// WrapError prefixes err with a formatted context message using %w, so
// the original error stays visible to errors.Is and errors.As. A nil err
// returns nil, which lets callers wrap unconditionally.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err is a cancellation or a deadline
// expiry, anywhere in its chain.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
