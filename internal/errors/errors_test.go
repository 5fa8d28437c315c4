// Package apperrors tests exercise error formatting, wrapping, and exit codes.
package apperrors

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestConfigError(t *testing.T) {
	t.Parallel()

	t.Run("message passthrough", func(t *testing.T) {
		err := ConfigError{Message: "invalid flag value"}
		if err.Error() != "invalid flag value" {
			t.Errorf("Error() = %q", err.Error())
		}
	})

	t.Run("constructor formats", func(t *testing.T) {
		err := NewConfigError("invalid value %q for flag %s", "x=Fizz", "--divisor")
		want := `invalid value "x=Fizz" for flag --divisor`
		if err.Error() != want {
			t.Errorf("Error() = %q, want %q", err.Error(), want)
		}
	})

	t.Run("errors.As recovers the type", func(t *testing.T) {
		var configErr ConfigError
		if !errors.As(NewConfigError("test error"), &configErr) {
			t.Error("errors.As should match ConfigError")
		}
		if configErr.Message != "test error" {
			t.Errorf("Message = %q", configErr.Message)
		}
	})
}

func TestBatchError(t *testing.T) {
	t.Parallel()

	t.Run("delegates message to cause", func(t *testing.T) {
		err := BatchError{Cause: errors.New("write failed")}
		if err.Error() != "write failed" {
			t.Errorf("Error() = %q", err.Error())
		}
	})

	t.Run("unwraps to cause", func(t *testing.T) {
		cause := errors.New("original error")
		if got := (BatchError{Cause: cause}).Unwrap(); got != cause {
			t.Errorf("Unwrap() = %v, want the original cause", got)
		}
	})

	t.Run("errors.Is sees through the wrapper", func(t *testing.T) {
		err := BatchError{Cause: context.Canceled}
		if !errors.Is(err, context.Canceled) {
			t.Error("errors.Is should find context.Canceled in the chain")
		}
	})
}

func TestTimeoutError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		operation string
		limit     time.Duration
		want      string
	}{
		{"generate", 30 * time.Second, `operation "generate" timed out after 30s`},
		{"sequence", 500 * time.Millisecond, `operation "sequence" timed out after 500ms`},
		{"batch", 10 * time.Second, `operation "batch" timed out after 10s`},
	}
	for _, tt := range tests {
		err := TimeoutError{Operation: tt.operation, Limit: tt.limit}
		if err.Error() != tt.want {
			t.Errorf("TimeoutError(%s, %s) = %q, want %q", tt.operation, tt.limit, err.Error(), tt.want)
		}
	}

	t.Run("errors.As preserves fields", func(t *testing.T) {
		var err error = TimeoutError{Operation: "batch", Limit: 10 * time.Second}
		var timeoutErr TimeoutError
		if !errors.As(err, &timeoutErr) {
			t.Fatal("errors.As should match TimeoutError")
		}
		if timeoutErr.Operation != "batch" || timeoutErr.Limit != 10*time.Second {
			t.Errorf("recovered TimeoutError = %+v", timeoutErr)
		}
	})
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		field   string
		message string
		want    string
	}{
		{"start", "must be at least 1", `validation error for "start": must be at least 1`},
		{"blocks", "at least one rule is required", `validation error for "blocks": at least one rule is required`},
		{"divisor", "must be positive", `validation error for "divisor": must be positive`},
	}
	for _, tt := range tests {
		err := ValidationError{Field: tt.field, Message: tt.message}
		if err.Error() != tt.want {
			t.Errorf("ValidationError(%s) = %q, want %q", tt.field, err.Error(), tt.want)
		}
	}

	t.Run("constructor formats", func(t *testing.T) {
		err := NewValidationError("range", "start %d must be below end %d", 10, 5)
		want := `validation error for "range": start 10 must be below end 5`
		if err.Error() != want {
			t.Errorf("Error() = %q, want %q", err.Error(), want)
		}
	})

	t.Run("errors.As preserves fields", func(t *testing.T) {
		var validationErr ValidationError
		if !errors.As(NewValidationError("range", "bad interval"), &validationErr) {
			t.Fatal("errors.As should match ValidationError")
		}
		if validationErr.Field != "range" || validationErr.Message != "bad interval" {
			t.Errorf("recovered ValidationError = %+v", validationErr)
		}
	})
}

// The typed errors must stay discoverable with errors.As no matter how the
// batch pipeline wraps them on the way up.
func TestErrorChains(t *testing.T) {
	t.Parallel()

	t.Run("timeout inside a batch error", func(t *testing.T) {
		err := BatchError{Cause: TimeoutError{Operation: "generate", Limit: 5 * time.Second}}
		var timeoutErr TimeoutError
		if !errors.As(err, &timeoutErr) {
			t.Error("errors.As should find TimeoutError through BatchError")
		}
	})

	t.Run("validation inside wrapped context", func(t *testing.T) {
		err := WrapError(ValidationError{Field: "end", Message: "too large"}, "request check failed")
		var validationErr ValidationError
		if !errors.As(err, &validationErr) {
			t.Error("errors.As should find ValidationError through WrapError")
		}
	})

	t.Run("config error inside a batch error", func(t *testing.T) {
		err := BatchError{Cause: ConfigError{Message: "rule without a word"}}
		var configErr ConfigError
		if !errors.As(err, &configErr) {
			t.Error("errors.As should find ConfigError through BatchError")
		}
	})
}

func TestWrapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		format  string
		args    []any
		want    string
		wantNil bool
		is      error
	}{
		{
			name:   "adds context",
			err:    errors.New("file not found"),
			format: "failed to load config",
			want:   "failed to load config: file not found",
		},
		{
			name:   "keeps the chain intact",
			err:    context.DeadlineExceeded,
			format: "operation timed out",
			want:   "operation timed out: context deadline exceeded",
			is:     context.DeadlineExceeded,
		},
		{
			name:    "nil in, nil out",
			err:     nil,
			format:  "some context",
			wantNil: true,
		},
		{
			name:   "format arguments",
			err:    errors.New("connection reset"),
			format: "failed to connect to %s:%d",
			args:   []any{"localhost", 8080},
			want:   "failed to connect to localhost:8080: connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := WrapError(tt.err, tt.format, tt.args...)

			if tt.wantNil {
				if wrapped != nil {
					t.Errorf("WrapError(nil, ...) = %v, want nil", wrapped)
				}
				return
			}
			if wrapped == nil {
				t.Fatal("wrapped error should not be nil")
			}
			if wrapped.Error() != tt.want {
				t.Errorf("Error() = %q, want %q", wrapped.Error(), tt.want)
			}
			if tt.is != nil && !errors.Is(wrapped, tt.is) {
				t.Errorf("errors.Is should still find %v", tt.is)
			}
		})
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"canceled", context.Canceled, true},
		{"deadline exceeded", context.DeadlineExceeded, true},
		{"wrapped canceled", WrapError(context.Canceled, "operation canceled"), true},
		{"unrelated error", errors.New("some error"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		if got := IsContextError(tt.err); got != tt.want {
			t.Errorf("IsContextError(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

// Exit codes are part of the CLI contract; scripts branch on them.
func TestExitCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		code int
		want int
	}{
		{"ExitSuccess", ExitSuccess, 0},
		{"ExitErrorGeneric", ExitErrorGeneric, 1},
		{"ExitErrorTimeout", ExitErrorTimeout, 2},
		{"ExitErrorConfig", ExitErrorConfig, 4},
		{"ExitErrorCanceled", ExitErrorCanceled, 130},
	}
	for _, tt := range tests {
		if tt.code != tt.want {
			t.Errorf("%s = %d, want %d", tt.name, tt.code, tt.want)
		}
	}
}
