package apperrors

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// plainColors is a ColorProvider that emits no escape sequences, keeping
// message assertions readable.
type plainColors struct{}

func (plainColors) Red() string    { return "" }
func (plainColors) Yellow() string { return "" }
func (plainColors) Cyan() string   { return "" }
func (plainColors) Reset() string  { return "" }

func TestHandleRunError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantOut  []string
	}{
		{
			name:     "nil error is success",
			err:      nil,
			wantCode: ExitSuccess,
		},
		{
			name:     "timeout error type",
			err:      TimeoutError{Operation: "generate", Limit: 2 * time.Second},
			wantCode: ExitErrorTimeout,
			wantOut:  []string{"timed out after 2s", "--timeout"},
		},
		{
			name:     "deadline exceeded",
			err:      context.DeadlineExceeded,
			wantCode: ExitErrorTimeout,
			wantOut:  []string{"timed out", "--timeout"},
		},
		{
			name:     "wrapped deadline exceeded",
			err:      WrapError(context.DeadlineExceeded, "batch aborted"),
			wantCode: ExitErrorTimeout,
		},
		{
			name:     "canceled",
			err:      context.Canceled,
			wantCode: ExitErrorCanceled,
			wantOut:  []string{"canceled"},
		},
		{
			name:     "validation error",
			err:      ValidationError{Field: "start", Message: "must be at least 1"},
			wantCode: ExitErrorConfig,
			wantOut:  []string{`"start"`, "must be at least 1"},
		},
		{
			name:     "config error",
			err:      NewConfigError("unknown rule kind %q", "hexagonal"),
			wantCode: ExitErrorConfig,
			wantOut:  []string{"hexagonal"},
		},
		{
			name:     "validation error wrapped in batch error",
			err:      BatchError{Cause: ValidationError{Field: "blocks", Message: "at least one rule is required"}},
			wantCode: ExitErrorConfig,
		},
		{
			name:     "generic error",
			err:      errors.New("disk on fire"),
			wantCode: ExitErrorGeneric,
			wantOut:  []string{"disk on fire"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			code := HandleRunError(tt.err, 123*time.Millisecond, &buf, plainColors{})
			if code != tt.wantCode {
				t.Errorf("HandleRunError() code = %d, want %d", code, tt.wantCode)
			}
			for _, want := range tt.wantOut {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output missing %q:\n%s", want, buf.String())
				}
			}
		})
	}
}
