package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies ANSI escape sequences for error display. The CLI
// passes its theme-backed implementation; tests pass a no-color stub.
type ColorProvider interface {
	Red() string
	Yellow() string
	Cyan() string
	Reset() string
}

// HandleRunError inspects a batch run error, writes an operator-friendly
// diagnostic to out, and maps the error to a process exit code.
//
// The mapping follows the package taxonomy: timeouts and deadline errors
// yield ExitErrorTimeout, cancellation yields ExitErrorCanceled, validation
// and configuration errors yield ExitErrorConfig, and anything else yields
// ExitErrorGeneric.
//
// Parameters:
//   - err: The error returned by the run (nil means success).
//   - duration: How long the run had been going when it failed.
//   - out: Destination for the diagnostic message.
//   - colors: Provider of ANSI color codes for the message.
//
// Returns:
//   - int: The exit code to pass to os.Exit.
func HandleRunError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}

	var timeoutErr TimeoutError
	switch {
	case errors.As(err, &timeoutErr):
		fmt.Fprintf(out, "%s⏱ Operation %q timed out after %s.%s\n",
			colors.Yellow(), timeoutErr.Operation, timeoutErr.Limit, colors.Reset())
		fmt.Fprintf(out, "%sTip: raise the limit with --timeout.%s\n", colors.Cyan(), colors.Reset())
		return ExitErrorTimeout

	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "%s⏱ Run timed out after %s.%s\n",
			colors.Yellow(), duration.Round(time.Millisecond), colors.Reset())
		fmt.Fprintf(out, "%sTip: raise the limit with --timeout.%s\n", colors.Cyan(), colors.Reset())
		return ExitErrorTimeout

	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sRun canceled after %s.%s\n",
			colors.Yellow(), duration.Round(time.Millisecond), colors.Reset())
		return ExitErrorCanceled
	}

	var validationErr ValidationError
	var configErr ConfigError
	if errors.As(err, &validationErr) || errors.As(err, &configErr) {
		fmt.Fprintf(out, "%sError: %v%s\n", colors.Red(), err, colors.Reset())
		return ExitErrorConfig
	}

	fmt.Fprintf(out, "%sError: %v%s\n", colors.Red(), err, colors.Reset())
	return ExitErrorGeneric
}
