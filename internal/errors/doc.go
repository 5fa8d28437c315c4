// Package apperrors carries fizzlab's error taxonomy and the exit codes
// derived from it. Config, validation, timeout and batch failures each get
// their own type so callers can branch with errors.As, and every wrapping
// type implements Unwrap so errors.Is still reaches the root cause (most
// importantly the context cancellation sentinels).
package apperrors
