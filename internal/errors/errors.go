package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the benchmark run timed out.
	ExitErrorMismatch = 3   // Indicates a count mismatch between strategies.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the run was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
//
// Returns:
//   - string: The error message string.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
// It allows for the creation of configuration-specific errors with dynamic
// content.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// UnsupportedPolicyError indicates that a requested parallel execution policy
// is not available on the current platform or runtime. This is an expected,
// recoverable condition: the benchmark records the policy as "not supported"
// and continues with the remaining strategies.
type UnsupportedPolicyError struct {
	// Policy is the name of the unavailable execution policy.
	Policy string
}

// Error returns a formatted message naming the unavailable policy.
//
// Returns:
//   - string: The error message string.
func (e UnsupportedPolicyError) Error() string {
	return fmt.Sprintf("execution policy %q is not supported on this runtime", e.Policy)
}

// MismatchError reports that a counting strategy produced a result that
// differs from the sequential baseline. It is a reportable anomaly signaling
// a bug in that strategy's partitioning logic, not a fatal condition.
type MismatchError struct {
	// Strategy is the name of the strategy that disagreed with the baseline.
	Strategy string
	// Threads is the thread count used, or 0 when not applicable.
	Threads int
	// Got is the count the strategy produced.
	Got int64
	// Want is the sequential baseline count.
	Want int64
}

// Error returns a formatted message describing the mismatch.
//
// Returns:
//   - string: The error message string.
func (e MismatchError) Error() string {
	if e.Threads > 0 {
		return fmt.Sprintf("strategy %q (K=%d) returned %d, baseline is %d", e.Strategy, e.Threads, e.Got, e.Want)
	}
	return fmt.Sprintf("strategy %q returned %d, baseline is %d", e.Strategy, e.Got, e.Want)
}

// TimeoutError represents a benchmark run timeout. It captures the operation
// name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
//
// Returns:
//   - string: The error message string.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
//
// Returns:
//   - string: The error message string.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
//
// Parameters:
//   - err: The error to check.
//
// Returns:
//   - bool: true if the error is a context error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeForError maps an error to the application exit code that should be
// reported to the OS. Nil maps to ExitSuccess.
//
// Parameters:
//   - err: The error to classify.
//
// Returns:
//   - int: The corresponding application exit code.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var configErr ConfigError
	var validationErr ValidationError
	var mismatchErr MismatchError
	var timeoutErr TimeoutError

	switch {
	case errors.As(err, &configErr), errors.As(err, &validationErr):
		return ExitErrorConfig
	case errors.As(err, &mismatchErr):
		return ExitErrorMismatch
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	default:
		return ExitErrorGeneric
	}
}
