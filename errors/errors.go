// Package errors provides unified error handling for the wrapper.
// It implements structured error types with error codes and process
// exit-status mapping so main can translate any failure into the right
// exit code and message.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// ExitCode is the process exit status this error maps to.
	ExitCode int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with the exit status derived from the code.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		ExitCode: DefaultExitCode(code),
	}
}

// --- Common Error Constructors ---

// InvalidInput creates a new AppError for a bad argument or flag value.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("invalid input: %s", reason),
		ExitCode: DefaultExitCode(ErrCodeInvalidInput), Details: details,
	}
}

// MissingConfig creates a new AppError for an absent required setting.
func MissingConfig(name string) *AppError {
	return &AppError{
		Code: ErrCodeMissingConfig, Message: fmt.Sprintf("missing required configuration: %s", name),
		ExitCode: DefaultExitCode(ErrCodeMissingConfig),
		Details:  map[string]any{"name": name},
	}
}

// Precondition creates a new AppError for an output tree that is not in the
// state an upstream stage should have left it in.
func Precondition(reason string) *AppError {
	return &AppError{
		Code: ErrCodePrecondition, Message: reason,
		ExitCode: DefaultExitCode(ErrCodePrecondition),
	}
}

// ExternalTool creates a new AppError for a failed external tool invocation.
func ExternalTool(tool string, exitCode int) *AppError {
	return &AppError{
		Code: ErrCodeExternalTool, Message: fmt.Sprintf("%s exited with status %d", tool, exitCode),
		ExitCode: DefaultExitCode(ErrCodeExternalTool),
		Details:  map[string]any{"tool": tool, "tool_exit_code": exitCode},
	}
}

// TimepointsFailed creates a new AppError aggregating the failed timepoints
// of one subject. Sessions are the human-facing session labels.
func TimepointsFailed(subject string, sessions []string) *AppError {
	return &AppError{
		Code:     ErrCodeTimepointsFailed,
		Message:  fmt.Sprintf("timepoints failed for %s: %s", subject, strings.Join(sessions, " ")),
		ExitCode: DefaultExitCode(ErrCodeTimepointsFailed),
		Details:  map[string]any{"subject": subject, "sessions": sessions},
	}
}

// Internal creates a new AppError for an unexpected internal error.
func Internal(message string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: message,
		ExitCode: DefaultExitCode(ErrCodeInternal), Cause: cause,
	}
}

// --- Inspection helpers ---

// AsAppError extracts an AppError from an error chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given error code.
func HasCode(err error, code ErrorCode) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == code
	}
	return false
}

// ExitCodeFor maps any error to the process exit status.
// nil maps to 0, unrecognized errors to 1.
func ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	if appErr, ok := AsAppError(err); ok && appErr.ExitCode != 0 {
		return appErr.ExitCode
	}
	return 1
}
