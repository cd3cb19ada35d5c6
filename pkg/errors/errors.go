// Package errors provides structured error types for docgraph.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the pipeline and the server
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - TOOL_*: Problems with the external graph-layout tool
//   - NOT_FOUND / NO_PROFILE: Missing resources
//   - INTERNAL_*: Unexpected internal errors
//
// # Rendering Failures
//
// Renderer errors ([ErrCodeToolUnavailable], [ErrCodeToolFailed],
// [ErrCodeUnsupportedFormat]) are never fatal to a documentation run. The
// graph rendering boundary converts them into a logged warning and an absent
// result. [ErrCodeContractViolation] is different: it marks a programming
// mistake (for example a node given both a plain and a rich label) and is
// returned directly to the caller.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidFormat, "unknown output format: %s", f)
//	if errors.Is(err, errors.ErrCodeInvalidFormat) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeToolUnavailable, execErr, "cannot start %s", cmd)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidName      Code = "INVALID_NAME"
	ErrCodeInvalidPath      Code = "INVALID_PATH"
	ErrCodeInvalidDirection Code = "INVALID_DIRECTION"
	ErrCodeInvalidGraphKind Code = "INVALID_GRAPH_KIND"

	// Programming-contract violations
	ErrCodeContractViolation Code = "CONTRACT_VIOLATION"

	// Resource not found errors
	ErrCodeNotFound  Code = "NOT_FOUND"
	ErrCodeNoProfile Code = "NO_PROFILE"

	// External tool errors
	ErrCodeToolUnavailable   Code = "TOOL_UNAVAILABLE"
	ErrCodeToolFailed        Code = "TOOL_FAILED"
	ErrCodeUnsupportedFormat Code = "UNSUPPORTED_FORMAT"

	// Internal errors
	ErrCodeCache    Code = "CACHE_ERROR"
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsRenderFailure reports whether err is one of the renderer failures that
// callers downgrade to a warning.
func IsRenderFailure(err error) bool {
	switch GetCode(err) {
	case ErrCodeToolUnavailable, ErrCodeToolFailed, ErrCodeUnsupportedFormat:
		return true
	}
	return false
}
