// Package errors provides structured error types for vischart.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the compiler, CLI and HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Compile Errors
//
// Chart compilation fails with exactly one of four codes:
//
//   - [ErrCodeMissingField]: a required element (encoding, mark, a positional
//     channel) is absent
//   - [ErrCodeInvalidEncoding]: a channel exists but has no usable field
//   - [ErrCodeInvalidData]: the data source cannot be used (not inline, unknown name)
//   - [ErrCodeUnsupportedMark]: the mark type is recognized but has no compiler
//
// All compile errors are terminal: the compiler never returns a partial scene.
//
// # Usage
//
//	err := errors.MissingField("encoding.x")
//	if errors.Is(err, errors.ErrCodeMissingField) {
//	    // Handle structural spec error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidSpec, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Compile errors
	ErrCodeMissingField    Code = "MISSING_FIELD"
	ErrCodeInvalidEncoding Code = "INVALID_ENCODING"
	ErrCodeInvalidData     Code = "INVALID_DATA"
	ErrCodeUnsupportedMark Code = "UNSUPPORTED_MARK"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidSpec   Code = "INVALID_SPEC"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// =============================================================================
// Compile Error Constructors
// =============================================================================

// MissingField reports a required element that is absent from the chart.
func MissingField(name string) *Error {
	return New(ErrCodeMissingField, "missing required field: %s", name)
}

// InvalidEncoding reports a channel that cannot be resolved into a field.
func InvalidEncoding(format string, args ...any) *Error {
	return New(ErrCodeInvalidEncoding, format, args...)
}

// InvalidData reports a data source the compiler cannot consume.
func InvalidData(format string, args ...any) *Error {
	return New(ErrCodeInvalidData, format, args...)
}

// UnsupportedMark reports a recognized mark type without a compiler.
func UnsupportedMark(markType string) *Error {
	return New(ErrCodeUnsupportedMark, "unsupported mark type: %s", markType)
}

// IsCompileError reports whether err carries one of the four compile error codes.
func IsCompileError(err error) bool {
	switch GetCode(err) {
	case ErrCodeMissingField, ErrCodeInvalidEncoding, ErrCodeInvalidData, ErrCodeUnsupportedMark:
		return true
	}
	return false
}
