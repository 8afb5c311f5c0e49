// Package errors provides structured error types for the csvnet application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and library packages
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages that name the offending file, row, or value
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes map to the failure taxonomy of the conversion pipeline:
//   - FILE_NOT_FOUND / UNWRITABLE_OUTPUT: I/O failures
//   - SCHEMA_ERROR / PARSE_ERROR: malformed input tables
//   - REFERENTIAL_ERROR: edges referencing unknown node IDs
//   - MAPPING_ERROR: category/type values missing from the theme
//   - RENDER_ERROR: failures inside the rendering backends
//
// # Usage
//
//	err := errors.New(errors.ErrCodeSchema, "nodes file missing column %q", col)
//	if errors.Is(err, errors.ErrCodeSchema) {
//	    // Handle schema error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFileNotFound, origErr, "open %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// I/O errors
	ErrCodeFileNotFound     Code = "FILE_NOT_FOUND"
	ErrCodeUnwritableOutput Code = "UNWRITABLE_OUTPUT"

	// Input table errors
	ErrCodeSchema Code = "SCHEMA_ERROR"
	ErrCodeParse  Code = "PARSE_ERROR"

	// Graph construction errors
	ErrCodeReferential   Code = "REFERENTIAL_ERROR"
	ErrCodeDuplicateNode Code = "DUPLICATE_NODE"

	// Attribute mapping errors
	ErrCodeMapping Code = "MAPPING_ERROR"

	// Configuration errors
	ErrCodeInvalidTheme  Code = "INVALID_THEME"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidInput  Code = "INVALID_INPUT"

	// Rendering errors
	ErrCodeRender Code = "RENDER_ERROR"

	// Internal errors
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
