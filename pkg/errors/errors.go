// Package errors provides structured error types for the Stackchart application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the chart library, CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Configuration and input validation failures
//   - NOT_FOUND_*: Resource not found
//   - NETWORK_*: Network-related errors
//   - INTERNAL_*: Unexpected internal errors
//
// Chart configuration errors (an unregistered facet type, a reserved option
// name) are returned synchronously from the configuring call and carry an
// INVALID_* or RESERVED_OPTION code.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidFacet, "facet '%s' is not exist", kind)
//	if errors.Is(err, errors.ErrCodeInvalidFacet) {
//	    // Handle configuration error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidData, origErr, "failed to read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Configuration and input validation errors
	ErrCodeInvalidInput       Code = "INVALID_INPUT"
	ErrCodeInvalidFormat      Code = "INVALID_FORMAT"
	ErrCodeInvalidGeometry    Code = "INVALID_GEOMETRY"
	ErrCodeInvalidFacet       Code = "INVALID_FACET"
	ErrCodeInvalidInteraction Code = "INVALID_INTERACTION"
	ErrCodeInvalidRecipe      Code = "INVALID_RECIPE"
	ErrCodeInvalidTheme       Code = "INVALID_THEME"
	ErrCodeInvalidData        Code = "INVALID_DATA"
	ErrCodeInvalidPath        Code = "INVALID_PATH"
	ErrCodeReservedOption     Code = "RESERVED_OPTION"

	// Resource not found errors
	ErrCodeNotFound      Code = "NOT_FOUND"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"
	ErrCodeChartNotFound Code = "CHART_NOT_FOUND"

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

// IsInvalid reports whether err carries a configuration or validation code
// (any INVALID_* code or RESERVED_OPTION).
func IsInvalid(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidGeometry,
		ErrCodeInvalidFacet, ErrCodeInvalidInteraction, ErrCodeInvalidRecipe,
		ErrCodeInvalidTheme, ErrCodeInvalidData, ErrCodeInvalidPath,
		ErrCodeReservedOption:
		return true
	}
	return false
}

// IsNotFound reports whether err carries one of the NOT_FOUND codes.
func IsNotFound(err error) bool {
	switch GetCode(err) {
	case ErrCodeNotFound, ErrCodeFileNotFound, ErrCodeChartNotFound:
		return true
	}
	return false
}
