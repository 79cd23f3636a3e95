// Package errors provides structured error types for covertower.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI and HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// Search rejections inside the cover enumeration are not errors and never
// surface here. Only caller contract violations (bad presentations,
// unsupported degrees, unreadable files) are reported.
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - UNSUPPORTED_*: Valid input outside what the tables cover
//   - NOT_FOUND_*: Resource not found
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnsupportedDegree, "degree %d not in 1..%d", n, max)
//	if errors.Is(err, errors.ErrCodeUnsupportedDegree) {
//	    // Handle unsupported degree
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "decode %s", path)
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
	ErrCodeInvalidInput        Code = "INVALID_INPUT"
	ErrCodeInvalidPresentation Code = "INVALID_PRESENTATION"
	ErrCodeInvalidGenerator    Code = "INVALID_GENERATOR"
	ErrCodeInvalidPermutation  Code = "INVALID_PERMUTATION"
	ErrCodeInvalidFormat       Code = "INVALID_FORMAT"
	ErrCodeInvalidPath         Code = "INVALID_PATH"

	// Inputs that are well formed but outside the supported range
	ErrCodeUnsupportedDegree Code = "UNSUPPORTED_DEGREE"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

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
// It unwraps the error chain looking for an *Error or *ParseError with a
// matching code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is neither an *Error nor a *ParseError.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Code()
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

// ParseError reports a syntax error in a textual word or presentation.
// Pos is the byte offset into Input where parsing failed.
type ParseError struct {
	Input   string
	Pos     int
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q at offset %d: %s", e.Input, e.Pos, e.Message)
}

// Code returns the error code for this error type.
func (e *ParseError) Code() Code {
	return ErrCodeInvalidFormat
}
