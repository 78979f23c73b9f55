// Package errors provides structured error types for dockgrid.
//
// Every failure the layout core can report is local and recoverable, so the
// package models them as coded values rather than sentinel strings. Callers
// branch on the [Code] instead of matching messages.
//
// # Error Codes
//
// Codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures (scene files, CLI flags)
//   - UNSUPPORTED_*: Requests with no defined mapping (coordinate flavors)
//   - DEGENERATE_*: Zero or negative geometry
//   - EMPTY_*, TEXT_*: Normal negative results of layout operations
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	r, err := rect.Normalized(surface)
//	if errors.Is(err, errors.ErrCodeUnsupportedConversion) {
//	    // skip drawing this frame
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "decode scene %s", path)
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
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeInvalidScene  Code = "INVALID_SCENE"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Geometry errors
	ErrCodeUnsupportedConversion Code = "UNSUPPORTED_CONVERSION"
	ErrCodeDegenerateGeometry    Code = "DEGENERATE_GEOMETRY"

	// Layout outcomes
	ErrCodeEmptyContainer Code = "EMPTY_CONTAINER"
	ErrCodeTextOverflow   Code = "TEXT_OVERFLOW"

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

// Recoverable reports whether err belongs to the layout taxonomy of local,
// recoverable outcomes. A caller seeing true should skip the frame or retry
// with corrected inputs; anything else is a genuine failure.
func Recoverable(err error) bool {
	switch GetCode(err) {
	case ErrCodeUnsupportedConversion, ErrCodeDegenerateGeometry,
		ErrCodeEmptyContainer, ErrCodeTextOverflow:
		return true
	}
	return false
}
