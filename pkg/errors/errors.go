// Package errors provides structured error types for owlnet.
//
// Every failure of an ontology conversion carries a machine-readable [Code]
// so that the CLI, the HTTP API, and library callers can react to the kind of
// failure without parsing messages.
//
// # Error Codes
//
//   - MALFORMED_INPUT: the document is not an ontology (no root wrapper)
//   - MISSING_DEFAULT_NAME: no default prefix to derive the network name from
//   - EMPTY_RESULT: no classes survived extraction
//   - CIRCULAR_STRUCTURE: a node is its own ancestor
//   - UNKNOWN_QUERY: a derived view that does not exist was requested
//   - INVALID_INPUT, INVALID_CONFIG, INVALID_FORMAT: caller mistakes
//   - INTERNAL_ERROR: everything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeEmptyResult, "no classes were found")
//	if errors.Is(err, errors.ErrCodeEmptyResult) {
//	    // report a validation failure
//	}
//
//	err := errors.Wrap(errors.ErrCodeMalformedInput, xmlErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Conversion failures
	ErrCodeMalformedInput     Code = "MALFORMED_INPUT"
	ErrCodeMissingDefaultName Code = "MISSING_DEFAULT_NAME"
	ErrCodeEmptyResult        Code = "EMPTY_RESULT"
	ErrCodeCircularStructure  Code = "CIRCULAR_STRUCTURE"
	ErrCodeTooManyParents     Code = "TOO_MANY_PARENTS"

	// Contract violations inside the engine
	ErrCodeUnknownQuery Code = "UNKNOWN_QUERY"

	// Caller errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"

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

// As is the standard library's errors.As, re-exported so callers need only
// one errors import.
func As(err error, target any) bool {
	return errors.As(err, target)
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

// IsValidation reports whether err is a conversion that ran but produced a
// network the editor cannot use (empty, circular, or with an oversized
// probability table), as opposed to input
// that could not be read at all.
func IsValidation(err error) bool {
	switch GetCode(err) {
	case ErrCodeEmptyResult, ErrCodeCircularStructure, ErrCodeTooManyParents:
		return true
	}
	return false
}
