// Package errors provides structured error types for viewstack.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library and the CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The tree-model codes map one-to-one onto the failure classes of the
// container algebra:
//   - DOMAIN_ERROR: a value outside a dimension's declared domain
//   - KEY_ARITY: a key tuple whose length differs from a map's key dimensions
//   - SIGNATURE_MISMATCH: a node whose shape conflicts with a map's entries
//   - NO_SUCH_KEY / NO_SUCH_BRANCH: lookup misses on maps and composites
//   - SELECTION_EMPTY: a selection that leaves nothing behind
//
// The remaining codes (INVALID_*, FILE_NOT_FOUND, INTERNAL_ERROR) belong to
// the document, query and CLI layers. None of these conditions is
// transient; nothing in viewstack retries.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeKeyArity, "key %v has %d components, want %d", key, len(key), n)
//	if errors.Is(err, errors.ErrCodeKeyArity) {
//	    // Handle arity mismatch
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
	// Tree model errors
	ErrCodeDomain         Code = "DOMAIN_ERROR"
	ErrCodeKeyArity       Code = "KEY_ARITY"
	ErrCodeSignature      Code = "SIGNATURE_MISMATCH"
	ErrCodeNoSuchKey      Code = "NO_SUCH_KEY"
	ErrCodeNoSuchBranch   Code = "NO_SUCH_BRANCH"
	ErrCodeSelectionEmpty Code = "SELECTION_EMPTY"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidQuery  Code = "INVALID_QUERY"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource not found errors
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

// Is reports whether any *Error in err's chain carries the given code.
// A SELECTION_EMPTY wrapped by an INVALID_FORMAT is therefore both.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode extracts the outermost error code from an error, if available.
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
