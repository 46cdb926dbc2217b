// Package errors provides structured error types for autoreadme.
//
// Every failure the tool can report carries a machine-readable [Code] so the
// CLI can decide how to present it and tests can assert on the category
// without matching message text.
//
// # Error Codes
//
//   - CONFIG_NOT_FOUND: no configuration file at any candidate path
//   - CONFIG_MALFORMED: the configuration file is not valid YAML
//   - MISSING_FIELD: a generator read a required key that is absent
//   - TEMPLATE_NOT_FOUND: a requested template could not be located
//   - FETCH_FAILED: a remote lookup failed (callers usually degrade)
//   - INTEGRATION_FAILED: an integration's setup step failed
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMissingField, "missing required field %q", "title")
//	if errors.Is(err, errors.ErrCodeMissingField) {
//	    // Handle missing field
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeConfigMalformed, origErr, "parse %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error category. A Code is itself an error so
// it can be the target of errors.Is; every *Error in a chain matches its
// own code.
type Code string

func (c Code) Error() string { return string(c) }

const (
	ErrCodeConfigNotFound  Code = "CONFIG_NOT_FOUND"
	ErrCodeConfigMalformed Code = "CONFIG_MALFORMED"
	ErrCodeMissingField    Code = "MISSING_FIELD"
	ErrCodeInvalidInput    Code = "INVALID_INPUT"

	ErrCodeTemplateNotFound Code = "TEMPLATE_NOT_FOUND"

	ErrCodeFetchFailed       Code = "FETCH_FAILED"
	ErrCodeIntegrationFailed Code = "INTEGRATION_FAILED"
	ErrCodeGit               Code = "GIT_ERROR"

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is makes errors.Is(err, code) true for this error's code.
func (e *Error) Is(target error) bool {
	c, ok := target.(Code)
	return ok && c == e.Code
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

// Is reports whether any error in err's chain carries code. A dispatch
// failure wrapping a git failure matches both ErrCodeIntegrationFailed and
// ErrCodeGit.
func Is(err error, code Code) bool {
	return err != nil && errors.Is(err, code)
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types the code prefix is dropped; a wrapped cause is kept
// so the user still sees what the underlying system reported.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// MissingField reports that a required configuration key is absent.
func MissingField(key string) *Error {
	return New(ErrCodeMissingField, "missing required field %q", key)
}
