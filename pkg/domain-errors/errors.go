// Package domainerrors defines the typed error values services return to callers.
//
// Every failure that crosses a service boundary carries a Code. Transport layers map
// codes to wire responses (see pkg/platform/httputil); services and tests branch on
// codes with HasCode or errors.Is against a New(code, "") template.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code identifies a class of failure.
type Code string

// Generic codes.
const (
	CodeBadRequest         Code = "bad_request"
	CodeValidation         Code = "validation_error"
	CodeInvalidInput       Code = "invalid_input"
	CodeNotFound           Code = "not_found"
	CodeConflict           Code = "conflict"
	CodeUnauthorized       Code = "unauthorized"
	CodeForbidden          Code = "forbidden"
	CodeInternal           Code = "internal_error"
	CodeTimeout            Code = "timeout"
	CodeInvariantViolation Code = "invariant_violation"
)

// Registry codes.
const (
	CodeNameNotAvailable    Code = "name_not_available"
	CodeNameExpired         Code = "name_expired"
	CodeCommitmentTooNew    Code = "commitment_too_new"
	CodeCommitmentTooOld    Code = "commitment_too_old"
	CodeCommitmentNotFound  Code = "commitment_not_found"
	CodeOperationProhibited Code = "operation_prohibited"
	CodeIncompatibleParent  Code = "incompatible_parent"
	CodeInsufficientFee     Code = "insufficient_fee"
)

// Error is a coded domain error. Message is safe to return to clients; Err is the
// underlying cause and is never serialized.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error carrying the same code, so callers can write
// errors.Is(err, dErrors.New(dErrors.CodeNotFound, "")).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// New creates a coded error.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Newf creates a coded error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and client-safe message to an underlying error.
func Wrap(err error, code Code, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// CodeOf returns the code of the outermost domain error in the chain, or
// CodeInternal when the chain carries none.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// HasCode reports whether the outermost domain error in the chain has code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// Is reports whether err matches target. Re-exported so callers importing this
// package as dErrors do not also need the errors package.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
