// Package domainerrors provides coded errors shared by every layer.
//
// Services attach a Code so the transport layer can pick the right external
// representation without string matching. Stores stay code-free and return
// sentinel errors (pkg/platform/sentinel); services translate.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies an error for callers. Values double as the wire-level
// "error" field, so they are stable snake_case strings.
type Code string

const (
	// CodeBadRequest covers structurally broken input: unparseable bodies,
	// wrong types, absent required parameters.
	CodeBadRequest Code = "bad_request"

	// CodeValidation covers well-formed input that violates a domain rule:
	// out-of-range coordinates, non-positive age, unknown blood group.
	// Never retried; always caller-fixable.
	CodeValidation Code = "validation_failed"

	// CodeInvalidInput covers malformed identifiers at trust boundaries.
	CodeInvalidInput Code = "invalid_input"

	// CodeConflict covers uniqueness violations, e.g. a phone number that is
	// already registered. Caller-fixable, not retried.
	CodeConflict Code = "conflict"

	// CodeNotFound covers lookups for records that do not exist.
	CodeNotFound Code = "not_found"

	// CodeUnavailable covers storage or collaborator outages. Surfaced as-is;
	// retry policy belongs to the caller.
	CodeUnavailable Code = "unavailable"

	// CodeInternal covers unexpected failures. Descriptions are withheld from
	// external responses.
	CodeInternal Code = "internal_error"

	// CodeInvariantViolation marks broken aggregate invariants. Raised by
	// model constructors; services usually re-map it to CodeValidation before
	// it crosses the transport boundary.
	CodeInvariantViolation Code = "invariant_violation"
)

// Error is the concrete coded error. Construct via New or Wrap.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the cause for errors.Is / errors.As chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a coded error with no cause.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Newf creates a coded error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying cause. A nil cause
// yields nil so call sites can wrap unconditionally.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Err: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// Is is shorthand for HasCode, matching the errors.Is reading at call sites.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf extracts the code from err, defaulting to CodeInternal for uncoded
// errors so nothing leaks through the transport layer unclassified.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// MessageOf extracts the caller-facing message from err. Uncoded errors get
// a generic message; their details stay server-side.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal error"
}
