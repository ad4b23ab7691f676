package aggregates

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode classifies page, ledger and template write failures. Services
// and handlers branch on the code, never on error text.
type ErrorCode string

const (
	CodeValidation         ErrorCode = "validation"
	CodeUnauthenticated    ErrorCode = "unauthenticated"
	CodeNotFound           ErrorCode = "not_found"
	CodeConflict           ErrorCode = "conflict"
	CodeInvariantViolation ErrorCode = "invariant_violation"
	CodeRetryable          ErrorCode = "retryable"
	CodeInternal           ErrorCode = "internal"
)

// Error is what every write path surfaces. Op names the failed operation
// (e.g. "Content.Page.CreatePage"); Cause keeps the storage-level error for
// logs and errors.Is/As, and never reaches clients.
type Error struct {
	Code    ErrorCode
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	op := strings.TrimSpace(e.Op)
	msg := strings.TrimSpace(e.Message)
	switch {
	case op != "" && msg != "":
		return fmt.Sprintf("%s: %s (%s)", op, msg, e.Code)
	case op != "":
		return fmt.Sprintf("%s (%s)", op, e.Code)
	case msg != "":
		return fmt.Sprintf("%s (%s)", msg, e.Code)
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// NewError builds an error with explicit code, operation and message.
func NewError(code ErrorCode, op, message string, cause error) error {
	return &Error{
		Code:    code,
		Op:      strings.TrimSpace(op),
		Message: strings.TrimSpace(message),
		Cause:   cause,
	}
}

// Wrap annotates err with a code and operation, reusing its text as the
// message. Only for errors whose text is already caller-safe; raw storage
// errors go through NewError with a curated message instead.
func Wrap(code ErrorCode, op string, err error) error {
	if err == nil {
		return nil
	}
	return NewError(code, op, err.Error(), err)
}

// IsCode reports whether err (anywhere in its chain) carries the given code.
func IsCode(err error, code ErrorCode) bool {
	var aggErr *Error
	if !errors.As(err, &aggErr) {
		return false
	}
	return aggErr.Code == code
}

// CodeOf extracts the error code when available.
func CodeOf(err error) ErrorCode {
	var aggErr *Error
	if !errors.As(err, &aggErr) {
		return ""
	}
	return aggErr.Code
}

// PublicMessage is the description API clients may see for err. Internal and
// retryable failures collapse to fixed strings so storage driver text
// (constraint names, SQLSTATE detail) never leaves the server.
func PublicMessage(err error) string {
	var aggErr *Error
	if !errors.As(err, &aggErr) {
		return "internal error"
	}
	switch aggErr.Code {
	case CodeInternal:
		return "internal error"
	case CodeRetryable:
		return "service temporarily unavailable"
	}
	if msg := strings.TrimSpace(aggErr.Message); msg != "" {
		return msg
	}
	return string(aggErr.Code)
}
