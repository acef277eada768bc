package apperr

import (
	"errors"
	"fmt"
)

// Kind buckets an error into the engine's failure taxonomy. Handlers map a
// Kind to an HTTP status; usecases pick the Kind when they fail.
type Kind string

const (
	KindValidation  Kind = "VALIDATION"
	KindNotFound    Kind = "NOT_FOUND"
	KindState       Kind = "STATE_CONFLICT"
	KindPolicy      Kind = "POLICY_VIOLATION"
	KindOverpayment Kind = "OVERPAYMENT"
	KindConcurrency Kind = "CONCURRENCY_CONFLICT"
	KindInternal    Kind = "INTERNAL"
)

// Error carries a machine-readable code alongside the taxonomy kind.
// Code values are stable API surface (SUSPENDED, LIMIT_EXCEEDED, ...).
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets sentinel apperr values match wrapped instances by kind+code,
// so `errors.Is(err, loan.ErrActiveLoanExists)` works across layers.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

func New(kind Kind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

func Newf(kind Kind, code, format string, args ...any) *Error {
	return &Error{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap keeps the cause chain while tagging it with kind+code.
func Wrap(err error, kind Kind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg, Err: err}
}

// KindOf extracts the taxonomy kind of any error; unknown errors are Internal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// CodeOf extracts the machine code of any error, empty when untagged.
func CodeOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}
