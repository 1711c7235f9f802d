package apperror

import (
	"errors"
	"fmt"
)

// Error kinds. Every error built by this package unwraps to exactly one of them.
var (
	ErrValidation = errors.New("validation error")
	ErrDomain     = errors.New("business rule violation")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
)

// Error is a classified error carrying a human-readable message.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

// Kind returns the sentinel the error belongs to.
func (e *Error) Kind() error { return e.kind }

func newError(kind error, format string, args ...any) *Error {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &Error{kind: kind, msg: msg}
}

// Validation reports malformed input to a value constructor.
func Validation(format string, args ...any) *Error {
	return newError(ErrValidation, format, args...)
}

// Domain reports a business-rule violation.
func Domain(format string, args ...any) *Error {
	return newError(ErrDomain, format, args...)
}

// NotFound reports a missing entity.
func NotFound(format string, args ...any) *Error {
	return newError(ErrNotFound, format, args...)
}

// Forbidden reports an actor acting on something it does not own.
func Forbidden(format string, args ...any) *Error {
	return newError(ErrForbidden, format, args...)
}

// KindOf returns the sentinel kind of err, or nil when err is not classified.
func KindOf(err error) error {
	for _, kind := range []error{ErrValidation, ErrDomain, ErrNotFound, ErrForbidden} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// Message returns the human-readable message of a classified error.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.msg
	}
	return err.Error()
}
