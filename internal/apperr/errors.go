package apperr

import (
	"errors"
)

// Kind classifies a failure for presentation.
type Kind string

const (
	KindMissingContext  Kind = "missing_context"
	KindUnauthorized    Kind = "unauthorized"
	KindForbidden       Kind = "forbidden"
	KindNotFoundAsEmpty Kind = "not_found_as_empty"
	KindOperationFailed Kind = "operation_failed"
	KindValidation      Kind = "validation_failed"
)

// Sentinels allow errors.Is(err, apperr.ErrForbidden) style checks.
var (
	ErrMissingContext  = &Error{Kind: KindMissingContext}
	ErrUnauthorized    = &Error{Kind: KindUnauthorized}
	ErrForbidden       = &Error{Kind: KindForbidden}
	ErrNotFoundAsEmpty = &Error{Kind: KindNotFoundAsEmpty}
	ErrOperationFailed = &Error{Kind: KindOperationFailed}
	ErrValidation      = &Error{Kind: KindValidation}
)

// Error is a user-facing failure. Message is safe to show as is.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func MissingContext(message string) *Error { return New(KindMissingContext, message) }

func Validation(message string) *Error { return New(KindValidation, message) }

func OperationFailed(message string, err error) *Error {
	return Wrap(KindOperationFailed, message, err)
}

// KindOf returns the kind of the first *Error in the chain, or "".
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
