package apperror

import (
	"errors"
	"fmt"
)

type Kind int

const (
	Internal Kind = iota
	NotFound
	Conflict
	InvalidArgument
	Unauthorized
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	case InvalidArgument:
		return "invalid_argument"
	case Unauthorized:
		return "unauthorized"
	default:
		return "internal"
	}
}

// Error carries a user-facing (Vietnamese) message alongside the kind used
// to pick the HTTP status. Err is the wrapped cause, if any.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NewNotFound(message string) *Error {
	return New(NotFound, message)
}

func NewConflict(message string) *Error {
	return New(Conflict, message)
}

func NewInvalid(message string) *Error {
	return New(InvalidArgument, message)
}

func NewInvalidFields(message string, fields map[string]string) *Error {
	return &Error{Kind: InvalidArgument, Message: message, Fields: fields}
}

func NewUnauthorized(message string) *Error {
	return New(Unauthorized, message)
}

// KindOf returns Internal for anything that is not an *Error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
