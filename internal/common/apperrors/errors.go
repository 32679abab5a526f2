// internal/common/apperrors/errors.go
// Stable error kinds surfaced to API callers

package apperrors

import (
	"errors"
	"net/http"
)

// Kind classifies an operation failure. Every rejected operation maps to
// exactly one kind so callers can choose a UI treatment without parsing
// message text.
type Kind string

const (
	Unauthenticated    Kind = "unauthenticated"
	InvalidArgument    Kind = "invalid-argument"
	NotFound           Kind = "not-found"
	PermissionDenied   Kind = "permission-denied"
	FailedPrecondition Kind = "failed-precondition"
	Internal           Kind = "internal"
)

// Error carries a kind alongside a human-readable message.
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

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from an error chain, defaulting to Internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

// HTTPStatus maps an error kind to its HTTP status code.
func HTTPStatus(kind Kind) int {
	switch kind {
	case Unauthenticated:
		return http.StatusUnauthorized
	case InvalidArgument:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case PermissionDenied:
		return http.StatusForbidden
	case FailedPrecondition:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
