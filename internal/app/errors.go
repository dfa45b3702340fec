package app

import (
	"errors"
	"fmt"
)

// ErrorKind is the stable error taxonomy surfaced to callers. Errors are
// synchronous and never retried by the engine; the caller decides.
type ErrorKind string

const (
	// KindNotFound marks an absent match, territory or referenced card.
	KindNotFound ErrorKind = "not_found"
	// KindBadRequest marks an illegal or malformed action.
	KindBadRequest ErrorKind = "bad_request"
	// KindForbidden marks a creator-only operation attempted by another actor.
	KindForbidden ErrorKind = "forbidden"
)

// Error is a typed engine error carrying its taxonomy kind.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

// NotFound builds a not-found error.
func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// BadRequest builds a bad-request error.
func BadRequest(format string, args ...any) error {
	return &Error{Kind: KindBadRequest, Message: fmt.Sprintf(format, args...)}
}

// Forbidden builds a forbidden error.
func Forbidden(format string, args ...any) error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the taxonomy kind from an error, or empty if the error is
// not an engine error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
