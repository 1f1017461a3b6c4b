// Package apperr defines the closed set of error kinds the service can
// surface to a client. Handlers and services return *Error values; the HTTP
// boundary maps the kind to a status code and never inspects anything else.
package apperr

import "errors"

// Kind discriminates the error variants.
type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindPreconditionFailed
)

// Error is a tagged outcome carrying a client-safe message. Redirect is only
// meaningful for the forbidden variant. Err holds the internal cause, if
// any, and is never serialized.
type Error struct {
	Kind     Kind
	Message  string
	Redirect string
	Err      error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "internal error"
}

func (e *Error) Unwrap() error {
	return e.Err
}

// BadRequest reports invalid input or a business-rule violation.
func BadRequest(message string) *Error {
	return &Error{Kind: KindBadRequest, Message: message}
}

// Unauthorized reports missing or rejected credentials.
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// Forbidden reports a refused request, optionally pointing the client at a
// redirect target.
func Forbidden(message, redirect string) *Error {
	return &Error{Kind: KindForbidden, Message: message, Redirect: redirect}
}

// NotFound reports a missing resource.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// PreconditionFailed reports an unmet server-side precondition.
func PreconditionFailed(message string) *Error {
	return &Error{Kind: KindPreconditionFailed, Message: message}
}

// Internal wraps an unclassified failure. The message shown to clients is
// decided at the boundary, not here.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Err: err}
}

// KindOf classifies err, defaulting to KindInternal for anything that is not
// an *Error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// From extracts the *Error from err, or nil if there is none.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}
