// Package apperr defines the client-facing error taxonomy of the catalog API.
//
// Every error that reaches the HTTP layer is either an *Error, rendered with
// its stable numeric code, or an unexpected failure rendered as a generic 500.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind groups error codes by the HTTP status they are reported with.
type Kind int

const (
	KindBadRequest Kind = iota + 1
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindInternal
)

// Stable error codes. Clients depend on these values; never renumber them.
const (
	CodeBadRequest               = 400000
	CodeValidationError          = 400001
	CodeCategoryNameExists       = 400002
	CodeAccountAlreadyRegistered = 400003
	CodeItemNameExists           = 400004

	CodeUnauthorized            = 401000
	CodeInvalidLoginCredentials = 401001

	CodeForbidden  = 403000
	CodeNotCreator = 403001

	CodeNotFound = 404000

	CodeInternal = 500000
)

// Error is a domain error with a stable code and a client-safe message.
type Error struct {
	Kind    Kind
	Code    int
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%d %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%d %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error by code, so errors.Is(err, apperr.NotCreator())
// works without comparing messages.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// HTTPStatus maps the error kind to a response status.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// WithCause attaches an underlying error for logging. The message sent to the
// client is unchanged.
func (e *Error) WithCause(err error) *Error {
	cp := *e
	cp.Cause = err
	return &cp
}

func newError(kind Kind, code int, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func BadRequest(message string) *Error {
	if message == "" {
		message = "Bad request"
	}
	return newError(KindBadRequest, CodeBadRequest, message)
}

func Validation(message string) *Error {
	if message == "" {
		message = "Validation error"
	}
	return newError(KindBadRequest, CodeValidationError, message)
}

func CategoryNameExists(name string) *Error {
	return newError(KindBadRequest, CodeCategoryNameExists, fmt.Sprintf("Category %s already exists.", name))
}

func AccountAlreadyRegistered() *Error {
	return newError(KindBadRequest, CodeAccountAlreadyRegistered, "Account already registered.")
}

func ItemNameExists(name string) *Error {
	return newError(KindBadRequest, CodeItemNameExists, fmt.Sprintf("Item %s already exists.", name))
}

func Unauthorized() *Error {
	return newError(KindUnauthorized, CodeUnauthorized, "Unauthorized.")
}

func InvalidLoginCredentials() *Error {
	return newError(KindUnauthorized, CodeInvalidLoginCredentials, "Invalid email or password.")
}

func Forbidden() *Error {
	return newError(KindForbidden, CodeForbidden, "Forbidden.")
}

func NotCreator() *Error {
	return newError(KindForbidden, CodeNotCreator, "You are not the creator.")
}

func NotFound(what string) *Error {
	if what == "" {
		what = "Resource"
	}
	return newError(KindNotFound, CodeNotFound, fmt.Sprintf("%s not found.", what))
}

func Internal() *Error {
	return newError(KindInternal, CodeInternal, "Internal server error.")
}

// From returns err as an *Error, or a generic internal error carrying err as
// its cause when err is not part of the taxonomy.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal().WithCause(err)
}
