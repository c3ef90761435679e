// Package apperror defines the operational error type shared by the
// service layer and the HTTP handlers. An operational error carries a
// stable client-facing message together with the HTTP status code the
// handler should answer with, so handlers never have to inspect error
// strings to decide a response.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	Status  int    // HTTP status code to answer with
	Message string // client-facing message
}

func (e *Error) Error() string {
	return e.Message
}

func New(status int, format string, args ...any) *Error {
	return &Error{Status: status, Message: fmt.Sprintf(format, args...)}
}

func BadRequest(format string, args ...any) *Error {
	return New(http.StatusBadRequest, format, args...)
}

func Unauthorized(format string, args ...any) *Error {
	return New(http.StatusUnauthorized, format, args...)
}

func Forbidden(format string, args ...any) *Error {
	return New(http.StatusForbidden, format, args...)
}

func NotFound(format string, args ...any) *Error {
	return New(http.StatusNotFound, format, args...)
}

func Conflict(format string, args ...any) *Error {
	return New(http.StatusConflict, format, args...)
}

func Internal(format string, args ...any) *Error {
	return New(http.StatusInternalServerError, format, args...)
}

// FromError unwraps err looking for an operational *Error.
func FromError(err error) (*Error, bool) {
	var opErr *Error
	if errors.As(err, &opErr) {
		return opErr, true
	}
	return nil, false
}
