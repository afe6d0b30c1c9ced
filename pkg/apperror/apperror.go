// Package apperror defines the error shape surfaced to API callers.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the structured error returned by every service operation.
// Code doubles as the HTTP status written to the caller. When an upstream
// subsystem produced the root error, Code, Reason and Message carry the
// upstream triple unchanged apart from the subsystem prefix on Reason.
type Error struct {
	Code    int    `json:"code"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Code, e.Reason, e.Message)
}

// New creates an Error with an explicit code, reason and message.
func New(code int, reason, message string) *Error {
	return &Error{Code: code, Reason: reason, Message: message}
}

// BadRequest creates a 400-class client input error.
func BadRequest(message string) *Error {
	return &Error{
		Code:    http.StatusBadRequest,
		Reason:  http.StatusText(http.StatusBadRequest),
		Message: message,
	}
}

// MethodNotAllowed creates a 405-class error for operations a backend
// descriptor disallows.
func MethodNotAllowed(reason, message string) *Error {
	return &Error{Code: http.StatusMethodNotAllowed, Reason: reason, Message: message}
}

// NotImplemented marks a deliberately unfinished operation.
func NotImplemented(message string) *Error {
	return &Error{
		Code:    http.StatusNotImplemented,
		Reason:  "Not Implemented",
		Message: message,
	}
}

// Internal creates a 500-class infrastructure error.
func Internal(message string) *Error {
	return &Error{
		Code:    http.StatusInternalServerError,
		Reason:  http.StatusText(http.StatusInternalServerError),
		Message: message,
	}
}

// Upstream re-wraps a structured error from a named subsystem, preserving
// the original code and message and prefixing the reason with the
// subsystem name ("Storage Service", "DMS Service", "Schema Service").
func Upstream(subsystem string, code int, reason, message string) *Error {
	return &Error{
		Code:    code,
		Reason:  subsystem + ": " + reason,
		Message: message,
	}
}

// Unparseable reports an upstream error body that could not be decoded
// into the structured triple.
func Unparseable(subsystem string) *Error {
	return &Error{
		Code:    http.StatusInternalServerError,
		Reason:  http.StatusText(http.StatusInternalServerError),
		Message: fmt.Sprintf("%s: error response could not be parsed", subsystem),
	}
}

// As extracts an *Error from err, or wraps err as an internal error so
// callers always have the caller-facing triple to write.
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err.Error())
}
