package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed client-side error with HTTP awareness. Status is
// zero when the failure never reached the server (network, decode).
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status,omitempty"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for the failure classes the console distinguishes.
var (
	ErrNetwork        = New("NETWORK", 0, "could not reach the server")
	ErrDecode         = New("DECODE", 0, "unexpected response from the server")
	ErrSessionExpired = New("SESSION_EXPIRED", http.StatusUnauthorized, "session expired, please log in again")
	ErrNoSession      = New("NO_SESSION", 0, "not logged in")
	ErrNotFound       = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrValidation     = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrServer         = New("SERVER_ERROR", http.StatusInternalServerError, "something went wrong")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrServer.Code, ErrServer.Status, ErrServer.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// IsUnauthorized reports whether err maps to an authentication failure.
func IsUnauthorized(err error) bool {
	e := FromError(err)
	return e != nil && (e.Code == ErrSessionExpired.Code || e.Status == http.StatusUnauthorized)
}

// UserMessage extracts the message a view should surface for err.
func UserMessage(err error) string {
	e := FromError(err)
	if e == nil {
		return ""
	}
	return e.Message
}
