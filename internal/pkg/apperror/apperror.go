package apperror

import (
	"errors"
	"net/http"
)

// Error carries the nominal HTTP status for a logical failure. The transport
// always answers 200; the status travels in the response envelope.
type Error struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Errs       []string `json:"errors,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

func New(statusCode int, message string, errs ...string) *Error {
	return &Error{StatusCode: statusCode, Message: message, Errs: errs}
}

func BadRequest(message string, errs ...string) *Error {
	return New(http.StatusBadRequest, message, errs...)
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message)
}

func Internal(message string) *Error {
	return New(http.StatusInternalServerError, message)
}

// As unwraps err into an *Error when possible.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// StatusOf reports the nominal status code for err, defaulting to 500.
func StatusOf(err error) int {
	if e, ok := As(err); ok {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}
