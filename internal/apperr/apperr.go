package apperr

import (
	"errors"
	"net/http"
)

// Error is an application error carrying the HTTP status it should render as.
type Error struct {
	Status  int    `json:"statusCode"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message)
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

func Conflict(message string) *Error {
	return New(http.StatusConflict, message)
}

func Unprocessable(message string) *Error {
	return New(http.StatusUnprocessableEntity, message)
}

func Internal(message string) *Error {
	return New(http.StatusInternalServerError, message)
}

// From extracts the *Error from err's chain. Unrecognized errors render as a
// plain 500 so internals never leak into responses.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("An internal error occurred.")
}
