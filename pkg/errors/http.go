package errors

import (
	"errors"
	"net/http"
)

// HTTPError is an error that carries the HTTP status the delivery layer
// should answer with.
type HTTPError struct {
	StatusCode int    `json:"-"`
	Code       int    `json:"error_code"`
	Message    string `json:"message"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates an HTTPError whose error code equals the status.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Code: statusCode, Message: message}
}

func NewBadRequestError(message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message)
}

func NewNotFoundError(message string) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message)
}

func NewConflictError(message string) *HTTPError {
	return NewHTTPError(http.StatusConflict, message)
}

var ErrInternalServerError = NewHTTPError(http.StatusInternalServerError, "internal server error")

// AsHTTPError unwraps err into an HTTPError.
func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	if errors.As(err, &he) {
		return he, true
	}
	return nil, false
}
