package errors

import (
	"errors"
	"net/http"
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

func NewBadRequest(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusBadRequest}
}

func NewUnauthorized(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusUnauthorized}
}

func NewNotFound(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusNotFound}
}

// NewConflict marks outcomes that need a distinct "state conflict" answer,
// e.g. login attempts against an unconfirmed email address.
func NewConflict(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusConflict}
}

func statusCode(err error) int {
	var e *ErrorWithStatusCode
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}

func IsNotFound(err error) bool {
	return statusCode(err) == http.StatusNotFound
}

func IsBadRequest(err error) bool {
	return statusCode(err) == http.StatusBadRequest
}

func IsUnauthorized(err error) bool {
	return statusCode(err) == http.StatusUnauthorized
}

func IsConflict(err error) bool {
	return statusCode(err) == http.StatusConflict
}
