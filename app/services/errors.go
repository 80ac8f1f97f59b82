// Package services implements the business rules on top of the repositories.
package services

import "net/http"

// Error is a business error with the HTTP status it should map to.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string { return e.Message }

// NewError builds a service error.
func NewError(code int, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// HTTPStatus extracts the status code from err, defaulting to 500.
func HTTPStatus(err error) int {
	if se, ok := err.(*Error); ok {
		return se.Code
	}
	return http.StatusInternalServerError
}
