// Package apierr defines the error surface shared by the REST handlers and
// the GraphQL resolvers. Every failure that reaches a client carries a stable
// code from code.go; the catalog in catalog.go is the only place new ones
// are minted.
package apierr

import "fmt"

// Error pairs a client-facing code and message with the HTTP status that a
// REST handler would answer with. An optional cause is kept for logs and
// errors.Is chains but never leaves the process.
type Error struct {
	code    Code
	message string
	status  int
	cause   error
}

// New builds an Error with no underlying cause.
func New(code Code, status int, message string) *Error {
	return &Error{code: code, message: message, status: status}
}

// Wrap builds an Error around a cause so callers can still unwrap it.
func Wrap(code Code, status int, message string, cause error) *Error {
	return &Error{code: code, message: message, status: status, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Code() Code { return e.code }

func (e *Error) Message() string { return e.message }

// Status is the HTTP status the error maps to.
func (e *Error) Status() int { return e.status }

// ErrorResponse is the JSON envelope clients receive.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

// Response strips the error down to its client-safe fields.
func (e *Error) Response() ErrorResponse {
	return ErrorResponse{
		Error: ErrorBody{
			Code:    e.code,
			Message: e.message,
		},
	}
}
