// Package apperr defines the typed errors services return. Each error carries
// the HTTP status it maps to, so the transport layer never guesses.
package apperr

import "net/http"

const (
	CodeValidation   = "VALIDATION_FAILED"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeConfig       = "CONFIG_ERROR"
	CodeUnexpected   = "INTERNAL_ERROR"
)

type Error struct {
	Code    string
	Status  int
	Message string
	// Fields holds per-field validation messages, keyed by json field name.
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(message string, fields map[string]string) *Error {
	return &Error{Code: CodeValidation, Status: http.StatusBadRequest, Message: message, Fields: fields}
}

func Unauthorized(message string) *Error {
	return &Error{Code: CodeUnauthorized, Status: http.StatusUnauthorized, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Code: CodeForbidden, Status: http.StatusForbidden, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Code: CodeNotFound, Status: http.StatusNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Code: CodeConflict, Status: http.StatusConflict, Message: message}
}

// Config marks a deployment problem (missing secret, unreachable dependency
// config). Reported as a 500 without leaking the detail.
func Config(message string) *Error {
	return &Error{Code: CodeConfig, Status: http.StatusInternalServerError, Message: message}
}

func Unexpected(err error) *Error {
	return &Error{Code: CodeUnexpected, Status: http.StatusInternalServerError, Message: "Internal server error", Err: err}
}
