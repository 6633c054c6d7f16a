// Package errs defines the error types rendered at the HTTP boundary.
//
// Domain and repository code return these (or plain errors that the global
// error handler later classifies) so clients always receive one consistent
// envelope: a machine code, a message, and optional field-level errors.
package errs

import "strings"

// FieldError is a single field-scoped validation failure.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is the error envelope serialized to clients.
//
// Code is a stable machine-readable token (e.g. "BAD_REQUEST",
// "USER_NOT_FOUND"), Message is for humans, Status is the HTTP status to
// respond with, and Errors carries per-field validation detail when present.
type HTTPError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Status  int          `json:"status"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError, so errors.Is can be used
// for coarse type checks without comparing codes.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// MakeUpperCaseWithUnderscores turns HTTP status text into a machine code:
// "Bad Request" -> "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
