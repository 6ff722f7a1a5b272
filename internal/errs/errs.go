// Package errs defines the error shape returned to API clients.
//
// Every failure that reaches the global error handler is rendered as an
// HTTPError, so clients always see the same JSON structure:
//
//	{"code":"NOT_FOUND","message":"Skill not found","status":404,"override":false,"errors":null}
package errs

import "strings"

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is the application error type rendered by the global error
// handler.
//
// Override marks messages that are safe to show verbatim in the UI.
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is an *HTTPError. It matches on type only, so
// errors.Is(err, &HTTPError{}) answers "is this an API error at all".
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// MakeUpperCaseWithUnderscores turns "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
