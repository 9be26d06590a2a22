// Package errs defines the error shapes returned to API clients.
//
// Every failure that reaches the HTTP boundary is converted into an
// *HTTPError so clients always receive the same JSON structure:
// a machine-friendly code, a human-readable message, the status,
// and optional per-field validation errors.
package errs

import "strings"

// FieldError represents a field-level validation error.
//
//	{ "field": "password", "error": "must include a digit" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ActionType is a string-based enum describing what the client should do.
type ActionType string

const (
	// ActionTypeRedirect tells the client to navigate to Value.
	ActionTypeRedirect ActionType = "redirect"
)

// Action is an optional "what to do next" hint, e.g. redirect to sign in
// after the session expired.
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// HTTPError is the error type serialized to API clients.
//
// Override signals that Message is written for end users and may be shown
// as-is in the UI (e.g. "An account with that email already exists.").
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors"`
	Action   *Action      `json:"action"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError. Code and status are not
// compared.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// MakeUpperCaseWithUnderscores converts "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
