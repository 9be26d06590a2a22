package errs

import (
	"net/http"
)

func statusCode(status int) string {
	return MakeUpperCaseWithUnderscores(http.StatusText(status))
}

// NewUnauthorizedError creates a 401 error. Used when no company is signed
// in, or credentials do not match.
func NewUnauthorizedError(message string, override bool) *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusUnauthorized),
		Message:  message,
		Status:   http.StatusUnauthorized,
		Override: override,
	}
}

// NewForbiddenError creates a 403 error. Used when the signed-in company
// acts on another company's resources.
func NewForbiddenError(message string, override bool) *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusForbidden),
		Message:  message,
		Status:   http.StatusForbidden,
		Override: override,
	}
}

// NewBadRequestError creates a 400 error.
//
// code overrides the default "BAD_REQUEST" when non-nil, errors carries
// per-field validation failures and action an optional client hint.
func NewBadRequestError(message string, override bool, code *string, errors []FieldError, action *Action) *HTTPError {
	formattedCode := statusCode(http.StatusBadRequest)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
		Action:   action,
	}
}

// NewNotFoundError creates a 404 error.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	formattedCode := statusCode(http.StatusNotFound)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

// NewConflictError creates a 409 error for uniqueness conflicts such as a
// second signup with an email that is already registered.
func NewConflictError(message string, override bool, code *string, errors []FieldError) *HTTPError {
	formattedCode := statusCode(http.StatusConflict)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusConflict,
		Override: override,
		Errors:   errors,
	}
}

// NewRequestEntityTooLargeError creates a 413 error for oversized uploads.
func NewRequestEntityTooLargeError(message string) *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusRequestEntityTooLarge),
		Message:  message,
		Status:   http.StatusRequestEntityTooLarge,
		Override: true,
	}
}

// NewTooManyRequestsError creates a 429 error, returned by the rate limiter.
func NewTooManyRequestsError() *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusTooManyRequests),
		Message:  "Too many requests. Please slow down and try again.",
		Status:   http.StatusTooManyRequests,
		Override: true,
	}
}

// NewInternalServerError creates a generic 500. The real cause is logged,
// never sent to the client.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusInternalServerError),
		Message:  http.StatusText(http.StatusInternalServerError),
		Status:   http.StatusInternalServerError,
		Override: false,
	}
}
