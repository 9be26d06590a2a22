package validation

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/deppfellow/job-board/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
//   - Define a request struct with validator tags (`validate:"required,email,max=45"`)
//   - Implement Validate() error that calls validation.Struct(req)
//   - Return CustomValidationErrors for rules that tags cannot express
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single validation issue for a specific field.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// BindAndValidate binds request data into payload and validates it.
//
// payload must be a pointer to a struct. Bind failures (malformed JSON,
// type mismatches) and validation failures both come back as a 400
// *errs.HTTPError, the latter with per-field errors.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return errs.NewBadRequestError(bindErrorMessage(err), false, nil, nil, nil)
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewBadRequestError(msg, true, nil, fieldErrors, nil)
	}

	return nil
}

func bindErrorMessage(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if msg, ok := he.Message.(string); ok && msg != "" {
			return msg
		}
	}
	return "Invalid request body"
}

func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var custom CustomValidationErrors
	if errors.As(err, &custom) {
		for _, e := range custom {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: e.Field,
				Error: e.Message,
			})
		}
		return "Validation failed", fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a validation failure at all (e.g. InvalidValidationError).
		return "Validation failed", []errs.FieldError{{Field: "request", Error: err.Error()}}
	}

	for _, fe := range validationErrors {
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: fe.Field(),
			Error: fieldErrorMessage(fe),
		})
	}

	return "Validation failed", fieldErrors
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"

	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())

	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())

	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())

	case "email":
		return "must be a valid email address"

	case "password":
		return fmt.Sprintf(
			"must be at least %d characters and include a number, an uppercase letter, a lowercase letter and a symbol (%s)",
			PasswordMinLength, PasswordSymbols,
		)

	case "datetime":
		return fmt.Sprintf("must be a date in the format %s", fe.Param())

	case "dive":
		return "some items are invalid"

	default:
		if fe.Param() != "" {
			return fmt.Sprintf("%s: %s:%s", fe.Field(), fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("%s: %s", fe.Field(), fe.Tag())
	}
}
