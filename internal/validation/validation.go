// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules (like
// required fields or email formats) defined in struct tags
// and extracts validation errors into a format the client can
// understand. The password policy is registered on the shared
// validator under the `password` tag, and `notblank` rejects text
// made only of whitespace.
package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// shared is safe for concurrent use and caches struct metadata.
var shared = New()

// New returns a validator with the custom tags registered and field names
// reported by their json tag.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	// Registration only fails on an empty tag or a nil func.
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return IsValidPassword(fl.Field().String())
	})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return v
}

// Struct validates s with the shared validator.
func Struct(s any) error {
	return shared.Struct(s)
}
