// Package validation binds and validates request payloads.
//
// Request structs implement Validatable (usually by running
// validator.Struct on themselves) and BindAndValidate turns any failure into
// a 400 with field-level errors the client can act on.
package validation

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/jnowak/users-service/internal/errs"
)

// Validatable is implemented by request payload types that know how to
// validate themselves. Implementations typically run validator tags, plus any
// rule that cannot be expressed as a tag (returned as
// CustomValidationErrors).
type Validatable interface {
	Validate() error
}

// CustomValidationError is a single validation issue that cannot be expressed
// via validator tags (e.g. "query parameter missing entirely").
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors satisfying
// the error interface.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// BindAndValidate binds the request into payload and validates it.
//
// payload must be a pointer so echo's binder can populate it. Bind failures
// (malformed JSON, non-numeric path/query values) and validation failures
// both surface as *errs.HTTPError with status 400.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return errs.NewBadRequestError(bindErrorMessage(err), nil, nil)
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewBadRequestError(msg, nil, fieldErrors)
	}

	return nil
}

// bindErrorMessage extracts a reasonable client message from an echo bind
// error without depending on echo's internal error formatting.
func bindErrorMessage(err error) string {
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if msg, ok := echoErr.Message.(string); ok && msg != "" {
			return msg
		}
	}
	return http.StatusText(http.StatusBadRequest)
}

func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var customErrs CustomValidationErrors
	if errors.As(err, &customErrs) {
		for _, cerr := range customErrs {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: cerr.Field,
				Error: cerr.Message,
			})
		}
		return "Validation failed", fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "Validation failed", []errs.FieldError{{Field: "request", Error: err.Error()}}
	}

	for _, ferr := range validationErrors {
		field := fieldName(ferr)
		var msg string

		switch ferr.Tag() {
		case "required":
			msg = "is required"
		case "min":
			if ferr.Type().Kind() == reflect.String || isStringPtr(ferr.Type()) {
				msg = fmt.Sprintf("must be at least %s characters", ferr.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", ferr.Param())
			}
		case "max":
			if ferr.Type().Kind() == reflect.String || isStringPtr(ferr.Type()) {
				msg = fmt.Sprintf("must not exceed %s characters", ferr.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", ferr.Param())
			}
		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", ferr.Param())
		default:
			if ferr.Param() != "" {
				msg = fmt.Sprintf("%s:%s", ferr.Tag(), ferr.Param())
			} else {
				msg = ferr.Tag()
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{Field: field, Error: msg})
	}

	return "Validation failed", fieldErrors
}

// fieldName converts a Go struct field name into its wire form,
// e.g. FirstName -> first_name.
func fieldName(ferr validator.FieldError) string {
	name := ferr.Field()
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isStringPtr(t reflect.Type) bool {
	return t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.String
}
