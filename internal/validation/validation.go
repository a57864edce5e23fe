// Package validation binds request data and validates it.
//
// It uses the `validator` library to enforce rules defined in struct tags
// and turns validation failures into 422 errors listing every bad field.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/deppfellow/heroes/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct runs the tag rules on v.
func Struct(v any) error {
	return validate.Struct(v)
}

// Validatable is implemented by request payload types that know how to
// validate themselves, usually by calling Struct.
type Validatable interface {
	Validate() error
}

// Binder is implemented by payloads that read themselves from the request
// instead of going through echo's default binder. echo only binds query
// parameters for GET, HEAD and DELETE, so POST endpoints driven by the query
// string implement it.
type Binder interface {
	Bind(c echo.Context) error
}

// CustomValidationError is a validation issue that cannot be expressed with
// tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// BindAndValidate fills payload from the request and validates it.
//
// Malformed input answers 400. Input that parses but breaks a rule, for
// example a missing required parameter, answers 422 with field errors.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := bind(c, payload); err != nil {
		return errs.NewBadRequestError(bindMessage(err), false, nil, nil)
	}

	if err := payload.Validate(); err != nil {
		msg, fieldErrors := extractValidationError(err)
		if fieldErrors == nil {
			return err
		}
		return errs.NewUnprocessableEntityError(msg, true, fieldErrors)
	}

	return nil
}

func bind(c echo.Context, payload Validatable) error {
	if b, ok := payload.(Binder); ok {
		return b.Bind(c)
	}
	return c.Bind(payload)
}

func bindMessage(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if msg, ok := he.Message.(string); ok {
			return msg
		}
	}
	return "Invalid request"
}

// extractValidationError converts err into field errors. It returns nil
// field errors when err is not a validation failure.
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
		return "", nil
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		var msg string

		switch e.Tag() {
		case "required":
			msg = "is required"

		case "min":
			if e.Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", e.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", e.Param())
			}

		case "max":
			if e.Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", e.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", e.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", e.Param())

		case "email":
			msg = "must be a valid email address"

		default:
			if e.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, e.Tag(), e.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, e.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return "Validation failed", fieldErrors
}
