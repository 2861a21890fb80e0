package validation

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"

	"github.com/deppfellow/sampledb-api/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
// - Define a request struct with validator tags (`validate:"required,alphaspace"`)
// - Implement Validate() error that runs Validator().Struct(req)
// - Return validator.ValidationErrors (or CustomValidationErrors for custom cases)
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single validation issue for a specific field.
// This is used for validation errors that cannot be expressed via validator tags.
type CustomValidationError struct {
	Field    string
	Message  string
	Location string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
// 1) c.Bind(payload) populates the struct from path params and the JSON body.
// 2) payload.Validate() applies validation rules.
// 3) Returns *errs.HTTPError (400) with one field error per violated rule.
//
// payload must be a pointer to a struct.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return bindError(err)
	}

	if err := payload.Validate(); err != nil {
		fieldErrors, ok := extractValidationError(payload, err)
		if !ok {
			return fmt.Errorf("validating %T: %w", payload, err)
		}
		return errs.NewValidationError(fieldErrors)
	}

	return nil
}

// bindError turns Echo's bind failures (malformed JSON, wrong types) into a 400.
func bindError(err error) error {
	message := "Invalid request body"

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if echoErr.Code != http.StatusBadRequest {
			return err
		}
		if msg, ok := echoErr.Message.(string); ok && msg != "" {
			message = msg
		}
	}

	return errs.NewBadRequestError(message, false, nil, nil, nil)
}

// extractValidationError converts validator/custom errors into field errors.
// It reports false for errors it does not recognize.
func extractValidationError(payload any, err error) ([]errs.FieldError, bool) {
	var customErrors CustomValidationErrors
	if errors.As(err, &customErrors) {
		fieldErrors := make([]errs.FieldError, 0, len(customErrors))
		for _, e := range customErrors {
			location := e.Location
			if location == "" {
				location = errs.LocationBody
			}
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field:    e.Field,
				Error:    e.Message,
				Location: location,
			})
		}
		return fieldErrors, true
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, false
	}

	fieldErrors := make([]errs.FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field:    e.Field(),
			Error:    message(e),
			Location: location(payload, e.StructField()),
		})
	}

	return fieldErrors, true
}

func message(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"

	case "alphaspace":
		return "must contain only letters and spaces"

	case "integer", "number":
		return "must be an integer"

	case "min":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", err.Param())
		}
		return fmt.Sprintf("must be at least %s", err.Param())

	case "max":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", err.Param())
		}
		return fmt.Sprintf("must not exceed %s", err.Param())

	case "oneof":
		return fmt.Sprintf("must be one of: %s", err.Param())

	default:
		if err.Param() != "" {
			return fmt.Sprintf("%s: %s:%s", err.Field(), err.Tag(), err.Param())
		}
		return fmt.Sprintf("%s: %s", err.Field(), err.Tag())
	}
}

// location reports "params" for fields bound from the URL path, "body" otherwise.
func location(payload any, structField string) string {
	t := reflect.TypeOf(payload)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return errs.LocationBody
	}

	if f, ok := t.FieldByName(structField); ok && f.Tag.Get("param") != "" {
		return errs.LocationParams
	}
	return errs.LocationBody
}
