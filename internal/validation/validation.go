// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules (like
// required fields or alphabetic-only values) defined in struct tags
// and extracts validation errors into a format the client can
// understand. It also owns the input sanitizers applied before
// values reach the database.
package validation

import (
	"html"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// validate is shared by every payload; validator caches struct metadata per type.
var validate = newValidator()

// Validator returns the shared validator with the custom tags registered.
func Validator() *validator.Validate {
	return validate
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by the name the client used: json key, then path param.
	v.RegisterTagNameFunc(fieldName)

	_ = v.RegisterValidation("alphaspace", isAlphaSpace)
	_ = v.RegisterValidation("integer", isInteger)

	return v
}

func fieldName(fld reflect.StructField) string {
	if name, _, _ := strings.Cut(fld.Tag.Get("json"), ","); name != "" && name != "-" {
		return name
	}
	if name := fld.Tag.Get("param"); name != "" {
		return name
	}
	return fld.Name
}

// isAlphaSpace accepts US-English letters with optional spaces. At least one
// letter is required, so "" and "   " fail.
func isAlphaSpace(fl validator.FieldLevel) bool {
	return IsAlphaSpace(fl.Field().String())
}

// IsAlphaSpace reports whether s has at least one letter and only A-Z, a-z and spaces.
func IsAlphaSpace(s string) bool {
	letters := 0
	for _, r := range s {
		switch {
		case r == ' ':
		case r <= unicode.MaxASCII && unicode.IsLetter(r):
			letters++
		default:
			return false
		}
	}
	return letters > 0
}

// isInteger accepts base-10 strings that fit an int64.
func isInteger(fl validator.FieldLevel) bool {
	_, err := strconv.ParseInt(fl.Field().String(), 10, 64)
	return err == nil
}

// escaper replaces HTML-significant characters with entities.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&#x27;",
	"<", "&lt;",
	">", "&gt;",
	"/", "&#x2F;",
	`\`, "&#x5C;",
	"`", "&#96;",
)

// Escape HTML-escapes s so it is stored inert.
//
// Already-escaped input is unescaped first, so Escape(Escape(s)) == Escape(s)
// and values fetched from the API can be submitted again unchanged.
func Escape(s string) string {
	return escaper.Replace(html.UnescapeString(s))
}
