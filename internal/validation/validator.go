// Package validation checks request payloads against their `validate` tags.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"CATALOG_BACK-END/internal/apperr"
)

// MinPasswordLength is the shortest accepted password, in characters.
const MinPasswordLength = 6

// Normalizer is implemented by payloads that trim their own fields before
// validation.
type Normalizer interface {
	Normalize()
}

// Validator wraps a configured go-playground validator. It is safe for
// concurrent use.
type Validator struct {
	v *validator.Validate
}

// New builds a Validator with the custom rules used by the API.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// Registration cannot fail for a non-empty tag and a non-nil func.
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return IsStrongPassword(fl.Field().String())
	})

	return &Validator{v: v}
}

// Struct normalizes payload when it supports it, then validates it. Every
// failure is reported as an apperr validation error.
func (val *Validator) Struct(payload any) error {
	if n, ok := payload.(Normalizer); ok {
		n.Normalize()
	}

	err := val.v.Struct(payload)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Validation("").WithCause(err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return apperr.Validation(strings.Join(msgs, "; "))
}

// IsStrongPassword reports whether password has at least MinPasswordLength
// characters including a lowercase letter, an uppercase letter and a digit.
func IsStrongPassword(password string) bool {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return false
	}
	var lower, upper, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s: is required", field)
	case "min":
		return fmt.Sprintf("%s: must not be empty", field)
	case "max":
		return fmt.Sprintf("%s: must be at most %s characters", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s: must be a valid email address", field)
	case "password":
		return fmt.Sprintf("%s: must be at least %d characters with a lowercase letter, an uppercase letter and a digit", field, MinPasswordLength)
	default:
		return fmt.Sprintf("%s: failed %s validation", field, fe.Tag())
	}
}
