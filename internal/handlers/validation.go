package handlers

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/sandeep-atiya/Ameyo-crm/internal/respond"
)

// passwordSpecials are the characters accepted as "special" in passwords.
const passwordSpecials = "@$!%*?&#^()-_=+[]{};:,.<>/\\|~"

// validatePassword enforces the password complexity policy: at least one
// uppercase letter, one lowercase letter, one digit and one special
// character. Length is handled by the binding tag.
func validatePassword(password string) []respond.FieldError {
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSpecials, r):
			hasSpecial = true
		}
	}

	if hasUpper && hasLower && hasDigit && hasSpecial {
		return nil
	}
	return []respond.FieldError{{
		Field:   "password",
		Message: "Password must contain uppercase, lowercase, number, and special character",
	}}
}

// bindingErrors converts gin binding failures into per-field errors.
func bindingErrors(err error) []respond.FieldError {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []respond.FieldError{{Field: "body", Message: err.Error()}}
	}

	out := make([]respond.FieldError, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		out = append(out, respond.FieldError{
			Field:   strings.ToLower(fieldErr.Field()),
			Message: fieldErrorMessage(fieldErr),
		})
	}
	return out
}

func fieldErrorMessage(fieldErr validator.FieldError) string {
	field := strings.ToLower(fieldErr.Field())
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fieldErr.Param())
	case "max":
		return fmt.Sprintf("%s must not exceed %s characters", field, fieldErr.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
