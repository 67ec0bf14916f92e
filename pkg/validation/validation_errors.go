package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-facing labels
var FieldLabels = map[string]string{
	// Account fields
	"Username": "Username",
	"Email":    "Email",
	"Password": "Password",

	// Job seeker fields
	"Education":  "Education",
	"Experience": "Experience",
	"Skills":     "Skills",

	// Company fields
	"CompanyName": "Company name",
	"Description": "Description",
	"Website":     "Website",
	"Location":    "Location",

	// Listing fields
	"Title":          "Title",
	"SkillsRequired": "Required skills",
	"Salary":         "Salary",
	"StartDate":      "Start date",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a validation error, return generic message
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s: is required", label)

	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s: must be at least %s", label, param)

	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s: must be at most %s", label, param)

	case "gte":
		return fmt.Sprintf("%s: must be %s or more", label, param)

	case "oneof":
		return fmt.Sprintf("%s: must be one of: %s", label, strings.ReplaceAll(param, " ", ", "))

	case "email":
		return fmt.Sprintf("%s: invalid email format", label)

	case "url":
		return fmt.Sprintf("%s: invalid URL format", label)

	case "username":
		return fmt.Sprintf("%s: 3-30 letters, digits, dots, underscores or dashes", label)

	case "strong_password":
		return fmt.Sprintf("%s: at least 8 characters with upper case, lower case, a digit and a special character", label)

	case "valid_name":
		return fmt.Sprintf("%s: only letters, digits, spaces and common punctuation", label)

	case "no_emoji":
		return fmt.Sprintf("%s: must not contain emoji or special symbols", label)

	case "skill":
		return fmt.Sprintf("%s: each skill must be 1-50 characters", label)

	case "datetime":
		return fmt.Sprintf("%s: must be a date in %s format", label, param)

	default:
		return fmt.Sprintf("%s: failed validation (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
