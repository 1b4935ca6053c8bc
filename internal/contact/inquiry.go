// Package contact validates and archives contact form inquiries.
package contact

import (
	"fmt"
	"regexp"
	"strings"
)

// Code classifies a validation failure.
type Code string

const (
	CodeMissingFields Code = "missing_fields"
	CodeInvalidEmail  Code = "invalid_email"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,6}(\.[a-zA-Z]{2})?$`)
	tagPattern   = regexp.MustCompile(`<[^>]*>`)
)

// ValidationError reports why an inquiry was rejected.
type ValidationError struct {
	Code    Code
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Inquiry is a submitted contact form.
type Inquiry struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Subject  string `json:"subject"`
	Category string `json:"category"`
	Message  string `json:"message,omitempty"`
}

// Sanitize strips markup tags and surrounding whitespace.
func Sanitize(s string) string {
	return strings.TrimSpace(tagPattern.ReplaceAllString(s, ""))
}

// ValidEmail reports whether addr has an accepted address shape.
func ValidEmail(addr string) bool {
	return emailPattern.MatchString(addr)
}

// Sanitized returns a copy with every field sanitized.
func (i Inquiry) Sanitized() Inquiry {
	return Inquiry{
		Name:     Sanitize(i.Name),
		Email:    Sanitize(i.Email),
		Subject:  Sanitize(i.Subject),
		Category: Sanitize(i.Category),
		Message:  Sanitize(i.Message),
	}
}

// Validate checks required fields first, then the email shape.
func (i Inquiry) Validate() error {
	if strings.TrimSpace(i.Name) == "" ||
		strings.TrimSpace(i.Email) == "" ||
		strings.TrimSpace(i.Subject) == "" ||
		strings.TrimSpace(i.Category) == "" {
		return &ValidationError{Code: CodeMissingFields, Message: "name, email, subject and category are required"}
	}
	if !ValidEmail(strings.TrimSpace(i.Email)) {
		return &ValidationError{Code: CodeInvalidEmail, Message: "email address is malformed"}
	}
	return nil
}
