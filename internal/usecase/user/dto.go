package user

import (
	"regexp"
	"strings"
)

// Simplified RFC pattern: local@domain.tld, no whitespace or extra @.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// CreateUserInput is the validated construction DTO for a new user.
type CreateUserInput struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// HasValidEmail reports whether the email matches the simplified RFC
// local@domain.tld pattern.
func (in CreateUserInput) HasValidEmail() bool {
	return emailPattern.MatchString(in.Email)
}

// IsValid reports whether every field-level predicate holds.
func (in CreateUserInput) IsValid() bool {
	return len(in.ValidationErrors()) == 0
}

// ValidationErrors returns a human-readable message for every failing
// predicate, in field order. An empty slice means the input is valid.
func (in CreateUserInput) ValidationErrors() []string {
	var errs []string

	if strings.TrimSpace(in.Email) == "" {
		errs = append(errs, "Email is required")
	} else if !in.HasValidEmail() {
		errs = append(errs, "Email format is invalid")
	}

	if strings.TrimSpace(in.FirstName) == "" {
		errs = append(errs, "First name is required")
	}

	if strings.TrimSpace(in.LastName) == "" {
		errs = append(errs, "Last name is required")
	}

	if len(in.Password) < 6 {
		errs = append(errs, "Password must be at least 6 characters long")
	}

	return errs
}

// UpdateUserInput carries optional overrides for an update; nil fields are
// left untouched.
type UpdateUserInput struct {
	Email     *string
	FirstName *string
	LastName  *string
	Password  *string
}

// ValidationErrors checks only the supplied fields, with the same
// predicates and messages as creation.
func (in UpdateUserInput) ValidationErrors() []string {
	var errs []string

	if in.Email != nil && !emailPattern.MatchString(*in.Email) {
		errs = append(errs, "Email format is invalid")
	}
	if in.FirstName != nil && strings.TrimSpace(*in.FirstName) == "" {
		errs = append(errs, "First name is required")
	}
	if in.LastName != nil && strings.TrimSpace(*in.LastName) == "" {
		errs = append(errs, "Last name is required")
	}
	if in.Password != nil && len(*in.Password) < 6 {
		errs = append(errs, "Password must be at least 6 characters long")
	}

	return errs
}
