package transaction

import (
	"strings"

	domain "graphql-finance-service/internal/domain/transaction"
)

// CreateTransactionInput is the validated construction DTO for a new
// transaction.
type CreateTransactionInput struct {
	Amount      float64
	Description string
	Type        domain.Type
	Category    *string
	UserID      string
}

// HasValidAmount reports whether the amount is strictly positive.
func (in CreateTransactionInput) HasValidAmount() bool {
	return in.Amount > 0
}

// IsValid reports whether every field-level predicate holds.
func (in CreateTransactionInput) IsValid() bool {
	return len(in.ValidationErrors()) == 0
}

// ValidationErrors returns a human-readable message for every failing
// predicate, in field order. An empty slice means the input is valid.
func (in CreateTransactionInput) ValidationErrors() []string {
	var errs []string

	if !in.HasValidAmount() {
		errs = append(errs, "Amount must be greater than 0")
	}

	if strings.TrimSpace(in.Description) == "" {
		errs = append(errs, "Description is required")
	}

	if !in.Type.Valid() {
		errs = append(errs, "Transaction type must be INCOME or EXPENSE")
	}

	if strings.TrimSpace(in.UserID) == "" {
		errs = append(errs, "User ID is required")
	}

	return errs
}

// UpdateTransactionInput carries optional overrides for an update; nil
// fields are left untouched.
type UpdateTransactionInput struct {
	Amount      *float64
	Description *string
	Type        *domain.Type
	Category    *string
}

// ValidationErrors checks only the supplied fields, with the same
// predicates and messages as creation.
func (in UpdateTransactionInput) ValidationErrors() []string {
	var errs []string

	if in.Amount != nil && *in.Amount <= 0 {
		errs = append(errs, "Amount must be greater than 0")
	}
	if in.Description != nil && strings.TrimSpace(*in.Description) == "" {
		errs = append(errs, "Description is required")
	}
	if in.Type != nil && !in.Type.Valid() {
		errs = append(errs, "Transaction type must be INCOME or EXPENSE")
	}

	return errs
}
