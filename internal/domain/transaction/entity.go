package transaction

import (
	"time"

	"graphql-finance-service/internal/domain/user"
)

// Type classifies a transaction as money coming in or going out.
type Type string

const (
	TypeIncome  Type = "INCOME"
	TypeExpense Type = "EXPENSE"
)

// ParseType converts a wire string into a Type. The second return value
// reports whether the input named a known type.
func ParseType(s string) (Type, bool) {
	switch Type(s) {
	case TypeIncome:
		return TypeIncome, true
	case TypeExpense:
		return TypeExpense, true
	}
	return "", false
}

// Valid reports whether t is a known transaction type.
func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction represents a single bookkeeping entry owned by exactly one
// user. Amount is always stored positive; the sign is derived from Type.
// Instances are value objects: mutation helpers return a fresh copy.
type Transaction struct {
	ID          string
	Amount      float64 // Always > 0
	Description string
	Type        Type
	Category    *string // Optional
	CreatedAt   time.Time
	UpdatedAt   time.Time
	User        *user.User // Owning user, populated on relation-loading reads
}

// IsIncome reports whether the transaction adds to the balance.
func (t Transaction) IsIncome() bool {
	return t.Type == TypeIncome
}

// IsExpense reports whether the transaction subtracts from the balance.
func (t Transaction) IsExpense() bool {
	return t.Type == TypeExpense
}

// SignedAmount returns the amount with the sign implied by the type:
// positive for income, negative for expense.
func (t Transaction) SignedAmount() float64 {
	if t.IsIncome() {
		return t.Amount
	}
	return -t.Amount
}

// Updates carries optional field overrides for an update. Nil fields keep
// the current value.
type Updates struct {
	Amount      *float64
	Description *string
	Type        *Type
	Category    *string
}

// WithUpdates returns a copy of the transaction with the supplied
// overrides applied. ID, CreatedAt and the owning user never change;
// UpdatedAt is refreshed.
func (t Transaction) WithUpdates(up Updates) Transaction {
	next := t
	if up.Amount != nil {
		next.Amount = *up.Amount
	}
	if up.Description != nil {
		next.Description = *up.Description
	}
	if up.Type != nil {
		next.Type = *up.Type
	}
	if up.Category != nil {
		next.Category = up.Category
	}
	next.UpdatedAt = time.Now().UTC()
	return next
}

// WithCategory returns a copy of the transaction with a replaced category
// and a refreshed UpdatedAt.
func (t Transaction) WithCategory(category string) Transaction {
	return t.WithUpdates(Updates{Category: &category})
}

// Stats aggregates a user's transactions. A user without transactions has
// all-zero stats.
type Stats struct {
	TotalIncome  float64
	TotalExpense float64
	Balance      float64
	Count        int64
}
