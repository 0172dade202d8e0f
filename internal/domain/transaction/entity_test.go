package transaction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		input string
		want  Type
		ok    bool
	}{
		{"INCOME", TypeIncome, true},
		{"EXPENSE", TypeExpense, true},
		{"income", "", false},
		{"TRANSFER", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseType(tt.input)
		assert.Equal(t, tt.ok, ok, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestTransaction_SignedAmount(t *testing.T) {
	income := Transaction{Amount: 125.50, Type: TypeIncome}
	expense := Transaction{Amount: 125.50, Type: TypeExpense}

	assert.Equal(t, 125.50, income.SignedAmount())
	assert.Equal(t, -125.50, expense.SignedAmount())

	assert.True(t, income.IsIncome())
	assert.False(t, income.IsExpense())
	assert.True(t, expense.IsExpense())
	assert.False(t, expense.IsIncome())
}

func TestTransaction_WithCategory_PreservesEverythingElse(t *testing.T) {
	created := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	original := Transaction{
		ID:          "tx-1",
		Amount:      42,
		Description: "groceries",
		Type:        TypeExpense,
		CreatedAt:   created,
		UpdatedAt:   created,
	}

	updated := original.WithCategory("food")

	assert.Equal(t, original.ID, updated.ID)
	assert.Equal(t, original.Amount, updated.Amount)
	assert.Equal(t, original.Description, updated.Description)
	assert.Equal(t, original.Type, updated.Type)
	assert.Equal(t, created, updated.CreatedAt)
	if assert.NotNil(t, updated.Category) {
		assert.Equal(t, "food", *updated.Category)
	}
	assert.True(t, updated.UpdatedAt.After(created))

	assert.Nil(t, original.Category)
	assert.Equal(t, created, original.UpdatedAt)
}

func TestTransaction_WithUpdates_MergesOnlySuppliedFields(t *testing.T) {
	original := Transaction{
		ID:          "tx-1",
		Amount:      10,
		Description: "coffee",
		Type:        TypeExpense,
	}

	amount := 12.5
	updated := original.WithUpdates(Updates{Amount: &amount})

	assert.Equal(t, 12.5, updated.Amount)
	assert.Equal(t, "coffee", updated.Description)
	assert.Equal(t, TypeExpense, updated.Type)
	assert.Equal(t, float64(10), original.Amount)
}
