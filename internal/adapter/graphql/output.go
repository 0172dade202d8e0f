package graphql

import (
	"time"

	"graphql-finance-service/internal/domain/transaction"
	"graphql-finance-service/internal/domain/user"
)

// UserOutput is the response projection of a user. Derived fields are
// computed here so resolvers stay dumb.
type UserOutput struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	FullName  string    `json:"fullName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newUserOutput(u *user.User) *UserOutput {
	if u == nil {
		return nil
	}
	return &UserOutput{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName(),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// TransactionOutput is the response projection of a transaction.
type TransactionOutput struct {
	ID           string      `json:"id"`
	Amount       float64     `json:"amount"`
	Description  string      `json:"description"`
	Type         string      `json:"type"`
	Category     *string     `json:"category"`
	SignedAmount float64     `json:"signedAmount"`
	User         *UserOutput `json:"user"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

func newTransactionOutput(t *transaction.Transaction) *TransactionOutput {
	if t == nil {
		return nil
	}
	return &TransactionOutput{
		ID:           t.ID,
		Amount:       t.Amount,
		Description:  t.Description,
		Type:         string(t.Type),
		Category:     t.Category,
		SignedAmount: t.SignedAmount(),
		User:         newUserOutput(t.User),
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func newTransactionOutputs(ts []transaction.Transaction) []*TransactionOutput {
	out := make([]*TransactionOutput, 0, len(ts))
	for i := range ts {
		out = append(out, newTransactionOutput(&ts[i]))
	}
	return out
}

// StatsOutput is the response projection of a user's aggregate stats.
type StatsOutput struct {
	TotalIncome  float64 `json:"totalIncome"`
	TotalExpense float64 `json:"totalExpense"`
	Balance      float64 `json:"balance"`
	Count        int64   `json:"transactionCount"`
}

func newStatsOutput(s *transaction.Stats) *StatsOutput {
	if s == nil {
		return &StatsOutput{}
	}
	return &StatsOutput{
		TotalIncome:  s.TotalIncome,
		TotalExpense: s.TotalExpense,
		Balance:      s.Balance,
		Count:        s.Count,
	}
}
