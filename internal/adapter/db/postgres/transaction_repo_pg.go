package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"graphql-finance-service/internal/domain/transaction"
	apperrors "graphql-finance-service/pkg/errors"
)

// TransactionRepoPG implements the transaction repository interface using
// PostgreSQL and GORM.
type TransactionRepoPG struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewTransactionRepoPG creates a new instance of TransactionRepoPG.
func NewTransactionRepoPG(db *gorm.DB, log *zap.Logger) *TransactionRepoPG {
	return &TransactionRepoPG{db: db, log: log}
}

// TransactionSchema represents the database schema for the transactions
// table. Every transaction belongs to exactly one user; rows are removed
// with their owner through ON DELETE CASCADE.
type TransactionSchema struct {
	ID              string      `gorm:"type:uuid;primaryKey"`
	Amount          float64     `gorm:"type:decimal(10,2);not null"`
	Description     string      `gorm:"not null"`
	TransactionType string      `gorm:"type:varchar(10);not null;index"`
	Category        *string     `gorm:""`
	UserID          string      `gorm:"type:uuid;not null;index"`
	User            *UserSchema `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time   `gorm:"autoCreateTime:false;index"`
	UpdatedAt       time.Time   `gorm:"autoUpdateTime:false"`
}

// TableName specifies the table name for the TransactionSchema model.
func (TransactionSchema) TableName() string {
	return "transactions"
}

func (s *TransactionSchema) toDomain() *transaction.Transaction {
	t := &transaction.Transaction{
		ID:          s.ID,
		Amount:      s.Amount,
		Description: s.Description,
		Type:        transaction.Type(s.TransactionType),
		Category:    s.Category,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	if s.User != nil {
		t.User = s.User.toDomain()
	}
	return t
}

// Create inserts a new transaction for the given owning user, assigning
// server-side identifier and timestamps. An unresolved user loses against
// the foreign key and surfaces as NotFoundError.
func (r *TransactionRepoPG) Create(ctx context.Context, t *transaction.Transaction, userID string) (*transaction.Transaction, error) {
	if t == nil {
		return nil, errors.New("transaction cannot be nil")
	}

	now := time.Now().UTC()
	model := TransactionSchema{
		ID:              uuid.NewString(),
		Amount:          t.Amount,
		Description:     t.Description,
		TransactionType: string(t.Type),
		Category:        t.Category,
		UserID:          userID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isForeignKeyViolation(err) {
			r.log.Warn("owning user vanished before insert", zap.String("user_id", userID))
			return nil, apperrors.NewNotFoundError("user", "User not found")
		}
		r.log.Error("failed to create transaction in db", zap.Error(err), zap.String("user_id", userID))
		return nil, apperrors.NewStorageError("failed to create transaction", err)
	}

	r.log.Info("transaction created in db", zap.String("id", model.ID))
	// Reload so the owning user rides along, as on every other read.
	return r.GetByID(ctx, model.ID)
}

// Update persists a fully merged transaction entity. The owning user
// association is never rewritten.
func (r *TransactionRepoPG) Update(ctx context.Context, t *transaction.Transaction) (*transaction.Transaction, error) {
	if t == nil {
		return nil, errors.New("transaction cannot be nil")
	}

	updates := map[string]interface{}{
		"amount":           t.Amount,
		"description":      t.Description,
		"transaction_type": string(t.Type),
		"category":         t.Category,
		"updated_at":       t.UpdatedAt,
	}

	err := r.db.WithContext(ctx).
		Model(&TransactionSchema{}).
		Where("id = ?", t.ID).
		Updates(updates).Error
	if err != nil {
		r.log.Error("failed to update transaction in db", zap.Error(err), zap.String("id", t.ID))
		return nil, apperrors.NewStorageError("failed to update transaction", err)
	}

	r.log.Info("transaction updated in db", zap.String("id", t.ID))
	return r.GetByID(ctx, t.ID)
}

// Delete removes a transaction by ID.
func (r *TransactionRepoPG) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&TransactionSchema{}, "id = ?", id).Error; err != nil {
		r.log.Error("failed to delete transaction in db", zap.Error(err), zap.String("id", id))
		return apperrors.NewStorageError("failed to delete transaction", err)
	}

	r.log.Info("transaction deleted in db", zap.String("id", id))
	return nil
}

// GetByID retrieves a transaction with its owning user loaded, or
// (nil, nil) when absent.
func (r *TransactionRepoPG) GetByID(ctx context.Context, id string) (*transaction.Transaction, error) {
	var model TransactionSchema
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("transaction not found", zap.String("id", id))
			return nil, nil
		}
		r.log.Error("failed to get transaction from db", zap.Error(err), zap.String("id", id))
		return nil, apperrors.NewStorageError("failed to get transaction", err)
	}

	return model.toDomain(), nil
}

// ListByUser retrieves a user's transactions newest first, optionally
// filtered by type, with limit/offset pagination.
func (r *TransactionRepoPG) ListByUser(ctx context.Context, userID string, typ *transaction.Type, limit, offset int) ([]transaction.Transaction, error) {
	q := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID)
	if typ != nil {
		q = q.Where("transaction_type = ?", string(*typ))
	}

	var models []TransactionSchema
	err := q.Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		r.log.Error("failed to list transactions from db", zap.Error(err), zap.String("user_id", userID))
		return nil, apperrors.NewStorageError("failed to list transactions", err)
	}

	transactions := make([]transaction.Transaction, len(models))
	for i, model := range models {
		transactions[i] = *model.toDomain()
	}
	return transactions, nil
}

// Stats aggregates a user's transactions. The income sum, expense sum and
// row count are issued as three concurrent sub-queries and joined before
// returning. Zero rows yield all-zero stats.
func (r *TransactionRepoPG) Stats(ctx context.Context, userID string) (*transaction.Stats, error) {
	var income, expense float64
	var count int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.sumByType(gctx, userID, transaction.TypeIncome, &income)
	})
	g.Go(func() error {
		return r.sumByType(gctx, userID, transaction.TypeExpense, &expense)
	})
	g.Go(func() error {
		err := r.db.WithContext(gctx).
			Model(&TransactionSchema{}).
			Where("user_id = ?", userID).
			Count(&count).Error
		if err != nil {
			return apperrors.NewStorageError("failed to count transactions", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		r.log.Error("failed to aggregate transaction stats", zap.Error(err), zap.String("user_id", userID))
		return nil, err
	}

	return &transaction.Stats{
		TotalIncome:  income,
		TotalExpense: expense,
		Balance:      income - expense,
		Count:        count,
	}, nil
}

func (r *TransactionRepoPG) sumByType(ctx context.Context, userID string, typ transaction.Type, out *float64) error {
	err := r.db.WithContext(ctx).
		Model(&TransactionSchema{}).
		Where("user_id = ? AND transaction_type = ?", userID, string(typ)).
		Select("COALESCE(SUM(amount), 0)").
		Scan(out).Error
	if err != nil {
		return apperrors.NewStorageError("failed to sum transactions", err)
	}
	return nil
}

// isForeignKeyViolation recognizes FK violations across the production
// Postgres driver and the SQLite driver used in tests.
func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "foreign key constraint") || strings.Contains(msg, "FOREIGN KEY constraint failed")
}
