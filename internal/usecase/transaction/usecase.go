package transaction

import (
	"context"

	"go.uber.org/zap"

	domain "graphql-finance-service/internal/domain/transaction"
	userdomain "graphql-finance-service/internal/domain/user"
	apperrors "graphql-finance-service/pkg/errors"
)

// Repository defines the interface for transaction data access operations.
// Lookup methods return (nil, nil) when no row matches; only real
// persistence failures produce an error.
type Repository interface {
	Create(ctx context.Context, t *domain.Transaction, userID string) (*domain.Transaction, error)
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	Update(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error)
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string, typ *domain.Type, limit, offset int) ([]domain.Transaction, error)
	Stats(ctx context.Context, userID string) (*domain.Stats, error)
}

// UserFinder resolves owning users before a transaction is created.
type UserFinder interface {
	GetByID(ctx context.Context, id string) (*userdomain.User, error)
}

// Usecase implements the business logic for transaction operations.
type Usecase struct {
	repo  Repository
	users UserFinder
	log   *zap.Logger
}

// New creates a new instance of Usecase with the provided repositories and logger.
func New(r Repository, users UserFinder, log *zap.Logger) *Usecase {
	return &Usecase{repo: r, users: users, log: log}
}

// GetTransaction retrieves a transaction by ID, with its owning user
// loaded. It returns (nil, nil) when the ID does not resolve.
func (uc *Usecase) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	if id == "" {
		return nil, nil
	}
	return uc.repo.GetByID(ctx, id)
}

// CreateTransaction creates a new transaction after validating the input
// and resolving the owning user. The existence check is best effort; the
// user_id foreign key is the real referential guard.
func (uc *Usecase) CreateTransaction(ctx context.Context, in CreateTransactionInput) (*domain.Transaction, error) {
	uc.log.Info("creating transaction",
		zap.Float64("amount", in.Amount),
		zap.String("type", string(in.Type)),
		zap.String("user_id", in.UserID),
	)

	if errs := in.ValidationErrors(); len(errs) > 0 {
		uc.log.Warn("create transaction validation failed", zap.Strings("errors", errs))
		return nil, apperrors.NewValidationError("", errs...)
	}

	owner, err := uc.users.GetByID(ctx, in.UserID)
	if err != nil {
		uc.log.Error("failed to resolve owning user", zap.String("user_id", in.UserID), zap.Error(err))
		return nil, err
	}
	if owner == nil {
		uc.log.Warn("owning user not found", zap.String("user_id", in.UserID))
		return nil, apperrors.NewNotFoundError("user", "User not found")
	}

	created, err := uc.repo.Create(ctx, &domain.Transaction{
		Amount:      in.Amount,
		Description: in.Description,
		Type:        in.Type,
		Category:    in.Category,
	}, in.UserID)
	if err != nil {
		uc.log.Error("failed to create transaction", zap.Error(err))
		return nil, err
	}

	uc.log.Info("transaction created", zap.String("id", created.ID))
	return created, nil
}

// UpdateTransaction merges the supplied overrides into the stored
// transaction and persists the resulting copy. The owning user, ID and
// creation time never change. It fails with NotFoundError when the ID
// does not resolve.
func (uc *Usecase) UpdateTransaction(ctx context.Context, id string, in UpdateTransactionInput) (*domain.Transaction, error) {
	uc.log.Info("updating transaction", zap.String("id", id))

	if errs := in.ValidationErrors(); len(errs) > 0 {
		uc.log.Warn("update transaction validation failed", zap.String("id", id), zap.Strings("errors", errs))
		return nil, apperrors.NewValidationError("", errs...)
	}

	existing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		uc.log.Warn("transaction not found for update", zap.String("id", id))
		return nil, apperrors.NewNotFoundError("transaction", "Transaction not found")
	}

	merged := existing.WithUpdates(domain.Updates{
		Amount:      in.Amount,
		Description: in.Description,
		Type:        in.Type,
		Category:    in.Category,
	})

	updated, err := uc.repo.Update(ctx, &merged)
	if err != nil {
		uc.log.Error("failed to update transaction", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return updated, nil
}

// DeleteTransaction removes a transaction by ID. It fails with
// NotFoundError when the ID does not resolve; nothing is written in that
// case.
func (uc *Usecase) DeleteTransaction(ctx context.Context, id string) error {
	uc.log.Info("deleting transaction", zap.String("id", id))

	existing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		uc.log.Warn("transaction not found for delete", zap.String("id", id))
		return apperrors.NewNotFoundError("transaction", "Transaction not found")
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		uc.log.Error("failed to delete transaction", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ListByUser retrieves a page of a user's transactions, newest first,
// optionally filtered by type.
func (uc *Usecase) ListByUser(ctx context.Context, userID string, typ *domain.Type, limit, offset int) ([]domain.Transaction, error) {
	limit, offset = clampPage(limit, offset)
	return uc.repo.ListByUser(ctx, userID, typ, limit, offset)
}

// clampPage applies the shared pagination defaults and bounds.
func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// Stats returns the aggregate income, expense, balance and count for a
// user's transactions. A user without transactions yields all-zero stats.
func (uc *Usecase) Stats(ctx context.Context, userID string) (*domain.Stats, error) {
	return uc.repo.Stats(ctx, userID)
}
