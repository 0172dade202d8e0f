package user

import (
	"context"

	"go.uber.org/zap"

	domain "graphql-finance-service/internal/domain/user"
	apperrors "graphql-finance-service/pkg/errors"
)

// Repository defines the interface for user data access operations.
// Lookup methods return (nil, nil) when no row matches; only real
// persistence failures produce an error.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
}

// Usecase implements the business logic for user management operations.
type Usecase struct {
	repo Repository
	log  *zap.Logger
}

// New creates a new instance of Usecase with the provided repository and logger.
func New(r Repository, log *zap.Logger) *Usecase {
	return &Usecase{repo: r, log: log}
}

// GetUser retrieves a user by ID. It returns (nil, nil) when the ID does
// not resolve.
func (uc *Usecase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	if id == "" {
		return nil, nil
	}
	return uc.repo.GetByID(ctx, id)
}

// GetUserByEmail retrieves a user by email, or (nil, nil) when absent.
func (uc *Usecase) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if email == "" {
		return nil, nil
	}
	return uc.repo.GetByEmail(ctx, email)
}

// ListUsers retrieves a page of users.
func (uc *Usecase) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	limit, offset = clampPage(limit, offset)
	return uc.repo.List(ctx, limit, offset)
}

// CreateUser creates a new user after validating the input and checking
// email uniqueness. The uniqueness check here is best effort; the unique
// index on users.email is the real guard, and the repository translates
// a duplicate-key insert into the same conflict error.
func (uc *Usecase) CreateUser(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	uc.log.Info("creating user", zap.String("email", in.Email))

	if errs := in.ValidationErrors(); len(errs) > 0 {
		uc.log.Warn("create user validation failed", zap.Strings("errors", errs))
		return nil, apperrors.NewValidationError("", errs...)
	}

	existing, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		uc.log.Error("failed to check existing email", zap.String("email", in.Email), zap.Error(err))
		return nil, err
	}
	if existing != nil {
		uc.log.Warn("email already exists", zap.String("email", in.Email))
		return nil, apperrors.NewConflictError("user", "User with this email already exists")
	}

	created, err := uc.repo.Create(ctx, &domain.User{
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Password:  in.Password,
	})
	if err != nil {
		uc.log.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	uc.log.Info("user created", zap.String("id", created.ID))
	return created, nil
}

// UpdateUser merges the supplied overrides into the stored user and
// persists the resulting copy. It fails with NotFoundError when the ID
// does not resolve and with ConflictError when the new email belongs to
// another user.
func (uc *Usecase) UpdateUser(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error) {
	uc.log.Info("updating user", zap.String("id", id))

	if errs := in.ValidationErrors(); len(errs) > 0 {
		uc.log.Warn("update user validation failed", zap.String("id", id), zap.Strings("errors", errs))
		return nil, apperrors.NewValidationError("", errs...)
	}

	existing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		uc.log.Warn("user not found for update", zap.String("id", id))
		return nil, apperrors.NewNotFoundError("user", "User not found")
	}

	if in.Email != nil && *in.Email != existing.Email {
		other, err := uc.repo.GetByEmail(ctx, *in.Email)
		if err != nil {
			uc.log.Error("failed to check existing email", zap.String("email", *in.Email), zap.Error(err))
			return nil, err
		}
		if other != nil && other.ID != id {
			uc.log.Warn("email already exists", zap.String("email", *in.Email))
			return nil, apperrors.NewConflictError("user", "User with this email already exists")
		}
	}

	merged := existing.WithUpdates(domain.Updates{
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Password:  in.Password,
	})

	updated, err := uc.repo.Update(ctx, &merged)
	if err != nil {
		uc.log.Error("failed to update user", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return updated, nil
}

// DeleteUser removes a user by ID. Owned transactions are removed by the
// store's cascade. It fails with NotFoundError when the ID does not
// resolve; nothing is written in that case.
func (uc *Usecase) DeleteUser(ctx context.Context, id string) error {
	uc.log.Info("deleting user", zap.String("id", id))

	existing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		uc.log.Warn("user not found for delete", zap.String("id", id))
		return apperrors.NewNotFoundError("user", "User not found")
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		uc.log.Error("failed to delete user", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ValidateCredentials returns the user when the email resolves and the
// password equals the stored value exactly, otherwise (nil, nil). The
// stored password is an opaque string; no hashing exists in this system.
func (uc *Usecase) ValidateCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil || u.Password != password {
		return nil, nil
	}
	return u, nil
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
