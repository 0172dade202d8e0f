package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"graphql-finance-service/internal/domain/user"
	apperrors "graphql-finance-service/pkg/errors"
)

// UserRepoPG implements the user repository interface using PostgreSQL and GORM.
type UserRepoPG struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewUserRepoPG creates a new instance of UserRepoPG.
func NewUserRepoPG(db *gorm.DB, log *zap.Logger) *UserRepoPG {
	return &UserRepoPG{db: db, log: log}
}

// UserSchema represents the database schema for the users table.
// Timestamps are owned by the domain layer, so GORM's automatic tracking
// is disabled.
type UserSchema struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"uniqueIndex;not null"`
	FirstName string    `gorm:"not null"`
	LastName  string    `gorm:"not null"`
	Password  string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

func (s *UserSchema) toDomain() *user.User {
	return &user.User{
		ID:        s.ID,
		Email:     s.Email,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Password:  s.Password,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func userSchemaFromDomain(u *user.User) UserSchema {
	return UserSchema{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Password:  u.Password,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Create inserts a new user, assigning server-side identifier and
// timestamps, and returns the persisted entity. A duplicate email loses
// against the unique index and surfaces as ConflictError.
func (r *UserRepoPG) Create(ctx context.Context, u *user.User) (*user.User, error) {
	if u == nil {
		return nil, errors.New("user cannot be nil")
	}

	now := time.Now().UTC()
	model := UserSchema{
		ID:        uuid.NewString(),
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Password:  u.Password,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isUniqueViolation(err) {
			r.log.Warn("duplicate email on insert", zap.String("email", u.Email))
			return nil, apperrors.NewConflictError("user", "User with this email already exists")
		}
		r.log.Error("failed to create user in db", zap.Error(err), zap.String("email", u.Email))
		return nil, apperrors.NewStorageError("failed to create user", err)
	}

	r.log.Info("user created in db", zap.String("id", model.ID))
	return model.toDomain(), nil
}

// Update persists a fully merged user entity.
func (r *UserRepoPG) Update(ctx context.Context, u *user.User) (*user.User, error) {
	if u == nil {
		return nil, errors.New("user cannot be nil")
	}

	model := userSchemaFromDomain(u)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflictError("user", "User with this email already exists")
		}
		r.log.Error("failed to update user in db", zap.Error(err), zap.String("id", u.ID))
		return nil, apperrors.NewStorageError("failed to update user", err)
	}

	r.log.Info("user updated in db", zap.String("id", model.ID))
	return model.toDomain(), nil
}

// Delete removes a user by ID. Owned transactions go with it through the
// ON DELETE CASCADE constraint.
func (r *UserRepoPG) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&UserSchema{}, "id = ?", id).Error; err != nil {
		r.log.Error("failed to delete user in db", zap.Error(err), zap.String("id", id))
		return apperrors.NewStorageError("failed to delete user", err)
	}

	r.log.Info("user deleted in db", zap.String("id", id))
	return nil
}

// GetByID retrieves a user by their unique ID, or (nil, nil) when absent.
func (r *UserRepoPG) GetByID(ctx context.Context, id string) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user not found", zap.String("id", id))
			return nil, nil
		}
		r.log.Error("failed to get user from db", zap.Error(err), zap.String("id", id))
		return nil, apperrors.NewStorageError("failed to get user", err)
	}

	return model.toDomain(), nil
}

// GetByEmail retrieves a user by their email address, or (nil, nil) when
// absent.
func (r *UserRepoPG) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user not found by email", zap.String("email", email))
			return nil, nil
		}
		r.log.Error("failed to get user by email from db", zap.Error(err), zap.String("email", email))
		return nil, apperrors.NewStorageError("failed to get user by email", err)
	}

	return model.toDomain(), nil
}

// List retrieves users newest first with limit/offset pagination.
func (r *UserRepoPG) List(ctx context.Context, limit, offset int) ([]user.User, error) {
	var models []UserSchema
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		r.log.Error("failed to list users from db", zap.Error(err))
		return nil, apperrors.NewStorageError("failed to list users", err)
	}

	users := make([]user.User, len(models))
	for i, model := range models {
		users[i] = *model.toDomain()
	}
	return users, nil
}

// isUniqueViolation recognizes unique-index violations across the
// production Postgres driver and the SQLite driver used in tests.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}
