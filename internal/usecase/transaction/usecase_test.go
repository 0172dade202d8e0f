package transaction

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap/zaptest"

	domain "graphql-finance-service/internal/domain/transaction"
	userdomain "graphql-finance-service/internal/domain/user"
	apperrors "graphql-finance-service/pkg/errors"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, t *domain.Transaction, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, t, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) ListByUser(ctx context.Context, userID string, typ *domain.Type, limit, offset int) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, typ, limit, offset)
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockRepository) Stats(ctx context.Context, userID string) (*domain.Stats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stats), args.Error(1)
}

// MockUserFinder is a mock implementation of the UserFinder interface
type MockUserFinder struct {
	mock.Mock
}

func (m *MockUserFinder) GetByID(ctx context.Context, id string) (*userdomain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userdomain.User), args.Error(1)
}

func setupTestUsecase(t *testing.T) (*Usecase, *MockRepository, *MockUserFinder) {
	mockRepo := new(MockRepository)
	mockUsers := new(MockUserFinder)
	uc := New(mockRepo, mockUsers, zaptest.NewLogger(t))
	return uc, mockRepo, mockUsers
}

// ==================== CREATE TESTS ====================

func TestCreateTransaction_Success(t *testing.T) {
	uc, mockRepo, mockUsers := setupTestUsecase(t)
	ctx := context.Background()

	in := CreateTransactionInput{
		Amount:      100,
		Description: "salary",
		Type:        domain.TypeIncome,
		UserID:      "user-1",
	}

	owner := &userdomain.User{ID: "user-1"}
	persisted := &domain.Transaction{ID: "tx-1", Amount: 100, Description: "salary", Type: domain.TypeIncome}

	mockUsers.On("GetByID", ctx, "user-1").Return(owner, nil)
	mockRepo.On("Create", ctx, mock.MatchedBy(func(tr *domain.Transaction) bool {
		return tr.Amount == 100 && tr.Description == "salary" && tr.Type == domain.TypeIncome
	}), "user-1").Return(persisted, nil)

	created, err := uc.CreateTransaction(ctx, in)

	assert.NoError(t, err)
	assert.Equal(t, "tx-1", created.ID)
	mockRepo.AssertExpectations(t)
	mockUsers.AssertExpectations(t)
}

func TestCreateTransaction_ValidationError(t *testing.T) {
	uc, mockRepo, mockUsers := setupTestUsecase(t)
	ctx := context.Background()

	created, err := uc.CreateTransaction(ctx, CreateTransactionInput{})

	assert.Nil(t, created)
	var verr *apperrors.ValidationError
	if assert.ErrorAs(t, err, &verr) {
		assert.Len(t, verr.Messages, 4)
	}
	mockUsers.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateTransaction_OwningUserMissing(t *testing.T) {
	uc, mockRepo, mockUsers := setupTestUsecase(t)
	ctx := context.Background()

	in := validCreateInput()
	in.UserID = "ghost"
	mockUsers.On("GetByID", ctx, "ghost").Return(nil, nil)

	created, err := uc.CreateTransaction(ctx, in)

	assert.Nil(t, created)
	var nerr *apperrors.NotFoundError
	assert.ErrorAs(t, err, &nerr)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

// ==================== UPDATE TESTS ====================

func TestUpdateTransaction_CategoryOnly(t *testing.T) {
	uc, mockRepo, _ := setupTestUsecase(t)
	ctx := context.Background()

	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	existing := &domain.Transaction{
		ID:          "tx-1",
		Amount:      30,
		Description: "groceries",
		Type:        domain.TypeExpense,
		CreatedAt:   created,
		UpdatedAt:   created,
	}

	mockRepo.On("GetByID", ctx, "tx-1").Return(existing, nil)
	mockRepo.On("Update", ctx, mock.MatchedBy(func(tr *domain.Transaction) bool {
		return tr.ID == "tx-1" &&
			tr.Amount == 30 &&
			tr.Description == "groceries" &&
			tr.Type == domain.TypeExpense &&
			tr.CreatedAt.Equal(created) &&
			tr.Category != nil && *tr.Category == "food" &&
			tr.UpdatedAt.After(created)
	})).Return(existing, nil)

	cat := "food"
	_, err := uc.UpdateTransaction(ctx, "tx-1", UpdateTransactionInput{Category: &cat})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestUpdateTransaction_NotFound(t *testing.T) {
	uc, mockRepo, _ := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("GetByID", ctx, "missing").Return(nil, nil)

	cat := "food"
	updated, err := uc.UpdateTransaction(ctx, "missing", UpdateTransactionInput{Category: &cat})

	assert.Nil(t, updated)
	var nerr *apperrors.NotFoundError
	assert.ErrorAs(t, err, &nerr)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

// ==================== DELETE TESTS ====================

func TestDeleteTransaction_NotFound(t *testing.T) {
	uc, mockRepo, _ := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("GetByID", ctx, "missing").Return(nil, nil)

	err := uc.DeleteTransaction(ctx, "missing")

	var nerr *apperrors.NotFoundError
	assert.ErrorAs(t, err, &nerr)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

// ==================== LIST / STATS TESTS ====================

func TestListByUser_ClampsPagination(t *testing.T) {
	uc, mockRepo, _ := setupTestUsecase(t)
	ctx := context.Background()

	typ := domain.TypeExpense
	mockRepo.On("ListByUser", ctx, "user-1", &typ, 10, 0).Return([]domain.Transaction{}, nil)

	_, err := uc.ListByUser(ctx, "user-1", &typ, 0, -5)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestStats_Passthrough(t *testing.T) {
	uc, mockRepo, _ := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("Stats", ctx, "user-1").Return(&domain.Stats{
		TotalIncome:  100,
		TotalExpense: 50,
		Balance:      50,
		Count:        3,
	}, nil)

	stats, err := uc.Stats(ctx, "user-1")

	assert.NoError(t, err)
	assert.Equal(t, int64(3), stats.Count)
	assert.Equal(t, 50.0, stats.Balance)
}
