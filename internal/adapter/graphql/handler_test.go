package graphql

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"graphql-finance-service/internal/adapter/db/postgres"
	txuc "graphql-finance-service/internal/usecase/transaction"
	useruc "graphql-finance-service/internal/usecase/user"
)

type graphQLError struct {
	Message    string                 `json:"message"`
	Extensions map[string]interface{} `json:"extensions"`
}

type graphQLResponse struct {
	Data   map[string]interface{} `json:"data"`
	Errors []graphQLError         `json:"errors"`
}

func setupAPI(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := zaptest.NewLogger(t)

	db, err := gorm.Open(sqlite.Open(":memory:?_pragma=foreign_keys(1)"), &gorm.Config{})
	require.NoError(t, err)

	// A fresh pooled connection would see its own empty in-memory db.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&postgres.UserSchema{}, &postgres.TransactionSchema{}))

	userRepo := postgres.NewUserRepoPG(db, log)
	txRepo := postgres.NewTransactionRepoPG(db, log)

	users := useruc.New(userRepo, log)
	transactions := txuc.New(txRepo, userRepo, log)

	handler, err := NewHandler(NewResolver(users, transactions, log), log)
	require.NoError(t, err)

	router := gin.New()
	router.POST("/graphql", handler.Handle)
	return router
}

func doGraphQL(t *testing.T, router *gin.Engine, query string, variables map[string]interface{}) graphQLResponse {
	t.Helper()

	body, err := json.Marshal(Request{Query: query, Variables: variables})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp graphQLResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

const createUserMutation = `
mutation ($input: CreateUserInput!) {
	createUser(input: $input) {
		id
		email
		fullName
	}
}`

func createTestUser(t *testing.T, router *gin.Engine, email string) string {
	resp := doGraphQL(t, router, createUserMutation, map[string]interface{}{
		"input": map[string]interface{}{
			"email":     email,
			"firstName": "Ada",
			"lastName":  "Lovelace",
			"password":  "secret1",
		},
	})
	require.Empty(t, resp.Errors)

	created := resp.Data["createUser"].(map[string]interface{})
	return created["id"].(string)
}

func TestHandler_CreateUserAndQueryBack(t *testing.T) {
	router := setupAPI(t)

	resp := doGraphQL(t, router, createUserMutation, map[string]interface{}{
		"input": map[string]interface{}{
			"email":     "ada@example.com",
			"firstName": "Ada",
			"lastName":  "Lovelace",
			"password":  "secret1",
		},
	})
	require.Empty(t, resp.Errors)

	created := resp.Data["createUser"].(map[string]interface{})
	assert.Equal(t, "ada@example.com", created["email"])
	assert.Equal(t, "Ada Lovelace", created["fullName"])

	resp = doGraphQL(t, router, `
		query ($id: ID!) {
			user(id: $id) {
				id
				email
				transactions { id }
			}
		}`, map[string]interface{}{"id": created["id"]})
	require.Empty(t, resp.Errors)

	fetched := resp.Data["user"].(map[string]interface{})
	assert.Equal(t, created["id"], fetched["id"])
	assert.Empty(t, fetched["transactions"])
}

func TestHandler_CreateUser_CollectsAllValidationMessages(t *testing.T) {
	router := setupAPI(t)

	resp := doGraphQL(t, router, createUserMutation, map[string]interface{}{
		"input": map[string]interface{}{
			"email":     "not-an-email",
			"firstName": "",
			"lastName":  "",
			"password":  "123",
		},
	})
	require.Len(t, resp.Errors, 1)

	ext := resp.Errors[0].Extensions
	require.NotNil(t, ext)
	assert.Equal(t, "VALIDATION_ERROR", ext["code"])

	raw := ext["messages"].([]interface{})
	messages := make([]string, 0, len(raw))
	for _, m := range raw {
		messages = append(messages, m.(string))
	}
	assert.Equal(t, []string{
		"Email format is invalid",
		"First name is required",
		"Last name is required",
		"Password must be at least 6 characters long",
	}, messages)
}

func TestHandler_CreateUser_DuplicateEmail(t *testing.T) {
	router := setupAPI(t)
	createTestUser(t, router, "ada@example.com")

	resp := doGraphQL(t, router, createUserMutation, map[string]interface{}{
		"input": map[string]interface{}{
			"email":     "ada@example.com",
			"firstName": "Ada",
			"lastName":  "Lovelace",
			"password":  "secret1",
		},
	})
	require.Len(t, resp.Errors, 1)
	require.NotNil(t, resp.Errors[0].Extensions)
	assert.Equal(t, "CONFLICT", resp.Errors[0].Extensions["code"])
}

func TestHandler_ListUsers_Paginated(t *testing.T) {
	router := setupAPI(t)
	createTestUser(t, router, "a@example.com")
	createTestUser(t, router, "b@example.com")
	createTestUser(t, router, "c@example.com")

	resp := doGraphQL(t, router, `
		query { users(limit: 2) { email } }`, nil)
	require.Empty(t, resp.Errors)
	assert.Len(t, resp.Data["users"].([]interface{}), 2)

	resp = doGraphQL(t, router, `
		query { users(limit: 2, offset: 2) { email } }`, nil)
	require.Empty(t, resp.Errors)
	assert.Len(t, resp.Data["users"].([]interface{}), 1)
}

func TestHandler_UserNotFound_ReturnsNull(t *testing.T) {
	router := setupAPI(t)

	resp := doGraphQL(t, router, `
		query { user(id: "00000000-0000-0000-0000-000000000000") { id } }`, nil)
	require.Empty(t, resp.Errors)
	assert.Nil(t, resp.Data["user"])
}

func TestHandler_TransactionLifecycleAndStats(t *testing.T) {
	router := setupAPI(t)
	userID := createTestUser(t, router, "ada@example.com")

	createTx := `
	mutation ($input: CreateTransactionInput!) {
		createTransaction(input: $input) {
			id
			amount
			type
			signedAmount
			user { id }
		}
	}`

	var lastTxID string
	for _, tc := range []struct {
		amount float64
		typ    string
		desc   string
	}{
		{100, "INCOME", "salary"},
		{30, "EXPENSE", "rent"},
		{20, "EXPENSE", "food"},
	} {
		resp := doGraphQL(t, router, createTx, map[string]interface{}{
			"input": map[string]interface{}{
				"amount":      tc.amount,
				"description": tc.desc,
				"type":        tc.typ,
				"userId":      userID,
			},
		})
		require.Empty(t, resp.Errors)
		created := resp.Data["createTransaction"].(map[string]interface{})
		lastTxID = created["id"].(string)
		assert.Equal(t, userID, created["user"].(map[string]interface{})["id"])
	}

	statsQuery := `
	query ($userId: ID!) {
		transactionStats(userId: $userId) {
			totalIncome
			totalExpense
			balance
			transactionCount
		}
	}`
	resp := doGraphQL(t, router, statsQuery, map[string]interface{}{"userId": userID})
	require.Empty(t, resp.Errors)

	stats := resp.Data["transactionStats"].(map[string]interface{})
	assert.Equal(t, float64(100), stats["totalIncome"])
	assert.Equal(t, float64(50), stats["totalExpense"])
	assert.Equal(t, float64(50), stats["balance"])
	assert.Equal(t, float64(3), stats["transactionCount"])

	resp = doGraphQL(t, router, `
		query ($userId: ID!) {
			transactions(userId: $userId) {
				user { id fullName }
			}
		}`, map[string]interface{}{"userId": userID})
	require.Empty(t, resp.Errors)

	for _, raw := range resp.Data["transactions"].([]interface{}) {
		owner := raw.(map[string]interface{})["user"]
		require.NotNil(t, owner)
		assert.Equal(t, userID, owner.(map[string]interface{})["id"])
		assert.Equal(t, "Ada Lovelace", owner.(map[string]interface{})["fullName"])
	}

	resp = doGraphQL(t, router, `
		query ($userId: ID!) {
			transactions(userId: $userId, transactionType: INCOME) {
				amount
				signedAmount
			}
		}`, map[string]interface{}{"userId": userID})
	require.Empty(t, resp.Errors)

	income := resp.Data["transactions"].([]interface{})
	require.Len(t, income, 1)
	assert.Equal(t, float64(100), income[0].(map[string]interface{})["signedAmount"])

	resp = doGraphQL(t, router, `
		mutation ($id: ID!, $input: UpdateTransactionInput!) {
			updateTransaction(id: $id, input: $input) {
				category
				amount
			}
		}`, map[string]interface{}{
		"id":    lastTxID,
		"input": map[string]interface{}{"category": "groceries"},
	})
	require.Empty(t, resp.Errors)
	updated := resp.Data["updateTransaction"].(map[string]interface{})
	assert.Equal(t, "groceries", updated["category"])
	assert.Equal(t, float64(20), updated["amount"])

	resp = doGraphQL(t, router, `
		mutation ($id: ID!) { deleteTransaction(id: $id) }`,
		map[string]interface{}{"id": lastTxID})
	require.Empty(t, resp.Errors)
	assert.Equal(t, true, resp.Data["deleteTransaction"])

	resp = doGraphQL(t, router, statsQuery, map[string]interface{}{"userId": userID})
	require.Empty(t, resp.Errors)
	assert.Equal(t, float64(2), resp.Data["transactionStats"].(map[string]interface{})["transactionCount"])
}

func TestHandler_CreateTransaction_ExpenseLowersSignedAmount(t *testing.T) {
	router := setupAPI(t)
	userID := createTestUser(t, router, "ada@example.com")

	resp := doGraphQL(t, router, `
		mutation ($input: CreateTransactionInput!) {
			createTransaction(input: $input) { signedAmount type }
		}`, map[string]interface{}{
		"input": map[string]interface{}{
			"amount":      25.5,
			"description": "taxi",
			"type":        "EXPENSE",
			"userId":      userID,
		},
	})
	require.Empty(t, resp.Errors)

	created := resp.Data["createTransaction"].(map[string]interface{})
	assert.Equal(t, "EXPENSE", created["type"])
	assert.Equal(t, float64(-25.5), created["signedAmount"])
}

func TestHandler_CreateTransaction_UnknownUser(t *testing.T) {
	router := setupAPI(t)

	resp := doGraphQL(t, router, `
		mutation ($input: CreateTransactionInput!) {
			createTransaction(input: $input) { id }
		}`, map[string]interface{}{
		"input": map[string]interface{}{
			"amount":      10,
			"description": "orphan",
			"type":        "EXPENSE",
			"userId":      "00000000-0000-0000-0000-000000000000",
		},
	})
	require.Len(t, resp.Errors, 1)
	require.NotNil(t, resp.Errors[0].Extensions)
	assert.Equal(t, "NOT_FOUND", resp.Errors[0].Extensions["code"])
	assert.Contains(t, resp.Errors[0].Message, "User not found")
}

func TestHandler_Login(t *testing.T) {
	router := setupAPI(t)
	userID := createTestUser(t, router, "ada@example.com")

	loginQuery := `
	query ($email: String!, $password: String!) {
		login(email: $email, password: $password) { id email }
	}`

	resp := doGraphQL(t, router, loginQuery, map[string]interface{}{
		"email":    "ada@example.com",
		"password": "secret1",
	})
	require.Empty(t, resp.Errors)
	assert.Equal(t, userID, resp.Data["login"].(map[string]interface{})["id"])

	resp = doGraphQL(t, router, loginQuery, map[string]interface{}{
		"email":    "ada@example.com",
		"password": "wrong-password",
	})
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "Invalid credentials", resp.Errors[0].Message)
}

func TestHandler_UpdateUser(t *testing.T) {
	router := setupAPI(t)
	userID := createTestUser(t, router, "ada@example.com")

	resp := doGraphQL(t, router, `
		mutation ($id: ID!, $input: UpdateUserInput!) {
			updateUser(id: $id, input: $input) { firstName lastName fullName email }
		}`, map[string]interface{}{
		"id":    userID,
		"input": map[string]interface{}{"firstName": "Augusta"},
	})
	require.Empty(t, resp.Errors)

	updated := resp.Data["updateUser"].(map[string]interface{})
	assert.Equal(t, "Augusta", updated["firstName"])
	assert.Equal(t, "Lovelace", updated["lastName"])
	assert.Equal(t, "Augusta Lovelace", updated["fullName"])
	assert.Equal(t, "ada@example.com", updated["email"])
}

func TestHandler_DeleteUser_CascadesToTransactions(t *testing.T) {
	router := setupAPI(t)
	userID := createTestUser(t, router, "ada@example.com")

	resp := doGraphQL(t, router, `
		mutation ($input: CreateTransactionInput!) {
			createTransaction(input: $input) { id }
		}`, map[string]interface{}{
		"input": map[string]interface{}{
			"amount":      10,
			"description": "doomed",
			"type":        "EXPENSE",
			"userId":      userID,
		},
	})
	require.Empty(t, resp.Errors)
	txID := resp.Data["createTransaction"].(map[string]interface{})["id"].(string)

	resp = doGraphQL(t, router, `
		mutation ($id: ID!) { deleteUser(id: $id) }`,
		map[string]interface{}{"id": userID})
	require.Empty(t, resp.Errors)
	assert.Equal(t, true, resp.Data["deleteUser"])

	resp = doGraphQL(t, router, `
		query ($id: ID!) { transaction(id: $id) { id } }`,
		map[string]interface{}{"id": txID})
	require.Empty(t, resp.Errors)
	assert.Nil(t, resp.Data["transaction"])
}

func TestHandler_MalformedBody(t *testing.T) {
	router := setupAPI(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader([]byte(`{"not-query": 1}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
