package graphql

import (
	"github.com/go-playground/validator/v10"

	txdomain "graphql-finance-service/internal/domain/transaction"
	txuc "graphql-finance-service/internal/usecase/transaction"
	useruc "graphql-finance-service/internal/usecase/user"
	apperrors "graphql-finance-service/pkg/errors"
)

var validate = validator.New()

// createUserArgs mirrors the CreateUserInput GraphQL input object. The
// struct tags catch structural problems before the domain predicates run;
// both layers emit the same messages.
type createUserArgs struct {
	Email     string `validate:"required,email"`
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	Password  string `validate:"required,min=6"`
}

func (a createUserArgs) toInput() useruc.CreateUserInput {
	return useruc.CreateUserInput{
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Password:  a.Password,
	}
}

type updateUserArgs struct {
	Email     *string `validate:"omitempty,email"`
	FirstName *string `validate:"omitempty,min=1"`
	LastName  *string `validate:"omitempty,min=1"`
	Password  *string `validate:"omitempty,min=6"`
}

func (a updateUserArgs) toInput() useruc.UpdateUserInput {
	return useruc.UpdateUserInput{
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Password:  a.Password,
	}
}

type createTransactionArgs struct {
	Amount      float64 `validate:"gt=0"`
	Description string  `validate:"required"`
	Type        string  `validate:"oneof=INCOME EXPENSE"`
	Category    *string
	UserID      string `validate:"required"`
}

func (a createTransactionArgs) toInput() txuc.CreateTransactionInput {
	return txuc.CreateTransactionInput{
		Amount:      a.Amount,
		Description: a.Description,
		Type:        txdomain.Type(a.Type),
		Category:    a.Category,
		UserID:      a.UserID,
	}
}

type updateTransactionArgs struct {
	Amount      *float64 `validate:"omitempty,gt=0"`
	Description *string  `validate:"omitempty,min=1"`
	Type        *string  `validate:"omitempty,oneof=INCOME EXPENSE"`
	Category    *string
}

func (a updateTransactionArgs) toInput() txuc.UpdateTransactionInput {
	in := txuc.UpdateTransactionInput{
		Amount:      a.Amount,
		Description: a.Description,
		Category:    a.Category,
	}
	if a.Type != nil {
		typ := txdomain.Type(*a.Type)
		in.Type = &typ
	}
	return in
}

type loginArgs struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// checkArgs runs the struct tags against decoded arguments and translates
// the first batch of failures into the canonical field messages.
func checkArgs(args interface{}) error {
	err := validate.Struct(args)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewValidationError("input", err.Error())
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, argMessage(fe))
	}
	return apperrors.NewValidationError("input", messages...)
}

func argMessage(fe validator.FieldError) string {
	switch fe.StructField() {
	case "Email":
		if fe.Tag() == "required" {
			return "Email is required"
		}
		return "Email format is invalid"
	case "FirstName":
		return "First name is required"
	case "LastName":
		return "Last name is required"
	case "Password":
		return "Password must be at least 6 characters long"
	case "Amount":
		return "Amount must be greater than 0"
	case "Description":
		return "Description is required"
	case "Type":
		return "Transaction type must be INCOME or EXPENSE"
	case "UserID":
		return "User ID is required"
	}
	return fe.Error()
}

// Argument decoding helpers for graphql-go's map-shaped arguments.

func stringArg(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func optStringArg(args map[string]interface{}, key string) *string {
	if v, ok := args[key].(string); ok {
		return &v
	}
	return nil
}

func floatArg(args map[string]interface{}, key string) float64 {
	switch v := args[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func optFloatArg(args map[string]interface{}, key string) *float64 {
	if _, ok := args[key]; !ok {
		return nil
	}
	v := floatArg(args, key)
	return &v
}

func intArg(args map[string]interface{}, key string, fallback int) int {
	switch v := args[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return fallback
}

func inputArg(args map[string]interface{}) map[string]interface{} {
	if m, ok := args["input"].(map[string]interface{}); ok {
		return m
	}
	return map[string]interface{}{}
}
