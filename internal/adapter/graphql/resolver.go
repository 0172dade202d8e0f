package graphql

import (
	"errors"

	"github.com/graphql-go/graphql"
	"go.uber.org/zap"

	txdomain "graphql-finance-service/internal/domain/transaction"
	txuc "graphql-finance-service/internal/usecase/transaction"
	useruc "graphql-finance-service/internal/usecase/user"
)

// ErrInvalidCredentials is returned by the login query when no user
// matches the supplied email/password pair.
var ErrInvalidCredentials = errors.New("Invalid credentials")

// defaultNestedLimit bounds the transactions list resolved underneath a
// user node.
const defaultNestedLimit = 100

// Resolver glues the GraphQL field set to the usecases.
type Resolver struct {
	users        *useruc.Usecase
	transactions *txuc.Usecase
	log          *zap.Logger
}

func NewResolver(users *useruc.Usecase, transactions *txuc.Usecase, log *zap.Logger) *Resolver {
	return &Resolver{
		users:        users,
		transactions: transactions,
		log:          log,
	}
}

func (r *Resolver) resolveUser(p graphql.ResolveParams) (interface{}, error) {
	u, err := r.users.GetUser(p.Context, stringArg(p.Args, "id"))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}
	return newUserOutput(u), nil
}

func (r *Resolver) resolveUsers(p graphql.ResolveParams) (interface{}, error) {
	list, err := r.users.ListUsers(p.Context, intArg(p.Args, "limit", 10), intArg(p.Args, "offset", 0))
	if err != nil {
		return nil, err
	}

	out := make([]*UserOutput, 0, len(list))
	for i := range list {
		out = append(out, newUserOutput(&list[i]))
	}
	return out, nil
}

func (r *Resolver) resolveTransaction(p graphql.ResolveParams) (interface{}, error) {
	t, err := r.transactions.GetTransaction(p.Context, stringArg(p.Args, "id"))
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, nil
	}
	return newTransactionOutput(t), nil
}

func (r *Resolver) resolveTransactions(p graphql.ResolveParams) (interface{}, error) {
	var typ *txdomain.Type
	if raw := optStringArg(p.Args, "transactionType"); raw != nil {
		parsed, ok := txdomain.ParseType(*raw)
		if !ok {
			return nil, errors.New("Transaction type must be INCOME or EXPENSE")
		}
		typ = &parsed
	}

	list, err := r.transactions.ListByUser(
		p.Context,
		stringArg(p.Args, "userId"),
		typ,
		intArg(p.Args, "limit", 10),
		intArg(p.Args, "offset", 0),
	)
	if err != nil {
		return nil, err
	}
	return newTransactionOutputs(list), nil
}

func (r *Resolver) resolveStats(p graphql.ResolveParams) (interface{}, error) {
	stats, err := r.transactions.Stats(p.Context, stringArg(p.Args, "userId"))
	if err != nil {
		return nil, err
	}
	return newStatsOutput(stats), nil
}

func (r *Resolver) resolveLogin(p graphql.ResolveParams) (interface{}, error) {
	args := loginArgs{
		Email:    stringArg(p.Args, "email"),
		Password: stringArg(p.Args, "password"),
	}
	if err := checkArgs(args); err != nil {
		return nil, err
	}

	u, err := r.users.ValidateCredentials(p.Context, args.Email, args.Password)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	return newUserOutput(u), nil
}

// resolveUserTransactions populates the nested transactions field of a
// user node lazily, so the two entity types stay decoupled in the domain.
func (r *Resolver) resolveUserTransactions(p graphql.ResolveParams) (interface{}, error) {
	src, ok := p.Source.(*UserOutput)
	if !ok || src == nil {
		return []*TransactionOutput{}, nil
	}

	list, err := r.transactions.ListByUser(p.Context, src.ID, nil, defaultNestedLimit, 0)
	if err != nil {
		return nil, err
	}
	return newTransactionOutputs(list), nil
}

func (r *Resolver) createUser(p graphql.ResolveParams) (interface{}, error) {
	in := inputArg(p.Args)
	args := createUserArgs{
		Email:     stringArg(in, "email"),
		FirstName: stringArg(in, "firstName"),
		LastName:  stringArg(in, "lastName"),
		Password:  stringArg(in, "password"),
	}
	if err := checkArgs(args); err != nil {
		return nil, err
	}

	u, err := r.users.CreateUser(p.Context, args.toInput())
	if err != nil {
		return nil, err
	}
	return newUserOutput(u), nil
}

func (r *Resolver) updateUser(p graphql.ResolveParams) (interface{}, error) {
	in := inputArg(p.Args)
	args := updateUserArgs{
		Email:     optStringArg(in, "email"),
		FirstName: optStringArg(in, "firstName"),
		LastName:  optStringArg(in, "lastName"),
		Password:  optStringArg(in, "password"),
	}
	if err := checkArgs(args); err != nil {
		return nil, err
	}

	u, err := r.users.UpdateUser(p.Context, stringArg(p.Args, "id"), args.toInput())
	if err != nil {
		return nil, err
	}
	return newUserOutput(u), nil
}

func (r *Resolver) deleteUser(p graphql.ResolveParams) (interface{}, error) {
	if err := r.users.DeleteUser(p.Context, stringArg(p.Args, "id")); err != nil {
		return nil, err
	}
	return true, nil
}

func (r *Resolver) createTransaction(p graphql.ResolveParams) (interface{}, error) {
	in := inputArg(p.Args)
	args := createTransactionArgs{
		Amount:      floatArg(in, "amount"),
		Description: stringArg(in, "description"),
		Type:        stringArg(in, "type"),
		Category:    optStringArg(in, "category"),
		UserID:      stringArg(in, "userId"),
	}
	if err := checkArgs(args); err != nil {
		return nil, err
	}

	t, err := r.transactions.CreateTransaction(p.Context, args.toInput())
	if err != nil {
		return nil, err
	}
	return newTransactionOutput(t), nil
}

func (r *Resolver) updateTransaction(p graphql.ResolveParams) (interface{}, error) {
	in := inputArg(p.Args)
	args := updateTransactionArgs{
		Amount:      optFloatArg(in, "amount"),
		Description: optStringArg(in, "description"),
		Type:        optStringArg(in, "type"),
		Category:    optStringArg(in, "category"),
	}
	if err := checkArgs(args); err != nil {
		return nil, err
	}

	t, err := r.transactions.UpdateTransaction(p.Context, stringArg(p.Args, "id"), args.toInput())
	if err != nil {
		return nil, err
	}
	return newTransactionOutput(t), nil
}

func (r *Resolver) deleteTransaction(p graphql.ResolveParams) (interface{}, error) {
	if err := r.transactions.DeleteTransaction(p.Context, stringArg(p.Args, "id")); err != nil {
		return nil, err
	}
	return true, nil
}
