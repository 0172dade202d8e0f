package graphql

import (
	"github.com/graphql-go/graphql"
)

// NewSchema assembles the executable schema over the given resolver.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	transactionTypeEnum := graphql.NewEnum(graphql.EnumConfig{
		Name: "TransactionType",
		Values: graphql.EnumValueConfigMap{
			"INCOME":  &graphql.EnumValueConfig{Value: "INCOME"},
			"EXPENSE": &graphql.EnumValueConfig{Value: "EXPENSE"},
		},
	})

	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"email":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"firstName": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"lastName":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"fullName":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			"updatedAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		},
	})

	transactionType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Transaction",
		Fields: graphql.Fields{
			"id":           &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"amount":       &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"description":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"type":         &graphql.Field{Type: graphql.NewNonNull(transactionTypeEnum)},
			"category":     &graphql.Field{Type: graphql.String},
			"signedAmount": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"user":         &graphql.Field{Type: userType},
			"createdAt":    &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			"updatedAt":    &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		},
	})

	// The back-reference is attached after both objects exist.
	userType.AddFieldConfig("transactions", &graphql.Field{
		Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(transactionType))),
		Resolve: r.resolveUserTransactions,
	})

	statsType := graphql.NewObject(graphql.ObjectConfig{
		Name: "TransactionStats",
		Fields: graphql.Fields{
			"totalIncome":      &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"totalExpense":     &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"balance":          &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"transactionCount": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	createUserInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateUserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"firstName": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"lastName":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	updateUserInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateUserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":     &graphql.InputObjectFieldConfig{Type: graphql.String},
			"firstName": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"lastName":  &graphql.InputObjectFieldConfig{Type: graphql.String},
			"password":  &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	createTransactionInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateTransactionInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"amount":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"type":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(transactionTypeEnum)},
			"category":    &graphql.InputObjectFieldConfig{Type: graphql.String},
			"userId":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
		},
	})

	updateTransactionInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateTransactionInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"amount":      &graphql.InputObjectFieldConfig{Type: graphql.Float},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"type":        &graphql.InputObjectFieldConfig{Type: transactionTypeEnum},
			"category":    &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"user": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.resolveUser,
			},
			"users": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(userType))),
				Args: graphql.FieldConfigArgument{
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int},
					"offset": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: r.resolveUsers,
			},
			"transaction": &graphql.Field{
				Type: transactionType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.resolveTransaction,
			},
			"transactions": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(transactionType))),
				Args: graphql.FieldConfigArgument{
					"userId":          &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"transactionType": &graphql.ArgumentConfig{Type: transactionTypeEnum},
					"limit":           &graphql.ArgumentConfig{Type: graphql.Int},
					"offset":          &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: r.resolveTransactions,
			},
			"transactionStats": &graphql.Field{
				Type: graphql.NewNonNull(statsType),
				Args: graphql.FieldConfigArgument{
					"userId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.resolveStats,
			},
			"login": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveLogin,
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createUser": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createUserInput)},
				},
				Resolve: r.createUser,
			},
			"updateUser": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateUserInput)},
				},
				Resolve: r.updateUser,
			},
			"deleteUser": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.deleteUser,
			},
			"createTransaction": &graphql.Field{
				Type: graphql.NewNonNull(transactionType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createTransactionInput)},
				},
				Resolve: r.createTransaction,
			},
			"updateTransaction": &graphql.Field{
				Type: graphql.NewNonNull(transactionType),
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateTransactionInput)},
				},
				Resolve: r.updateTransaction,
			},
			"deleteTransaction": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.deleteTransaction,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}
