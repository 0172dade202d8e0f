package graphql

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"go.uber.org/zap"
)

// Request is the standard GraphQL-over-HTTP POST body.
type Request struct {
	Query         string                 `json:"query" binding:"required"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Handler executes GraphQL documents against the schema.
type Handler struct {
	schema graphql.Schema
	log    *zap.Logger
}

func NewHandler(r *Resolver, log *zap.Logger) (*Handler, error) {
	schema, err := NewSchema(r)
	if err != nil {
		return nil, err
	}
	return &Handler{schema: schema, log: log}, nil
}

// Handle serves POST /graphql. Execution errors ride inside the GraphQL
// response envelope; only a malformed request body yields a non-200.
func (h *Handler) Handle(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"errors": []gin.H{{"message": "invalid request body: query is required"}},
		})
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        c.Request.Context(),
	})

	if len(result.Errors) > 0 {
		h.log.Warn("graphql execution finished with errors",
			zap.String("operation", req.OperationName),
			zap.Int("error_count", len(result.Errors)),
		)
	}

	c.JSON(http.StatusOK, result)
}
