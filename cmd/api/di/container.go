package di

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"graphql-finance-service/cmd/api/infrastructure"
	"graphql-finance-service/internal/adapter/db/postgres"
	"graphql-finance-service/internal/adapter/gin/middleware"
	gql "graphql-finance-service/internal/adapter/graphql"
	"graphql-finance-service/internal/config"
	txuc "graphql-finance-service/internal/usecase/transaction"
	useruc "graphql-finance-service/internal/usecase/user"
	redisclient "graphql-finance-service/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	Logger         *zap.Logger
	DB             *gorm.DB
	RedisClient    *redisclient.Client
	UserUC         *useruc.Usecase
	TransactionUC  *txuc.Usecase
	RateLimiter    *middleware.RateLimiter
	GraphQLHandler *gql.Handler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(cfg *config.Config, l *zap.Logger) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	db, err := infrastructure.NewDatabase(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Redis only backs the rate limiter; skip the connection entirely
	// when throttling is off.
	var rdb *redisclient.Client
	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		rdb, err = infrastructure.NewRedisClient(cfg, l)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
		rateLimiter = middleware.NewRateLimiter(rdb.Client, cfg.RateLimit, l)
	}

	userRepo := postgres.NewUserRepoPG(db, l)
	txRepo := postgres.NewTransactionRepoPG(db, l)

	userUC := useruc.New(userRepo, l)
	transactionUC := txuc.New(txRepo, userRepo, l)

	handler, err := gql.NewHandler(gql.NewResolver(userUC, transactionUC, l), l)
	if err != nil {
		return nil, fmt.Errorf("failed to build GraphQL schema: %w", err)
	}

	return &Container{
		Config:         cfg,
		Logger:         l,
		DB:             db,
		RedisClient:    rdb,
		UserUC:         userUC,
		TransactionUC:  transactionUC,
		RateLimiter:    rateLimiter,
		GraphQLHandler: handler,
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("container close errors: %v", errs)
	}

	return nil
}
