package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"graphql-finance-service/internal/adapter/gin/middleware"
	gql "graphql-finance-service/internal/adapter/graphql"
	"graphql-finance-service/internal/config"
	"graphql-finance-service/pkg/logger"
)

// New assembles the HTTP routing tree with the full middleware chain.
func New(cfg *config.Config, log *zap.Logger, handler *gql.Handler, limiter *middleware.RateLimiter) *gin.Engine {
	engine := gin.New()

	engine.Use(logger.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.Middleware(log))
	engine.Use(cors.New(corsConfig(cfg.CORS)))
	if limiter != nil {
		engine.Use(limiter.Handle())
	}

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	engine.POST("/graphql", handler.Handle)

	return engine
}

func corsConfig(cfg config.CORSConfig) cors.Config {
	out := cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     cfg.Methods,
		AllowHeaders:     cfg.AllowedHeaders,
		AllowCredentials: cfg.Credentials,
		MaxAge:           time.Duration(cfg.MaxAge) * time.Second,
	}
	if len(out.AllowOrigins) == 0 {
		out.AllowAllOrigins = true
		out.AllowCredentials = false
	}
	return out
}
