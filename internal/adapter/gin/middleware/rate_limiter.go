package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"graphql-finance-service/internal/config"
)

// Token bucket in Lua so refill and consume stay atomic under
// concurrent requests. Bucket state: {last_refill_time, current_tokens}.
var tokenBucketScript = redis.NewScript(`
	local key = KEYS[1]
	local rate = tonumber(ARGV[1])         -- tokens per second
	local capacity = tonumber(ARGV[2])     -- max tokens in bucket
	local now = tonumber(ARGV[3])          -- current timestamp
	local requested = tonumber(ARGV[4])    -- tokens requested (always 1)

	local bucket = redis.call('HMGET', key, 'last_refill', 'tokens')
	local last_refill = tonumber(bucket[1]) or now
	local tokens = tonumber(bucket[2]) or capacity

	local elapsed = math.max(0, now - last_refill)
	tokens = math.min(capacity, tokens + elapsed * rate)

	if tokens >= requested then
		tokens = tokens - requested
		redis.call('HMSET', key, 'last_refill', now, 'tokens', tokens)
		redis.call('EXPIRE', key, 60)
		return 1
	else
		redis.call('HMSET', key, 'last_refill', now, 'tokens', tokens)
		redis.call('EXPIRE', key, 60)
		return 0
	end
`)

// RateLimiter throttles requests per client IP with a token bucket kept
// in Redis, so the limit holds across replicas.
type RateLimiter struct {
	client redis.Scripter
	cfg    config.RateLimitConfig
	log    *zap.Logger
}

func NewRateLimiter(client redis.Scripter, cfg config.RateLimitConfig, log *zap.Logger) *RateLimiter {
	return &RateLimiter{
		client: client,
		cfg:    cfg,
		log:    log,
	}
}

// Handle is the gin middleware. Redis failures fail open: throttling is
// protection, not correctness, and must never take the API down with it.
func (rl *RateLimiter) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.cfg.Enabled || rl.client == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:tb:%s:%s:%s", c.Request.Method, c.Request.URL.Path, c.ClientIP())

		allowed, err := tokenBucketScript.Run(c.Request.Context(), rl.client,
			[]string{key},
			rl.cfg.RequestsPerSecond,
			rl.cfg.BurstCapacity,
			time.Now().Unix(),
			1,
		).Int64()
		if err != nil {
			rl.log.Warn("rate limiter unavailable, allowing request",
				zap.String("key", key),
				zap.Error(err),
			)
			c.Next()
			return
		}

		if allowed == 0 {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate_limit_exceeded",
				"message": fmt.Sprintf("Rate limit exceeded: %.2f requests/second (burst capacity: %d)", rl.cfg.RequestsPerSecond, rl.cfg.BurstCapacity),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
