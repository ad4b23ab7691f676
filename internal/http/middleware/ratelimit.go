package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"

	"github.com/campuscms/backend/internal/platform/logger"
)

type RateLimiter struct {
	log    *logger.Logger
	rdb    *goredis.Client
	limit  int
	window time.Duration
}

// NewRateLimiter builds a fixed-window limiter keyed by client IP. A nil
// redis client disables limiting entirely.
func NewRateLimiter(log *logger.Logger, rdb *goredis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		log:    log.With("Middleware", "RateLimiter"),
		rdb:    rdb,
		limit:  limit,
		window: window,
	}
}

func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.rdb == nil || rl.limit <= 0 {
			c.Next()
			return
		}
		ctx := c.Request.Context()
		key := fmt.Sprintf("ratelimit:%s:%d", c.ClientIP(), time.Now().Unix()/int64(rl.window.Seconds()))

		count, err := rl.rdb.Incr(ctx, key).Result()
		if err != nil {
			// Redis being down should not take the API with it.
			rl.log.Warn("rate limit check failed", "error", err)
			c.Next()
			return
		}
		if count == 1 {
			rl.rdb.Expire(ctx, key, rl.window)
		}
		if count > int64(rl.limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{"message": "rate limit exceeded", "code": "rate_limited"},
			})
			return
		}
		c.Next()
	}
}
