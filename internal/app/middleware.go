package app

import (
	"time"

	goredis "github.com/redis/go-redis/v9"

	httpMW "github.com/campuscms/backend/internal/http/middleware"
	"github.com/campuscms/backend/internal/platform/logger"
)

type Middleware struct {
	Auth      *httpMW.AuthMiddleware
	RateLimit *httpMW.RateLimiter
}

func wireMiddleware(log *logger.Logger, cfg Config, serviceset Services, rdb *goredis.Client) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth:      httpMW.NewAuthMiddleware(log, serviceset.Auth),
		RateLimit: httpMW.NewRateLimiter(log, rdb, cfg.RateLimitPerMinute, time.Minute),
	}
}
