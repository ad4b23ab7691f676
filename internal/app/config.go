package app

import (
	"strings"
	"time"

	"github.com/campuscms/backend/internal/platform/envutil"
	"github.com/campuscms/backend/internal/platform/logger"
)

type Config struct {
	ServiceName string
	Environment string
	Version     string

	JWTSecretKey   string
	AccessTokenTTL time.Duration

	RateLimitPerMinute int

	ExtraCORSOrigins []string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := envutil.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := envutil.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	rateLimitPerMinute := envutil.GetEnvAsInt("RATE_LIMIT_PER_MINUTE", 300, log)

	var extraOrigins []string
	if raw := strings.TrimSpace(envutil.GetEnv("CORS_EXTRA_ORIGINS", "", log)); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				extraOrigins = append(extraOrigins, o)
			}
		}
	}

	return Config{
		ServiceName:        envutil.GetEnv("SERVICE_NAME", "campuscms", log),
		Environment:        envutil.GetEnv("APP_ENV", "development", log),
		Version:            envutil.GetEnv("APP_VERSION", "dev", log),
		JWTSecretKey:       jwtSecretKey,
		AccessTokenTTL:     time.Duration(accessTokenTTLSeconds) * time.Second,
		RateLimitPerMinute: rateLimitPerMinute,
		ExtraCORSOrigins:   extraOrigins,
	}
}
