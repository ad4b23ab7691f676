package app

import (
	apphttp "github.com/campuscms/backend/internal/http"
	"github.com/campuscms/backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg Config, handlerset Handlers, mw Middleware) *apphttp.Server {
	log.Info("Wiring router...")
	return apphttp.NewServer(apphttp.RouterConfig{
		Log: log,

		AuthMiddleware: mw.Auth,
		RateLimiter:    mw.RateLimit,

		HealthHandler:   handlerset.Health,
		AuthHandler:     handlerset.Auth,
		PageHandler:     handlerset.Page,
		VersionHandler:  handlerset.Version,
		TemplateHandler: handlerset.Template,
		PublicHandler:   handlerset.Public,

		ServiceName:  cfg.ServiceName,
		ExtraOrigins: cfg.ExtraCORSOrigins,
	})
}
