package app

import (
	httpH "github.com/campuscms/backend/internal/http/handlers"
	"github.com/campuscms/backend/internal/platform/logger"
)

type Handlers struct {
	Health   *httpH.HealthHandler
	Auth     *httpH.AuthHandler
	Page     *httpH.PageHandler
	Version  *httpH.VersionHandler
	Template *httpH.TemplateHandler
	Public   *httpH.PublicHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:   httpH.NewHealthHandler(),
		Auth:     httpH.NewAuthHandler(log, serviceset.Auth),
		Page:     httpH.NewPageHandler(log, serviceset.Page),
		Version:  httpH.NewVersionHandler(log, serviceset.Version),
		Template: httpH.NewTemplateHandler(log, serviceset.Template),
		Public:   httpH.NewPublicHandler(log, serviceset.Public),
	}
}
