package app

import (
	"gorm.io/gorm"

	dataagg "github.com/campuscms/backend/internal/data/aggregates"
	domainagg "github.com/campuscms/backend/internal/domain/aggregates"
	"github.com/campuscms/backend/internal/platform/logger"
	"github.com/campuscms/backend/internal/services"
)

type Services struct {
	Auth     services.AuthService
	Page     services.PageService
	Version  services.VersionService
	Template services.TemplateService
	Public   services.PublicService

	PageAggregate domainagg.PageAggregate
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos) Services {
	log.Info("Wiring services...")

	pageAggregate := dataagg.NewPageAggregate(dataagg.PageAggregateDeps{
		Base: dataagg.BaseDeps{
			DB:  db,
			Log: log,
		},
		Pages:    reposet.Page,
		Versions: reposet.Version,
	})

	templateService := services.NewTemplateService(db, log, reposet.Template)

	return Services{
		Auth:          services.NewAuthService(db, log, reposet.User, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		Page:          services.NewPageService(db, log, reposet.Page, pageAggregate, templateService),
		Version:       services.NewVersionService(db, log, reposet.Page, reposet.Version, pageAggregate),
		Template:      templateService,
		Public:        services.NewPublicService(db, log, reposet.Institution, reposet.Page),
		PageAggregate: pageAggregate,
	}
}
