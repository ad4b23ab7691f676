package app

import (
	"gorm.io/gorm"

	"github.com/campuscms/backend/internal/data/repos"
	"github.com/campuscms/backend/internal/platform/logger"
)

type Repos struct {
	Institution repos.InstitutionRepo
	User        repos.UserRepo
	Page        repos.PageRepo
	Version     repos.VersionRepo
	Template    repos.TemplateRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Institution: repos.NewInstitutionRepo(db, log),
		User:        repos.NewUserRepo(db, log),
		Page:        repos.NewPageRepo(db, log),
		Version:     repos.NewVersionRepo(db, log),
		Template:    repos.NewTemplateRepo(db, log),
	}
}
