package db

import (
	types "github.com/campuscms/backend/internal/domain"
)

func (s *PostgresService) AutoMigrateAll() error {
	return s.db.AutoMigrate(
		&types.Institution{},
		&types.User{},
		&types.Page{},
		&types.Version{},
		&types.Template{},
	)
}
