package repos

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/campuscms/backend/internal/domain"
	"github.com/campuscms/backend/internal/platform/dbctx"
	"github.com/campuscms/backend/internal/platform/logger"
)

type InstitutionRepo interface {
	Create(dbc dbctx.Context, rows []*types.Institution) ([]*types.Institution, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Institution, error)
	GetByEmail(dbc dbctx.Context, email string) (*types.Institution, error)
	GetBySubdomain(dbc dbctx.Context, subdomain string) (*types.Institution, error)
}

type institutionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInstitutionRepo(db *gorm.DB, baseLog *logger.Logger) InstitutionRepo {
	return &institutionRepo{db: db, log: baseLog.With("repo", "InstitutionRepo")}
}

func (r *institutionRepo) base(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *institutionRepo) Create(dbc dbctx.Context, rows []*types.Institution) ([]*types.Institution, error) {
	if len(rows) == 0 {
		return []*types.Institution{}, nil
	}
	if err := r.base(dbc).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *institutionRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Institution, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("missing institution id")
	}
	var out types.Institution
	err := r.base(dbc).Where("id = ?", id).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *institutionRepo) GetByEmail(dbc dbctx.Context, email string) (*types.Institution, error) {
	if email == "" {
		return nil, fmt.Errorf("missing email")
	}
	var out types.Institution
	err := r.base(dbc).Where("email = ?", email).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *institutionRepo) GetBySubdomain(dbc dbctx.Context, subdomain string) (*types.Institution, error) {
	if subdomain == "" {
		return nil, fmt.Errorf("missing subdomain")
	}
	var out types.Institution
	err := r.base(dbc).Where("subdomain = ?", subdomain).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}
