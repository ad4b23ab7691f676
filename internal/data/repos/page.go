package repos

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/campuscms/backend/internal/domain"
	"github.com/campuscms/backend/internal/platform/dbctx"
	"github.com/campuscms/backend/internal/platform/logger"
)

// PageRepo is the table-level access layer for pages. Every tenant-scoped
// method filters by institution id so a cross-tenant id lookup behaves like
// a miss.
type PageRepo interface {
	Create(dbc dbctx.Context, rows []*types.Page) ([]*types.Page, error)
	GetByID(dbc dbctx.Context, institutionID, id uuid.UUID) (*types.Page, error)
	GetBySlug(dbc dbctx.Context, institutionID uuid.UUID, slug string) (*types.Page, error)
	ListByInstitution(dbc dbctx.Context, institutionID uuid.UUID) ([]*types.Page, error)
	LockByID(dbc dbctx.Context, institutionID, id uuid.UUID) (*types.Page, error)
	SlugExists(dbc dbctx.Context, institutionID uuid.UUID, slug string) (bool, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	DeleteByID(dbc dbctx.Context, id uuid.UUID) error

	ListPublished(dbc dbctx.Context, institutionID uuid.UUID) ([]*types.Page, error)
	GetPublishedBySlug(dbc dbctx.Context, institutionID uuid.UUID, slug string) (*types.Page, error)
}

type pageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPageRepo(db *gorm.DB, baseLog *logger.Logger) PageRepo {
	return &pageRepo{db: db, log: baseLog.With("repo", "PageRepo")}
}

func (r *pageRepo) base(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *pageRepo) Create(dbc dbctx.Context, rows []*types.Page) ([]*types.Page, error) {
	if len(rows) == 0 {
		return []*types.Page{}, nil
	}
	if err := r.base(dbc).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *pageRepo) GetByID(dbc dbctx.Context, institutionID, id uuid.UUID) (*types.Page, error) {
	if institutionID == uuid.Nil || id == uuid.Nil {
		return nil, fmt.Errorf("missing institution_id or page id")
	}
	var out types.Page
	err := r.base(dbc).
		Where("institution_id = ? AND id = ?", institutionID, id).
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *pageRepo) GetBySlug(dbc dbctx.Context, institutionID uuid.UUID, slug string) (*types.Page, error) {
	if institutionID == uuid.Nil || slug == "" {
		return nil, fmt.Errorf("missing institution_id or slug")
	}
	var out types.Page
	err := r.base(dbc).
		Where("institution_id = ? AND slug = ?", institutionID, slug).
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *pageRepo) ListByInstitution(dbc dbctx.Context, institutionID uuid.UUID) ([]*types.Page, error) {
	if institutionID == uuid.Nil {
		return nil, fmt.Errorf("missing institution_id")
	}
	var out []*types.Page
	if err := r.base(dbc).
		Where("institution_id = ?", institutionID).
		Order("updated_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// LockByID takes a row-level lock on the page for the rest of the enclosing
// transaction. Same-page writers serialize here, which is what makes version
// number allocation race-free.
func (r *pageRepo) LockByID(dbc dbctx.Context, institutionID, id uuid.UUID) (*types.Page, error) {
	if institutionID == uuid.Nil || id == uuid.Nil {
		return nil, fmt.Errorf("missing institution_id or page id")
	}
	var out types.Page
	err := r.base(dbc).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("institution_id = ? AND id = ?", institutionID, id).
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *pageRepo) SlugExists(dbc dbctx.Context, institutionID uuid.UUID, slug string) (bool, error) {
	if institutionID == uuid.Nil || slug == "" {
		return false, fmt.Errorf("missing institution_id or slug")
	}
	var count int64
	if err := r.base(dbc).
		Model(&types.Page{}).
		Where("institution_id = ? AND slug = ?", institutionID, slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *pageRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	if id == uuid.Nil || len(updates) == 0 {
		return fmt.Errorf("missing page id or updates")
	}
	return r.base(dbc).
		Model(&types.Page{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *pageRepo) DeleteByID(dbc dbctx.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("missing page id")
	}
	return r.base(dbc).
		Where("id = ?", id).
		Delete(&types.Page{}).Error
}

func (r *pageRepo) ListPublished(dbc dbctx.Context, institutionID uuid.UUID) ([]*types.Page, error) {
	if institutionID == uuid.Nil {
		return nil, fmt.Errorf("missing institution_id")
	}
	var out []*types.Page
	if err := r.base(dbc).
		Where("institution_id = ? AND published = ?", institutionID, true).
		Order("updated_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *pageRepo) GetPublishedBySlug(dbc dbctx.Context, institutionID uuid.UUID, slug string) (*types.Page, error) {
	if institutionID == uuid.Nil || slug == "" {
		return nil, fmt.Errorf("missing institution_id or slug")
	}
	var out types.Page
	err := r.base(dbc).
		Where("institution_id = ? AND slug = ? AND published = ?", institutionID, slug, true).
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}
