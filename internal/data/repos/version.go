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

// VersionRepo is the table-level access layer for the version ledger.
// Entries are append-only: there is no update method, and deletion exists
// only as the bulk cascade used when the owning page is removed.
type VersionRepo interface {
	Create(dbc dbctx.Context, rows []*types.Version) ([]*types.Version, error)
	ListMetaByPage(dbc dbctx.Context, pageID uuid.UUID) ([]*types.VersionMeta, error)
	GetByNumber(dbc dbctx.Context, pageID uuid.UUID, versionNumber int) (*types.Version, error)
	MaxNumber(dbc dbctx.Context, pageID uuid.UUID) (int, error)
	CountByPage(dbc dbctx.Context, pageID uuid.UUID) (int64, error)
	DeleteByPageID(dbc dbctx.Context, pageID uuid.UUID) error
}

type versionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVersionRepo(db *gorm.DB, baseLog *logger.Logger) VersionRepo {
	return &versionRepo{db: db, log: baseLog.With("repo", "VersionRepo")}
}

func (r *versionRepo) base(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *versionRepo) Create(dbc dbctx.Context, rows []*types.Version) ([]*types.Version, error) {
	if len(rows) == 0 {
		return []*types.Version{}, nil
	}
	if err := r.base(dbc).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListMetaByPage returns history newest-first without materializing the
// document column.
func (r *versionRepo) ListMetaByPage(dbc dbctx.Context, pageID uuid.UUID) ([]*types.VersionMeta, error) {
	if pageID == uuid.Nil {
		return nil, fmt.Errorf("missing page id")
	}
	var out []*types.VersionMeta
	if err := r.base(dbc).
		Model(&types.Version{}).
		Select("version_number", "change_summary", "created_by", "created_at").
		Where("page_id = ?", pageID).
		Order("version_number DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *versionRepo) GetByNumber(dbc dbctx.Context, pageID uuid.UUID, versionNumber int) (*types.Version, error) {
	if pageID == uuid.Nil || versionNumber < 1 {
		return nil, fmt.Errorf("missing page id or version number")
	}
	var out types.Version
	err := r.base(dbc).
		Where("page_id = ? AND version_number = ?", pageID, versionNumber).
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// MaxNumber returns 0 for a page with no ledger entries. Callers allocating
// the next number must hold the page row lock for the same transaction.
func (r *versionRepo) MaxNumber(dbc dbctx.Context, pageID uuid.UUID) (int, error) {
	if pageID == uuid.Nil {
		return 0, fmt.Errorf("missing page id")
	}
	var max *int
	if err := r.base(dbc).
		Model(&types.Version{}).
		Select("MAX(version_number)").
		Where("page_id = ?", pageID).
		Scan(&max).Error; err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

func (r *versionRepo) CountByPage(dbc dbctx.Context, pageID uuid.UUID) (int64, error) {
	if pageID == uuid.Nil {
		return 0, fmt.Errorf("missing page id")
	}
	var count int64
	if err := r.base(dbc).
		Model(&types.Version{}).
		Where("page_id = ?", pageID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *versionRepo) DeleteByPageID(dbc dbctx.Context, pageID uuid.UUID) error {
	if pageID == uuid.Nil {
		return fmt.Errorf("missing page id")
	}
	return r.base(dbc).
		Where("page_id = ?", pageID).
		Delete(&types.Version{}).Error
}
