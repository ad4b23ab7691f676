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

type TemplateRepo interface {
	Create(dbc dbctx.Context, rows []*types.Template) ([]*types.Template, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Template, error)
	ListPublic(dbc dbctx.Context, category string) ([]*types.Template, error)
	UpsertByName(dbc dbctx.Context, row *types.Template) error
}

type templateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTemplateRepo(db *gorm.DB, baseLog *logger.Logger) TemplateRepo {
	return &templateRepo{db: db, log: baseLog.With("repo", "TemplateRepo")}
}

func (r *templateRepo) base(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *templateRepo) Create(dbc dbctx.Context, rows []*types.Template) ([]*types.Template, error) {
	if len(rows) == 0 {
		return []*types.Template{}, nil
	}
	if err := r.base(dbc).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *templateRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Template, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("missing template id")
	}
	var out types.Template
	err := r.base(dbc).
		Where("id = ?", id).
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *templateRepo) ListPublic(dbc dbctx.Context, category string) ([]*types.Template, error) {
	q := r.base(dbc).
		Model(&types.Template{}).
		Where("is_public = ?", true)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var out []*types.Template
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// UpsertByName is used by the seed CLI so reseeding stays idempotent.
func (r *templateRepo) UpsertByName(dbc dbctx.Context, row *types.Template) error {
	if row == nil || row.Name == "" {
		return fmt.Errorf("missing template row or name")
	}
	return r.base(dbc).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"description", "category", "thumbnail", "document", "is_public", "updated_at"}),
		}).
		Create(row).Error
}
