package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/campuscms/backend/internal/domain"
	domainagg "github.com/campuscms/backend/internal/domain/aggregates"
	"github.com/campuscms/backend/internal/data/repos"
	"github.com/campuscms/backend/internal/platform/dbctx"
	"github.com/campuscms/backend/internal/platform/logger"
	"github.com/campuscms/backend/internal/tenant"
)

// VersionService exposes the page history ledger. Ledger rows do not carry an
// institution id of their own, so every read resolves the page first through
// the tenant-scoped page repo; a cross-tenant page id dies there as a miss.
type VersionService interface {
	ListVersions(ctx context.Context, pageID uuid.UUID) ([]*types.VersionMeta, error)
	GetVersion(ctx context.Context, pageID uuid.UUID, versionNumber int) (*types.Version, error)
	RestoreVersion(ctx context.Context, pageID uuid.UUID, versionNumber int) (domainagg.PageResult, error)
}

type versionService struct {
	db        *gorm.DB
	log       *logger.Logger
	pages     repos.PageRepo
	versions  repos.VersionRepo
	aggregate domainagg.PageAggregate
}

func NewVersionService(
	db *gorm.DB,
	baseLog *logger.Logger,
	pages repos.PageRepo,
	versions repos.VersionRepo,
	aggregate domainagg.PageAggregate,
) VersionService {
	return &versionService{
		db:        db,
		log:       baseLog.With("service", "VersionService"),
		pages:     pages,
		versions:  versions,
		aggregate: aggregate,
	}
}

func (s *versionService) resolvePage(ctx context.Context, op string, pageID uuid.UUID) (tenant.Context, *types.Page, error) {
	tc, err := tenant.FromContext(ctx)
	if err != nil {
		return tenant.Context{}, nil, err
	}
	if pageID == uuid.Nil {
		return tenant.Context{}, nil, domainagg.NewError(domainagg.CodeValidation, op, "missing page id", nil)
	}
	page, err := s.pages.GetByID(dbctx.Context{Ctx: ctx}, tc.InstitutionID, pageID)
	if err != nil {
		return tenant.Context{}, nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	if page == nil {
		return tenant.Context{}, nil, domainagg.NewError(domainagg.CodeNotFound, op, "page not found", nil)
	}
	return tc, page, nil
}

func (s *versionService) ListVersions(ctx context.Context, pageID uuid.UUID) ([]*types.VersionMeta, error) {
	const op = "Content.Version.ListVersions"
	_, page, err := s.resolvePage(ctx, op, pageID)
	if err != nil {
		return nil, err
	}
	metas, err := s.versions.ListMetaByPage(dbctx.Context{Ctx: ctx}, page.ID)
	if err != nil {
		s.log.Warn("ListVersions failed", "error", err, "page_id", page.ID)
		return nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	return metas, nil
}

func (s *versionService) GetVersion(ctx context.Context, pageID uuid.UUID, versionNumber int) (*types.Version, error) {
	const op = "Content.Version.GetVersion"
	_, page, err := s.resolvePage(ctx, op, pageID)
	if err != nil {
		return nil, err
	}
	if versionNumber < 1 {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "version number must be positive", nil)
	}
	version, err := s.versions.GetByNumber(dbctx.Context{Ctx: ctx}, page.ID, versionNumber)
	if err != nil {
		return nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	if version == nil {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, "version not found", nil)
	}
	return version, nil
}

func (s *versionService) RestoreVersion(ctx context.Context, pageID uuid.UUID, versionNumber int) (domainagg.PageResult, error) {
	const op = "Content.Version.RestoreVersion"
	tc, err := requireEditor(ctx, op)
	if err != nil {
		return domainagg.PageResult{}, err
	}
	return s.aggregate.RestoreVersion(ctx, domainagg.RestoreVersionInput{
		InstitutionID: tc.InstitutionID,
		UserID:        tc.UserID,
		PageID:        pageID,
		VersionNumber: versionNumber,
	})
}
