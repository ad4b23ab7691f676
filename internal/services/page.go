package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/campuscms/backend/internal/domain"
	domainagg "github.com/campuscms/backend/internal/domain/aggregates"
	dataagg "github.com/campuscms/backend/internal/data/aggregates"
	"github.com/campuscms/backend/internal/data/repos"
	"github.com/campuscms/backend/internal/platform/dbctx"
	"github.com/campuscms/backend/internal/platform/logger"
	"github.com/campuscms/backend/internal/tenant"
)

// PageService is the authenticated editing surface. Reads go straight to the
// table repos scoped by the tenant context; writes go through the page
// aggregate so page and ledger always commit together.
type PageService interface {
	ListPages(ctx context.Context) ([]*types.Page, error)
	GetPage(ctx context.Context, pageID uuid.UUID) (*types.Page, error)
	GetPageBySlug(ctx context.Context, slug string) (*types.Page, error)

	CreatePage(ctx context.Context, name, slug string, templateID *uuid.UUID, initialDocument *types.PageDocument) (domainagg.PageResult, error)
	UpdateDocument(ctx context.Context, pageID uuid.UUID, document *types.PageDocument, changeSummary string) (domainagg.PageResult, error)
	Publish(ctx context.Context, pageID uuid.UUID) (domainagg.PageResult, error)
	Unpublish(ctx context.Context, pageID uuid.UUID) (domainagg.PageResult, error)
	DeletePage(ctx context.Context, pageID uuid.UUID) error
	DuplicatePage(ctx context.Context, sourcePageID uuid.UUID, newName, newSlug string) (domainagg.PageResult, error)
}

type pageService struct {
	db        *gorm.DB
	log       *logger.Logger
	pages     repos.PageRepo
	aggregate domainagg.PageAggregate
	templates TemplateService
}

func NewPageService(
	db *gorm.DB,
	baseLog *logger.Logger,
	pages repos.PageRepo,
	aggregate domainagg.PageAggregate,
	templates TemplateService,
) PageService {
	return &pageService{
		db:        db,
		log:       baseLog.With("service", "PageService"),
		pages:     pages,
		aggregate: aggregate,
		templates: templates,
	}
}

func requireEditor(ctx context.Context, op string) (tenant.Context, error) {
	tc, err := tenant.FromContext(ctx)
	if err != nil {
		return tenant.Context{}, err
	}
	if !tc.CanEdit() {
		// Viewers learn nothing beyond "not found" about pages they cannot
		// touch; the merged error keeps parity with cross-tenant misses.
		return tenant.Context{}, domainagg.NewError(domainagg.CodeNotFound, op, "page not found", nil)
	}
	return tc, nil
}

func (s *pageService) ListPages(ctx context.Context) ([]*types.Page, error) {
	const op = "Content.Page.ListPages"
	tc, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	pages, err := s.pages.ListByInstitution(dbctx.Context{Ctx: ctx}, tc.InstitutionID)
	if err != nil {
		s.log.Warn("ListPages failed", "error", err, "institution_id", tc.InstitutionID)
		return nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	return pages, nil
}

func (s *pageService) GetPage(ctx context.Context, pageID uuid.UUID) (*types.Page, error) {
	const op = "Content.Page.GetPage"
	tc, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if pageID == uuid.Nil {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "missing page id", nil)
	}
	page, err := s.pages.GetByID(dbctx.Context{Ctx: ctx}, tc.InstitutionID, pageID)
	if err != nil {
		return nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	if page == nil {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, "page not found", nil)
	}
	return page, nil
}

func (s *pageService) GetPageBySlug(ctx context.Context, slug string) (*types.Page, error) {
	const op = "Content.Page.GetPageBySlug"
	tc, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	// Slugs are stored normalized; lookups normalize the same way so the
	// match is case-insensitive.
	slug = dataagg.NormalizeSlug(slug)
	if slug == "" {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "missing slug", nil)
	}
	page, err := s.pages.GetBySlug(dbctx.Context{Ctx: ctx}, tc.InstitutionID, slug)
	if err != nil {
		return nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	if page == nil {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, "page not found", nil)
	}
	return page, nil
}

func (s *pageService) CreatePage(ctx context.Context, name, slug string, templateID *uuid.UUID, initialDocument *types.PageDocument) (domainagg.PageResult, error) {
	const op = "Content.Page.CreatePage"
	tc, err := requireEditor(ctx, op)
	if err != nil {
		return domainagg.PageResult{}, err
	}

	doc := initialDocument
	if doc == nil && templateID != nil && *templateID != uuid.Nil {
		doc, err = s.templates.ApplyTemplate(ctx, *templateID)
		if err != nil {
			return domainagg.PageResult{}, err
		}
	}

	return s.aggregate.CreatePage(ctx, domainagg.CreatePageInput{
		InstitutionID:   tc.InstitutionID,
		UserID:          tc.UserID,
		Name:            name,
		Slug:            slug,
		InitialDocument: doc,
	})
}

func (s *pageService) UpdateDocument(ctx context.Context, pageID uuid.UUID, document *types.PageDocument, changeSummary string) (domainagg.PageResult, error) {
	const op = "Content.Page.UpdateDocument"
	tc, err := requireEditor(ctx, op)
	if err != nil {
		return domainagg.PageResult{}, err
	}
	return s.aggregate.UpdateDocument(ctx, domainagg.UpdateDocumentInput{
		InstitutionID: tc.InstitutionID,
		UserID:        tc.UserID,
		PageID:        pageID,
		Document:      document,
		ChangeSummary: changeSummary,
	})
}

func (s *pageService) Publish(ctx context.Context, pageID uuid.UUID) (domainagg.PageResult, error) {
	return s.setPublished(ctx, pageID, true)
}

func (s *pageService) Unpublish(ctx context.Context, pageID uuid.UUID) (domainagg.PageResult, error) {
	return s.setPublished(ctx, pageID, false)
}

func (s *pageService) setPublished(ctx context.Context, pageID uuid.UUID, published bool) (domainagg.PageResult, error) {
	const op = "Content.Page.SetPublished"
	tc, err := requireEditor(ctx, op)
	if err != nil {
		return domainagg.PageResult{}, err
	}
	return s.aggregate.SetPublished(ctx, domainagg.SetPublishedInput{
		InstitutionID: tc.InstitutionID,
		UserID:        tc.UserID,
		PageID:        pageID,
		Published:     published,
	})
}

func (s *pageService) DeletePage(ctx context.Context, pageID uuid.UUID) error {
	const op = "Content.Page.DeletePage"
	tc, err := requireEditor(ctx, op)
	if err != nil {
		return err
	}
	return s.aggregate.DeletePage(ctx, domainagg.DeletePageInput{
		InstitutionID: tc.InstitutionID,
		UserID:        tc.UserID,
		PageID:        pageID,
	})
}

func (s *pageService) DuplicatePage(ctx context.Context, sourcePageID uuid.UUID, newName, newSlug string) (domainagg.PageResult, error) {
	const op = "Content.Page.DuplicatePage"
	tc, err := requireEditor(ctx, op)
	if err != nil {
		return domainagg.PageResult{}, err
	}
	return s.aggregate.DuplicatePage(ctx, domainagg.DuplicatePageInput{
		InstitutionID: tc.InstitutionID,
		UserID:        tc.UserID,
		SourcePageID:  sourcePageID,
		NewName:       newName,
		NewSlug:       newSlug,
	})
}
