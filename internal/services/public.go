package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/campuscms/backend/internal/domain"
	domainagg "github.com/campuscms/backend/internal/domain/aggregates"
	dataagg "github.com/campuscms/backend/internal/data/aggregates"
	"github.com/campuscms/backend/internal/data/repos"
	"github.com/campuscms/backend/internal/platform/dbctx"
	"github.com/campuscms/backend/internal/platform/logger"
)

// PublishedPage is the public projection of a page. Draft-only fields
// (version counters, editor ids) never leave this service.
type PublishedPage struct {
	ID       uuid.UUID      `json:"id"`
	Name     string         `json:"name"`
	Slug     string         `json:"slug"`
	Document datatypes.JSON `json:"document"`
}

// PublicService is the unauthenticated read surface for visitor-facing
// rendering. Pages are resolved through the owning institution's subdomain,
// and only published pages exist here: a draft slug and a nonexistent slug
// are the same miss.
type PublicService interface {
	ListPublished(ctx context.Context, subdomain string) ([]*PublishedPage, error)
	GetPublishedBySlug(ctx context.Context, subdomain, slug string) (*PublishedPage, error)
}

type publicService struct {
	db           *gorm.DB
	log          *logger.Logger
	institutions repos.InstitutionRepo
	pages        repos.PageRepo
}

func NewPublicService(db *gorm.DB, baseLog *logger.Logger, institutions repos.InstitutionRepo, pages repos.PageRepo) PublicService {
	return &publicService{
		db:           db,
		log:          baseLog.With("service", "PublicService"),
		institutions: institutions,
		pages:        pages,
	}
}

func (s *publicService) resolveInstitution(ctx context.Context, op, subdomain string) (*types.Institution, error) {
	subdomain = strings.ToLower(strings.TrimSpace(subdomain))
	if subdomain == "" {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "missing subdomain", nil)
	}
	inst, err := s.institutions.GetBySubdomain(dbctx.Context{Ctx: ctx}, subdomain)
	if err != nil {
		return nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	if inst == nil {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, "site not found", nil)
	}
	return inst, nil
}

func (s *publicService) ListPublished(ctx context.Context, subdomain string) ([]*PublishedPage, error) {
	const op = "Content.Public.ListPublished"
	inst, err := s.resolveInstitution(ctx, op, subdomain)
	if err != nil {
		return nil, err
	}
	pages, err := s.pages.ListPublished(dbctx.Context{Ctx: ctx}, inst.ID)
	if err != nil {
		s.log.Warn("ListPublished failed", "error", err, "institution_id", inst.ID)
		return nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	out := make([]*PublishedPage, 0, len(pages))
	for _, p := range pages {
		out = append(out, projectPublished(p))
	}
	return out, nil
}

func (s *publicService) GetPublishedBySlug(ctx context.Context, subdomain, slug string) (*PublishedPage, error) {
	const op = "Content.Public.GetPublishedBySlug"
	inst, err := s.resolveInstitution(ctx, op, subdomain)
	if err != nil {
		return nil, err
	}
	// Same normalization as the write path, so `Home` resolves the page
	// stored at `home`.
	slug = dataagg.NormalizeSlug(slug)
	if slug == "" {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "missing slug", nil)
	}
	page, err := s.pages.GetPublishedBySlug(dbctx.Context{Ctx: ctx}, inst.ID, slug)
	if err != nil {
		return nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	if page == nil {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, "page not found", nil)
	}
	return projectPublished(page), nil
}

func projectPublished(p *types.Page) *PublishedPage {
	return &PublishedPage{
		ID:       p.ID,
		Name:     p.Name,
		Slug:     p.Slug,
		Document: p.Document,
	}
}
