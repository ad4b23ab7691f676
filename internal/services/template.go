package services

import (
	"context"
	"strings"

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

// TemplateService serves the shared template catalog. Templates are global
// rows: any authenticated user can browse them, only super-admins create them.
type TemplateService interface {
	ListTemplates(ctx context.Context, category string) ([]*types.Template, error)
	GetTemplate(ctx context.Context, templateID uuid.UUID) (*types.Template, error)
	CreateTemplate(ctx context.Context, in CreateTemplateInput) (*types.Template, error)

	// ApplyTemplate resolves a template and returns an independent copy of
	// its document for seeding a new page. Later template edits never reach
	// pages created from them.
	ApplyTemplate(ctx context.Context, templateID uuid.UUID) (*types.PageDocument, error)
}

type CreateTemplateInput struct {
	Name        string
	Description string
	Category    string
	Thumbnail   string
	Document    *types.PageDocument
	IsPublic    bool
}

type templateService struct {
	db        *gorm.DB
	log       *logger.Logger
	templates repos.TemplateRepo
}

func NewTemplateService(db *gorm.DB, baseLog *logger.Logger, templates repos.TemplateRepo) TemplateService {
	return &templateService{
		db:        db,
		log:       baseLog.With("service", "TemplateService"),
		templates: templates,
	}
}

func (s *templateService) ListTemplates(ctx context.Context, category string) ([]*types.Template, error) {
	const op = "Content.Template.ListTemplates"
	if _, err := tenant.FromContext(ctx); err != nil {
		return nil, err
	}
	category = strings.TrimSpace(category)
	if category != "" && !types.ValidTemplateCategory(category) {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "unknown template category", nil)
	}
	rows, err := s.templates.ListPublic(dbctx.Context{Ctx: ctx}, category)
	if err != nil {
		s.log.Warn("ListTemplates failed", "error", err, "category", category)
		return nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	return rows, nil
}

func (s *templateService) GetTemplate(ctx context.Context, templateID uuid.UUID) (*types.Template, error) {
	const op = "Content.Template.GetTemplate"
	if _, err := tenant.FromContext(ctx); err != nil {
		return nil, err
	}
	if templateID == uuid.Nil {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "missing template id", nil)
	}
	tpl, err := s.templates.GetByID(dbctx.Context{Ctx: ctx}, templateID)
	if err != nil {
		return nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	if tpl == nil {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, "template not found", nil)
	}
	return tpl, nil
}

func (s *templateService) CreateTemplate(ctx context.Context, in CreateTemplateInput) (*types.Template, error) {
	const op = "Content.Template.CreateTemplate"
	tc, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !tc.IsSuperAdmin() {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, "template not found", nil)
	}

	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "missing template name", nil)
	}
	if !types.ValidTemplateCategory(in.Category) {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "unknown template category", nil)
	}
	if in.Document == nil {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "missing template document", nil)
	}
	raw, err := in.Document.Encode()
	if err != nil {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "template document is not encodable", err)
	}

	row := &types.Template{
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Thumbnail:   in.Thumbnail,
		Document:    raw,
		IsPublic:    in.IsPublic,
		CreatedBy:   &tc.UserID,
	}
	created, err := s.templates.Create(dbctx.Context{Ctx: ctx}, []*types.Template{row})
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	s.log.Info("template created", "template_id", created[0].ID, "name", created[0].Name)
	return created[0], nil
}

func (s *templateService) ApplyTemplate(ctx context.Context, templateID uuid.UUID) (*types.PageDocument, error) {
	const op = "Content.Template.ApplyTemplate"
	tpl, err := s.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}
	doc, err := types.DecodePageDocument(tpl.Document)
	if err != nil {
		return nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	return doc.Clone(), nil
}
