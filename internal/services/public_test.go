package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	types "github.com/campuscms/backend/internal/domain"
	domainagg "github.com/campuscms/backend/internal/domain/aggregates"
	"github.com/campuscms/backend/internal/platform/dbctx"
	"github.com/campuscms/backend/internal/tenant"
)

type fakeInstitutionRepo struct {
	bySubdomain map[string]*types.Institution
}

func (f *fakeInstitutionRepo) Create(dbc dbctx.Context, rows []*types.Institution) ([]*types.Institution, error) {
	return rows, nil
}

func (f *fakeInstitutionRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Institution, error) {
	for _, inst := range f.bySubdomain {
		if inst.ID == id {
			return inst, nil
		}
	}
	return nil, nil
}

func (f *fakeInstitutionRepo) GetByEmail(dbc dbctx.Context, email string) (*types.Institution, error) {
	return nil, nil
}

func (f *fakeInstitutionRepo) GetBySubdomain(dbc dbctx.Context, subdomain string) (*types.Institution, error) {
	return f.bySubdomain[subdomain], nil
}

type fakePageRepo struct {
	pages []*types.Page
}

func (f *fakePageRepo) Create(dbc dbctx.Context, rows []*types.Page) ([]*types.Page, error) {
	f.pages = append(f.pages, rows...)
	return rows, nil
}

func (f *fakePageRepo) GetByID(dbc dbctx.Context, institutionID, id uuid.UUID) (*types.Page, error) {
	for _, p := range f.pages {
		if p.InstitutionID == institutionID && p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePageRepo) GetBySlug(dbc dbctx.Context, institutionID uuid.UUID, slug string) (*types.Page, error) {
	for _, p := range f.pages {
		if p.InstitutionID == institutionID && p.Slug == slug {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePageRepo) ListByInstitution(dbc dbctx.Context, institutionID uuid.UUID) ([]*types.Page, error) {
	var out []*types.Page
	for _, p := range f.pages {
		if p.InstitutionID == institutionID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePageRepo) LockByID(dbc dbctx.Context, institutionID, id uuid.UUID) (*types.Page, error) {
	return f.GetByID(dbc, institutionID, id)
}

func (f *fakePageRepo) SlugExists(dbc dbctx.Context, institutionID uuid.UUID, slug string) (bool, error) {
	p, _ := f.GetBySlug(dbc, institutionID, slug)
	return p != nil, nil
}

func (f *fakePageRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	return nil
}

func (f *fakePageRepo) DeleteByID(dbc dbctx.Context, id uuid.UUID) error {
	return nil
}

func (f *fakePageRepo) ListPublished(dbc dbctx.Context, institutionID uuid.UUID) ([]*types.Page, error) {
	var out []*types.Page
	for _, p := range f.pages {
		if p.InstitutionID == institutionID && p.Published {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePageRepo) GetPublishedBySlug(dbc dbctx.Context, institutionID uuid.UUID, slug string) (*types.Page, error) {
	for _, p := range f.pages {
		if p.InstitutionID == institutionID && p.Slug == slug && p.Published {
			return p, nil
		}
	}
	return nil, nil
}

func TestPublicServiceServesOnlyPublishedPages(t *testing.T) {
	inst := &types.Institution{ID: uuid.New(), Name: "Alpha U", Subdomain: "alpha"}
	institutions := &fakeInstitutionRepo{bySubdomain: map[string]*types.Institution{"alpha": inst}}

	doc, err := types.DefaultPageDocument("home").Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	editorID := uuid.New()
	pages := &fakePageRepo{pages: []*types.Page{
		{ID: uuid.New(), InstitutionID: inst.ID, Name: "Home", Slug: "home", Document: doc, Published: true, UpdatedBy: editorID},
		{ID: uuid.New(), InstitutionID: inst.ID, Name: "Draft", Slug: "draft", Document: doc, Published: false, UpdatedBy: editorID},
	}}

	svc := NewPublicService(nil, testLogger(t), institutions, pages)
	ctx := context.Background()

	listed, err := svc.ListPublished(ctx, "ALPHA ")
	if err != nil {
		t.Fatalf("ListPublished: %v", err)
	}
	if len(listed) != 1 || listed[0].Slug != "home" {
		t.Fatalf("ListPublished: unexpected %+v", listed)
	}

	got, err := svc.GetPublishedBySlug(ctx, "alpha", "home")
	if err != nil {
		t.Fatalf("GetPublishedBySlug: %v", err)
	}
	if got.Name != "Home" || got.Slug != "home" || len(got.Document) == 0 {
		t.Fatalf("published projection: %+v", got)
	}

	// Slugs are stored lowercased; lookups normalize the same way.
	mixed, err := svc.GetPublishedBySlug(ctx, "alpha", " Home ")
	if err != nil {
		t.Fatalf("GetPublishedBySlug mixed case: %v", err)
	}
	if mixed.Slug != "home" {
		t.Fatalf("mixed-case lookup: %+v", mixed)
	}

	// A draft slug and a nonexistent slug are the same miss.
	if _, err := svc.GetPublishedBySlug(ctx, "alpha", "draft"); !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("draft slug: expected not_found, got %v", err)
	}
	if _, err := svc.GetPublishedBySlug(ctx, "alpha", "nope"); !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("missing slug: expected not_found, got %v", err)
	}

	// Unknown site.
	if _, err := svc.ListPublished(ctx, "beta"); !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("unknown subdomain: expected not_found, got %v", err)
	}
}

func TestPageServiceSlugLookupIsCaseInsensitive(t *testing.T) {
	institutionID := uuid.New()
	doc, err := types.DefaultPageDocument("home").Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	pages := &fakePageRepo{pages: []*types.Page{
		{ID: uuid.New(), InstitutionID: institutionID, Name: "Home", Slug: "home", Document: doc},
	}}
	svc := NewPageService(nil, testLogger(t), pages, nil, nil)

	ctx := tenant.WithContext(context.Background(), tenant.Context{
		InstitutionID: institutionID,
		UserID:        uuid.New(),
		Role:          tenant.RoleEditor,
	})

	got, err := svc.GetPageBySlug(ctx, " HoMe ")
	if err != nil {
		t.Fatalf("GetPageBySlug: %v", err)
	}
	if got.Slug != "home" {
		t.Fatalf("lookup resolved wrong page: %+v", got)
	}

	if _, err := svc.GetPageBySlug(ctx, "  "); !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("blank slug: expected validation, got %v", err)
	}
}

func TestPageServiceRoleGate(t *testing.T) {
	pages := &fakePageRepo{}
	svc := NewPageService(nil, testLogger(t), pages, nil, nil)

	viewerCtx := viewerContext(t)
	if _, err := svc.CreatePage(viewerCtx, "Home", "home", nil, nil); !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("viewer create: expected not_found, got %v", err)
	}
	if err := svc.DeletePage(viewerCtx, uuid.New()); !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("viewer delete: expected not_found, got %v", err)
	}
	if _, err := svc.ListPages(context.Background()); !domainagg.IsCode(err, domainagg.CodeUnauthenticated) {
		t.Fatalf("anonymous list: expected unauthenticated, got %v", err)
	}
}
