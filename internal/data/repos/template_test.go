package repos

import (
	"context"
	"testing"

	"github.com/campuscms/backend/internal/data/repos/testutil"
	types "github.com/campuscms/backend/internal/domain"
	"github.com/campuscms/backend/internal/platform/dbctx"
)

func TestTemplateRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewTemplateRepo(db, testutil.Logger(t))

	pub := testutil.SeedTemplate(t, ctx, tx, "Homepage Classic", types.TemplateCategoryHomepage, true)
	testutil.SeedTemplate(t, ctx, tx, "Internal Draft", types.TemplateCategoryCustom, false)
	testutil.SeedTemplate(t, ctx, tx, "Contact Basic", types.TemplateCategoryContact, true)

	got, err := repo.GetByID(dbc, pub.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.Name != "Homepage Classic" {
		t.Fatalf("GetByID: unexpected template %+v", got)
	}

	all, err := repo.ListPublic(dbc, "")
	if err != nil {
		t.Fatalf("ListPublic: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("ListPublic: expected 2 public templates, got %d", len(all))
	}
	for _, tpl := range all {
		if !tpl.IsPublic {
			t.Fatalf("ListPublic returned non-public template %q", tpl.Name)
		}
	}

	homepage, err := repo.ListPublic(dbc, types.TemplateCategoryHomepage)
	if err != nil {
		t.Fatalf("ListPublic category: %v", err)
	}
	if len(homepage) != 1 || homepage[0].ID != pub.ID {
		t.Fatalf("ListPublic category: unexpected result %+v", homepage)
	}

	// UpsertByName updates in place instead of creating a second row.
	doc, _ := types.DefaultPageDocument("v2").Encode()
	if err := repo.UpsertByName(dbc, &types.Template{
		Name:     "Homepage Classic",
		Category: types.TemplateCategoryHomepage,
		Document: doc,
		IsPublic: false,
	}); err != nil {
		t.Fatalf("UpsertByName: %v", err)
	}
	after, err := repo.ListPublic(dbc, types.TemplateCategoryHomepage)
	if err != nil {
		t.Fatalf("ListPublic after upsert: %v", err)
	}
	if len(after) != 0 {
		t.Fatalf("UpsertByName should have unpublished the template, got %+v", after)
	}
}
