package aggregates

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/campuscms/backend/internal/data/repos"
	"github.com/campuscms/backend/internal/data/repos/testutil"
	types "github.com/campuscms/backend/internal/domain"
	domainagg "github.com/campuscms/backend/internal/domain/aggregates"
	"github.com/campuscms/backend/internal/platform/dbctx"
)

// Aggregate tests run against committed transactions (the aggregate opens
// its own), so each test seeds its own tenant and removes it afterwards.
type aggHarness struct {
	agg      domainagg.PageAggregate
	pages    repos.PageRepo
	versions repos.VersionRepo

	inst   *types.Institution
	other  *types.Institution
	editor *types.User
}

func newAggHarness(t *testing.T) *aggHarness {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	ctx := context.Background()

	sub := "t-" + uuid.NewString()[:8]
	inst := testutil.SeedInstitution(t, ctx, db, sub)
	other := testutil.SeedInstitution(t, ctx, db, sub+"-other")
	editor := testutil.SeedUser(t, ctx, db, inst.ID, sub+"@example.edu", "editor")

	t.Cleanup(func() {
		db.Exec(`DELETE FROM page_version WHERE page_id IN (SELECT id FROM page WHERE institution_id IN (?, ?))`, inst.ID, other.ID)
		db.Exec(`DELETE FROM page WHERE institution_id IN (?, ?)`, inst.ID, other.ID)
		db.Exec(`DELETE FROM cms_user WHERE institution_id IN (?, ?)`, inst.ID, other.ID)
		db.Exec(`DELETE FROM institution WHERE id IN (?, ?)`, inst.ID, other.ID)
	})

	pageRepo := repos.NewPageRepo(db, log)
	versionRepo := repos.NewVersionRepo(db, log)
	agg := NewPageAggregate(PageAggregateDeps{
		Base:     BaseDeps{DB: db, Log: log},
		Pages:    pageRepo,
		Versions: versionRepo,
	})
	return &aggHarness{
		agg:      agg,
		pages:    pageRepo,
		versions: versionRepo,
		inst:     inst,
		other:    other,
		editor:   editor,
	}
}

func (h *aggHarness) createPage(t *testing.T, slug string) domainagg.PageResult {
	t.Helper()
	res, err := h.agg.CreatePage(context.Background(), domainagg.CreatePageInput{
		InstitutionID: h.inst.ID,
		UserID:        h.editor.ID,
		Name:          slug,
		Slug:          slug,
	})
	if err != nil {
		t.Fatalf("CreatePage: %v", err)
	}
	return res
}

func TestPageAggregateCreatePage(t *testing.T) {
	h := newAggHarness(t)
	ctx := context.Background()

	res := h.createPage(t, "welcome")
	if res.Page == nil || res.VersionNumber != 1 {
		t.Fatalf("CreatePage: unexpected result %+v", res)
	}
	if res.Page.Published {
		t.Fatal("CreatePage: new page must start unpublished")
	}

	metas, err := h.versions.ListMetaByPage(dbctx.Context{Ctx: ctx}, res.Page.ID)
	if err != nil {
		t.Fatalf("ListMetaByPage: %v", err)
	}
	if len(metas) != 1 || metas[0].VersionNumber != 1 || metas[0].ChangeSummary != "Initial version" {
		t.Fatalf("CreatePage ledger: unexpected %+v", metas)
	}

	// Same slug again conflicts, and nothing is half-written.
	_, err = h.agg.CreatePage(ctx, domainagg.CreatePageInput{
		InstitutionID: h.inst.ID,
		UserID:        h.editor.ID,
		Name:          "Welcome Again",
		Slug:          "welcome",
	})
	if !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("duplicate slug: expected conflict, got %v", err)
	}

	// The same slug under another institution is fine.
	otherEditor := testutil.SeedUser(t, ctx, testutil.DB(t), h.other.ID, "other-"+uuid.NewString()[:8]+"@example.edu", "editor")
	if _, err := h.agg.CreatePage(ctx, domainagg.CreatePageInput{
		InstitutionID: h.other.ID,
		UserID:        otherEditor.ID,
		Name:          "Welcome",
		Slug:          "welcome",
	}); err != nil {
		t.Fatalf("same slug other tenant: %v", err)
	}

	// Slug validation.
	if _, err := h.agg.CreatePage(ctx, domainagg.CreatePageInput{
		InstitutionID: h.inst.ID,
		UserID:        h.editor.ID,
		Name:          "Bad",
		Slug:          "Not A Slug!",
	}); !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("invalid slug: expected validation, got %v", err)
	}
}

func TestPageAggregateUpdateDocument(t *testing.T) {
	h := newAggHarness(t)
	ctx := context.Background()

	res := h.createPage(t, "news")

	doc := types.DefaultPageDocument("news")
	doc.Components = append(doc.Components, types.ComponentNode{
		ID: "n1", Type: "rich-text", Props: map[string]any{"body": "hello"},
	})

	updated, err := h.agg.UpdateDocument(ctx, domainagg.UpdateDocumentInput{
		InstitutionID: h.inst.ID,
		UserID:        h.editor.ID,
		PageID:        res.Page.ID,
		Document:      doc,
	})
	if err != nil {
		t.Fatalf("UpdateDocument: %v", err)
	}
	if updated.VersionNumber != 2 {
		t.Fatalf("UpdateDocument: expected version 2, got %d", updated.VersionNumber)
	}

	metas, err := h.versions.ListMetaByPage(dbctx.Context{Ctx: ctx}, res.Page.ID)
	if err != nil {
		t.Fatalf("ListMetaByPage: %v", err)
	}
	if len(metas) != 2 || metas[0].ChangeSummary != "Updated page" {
		t.Fatalf("default summary: unexpected %+v", metas)
	}

	// Cross-tenant update is indistinguishable from a missing page.
	_, err = h.agg.UpdateDocument(ctx, domainagg.UpdateDocumentInput{
		InstitutionID: h.other.ID,
		UserID:        h.editor.ID,
		PageID:        res.Page.ID,
		Document:      doc,
	})
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("cross-tenant update: expected not_found, got %v", err)
	}
}

// Writers racing on the same page must produce a gapless 1..N ledger.
func TestPageAggregateConcurrentUpdates(t *testing.T) {
	h := newAggHarness(t)
	ctx := context.Background()

	res := h.createPage(t, "contended")

	const writers = 8
	var wg sync.WaitGroup
	errs := make([]error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			doc := types.DefaultPageDocument("contended")
			doc.Meta.Description = fmt.Sprintf("writer %d", i)
			_, errs[i] = h.agg.UpdateDocument(ctx, domainagg.UpdateDocumentInput{
				InstitutionID: h.inst.ID,
				UserID:        h.editor.ID,
				PageID:        res.Page.ID,
				Document:      doc,
				ChangeSummary: fmt.Sprintf("edit %d", i),
			})
		}(i)
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			t.Fatalf("writer %d: %v", i, err)
		}
	}

	metas, err := h.versions.ListMetaByPage(dbctx.Context{Ctx: ctx}, res.Page.ID)
	if err != nil {
		t.Fatalf("ListMetaByPage: %v", err)
	}
	if len(metas) != writers+1 {
		t.Fatalf("ledger length: expected %d, got %d", writers+1, len(metas))
	}
	// Newest-first listing must count down without gaps or duplicates.
	for i, m := range metas {
		want := writers + 1 - i
		if m.VersionNumber != want {
			t.Fatalf("ledger gap at index %d: got %d want %d", i, m.VersionNumber, want)
		}
	}
}

func TestPageAggregateSetPublished(t *testing.T) {
	h := newAggHarness(t)
	ctx := context.Background()

	res := h.createPage(t, "visibility")

	publish := func(want bool) domainagg.PageResult {
		t.Helper()
		out, err := h.agg.SetPublished(ctx, domainagg.SetPublishedInput{
			InstitutionID: h.inst.ID,
			UserID:        h.editor.ID,
			PageID:        res.Page.ID,
			Published:     want,
		})
		if err != nil {
			t.Fatalf("SetPublished(%v): %v", want, err)
		}
		return out
	}

	if out := publish(true); !out.Page.Published {
		t.Fatal("publish: page not published")
	}
	// Publishing an already-published page is a clean no-op.
	publish(true)
	if out := publish(false); out.Page.Published {
		t.Fatal("unpublish: page still published")
	}
	publish(false)

	// Visibility toggles never touch the ledger.
	count, err := h.versions.CountByPage(dbctx.Context{Ctx: ctx}, res.Page.ID)
	if err != nil {
		t.Fatalf("CountByPage: %v", err)
	}
	if count != 1 {
		t.Fatalf("publish toggles created versions: count=%d", count)
	}

	// Unpublished pages drop off the published read path immediately.
	if got, err := h.pages.GetPublishedBySlug(dbctx.Context{Ctx: ctx}, h.inst.ID, "visibility"); err != nil || got != nil {
		t.Fatalf("unpublished page visible: err=%v got=%+v", err, got)
	}
}

func TestPageAggregateDeletePage(t *testing.T) {
	h := newAggHarness(t)
	ctx := context.Background()

	res := h.createPage(t, "doomed")
	if _, err := h.agg.UpdateDocument(ctx, domainagg.UpdateDocumentInput{
		InstitutionID: h.inst.ID,
		UserID:        h.editor.ID,
		PageID:        res.Page.ID,
		Document:      types.DefaultPageDocument("doomed"),
	}); err != nil {
		t.Fatalf("UpdateDocument: %v", err)
	}

	if err := h.agg.DeletePage(ctx, domainagg.DeletePageInput{
		InstitutionID: h.inst.ID,
		UserID:        h.editor.ID,
		PageID:        res.Page.ID,
	}); err != nil {
		t.Fatalf("DeletePage: %v", err)
	}

	if got, err := h.pages.GetByID(dbctx.Context{Ctx: ctx}, h.inst.ID, res.Page.ID); err != nil || got != nil {
		t.Fatalf("page survived delete: err=%v got=%+v", err, got)
	}
	if count, err := h.versions.CountByPage(dbctx.Context{Ctx: ctx}, res.Page.ID); err != nil || count != 0 {
		t.Fatalf("ledger survived delete: err=%v count=%d", err, count)
	}

	// Deleting again reports not found.
	err := h.agg.DeletePage(ctx, domainagg.DeletePageInput{
		InstitutionID: h.inst.ID,
		UserID:        h.editor.ID,
		PageID:        res.Page.ID,
	})
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("double delete: expected not_found, got %v", err)
	}
}

func TestPageAggregateDuplicatePage(t *testing.T) {
	h := newAggHarness(t)
	ctx := context.Background()

	res := h.createPage(t, "origin")

	// Give the source some history and publish it.
	if _, err := h.agg.UpdateDocument(ctx, domainagg.UpdateDocumentInput{
		InstitutionID: h.inst.ID,
		UserID:        h.editor.ID,
		PageID:        res.Page.ID,
		Document:      types.DefaultPageDocument("origin v2"),
	}); err != nil {
		t.Fatalf("UpdateDocument: %v", err)
	}
	if _, err := h.agg.SetPublished(ctx, domainagg.SetPublishedInput{
		InstitutionID: h.inst.ID,
		UserID:        h.editor.ID,
		PageID:        res.Page.ID,
		Published:     true,
	}); err != nil {
		t.Fatalf("SetPublished: %v", err)
	}

	dup, err := h.agg.DuplicatePage(ctx, domainagg.DuplicatePageInput{
		InstitutionID: h.inst.ID,
		UserID:        h.editor.ID,
		SourcePageID:  res.Page.ID,
		NewName:       "Origin Copy",
		NewSlug:       "origin-copy",
	})
	if err != nil {
		t.Fatalf("DuplicatePage: %v", err)
	}
	if dup.Page.Published {
		t.Fatal("duplicate must start unpublished regardless of source")
	}
	if dup.VersionNumber != 1 {
		t.Fatalf("duplicate ledger must restart at 1, got %d", dup.VersionNumber)
	}
	src, err := h.pages.GetByID(dbctx.Context{Ctx: ctx}, h.inst.ID, res.Page.ID)
	if err != nil {
		t.Fatalf("GetByID source: %v", err)
	}
	if string(dup.Page.Document) != string(src.Document) {
		t.Fatal("duplicate document does not match source head")
	}

	metas, err := h.versions.ListMetaByPage(dbctx.Context{Ctx: ctx}, dup.Page.ID)
	if err != nil {
		t.Fatalf("ListMetaByPage: %v", err)
	}
	if len(metas) != 1 || metas[0].ChangeSummary != "Duplicated from origin" {
		t.Fatalf("duplicate summary: unexpected %+v", metas)
	}

	// Target slug must be free.
	if _, err := h.agg.DuplicatePage(ctx, domainagg.DuplicatePageInput{
		InstitutionID: h.inst.ID,
		UserID:        h.editor.ID,
		SourcePageID:  res.Page.ID,
		NewName:       "Another Copy",
		NewSlug:       "origin-copy",
	}); !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("duplicate onto taken slug: expected conflict, got %v", err)
	}
}

func TestPageAggregateRestoreVersion(t *testing.T) {
	h := newAggHarness(t)
	ctx := context.Background()

	res := h.createPage(t, "timeline")

	v2doc := types.DefaultPageDocument("timeline")
	v2doc.Meta.Description = "second"
	if _, err := h.agg.UpdateDocument(ctx, domainagg.UpdateDocumentInput{
		InstitutionID: h.inst.ID,
		UserID:        h.editor.ID,
		PageID:        res.Page.ID,
		Document:      v2doc,
	}); err != nil {
		t.Fatalf("UpdateDocument: %v", err)
	}

	restored, err := h.agg.RestoreVersion(ctx, domainagg.RestoreVersionInput{
		InstitutionID: h.inst.ID,
		UserID:        h.editor.ID,
		PageID:        res.Page.ID,
		VersionNumber: 1,
	})
	if err != nil {
		t.Fatalf("RestoreVersion: %v", err)
	}
	// Restore is additive: a new entry on top, never a rewind.
	if restored.VersionNumber != 3 {
		t.Fatalf("restore version number: expected 3, got %d", restored.VersionNumber)
	}

	v1, err := h.versions.GetByNumber(dbctx.Context{Ctx: ctx}, res.Page.ID, 1)
	if err != nil {
		t.Fatalf("GetByNumber 1: %v", err)
	}
	v3, err := h.versions.GetByNumber(dbctx.Context{Ctx: ctx}, res.Page.ID, 3)
	if err != nil {
		t.Fatalf("GetByNumber 3: %v", err)
	}
	if string(v3.Document) != string(v1.Document) {
		t.Fatal("restored entry does not carry the old snapshot")
	}
	if v3.ChangeSummary != "Restored version 1" {
		t.Fatalf("restore summary: got %q", v3.ChangeSummary)
	}
	if string(restored.Page.Document) != string(v1.Document) {
		t.Fatal("page head does not carry the restored snapshot")
	}

	// Missing ledger entry.
	if _, err := h.agg.RestoreVersion(ctx, domainagg.RestoreVersionInput{
		InstitutionID: h.inst.ID,
		UserID:        h.editor.ID,
		PageID:        res.Page.ID,
		VersionNumber: 99,
	}); !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("restore missing version: expected not_found, got %v", err)
	}
}
