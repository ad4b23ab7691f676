package aggregates

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	types "github.com/campuscms/backend/internal/domain"
	domainagg "github.com/campuscms/backend/internal/domain/aggregates"
	"github.com/campuscms/backend/internal/data/repos"
	"github.com/campuscms/backend/internal/platform/dbctx"
)

type PageAggregateDeps struct {
	Base BaseDeps

	Pages    repos.PageRepo
	Versions repos.VersionRepo
}

type pageAggregate struct {
	deps PageAggregateDeps
}

func NewPageAggregate(deps PageAggregateDeps) domainagg.PageAggregate {
	deps.Base = deps.Base.withDefaults()
	return &pageAggregate{deps: deps}
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// NormalizeSlug lowercases and trims a caller-supplied slug.
func NormalizeSlug(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func validateSlug(slug string) error {
	if slug == "" {
		return ValidationError("missing slug")
	}
	if !slugPattern.MatchString(slug) {
		return ValidationError(fmt.Sprintf("invalid slug %q", slug))
	}
	return nil
}

func (a *pageAggregate) checkDeps(op string) error {
	if a.deps.Pages == nil || a.deps.Versions == nil {
		return domainagg.NewError(domainagg.CodeInternal, op, "page aggregate repos not configured", nil)
	}
	return nil
}

func validateActor(institutionID, userID uuid.UUID) error {
	if institutionID == uuid.Nil {
		return ValidationError("missing institution_id")
	}
	if userID == uuid.Nil {
		return ValidationError("missing user_id")
	}
	return nil
}

func (a *pageAggregate) CreatePage(ctx context.Context, in domainagg.CreatePageInput) (domainagg.PageResult, error) {
	const op = "Content.Page.CreatePage"
	var out domainagg.PageResult
	if err := a.checkDeps(op); err != nil {
		return out, err
	}
	if err := validateActor(in.InstitutionID, in.UserID); err != nil {
		return out, MapError(op, err)
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return out, MapError(op, ValidationError("missing page name"))
	}
	slug := NormalizeSlug(in.Slug)
	if err := validateSlug(slug); err != nil {
		return out, MapError(op, err)
	}

	doc := in.InitialDocument
	if doc == nil {
		doc = types.DefaultPageDocument(name)
	}
	raw, err := doc.Encode()
	if err != nil {
		return out, MapError(op, err)
	}

	err = executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		exists, err := a.deps.Pages.SlugExists(dbc, in.InstitutionID, slug)
		if err != nil {
			return err
		}
		if exists {
			return ConflictError(fmt.Sprintf("slug %q already in use", slug))
		}

		page := &types.Page{
			ID:            uuid.New(),
			InstitutionID: in.InstitutionID,
			Name:          name,
			Slug:          slug,
			Document:      raw,
			Published:     false,
			Semver:        "1.0.0",
			UpdatedBy:     in.UserID,
		}
		if _, err := a.deps.Pages.Create(dbc, []*types.Page{page}); err != nil {
			return err
		}

		n, err := a.appendVersion(dbc, page.ID, raw, "Initial version", in.UserID)
		if err != nil {
			return err
		}

		out = domainagg.PageResult{Page: page, VersionNumber: n, CommittedAt: time.Now().UTC()}
		return nil
	})
	return out, err
}

func (a *pageAggregate) UpdateDocument(ctx context.Context, in domainagg.UpdateDocumentInput) (domainagg.PageResult, error) {
	const op = "Content.Page.UpdateDocument"
	var out domainagg.PageResult
	if err := a.checkDeps(op); err != nil {
		return out, err
	}
	if err := validateActor(in.InstitutionID, in.UserID); err != nil {
		return out, MapError(op, err)
	}
	if in.PageID == uuid.Nil {
		return out, MapError(op, ValidationError("missing page id"))
	}
	if in.Document == nil {
		return out, MapError(op, ValidationError("missing document"))
	}
	raw, err := in.Document.Encode()
	if err != nil {
		return out, MapError(op, err)
	}
	summary := strings.TrimSpace(in.ChangeSummary)
	if summary == "" {
		summary = "Updated page"
	}

	err = executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		page, err := a.deps.Pages.LockByID(dbc, in.InstitutionID, in.PageID)
		if err != nil {
			return err
		}
		if page == nil {
			return NotFoundError("page not found")
		}

		now := time.Now().UTC()
		if err := a.deps.Pages.UpdateFields(dbc, page.ID, map[string]interface{}{
			"document":   raw,
			"updated_by": in.UserID,
			"updated_at": now,
		}); err != nil {
			return err
		}

		n, err := a.appendVersion(dbc, page.ID, raw, summary, in.UserID)
		if err != nil {
			return err
		}

		page.Document = raw
		page.UpdatedBy = in.UserID
		page.UpdatedAt = now
		out = domainagg.PageResult{Page: page, VersionNumber: n, CommittedAt: now}
		return nil
	})
	return out, err
}

// SetPublished flips visibility only. It never touches the ledger and is
// idempotent in both directions.
func (a *pageAggregate) SetPublished(ctx context.Context, in domainagg.SetPublishedInput) (domainagg.PageResult, error) {
	const op = "Content.Page.SetPublished"
	var out domainagg.PageResult
	if err := a.checkDeps(op); err != nil {
		return out, err
	}
	if err := validateActor(in.InstitutionID, in.UserID); err != nil {
		return out, MapError(op, err)
	}
	if in.PageID == uuid.Nil {
		return out, MapError(op, ValidationError("missing page id"))
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		page, err := a.deps.Pages.LockByID(dbc, in.InstitutionID, in.PageID)
		if err != nil {
			return err
		}
		if page == nil {
			return NotFoundError("page not found")
		}
		if page.Published == in.Published {
			out = domainagg.PageResult{Page: page, CommittedAt: time.Now().UTC()}
			return nil
		}
		now := time.Now().UTC()
		if err := a.deps.Pages.UpdateFields(dbc, page.ID, map[string]interface{}{
			"published":  in.Published,
			"updated_at": now,
		}); err != nil {
			return err
		}
		page.Published = in.Published
		page.UpdatedAt = now
		out = domainagg.PageResult{Page: page, CommittedAt: now}
		return nil
	})
	return out, err
}

func (a *pageAggregate) DeletePage(ctx context.Context, in domainagg.DeletePageInput) error {
	const op = "Content.Page.DeletePage"
	if err := a.checkDeps(op); err != nil {
		return err
	}
	if err := validateActor(in.InstitutionID, in.UserID); err != nil {
		return MapError(op, err)
	}
	if in.PageID == uuid.Nil {
		return MapError(op, ValidationError("missing page id"))
	}

	return executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		page, err := a.deps.Pages.LockByID(dbc, in.InstitutionID, in.PageID)
		if err != nil {
			return err
		}
		if page == nil {
			return NotFoundError("page not found")
		}
		// Versions first, then the page, inside one transaction: no window
		// where either exists without the other.
		if err := a.deps.Versions.DeleteByPageID(dbc, page.ID); err != nil {
			return err
		}
		return a.deps.Pages.DeleteByID(dbc, page.ID)
	})
}

func (a *pageAggregate) DuplicatePage(ctx context.Context, in domainagg.DuplicatePageInput) (domainagg.PageResult, error) {
	const op = "Content.Page.DuplicatePage"
	var out domainagg.PageResult
	if err := a.checkDeps(op); err != nil {
		return out, err
	}
	if err := validateActor(in.InstitutionID, in.UserID); err != nil {
		return out, MapError(op, err)
	}
	if in.SourcePageID == uuid.Nil {
		return out, MapError(op, ValidationError("missing source page id"))
	}
	newName := strings.TrimSpace(in.NewName)
	if newName == "" {
		return out, MapError(op, ValidationError("missing page name"))
	}
	newSlug := NormalizeSlug(in.NewSlug)
	if err := validateSlug(newSlug); err != nil {
		return out, MapError(op, err)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		source, err := a.deps.Pages.GetByID(dbc, in.InstitutionID, in.SourcePageID)
		if err != nil {
			return err
		}
		if source == nil {
			return NotFoundError("page not found")
		}
		exists, err := a.deps.Pages.SlugExists(dbc, in.InstitutionID, newSlug)
		if err != nil {
			return err
		}
		if exists {
			return ConflictError(fmt.Sprintf("slug %q already in use", newSlug))
		}

		// The JSONB column is value-copied; the new page shares no state with
		// the source document.
		docCopy := make(datatypes.JSON, len(source.Document))
		copy(docCopy, source.Document)

		page := &types.Page{
			ID:            uuid.New(),
			InstitutionID: in.InstitutionID,
			Name:          newName,
			Slug:          newSlug,
			Document:      docCopy,
			Published:     false,
			Semver:        "1.0.0",
			UpdatedBy:     in.UserID,
		}
		if _, err := a.deps.Pages.Create(dbc, []*types.Page{page}); err != nil {
			return err
		}

		n, err := a.appendVersion(dbc, page.ID, docCopy, fmt.Sprintf("Duplicated from %s", source.Name), in.UserID)
		if err != nil {
			return err
		}

		out = domainagg.PageResult{Page: page, VersionNumber: n, CommittedAt: time.Now().UTC()}
		return nil
	})
	return out, err
}

// RestoreVersion re-applies an old snapshot as a brand-new top-of-ledger
// entry. It never rewinds or mutates existing entries.
func (a *pageAggregate) RestoreVersion(ctx context.Context, in domainagg.RestoreVersionInput) (domainagg.PageResult, error) {
	const op = "Content.Page.RestoreVersion"
	var out domainagg.PageResult
	if err := a.checkDeps(op); err != nil {
		return out, err
	}
	if err := validateActor(in.InstitutionID, in.UserID); err != nil {
		return out, MapError(op, err)
	}
	if in.PageID == uuid.Nil {
		return out, MapError(op, ValidationError("missing page id"))
	}
	if in.VersionNumber < 1 {
		return out, MapError(op, ValidationError("version number must be >= 1"))
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		page, err := a.deps.Pages.LockByID(dbc, in.InstitutionID, in.PageID)
		if err != nil {
			return err
		}
		if page == nil {
			return NotFoundError("page not found")
		}
		target, err := a.deps.Versions.GetByNumber(dbc, page.ID, in.VersionNumber)
		if err != nil {
			return err
		}
		if target == nil {
			return NotFoundError(fmt.Sprintf("version %d not found", in.VersionNumber))
		}

		now := time.Now().UTC()
		if err := a.deps.Pages.UpdateFields(dbc, page.ID, map[string]interface{}{
			"document":   target.Document,
			"updated_by": in.UserID,
			"updated_at": now,
		}); err != nil {
			return err
		}

		n, err := a.appendVersion(dbc, page.ID, target.Document, fmt.Sprintf("Restored version %d", in.VersionNumber), in.UserID)
		if err != nil {
			return err
		}

		page.Document = target.Document
		page.UpdatedBy = in.UserID
		page.UpdatedAt = now
		out = domainagg.PageResult{Page: page, VersionNumber: n, CommittedAt: now}
		return nil
	})
	return out, err
}

// appendVersion allocates the next ledger number and inserts the snapshot.
// Callers must hold the page row lock in the same transaction; the
// (page_id, version_number) unique index backstops the allocation.
func (a *pageAggregate) appendVersion(dbc dbctx.Context, pageID uuid.UUID, document datatypes.JSON, summary string, authorID uuid.UUID) (int, error) {
	max, err := a.deps.Versions.MaxNumber(dbc, pageID)
	if err != nil {
		return 0, err
	}
	next := max + 1
	version := &types.Version{
		ID:            uuid.New(),
		PageID:        pageID,
		VersionNumber: next,
		Document:      document,
		ChangeSummary: summary,
		CreatedBy:     authorID,
	}
	if _, err := a.deps.Versions.Create(dbc, []*types.Version{version}); err != nil {
		return 0, err
	}
	return next, nil
}
