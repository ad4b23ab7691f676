package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/campuscms/backend/internal/domain"
)

func SeedInstitution(tb testing.TB, ctx context.Context, tx *gorm.DB, subdomain string) *types.Institution {
	tb.Helper()
	inst := &types.Institution{
		ID:           uuid.New(),
		Name:         "Test University",
		Email:        fmt.Sprintf("%s@example.edu", subdomain),
		PasswordHash: "x",
		Subdomain:    subdomain,
		Settings:     datatypes.JSON([]byte("{}")),
	}
	if err := tx.WithContext(ctx).Create(inst).Error; err != nil {
		tb.Fatalf("seed institution: %v", err)
	}
	return inst
}

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, institutionID uuid.UUID, email, role string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:            uuid.New(),
		InstitutionID: institutionID,
		Name:          "Test Editor",
		Email:         email,
		PasswordHash:  "x",
		Role:          role,
		Active:        true,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedPage(tb testing.TB, ctx context.Context, tx *gorm.DB, institutionID, userID uuid.UUID, slug string, published bool) *types.Page {
	tb.Helper()
	doc, err := types.DefaultPageDocument(slug).Encode()
	if err != nil {
		tb.Fatalf("encode page document: %v", err)
	}
	p := &types.Page{
		ID:            uuid.New(),
		InstitutionID: institutionID,
		Name:          slug,
		Slug:          slug,
		Document:      doc,
		Published:     published,
		UpdatedBy:     userID,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed page: %v", err)
	}
	return p
}

func SeedVersion(tb testing.TB, ctx context.Context, tx *gorm.DB, page *types.Page, number int, summary string) *types.Version {
	tb.Helper()
	v := &types.Version{
		ID:            uuid.New(),
		PageID:        page.ID,
		VersionNumber: number,
		Document:      page.Document,
		ChangeSummary: summary,
		CreatedBy:     page.UpdatedBy,
	}
	if err := tx.WithContext(ctx).Create(v).Error; err != nil {
		tb.Fatalf("seed version: %v", err)
	}
	return v
}

func SeedTemplate(tb testing.TB, ctx context.Context, tx *gorm.DB, name, category string, isPublic bool) *types.Template {
	tb.Helper()
	doc, err := types.DefaultPageDocument(name).Encode()
	if err != nil {
		tb.Fatalf("encode template document: %v", err)
	}
	tpl := &types.Template{
		ID:       uuid.New(),
		Name:     name,
		Category: category,
		Document: doc,
		IsPublic: isPublic,
	}
	if err := tx.WithContext(ctx).Create(tpl).Error; err != nil {
		tb.Fatalf("seed template: %v", err)
	}
	return tpl
}
