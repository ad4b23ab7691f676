package aggregates

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/campuscms/backend/internal/domain"
)

// PageAggregate owns the page/version-ledger write invariants: gapless
// version numbering, tenant-scoped slug uniqueness, cascade delete. Write
// methods open and manage their own transactions; failures return
// *aggregates.Error carrying one of the ErrorCode values.
type PageAggregate interface {
	CreatePage(ctx context.Context, in CreatePageInput) (PageResult, error)
	UpdateDocument(ctx context.Context, in UpdateDocumentInput) (PageResult, error)
	SetPublished(ctx context.Context, in SetPublishedInput) (PageResult, error)
	DeletePage(ctx context.Context, in DeletePageInput) error
	DuplicatePage(ctx context.Context, in DuplicatePageInput) (PageResult, error)
	RestoreVersion(ctx context.Context, in RestoreVersionInput) (PageResult, error)
}

type CreatePageInput struct {
	InstitutionID   uuid.UUID
	UserID          uuid.UUID
	Name            string
	Slug            string
	InitialDocument *domain.PageDocument
}

type UpdateDocumentInput struct {
	InstitutionID uuid.UUID
	UserID        uuid.UUID
	PageID        uuid.UUID
	Document      *domain.PageDocument
	ChangeSummary string
}

type SetPublishedInput struct {
	InstitutionID uuid.UUID
	UserID        uuid.UUID
	PageID        uuid.UUID
	Published     bool
}

type DeletePageInput struct {
	InstitutionID uuid.UUID
	UserID        uuid.UUID
	PageID        uuid.UUID
}

type DuplicatePageInput struct {
	InstitutionID uuid.UUID
	UserID        uuid.UUID
	SourcePageID  uuid.UUID
	NewName       string
	NewSlug       string
}

type RestoreVersionInput struct {
	InstitutionID uuid.UUID
	UserID        uuid.UUID
	PageID        uuid.UUID
	VersionNumber int
}

// PageResult reports the committed state of the aggregate after a write.
type PageResult struct {
	Page          *domain.Page
	VersionNumber int
	CommittedAt   time.Time
}
