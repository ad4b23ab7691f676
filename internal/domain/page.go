package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Page is the mutable "current" projection of an editable page. Its document
// history lives in the version ledger; page and ledger are only ever written
// together inside one transaction.
type Page struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	InstitutionID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_page_institution_slug;column:institution_id" json:"institution_id"`
	Name          string    `gorm:"not null;column:name" json:"name"`
	Slug          string    `gorm:"not null;uniqueIndex:idx_page_institution_slug;column:slug" json:"slug"`

	Document  datatypes.JSON `gorm:"column:document;type:jsonb;not null" json:"document"`
	Published bool           `gorm:"not null;default:false;index;column:published" json:"published"`

	// Informational label only; concurrency control never depends on it.
	Semver string `gorm:"not null;default:'1.0.0';column:semver" json:"semver"`

	UpdatedBy uuid.UUID `gorm:"type:uuid;not null;column:updated_by" json:"updated_by"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Page) TableName() string { return "page" }
