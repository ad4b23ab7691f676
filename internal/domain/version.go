package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Version is one immutable ledger entry. Entries are append-only; numbers
// for a page form a gapless sequence starting at 1.
type Version struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PageID        uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_version_page_number;column:page_id" json:"page_id"`
	Page          *Page     `gorm:"constraint:OnDelete:CASCADE;foreignKey:PageID;references:ID" json:"-"`
	VersionNumber int       `gorm:"not null;uniqueIndex:idx_version_page_number;column:version_number" json:"version_number"`

	Document      datatypes.JSON `gorm:"column:document;type:jsonb;not null" json:"document,omitempty"`
	ChangeSummary string         `gorm:"column:change_summary" json:"change_summary"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null;column:created_by" json:"created_by"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Version) TableName() string { return "page_version" }

// VersionMeta is the lightweight projection returned by history listings;
// the full document is only materialized for a single requested version.
type VersionMeta struct {
	VersionNumber int       `json:"version_number"`
	ChangeSummary string    `json:"change_summary"`
	CreatedBy     uuid.UUID `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}
