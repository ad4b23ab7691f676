package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Institution is the tenant root. Every page and user belongs to exactly one
// institution; deleting one is handled outside this backend.
type Institution struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name         string         `gorm:"not null;column:name" json:"name"`
	Email        string         `gorm:"uniqueIndex;not null;column:email" json:"email"`
	PasswordHash string         `gorm:"not null;column:password_hash" json:"-"`
	Domain       string         `gorm:"column:domain" json:"domain,omitempty"`
	Subdomain    string         `gorm:"uniqueIndex;not null;column:subdomain" json:"subdomain"`
	Settings     datatypes.JSON `gorm:"column:settings;type:jsonb" json:"settings"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Institution) TableName() string { return "institution" }
