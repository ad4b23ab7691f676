package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	InstitutionID uuid.UUID `gorm:"type:uuid;not null;index;column:institution_id" json:"institution_id"`
	Name          string    `gorm:"not null;column:name" json:"name"`
	Email         string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	PasswordHash  string    `gorm:"not null;column:password_hash" json:"-"`
	Role          string    `gorm:"not null;default:'editor';column:role" json:"role"`
	Active        bool      `gorm:"not null;default:true;column:active" json:"active"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (User) TableName() string { return "cms_user" }
