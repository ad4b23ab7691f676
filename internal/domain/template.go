package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	TemplateCategoryHomepage    = "homepage"
	TemplateCategoryAbout       = "about"
	TemplateCategoryCourses     = "courses"
	TemplateCategoryDepartments = "departments"
	TemplateCategoryContact     = "contact"
	TemplateCategoryBlog        = "blog"
	TemplateCategoryEvents      = "events"
	TemplateCategoryCustom      = "custom"
)

// TemplateCategories lists the accepted category values.
var TemplateCategories = []string{
	TemplateCategoryHomepage,
	TemplateCategoryAbout,
	TemplateCategoryCourses,
	TemplateCategoryDepartments,
	TemplateCategoryContact,
	TemplateCategoryBlog,
	TemplateCategoryEvents,
	TemplateCategoryCustom,
}

func ValidTemplateCategory(category string) bool {
	for _, c := range TemplateCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Template supplies a starting document for new pages. Templates are global,
// not tenant-scoped.
type Template struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string         `gorm:"uniqueIndex;not null;column:name" json:"name"`
	Description string         `gorm:"column:description" json:"description"`
	Category    string         `gorm:"not null;index;column:category" json:"category"`
	Thumbnail   string         `gorm:"column:thumbnail" json:"thumbnail"`
	Document    datatypes.JSON `gorm:"column:document;type:jsonb;not null" json:"document"`
	IsPublic    bool           `gorm:"not null;default:true;index;column:is_public" json:"is_public"`
	CreatedBy   *uuid.UUID     `gorm:"type:uuid;column:created_by" json:"created_by,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Template) TableName() string { return "template" }
