package model

import (
	"time"

	"github.com/google/uuid"
)

// Content is a flat localized CMS entry belonging to a category.
type Content struct {
	ID           uuid.UUID            `gorm:"type:uuid;primaryKey" json:"id"`
	Slug         string               `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"`
	Title        string               `gorm:"type:varchar(255);not null" json:"title"`
	Body         string               `gorm:"type:text" json:"body"`
	CategoryID   uuid.UUID            `gorm:"type:uuid;not null;index" json:"category_id"`
	Category     *Category            `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	IsPublished  bool                 `gorm:"default:false" json:"is_published"`
	IsActive     bool                 `gorm:"default:true" json:"is_active"`
	Translations []ContentTranslation `gorm:"foreignKey:ContentID" json:"translations,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

type ContentTranslation struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ContentID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_content_lang" json:"content_id"`
	LanguageCode string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_content_lang" json:"language_code"`
	Title        string    `gorm:"type:varchar(255)" json:"title"`
	Body         string    `gorm:"type:text" json:"body"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (t ContentTranslation) Lang() string { return t.LanguageCode }
func (t ContentTranslation) Active() bool { return t.IsActive }
