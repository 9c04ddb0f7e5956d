package model

import (
	"time"

	"github.com/google/uuid"
)

// Category is a hierarchical content grouping with per-language translations.
type Category struct {
	ID           uuid.UUID             `gorm:"type:uuid;primaryKey" json:"id"`
	Slug         string                `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"`
	Name         string                `gorm:"type:varchar(255);not null" json:"name"`
	Description  string                `gorm:"type:text" json:"description"`
	ParentID     *uuid.UUID            `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	Parent       *Category             `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children     []Category            `gorm:"foreignKey:ParentID" json:"children,omitempty"`
	SortOrder    int                   `gorm:"default:0;index" json:"sort_order"`
	IsActive     bool                  `gorm:"default:true" json:"is_active"`
	Translations []CategoryTranslation `gorm:"foreignKey:CategoryID" json:"translations,omitempty"`
	Contents     []Content             `gorm:"foreignKey:CategoryID" json:"-"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// CategoryTranslation localizes name and description independently; a row may
// set only one of them and the base value remains effective for the other.
type CategoryTranslation struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CategoryID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_category_lang" json:"category_id"`
	LanguageCode string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_category_lang" json:"language_code"`
	Name         string    `gorm:"type:varchar(255)" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (t CategoryTranslation) Lang() string { return t.LanguageCode }
func (t CategoryTranslation) Active() bool { return t.IsActive }
