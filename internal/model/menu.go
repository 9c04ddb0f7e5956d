package model

import (
	"time"

	"github.com/google/uuid"
)

// Menu is a navigation/permission unit. The slug is the stable identifier
// used by permission checks; menus nest via ParentID and form a forest.
type Menu struct {
	ID           uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	Slug         string            `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"`
	Name         string            `gorm:"type:varchar(255);not null" json:"name"` // base-language display text
	URL          string            `gorm:"type:varchar(255)" json:"url,omitempty"`
	Icon         string            `gorm:"type:varchar(100)" json:"icon,omitempty"`
	ParentID     *uuid.UUID        `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	Parent       *Menu             `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children     []Menu            `gorm:"foreignKey:ParentID" json:"children,omitempty"`
	SortOrder    int               `gorm:"default:0;index" json:"sort_order"`
	IsActive     bool              `gorm:"default:true" json:"is_active"`
	Translations []MenuTranslation `gorm:"foreignKey:MenuID" json:"translations,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// MenuTranslation holds the localized name for one (menu, language) pair.
// At most one row may exist per pair.
type MenuTranslation struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MenuID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_menu_lang" json:"menu_id"`
	LanguageCode string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_menu_lang" json:"language_code"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Lang and Active satisfy pkg/i18n.Translation.
func (t MenuTranslation) Lang() string { return t.LanguageCode }
func (t MenuTranslation) Active() bool { return t.IsActive }
