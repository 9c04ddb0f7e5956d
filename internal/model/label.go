package model

import (
	"time"

	"github.com/google/uuid"
)

// Label is a UI text resource addressed by a stable key. The default value
// serves any language without a translation row.
type Label struct {
	ID           uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	Key          string             `gorm:"type:varchar(100);uniqueIndex;not null" json:"key"`
	DefaultValue string             `gorm:"type:text;not null" json:"default_value"`
	Description  string             `gorm:"type:text" json:"description"`
	IsActive     bool               `gorm:"default:true" json:"is_active"`
	Translations []LabelTranslation `gorm:"foreignKey:LabelID" json:"translations,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// LabelTranslation is the localized value of a label for one language.
type LabelTranslation struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	LabelID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_label_lang" json:"label_id"`
	LanguageCode string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_label_lang" json:"language_code"`
	Value        string    `gorm:"type:text;not null" json:"value"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (t LabelTranslation) Lang() string { return t.LanguageCode }
func (t LabelTranslation) Active() bool { return t.IsActive }
