package model

import (
	"time"

	"github.com/google/uuid"
)

// Role groups users and owns a set of per-menu permission grants.
type Role struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string           `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Description string           `gorm:"type:text" json:"description"`
	IsSystem    bool             `gorm:"default:false" json:"is_system"` // Prevent deletion of built-in roles
	IsActive    bool             `gorm:"default:true" json:"is_active"`
	Permissions []RolePermission `gorm:"foreignKey:RoleID" json:"permissions,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}
