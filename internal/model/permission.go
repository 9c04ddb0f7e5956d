package model

import (
	"time"

	"github.com/google/uuid"
)

// Capability actions recognized in "<menu-slug>:<action>" permission strings.
const (
	ActionView   = "view"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// RolePermission grants a role up to four capabilities on one menu.
// Absence of a row for a (role, menu) pair means all capabilities are false.
type RolePermission struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RoleID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_role_menu" json:"role_id"`
	MenuID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_role_menu" json:"menu_id"`
	Menu      *Menu     `gorm:"foreignKey:MenuID" json:"menu,omitempty"`
	CanView   bool      `gorm:"default:false" json:"can_view"`
	CanCreate bool      `gorm:"default:false" json:"can_create"`
	CanUpdate bool      `gorm:"default:false" json:"can_update"`
	CanDelete bool      `gorm:"default:false" json:"can_delete"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Allows reports whether this grant covers the given action.
// Unknown actions are denied, never an error.
func (p RolePermission) Allows(action string) bool {
	switch action {
	case ActionView:
		return p.CanView
	case ActionCreate:
		return p.CanCreate
	case ActionUpdate:
		return p.CanUpdate
	case ActionDelete:
		return p.CanDelete
	default:
		return false
	}
}
