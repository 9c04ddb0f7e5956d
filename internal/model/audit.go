package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateMenu        = "CREATE_MENU"
	ActionUpdateMenu        = "UPDATE_MENU"
	ActionDeleteMenu        = "DELETE_MENU"
	ActionCreateRole        = "CREATE_ROLE"
	ActionUpdateRole        = "UPDATE_ROLE"
	ActionDeleteRole        = "DELETE_ROLE"
	ActionSetPermissions    = "SET_ROLE_PERMISSIONS"
	ActionCreateUser        = "CREATE_USER"
	ActionUpdateUser        = "UPDATE_USER"
	ActionDeleteUser        = "DELETE_USER"
	ActionCreateCategory    = "CREATE_CATEGORY"
	ActionUpdateCategory    = "UPDATE_CATEGORY"
	ActionDeleteCategory    = "DELETE_CATEGORY"
	ActionCreateContent     = "CREATE_CONTENT"
	ActionUpdateContent     = "UPDATE_CONTENT"
	ActionDeleteContent     = "DELETE_CONTENT"
	ActionCreateLabel       = "CREATE_LABEL"
	ActionUpdateLabel       = "UPDATE_LABEL"
	ActionDeleteLabel       = "DELETE_LABEL"
	ActionLoginSuccess      = "LOGIN_SUCCESS"
	ActionLoginFailed       = "LOGIN_FAILED"
	ActionPermissionDenied  = "PERMISSION_DENIED"
)

// AuditLog tracks Who, What, and When for critical system changes
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // Nullable gracefully if automated bot
	User       *User      `gorm:"foreignKey:UserID" json:"user"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`        // Reference string (uuid/code)
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"` // Human readable name
	Details    string     `gorm:"type:jsonb" json:"details"`                      // Serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
