package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PermissionRepository persists role→menu permission grants.
type PermissionRepository interface {
	FindActiveByRole(ctx context.Context, roleID uuid.UUID) ([]model.RolePermission, error)
	FindViewableTopLevel(ctx context.Context, roleID uuid.UUID) ([]model.Menu, error)
	FindViewableChildren(ctx context.Context, roleID, parentID uuid.UUID) ([]model.Menu, error)
	DeleteByRole(ctx context.Context, roleID uuid.UUID) error
	CreateAll(ctx context.Context, grants []model.RolePermission) error
}

type permissionRepository struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) PermissionRepository {
	return &permissionRepository{db: db}
}

func (r *permissionRepository) FindActiveByRole(ctx context.Context, roleID uuid.UUID) ([]model.RolePermission, error) {
	var grants []model.RolePermission
	err := GetDB(ctx, r.db).
		Where("role_id = ? AND is_active = ?", roleID, true).
		Preload("Menu").
		Find(&grants).Error
	if err != nil {
		return nil, err
	}
	return grants, nil
}

// FindViewableTopLevel returns the active top-level menus the role may view,
// ordered by sort_order then name.
func (r *permissionRepository) FindViewableTopLevel(ctx context.Context, roleID uuid.UUID) ([]model.Menu, error) {
	var menus []model.Menu
	err := GetDB(ctx, r.db).
		Joins("JOIN role_permissions rp ON rp.menu_id = menus.id").
		Where("rp.role_id = ? AND rp.is_active = ? AND rp.can_view = ?", roleID, true, true).
		Where("menus.parent_id IS NULL AND menus.is_active = ?", true).
		Preload("Translations").
		Order("menus.sort_order asc, menus.name asc").
		Find(&menus).Error
	if err != nil {
		return nil, err
	}
	return menus, nil
}

// FindViewableChildren is the same filter scoped to one parent menu.
func (r *permissionRepository) FindViewableChildren(ctx context.Context, roleID, parentID uuid.UUID) ([]model.Menu, error) {
	var menus []model.Menu
	err := GetDB(ctx, r.db).
		Joins("JOIN role_permissions rp ON rp.menu_id = menus.id").
		Where("rp.role_id = ? AND rp.is_active = ? AND rp.can_view = ?", roleID, true, true).
		Where("menus.parent_id = ? AND menus.is_active = ?", parentID, true).
		Preload("Translations").
		Order("menus.sort_order asc, menus.name asc").
		Find(&menus).Error
	if err != nil {
		return nil, err
	}
	return menus, nil
}

func (r *permissionRepository) DeleteByRole(ctx context.Context, roleID uuid.UUID) error {
	return GetDB(ctx, r.db).Where("role_id = ?", roleID).Delete(&model.RolePermission{}).Error
}

func (r *permissionRepository) CreateAll(ctx context.Context, grants []model.RolePermission) error {
	if len(grants) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).Create(&grants).Error
}
