package service

import (
	"context"
	"fmt"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type seedMenu struct {
	Slug      string
	Name      string
	URL       string
	Icon      string
	SortOrder int
	Children  []seedMenu
}

var defaultMenus = []seedMenu{
	{Slug: "dashboard", Name: "Dashboard", URL: "/dashboard", Icon: "home", SortOrder: 1},
	{Slug: "contents", Name: "Contents", URL: "/contents", Icon: "file-text", SortOrder: 2, Children: []seedMenu{
		{Slug: "categories", Name: "Categories", URL: "/contents/categories", Icon: "folder", SortOrder: 1},
		{Slug: "articles", Name: "Articles", URL: "/contents/articles", Icon: "file", SortOrder: 2},
	}},
	{Slug: "users", Name: "Users", URL: "/users", Icon: "users", SortOrder: 3},
	{Slug: "roles", Name: "Roles", URL: "/roles", Icon: "shield", SortOrder: 4},
	{Slug: "menus", Name: "Menus", URL: "/menus", Icon: "menu", SortOrder: 5},
	{Slug: "settings", Name: "Settings", URL: "/settings", Icon: "settings", SortOrder: 6, Children: []seedMenu{
		{Slug: "labels", Name: "UI Labels", URL: "/settings/labels", Icon: "tag", SortOrder: 1},
	}},
	{Slug: "audit", Name: "Audit Logs", URL: "/audit", Icon: "activity", SortOrder: 7},
}

var defaultSettings = map[string]string{
	"site.name":        "Admin Console",
	"site.language":    "en",
	"site.timezone":    "UTC",
	"auth.session_ttl": "86400",
}

// SeedDefaults idempotently creates the bootstrap menu tree, the built-in
// roles (admin/editor/viewer), the admin role's full grant set and base
// settings. Existing rows are left untouched.
func SeedDefaults(ctx context.Context, db *gorm.DB) error {
	menuBySlug := make(map[string]uuid.UUID)

	var createMenus func(menus []seedMenu, parentID *uuid.UUID) error
	createMenus = func(menus []seedMenu, parentID *uuid.UUID) error {
		for _, m := range menus {
			var existing model.Menu
			err := db.WithContext(ctx).First(&existing, "slug = ?", m.Slug).Error
			if err == nil {
				menuBySlug[m.Slug] = existing.ID
			} else {
				menu := model.Menu{
					ID:        uuid.New(),
					Slug:      m.Slug,
					Name:      m.Name,
					URL:       m.URL,
					Icon:      m.Icon,
					ParentID:  parentID,
					SortOrder: m.SortOrder,
					IsActive:  true,
				}
				if err := db.WithContext(ctx).Create(&menu).Error; err != nil {
					return fmt.Errorf("failed to seed menu '%s': %w", m.Slug, err)
				}
				menuBySlug[m.Slug] = menu.ID
			}

			id := menuBySlug[m.Slug]
			if err := createMenus(m.Children, &id); err != nil {
				return err
			}
		}
		return nil
	}
	if err := createMenus(defaultMenus, nil); err != nil {
		return err
	}

	roleDefinitions := []struct {
		Name        string
		Description string
		Grants      map[string]model.RolePermission // keyed by menu slug
	}{
		{
			Name:        "admin",
			Description: "Full access to every menu",
			Grants:      fullGrants(menuBySlug),
		},
		{
			Name:        "editor",
			Description: "Manages categories and contents",
			Grants: map[string]model.RolePermission{
				"dashboard":  {CanView: true},
				"contents":   {CanView: true, CanCreate: true, CanUpdate: true, CanDelete: true},
				"categories": {CanView: true, CanCreate: true, CanUpdate: true},
				"articles":   {CanView: true, CanCreate: true, CanUpdate: true, CanDelete: true},
			},
		},
		{
			Name:        "viewer",
			Description: "Read-only access to contents",
			Grants: map[string]model.RolePermission{
				"dashboard":  {CanView: true},
				"contents":   {CanView: true},
				"categories": {CanView: true},
				"articles":   {CanView: true},
			},
		},
	}

	for _, def := range roleDefinitions {
		var role model.Role
		err := db.WithContext(ctx).First(&role, "name = ?", def.Name).Error
		if err != nil {
			role = model.Role{
				ID:          uuid.New(),
				Name:        def.Name,
				Description: def.Description,
				IsSystem:    true,
				IsActive:    true,
			}
			if err := db.WithContext(ctx).Create(&role).Error; err != nil {
				return fmt.Errorf("failed to seed role '%s': %w", def.Name, err)
			}
		}

		for slug, caps := range def.Grants {
			menuID, ok := menuBySlug[slug]
			if !ok {
				continue
			}
			var existing model.RolePermission
			err := db.WithContext(ctx).
				First(&existing, "role_id = ? AND menu_id = ?", role.ID, menuID).Error
			if err == nil {
				continue
			}
			grant := model.RolePermission{
				ID:        uuid.New(),
				RoleID:    role.ID,
				MenuID:    menuID,
				CanView:   caps.CanView,
				CanCreate: caps.CanCreate,
				CanUpdate: caps.CanUpdate,
				CanDelete: caps.CanDelete,
				IsActive:  true,
			}
			if err := db.WithContext(ctx).Create(&grant).Error; err != nil {
				return fmt.Errorf("failed to seed grant '%s' for role '%s': %w", slug, def.Name, err)
			}
		}
	}

	for key, value := range defaultSettings {
		var existing model.Setting
		if err := db.WithContext(ctx).First(&existing, "key = ?", key).Error; err == nil {
			continue
		}
		setting := model.Setting{ID: uuid.New(), Key: key, Value: value, IsActive: true}
		if err := db.WithContext(ctx).Create(&setting).Error; err != nil {
			return fmt.Errorf("failed to seed setting '%s': %w", key, err)
		}
	}

	return nil
}

func fullGrants(menuBySlug map[string]uuid.UUID) map[string]model.RolePermission {
	grants := make(map[string]model.RolePermission, len(menuBySlug))
	for slug := range menuBySlug {
		grants[slug] = model.RolePermission{CanView: true, CanCreate: true, CanUpdate: true, CanDelete: true}
	}
	return grants
}
