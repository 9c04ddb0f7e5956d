package service

import (
	"testing"

	"backend/internal/database"
	"backend/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens an in-memory sqlite database with the full schema. Each
// test gets its own database; nothing is shared between tests.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	require.NoError(t, database.Migrate(db), "migrate schema")
	return db
}

func createTestRole(t *testing.T, db *gorm.DB, name string) *model.Role {
	t.Helper()

	role := &model.Role{
		ID:       uuid.New(),
		Name:     name,
		IsActive: true,
	}
	require.NoError(t, db.Create(role).Error)
	return role
}

func createTestMenu(t *testing.T, db *gorm.DB, slug, name string, parentID *uuid.UUID, sortOrder int) *model.Menu {
	t.Helper()

	menu := &model.Menu{
		ID:        uuid.New(),
		Slug:      slug,
		Name:      name,
		URL:       "/" + slug,
		ParentID:  parentID,
		SortOrder: sortOrder,
		IsActive:  true,
	}
	require.NoError(t, db.Create(menu).Error)
	return menu
}

func grantPermission(t *testing.T, db *gorm.DB, roleID, menuID uuid.UUID, view, create, update, del bool) {
	t.Helper()

	require.NoError(t, db.Create(&model.RolePermission{
		ID:        uuid.New(),
		RoleID:    roleID,
		MenuID:    menuID,
		CanView:   view,
		CanCreate: create,
		CanUpdate: update,
		CanDelete: del,
		IsActive:  true,
	}).Error)
}
