package service

import (
	"context"
	"testing"

	"backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newNavigationService(db *gorm.DB) NavigationService {
	return NewNavigationService(
		repository.NewMenuRepository(db),
		repository.NewPermissionRepository(db),
	)
}

func TestGetNavigation_PublicIncludesAllActiveMenus(t *testing.T) {
	db := newTestDB(t)
	svc := newNavigationService(db)
	ctx := context.Background()

	dashboard := createTestMenu(t, db, "dashboard", "Dashboard", nil, 1)
	contents := createTestMenu(t, db, "contents", "Contents", nil, 2)
	createTestMenu(t, db, "categories", "Categories", &contents.ID, 1)
	createTestMenu(t, db, "articles", "Articles", &contents.ID, 2)

	inactive := createTestMenu(t, db, "hidden", "Hidden", nil, 3)
	require.NoError(t, db.Model(inactive).Update("is_active", false).Error)

	nav, err := svc.GetNavigation(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, nav, 2)
	assert.Equal(t, dashboard.ID.String(), nav[0].ID)
	assert.Empty(t, nav[0].Children)
	require.Len(t, nav[1].Children, 2)
	assert.Equal(t, "Categories", nav[1].Children[0].Name)
	assert.Equal(t, "Articles", nav[1].Children[1].Name)
}

func TestGetNavigation_FiltersByRoleGrants(t *testing.T) {
	db := newTestDB(t)
	svc := newNavigationService(db)
	ctx := context.Background()

	contents := createTestMenu(t, db, "contents", "Contents", nil, 1)
	categories := createTestMenu(t, db, "categories", "Categories", &contents.ID, 1)
	articles := createTestMenu(t, db, "articles", "Articles", &contents.ID, 2)
	createTestMenu(t, db, "users", "Users", nil, 2)

	role := createTestRole(t, db, "editor")
	grantPermission(t, db, role.ID, contents.ID, true, false, false, false)
	grantPermission(t, db, role.ID, categories.ID, true, false, false, false)
	// articles granted but not viewable
	grantPermission(t, db, role.ID, articles.ID, false, true, true, false)
	// users: no grant at all

	nav, err := svc.GetNavigation(ctx, "en", role.ID.String())
	require.NoError(t, err)
	require.Len(t, nav, 1)
	assert.Equal(t, "Contents", nav[0].Name)
	require.Len(t, nav[0].Children, 1)
	assert.Equal(t, "Categories", nav[0].Children[0].Name)
}

func TestGetNavigation_RoleWithNoGrantsIsEmpty(t *testing.T) {
	db := newTestDB(t)
	svc := newNavigationService(db)

	createTestMenu(t, db, "dashboard", "Dashboard", nil, 1)
	role := createTestRole(t, db, "viewer")

	nav, err := svc.GetNavigation(context.Background(), "en", role.ID.String())
	require.NoError(t, err)
	assert.Empty(t, nav)
}

func TestGetNavigation_LocalizesWithFallback(t *testing.T) {
	db := newTestDB(t)
	svc := newNavigationService(db)
	menus := newMenuService(db)
	ctx := context.Background()

	createTestMenu(t, db, "dashboard", "Dashboard", nil, 1)
	users := createTestMenu(t, db, "users", "Users", nil, 2)
	_, err := menus.AddTranslation(ctx, users.ID.String(), MenuTranslationRequest{
		LanguageCode: "th",
		Name:         "ผู้ใช้",
	})
	require.NoError(t, err)

	nav, err := svc.GetNavigation(ctx, "th", "")
	require.NoError(t, err)
	require.Len(t, nav, 2)

	// dashboard has no th row: base name; users does: translated.
	assert.Equal(t, "Dashboard", nav[0].Name)
	assert.Equal(t, "ผู้ใช้", nav[1].Name)
}

func TestGetNavigation_InactiveChildExcluded(t *testing.T) {
	db := newTestDB(t)
	svc := newNavigationService(db)
	ctx := context.Background()

	contents := createTestMenu(t, db, "contents", "Contents", nil, 1)
	hidden := createTestMenu(t, db, "hidden", "Hidden", &contents.ID, 1)
	require.NoError(t, db.Model(hidden).Update("is_active", false).Error)
	createTestMenu(t, db, "articles", "Articles", &contents.ID, 2)

	nav, err := svc.GetNavigation(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, nav, 1)
	require.Len(t, nav[0].Children, 1)
	assert.Equal(t, "Articles", nav[0].Children[0].Name)
}
