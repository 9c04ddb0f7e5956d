package service

import (
	"context"
	"testing"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newMenuService(db *gorm.DB) MenuService {
	return NewMenuService(
		repository.NewMenuRepository(db),
		repository.NewTransactionManager(db),
		NewAuditService(db),
	)
}

func strPtr(s string) *string { return &s }

func TestMenuCreate_DuplicateSlug(t *testing.T) {
	db := newTestDB(t)
	svc := newMenuService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateMenuRequest{Name: "Users", Slug: "users"}, "")
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateMenuRequest{Name: "Other", Slug: "users"}, "")
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestMenuCreate_UnknownParent(t *testing.T) {
	db := newTestDB(t)
	svc := newMenuService(db)

	_, err := svc.Create(context.Background(), CreateMenuRequest{
		Name:     "Child",
		Slug:     "child",
		ParentID: strPtr(uuid.NewString()),
	}, "")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestMenuFindAll_OrderedBySortOrder(t *testing.T) {
	db := newTestDB(t)
	svc := newMenuService(db)
	ctx := context.Background()

	createTestMenu(t, db, "settings", "Settings", nil, 30)
	createTestMenu(t, db, "dashboard", "Dashboard", nil, 10)
	createTestMenu(t, db, "users", "Users", nil, 20)

	menus, err := svc.FindAll(ctx, "")
	require.NoError(t, err)
	require.Len(t, menus, 3)
	assert.Equal(t, "dashboard", menus[0].Slug)
	assert.Equal(t, "users", menus[1].Slug)
	assert.Equal(t, "settings", menus[2].Slug)
}

func TestMenuFindOne_LocalizedOverlay(t *testing.T) {
	db := newTestDB(t)
	svc := newMenuService(db)
	ctx := context.Background()

	menu := createTestMenu(t, db, "dashboard", "Dashboard", nil, 1)
	_, err := svc.AddTranslation(ctx, menu.ID.String(), MenuTranslationRequest{
		LanguageCode: "th",
		Name:         "แดชบอร์ด",
	})
	require.NoError(t, err)

	localized, err := svc.FindOne(ctx, menu.ID.String(), "th")
	require.NoError(t, err)
	assert.Equal(t, "แดชบอร์ด", localized.Name)

	// A language with no translation falls back to the base name.
	fallback, err := svc.FindOne(ctx, menu.ID.String(), "de")
	require.NoError(t, err)
	assert.Equal(t, "Dashboard", fallback.Name)
}

func TestMenuUpdate_RejectsSelfParent(t *testing.T) {
	db := newTestDB(t)
	svc := newMenuService(db)
	ctx := context.Background()

	menu := createTestMenu(t, db, "users", "Users", nil, 1)

	id := menu.ID.String()
	_, err := svc.Update(ctx, id, UpdateMenuRequest{ParentID: &id}, "")
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestMenuUpdate_RejectsCycle(t *testing.T) {
	db := newTestDB(t)
	svc := newMenuService(db)
	ctx := context.Background()

	root := createTestMenu(t, db, "contents", "Contents", nil, 1)
	child := createTestMenu(t, db, "categories", "Categories", &root.ID, 1)
	grandchild := createTestMenu(t, db, "archive", "Archive", &child.ID, 1)

	// Moving the root under its own grandchild would create a cycle.
	gid := grandchild.ID.String()
	_, err := svc.Update(ctx, root.ID.String(), UpdateMenuRequest{ParentID: &gid}, "")
	assert.ErrorIs(t, err, apperror.ErrConflict)

	// A legal reparent still works: grandchild directly under root.
	rid := root.ID.String()
	updated, err := svc.Update(ctx, grandchild.ID.String(), UpdateMenuRequest{ParentID: &rid}, "")
	require.NoError(t, err)
	require.NotNil(t, updated.ParentID)
	assert.Equal(t, rid, *updated.ParentID)
}

func TestMenuUpdate_DetachToTopLevel(t *testing.T) {
	db := newTestDB(t)
	svc := newMenuService(db)
	ctx := context.Background()

	root := createTestMenu(t, db, "contents", "Contents", nil, 1)
	child := createTestMenu(t, db, "categories", "Categories", &root.ID, 1)

	updated, err := svc.Update(ctx, child.ID.String(), UpdateMenuRequest{ParentID: strPtr("")}, "")
	require.NoError(t, err)
	assert.Nil(t, updated.ParentID)
}

func TestMenuRemove_BlockedByChildren(t *testing.T) {
	db := newTestDB(t)
	svc := newMenuService(db)
	ctx := context.Background()

	root := createTestMenu(t, db, "contents", "Contents", nil, 1)
	child := createTestMenu(t, db, "categories", "Categories", &root.ID, 1)

	err := svc.Remove(ctx, root.ID.String(), "")
	assert.ErrorIs(t, err, apperror.ErrConflict)

	// Once the child is gone the parent can be removed.
	require.NoError(t, svc.Remove(ctx, child.ID.String(), ""))
	require.NoError(t, svc.Remove(ctx, root.ID.String(), ""))
}

func TestMenuRemove_CascadesTranslationsAndGrants(t *testing.T) {
	db := newTestDB(t)
	svc := newMenuService(db)
	ctx := context.Background()

	menu := createTestMenu(t, db, "users", "Users", nil, 1)
	role := createTestRole(t, db, "editor")
	grantPermission(t, db, role.ID, menu.ID, true, false, false, false)
	_, err := svc.AddTranslation(ctx, menu.ID.String(), MenuTranslationRequest{
		LanguageCode: "th",
		Name:         "ผู้ใช้",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, menu.ID.String(), ""))

	var translations, grants int64
	require.NoError(t, db.Model(&model.MenuTranslation{}).Where("menu_id = ?", menu.ID).Count(&translations).Error)
	require.NoError(t, db.Model(&model.RolePermission{}).Where("menu_id = ?", menu.ID).Count(&grants).Error)
	assert.Zero(t, translations)
	assert.Zero(t, grants)
}

func TestMenuAddTranslation_OnePerLanguage(t *testing.T) {
	db := newTestDB(t)
	svc := newMenuService(db)
	ctx := context.Background()

	menu := createTestMenu(t, db, "users", "Users", nil, 1)

	_, err := svc.AddTranslation(ctx, menu.ID.String(), MenuTranslationRequest{LanguageCode: "th", Name: "ผู้ใช้"})
	require.NoError(t, err)

	// Second row for the same language is a conflict, not an upsert.
	_, err = svc.AddTranslation(ctx, menu.ID.String(), MenuTranslationRequest{LanguageCode: "th", Name: "ผู้ใช้งาน"})
	assert.ErrorIs(t, err, apperror.ErrConflict)

	// Another language is fine.
	_, err = svc.AddTranslation(ctx, menu.ID.String(), MenuTranslationRequest{LanguageCode: "vi", Name: "Người dùng"})
	require.NoError(t, err)
}

func TestMenuUpdateTranslation_LanguageCollision(t *testing.T) {
	db := newTestDB(t)
	svc := newMenuService(db)
	ctx := context.Background()

	menu := createTestMenu(t, db, "users", "Users", nil, 1)
	th, err := svc.AddTranslation(ctx, menu.ID.String(), MenuTranslationRequest{LanguageCode: "th", Name: "ผู้ใช้"})
	require.NoError(t, err)
	_, err = svc.AddTranslation(ctx, menu.ID.String(), MenuTranslationRequest{LanguageCode: "vi", Name: "Người dùng"})
	require.NoError(t, err)

	// Re-coding the th row to vi would collide with the existing vi row.
	_, err = svc.UpdateTranslation(ctx, menu.ID.String(), th.ID, MenuTranslationRequest{LanguageCode: "vi", Name: "x"})
	assert.ErrorIs(t, err, apperror.ErrConflict)
}
