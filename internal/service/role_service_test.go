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
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newRoleService(db *gorm.DB) RoleService {
	return NewRoleService(
		repository.NewRoleRepository(db),
		repository.NewMenuRepository(db),
		repository.NewUserRepository(db),
		newPermissionService(db),
		NewAuditService(db),
	)
}

func createTestUser(t *testing.T, db *gorm.DB, email string, roleID uuid.UUID) *model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		RoleID:       roleID,
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestCreateRole_DuplicateName(t *testing.T) {
	db := newTestDB(t)
	svc := newRoleService(db)
	ctx := context.Background()

	_, err := svc.CreateRole(ctx, CreateRoleRequest{Name: "editor"}, "")
	require.NoError(t, err)

	_, err = svc.CreateRole(ctx, CreateRoleRequest{Name: "editor"}, "")
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestDeleteRole_SystemRoleProtected(t *testing.T) {
	db := newTestDB(t)
	svc := newRoleService(db)

	role := &model.Role{ID: uuid.New(), Name: "admin", IsSystem: true, IsActive: true}
	require.NoError(t, db.Create(role).Error)

	err := svc.DeleteRole(context.Background(), role.ID.String(), "")
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestDeleteRole_BlockedByAssignedUsers(t *testing.T) {
	db := newTestDB(t)
	svc := newRoleService(db)
	ctx := context.Background()

	role := createTestRole(t, db, "editor")
	createTestUser(t, db, "editor@example.com", role.ID)

	err := svc.DeleteRole(ctx, role.ID.String(), "")
	assert.ErrorIs(t, err, apperror.ErrConflict)

	// Reassigning (here: removing) the user unblocks the delete.
	require.NoError(t, db.Unscoped().Where("role_id = ?", role.ID).Delete(&model.User{}).Error)
	require.NoError(t, svc.DeleteRole(ctx, role.ID.String(), ""))

	// Deactivated, not hard-deleted.
	var stored model.Role
	require.NoError(t, db.First(&stored, "id = ?", role.ID).Error)
	assert.False(t, stored.IsActive)
}

func TestGetPermissionTree_ShowsAllMenusWithDefaults(t *testing.T) {
	db := newTestDB(t)
	svc := newRoleService(db)
	ctx := context.Background()

	contents := createTestMenu(t, db, "contents", "Contents", nil, 1)
	categories := createTestMenu(t, db, "categories", "Categories", &contents.ID, 1)
	createTestMenu(t, db, "users", "Users", nil, 2)

	role := createTestRole(t, db, "editor")
	grantPermission(t, db, role.ID, categories.ID, true, true, false, false)

	tree, err := svc.GetPermissionTree(ctx, role.ID.String())
	require.NoError(t, err)
	require.Len(t, tree, 2)

	// Ungranted menus appear with all-false capabilities.
	assert.Equal(t, "contents", tree[0].Slug)
	assert.True(t, tree[0].Permissions.isZero())
	assert.Equal(t, "users", tree[1].Slug)
	assert.True(t, tree[1].Permissions.isZero())

	require.Len(t, tree[0].Children, 1)
	cat := tree[0].Children[0]
	assert.Equal(t, "categories", cat.Slug)
	assert.True(t, cat.Permissions.CanView)
	assert.True(t, cat.Permissions.CanCreate)
	assert.False(t, cat.Permissions.CanUpdate)
	assert.False(t, cat.Permissions.CanDelete)
}

func TestUpdatePermissionsFromTree_AllFalseNodesNotPersisted(t *testing.T) {
	db := newTestDB(t)
	svc := newRoleService(db)
	ctx := context.Background()

	contents := createTestMenu(t, db, "contents", "Contents", nil, 1)
	categories := createTestMenu(t, db, "categories", "Categories", &contents.ID, 1)
	role := createTestRole(t, db, "editor")

	tree := []MenuPermissionNode{
		{
			ID:          contents.ID.String(),
			Permissions: CapabilitySet{}, // all false: no row expected
			Children: []MenuPermissionNode{
				{
					ID:          categories.ID.String(),
					Permissions: CapabilitySet{CanView: true, CanUpdate: true},
				},
			},
		},
	}
	require.NoError(t, svc.UpdatePermissionsFromTree(ctx, role.ID.String(), tree, ""))

	var rows []model.RolePermission
	require.NoError(t, db.Where("role_id = ?", role.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, categories.ID, rows[0].MenuID)
	assert.True(t, rows[0].CanView)
	assert.False(t, rows[0].CanCreate)
	assert.True(t, rows[0].CanUpdate)
	assert.False(t, rows[0].CanDelete)
}

func TestPermissionTree_RoundTripIsStable(t *testing.T) {
	db := newTestDB(t)
	svc := newRoleService(db)
	ctx := context.Background()

	contents := createTestMenu(t, db, "contents", "Contents", nil, 1)
	createTestMenu(t, db, "categories", "Categories", &contents.ID, 1)
	createTestMenu(t, db, "users", "Users", nil, 2)

	role := createTestRole(t, db, "editor")
	grantPermission(t, db, role.ID, contents.ID, true, false, true, false)

	tree, err := svc.GetPermissionTree(ctx, role.ID.String())
	require.NoError(t, err)

	// Writing the tree back unchanged must not alter the effective grants.
	require.NoError(t, svc.UpdatePermissionsFromTree(ctx, role.ID.String(), tree, ""))

	after, err := svc.GetPermissionTree(ctx, role.ID.String())
	require.NoError(t, err)
	assert.Equal(t, tree, after)

	var count int64
	require.NoError(t, db.Model(&model.RolePermission{}).Where("role_id = ?", role.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
