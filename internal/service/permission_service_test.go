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

func newPermissionService(db *gorm.DB) PermissionService {
	return NewPermissionService(
		repository.NewPermissionRepository(db),
		repository.NewRoleRepository(db),
		repository.NewTransactionManager(db),
		NewAuditService(db),
	)
}

func TestHasPermission_DefaultDeny(t *testing.T) {
	db := newTestDB(t)
	svc := newPermissionService(db)
	ctx := context.Background()

	role := createTestRole(t, db, "editor")
	createTestMenu(t, db, "users", "Users", nil, 1)

	// No grant row at all: deny, not an error.
	err := svc.HasPermission(ctx, role.ID.String(), "users:view")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestHasPermission_CapabilitiesAreIndependent(t *testing.T) {
	db := newTestDB(t)
	svc := newPermissionService(db)
	ctx := context.Background()

	role := createTestRole(t, db, "editor")
	menu := createTestMenu(t, db, "articles", "Articles", nil, 1)
	grantPermission(t, db, role.ID, menu.ID, true, true, true, false)

	require.NoError(t, svc.HasPermission(ctx, role.ID.String(), "articles:view"))
	require.NoError(t, svc.HasPermission(ctx, role.ID.String(), "articles:create"))
	require.NoError(t, svc.HasPermission(ctx, role.ID.String(), "articles:update"))

	err := svc.HasPermission(ctx, role.ID.String(), "articles:delete")
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestHasPermission_AllRequiredMustHold(t *testing.T) {
	db := newTestDB(t)
	svc := newPermissionService(db)
	ctx := context.Background()

	role := createTestRole(t, db, "editor")
	articles := createTestMenu(t, db, "articles", "Articles", nil, 1)
	createTestMenu(t, db, "users", "Users", nil, 2)
	grantPermission(t, db, role.ID, articles.ID, true, false, false, false)

	require.NoError(t, svc.HasPermission(ctx, role.ID.String(), "articles:view"))

	// The failing permission is named in the error.
	err := svc.HasPermission(ctx, role.ID.String(), "articles:view", "users:view")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
	assert.Contains(t, err.Error(), "users:view")
}

func TestHasPermission_MalformedStringsDeny(t *testing.T) {
	db := newTestDB(t)
	svc := newPermissionService(db)
	ctx := context.Background()

	role := createTestRole(t, db, "editor")
	menu := createTestMenu(t, db, "articles", "Articles", nil, 1)
	grantPermission(t, db, role.ID, menu.ID, true, true, true, true)

	for _, permission := range []string{"articles", ":view", "articles:", "articles:publish", ""} {
		err := svc.HasPermission(ctx, role.ID.String(), permission)
		assert.ErrorIs(t, err, apperror.ErrForbidden, "permission %q must be denied", permission)
	}
}

func TestHasPermission_InactiveGrantDenies(t *testing.T) {
	db := newTestDB(t)
	svc := newPermissionService(db)
	ctx := context.Background()

	role := createTestRole(t, db, "editor")
	menu := createTestMenu(t, db, "articles", "Articles", nil, 1)
	grantPermission(t, db, role.ID, menu.ID, true, true, true, true)

	require.NoError(t, db.Model(&model.RolePermission{}).
		Where("role_id = ?", role.ID).
		Update("is_active", false).Error)

	err := svc.HasPermission(ctx, role.ID.String(), "articles:view")
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestReplacePermissions_SwapsWholeGrantSet(t *testing.T) {
	db := newTestDB(t)
	svc := newPermissionService(db)
	ctx := context.Background()

	role := createTestRole(t, db, "editor")
	articles := createTestMenu(t, db, "articles", "Articles", nil, 1)
	users := createTestMenu(t, db, "users", "Users", nil, 2)
	grantPermission(t, db, role.ID, articles.ID, true, true, true, true)

	err := svc.ReplacePermissions(ctx, role.ID.String(), []PermissionGrant{
		{MenuID: users.ID.String(), CanView: true},
	}, "")
	require.NoError(t, err)

	// Old grant revoked, new grant live.
	assert.ErrorIs(t, svc.HasPermission(ctx, role.ID.String(), "articles:view"), apperror.ErrForbidden)
	require.NoError(t, svc.HasPermission(ctx, role.ID.String(), "users:view"))
	assert.ErrorIs(t, svc.HasPermission(ctx, role.ID.String(), "users:create"), apperror.ErrForbidden)
}

func TestReplacePermissions_EmptyListRevokesEverything(t *testing.T) {
	db := newTestDB(t)
	svc := newPermissionService(db)
	ctx := context.Background()

	role := createTestRole(t, db, "editor")
	menu := createTestMenu(t, db, "articles", "Articles", nil, 1)
	grantPermission(t, db, role.ID, menu.ID, true, true, true, true)

	require.NoError(t, svc.ReplacePermissions(ctx, role.ID.String(), nil, ""))

	var count int64
	require.NoError(t, db.Model(&model.RolePermission{}).Where("role_id = ?", role.ID).Count(&count).Error)
	assert.Zero(t, count)
	assert.ErrorIs(t, svc.HasPermission(ctx, role.ID.String(), "articles:view"), apperror.ErrForbidden)
}

func TestReplacePermissions_UnknownRole(t *testing.T) {
	db := newTestDB(t)
	svc := newPermissionService(db)

	err := svc.ReplacePermissions(context.Background(), uuid.NewString(), nil, "")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestReplacePermissions_InvalidMenuIDRollsBack(t *testing.T) {
	db := newTestDB(t)
	svc := newPermissionService(db)
	ctx := context.Background()

	role := createTestRole(t, db, "editor")
	menu := createTestMenu(t, db, "articles", "Articles", nil, 1)
	grantPermission(t, db, role.ID, menu.ID, true, false, false, false)

	err := svc.ReplacePermissions(ctx, role.ID.String(), []PermissionGrant{
		{MenuID: "not-a-uuid", CanView: true},
	}, "")
	assert.ErrorIs(t, err, apperror.ErrValidation)

	// Validation happens before the transaction; the old grant survives.
	require.NoError(t, svc.HasPermission(ctx, role.ID.String(), "articles:view"))
}

func TestGetPermissions_ReturnsMenuSlug(t *testing.T) {
	db := newTestDB(t)
	svc := newPermissionService(db)
	ctx := context.Background()

	role := createTestRole(t, db, "editor")
	menu := createTestMenu(t, db, "articles", "Articles", nil, 1)
	grantPermission(t, db, role.ID, menu.ID, true, false, true, false)

	grants, err := svc.GetPermissions(ctx, role.ID.String())
	require.NoError(t, err)
	require.Len(t, grants, 1)
	assert.Equal(t, "articles", grants[0].MenuSlug)
	assert.True(t, grants[0].CanView)
	assert.False(t, grants[0].CanCreate)
	assert.True(t, grants[0].CanUpdate)
	assert.False(t, grants[0].CanDelete)
}
