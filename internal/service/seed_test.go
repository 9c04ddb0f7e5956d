package service

import (
	"context"
	"testing"

	"backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDefaults_Idempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, SeedDefaults(ctx, db))

	var menus, roles, grants, settings int64
	require.NoError(t, db.Model(&model.Menu{}).Count(&menus).Error)
	require.NoError(t, db.Model(&model.Role{}).Count(&roles).Error)
	require.NoError(t, db.Model(&model.RolePermission{}).Count(&grants).Error)
	require.NoError(t, db.Model(&model.Setting{}).Count(&settings).Error)
	assert.EqualValues(t, 10, menus)
	assert.EqualValues(t, 3, roles)
	assert.NotZero(t, grants)
	assert.NotZero(t, settings)

	// A second run must not duplicate anything.
	require.NoError(t, SeedDefaults(ctx, db))

	var menus2, roles2, grants2, settings2 int64
	require.NoError(t, db.Model(&model.Menu{}).Count(&menus2).Error)
	require.NoError(t, db.Model(&model.Role{}).Count(&roles2).Error)
	require.NoError(t, db.Model(&model.RolePermission{}).Count(&grants2).Error)
	require.NoError(t, db.Model(&model.Setting{}).Count(&settings2).Error)
	assert.Equal(t, menus, menus2)
	assert.Equal(t, roles, roles2)
	assert.Equal(t, grants, grants2)
	assert.Equal(t, settings, settings2)
}

func TestSeedDefaults_AdminSeesEveryMenu(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	require.NoError(t, SeedDefaults(ctx, db))

	var admin model.Role
	require.NoError(t, db.First(&admin, "name = ?", "admin").Error)

	svc := newPermissionService(db)
	for _, permission := range []string{"menus:view", "menus:create", "users:delete", "audit:view", "settings:view", "labels:update"} {
		require.NoError(t, svc.HasPermission(ctx, admin.ID.String(), permission), permission)
	}

	var viewer model.Role
	require.NoError(t, db.First(&viewer, "name = ?", "viewer").Error)
	assert.Error(t, svc.HasPermission(ctx, viewer.ID.String(), "users:view"))
	require.NoError(t, svc.HasPermission(ctx, viewer.ID.String(), "articles:view"))
}
