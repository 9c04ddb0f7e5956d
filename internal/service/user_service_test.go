package service

import (
	"context"
	"testing"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserService(db *gorm.DB) UserService {
	return NewUserService(
		repository.NewUserRepository(db),
		repository.NewRoleRepository(db),
		db,
		NewAuditService(db),
	)
}

func TestRegister_AssignsDefaultRole(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	viewer := createTestRole(t, db, DefaultRoleName)

	user, err := svc.Register(ctx, RegisterRequest{
		Email:     "new@example.com",
		Password:  "password123",
		FirstName: "New",
	})
	require.NoError(t, err)
	assert.Equal(t, viewer.ID.String(), user.RoleID)
	assert.Equal(t, DefaultRoleName, user.RoleName)

	// Duplicate email is rejected.
	_, err = svc.Register(ctx, RegisterRequest{Email: "new@example.com", Password: "password123"})
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestRegister_MissingDefaultRole(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "new@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestLogin_WrongPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	role := createTestRole(t, db, "viewer")
	createTestUser(t, db, "user@example.com", role.ID)

	_, err := svc.Login(ctx, LoginUserRequest{Email: "user@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	_, err = svc.Login(ctx, LoginUserRequest{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestLogin_IssuesTokenPair(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	role := createTestRole(t, db, "viewer")
	user := createTestUser(t, db, "user@example.com", role.ID)

	tokens, err := svc.Login(ctx, LoginUserRequest{Email: "user@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.Token)
	assert.NotEmpty(t, tokens.RefreshToken)

	// The refresh token is persisted for later rotation.
	var count int64
	require.NoError(t, db.Model(&model.RefreshToken{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRefreshToken_RotatesAndConsumes(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	role := createTestRole(t, db, "viewer")
	createTestUser(t, db, "user@example.com", role.ID)

	tokens, err := svc.Login(ctx, LoginUserRequest{Email: "user@example.com", Password: "password123"})
	require.NoError(t, err)

	rotated, err := svc.RefreshToken(ctx, RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, tokens.RefreshToken, rotated.RefreshToken)

	// The presented token was consumed; replaying it fails.
	_, err = svc.RefreshToken(ctx, RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestLogout_RevokesRefreshToken(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	role := createTestRole(t, db, "viewer")
	createTestUser(t, db, "user@example.com", role.ID)

	tokens, err := svc.Login(ctx, LoginUserRequest{Email: "user@example.com", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, tokens.RefreshToken))

	_, err = svc.RefreshToken(ctx, RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}
