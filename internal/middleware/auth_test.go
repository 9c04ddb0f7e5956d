package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"backend/internal/database"
	"backend/internal/model"
	"backend/internal/repository"
	"backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthTest(t *testing.T) (*gorm.DB, *AuthMiddleware) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	audit := service.NewAuditService(db)
	perms := service.NewPermissionService(
		repository.NewPermissionRepository(db),
		repository.NewRoleRepository(db),
		repository.NewTransactionManager(db),
		audit,
	)
	return db, NewAuthMiddleware(perms, audit)
}

func signToken(t *testing.T, userID, roleID string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":     userID,
		"role_id": roleID,
		"email":   "user@example.com",
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestRequireAuth_MissingToken(t *testing.T) {
	_, auth := setupAuthTest(t)

	router := gin.New()
	router.GET("/protected", auth.RequireAuth(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_BearerHeaderAccepted(t *testing.T) {
	_, auth := setupAuthTest(t)

	router := gin.New()
	router.GET("/protected", auth.RequireAuth(), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(CtxUserID))
	})

	userID := uuid.NewString()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, userID, uuid.NewString()))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, w.Body.String())
}

func TestRequirePermission_DeniedIsForbiddenNotUnauthorized(t *testing.T) {
	db, auth := setupAuthTest(t)

	role := &model.Role{ID: uuid.New(), Name: "viewer", IsActive: true}
	require.NoError(t, db.Create(role).Error)

	router := gin.New()
	router.GET("/users", auth.RequirePermission("users:view"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// Valid token, no grant: 403, not 401.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, uuid.NewString(), role.ID.String()))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// No token at all: 401.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/users", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequirePermission_GrantedPasses(t *testing.T) {
	db, auth := setupAuthTest(t)

	role := &model.Role{ID: uuid.New(), Name: "admin", IsActive: true}
	require.NoError(t, db.Create(role).Error)
	menu := &model.Menu{ID: uuid.New(), Slug: "users", Name: "Users", IsActive: true}
	require.NoError(t, db.Create(menu).Error)
	require.NoError(t, db.Create(&model.RolePermission{
		ID:       uuid.New(),
		RoleID:   role.ID,
		MenuID:   menu.ID,
		CanView:  true,
		IsActive: true,
	}).Error)

	router := gin.New()
	router.GET("/users", auth.RequirePermission("users:view"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, uuid.NewString(), role.ID.String()))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
