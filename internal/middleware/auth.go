package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/apperror"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys set by the auth middleware for downstream handlers.
const (
	CtxUserID = "userID"
	CtxRoleID = "roleID"
	CtxEmail  = "userEmail"
)

func GetJWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if os.Getenv("GIN_MODE") == "release" {
			panic("FATAL: JWT_SECRET environment variable is required in production mode")
		}
		secret = "default_super_secret_key" // Development fallback only — DO NOT use in production
	}
	return []byte(secret)
}

// SetTokenCookies sets access_token and refresh_token as HttpOnly cookies
func SetTokenCookies(c *gin.Context, accessToken, refreshToken string) {
	// Production (cross-origin): SameSiteNoneMode + Secure=true
	// Development (same-site):   SameSiteLaxMode  + Secure=false
	sameSite := http.SameSiteLaxMode
	secure := false
	if os.Getenv("GIN_MODE") == "release" {
		sameSite = http.SameSiteNoneMode
		secure = true
	}

	c.SetSameSite(sameSite)
	// access_token: 24h, path=/, domain="", secure, HttpOnly
	c.SetCookie("access_token", accessToken, 3600*24, "/", "", secure, true)
	// refresh_token: 7 days, path=/, domain="", secure, HttpOnly
	c.SetCookie("refresh_token", refreshToken, 3600*24*7, "/", "", secure, true)
}

// ClearTokenCookies removes access_token and refresh_token cookies
func ClearTokenCookies(c *gin.Context) {
	sameSite := http.SameSiteLaxMode
	secure := false
	if os.Getenv("GIN_MODE") == "release" {
		sameSite = http.SameSiteNoneMode
		secure = true
	}

	c.SetSameSite(sameSite)
	c.SetCookie("access_token", "", -1, "/", "", secure, true)
	c.SetCookie("refresh_token", "", -1, "/", "", secure, true)
}

// AuthMiddleware guards routes with JWT authentication and role-permission
// checks. The permission service is injected explicitly; no ambient state.
type AuthMiddleware struct {
	perms service.PermissionService
	audit service.AuditService
}

func NewAuthMiddleware(perms service.PermissionService, audit service.AuditService) *AuthMiddleware {
	return &AuthMiddleware{perms: perms, audit: audit}
}

// extractClaims pulls and validates the JWT from the access_token cookie,
// falling back to the Authorization header.
func extractClaims(c *gin.Context) (jwt.MapClaims, error) {
	tokenString, cookieErr := c.Cookie("access_token")
	if cookieErr != nil || tokenString == "" {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			return nil, errors.New("authorization is missing")
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return nil, errors.New("invalid authorization format, expected 'Bearer <token>'")
		}
		tokenString = parts[1]
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return GetJWTSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// RequireAuth validates the JWT and stores the user identity in the context.
// Failures are "not authenticated" (401), distinct from insufficient
// capability (403).
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := extractClaims(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, err.Error()))
			return
		}

		sub, _ := claims["sub"].(string)
		roleID, _ := claims["role_id"].(string)
		email, _ := claims["email"].(string)
		if sub == "" || roleID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "invalid token claims"))
			return
		}

		c.Set(CtxUserID, sub)
		c.Set(CtxRoleID, roleID)
		c.Set(CtxEmail, email)
		c.Next()
	}
}

// RequirePermission validates the JWT and checks the acting role against the
// required "<menu-slug>:<action>" permissions. All required permissions must
// hold; a missing grant row is an ordinary deny.
func (m *AuthMiddleware) RequirePermission(required ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := extractClaims(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, err.Error()))
			return
		}

		sub, _ := claims["sub"].(string)
		roleID, _ := claims["role_id"].(string)
		if sub == "" || roleID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "invalid token claims"))
			return
		}

		c.Set(CtxUserID, sub)
		c.Set(CtxRoleID, roleID)
		if email, ok := claims["email"].(string); ok {
			c.Set(CtxEmail, email)
		}

		if err := m.perms.HasPermission(c.Request.Context(), roleID, required...); err != nil {
			status := apperror.StatusCode(err)
			if status == http.StatusForbidden {
				m.audit.Record(c.Request.Context(), sub, model.ActionPermissionDenied, c.FullPath(), "", map[string]interface{}{
					"required": required,
				})
			}
			c.AbortWithStatusJSON(status, response.Error(status, err.Error()))
			return
		}

		c.Next()
	}
}
