package service

import (
	"context"
	"errors"
	"os"
	"time"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperror"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

// DTOs for Request validation
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type CreateUserRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	RoleID    string `json:"role_id" binding:"required"`
}

type UpdateUserRequest struct {
	Email     string  `json:"email" binding:"omitempty,email"`
	Username  string  `json:"username"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	RoleID    string  `json:"role_id"`
	IsActive  *bool   `json:"is_active"`
}

type LoginUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type TokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

// DTO for returning User without exposing sensitive data (e.g. password hash)
type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	RoleID    string `json:"role_id"`
	RoleName  string `json:"role_name,omitempty"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// UserService defines the interface for business logic related to User
type UserService interface {
	Register(ctx context.Context, req RegisterRequest) (*UserResponse, error)
	CreateUser(ctx context.Context, req CreateUserRequest, actorID string) (*UserResponse, error)
	Login(ctx context.Context, req LoginUserRequest) (*TokenResponse, error)
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (*TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	GetUserByID(ctx context.Context, id string) (*UserResponse, error)
	ListUsers(ctx context.Context, page, limit int) ([]UserResponse, int64, error)
	UpdateUser(ctx context.Context, id string, req UpdateUserRequest, actorID string) (*UserResponse, error)
	DeleteUser(ctx context.Context, id string, actorID string) error
}

type userService struct {
	repo  repository.UserRepository
	roles repository.RoleRepository
	db    *gorm.DB
	audit AuditService
}

// NewUserService returns a new instance of UserService
func NewUserService(repo repository.UserRepository, roles repository.RoleRepository, db *gorm.DB, audit AuditService) UserService {
	return &userService{repo: repo, roles: roles, db: db, audit: audit}
}

// DefaultRoleName is assigned to self-registered accounts.
const DefaultRoleName = "viewer"

func (s *userService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, apperror.Conflict("email already exists")
	}
	if req.Username != "" {
		if _, err := s.repo.GetByUsername(ctx, req.Username); err == nil {
			return nil, apperror.Conflict("username already exists")
		}
	}

	role, err := s.roles.FindByName(ctx, DefaultRoleName)
	if err != nil {
		return nil, apperror.NotFound("default role '%s'", DefaultRoleName)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hashed),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		RoleID:       role.ID,
		IsActive:     true,
	}
	if req.Username != "" {
		user.Username = &req.Username
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	user.Role = role
	return mapUserToResponse(user), nil
}

func (s *userService) CreateUser(ctx context.Context, req CreateUserRequest, actorID string) (*UserResponse, error) {
	roleID, err := uuid.Parse(req.RoleID)
	if err != nil {
		return nil, apperror.Validation("invalid role id '%s'", req.RoleID)
	}
	role, err := s.roles.FindByID(ctx, roleID)
	if err != nil {
		return nil, apperror.NotFound("role %s", req.RoleID)
	}

	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, apperror.Conflict("email already exists")
	}
	if req.Username != "" {
		if _, err := s.repo.GetByUsername(ctx, req.Username); err == nil {
			return nil, apperror.Conflict("username already exists")
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hashed),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		RoleID:       role.ID,
		IsActive:     true,
	}
	if req.Username != "" {
		user.Username = &req.Username
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actorID, model.ActionCreateUser, user.ID.String(), user.Email, map[string]string{"role": role.Name})
	user.Role = role
	return mapUserToResponse(user), nil
}

func (s *userService) Login(ctx context.Context, req LoginUserRequest) (*TokenResponse, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperror.ErrUnauthorized
	}

	if user.PasswordHash == "" || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		s.audit.Record(ctx, "", model.ActionLoginFailed, user.ID.String(), user.Email, nil)
		return nil, apperror.ErrUnauthorized
	}

	now := time.Now()
	user.LastLoginAt = &now
	_ = s.repo.Update(ctx, user)

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, user.ID.String(), model.ActionLoginSuccess, user.ID.String(), user.Email, nil)
	return tokens, nil
}

func (s *userService) RefreshToken(ctx context.Context, req RefreshTokenRequest) (*TokenResponse, error) {
	var stored model.RefreshToken
	err := s.db.WithContext(ctx).First(&stored, "token = ?", req.RefreshToken).Error
	if err != nil {
		return nil, apperror.ErrUnauthorized
	}
	if time.Now().After(stored.ExpiresAt) {
		_ = s.db.WithContext(ctx).Delete(&stored).Error
		return nil, apperror.ErrUnauthorized
	}

	user, err := s.repo.GetByID(ctx, stored.UserID.String())
	if err != nil {
		return nil, apperror.ErrUnauthorized
	}

	// Rotate: the presented refresh token is consumed.
	if err := s.db.WithContext(ctx).Delete(&stored).Error; err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

func (s *userService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.db.WithContext(ctx).Where("token = ?", refreshToken).Delete(&model.RefreshToken{}).Error
}

// issueTokens signs an access/refresh JWT pair and persists the refresh side.
func (s *userService) issueTokens(ctx context.Context, user *model.User) (*TokenResponse, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":     user.ID.String(),
		"email":   user.Email,
		"role_id": user.RoleID.String(),
		"iat":     now.Unix(),
		"exp":     now.Add(accessTokenTTL).Unix(),
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret())
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	refreshClaims := jwt.MapClaims{
		"sub": user.ID.String(),
		"iat": now.Unix(),
		"exp": now.Add(refreshTokenTTL).Unix(),
		"jti": uuid.NewString(),
	}
	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(jwtSecret())
	if err != nil {
		return nil, errors.New("failed to generate refresh token")
	}

	row := model.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     refresh,
		ExpiresAt: now.Add(refreshTokenTTL),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}

	return &TokenResponse{Token: access, RefreshToken: refresh}, nil
}

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default_super_secret_key" // Development fallback only — DO NOT use in production
	}
	return []byte(secret)
}

func (s *userService) GetUserByID(ctx context.Context, id string) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("user %s", id)
	}
	return mapUserToResponse(user), nil
}

func (s *userService) ListUsers(ctx context.Context, page, limit int) ([]UserResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	users, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *mapUserToResponse(&users[i]))
	}
	return responses, total, nil
}

func (s *userService) UpdateUser(ctx context.Context, id string, req UpdateUserRequest, actorID string) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("user %s", id)
	}

	if req.RoleID != "" {
		roleID, err := uuid.Parse(req.RoleID)
		if err != nil {
			return nil, apperror.Validation("invalid role id '%s'", req.RoleID)
		}
		role, err := s.roles.FindByID(ctx, roleID)
		if err != nil {
			return nil, apperror.NotFound("role %s", req.RoleID)
		}
		user.RoleID = role.ID
		user.Role = role
	}

	if req.Username != "" && (user.Username == nil || req.Username != *user.Username) {
		if _, err := s.repo.GetByUsername(ctx, req.Username); err == nil {
			return nil, apperror.Conflict("username already exists")
		}
		user.Username = &req.Username
	}

	if req.Email != "" && req.Email != user.Email {
		if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
			return nil, apperror.Conflict("email already exists")
		}
		user.Email = req.Email
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actorID, model.ActionUpdateUser, id, user.Email, req)
	return mapUserToResponse(user), nil
}

func (s *userService) DeleteUser(ctx context.Context, id string, actorID string) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return apperror.NotFound("user %s", id)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, actorID, model.ActionDeleteUser, id, user.Email, nil)
	return nil
}

// Helper: parse model to standard json API response
func mapUserToResponse(user *model.User) *UserResponse {
	res := &UserResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		RoleID:    user.RoleID.String(),
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: user.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if user.Username != nil {
		res.Username = *user.Username
	}
	if user.Role != nil {
		res.RoleName = user.Role.Name
	}
	return res
}
