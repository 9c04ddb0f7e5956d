package service

import (
	"context"
	"strings"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperror"

	"github.com/google/uuid"
)

// PermissionGrant is the flat wire form of one role→menu grant.
type PermissionGrant struct {
	MenuID    string `json:"menu_id" binding:"required"`
	CanView   bool   `json:"can_view"`
	CanCreate bool   `json:"can_create"`
	CanUpdate bool   `json:"can_update"`
	CanDelete bool   `json:"can_delete"`
}

type GrantResponse struct {
	ID        string `json:"id"`
	MenuID    string `json:"menu_id"`
	MenuSlug  string `json:"menu_slug"`
	MenuName  string `json:"menu_name"`
	CanView   bool   `json:"can_view"`
	CanCreate bool   `json:"can_create"`
	CanUpdate bool   `json:"can_update"`
	CanDelete bool   `json:"can_delete"`
}

// PermissionService answers capability checks and manages a role's grant set.
// Permissions are keyed on "<menu-slug>:<action>" strings; a missing grant
// row or an unknown action resolves to deny, never to an error.
type PermissionService interface {
	// HasPermission reports whether the role holds the capability. Every
	// required permission must resolve true; the first failing permission
	// string is returned inside the Forbidden error.
	HasPermission(ctx context.Context, roleID string, required ...string) error
	GetPermissions(ctx context.Context, roleID string) ([]GrantResponse, error)
	// ReplacePermissions atomically swaps the role's whole grant set.
	// Grants omitted from the new list are revoked.
	ReplacePermissions(ctx context.Context, roleID string, grants []PermissionGrant, actorID string) error
}

type permissionService struct {
	perms repository.PermissionRepository
	roles repository.RoleRepository
	tx    repository.TransactionManager
	audit AuditService
}

func NewPermissionService(
	perms repository.PermissionRepository,
	roles repository.RoleRepository,
	tx repository.TransactionManager,
	audit AuditService,
) PermissionService {
	return &permissionService{perms: perms, roles: roles, tx: tx, audit: audit}
}

func (s *permissionService) HasPermission(ctx context.Context, roleID string, required ...string) error {
	rid, err := uuid.Parse(roleID)
	if err != nil {
		return apperror.Forbidden("invalid role id")
	}

	grants, err := s.perms.FindActiveByRole(ctx, rid)
	if err != nil {
		return err
	}

	for _, permission := range required {
		if !grantSatisfies(grants, permission) {
			return apperror.Forbidden("missing permission '%s'", permission)
		}
	}
	return nil
}

// grantSatisfies resolves one "<menu-slug>:<action>" string against the
// loaded grant rows. Malformed strings are denied, not rejected.
func grantSatisfies(grants []model.RolePermission, permission string) bool {
	slug, action, ok := strings.Cut(permission, ":")
	if !ok || slug == "" {
		return false
	}

	for _, g := range grants {
		if g.Menu == nil || g.Menu.Slug != slug {
			continue
		}
		if g.Allows(action) {
			return true
		}
	}
	return false
}

func (s *permissionService) GetPermissions(ctx context.Context, roleID string) ([]GrantResponse, error) {
	rid, err := uuid.Parse(roleID)
	if err != nil {
		return nil, apperror.Validation("invalid role id '%s'", roleID)
	}

	if _, err := s.roles.FindByID(ctx, rid); err != nil {
		return nil, apperror.NotFound("role %s", roleID)
	}

	grants, err := s.perms.FindActiveByRole(ctx, rid)
	if err != nil {
		return nil, err
	}

	res := make([]GrantResponse, 0, len(grants))
	for _, g := range grants {
		res = append(res, toGrantResponse(g))
	}
	return res, nil
}

func (s *permissionService) ReplacePermissions(ctx context.Context, roleID string, grants []PermissionGrant, actorID string) error {
	rid, err := uuid.Parse(roleID)
	if err != nil {
		return apperror.Validation("invalid role id '%s'", roleID)
	}

	role, err := s.roles.FindByID(ctx, rid)
	if err != nil {
		return apperror.NotFound("role %s", roleID)
	}

	rows := make([]model.RolePermission, 0, len(grants))
	for _, g := range grants {
		menuID, err := uuid.Parse(g.MenuID)
		if err != nil {
			return apperror.Validation("invalid menu id '%s'", g.MenuID)
		}
		rows = append(rows, model.RolePermission{
			ID:        uuid.New(),
			RoleID:    rid,
			MenuID:    menuID,
			CanView:   g.CanView,
			CanCreate: g.CanCreate,
			CanUpdate: g.CanUpdate,
			CanDelete: g.CanDelete,
			IsActive:  true,
		})
	}

	// Delete-then-insert in one transaction so concurrent readers never
	// observe the role with an empty grant set mid-update.
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.perms.DeleteByRole(txCtx, rid); err != nil {
			return err
		}
		return s.perms.CreateAll(txCtx, rows)
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, actorID, model.ActionSetPermissions, roleID, role.Name, grants)
	return nil
}

func toGrantResponse(g model.RolePermission) GrantResponse {
	res := GrantResponse{
		ID:        g.ID.String(),
		MenuID:    g.MenuID.String(),
		CanView:   g.CanView,
		CanCreate: g.CanCreate,
		CanUpdate: g.CanUpdate,
		CanDelete: g.CanDelete,
	}
	if g.Menu != nil {
		res.MenuSlug = g.Menu.Slug
		res.MenuName = g.Menu.Name
	}
	return res
}
