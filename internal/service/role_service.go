package service

import (
	"context"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperror"

	"github.com/google/uuid"
)

// --- DTOs ---

type CreateRoleRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateRoleRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type RoleResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	IsSystem    bool            `json:"is_system"`
	IsActive    bool            `json:"is_active"`
	Permissions []GrantResponse `json:"permissions"`
	CreatedAt   string          `json:"created_at"`
}

// CapabilitySet carries the four capability booleans of one grant.
type CapabilitySet struct {
	CanView   bool `json:"can_view"`
	CanCreate bool `json:"can_create"`
	CanUpdate bool `json:"can_update"`
	CanDelete bool `json:"can_delete"`
}

func (c CapabilitySet) isZero() bool {
	return !c.CanView && !c.CanCreate && !c.CanUpdate && !c.CanDelete
}

// MenuPermissionNode is one node of the permission-editing tree: a menu with
// the role's current capabilities and its children, recursively.
type MenuPermissionNode struct {
	ID          string               `json:"id" binding:"required"`
	Name        string               `json:"name"`
	Slug        string               `json:"slug"`
	URL         string               `json:"url,omitempty"`
	Icon        string               `json:"icon,omitempty"`
	Permissions CapabilitySet        `json:"permissions"`
	Children    []MenuPermissionNode `json:"children"`
}

// --- Interface ---

type RoleService interface {
	ListRoles(ctx context.Context) ([]RoleResponse, error)
	GetRole(ctx context.Context, id string) (*RoleResponse, error)
	CreateRole(ctx context.Context, req CreateRoleRequest, actorID string) (*RoleResponse, error)
	UpdateRole(ctx context.Context, id string, req UpdateRoleRequest, actorID string) (*RoleResponse, error)
	DeleteRole(ctx context.Context, id string, actorID string) error
	// GetPermissionTree returns the full active menu forest with the role's
	// capability booleans attached per menu (all-false when no grant exists),
	// for the permission-editing UI.
	GetPermissionTree(ctx context.Context, roleID string) ([]MenuPermissionNode, error)
	// UpdatePermissionsFromTree flattens the edited tree depth-first and
	// replaces the role's grant set wholesale. All-false nodes produce no
	// grant row; both representations evaluate identically on checks.
	UpdatePermissionsFromTree(ctx context.Context, roleID string, tree []MenuPermissionNode, actorID string) error
}

type roleService struct {
	roles repository.RoleRepository
	menus repository.MenuRepository
	users repository.UserRepository
	perms PermissionService
	audit AuditService
}

func NewRoleService(
	roles repository.RoleRepository,
	menus repository.MenuRepository,
	users repository.UserRepository,
	perms PermissionService,
	audit AuditService,
) RoleService {
	return &roleService{roles: roles, menus: menus, users: users, perms: perms, audit: audit}
}

// --- Implementation ---

func (s *roleService) ListRoles(ctx context.Context) ([]RoleResponse, error) {
	roles, err := s.roles.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]RoleResponse, 0, len(roles))
	for _, r := range roles {
		res = append(res, toRoleResponse(r))
	}
	return res, nil
}

func (s *roleService) GetRole(ctx context.Context, id string) (*RoleResponse, error) {
	roleID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.Validation("invalid role id '%s'", id)
	}

	role, err := s.roles.FindByIDWithPermissions(ctx, roleID)
	if err != nil {
		return nil, apperror.NotFound("role %s", id)
	}

	resp := toRoleResponse(*role)
	return &resp, nil
}

func (s *roleService) CreateRole(ctx context.Context, req CreateRoleRequest, actorID string) (*RoleResponse, error) {
	if _, err := s.roles.FindByName(ctx, req.Name); err == nil {
		return nil, apperror.Conflict("role '%s' already exists", req.Name)
	}

	role := model.Role{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}
	if err := s.roles.Create(ctx, &role); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actorID, model.ActionCreateRole, role.ID.String(), role.Name, req)
	return s.GetRole(ctx, role.ID.String())
}

func (s *roleService) UpdateRole(ctx context.Context, id string, req UpdateRoleRequest, actorID string) (*RoleResponse, error) {
	roleID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.Validation("invalid role id '%s'", id)
	}

	role, err := s.roles.FindByID(ctx, roleID)
	if err != nil {
		return nil, apperror.NotFound("role %s", id)
	}

	if req.Name != role.Name {
		if existing, err := s.roles.FindByName(ctx, req.Name); err == nil && existing.ID != roleID {
			return nil, apperror.Conflict("role '%s' already exists", req.Name)
		}
	}

	role.Name = req.Name
	role.Description = req.Description
	if err := s.roles.Update(ctx, role); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actorID, model.ActionUpdateRole, id, role.Name, req)
	return s.GetRole(ctx, id)
}

func (s *roleService) DeleteRole(ctx context.Context, id string, actorID string) error {
	roleID, err := uuid.Parse(id)
	if err != nil {
		return apperror.Validation("invalid role id '%s'", id)
	}

	role, err := s.roles.FindByID(ctx, roleID)
	if err != nil {
		return apperror.NotFound("role %s", id)
	}

	if role.IsSystem {
		return apperror.Conflict("cannot delete system role '%s'", role.Name)
	}

	users, err := s.users.CountByRole(ctx, id)
	if err != nil {
		return err
	}
	if users > 0 {
		return apperror.Conflict("cannot delete role that has active users")
	}

	if err := s.roles.Deactivate(ctx, roleID); err != nil {
		return err
	}

	s.audit.Record(ctx, actorID, model.ActionDeleteRole, id, role.Name, nil)
	return nil
}

func (s *roleService) GetPermissionTree(ctx context.Context, roleID string) ([]MenuPermissionNode, error) {
	rid, err := uuid.Parse(roleID)
	if err != nil {
		return nil, apperror.Validation("invalid role id '%s'", roleID)
	}
	role, err := s.roles.FindByIDWithPermissions(ctx, rid)
	if err != nil {
		return nil, apperror.NotFound("role %s", roleID)
	}

	// The tree shows every assignable menu, not just currently granted ones.
	menus, err := s.menus.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}

	capabilities := make(map[uuid.UUID]CapabilitySet, len(role.Permissions))
	for _, g := range role.Permissions {
		capabilities[g.MenuID] = CapabilitySet{
			CanView:   g.CanView,
			CanCreate: g.CanCreate,
			CanUpdate: g.CanUpdate,
			CanDelete: g.CanDelete,
		}
	}

	byParent := make(map[uuid.UUID][]model.Menu)
	var roots []model.Menu
	for _, m := range menus {
		if m.ParentID == nil {
			roots = append(roots, m)
		} else {
			byParent[*m.ParentID] = append(byParent[*m.ParentID], m)
		}
	}

	var build func(menu model.Menu) MenuPermissionNode
	build = func(menu model.Menu) MenuPermissionNode {
		node := MenuPermissionNode{
			ID:          menu.ID.String(),
			Name:        menu.Name,
			Slug:        menu.Slug,
			URL:         menu.URL,
			Icon:        menu.Icon,
			Permissions: capabilities[menu.ID], // zero value = all-false
			Children:    []MenuPermissionNode{},
		}
		for _, child := range byParent[menu.ID] {
			node.Children = append(node.Children, build(child))
		}
		return node
	}

	tree := make([]MenuPermissionNode, 0, len(roots))
	for _, root := range roots {
		tree = append(tree, build(root))
	}
	return tree, nil
}

func (s *roleService) UpdatePermissionsFromTree(ctx context.Context, roleID string, tree []MenuPermissionNode, actorID string) error {
	var grants []PermissionGrant

	var flatten func(nodes []MenuPermissionNode) error
	flatten = func(nodes []MenuPermissionNode) error {
		for _, node := range nodes {
			if _, err := uuid.Parse(node.ID); err != nil {
				return apperror.Validation("invalid menu id '%s'", node.ID)
			}
			if !node.Permissions.isZero() {
				grants = append(grants, PermissionGrant{
					MenuID:    node.ID,
					CanView:   node.Permissions.CanView,
					CanCreate: node.Permissions.CanCreate,
					CanUpdate: node.Permissions.CanUpdate,
					CanDelete: node.Permissions.CanDelete,
				})
			}
			if err := flatten(node.Children); err != nil {
				return err
			}
		}
		return nil
	}
	if err := flatten(tree); err != nil {
		return err
	}

	return s.perms.ReplacePermissions(ctx, roleID, grants, actorID)
}

// --- Helpers ---

func toRoleResponse(r model.Role) RoleResponse {
	perms := make([]GrantResponse, 0, len(r.Permissions))
	for _, g := range r.Permissions {
		perms = append(perms, toGrantResponse(g))
	}

	return RoleResponse{
		ID:          r.ID.String(),
		Name:        r.Name,
		Description: r.Description,
		IsSystem:    r.IsSystem,
		IsActive:    r.IsActive,
		Permissions: perms,
		CreatedAt:   r.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
