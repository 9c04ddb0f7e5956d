package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type RoleHandler struct {
	roleService service.RoleService
	permService service.PermissionService
	auth        *middleware.AuthMiddleware
}

func NewRoleHandler(roleService service.RoleService, permService service.PermissionService, auth *middleware.AuthMiddleware) *RoleHandler {
	return &RoleHandler{roleService: roleService, permService: permService, auth: auth}
}

func (h *RoleHandler) RegisterRoutes(router *gin.RouterGroup) {
	roles := router.Group("/api/roles")
	{
		roles.GET("", h.auth.RequirePermission("roles:view"), h.ListRoles)
		roles.GET("/:id", h.auth.RequirePermission("roles:view"), h.GetRole)
		roles.POST("", h.auth.RequirePermission("roles:create"), h.CreateRole)
		roles.PUT("/:id", h.auth.RequirePermission("roles:update"), h.UpdateRole)
		roles.DELETE("/:id", h.auth.RequirePermission("roles:delete"), h.DeleteRole)

		roles.GET("/:id/permissions", h.auth.RequirePermission("roles:view"), h.GetPermissions)
		roles.PUT("/:id/permissions", h.auth.RequirePermission("roles:update"), h.ReplacePermissions)
		roles.GET("/:id/permission-tree", h.auth.RequirePermission("roles:view"), h.GetPermissionTree)
		roles.PUT("/:id/permission-tree", h.auth.RequirePermission("roles:update"), h.UpdatePermissionTree)
	}
}

// ListRoles returns all active roles
// @Summary      List roles
// @Tags         roles
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.RoleResponse}
// @Router       /api/roles [get]
func (h *RoleHandler) ListRoles(c *gin.Context) {
	roles, err := h.roleService.ListRoles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, roles))
}

// GetRole returns one role
// @Summary      Get role
// @Tags         roles
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Role ID"
// @Success      200  {object}  response.Response{data=service.RoleResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/roles/{id} [get]
func (h *RoleHandler) GetRole(c *gin.Context) {
	role, err := h.roleService.GetRole(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, role))
}

// CreateRole creates a new role
// @Summary      Create role
// @Tags         roles
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateRoleRequest  true  "Create Role Payload"
// @Success      201      {object}  response.Response{data=service.RoleResponse}
// @Failure      409      {object}  response.Response
// @Router       /api/roles [post]
func (h *RoleHandler) CreateRole(c *gin.Context) {
	var req service.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	role, err := h.roleService.CreateRole(c.Request.Context(), req, c.GetString(middleware.CtxUserID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, role))
}

// UpdateRole updates a role's name or description
// @Summary      Update role
// @Tags         roles
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                     true  "Role ID"
// @Param        payload  body      service.UpdateRoleRequest  true  "Update Role Payload"
// @Success      200      {object}  response.Response{data=service.RoleResponse}
// @Failure      404      {object}  response.Response
// @Router       /api/roles/{id} [put]
func (h *RoleHandler) UpdateRole(c *gin.Context) {
	var req service.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	role, err := h.roleService.UpdateRole(c.Request.Context(), c.Param("id"), req, c.GetString(middleware.CtxUserID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, role))
}

// DeleteRole deactivates a role that has no assigned users
// @Summary      Delete role
// @Tags         roles
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Role ID"
// @Success      200  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/roles/{id} [delete]
func (h *RoleHandler) DeleteRole(c *gin.Context) {
	if err := h.roleService.DeleteRole(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Role deleted successfully"}))
}

// GetPermissions returns the role's grants as a flat list
// @Summary      List role permissions
// @Tags         roles
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Role ID"
// @Success      200  {object}  response.Response{data=[]service.GrantResponse}
// @Router       /api/roles/{id}/permissions [get]
func (h *RoleHandler) GetPermissions(c *gin.Context) {
	grants, err := h.permService.GetPermissions(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, grants))
}

type ReplacePermissionsRequest struct {
	Permissions []service.PermissionGrant `json:"permissions" binding:"required"`
}

// ReplacePermissions replaces the role's full grant set in one transaction
// @Summary      Replace role permissions
// @Tags         roles
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                     true  "Role ID"
// @Param        payload  body      ReplacePermissionsRequest  true  "Grant Payload"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /api/roles/{id}/permissions [put]
func (h *RoleHandler) ReplacePermissions(c *gin.Context) {
	var req ReplacePermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	if err := h.permService.ReplacePermissions(c.Request.Context(), c.Param("id"), req.Permissions, c.GetString(middleware.CtxUserID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Permissions updated successfully"}))
}

// GetPermissionTree returns every active menu with the role's grants overlaid
// @Summary      Role permission tree
// @Tags         roles
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Role ID"
// @Success      200  {object}  response.Response{data=[]service.MenuPermissionNode}
// @Router       /api/roles/{id}/permission-tree [get]
func (h *RoleHandler) GetPermissionTree(c *gin.Context) {
	tree, err := h.roleService.GetPermissionTree(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, tree))
}

type PermissionTreeRequest struct {
	Menus []service.MenuPermissionNode `json:"menus" binding:"required"`
}

// UpdatePermissionTree flattens an edited tree and replaces the role's grants
// @Summary      Update role permission tree
// @Tags         roles
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                 true  "Role ID"
// @Param        payload  body      PermissionTreeRequest  true  "Permission Tree Payload"
// @Success      200      {object}  response.Response
// @Router       /api/roles/{id}/permission-tree [put]
func (h *RoleHandler) UpdatePermissionTree(c *gin.Context) {
	var req PermissionTreeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	if err := h.roleService.UpdatePermissionsFromTree(c.Request.Context(), c.Param("id"), req.Menus, c.GetString(middleware.CtxUserID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Permissions updated successfully"}))
}
