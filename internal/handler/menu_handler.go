package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type MenuHandler struct {
	menuService service.MenuService
	navService  service.NavigationService
	auth        *middleware.AuthMiddleware
}

func NewMenuHandler(menuService service.MenuService, navService service.NavigationService, auth *middleware.AuthMiddleware) *MenuHandler {
	return &MenuHandler{menuService: menuService, navService: navService, auth: auth}
}

func (h *MenuHandler) RegisterRoutes(router *gin.RouterGroup) {
	// Public navigation: all active menus, no permission filter.
	router.GET("/api/navigation/public", h.GetPublicNavigation)
	// Authenticated navigation: filtered to the caller's role.
	router.GET("/api/navigation", h.auth.RequireAuth(), h.GetNavigation)

	menus := router.Group("/api/menus")
	{
		menus.GET("", h.auth.RequirePermission("menus:view"), h.ListMenus)
		menus.GET("/:id", h.auth.RequirePermission("menus:view"), h.GetMenu)
		menus.POST("", h.auth.RequirePermission("menus:create"), h.CreateMenu)
		menus.PUT("/:id", h.auth.RequirePermission("menus:update"), h.UpdateMenu)
		menus.DELETE("/:id", h.auth.RequirePermission("menus:delete"), h.DeleteMenu)

		menus.POST("/:id/translations", h.auth.RequirePermission("menus:update"), h.AddTranslation)
		menus.PUT("/:id/translations/:translationId", h.auth.RequirePermission("menus:update"), h.UpdateTranslation)
		menus.DELETE("/:id/translations/:translationId", h.auth.RequirePermission("menus:update"), h.DeleteTranslation)
	}
}

// GetPublicNavigation returns the localized menu tree without role filtering
// @Summary      Public navigation tree
// @Description  Returns the active menu tree localized to the requested language
// @Tags         navigation
// @Produce      json
// @Param        lang  query     string  false  "Language code (default en)"
// @Success      200   {object}  response.Response{data=[]service.NavigationNode}
// @Router       /api/navigation/public [get]
func (h *MenuHandler) GetPublicNavigation(c *gin.Context) {
	nav, err := h.navService.GetNavigation(c.Request.Context(), c.Query("lang"), "")
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, nav))
}

// GetNavigation returns the caller's permission-filtered navigation tree
// @Summary      Navigation tree
// @Description  Returns the menu tree the caller's role may view, localized
// @Tags         navigation
// @Security     BearerAuth
// @Produce      json
// @Param        lang  query     string  false  "Language code (default en)"
// @Success      200   {object}  response.Response{data=[]service.NavigationNode}
// @Failure      401   {object}  response.Response
// @Router       /api/navigation [get]
func (h *MenuHandler) GetNavigation(c *gin.Context) {
	roleID := c.GetString(middleware.CtxRoleID)
	nav, err := h.navService.GetNavigation(c.Request.Context(), c.Query("lang"), roleID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, nav))
}

// ListMenus returns the menu forest (top-level menus with children)
// @Summary      List menus
// @Tags         menus
// @Security     BearerAuth
// @Produce      json
// @Param        lang  query     string  false  "Language code for localized names"
// @Success      200   {object}  response.Response{data=[]service.MenuResponse}
// @Router       /api/menus [get]
func (h *MenuHandler) ListMenus(c *gin.Context) {
	menus, err := h.menuService.FindAll(c.Request.Context(), c.Query("lang"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, menus))
}

// GetMenu returns one menu with children and translations
// @Summary      Get menu
// @Tags         menus
// @Security     BearerAuth
// @Produce      json
// @Param        id    path      string  true   "Menu ID"
// @Param        lang  query     string  false  "Language code for localized names"
// @Success      200   {object}  response.Response{data=service.MenuResponse}
// @Failure      404   {object}  response.Response
// @Router       /api/menus/{id} [get]
func (h *MenuHandler) GetMenu(c *gin.Context) {
	menu, err := h.menuService.FindOne(c.Request.Context(), c.Param("id"), c.Query("lang"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, menu))
}

// CreateMenu creates a new menu
// @Summary      Create menu
// @Tags         menus
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateMenuRequest  true  "Create Menu Payload"
// @Success      201      {object}  response.Response{data=service.MenuResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/menus [post]
func (h *MenuHandler) CreateMenu(c *gin.Context) {
	var req service.CreateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	menu, err := h.menuService.Create(c.Request.Context(), req, c.GetString(middleware.CtxUserID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, menu))
}

// UpdateMenu updates a menu's fields, including reparenting
// @Summary      Update menu
// @Tags         menus
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                     true  "Menu ID"
// @Param        payload  body      service.UpdateMenuRequest  true  "Update Menu Payload"
// @Success      200      {object}  response.Response{data=service.MenuResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/menus/{id} [put]
func (h *MenuHandler) UpdateMenu(c *gin.Context) {
	var req service.UpdateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	menu, err := h.menuService.Update(c.Request.Context(), c.Param("id"), req, c.GetString(middleware.CtxUserID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, menu))
}

// DeleteMenu deletes a childless menu and its translations/grants
// @Summary      Delete menu
// @Tags         menus
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Menu ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/menus/{id} [delete]
func (h *MenuHandler) DeleteMenu(c *gin.Context) {
	if err := h.menuService.Remove(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Menu deleted successfully"}))
}

// AddTranslation adds a translation for a language not yet present
// @Summary      Add menu translation
// @Tags         menus
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                          true  "Menu ID"
// @Param        payload  body      service.MenuTranslationRequest  true  "Translation Payload"
// @Success      201      {object}  response.Response{data=service.MenuTranslationResponse}
// @Failure      409      {object}  response.Response
// @Router       /api/menus/{id}/translations [post]
func (h *MenuHandler) AddTranslation(c *gin.Context) {
	var req service.MenuTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	tr, err := h.menuService.AddTranslation(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, tr))
}

// UpdateTranslation updates an existing menu translation
// @Summary      Update menu translation
// @Tags         menus
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id             path      string                          true  "Menu ID"
// @Param        translationId  path      string                          true  "Translation ID"
// @Param        payload        body      service.MenuTranslationRequest  true  "Translation Payload"
// @Success      200            {object}  response.Response{data=service.MenuTranslationResponse}
// @Failure      404            {object}  response.Response
// @Router       /api/menus/{id}/translations/{translationId} [put]
func (h *MenuHandler) UpdateTranslation(c *gin.Context) {
	var req service.MenuTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	tr, err := h.menuService.UpdateTranslation(c.Request.Context(), c.Param("id"), c.Param("translationId"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, tr))
}

// DeleteTranslation removes a menu translation
// @Summary      Delete menu translation
// @Tags         menus
// @Security     BearerAuth
// @Produce      json
// @Param        id             path      string  true  "Menu ID"
// @Param        translationId  path      string  true  "Translation ID"
// @Success      200            {object}  response.Response
// @Failure      404            {object}  response.Response
// @Router       /api/menus/{id}/translations/{translationId} [delete]
func (h *MenuHandler) DeleteTranslation(c *gin.Context) {
	if err := h.menuService.RemoveTranslation(c.Request.Context(), c.Param("id"), c.Param("translationId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Translation deleted successfully"}))
}
