package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	settingsService service.SettingsService
	auth            *middleware.AuthMiddleware
}

func NewSettingsHandler(settingsService service.SettingsService, auth *middleware.AuthMiddleware) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService, auth: auth}
}

func (h *SettingsHandler) RegisterRoutes(router *gin.RouterGroup) {
	settings := router.Group("/api/settings")
	{
		settings.GET("", h.auth.RequirePermission("settings:view"), h.ListSettings)
		settings.GET("/map", h.auth.RequirePermission("settings:view"), h.GetSettingsMap)
		settings.GET("/:key", h.auth.RequirePermission("settings:view"), h.GetSetting)
	}
}

// ListSettings returns all settings rows
// @Summary      List settings
// @Tags         settings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.Setting}
// @Router       /api/settings [get]
func (h *SettingsHandler) ListSettings(c *gin.Context) {
	settings, err := h.settingsService.FindAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, settings))
}

// GetSettingsMap returns settings flattened to a key/value map
// @Summary      Settings as map
// @Tags         settings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=map[string]string}
// @Router       /api/settings/map [get]
func (h *SettingsHandler) GetSettingsMap(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, settings))
}

// GetSetting returns one setting by key
// @Summary      Get setting
// @Tags         settings
// @Security     BearerAuth
// @Produce      json
// @Param        key  path      string  true  "Setting key"
// @Success      200  {object}  response.Response{data=model.Setting}
// @Failure      404  {object}  response.Response
// @Router       /api/settings/{key} [get]
func (h *SettingsHandler) GetSetting(c *gin.Context) {
	setting, err := h.settingsService.FindByKey(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, setting))
}
