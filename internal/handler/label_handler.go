package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type LabelHandler struct {
	labelService service.LabelService
	auth         *middleware.AuthMiddleware
}

func NewLabelHandler(labelService service.LabelService, auth *middleware.AuthMiddleware) *LabelHandler {
	return &LabelHandler{labelService: labelService, auth: auth}
}

func (h *LabelHandler) RegisterRoutes(router *gin.RouterGroup) {
	// Public: clients fetch their UI strings before logging in.
	router.GET("/api/labels/by-language", h.GetLabelsByLanguage)

	labels := router.Group("/api/labels")
	{
		labels.GET("", h.auth.RequireAuth(), h.ListLabels)
		labels.GET("/:id", h.auth.RequireAuth(), h.GetLabel)
		labels.POST("", h.auth.RequirePermission("labels:create"), h.CreateLabel)
		labels.PUT("/:id", h.auth.RequirePermission("labels:update"), h.UpdateLabel)
		labels.DELETE("/:id", h.auth.RequirePermission("labels:delete"), h.DeleteLabel)

		labels.POST("/:id/translations", h.auth.RequirePermission("labels:update"), h.AddTranslation)
		labels.PUT("/:id/translations/:translationId", h.auth.RequirePermission("labels:update"), h.UpdateTranslation)
		labels.DELETE("/:id/translations/:translationId", h.auth.RequirePermission("labels:update"), h.DeleteTranslation)
	}
}

// GetLabelsByLanguage returns the effective UI strings for one language
// @Summary      Labels by language
// @Description  Flattens active labels into a key/value map, localized with fallback to default values
// @Tags         labels
// @Produce      json
// @Param        lang  query     string  false  "Language code (default en)"
// @Success      200   {object}  response.Response{data=map[string]string}
// @Router       /api/labels/by-language [get]
func (h *LabelHandler) GetLabelsByLanguage(c *gin.Context) {
	labels, err := h.labelService.FindByLanguage(c.Request.Context(), c.Query("lang"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, labels))
}

// ListLabels returns all labels with their translations
// @Summary      List labels
// @Tags         labels
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.Label}
// @Router       /api/labels [get]
func (h *LabelHandler) ListLabels(c *gin.Context) {
	labels, err := h.labelService.FindAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, labels))
}

// GetLabel returns one label by id
// @Summary      Get label
// @Tags         labels
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Label ID"
// @Success      200  {object}  response.Response{data=model.Label}
// @Failure      404  {object}  response.Response
// @Router       /api/labels/{id} [get]
func (h *LabelHandler) GetLabel(c *gin.Context) {
	label, err := h.labelService.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, label))
}

// CreateLabel creates a new label
// @Summary      Create label
// @Tags         labels
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      service.CreateLabelRequest  true  "Label payload"
// @Success      201      {object}  response.Response{data=model.Label}
// @Failure      409      {object}  response.Response
// @Router       /api/labels [post]
func (h *LabelHandler) CreateLabel(c *gin.Context) {
	var req service.CreateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	label, err := h.labelService.Create(c.Request.Context(), req, c.GetString(middleware.CtxUserID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, label))
}

// UpdateLabel updates a label's key, default value or state
// @Summary      Update label
// @Tags         labels
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                      true  "Label ID"
// @Param        request  body      service.UpdateLabelRequest  true  "Fields to update"
// @Success      200      {object}  response.Response{data=model.Label}
// @Failure      404      {object}  response.Response
// @Router       /api/labels/{id} [put]
func (h *LabelHandler) UpdateLabel(c *gin.Context) {
	var req service.UpdateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	label, err := h.labelService.Update(c.Request.Context(), c.Param("id"), req, c.GetString(middleware.CtxUserID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, label))
}

// DeleteLabel removes a label and its translations
// @Summary      Delete label
// @Tags         labels
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Label ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/labels/{id} [delete]
func (h *LabelHandler) DeleteLabel(c *gin.Context) {
	if err := h.labelService.Remove(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Label deleted successfully"}))
}

// AddTranslation adds a localized value for a label
// @Summary      Add label translation
// @Tags         labels
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                           true  "Label ID"
// @Param        request  body      service.LabelTranslationRequest  true  "Translation payload"
// @Success      201      {object}  response.Response{data=model.LabelTranslation}
// @Failure      409      {object}  response.Response
// @Router       /api/labels/{id}/translations [post]
func (h *LabelHandler) AddTranslation(c *gin.Context) {
	var req service.LabelTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	tr, err := h.labelService.AddTranslation(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, tr))
}

// UpdateTranslation updates a label's localized value
// @Summary      Update label translation
// @Tags         labels
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id             path      string                           true  "Label ID"
// @Param        translationId  path      string                           true  "Translation ID"
// @Param        request        body      service.LabelTranslationRequest  true  "Translation payload"
// @Success      200            {object}  response.Response{data=model.LabelTranslation}
// @Failure      404            {object}  response.Response
// @Router       /api/labels/{id}/translations/{translationId} [put]
func (h *LabelHandler) UpdateTranslation(c *gin.Context) {
	var req service.LabelTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	tr, err := h.labelService.UpdateTranslation(c.Request.Context(), c.Param("id"), c.Param("translationId"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, tr))
}

// DeleteTranslation removes a label's localized value
// @Summary      Delete label translation
// @Tags         labels
// @Security     BearerAuth
// @Produce      json
// @Param        id             path      string  true  "Label ID"
// @Param        translationId  path      string  true  "Translation ID"
// @Success      200            {object}  response.Response
// @Failure      404            {object}  response.Response
// @Router       /api/labels/{id}/translations/{translationId} [delete]
func (h *LabelHandler) DeleteTranslation(c *gin.Context) {
	if err := h.labelService.RemoveTranslation(c.Request.Context(), c.Param("id"), c.Param("translationId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Translation deleted successfully"}))
}
