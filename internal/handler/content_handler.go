package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type ContentHandler struct {
	contentService service.ContentService
	auth           *middleware.AuthMiddleware
}

func NewContentHandler(contentService service.ContentService, auth *middleware.AuthMiddleware) *ContentHandler {
	return &ContentHandler{contentService: contentService, auth: auth}
}

func (h *ContentHandler) RegisterRoutes(router *gin.RouterGroup) {
	contents := router.Group("/api/contents")
	{
		contents.GET("", h.auth.RequirePermission("articles:view"), h.ListContents)
		contents.GET("/:id", h.auth.RequirePermission("articles:view"), h.GetContent)
		contents.POST("", h.auth.RequirePermission("articles:create"), h.CreateContent)
		contents.PUT("/:id", h.auth.RequirePermission("articles:update"), h.UpdateContent)
		contents.DELETE("/:id", h.auth.RequirePermission("articles:delete"), h.DeleteContent)
		contents.POST("/:id/translations", h.auth.RequirePermission("articles:update"), h.AddTranslation)
	}
}

// ListContents returns a paginated, optionally category-filtered content list
// @Summary      List contents
// @Tags         contents
// @Security     BearerAuth
// @Produce      json
// @Param        lang         query     string  false  "Language code"
// @Param        category_id  query     string  false  "Filter by category ID"
// @Param        page         query     int     false  "Page number (default 1)"
// @Param        limit        query     int     false  "Items per page (default 20)"
// @Success      200          {object}  response.Response{data=object}
// @Router       /api/contents [get]
func (h *ContentHandler) ListContents(c *gin.Context) {
	p := pagination.Parse(c)

	contents, total, err := h.contentService.FindAll(c.Request.Context(), c.Query("lang"), c.Query("category_id"), p.Page, p.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessPage(http.StatusOK, contents, p.Meta(total)))
}

// GetContent returns one content item
// @Summary      Get content
// @Tags         contents
// @Security     BearerAuth
// @Produce      json
// @Param        id    path      string  true   "Content ID"
// @Param        lang  query     string  false  "Language code"
// @Success      200   {object}  response.Response{data=service.ContentResponse}
// @Failure      404   {object}  response.Response
// @Router       /api/contents/{id} [get]
func (h *ContentHandler) GetContent(c *gin.Context) {
	content, err := h.contentService.FindOne(c.Request.Context(), c.Param("id"), c.Query("lang"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, content))
}

// CreateContent creates a new content item
// @Summary      Create content
// @Tags         contents
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateContentRequest  true  "Create Content Payload"
// @Success      201      {object}  response.Response{data=service.ContentResponse}
// @Failure      409      {object}  response.Response
// @Router       /api/contents [post]
func (h *ContentHandler) CreateContent(c *gin.Context) {
	var req service.CreateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	content, err := h.contentService.Create(c.Request.Context(), req, c.GetString(middleware.CtxUserID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, content))
}

// UpdateContent updates a content item
// @Summary      Update content
// @Tags         contents
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                        true  "Content ID"
// @Param        payload  body      service.UpdateContentRequest  true  "Update Content Payload"
// @Success      200      {object}  response.Response{data=service.ContentResponse}
// @Failure      404      {object}  response.Response
// @Router       /api/contents/{id} [put]
func (h *ContentHandler) UpdateContent(c *gin.Context) {
	var req service.UpdateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	content, err := h.contentService.Update(c.Request.Context(), c.Param("id"), req, c.GetString(middleware.CtxUserID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, content))
}

// DeleteContent deactivates a content item
// @Summary      Delete content
// @Tags         contents
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Content ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/contents/{id} [delete]
func (h *ContentHandler) DeleteContent(c *gin.Context) {
	if err := h.contentService.Remove(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Content deleted successfully"}))
}

// AddTranslation adds a content translation
// @Summary      Add content translation
// @Tags         contents
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                             true  "Content ID"
// @Param        payload  body      service.ContentTranslationRequest  true  "Translation Payload"
// @Success      201      {object}  response.Response{data=model.ContentTranslation}
// @Failure      409      {object}  response.Response
// @Router       /api/contents/{id}/translations [post]
func (h *ContentHandler) AddTranslation(c *gin.Context) {
	var req service.ContentTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	tr, err := h.contentService.AddTranslation(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, tr))
}
