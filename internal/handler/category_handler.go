package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryService service.CategoryService
	auth            *middleware.AuthMiddleware
}

func NewCategoryHandler(categoryService service.CategoryService, auth *middleware.AuthMiddleware) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, auth: auth}
}

func (h *CategoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	categories := router.Group("/api/categories")
	{
		categories.GET("", h.auth.RequirePermission("categories:view"), h.ListCategories)
		categories.GET("/:id", h.auth.RequirePermission("categories:view"), h.GetCategory)
		categories.GET("/slug/:slug", h.auth.RequirePermission("categories:view"), h.GetCategoryBySlug)
		categories.POST("", h.auth.RequirePermission("categories:create"), h.CreateCategory)
		categories.PUT("/:id", h.auth.RequirePermission("categories:update"), h.UpdateCategory)
		categories.DELETE("/:id", h.auth.RequirePermission("categories:delete"), h.DeleteCategory)
		categories.POST("/:id/translations", h.auth.RequirePermission("categories:update"), h.AddTranslation)
	}
}

// ListCategories returns the active category forest, localized
// @Summary      List categories
// @Tags         categories
// @Security     BearerAuth
// @Produce      json
// @Param        lang  query     string  false  "Language code for localized names"
// @Success      200   {object}  response.Response{data=[]service.CategoryResponse}
// @Router       /api/categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.FindAll(c.Request.Context(), c.Query("lang"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, categories))
}

// GetCategory returns one category with parent and children
// @Summary      Get category
// @Tags         categories
// @Security     BearerAuth
// @Produce      json
// @Param        id    path      string  true   "Category ID"
// @Param        lang  query     string  false  "Language code"
// @Success      200   {object}  response.Response{data=service.CategoryResponse}
// @Failure      404   {object}  response.Response
// @Router       /api/categories/{id} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	category, err := h.categoryService.FindOne(c.Request.Context(), c.Param("id"), c.Query("lang"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, category))
}

// GetCategoryBySlug resolves a category by its slug
// @Summary      Get category by slug
// @Tags         categories
// @Security     BearerAuth
// @Produce      json
// @Param        slug  path      string  true   "Category slug"
// @Param        lang  query     string  false  "Language code"
// @Success      200   {object}  response.Response{data=service.CategoryResponse}
// @Failure      404   {object}  response.Response
// @Router       /api/categories/slug/{slug} [get]
func (h *CategoryHandler) GetCategoryBySlug(c *gin.Context) {
	category, err := h.categoryService.FindBySlug(c.Request.Context(), c.Param("slug"), c.Query("lang"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, category))
}

// CreateCategory creates a new category
// @Summary      Create category
// @Tags         categories
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateCategoryRequest  true  "Create Category Payload"
// @Success      201      {object}  response.Response{data=service.CategoryResponse}
// @Failure      409      {object}  response.Response
// @Router       /api/categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req service.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), req, c.GetString(middleware.CtxUserID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, category))
}

// UpdateCategory updates a category
// @Summary      Update category
// @Tags         categories
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                         true  "Category ID"
// @Param        payload  body      service.UpdateCategoryRequest  true  "Update Category Payload"
// @Success      200      {object}  response.Response{data=service.CategoryResponse}
// @Failure      404      {object}  response.Response
// @Router       /api/categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	var req service.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), c.Param("id"), req, c.GetString(middleware.CtxUserID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, category))
}

// DeleteCategory deactivates a childless category
// @Summary      Delete category
// @Tags         categories
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Category ID"
// @Success      200  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	if err := h.categoryService.Remove(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Category deleted successfully"}))
}

// AddTranslation adds a category translation
// @Summary      Add category translation
// @Tags         categories
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                              true  "Category ID"
// @Param        payload  body      service.CategoryTranslationRequest  true  "Translation Payload"
// @Success      201      {object}  response.Response{data=model.CategoryTranslation}
// @Failure      409      {object}  response.Response
// @Router       /api/categories/{id}/translations [post]
func (h *CategoryHandler) AddTranslation(c *gin.Context) {
	var req service.CategoryTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	tr, err := h.categoryService.AddTranslation(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, tr))
}
