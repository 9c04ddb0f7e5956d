package service

import (
	"context"
	"errors"

	"backend/internal/model"
	"backend/pkg/apperror"
	"backend/pkg/i18n"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Slug        string  `json:"slug" binding:"required"`
	Description string  `json:"description"`
	ParentID    *string `json:"parent_id"`
	SortOrder   int     `json:"sort_order"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	SortOrder   *int    `json:"sort_order"`
	IsActive    *bool   `json:"is_active"`
}

type CategoryTranslationRequest struct {
	LanguageCode string `json:"language_code" binding:"required"`
	Name         string `json:"name"`
	Description  string `json:"description"`
}

type CategoryResponse struct {
	ID           string                      `json:"id"`
	Slug         string                      `json:"slug"`
	Name         string                      `json:"name"`
	Description  string                      `json:"description"`
	ParentID     *string                     `json:"parent_id,omitempty"`
	Parent       *CategoryResponse           `json:"parent,omitempty"`
	SortOrder    int                         `json:"sort_order"`
	IsActive     bool                        `json:"is_active"`
	ContentCount int                         `json:"content_count"`
	Children     []CategoryResponse          `json:"children,omitempty"`
	Translations []model.CategoryTranslation `json:"translations,omitempty"`
}

// --- Interface ---

type CategoryService interface {
	FindAll(ctx context.Context, lang string) ([]CategoryResponse, error)
	FindOne(ctx context.Context, id string, lang string) (*CategoryResponse, error)
	FindBySlug(ctx context.Context, slug string, lang string) (*CategoryResponse, error)
	Create(ctx context.Context, req CreateCategoryRequest, actorID string) (*CategoryResponse, error)
	Update(ctx context.Context, id string, req UpdateCategoryRequest, actorID string) (*CategoryResponse, error)
	Remove(ctx context.Context, id string, actorID string) error
	AddTranslation(ctx context.Context, categoryID string, req CategoryTranslationRequest) (*model.CategoryTranslation, error)
}

type categoryService struct {
	db    *gorm.DB
	audit AuditService
}

func NewCategoryService(db *gorm.DB, audit AuditService) CategoryService {
	return &categoryService{db: db, audit: audit}
}

// --- Implementation ---

func (s *categoryService) FindAll(ctx context.Context, lang string) ([]CategoryResponse, error) {
	var categories []model.Category
	err := s.db.WithContext(ctx).
		Where("parent_id IS NULL AND is_active = ?", true).
		Preload("Children", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("sort_order asc, name asc")
		}).
		Preload("Children.Translations").
		Preload("Translations").
		Preload("Contents", "is_active = ?", true).
		Order("sort_order asc, name asc").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}

	res := make([]CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		res = append(res, toCategoryResponse(cat, lang))
	}
	return res, nil
}

func (s *categoryService) FindOne(ctx context.Context, id string, lang string) (*CategoryResponse, error) {
	catID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.Validation("invalid category id '%s'", id)
	}
	return s.findOneWhere(ctx, "id = ?", catID, lang)
}

func (s *categoryService) FindBySlug(ctx context.Context, slug string, lang string) (*CategoryResponse, error) {
	return s.findOneWhere(ctx, "slug = ?", slug, lang)
}

func (s *categoryService) findOneWhere(ctx context.Context, query string, arg interface{}, lang string) (*CategoryResponse, error) {
	var cat model.Category
	err := s.db.WithContext(ctx).
		Where(query, arg).
		Where("is_active = ?", true).
		Preload("Parent.Translations").
		Preload("Children", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("sort_order asc, name asc")
		}).
		Preload("Children.Translations").
		Preload("Translations").
		Preload("Contents", "is_active = ?", true).
		First(&cat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("category not found")
		}
		return nil, err
	}

	res := toCategoryResponse(cat, lang)
	if cat.Parent != nil {
		parent := toCategoryResponse(*cat.Parent, lang)
		res.Parent = &parent
	}
	return &res, nil
}

func (s *categoryService) Create(ctx context.Context, req CreateCategoryRequest, actorID string) (*CategoryResponse, error) {
	var existing model.Category
	if err := s.db.WithContext(ctx).First(&existing, "slug = ?", req.Slug).Error; err == nil {
		return nil, apperror.Conflict("category slug '%s' already exists", req.Slug)
	}

	cat := model.Category{
		ID:          uuid.New(),
		Slug:        req.Slug,
		Name:        req.Name,
		Description: req.Description,
		SortOrder:   req.SortOrder,
		IsActive:    true,
	}
	if req.ParentID != nil && *req.ParentID != "" {
		parentID, err := uuid.Parse(*req.ParentID)
		if err != nil {
			return nil, apperror.Validation("invalid parent id '%s'", *req.ParentID)
		}
		cat.ParentID = &parentID
	}

	if err := s.db.WithContext(ctx).Create(&cat).Error; err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actorID, model.ActionCreateCategory, cat.ID.String(), cat.Name, req)
	res := toCategoryResponse(cat, "")
	return &res, nil
}

func (s *categoryService) Update(ctx context.Context, id string, req UpdateCategoryRequest, actorID string) (*CategoryResponse, error) {
	catID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.Validation("invalid category id '%s'", id)
	}

	var cat model.Category
	if err := s.db.WithContext(ctx).First(&cat, "id = ?", catID).Error; err != nil {
		return nil, apperror.NotFound("category %s", id)
	}

	if req.Name != nil {
		cat.Name = *req.Name
	}
	if req.Description != nil {
		cat.Description = *req.Description
	}
	if req.SortOrder != nil {
		cat.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		cat.IsActive = *req.IsActive
	}

	if err := s.db.WithContext(ctx).Save(&cat).Error; err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actorID, model.ActionUpdateCategory, id, cat.Name, req)
	return s.FindOne(ctx, id, "")
}

func (s *categoryService) Remove(ctx context.Context, id string, actorID string) error {
	catID, err := uuid.Parse(id)
	if err != nil {
		return apperror.Validation("invalid category id '%s'", id)
	}

	var cat model.Category
	if err := s.db.WithContext(ctx).First(&cat, "id = ?", catID).Error; err != nil {
		return apperror.NotFound("category %s", id)
	}

	var children int64
	if err := s.db.WithContext(ctx).Model(&model.Category{}).
		Where("parent_id = ? AND is_active = ?", catID, true).
		Count(&children).Error; err != nil {
		return err
	}
	if children > 0 {
		return apperror.Conflict("cannot delete category with children")
	}

	// Soft deactivation; contents keep their reference.
	if err := s.db.WithContext(ctx).Model(&cat).Update("is_active", false).Error; err != nil {
		return err
	}

	s.audit.Record(ctx, actorID, model.ActionDeleteCategory, id, cat.Name, nil)
	return nil
}

func (s *categoryService) AddTranslation(ctx context.Context, categoryID string, req CategoryTranslationRequest) (*model.CategoryTranslation, error) {
	catID, err := uuid.Parse(categoryID)
	if err != nil {
		return nil, apperror.Validation("invalid category id '%s'", categoryID)
	}

	var cat model.Category
	if err := s.db.WithContext(ctx).First(&cat, "id = ?", catID).Error; err != nil {
		return nil, apperror.NotFound("category %s", categoryID)
	}

	var existing model.CategoryTranslation
	err = s.db.WithContext(ctx).
		First(&existing, "category_id = ? AND language_code = ?", catID, req.LanguageCode).Error
	if err == nil {
		return nil, apperror.Conflict("translation for language '%s' already exists", req.LanguageCode)
	}

	tr := model.CategoryTranslation{
		ID:           uuid.New(),
		CategoryID:   catID,
		LanguageCode: req.LanguageCode,
		Name:         req.Name,
		Description:  req.Description,
		IsActive:     true,
	}
	if err := s.db.WithContext(ctx).Create(&tr).Error; err != nil {
		return nil, err
	}
	return &tr, nil
}

// --- Helpers ---

// toCategoryResponse applies the translation overlay recursively: the
// category, its parent and each child carry independent overlays.
func toCategoryResponse(cat model.Category, lang string) CategoryResponse {
	res := CategoryResponse{
		ID:           cat.ID.String(),
		Slug:         cat.Slug,
		Name:         cat.Name,
		Description:  cat.Description,
		SortOrder:    cat.SortOrder,
		IsActive:     cat.IsActive,
		ContentCount: len(cat.Contents),
	}
	if cat.ParentID != nil {
		pid := cat.ParentID.String()
		res.ParentID = &pid
	}

	if lang == "" {
		res.Translations = cat.Translations
	} else if tr, ok := i18n.Pick(cat.Translations, lang); ok {
		res.Name = i18n.Override(tr.Name, cat.Name)
		res.Description = i18n.Override(tr.Description, cat.Description)
	}

	for _, child := range cat.Children {
		res.Children = append(res.Children, toCategoryResponse(child, lang))
	}
	return res
}
