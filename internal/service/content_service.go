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

type CreateContentRequest struct {
	Title       string `json:"title" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Body        string `json:"body"`
	CategoryID  string `json:"category_id" binding:"required"`
	IsPublished *bool  `json:"is_published"`
}

type UpdateContentRequest struct {
	Title       *string `json:"title"`
	Body        *string `json:"body"`
	CategoryID  *string `json:"category_id"`
	IsPublished *bool   `json:"is_published"`
	IsActive    *bool   `json:"is_active"`
}

type ContentTranslationRequest struct {
	LanguageCode string `json:"language_code" binding:"required"`
	Title        string `json:"title"`
	Body         string `json:"body"`
}

type ContentResponse struct {
	ID           string                     `json:"id"`
	Slug         string                     `json:"slug"`
	Title        string                     `json:"title"`
	Body         string                     `json:"body"`
	CategoryID   string                     `json:"category_id"`
	CategoryName string                     `json:"category_name,omitempty"`
	IsPublished  bool                       `json:"is_published"`
	IsActive     bool                       `json:"is_active"`
	Translations []model.ContentTranslation `json:"translations,omitempty"`
}

// --- Interface ---

type ContentService interface {
	FindAll(ctx context.Context, lang string, categoryID string, page, limit int) ([]ContentResponse, int64, error)
	FindOne(ctx context.Context, id string, lang string) (*ContentResponse, error)
	Create(ctx context.Context, req CreateContentRequest, actorID string) (*ContentResponse, error)
	Update(ctx context.Context, id string, req UpdateContentRequest, actorID string) (*ContentResponse, error)
	Remove(ctx context.Context, id string, actorID string) error
	AddTranslation(ctx context.Context, contentID string, req ContentTranslationRequest) (*model.ContentTranslation, error)
}

type contentService struct {
	db    *gorm.DB
	audit AuditService
}

func NewContentService(db *gorm.DB, audit AuditService) ContentService {
	return &contentService{db: db, audit: audit}
}

// --- Implementation ---

func (s *contentService) FindAll(ctx context.Context, lang string, categoryID string, page, limit int) ([]ContentResponse, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.Content{}).Where("is_active = ?", true)
	if categoryID != "" {
		catID, err := uuid.Parse(categoryID)
		if err != nil {
			return nil, 0, apperror.Validation("invalid category id '%s'", categoryID)
		}
		query = query.Where("category_id = ?", catID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var contents []model.Content
	offset := (page - 1) * limit
	err := query.
		Preload("Category").
		Preload("Translations").
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&contents).Error
	if err != nil {
		return nil, 0, err
	}

	res := make([]ContentResponse, 0, len(contents))
	for _, c := range contents {
		res = append(res, toContentResponse(c, lang))
	}
	return res, total, nil
}

func (s *contentService) FindOne(ctx context.Context, id string, lang string) (*ContentResponse, error) {
	contentID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.Validation("invalid content id '%s'", id)
	}

	var content model.Content
	err = s.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", contentID, true).
		Preload("Category").
		Preload("Translations").
		First(&content).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("content %s", id)
		}
		return nil, err
	}

	res := toContentResponse(content, lang)
	return &res, nil
}

func (s *contentService) Create(ctx context.Context, req CreateContentRequest, actorID string) (*ContentResponse, error) {
	catID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, apperror.Validation("invalid category id '%s'", req.CategoryID)
	}
	var cat model.Category
	if err := s.db.WithContext(ctx).First(&cat, "id = ? AND is_active = ?", catID, true).Error; err != nil {
		return nil, apperror.NotFound("category %s", req.CategoryID)
	}

	var existing model.Content
	if err := s.db.WithContext(ctx).First(&existing, "slug = ?", req.Slug).Error; err == nil {
		return nil, apperror.Conflict("content slug '%s' already exists", req.Slug)
	}

	content := model.Content{
		ID:         uuid.New(),
		Slug:       req.Slug,
		Title:      req.Title,
		Body:       req.Body,
		CategoryID: catID,
		IsActive:   true,
	}
	if req.IsPublished != nil {
		content.IsPublished = *req.IsPublished
	}

	if err := s.db.WithContext(ctx).Create(&content).Error; err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actorID, model.ActionCreateContent, content.ID.String(), content.Title, req)
	res := toContentResponse(content, "")
	return &res, nil
}

func (s *contentService) Update(ctx context.Context, id string, req UpdateContentRequest, actorID string) (*ContentResponse, error) {
	contentID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.Validation("invalid content id '%s'", id)
	}

	var content model.Content
	if err := s.db.WithContext(ctx).First(&content, "id = ?", contentID).Error; err != nil {
		return nil, apperror.NotFound("content %s", id)
	}

	if req.Title != nil {
		content.Title = *req.Title
	}
	if req.Body != nil {
		content.Body = *req.Body
	}
	if req.CategoryID != nil {
		catID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, apperror.Validation("invalid category id '%s'", *req.CategoryID)
		}
		var cat model.Category
		if err := s.db.WithContext(ctx).First(&cat, "id = ? AND is_active = ?", catID, true).Error; err != nil {
			return nil, apperror.NotFound("category %s", *req.CategoryID)
		}
		content.CategoryID = catID
	}
	if req.IsPublished != nil {
		content.IsPublished = *req.IsPublished
	}
	if req.IsActive != nil {
		content.IsActive = *req.IsActive
	}

	if err := s.db.WithContext(ctx).Save(&content).Error; err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actorID, model.ActionUpdateContent, id, content.Title, req)
	return s.FindOne(ctx, id, "")
}

func (s *contentService) Remove(ctx context.Context, id string, actorID string) error {
	contentID, err := uuid.Parse(id)
	if err != nil {
		return apperror.Validation("invalid content id '%s'", id)
	}

	var content model.Content
	if err := s.db.WithContext(ctx).First(&content, "id = ?", contentID).Error; err != nil {
		return apperror.NotFound("content %s", id)
	}

	if err := s.db.WithContext(ctx).Model(&content).Update("is_active", false).Error; err != nil {
		return err
	}

	s.audit.Record(ctx, actorID, model.ActionDeleteContent, id, content.Title, nil)
	return nil
}

func (s *contentService) AddTranslation(ctx context.Context, contentID string, req ContentTranslationRequest) (*model.ContentTranslation, error) {
	cid, err := uuid.Parse(contentID)
	if err != nil {
		return nil, apperror.Validation("invalid content id '%s'", contentID)
	}

	var content model.Content
	if err := s.db.WithContext(ctx).First(&content, "id = ?", cid).Error; err != nil {
		return nil, apperror.NotFound("content %s", contentID)
	}

	var existing model.ContentTranslation
	err = s.db.WithContext(ctx).
		First(&existing, "content_id = ? AND language_code = ?", cid, req.LanguageCode).Error
	if err == nil {
		return nil, apperror.Conflict("translation for language '%s' already exists", req.LanguageCode)
	}

	tr := model.ContentTranslation{
		ID:           uuid.New(),
		ContentID:    cid,
		LanguageCode: req.LanguageCode,
		Title:        req.Title,
		Body:         req.Body,
		IsActive:     true,
	}
	if err := s.db.WithContext(ctx).Create(&tr).Error; err != nil {
		return nil, err
	}
	return &tr, nil
}

// --- Helpers ---

func toContentResponse(c model.Content, lang string) ContentResponse {
	res := ContentResponse{
		ID:          c.ID.String(),
		Slug:        c.Slug,
		Title:       c.Title,
		Body:        c.Body,
		CategoryID:  c.CategoryID.String(),
		IsPublished: c.IsPublished,
		IsActive:    c.IsActive,
	}
	if c.Category != nil {
		res.CategoryName = c.Category.Name
	}

	if lang == "" {
		res.Translations = c.Translations
	} else if tr, ok := i18n.Pick(c.Translations, lang); ok {
		res.Title = i18n.Override(tr.Title, c.Title)
		res.Body = i18n.Override(tr.Body, c.Body)
	}
	return res
}
