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

type CreateLabelRequest struct {
	Key          string `json:"key" binding:"required"`
	DefaultValue string `json:"default_value" binding:"required"`
	Description  string `json:"description"`
}

type UpdateLabelRequest struct {
	Key          *string `json:"key"`
	DefaultValue *string `json:"default_value"`
	Description  *string `json:"description"`
	IsActive     *bool   `json:"is_active"`
}

type LabelTranslationRequest struct {
	LanguageCode string `json:"language_code" binding:"required"`
	Value        string `json:"value" binding:"required"`
}

// --- Interface ---

type LabelService interface {
	FindAll(ctx context.Context) ([]model.Label, error)
	FindOne(ctx context.Context, id string) (*model.Label, error)
	// FindByLanguage flattens active labels into a key→effective-value map
	// for the requested language, falling back to each label's default value.
	FindByLanguage(ctx context.Context, lang string) (map[string]string, error)
	Create(ctx context.Context, req CreateLabelRequest, actorID string) (*model.Label, error)
	Update(ctx context.Context, id string, req UpdateLabelRequest, actorID string) (*model.Label, error)
	Remove(ctx context.Context, id string, actorID string) error
	AddTranslation(ctx context.Context, labelID string, req LabelTranslationRequest) (*model.LabelTranslation, error)
	UpdateTranslation(ctx context.Context, labelID, translationID string, req LabelTranslationRequest) (*model.LabelTranslation, error)
	RemoveTranslation(ctx context.Context, labelID, translationID string) error
}

type labelService struct {
	db    *gorm.DB
	audit AuditService
}

func NewLabelService(db *gorm.DB, audit AuditService) LabelService {
	return &labelService{db: db, audit: audit}
}

// --- Implementation ---

func (s *labelService) FindAll(ctx context.Context) ([]model.Label, error) {
	var labels []model.Label
	err := s.db.WithContext(ctx).
		Preload("Translations").
		Order("key asc").
		Find(&labels).Error
	if err != nil {
		return nil, err
	}
	return labels, nil
}

func (s *labelService) FindOne(ctx context.Context, id string) (*model.Label, error) {
	labelID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.Validation("invalid label id '%s'", id)
	}

	var label model.Label
	err = s.db.WithContext(ctx).
		Preload("Translations").
		First(&label, "id = ?", labelID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("label %s", id)
		}
		return nil, err
	}
	return &label, nil
}

func (s *labelService) FindByLanguage(ctx context.Context, lang string) (map[string]string, error) {
	if lang == "" {
		lang = i18n.DefaultLanguage
	}

	var labels []model.Label
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Preload("Translations").
		Find(&labels).Error
	if err != nil {
		return nil, err
	}

	result := make(map[string]string, len(labels))
	for _, label := range labels {
		value := label.DefaultValue
		if tr, ok := i18n.Pick(label.Translations, lang); ok {
			value = i18n.Override(tr.Value, label.DefaultValue)
		}
		result[label.Key] = value
	}
	return result, nil
}

func (s *labelService) Create(ctx context.Context, req CreateLabelRequest, actorID string) (*model.Label, error) {
	var existing model.Label
	if err := s.db.WithContext(ctx).First(&existing, "key = ?", req.Key).Error; err == nil {
		return nil, apperror.Conflict("label key '%s' already exists", req.Key)
	}

	label := model.Label{
		ID:           uuid.New(),
		Key:          req.Key,
		DefaultValue: req.DefaultValue,
		Description:  req.Description,
		IsActive:     true,
	}
	if err := s.db.WithContext(ctx).Create(&label).Error; err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actorID, model.ActionCreateLabel, label.ID.String(), label.Key, req)
	return &label, nil
}

func (s *labelService) Update(ctx context.Context, id string, req UpdateLabelRequest, actorID string) (*model.Label, error) {
	label, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Key != nil && *req.Key != label.Key {
		var existing model.Label
		if err := s.db.WithContext(ctx).First(&existing, "key = ? AND id <> ?", *req.Key, label.ID).Error; err == nil {
			return nil, apperror.Conflict("label key '%s' already exists", *req.Key)
		}
		label.Key = *req.Key
	}
	if req.DefaultValue != nil {
		label.DefaultValue = *req.DefaultValue
	}
	if req.Description != nil {
		label.Description = *req.Description
	}
	if req.IsActive != nil {
		label.IsActive = *req.IsActive
	}

	if err := s.db.WithContext(ctx).Save(label).Error; err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actorID, model.ActionUpdateLabel, id, label.Key, req)
	return label, nil
}

func (s *labelService) Remove(ctx context.Context, id string, actorID string) error {
	label, err := s.FindOne(ctx, id)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("label_id = ?", label.ID).Delete(&model.LabelTranslation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Label{}, "id = ?", label.ID).Error
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, actorID, model.ActionDeleteLabel, id, label.Key, nil)
	return nil
}

func (s *labelService) AddTranslation(ctx context.Context, labelID string, req LabelTranslationRequest) (*model.LabelTranslation, error) {
	label, err := s.FindOne(ctx, labelID)
	if err != nil {
		return nil, err
	}

	var existing model.LabelTranslation
	err = s.db.WithContext(ctx).
		First(&existing, "label_id = ? AND language_code = ?", label.ID, req.LanguageCode).Error
	if err == nil {
		return nil, apperror.Conflict("translation for language '%s' already exists", req.LanguageCode)
	}

	tr := model.LabelTranslation{
		ID:           uuid.New(),
		LabelID:      label.ID,
		LanguageCode: req.LanguageCode,
		Value:        req.Value,
		IsActive:     true,
	}
	if err := s.db.WithContext(ctx).Create(&tr).Error; err != nil {
		return nil, err
	}
	return &tr, nil
}

func (s *labelService) UpdateTranslation(ctx context.Context, labelID, translationID string, req LabelTranslationRequest) (*model.LabelTranslation, error) {
	tr, err := s.findTranslation(ctx, labelID, translationID)
	if err != nil {
		return nil, err
	}

	if req.LanguageCode != tr.LanguageCode {
		var other model.LabelTranslation
		err = s.db.WithContext(ctx).
			First(&other, "label_id = ? AND language_code = ? AND id <> ?", tr.LabelID, req.LanguageCode, tr.ID).Error
		if err == nil {
			return nil, apperror.Conflict("translation for language '%s' already exists", req.LanguageCode)
		}
		tr.LanguageCode = req.LanguageCode
	}
	tr.Value = req.Value

	if err := s.db.WithContext(ctx).Save(tr).Error; err != nil {
		return nil, err
	}
	return tr, nil
}

func (s *labelService) RemoveTranslation(ctx context.Context, labelID, translationID string) error {
	tr, err := s.findTranslation(ctx, labelID, translationID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&model.LabelTranslation{}, "id = ?", tr.ID).Error
}

func (s *labelService) findTranslation(ctx context.Context, labelID, translationID string) (*model.LabelTranslation, error) {
	lid, err := uuid.Parse(labelID)
	if err != nil {
		return nil, apperror.Validation("invalid label id '%s'", labelID)
	}
	tid, err := uuid.Parse(translationID)
	if err != nil {
		return nil, apperror.Validation("invalid translation id '%s'", translationID)
	}

	var tr model.LabelTranslation
	err = s.db.WithContext(ctx).First(&tr, "id = ? AND label_id = ?", tid, lid).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("translation %s", translationID)
		}
		return nil, err
	}
	return &tr, nil
}
