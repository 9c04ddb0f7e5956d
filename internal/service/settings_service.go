package service

import (
	"context"
	"errors"

	"backend/internal/model"
	"backend/pkg/apperror"

	"gorm.io/gorm"
)

type SettingsService interface {
	FindAll(ctx context.Context) ([]model.Setting, error)
	FindByKey(ctx context.Context, key string) (*model.Setting, error)
	// GetSettings returns active settings flattened to a key→value map.
	GetSettings(ctx context.Context) (map[string]string, error)
}

type settingsService struct {
	db *gorm.DB
}

func NewSettingsService(db *gorm.DB) SettingsService {
	return &settingsService{db: db}
}

func (s *settingsService) FindAll(ctx context.Context) ([]model.Setting, error) {
	var settings []model.Setting
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("key asc").
		Find(&settings).Error
	if err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *settingsService) FindByKey(ctx context.Context, key string) (*model.Setting, error) {
	var setting model.Setting
	err := s.db.WithContext(ctx).
		First(&setting, "key = ? AND is_active = ?", key, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("setting '%s'", key)
		}
		return nil, err
	}
	return &setting, nil
}

func (s *settingsService) GetSettings(ctx context.Context) (map[string]string, error) {
	settings, err := s.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make(map[string]string, len(settings))
	for _, setting := range settings {
		result[setting.Key] = setting.Value
	}
	return result, nil
}
