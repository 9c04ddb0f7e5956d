package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"backend/internal/model"
	ws "backend/internal/websocket"
	"backend/pkg/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateNotificationRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Type   string `json:"type" binding:"required,oneof=info warning error success"`
	Title  string `json:"title" binding:"required"`
	Body   string `json:"body"`
}

type NotificationService interface {
	FindByUser(ctx context.Context, userID string) ([]model.Notification, error)
	MarkAsRead(ctx context.Context, id string, userID string) (*model.Notification, error)
	Create(ctx context.Context, req CreateNotificationRequest) (*model.Notification, error)
}

type notificationService struct {
	db  *gorm.DB
	hub *ws.Hub
}

// NewNotificationService wires persistence plus realtime push: created
// notifications are pushed to the recipient's open websocket connections.
func NewNotificationService(db *gorm.DB, hub *ws.Hub) NotificationService {
	return &notificationService{db: db, hub: hub}
}

func (s *notificationService) FindByUser(ctx context.Context, userID string) ([]model.Notification, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperror.Validation("invalid user id '%s'", userID)
	}

	var notifications []model.Notification
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", uid, true).
		Order("created_at desc").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, id string, userID string) (*model.Notification, error) {
	nid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.Validation("invalid notification id '%s'", id)
	}
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperror.Validation("invalid user id '%s'", userID)
	}

	var notification model.Notification
	err = s.db.WithContext(ctx).
		First(&notification, "id = ? AND user_id = ?", nid, uid).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("notification %s", id)
		}
		return nil, err
	}

	now := time.Now()
	notification.IsRead = true
	notification.ReadAt = &now
	if err := s.db.WithContext(ctx).Save(&notification).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

func (s *notificationService) Create(ctx context.Context, req CreateNotificationRequest) (*model.Notification, error) {
	uid, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, apperror.Validation("invalid user id '%s'", req.UserID)
	}

	notification := model.Notification{
		ID:     uuid.New(),
		UserID: uid,
		Type:   req.Type,
		Title:  req.Title,
		Body:   req.Body,
	}
	notification.IsActive = true

	if err := s.db.WithContext(ctx).Create(&notification).Error; err != nil {
		return nil, err
	}

	if s.hub != nil {
		if payload, err := json.Marshal(notification); err == nil {
			s.hub.SendToUser(uid.String(), payload)
		}
	}
	return &notification, nil
}
