package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationService service.NotificationService
	auth                *middleware.AuthMiddleware
}

func NewNotificationHandler(notificationService service.NotificationService, auth *middleware.AuthMiddleware) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService, auth: auth}
}

func (h *NotificationHandler) RegisterRoutes(router *gin.RouterGroup) {
	notifications := router.Group("/api/notifications")
	{
		notifications.GET("", h.auth.RequireAuth(), h.ListMyNotifications)
		notifications.PUT("/:id/read", h.auth.RequireAuth(), h.MarkAsRead)
		notifications.POST("", h.auth.RequirePermission("users:update"), h.CreateNotification)
	}
}

// ListMyNotifications returns the caller's notifications, newest first
// @Summary      List own notifications
// @Tags         notifications
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.Notification}
// @Failure      401  {object}  response.Response
// @Router       /api/notifications [get]
func (h *NotificationHandler) ListMyNotifications(c *gin.Context) {
	notifications, err := h.notificationService.FindByUser(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, notifications))
}

// MarkAsRead marks one of the caller's notifications as read
// @Summary      Mark notification read
// @Tags         notifications
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Notification ID"
// @Success      200  {object}  response.Response{data=model.Notification}
// @Failure      404  {object}  response.Response
// @Router       /api/notifications/{id}/read [put]
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	notification, err := h.notificationService.MarkAsRead(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, notification))
}

// CreateNotification creates a notification for a user and pushes it over websocket
// @Summary      Create notification
// @Tags         notifications
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateNotificationRequest  true  "Notification Payload"
// @Success      201      {object}  response.Response{data=model.Notification}
// @Failure      400      {object}  response.Response
// @Router       /api/notifications [post]
func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	var req service.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	notification, err := h.notificationService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, notification))
}
