package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/eventsphere-backend/internal/models"
	"github.com/sefazor/eventsphere-backend/internal/service"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
	logger              *zap.Logger
}

func NewNotificationHandler(notificationService *service.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		logger:              logger,
	}
}

func (h *NotificationHandler) GetNotifications(c *fiber.Ctx) error {
	notifications, err := h.notificationService.GetNotifications(c.UserContext(), currentUser(c).ID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(notifications, "Notifications retrieved successfully"))
}

func (h *NotificationHandler) GetUnread(c *fiber.Ctx) error {
	notifications, err := h.notificationService.GetUnreadNotifications(c.UserContext(), currentUser(c).ID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(notifications, "Unread notifications retrieved successfully"))
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid notification ID")
	}

	notification, err := h.notificationService.GetNotification(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	// Başkasının bildirimi
	if notification.UserID != currentUser(c).ID {
		return forbidden(c)
	}

	if err := h.notificationService.MarkAsRead(c.UserContext(), id); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(nil, "Notification marked as read"))
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	updated, err := h.notificationService.MarkAllAsRead(c.UserContext(), currentUser(c).ID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(models.CountResponse{Count: updated}, "Notifications marked as read"))
}
