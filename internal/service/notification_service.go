package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sefazor/eventsphere-backend/internal/models"
	"github.com/sefazor/eventsphere-backend/internal/realtime"
	"github.com/sefazor/eventsphere-backend/internal/repository"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type ConnectionLookup interface {
	ConnectionsFor(userID uint) []string
}

type Pusher interface {
	Push(ctx context.Context, connID, event string, payload interface{}) error
}

type NotificationService struct {
	notificationRepo *repository.NotificationRepository
	connections      ConnectionLookup
	pusher           Pusher
	logger           *zap.Logger
}

func NewNotificationService(notificationRepo *repository.NotificationRepository, connections ConnectionLookup, pusher Pusher, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		connections:      connections,
		pusher:           pusher,
		logger:           logger,
	}
}

// Notify persists an unread notification and pushes the message to every live
// connection of the user. A connection that vanished between lookup and push
// is logged and skipped.
func (s *NotificationService) Notify(ctx context.Context, userID uint, message string, data map[string]interface{}) (*models.Notification, error) {
	notification := &models.Notification{
		UserID:  userID,
		Message: message,
		IsRead:  false,
	}

	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to encode notification data: %w", err)
		}
		notification.Data = datatypes.JSON(raw)
	}

	if err := s.notificationRepo.Add(ctx, notification); err != nil {
		return nil, err
	}

	for _, connID := range s.connections.ConnectionsFor(userID) {
		if err := s.pusher.Push(ctx, connID, realtime.EventReceiveNotification, message); err != nil {
			s.logger.Warn("failed to push notification",
				zap.Uint("user_id", userID),
				zap.String("conn_id", connID),
				zap.Error(err),
			)
		}
	}

	return notification, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, notificationID uint) error {
	notification, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return notFound(err, "notification", notificationID)
	}

	if notification.IsRead {
		return nil
	}
	notification.IsRead = true
	return s.notificationRepo.Update(ctx, notification)
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uint) (int64, error) {
	return s.notificationRepo.MarkAllAsRead(ctx, userID)
}

func (s *NotificationService) GetUnreadNotifications(ctx context.Context, userID uint) ([]models.Notification, error) {
	return s.notificationRepo.GetUnread(ctx, userID)
}

func (s *NotificationService) GetNotifications(ctx context.Context, userID uint) ([]models.Notification, error) {
	return s.notificationRepo.GetByUser(ctx, userID)
}

// GetNotification is used by the handler to check ownership before marking.
func (s *NotificationService) GetNotification(ctx context.Context, notificationID uint) (*models.Notification, error) {
	notification, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return nil, notFound(err, "notification", notificationID)
	}
	return notification, nil
}
