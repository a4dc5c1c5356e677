package repository

import (
	"context"

	"github.com/sefazor/eventsphere-backend/internal/models"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	*Repository[models.Notification]
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{Repository: NewRepository[models.Notification](db)}
}

func (r *NotificationRepository) GetByUser(ctx context.Context, userID uint) ([]models.Notification, error) {
	return r.GetWhere(ctx, Where("user_id = ?", userID), OrderBy("created_at DESC"))
}

func (r *NotificationRepository) GetUnread(ctx context.Context, userID uint) ([]models.Notification, error) {
	return r.GetWhere(ctx, Where("user_id = ? AND is_read = ?", userID, false), OrderBy("created_at DESC"))
}

func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, userID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}
