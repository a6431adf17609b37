package repository

import (
	"context"

	"golang-stock-advisor/internal/entity"

	"gorm.io/gorm"
)

// NotificationRepository manages emitted notifications.
type NotificationRepository interface {
	CreateTx(tx *gorm.DB, notification *entity.Notification) error
	FindByUser(ctx context.Context, userID uint, limit int, unreadOnly bool) ([]entity.Notification, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)
	MarkAsRead(ctx context.Context, id, userID uint) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new GORM-based notification
// repository.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// CreateTx inserts a notification on the caller's transaction handle so
// the insert commits or rolls back with the rest of the alert sequence.
func (r *notificationRepository) CreateTx(tx *gorm.DB, notification *entity.Notification) error {
	return tx.Create(notification).Error
}

// FindByUser returns the user's most recent notifications.
func (r *notificationRepository) FindByUser(ctx context.Context, userID uint, limit int, unreadOnly bool) ([]entity.Notification, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	var notifications []entity.Notification
	if err := q.Order("created_at DESC").Limit(limit).Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// CountUnread returns the number of unread notifications for the user.
func (r *notificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkAsRead flags a notification as read, scoped to its owner. Returns
// the number of rows updated so callers can distinguish not-found.
func (r *notificationRepository) MarkAsRead(ctx context.Context, id, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).Model(&entity.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}
