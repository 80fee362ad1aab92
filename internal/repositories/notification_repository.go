package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	errs "sitebid.com/sitebid/internal/errors"
	model "sitebid.com/sitebid/internal/models"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

// ListForUser returns the user's unexpired notifications, newest first.
func (r *NotificationRepository) ListForUser(ctx context.Context, userID string, now time.Time, limit int) ([]model.Notification, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ? AND expires_at > ?", userID, now).
		Order("created_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var notifications []model.Notification
	err := query.Find(&notifications).Error
	return notifications, err
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID string) error {
	res := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrNotificationNotFound
	}
	return nil
}

// PurgeExpired removes rows past their TTL.
func (r *NotificationRepository) PurgeExpired(ctx context.Context, now time.Time) error {
	return r.db.WithContext(ctx).
		Delete(&model.Notification{}, "expires_at <= ?", now).Error
}
