package repositories

import (
	"errors"

	"github.com/noelps-git/tastemates/internal/models"
	apperr "github.com/noelps-git/tastemates/pkg/errors"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// CreateNotification inserts a single per-recipient row. The fan-out engine
// calls this once per recipient; each insert stands alone.
func (r *NotificationRepository) CreateNotification(n *models.Notification) error {
	if err := r.db.Create(n).Error; err != nil {
		return apperr.Wrap(err, apperr.ErrCodeInternalError, "failed to create notification")
	}
	return nil
}

// ListNotifications retrieves the owner's notifications, newest first.
func (r *NotificationRepository) ListNotifications(userID uint, unreadOnly bool, limit int) ([]models.Notification, error) {
	query := r.db.Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	result := query.Order("created_at DESC").Limit(limit).Find(&notifications)

	if result.Error != nil {
		return nil, apperr.Wrap(result.Error, apperr.ErrCodeInternalError, "failed to list notifications")
	}

	return notifications, nil
}

// CountUnread is the authoritative unread count; the cache layer sits in
// front of it.
func (r *NotificationRepository) CountUnread(userID uint) (int64, error) {
	var count int64
	result := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count)

	if result.Error != nil {
		return 0, apperr.Wrap(result.Error, apperr.ErrCodeInternalError, "failed to count unread notifications")
	}

	return count, nil
}

func (r *NotificationRepository) getOwned(notificationID, ownerID uint) (*models.Notification, error) {
	var n models.Notification
	result := r.db.First(&n, notificationID)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.ErrCodeNotFound, "notification not found")
	}
	if result.Error != nil {
		return nil, apperr.Wrap(result.Error, apperr.ErrCodeInternalError, "failed to get notification")
	}

	if n.UserID != ownerID {
		return nil, apperr.New(apperr.ErrCodeForbidden, "this notification belongs to another user")
	}

	return &n, nil
}

// MarkRead marks one of the owner's notifications as read.
func (r *NotificationRepository) MarkRead(notificationID, ownerID uint) error {
	n, err := r.getOwned(notificationID, ownerID)
	if err != nil {
		return err
	}

	if err := r.db.Model(n).Update("is_read", true).Error; err != nil {
		return apperr.Wrap(err, apperr.ErrCodeInternalError, "failed to mark notification read")
	}

	return nil
}

// MarkAllRead flips every unread row owned by ownerID and reports how many.
func (r *NotificationRepository) MarkAllRead(ownerID uint) (int64, error) {
	result := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", ownerID, false).
		Update("is_read", true)

	if result.Error != nil {
		return 0, apperr.Wrap(result.Error, apperr.ErrCodeInternalError, "failed to mark notifications read")
	}

	return result.RowsAffected, nil
}

// DeleteNotification removes one of the owner's notifications.
func (r *NotificationRepository) DeleteNotification(notificationID, ownerID uint) error {
	n, err := r.getOwned(notificationID, ownerID)
	if err != nil {
		return err
	}

	if err := r.db.Delete(n).Error; err != nil {
		return apperr.Wrap(err, apperr.ErrCodeInternalError, "failed to delete notification")
	}

	return nil
}
