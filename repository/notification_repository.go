package repository

import (
	"github.com/lehar2932-art/tiffin-testing/entity"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	DB *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

func (r *NotificationRepository) Create(n *entity.Notification) error {
	return r.DB.Create(n).Error
}

func (r *NotificationRepository) ListForUser(userID uint, unreadOnly bool, page, limit int) ([]entity.Notification, int64, error) {
	q := r.DB.Model(&entity.Notification{}).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []entity.Notification
	err := q.Order("id DESC").Limit(limit).Offset((page - 1) * limit).Find(&items).Error
	return items, total, err
}

func (r *NotificationRepository) UnreadCount(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkRead flips the read flag for the given ids, scoped to the owner so a
// user can never touch someone else's notifications.
func (r *NotificationRepository) MarkRead(userID uint, ids []uint) error {
	return r.DB.Model(&entity.Notification{}).
		Where("user_id = ? AND id IN ?", userID, ids).
		Update("is_read", true).Error
}

func (r *NotificationRepository) MarkAllRead(userID uint) error {
	return r.DB.Model(&entity.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}
