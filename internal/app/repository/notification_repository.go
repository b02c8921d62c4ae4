package repository

import (
	"github.com/roastline/roastline-backend/internal/app/model"
	"github.com/roastline/roastline-backend/pkg/logger"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(notification *model.Notification) error
	FindByID(id uint) (*model.Notification, error)
	FindAll(limit, offset int) ([]model.Notification, int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(notification *model.Notification) error {
	logger.Debug("Creating notification in database", map[string]interface{}{
		"product_id": notification.ProductID,
	})

	if err := r.db.Create(notification).Error; err != nil {
		logger.Error("Failed to create notification in database", err, map[string]interface{}{
			"product_id": notification.ProductID,
		})
		return err
	}

	logger.Debug("Notification created in database", map[string]interface{}{
		"notification_id": notification.ID,
		"product_id":      notification.ProductID,
	})
	return nil
}

func (r *notificationRepository) FindByID(id uint) (*model.Notification, error) {
	var notification model.Notification
	if err := r.db.Preload("Product").First(&notification, id).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepository) FindAll(limit, offset int) ([]model.Notification, int64, error) {
	var total int64
	if err := r.db.Model(&model.Notification{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.Preload("Product").Order("dispatched_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var notifications []model.Notification
	if err := query.Find(&notifications).Error; err != nil {
		logger.Error("Failed to find notifications in database", err, nil)
		return nil, 0, err
	}
	return notifications, total, nil
}
