package service

import (
	"errors"
	"time"

	"github.com/roastline/roastline-backend/internal/app/model"
	"github.com/roastline/roastline-backend/internal/app/repository"
	"github.com/roastline/roastline-backend/internal/websocket"
	"github.com/roastline/roastline-backend/pkg/logger"
	"gorm.io/gorm"
)

type NotificationService interface {
	Dispatch(productID uint, message string) (*model.Notification, error)
	List(limit, offset int) ([]model.Notification, int64, error)
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
	productRepo      repository.ProductRepository
	hub              *websocket.Hub
}

// NewNotificationService wires the sink. The hub may be nil; dispatch then
// records the notification without a live push.
func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	productRepo repository.ProductRepository,
	hub *websocket.Hub,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		productRepo:      productRepo,
		hub:              hub,
	}
}

// Dispatch records a product-keyed message and pushes it to connected
// subscribers. Fire-and-forget: delivery is best effort, the durable record
// is the source of truth.
func (s *notificationService) Dispatch(productID uint, message string) (*model.Notification, error) {
	logger.Info("Dispatching notification", map[string]interface{}{
		"product_id": productID,
	})

	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot dispatch notification: product not found", map[string]interface{}{
				"product_id": productID,
			})
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	notification := &model.Notification{
		ProductID:    productID,
		Message:      message,
		DispatchedAt: time.Now(),
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		logger.Error("Failed to store notification", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}

	// Re-read with the product joined so both the broadcast payload and the
	// response carry product details, not just the foreign key.
	stored, err := s.notificationRepo.FindByID(notification.ID)
	if err != nil {
		logger.Error("Failed to reload notification after create", err, map[string]interface{}{
			"notification_id": notification.ID,
		})
		return nil, err
	}

	s.hub.Broadcast("product_notification", stored)

	logger.Info("Notification dispatched", map[string]interface{}{
		"notification_id": stored.ID,
		"product_id":      productID,
	})
	return stored, nil
}

func (s *notificationService) List(limit, offset int) ([]model.Notification, int64, error) {
	logger.Debug("Fetching notifications", map[string]interface{}{
		"limit":  limit,
		"offset": offset,
	})
	return s.notificationRepo.FindAll(limit, offset)
}
