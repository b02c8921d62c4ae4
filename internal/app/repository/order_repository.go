package repository

import (
	"github.com/roastline/roastline-backend/internal/app/model"
	"github.com/roastline/roastline-backend/pkg/logger"
	"gorm.io/gorm"
)

// OrderRepository covers the read side and status updates. Order creation is
// transactional with the cart clear and lives in the service layer.
type OrderRepository interface {
	FindByID(id uint) (*model.Order, error)
	FindAll() ([]model.Order, error)
	UpdateStatus(id uint, status model.OrderStatus) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// preloadOrder loads items with their product join. The product preload is
// Unscoped so a soft-deleted product still renders on historical orders
// instead of dropping the line item.
func (r *orderRepository) preloadOrder() *gorm.DB {
	return r.db.Preload("OrderItems", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_items.id ASC").Preload("Product", func(pdb *gorm.DB) *gorm.DB {
			return pdb.Unscoped()
		})
	})
}

func (r *orderRepository) FindByID(id uint) (*model.Order, error) {
	logger.Debug("Finding order by ID in database", map[string]interface{}{
		"order_id": id,
	})

	var order model.Order
	if err := r.preloadOrder().First(&order, id).Error; err != nil {
		logger.Error("Failed to find order by ID in database", err, map[string]interface{}{
			"order_id": id,
		})
		return nil, err
	}

	logger.Debug("Order found by ID in database", map[string]interface{}{
		"order_id": order.ID,
		"status":   order.Status,
	})
	return &order, nil
}

func (r *orderRepository) FindAll() ([]model.Order, error) {
	logger.Debug("Finding all orders in database", nil)

	var orders []model.Order
	if err := r.preloadOrder().
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		logger.Error("Failed to find orders in database", err, nil)
		return nil, err
	}

	logger.Debug("Orders found in database", map[string]interface{}{
		"count": len(orders),
	})
	return orders, nil
}

func (r *orderRepository) UpdateStatus(id uint, status model.OrderStatus) error {
	logger.Debug("Updating order status in database", map[string]interface{}{
		"order_id": id,
		"status":   status,
	})

	if err := r.db.Model(&model.Order{}).Where("id = ?", id).
		Update("status", status).Error; err != nil {
		logger.Error("Failed to update order status in database", err, map[string]interface{}{
			"order_id": id,
			"status":   status,
		})
		return err
	}

	logger.Debug("Order status updated in database", map[string]interface{}{
		"order_id": id,
		"status":   status,
	})
	return nil
}
