package service

import (
	"errors"

	"github.com/roastline/roastline-backend/internal/app/model"
	"github.com/roastline/roastline-backend/internal/app/repository"
	"github.com/roastline/roastline-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrEmptyLineItems      = errors.New("order must contain at least one line item")
	ErrProductOutOfStock   = errors.New("product is out of stock")
	ErrInvalidStatus       = errors.New("invalid order status")
	ErrOrderStatusFinal    = errors.New("order is in a final status")
	ErrMissingCustomerInfo = errors.New("customer name, email, and shipping address are required")
)

// CustomerInfo is the buyer contact captured on checkout.
type CustomerInfo struct {
	Name            string
	Email           string
	Phone           string
	ShippingAddress string
}

// LineItemInput is one requested purchase line. Prices are never supplied by
// the caller; they are resolved from the catalog at commit time.
type LineItemInput struct {
	ProductID      uint
	Quantity       int
	Customizations string
}

type OrderService interface {
	PlaceOrder(sessionID string, info CustomerInfo, items []LineItemInput) (*model.Order, error)
	GetOrder(id uint) (*model.Order, error)
	ListOrders() ([]model.Order, error)
	UpdateStatus(id uint, status model.OrderStatus) (*model.Order, error)
}

type orderService struct {
	db        *gorm.DB
	orderRepo repository.OrderRepository
}

func NewOrderService(db *gorm.DB, orderRepo repository.OrderRepository) OrderService {
	return &orderService{
		db:        db,
		orderRepo: orderRepo,
	}
}

// PlaceOrder resolves every requested product, snapshots its current price
// into an order line, writes the order header plus all lines, and clears the
// session's cart — all inside one transaction. Any failure rolls the whole
// thing back: no partial order and the cart keeps its contents.
func (s *orderService) PlaceOrder(sessionID string, info CustomerInfo, items []LineItemInput) (*model.Order, error) {
	logger.Info("Placing order", map[string]interface{}{
		"session_id":     sessionID,
		"customer_email": info.Email,
		"item_count":     len(items),
	})

	if info.Name == "" || info.Email == "" || info.ShippingAddress == "" {
		return nil, ErrMissingCustomerInfo
	}
	if len(items) == 0 {
		logger.Warn("Cannot place order: no line items", map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, ErrEmptyLineItems
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		logger.Error("Failed to begin order transaction", tx.Error, nil)
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	total := decimal.Zero
	orderItems := make([]model.OrderItem, 0, len(items))
	for _, item := range items {
		var product model.Product
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, item.ProductID).Error
		if err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Warn("Cannot place order: product not found", map[string]interface{}{
					"session_id": sessionID,
					"product_id": item.ProductID,
				})
				return nil, ErrProductNotFound
			}
			logger.Error("Failed to resolve product for order", err, map[string]interface{}{
				"product_id": item.ProductID,
			})
			return nil, err
		}
		if !product.InStock {
			tx.Rollback()
			logger.Warn("Cannot place order: product out of stock", map[string]interface{}{
				"session_id": sessionID,
				"product_id": product.ID,
			})
			return nil, ErrProductOutOfStock
		}

		line := model.OrderItem{
			ProductID:      product.ID,
			Quantity:       item.Quantity,
			Price:          product.Price,
			Customizations: item.Customizations,
		}
		orderItems = append(orderItems, line)
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	order := &model.Order{
		CustomerName:    info.Name,
		CustomerEmail:   info.Email,
		CustomerPhone:   info.Phone,
		ShippingAddress: info.ShippingAddress,
		TotalAmount:     total.Round(2),
		Status:          model.OrderStatusPending,
		OrderItems:      orderItems,
	}
	if err := tx.Create(order).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create order", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, err
	}

	if err := tx.Where("session_id = ?", sessionID).
		Delete(&model.CartItem{}).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to clear cart on checkout", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit order transaction", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, err
	}

	logger.Info("Order placed successfully", map[string]interface{}{
		"order_id":     order.ID,
		"session_id":   sessionID,
		"total_amount": order.TotalAmount,
		"item_count":   len(order.OrderItems),
	})
	return order, nil
}

func (s *orderService) GetOrder(id uint) (*model.Order, error) {
	logger.Debug("Fetching order", map[string]interface{}{
		"order_id": id,
	})

	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		logger.Error("Failed to fetch order", err, map[string]interface{}{
			"order_id": id,
		})
		return nil, err
	}

	fillRemovedProducts(order)
	return order, nil
}

func (s *orderService) ListOrders() ([]model.Order, error) {
	logger.Debug("Fetching all orders", nil)

	orders, err := s.orderRepo.FindAll()
	if err != nil {
		logger.Error("Failed to fetch orders", err, nil)
		return nil, err
	}

	for i := range orders {
		fillRemovedProducts(&orders[i])
	}
	return orders, nil
}

func (s *orderService) UpdateStatus(id uint, status model.OrderStatus) (*model.Order, error) {
	logger.Info("Updating order status", map[string]interface{}{
		"order_id": id,
		"status":   status,
	})

	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.Status.IsTerminal() {
		logger.Warn("Cannot update order status: final status", map[string]interface{}{
			"order_id": id,
			"status":   order.Status,
		})
		return nil, ErrOrderStatusFinal
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		logger.Error("Failed to update order status", err, map[string]interface{}{
			"order_id": id,
		})
		return nil, err
	}

	order.Status = status
	fillRemovedProducts(order)

	logger.Info("Order status updated", map[string]interface{}{
		"order_id": id,
		"status":   status,
	})
	return order, nil
}

// fillRemovedProducts substitutes a placeholder view for line items whose
// product row no longer exists at all (hard deletion outside the app).
// Soft-deleted products are still joined by the read path and kept as-is.
func fillRemovedProducts(order *model.Order) {
	for i := range order.OrderItems {
		item := &order.OrderItems[i]
		if item.Product.ID == 0 {
			item.Product = model.Product{
				ID:      item.ProductID,
				Name:    "[removed product]",
				Price:   item.Price,
				InStock: false,
			}
		}
	}
}
