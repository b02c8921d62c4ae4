package controller

import (
	goerrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/roastline/roastline-backend/internal/app/model"
	"github.com/roastline/roastline-backend/internal/app/service"
	"github.com/roastline/roastline-backend/internal/errors"
	"github.com/roastline/roastline-backend/internal/middleware"
)

type OrderController struct {
	orderService  service.OrderService
	exportService service.ExportService
}

func NewOrderController(orderService service.OrderService, exportService service.ExportService) *OrderController {
	return &OrderController{
		orderService:  orderService,
		exportService: exportService,
	}
}

type PlaceOrderRequest struct {
	CustomerName    string                `json:"customer_name" binding:"required"`
	CustomerEmail   string                `json:"customer_email" binding:"required,email"`
	CustomerPhone   string                `json:"customer_phone"`
	ShippingAddress string                `json:"shipping_address" binding:"required"`
	Items           []PlaceOrderItemInput `json:"items" binding:"required,min=1,dive"`
}

type PlaceOrderItemInput struct {
	ProductID      uint   `json:"product_id" binding:"required"`
	Quantity       int    `json:"quantity" binding:"required,gt=0"`
	Customizations string `json:"customizations"`
}

type UpdateOrderStatusRequest struct {
	Status model.OrderStatus `json:"status" binding:"required"`
}

// PlaceOrder commits the checkout: snapshots prices, writes the order, and
// clears the session's cart in one unit.
// POST /api/v1/orders
func (ctrl *OrderController) PlaceOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid order request", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	items := make([]service.LineItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.LineItemInput{
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			Customizations: item.Customizations,
		}
	}

	order, err := ctrl.orderService.PlaceOrder(sessionID, service.CustomerInfo{
		Name:            req.CustomerName,
		Email:           req.CustomerEmail,
		Phone:           req.CustomerPhone,
		ShippingAddress: req.ShippingAddress,
	}, items)
	if err != nil {
		switch {
		case goerrors.Is(err, service.ErrProductNotFound):
			errors.NotFound(c, errors.ProductNotFound, "One or more products no longer exist")
		case goerrors.Is(err, service.ErrProductOutOfStock):
			errors.Conflict(c, errors.ProductOutOfStock, "One or more products are out of stock")
		case goerrors.Is(err, service.ErrEmptyLineItems):
			errors.BadRequest(c, errors.CartEmpty, "Order must contain at least one item")
		case goerrors.Is(err, service.ErrInvalidQuantity):
			errors.BadRequest(c, errors.ValidationInvalidQuantity, "Quantity must be greater than zero")
		case goerrors.Is(err, service.ErrMissingCustomerInfo):
			errors.BadRequest(c, errors.ValidationRequired, "Customer name, email, and shipping address are required")
		default:
			log.Error("Failed to place order", err, map[string]interface{}{
				"session_id": sessionID,
			})
			// Transaction failures surface as retryable conflicts where the
			// store says so; anything else is a commit failure.
			info := errors.ParseError(err, "order")
			if info.Code == errors.ResourceConflict {
				errors.Conflict(c, info.Code, info.Message)
			} else {
				errors.RespondWithError(c, http.StatusInternalServerError, errors.OrderCommitFailed, "Failed to place order")
			}
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"order": order,
	})
}

// ListOrders returns the full order book. Admin only.
// GET /api/v1/orders
func (ctrl *OrderController) ListOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orders, err := ctrl.orderService.ListOrders()
	if err != nil {
		log.Error("Failed to fetch orders", err, nil)
		errors.InternalError(c, "Failed to fetch orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// GetOrder returns one order with its line items. Admin only.
// GET /api/v1/orders/:id
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := ctrl.orderService.GetOrder(id)
	if err != nil {
		if goerrors.Is(err, service.ErrOrderNotFound) {
			errors.NotFound(c, errors.OrderNotFound, "Order not found")
			return
		}
		log.Error("Failed to fetch order", err, map[string]interface{}{
			"order_id": id,
		})
		errors.InternalError(c, "Failed to fetch order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}

// UpdateStatus moves an order through the status machine. Admin only.
// PUT /api/v1/orders/:id/status
func (ctrl *OrderController) UpdateStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	order, err := ctrl.orderService.UpdateStatus(id, req.Status)
	if err != nil {
		switch {
		case goerrors.Is(err, service.ErrOrderNotFound):
			errors.NotFound(c, errors.OrderNotFound, "Order not found")
		case goerrors.Is(err, service.ErrInvalidStatus):
			errors.BadRequest(c, errors.OrderInvalidStatus, "Unknown order status")
		case goerrors.Is(err, service.ErrOrderStatusFinal):
			errors.Conflict(c, errors.OrderStatusFinal, "Order is already in a final status")
		default:
			log.Error("Failed to update order status", err, map[string]interface{}{
				"order_id": id,
			})
			errors.InternalError(c, "Failed to update order status")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}

// ExportOrders streams the order book as an XLSX download. Admin only.
// GET /api/v1/orders/export
func (ctrl *OrderController) ExportOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	data, err := ctrl.exportService.ExportOrders()
	if err != nil {
		log.Error("Failed to export orders", err, nil)
		errors.InternalError(c, "Failed to export orders")
		return
	}

	filename := fmt.Sprintf("orders-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
