package controller

import (
	goerrors "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/roastline/roastline-backend/internal/app/service"
	"github.com/roastline/roastline-backend/internal/errors"
	"github.com/roastline/roastline-backend/internal/middleware"
)

type NotificationController struct {
	notificationService service.NotificationService
}

func NewNotificationController(notificationService service.NotificationService) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
	}
}

type DispatchNotificationRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

// Dispatch records and broadcasts a product-keyed notification. Admin only.
// POST /api/v1/notifications
func (ctrl *NotificationController) Dispatch(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req DispatchNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Product id and message are required")
		return
	}

	dispatchedBy, _ := middleware.GetUserEmail(c)
	log.Info("Admin dispatching notification", map[string]interface{}{
		"product_id":    req.ProductID,
		"dispatched_by": dispatchedBy,
	})

	notification, err := ctrl.notificationService.Dispatch(req.ProductID, req.Message)
	if err != nil {
		if goerrors.Is(err, service.ErrProductNotFound) {
			errors.NotFound(c, errors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to dispatch notification", err, map[string]interface{}{
			"product_id": req.ProductID,
		})
		errors.InternalError(c, "Failed to dispatch notification")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"notification": notification,
	})
}

// List returns notification history, newest first. Admin only.
// GET /api/v1/notifications
func (ctrl *NotificationController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	limit := 50
	offset := 0
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 200 {
		limit = v
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v > 0 {
		offset = v
	}

	notifications, total, err := ctrl.notificationService.List(limit, offset)
	if err != nil {
		log.Error("Failed to fetch notifications", err, nil)
		errors.InternalError(c, "Failed to fetch notifications")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"total":         total,
	})
}
