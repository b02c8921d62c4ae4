package controller

import (
	goerrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/roastline/roastline-backend/internal/app/service"
	"github.com/roastline/roastline-backend/internal/errors"
	"github.com/roastline/roastline-backend/internal/middleware"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type AddCartItemRequest struct {
	ProductID      uint   `json:"product_id" binding:"required"`
	Quantity       int    `json:"quantity" binding:"required,gt=0"`
	Customizations string `json:"customizations"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

// GetCart returns the session's cart with current product details.
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	items, err := ctrl.cartService.ListItems(sessionID)
	if err != nil {
		log.Error("Failed to fetch cart", err, map[string]interface{}{
			"session_id": sessionID,
		})
		errors.InternalError(c, "Failed to fetch cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

// AddItem adds a product to the cart, merging with an existing line for the
// same product.
// POST /api/v1/cart
func (ctrl *CartController) AddItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add-to-cart request", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	item, err := ctrl.cartService.AddItem(sessionID, req.ProductID, req.Quantity, req.Customizations)
	if err != nil {
		switch {
		case goerrors.Is(err, service.ErrProductNotFound):
			errors.NotFound(c, errors.ProductNotFound, "Product not found")
		case goerrors.Is(err, service.ErrInvalidQuantity):
			errors.BadRequest(c, errors.ValidationInvalidQuantity, "Quantity must be greater than zero")
		default:
			log.Error("Failed to add cart item", err, map[string]interface{}{
				"session_id": sessionID,
				"product_id": req.ProductID,
			})
			errors.RespondWithStorageError(c, err, "cart")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"item": item,
	})
}

// UpdateItem sets the quantity of one cart line.
// PUT /api/v1/cart/:id
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidQuantity, "Quantity must be greater than zero")
		return
	}

	item, err := ctrl.cartService.UpdateQuantity(sessionID, id, req.Quantity)
	if err != nil {
		switch {
		case goerrors.Is(err, service.ErrCartItemNotFound):
			errors.NotFound(c, errors.CartItemNotFound, "Cart item not found")
		case goerrors.Is(err, service.ErrInvalidQuantity):
			errors.BadRequest(c, errors.ValidationInvalidQuantity, "Quantity must be greater than zero")
		default:
			log.Error("Failed to update cart item", err, map[string]interface{}{
				"session_id": sessionID,
				"item_id":    id,
			})
			errors.InternalError(c, "Failed to update cart item")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"item": item,
	})
}

// RemoveItem deletes one cart line. Removing an already-absent line succeeds.
// DELETE /api/v1/cart/:id
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.cartService.RemoveItem(sessionID, id); err != nil {
		log.Error("Failed to remove cart item", err, map[string]interface{}{
			"session_id": sessionID,
			"item_id":    id,
		})
		errors.InternalError(c, "Failed to remove cart item")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed",
	})
}

// ClearCart empties the session's cart.
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	if err := ctrl.cartService.Clear(sessionID); err != nil {
		log.Error("Failed to clear cart", err, map[string]interface{}{
			"session_id": sessionID,
		})
		errors.InternalError(c, "Failed to clear cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared",
	})
}
