package service

import (
	"errors"

	"github.com/roastline/roastline-backend/internal/app/model"
	"github.com/roastline/roastline-backend/internal/app/repository"
	"github.com/roastline/roastline-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrInvalidQuantity  = errors.New("quantity must be greater than zero")
)

type CartService interface {
	AddItem(sessionID string, productID uint, quantity int, customizations string) (*model.CartItem, error)
	ListItems(sessionID string) ([]model.CartItem, error)
	UpdateQuantity(sessionID string, itemID uint, quantity int) (*model.CartItem, error)
	RemoveItem(sessionID string, itemID uint) error
	Clear(sessionID string) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// AddItem merges the requested quantity into the session's existing line for
// the product, or creates a new line when none exists. Customizations on a
// merge are replaced by the incoming ones.
func (s *cartService) AddItem(sessionID string, productID uint, quantity int, customizations string) (*model.CartItem, error) {
	logger.Info("Adding item to cart", map[string]interface{}{
		"session_id": sessionID,
		"product_id": productID,
		"quantity":   quantity,
	})

	if quantity <= 0 {
		logger.Warn("Cannot add to cart: invalid quantity", map[string]interface{}{
			"session_id": sessionID,
			"product_id": productID,
			"quantity":   quantity,
		})
		return nil, ErrInvalidQuantity
	}

	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot add to cart: product not found", map[string]interface{}{
				"session_id": sessionID,
				"product_id": productID,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to look up product for cart", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}

	item := &model.CartItem{
		SessionID:      sessionID,
		ProductID:      productID,
		Quantity:       quantity,
		Customizations: customizations,
	}
	if err := s.cartRepo.Upsert(item); err != nil {
		logger.Error("Failed to upsert cart item", err, map[string]interface{}{
			"session_id": sessionID,
			"product_id": productID,
		})
		return nil, err
	}

	// Re-read the merged row: on a conflict the upsert does not report the
	// surviving row's id or accumulated quantity.
	merged, err := s.cartRepo.FindBySessionAndProduct(sessionID, productID)
	if err != nil {
		logger.Error("Failed to reload cart item after upsert", err, map[string]interface{}{
			"session_id": sessionID,
			"product_id": productID,
		})
		return nil, err
	}

	logger.Info("Cart item saved", map[string]interface{}{
		"session_id": sessionID,
		"item_id":    merged.ID,
		"quantity":   merged.Quantity,
	})
	return merged, nil
}

func (s *cartService) ListItems(sessionID string) ([]model.CartItem, error) {
	logger.Debug("Fetching cart", map[string]interface{}{
		"session_id": sessionID,
	})

	items, err := s.cartRepo.FindBySessionID(sessionID)
	if err != nil {
		logger.Error("Failed to fetch cart", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, err
	}
	return items, nil
}

func (s *cartService) UpdateQuantity(sessionID string, itemID uint, quantity int) (*model.CartItem, error) {
	logger.Info("Updating cart item quantity", map[string]interface{}{
		"session_id": sessionID,
		"item_id":    itemID,
		"quantity":   quantity,
	})

	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	item, err := s.cartRepo.FindByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	// Items belong to the session that created them.
	if item.SessionID != sessionID {
		logger.Warn("Cart item does not belong to session", map[string]interface{}{
			"session_id": sessionID,
			"item_id":    itemID,
		})
		return nil, ErrCartItemNotFound
	}

	item.Quantity = quantity
	if err := s.cartRepo.Update(item); err != nil {
		logger.Error("Failed to update cart item", err, map[string]interface{}{
			"item_id": itemID,
		})
		return nil, err
	}

	return item, nil
}

// RemoveItem deletes the line from the session's cart. Removing an item that
// is already gone is not an error.
func (s *cartService) RemoveItem(sessionID string, itemID uint) error {
	logger.Info("Removing cart item", map[string]interface{}{
		"session_id": sessionID,
		"item_id":    itemID,
	})

	item, err := s.cartRepo.FindByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if item.SessionID != sessionID {
		return nil
	}

	return s.cartRepo.Delete(itemID)
}

func (s *cartService) Clear(sessionID string) error {
	logger.Info("Clearing cart", map[string]interface{}{
		"session_id": sessionID,
	})
	return s.cartRepo.DeleteBySessionID(sessionID)
}
