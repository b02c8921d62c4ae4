package repository

import (
	"time"

	"github.com/roastline/roastline-backend/internal/app/model"
	"github.com/roastline/roastline-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository interface {
	Upsert(cartItem *model.CartItem) error
	FindBySessionID(sessionID string) ([]model.CartItem, error)
	FindByID(id uint) (*model.CartItem, error)
	FindBySessionAndProduct(sessionID string, productID uint) (*model.CartItem, error)
	Update(cartItem *model.CartItem) error
	Delete(id uint) error
	DeleteBySessionID(sessionID string) error
	DeleteStaleBefore(cutoff time.Time) (int64, error)
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

// Upsert inserts the cart line or, when a row for (session_id, product_id)
// already exists, merges quantities in a single atomic statement. The store
// serializes concurrent adds at the row, so both quantities always land.
// Customizations are last-write: the incoming payload replaces the old one.
func (r *cartRepository) Upsert(cartItem *model.CartItem) error {
	logger.Debug("Upserting cart item in database", map[string]interface{}{
		"session_id": cartItem.SessionID,
		"product_id": cartItem.ProductID,
		"quantity":   cartItem.Quantity,
	})

	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "session_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":       gorm.Expr("cart_items.quantity + excluded.quantity"),
			"customizations": gorm.Expr("excluded.customizations"),
			"updated_at":     time.Now(),
		}),
	}).Create(cartItem).Error
	if err != nil {
		logger.Error("Failed to upsert cart item in database", err, map[string]interface{}{
			"session_id": cartItem.SessionID,
			"product_id": cartItem.ProductID,
			"quantity":   cartItem.Quantity,
		})
		return err
	}

	logger.Debug("Cart item upserted in database", map[string]interface{}{
		"session_id": cartItem.SessionID,
		"product_id": cartItem.ProductID,
	})
	return nil
}

func (r *cartRepository) FindBySessionID(sessionID string) ([]model.CartItem, error) {
	logger.Debug("Finding cart items by session in database", map[string]interface{}{
		"session_id": sessionID,
	})

	var cartItems []model.CartItem
	err := r.db.Where("session_id = ?", sessionID).
		Preload("Product").
		Order("created_at ASC").
		Find(&cartItems).Error
	if err != nil {
		logger.Error("Failed to find cart items by session in database", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, err
	}

	logger.Debug("Cart items found by session in database", map[string]interface{}{
		"session_id": sessionID,
		"count":      len(cartItems),
	})
	return cartItems, nil
}

func (r *cartRepository) FindByID(id uint) (*model.CartItem, error) {
	logger.Debug("Finding cart item by ID in database", map[string]interface{}{
		"cart_item_id": id,
	})

	var cartItem model.CartItem
	err := r.db.Preload("Product").First(&cartItem, id).Error
	if err != nil {
		logger.Error("Failed to find cart item by ID in database", err, map[string]interface{}{
			"cart_item_id": id,
		})
		return nil, err
	}

	logger.Debug("Cart item found by ID in database", map[string]interface{}{
		"cart_item_id": cartItem.ID,
		"session_id":   cartItem.SessionID,
		"product_id":   cartItem.ProductID,
	})
	return &cartItem, nil
}

func (r *cartRepository) FindBySessionAndProduct(sessionID string, productID uint) (*model.CartItem, error) {
	logger.Debug("Finding cart item by session and product in database", map[string]interface{}{
		"session_id": sessionID,
		"product_id": productID,
	})

	var cartItem model.CartItem
	err := r.db.Where("session_id = ? AND product_id = ?", sessionID, productID).
		First(&cartItem).Error
	if err != nil {
		logger.Error("Failed to find cart item by session and product in database", err, map[string]interface{}{
			"session_id": sessionID,
			"product_id": productID,
		})
		return nil, err
	}

	return &cartItem, nil
}

func (r *cartRepository) Update(cartItem *model.CartItem) error {
	logger.Debug("Updating cart item in database", map[string]interface{}{
		"cart_item_id": cartItem.ID,
		"session_id":   cartItem.SessionID,
		"quantity":     cartItem.Quantity,
	})

	if err := r.db.Save(cartItem).Error; err != nil {
		logger.Error("Failed to update cart item in database", err, map[string]interface{}{
			"cart_item_id": cartItem.ID,
			"session_id":   cartItem.SessionID,
		})
		return err
	}

	logger.Debug("Cart item updated in database", map[string]interface{}{
		"cart_item_id": cartItem.ID,
		"session_id":   cartItem.SessionID,
	})
	return nil
}

// Delete removes a cart line. Deleting an id that does not exist is not an
// error; the row is simply already absent.
func (r *cartRepository) Delete(id uint) error {
	logger.Debug("Deleting cart item from database", map[string]interface{}{
		"cart_item_id": id,
	})

	if err := r.db.Delete(&model.CartItem{}, id).Error; err != nil {
		logger.Error("Failed to delete cart item from database", err, map[string]interface{}{
			"cart_item_id": id,
		})
		return err
	}

	logger.Debug("Cart item deleted from database", map[string]interface{}{
		"cart_item_id": id,
	})
	return nil
}

func (r *cartRepository) DeleteBySessionID(sessionID string) error {
	logger.Debug("Deleting cart items by session from database", map[string]interface{}{
		"session_id": sessionID,
	})

	if err := r.db.Where("session_id = ?", sessionID).Delete(&model.CartItem{}).Error; err != nil {
		logger.Error("Failed to delete cart items by session from database", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return err
	}

	logger.Debug("Cart items deleted by session from database", map[string]interface{}{
		"session_id": sessionID,
	})
	return nil
}

// DeleteStaleBefore purges cart lines untouched since the cutoff. Used by the
// cleanup scheduler.
func (r *cartRepository) DeleteStaleBefore(cutoff time.Time) (int64, error) {
	logger.Debug("Deleting stale cart items from database", map[string]interface{}{
		"cutoff": cutoff,
	})

	result := r.db.Where("updated_at < ?", cutoff).Delete(&model.CartItem{})
	if result.Error != nil {
		logger.Error("Failed to delete stale cart items from database", result.Error, map[string]interface{}{
			"cutoff": cutoff,
		})
		return 0, result.Error
	}

	logger.Debug("Stale cart items deleted from database", map[string]interface{}{
		"cutoff": cutoff,
		"count":  result.RowsAffected,
	})
	return result.RowsAffected, nil
}
