package service

import (
	"testing"

	"github.com/roastline/roastline-backend/internal/app/model"
	"github.com/roastline/roastline-backend/internal/app/repository"
	"github.com/roastline/roastline-backend/internal/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (CartService, *model.Product, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	cartService := NewCartService(cartRepo, productRepo)

	product := &model.Product{
		Name:       "Yirgacheffe Washed",
		Price:      decimal.RequireFromString("24.99"),
		Category:   model.CategorySingleOrigin,
		Origin:     "Ethiopia",
		RoastLevel: model.RoastLight,
		InStock:    true,
	}
	testDB.Create(product)

	return cartService, product, testDB
}

func TestCartService_ListItems_Empty(t *testing.T) {
	cartService, _, _ := setupCartServiceTest(t)

	items, err := cartService.ListItems("s1")
	assert.NoError(t, err)
	assert.Len(t, items, 0)
}

func TestCartService_AddItem_Success(t *testing.T) {
	cartService, product, _ := setupCartServiceTest(t)

	item, err := cartService.AddItem("s1", product.ID, 3, "whole bean")
	assert.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, "whole bean", item.Customizations)

	items, _ := cartService.ListItems("s1")
	assert.Len(t, items, 1)
}

func TestCartService_AddItem_MergesExistingLine(t *testing.T) {
	cartService, product, _ := setupCartServiceTest(t)

	first, err := cartService.AddItem("s1", product.ID, 2, "whole bean")
	require.NoError(t, err)

	merged, err := cartService.AddItem("s1", product.ID, 1, "ground for espresso")
	require.NoError(t, err)

	// Same line, accumulated quantity, latest customizations win
	assert.Equal(t, first.ID, merged.ID)
	assert.Equal(t, 3, merged.Quantity)
	assert.Equal(t, "ground for espresso", merged.Customizations)

	items, _ := cartService.ListItems("s1")
	assert.Len(t, items, 1)
}

func TestCartService_AddItem_SessionsAreIsolated(t *testing.T) {
	cartService, product, _ := setupCartServiceTest(t)

	_, err := cartService.AddItem("s1", product.ID, 2, "")
	require.NoError(t, err)
	_, err = cartService.AddItem("s2", product.ID, 5, "")
	require.NoError(t, err)

	s1Items, _ := cartService.ListItems("s1")
	s2Items, _ := cartService.ListItems("s2")
	require.Len(t, s1Items, 1)
	require.Len(t, s2Items, 1)
	assert.Equal(t, 2, s1Items[0].Quantity)
	assert.Equal(t, 5, s2Items[0].Quantity)
}

func TestCartService_AddItem_InvalidQuantity(t *testing.T) {
	cartService, product, _ := setupCartServiceTest(t)

	_, err := cartService.AddItem("s1", product.ID, 0, "")
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = cartService.AddItem("s1", product.ID, -2, "")
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCartService_AddItem_ProductNotFound(t *testing.T) {
	cartService, _, _ := setupCartServiceTest(t)

	_, err := cartService.AddItem("s1", 9999, 1, "")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartService_UpdateQuantity(t *testing.T) {
	cartService, product, _ := setupCartServiceTest(t)

	item, err := cartService.AddItem("s1", product.ID, 2, "")
	require.NoError(t, err)

	updated, err := cartService.UpdateQuantity("s1", item.ID, 7)
	assert.NoError(t, err)
	assert.Equal(t, 7, updated.Quantity)
}

func TestCartService_UpdateQuantity_Invalid(t *testing.T) {
	cartService, product, _ := setupCartServiceTest(t)

	item, err := cartService.AddItem("s1", product.ID, 2, "")
	require.NoError(t, err)

	_, err = cartService.UpdateQuantity("s1", item.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCartService_UpdateQuantity_WrongSession(t *testing.T) {
	cartService, product, _ := setupCartServiceTest(t)

	item, err := cartService.AddItem("s1", product.ID, 2, "")
	require.NoError(t, err)

	_, err = cartService.UpdateQuantity("s2", item.ID, 5)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCartService_RemoveItem(t *testing.T) {
	cartService, product, _ := setupCartServiceTest(t)

	item, err := cartService.AddItem("s1", product.ID, 2, "")
	require.NoError(t, err)

	err = cartService.RemoveItem("s1", item.ID)
	assert.NoError(t, err)

	items, _ := cartService.ListItems("s1")
	assert.Len(t, items, 0)
}

func TestCartService_RemoveItem_AlreadyGone(t *testing.T) {
	cartService, _, _ := setupCartServiceTest(t)

	// Removing a nonexistent line succeeds
	err := cartService.RemoveItem("s1", 9999)
	assert.NoError(t, err)
}

func TestCartService_RemoveItem_ThenReAdd(t *testing.T) {
	cartService, product, _ := setupCartServiceTest(t)

	item, err := cartService.AddItem("s1", product.ID, 2, "")
	require.NoError(t, err)
	require.NoError(t, cartService.RemoveItem("s1", item.ID))

	// Re-adding after removal creates a fresh line, no merge with the dead one
	fresh, err := cartService.AddItem("s1", product.ID, 4, "")
	assert.NoError(t, err)
	assert.Equal(t, 4, fresh.Quantity)
}

func TestCartService_Clear_ScopedToSession(t *testing.T) {
	cartService, product, _ := setupCartServiceTest(t)

	_, err := cartService.AddItem("s1", product.ID, 2, "")
	require.NoError(t, err)
	_, err = cartService.AddItem("s2", product.ID, 3, "")
	require.NoError(t, err)

	err = cartService.Clear("s1")
	assert.NoError(t, err)

	s1Items, _ := cartService.ListItems("s1")
	s2Items, _ := cartService.ListItems("s2")
	assert.Len(t, s1Items, 0)
	assert.Len(t, s2Items, 1)
}
