package repository

import (
	"testing"
	"time"

	"github.com/roastline/roastline-backend/internal/app/model"
	"github.com/roastline/roastline-backend/internal/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCartRepositoryTest(t *testing.T) (CartRepository, *model.Product, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	product := &model.Product{
		Name:     "Breakfast Blend",
		Price:    decimal.RequireFromString("16.00"),
		Category: model.CategoryBlend,
		InStock:  true,
	}
	require.NoError(t, testDB.Create(product).Error)

	return NewCartRepository(testDB), product, testDB
}

func TestCartRepository_Upsert_NewLine(t *testing.T) {
	cartRepo, product, _ := setupCartRepositoryTest(t)

	err := cartRepo.Upsert(&model.CartItem{
		SessionID: "s1",
		ProductID: product.ID,
		Quantity:  2,
	})
	assert.NoError(t, err)

	item, err := cartRepo.FindBySessionAndProduct("s1", product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)
}

func TestCartRepository_Upsert_AccumulatesQuantity(t *testing.T) {
	cartRepo, product, testDB := setupCartRepositoryTest(t)

	require.NoError(t, cartRepo.Upsert(&model.CartItem{
		SessionID:      "s1",
		ProductID:      product.ID,
		Quantity:       2,
		Customizations: "whole bean",
	}))
	require.NoError(t, cartRepo.Upsert(&model.CartItem{
		SessionID:      "s1",
		ProductID:      product.ID,
		Quantity:       3,
		Customizations: "ground",
	}))

	// One row per (session, product), quantities summed, last customizations
	var count int64
	testDB.Model(&model.CartItem{}).
		Where("session_id = ? AND product_id = ?", "s1", product.ID).
		Count(&count)
	assert.Equal(t, int64(1), count)

	item, err := cartRepo.FindBySessionAndProduct("s1", product.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)
	assert.Equal(t, "ground", item.Customizations)
}

func TestCartRepository_FindBySessionID_PreloadsProduct(t *testing.T) {
	cartRepo, product, _ := setupCartRepositoryTest(t)

	require.NoError(t, cartRepo.Upsert(&model.CartItem{
		SessionID: "s1",
		ProductID: product.ID,
		Quantity:  1,
	}))

	items, err := cartRepo.FindBySessionID("s1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Breakfast Blend", items[0].Product.Name)
}

func TestCartRepository_DeleteBySessionID(t *testing.T) {
	cartRepo, product, _ := setupCartRepositoryTest(t)

	require.NoError(t, cartRepo.Upsert(&model.CartItem{
		SessionID: "s1", ProductID: product.ID, Quantity: 1,
	}))
	require.NoError(t, cartRepo.Upsert(&model.CartItem{
		SessionID: "s2", ProductID: product.ID, Quantity: 1,
	}))

	require.NoError(t, cartRepo.DeleteBySessionID("s1"))

	s1Items, err := cartRepo.FindBySessionID("s1")
	require.NoError(t, err)
	assert.Len(t, s1Items, 0)

	s2Items, err := cartRepo.FindBySessionID("s2")
	require.NoError(t, err)
	assert.Len(t, s2Items, 1)
}

func TestCartRepository_DeleteStaleBefore(t *testing.T) {
	cartRepo, product, testDB := setupCartRepositoryTest(t)

	require.NoError(t, cartRepo.Upsert(&model.CartItem{
		SessionID: "old", ProductID: product.ID, Quantity: 1,
	}))
	require.NoError(t, cartRepo.Upsert(&model.CartItem{
		SessionID: "fresh", ProductID: product.ID, Quantity: 1,
	}))

	// Age the first line past the cutoff
	stale := time.Now().AddDate(0, 0, -40)
	require.NoError(t, testDB.Model(&model.CartItem{}).
		Where("session_id = ?", "old").
		UpdateColumn("updated_at", stale).Error)

	removed, err := cartRepo.DeleteStaleBefore(time.Now().AddDate(0, 0, -30))
	assert.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	freshItems, err := cartRepo.FindBySessionID("fresh")
	require.NoError(t, err)
	assert.Len(t, freshItems, 1)
}
