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

func setupCatalogServiceTest(t *testing.T) (CatalogService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	productRepo := repository.NewProductRepository(testDB)
	// No redis in tests; the nil cache is a no-op
	catalogService := NewCatalogService(productRepo, nil)

	return catalogService, testDB
}

func seedCatalog(t *testing.T, testDB *gorm.DB) []model.Product {
	t.Helper()
	products := []model.Product{
		{
			Name:       "Yirgacheffe Washed",
			Price:      decimal.RequireFromString("24.99"),
			Category:   model.CategorySingleOrigin,
			Origin:     "Ethiopia",
			RoastLevel: model.RoastLight,
			InStock:    true,
		},
		{
			Name:       "Breakfast Blend",
			Price:      decimal.RequireFromString("16.00"),
			Category:   model.CategoryBlend,
			Origin:     "Guatemala / Brazil",
			RoastLevel: model.RoastMedium,
			InStock:    true,
		},
		{
			Name:       "Midnight Espresso",
			Price:      decimal.RequireFromString("18.75"),
			Category:   model.CategoryEspresso,
			Origin:     "Brazil / India",
			RoastLevel: model.RoastDark,
			InStock:    false,
		},
	}
	for i := range products {
		require.NoError(t, testDB.Create(&products[i]).Error)
	}
	return products
}

func TestCatalogService_ListProducts(t *testing.T) {
	catalogService, testDB := setupCatalogServiceTest(t)
	seedCatalog(t, testDB)

	products, err := catalogService.ListProducts(repository.ProductFilter{})
	assert.NoError(t, err)
	assert.Len(t, products, 3)
}

func TestCatalogService_ListProducts_FilterByCategory(t *testing.T) {
	catalogService, testDB := setupCatalogServiceTest(t)
	seedCatalog(t, testDB)

	category := model.CategoryBlend
	products, err := catalogService.ListProducts(repository.ProductFilter{Category: &category})
	assert.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Breakfast Blend", products[0].Name)
}

func TestCatalogService_ListProducts_InStockOnly(t *testing.T) {
	catalogService, testDB := setupCatalogServiceTest(t)
	seedCatalog(t, testDB)

	products, err := catalogService.ListProducts(repository.ProductFilter{InStockOnly: true})
	assert.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestCatalogService_ListProducts_SortByPrice(t *testing.T) {
	catalogService, testDB := setupCatalogServiceTest(t)
	seedCatalog(t, testDB)

	products, err := catalogService.ListProducts(repository.ProductFilter{
		SortBy:        repository.ProductSortPrice,
		SortAscending: true,
	})
	assert.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "Breakfast Blend", products[0].Name)
	assert.Equal(t, "Yirgacheffe Washed", products[2].Name)
}

func TestCatalogService_GetProduct(t *testing.T) {
	catalogService, testDB := setupCatalogServiceTest(t)
	seeded := seedCatalog(t, testDB)

	product, err := catalogService.GetProduct(seeded[0].ID)
	assert.NoError(t, err)
	assert.Equal(t, "Yirgacheffe Washed", product.Name)
	assert.True(t, product.Price.Equal(decimal.RequireFromString("24.99")))
}

func TestCatalogService_GetProduct_NotFound(t *testing.T) {
	catalogService, _ := setupCatalogServiceTest(t)

	_, err := catalogService.GetProduct(9999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogService_CreateProduct(t *testing.T) {
	catalogService, _ := setupCatalogServiceTest(t)

	product := &model.Product{
		Name:     "Huila Supremo",
		Price:    decimal.RequireFromString("19.50"),
		Category: model.CategorySingleOrigin,
		InStock:  true,
	}
	err := catalogService.CreateProduct(product)
	assert.NoError(t, err)
	assert.NotZero(t, product.ID)
}

func TestCatalogService_CreateProduct_NegativePrice(t *testing.T) {
	catalogService, _ := setupCatalogServiceTest(t)

	product := &model.Product{
		Name:  "Bad Lot",
		Price: decimal.RequireFromString("-1.00"),
	}
	err := catalogService.CreateProduct(product)
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestCatalogService_UpdateProduct(t *testing.T) {
	catalogService, testDB := setupCatalogServiceTest(t)
	seeded := seedCatalog(t, testDB)

	updated, err := catalogService.UpdateProduct(&model.Product{
		ID:       seeded[0].ID,
		Name:     "Yirgacheffe Natural",
		Price:    decimal.RequireFromString("26.50"),
		Category: model.CategorySingleOrigin,
		InStock:  true,
	})
	assert.NoError(t, err)
	assert.Equal(t, "Yirgacheffe Natural", updated.Name)
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("26.50")))
}

func TestCatalogService_UpdateProduct_NotFound(t *testing.T) {
	catalogService, _ := setupCatalogServiceTest(t)

	_, err := catalogService.UpdateProduct(&model.Product{
		ID:    9999,
		Name:  "Ghost",
		Price: decimal.RequireFromString("10.00"),
	})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogService_DeleteProduct(t *testing.T) {
	catalogService, testDB := setupCatalogServiceTest(t)
	seeded := seedCatalog(t, testDB)

	err := catalogService.DeleteProduct(seeded[0].ID)
	assert.NoError(t, err)

	_, err = catalogService.GetProduct(seeded[0].ID)
	assert.ErrorIs(t, err, ErrProductNotFound)

	// Soft delete: the row survives for order reads
	var count int64
	testDB.Unscoped().Model(&model.Product{}).Where("id = ?", seeded[0].ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCatalogService_DeleteProduct_NotFound(t *testing.T) {
	catalogService, _ := setupCatalogServiceTest(t)

	err := catalogService.DeleteProduct(9999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}
