package service

import (
	"testing"

	"github.com/roastline/roastline-backend/internal/app/model"
	"github.com/roastline/roastline-backend/internal/app/repository"
	"github.com/roastline/roastline-backend/internal/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupNotificationServiceTest(t *testing.T) (NotificationService, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	notificationRepo := repository.NewNotificationRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	// No hub in tests; broadcast is a no-op
	notificationService := NewNotificationService(notificationRepo, productRepo, nil)

	product := &model.Product{
		Name:     "Huila Supremo",
		Price:    decimal.RequireFromString("19.50"),
		Category: model.CategorySingleOrigin,
		InStock:  true,
	}
	testDB.Create(product)

	return notificationService, product
}

func TestNotificationService_Dispatch(t *testing.T) {
	notificationService, product := setupNotificationServiceTest(t)

	notification, err := notificationService.Dispatch(product.ID, "Fresh roast available")
	assert.NoError(t, err)
	assert.NotZero(t, notification.ID)
	assert.Equal(t, product.ID, notification.ProductID)
	assert.Equal(t, product.Name, notification.Product.Name)
	assert.False(t, notification.DispatchedAt.IsZero())
}

func TestNotificationService_Dispatch_ProductNotFound(t *testing.T) {
	notificationService, _ := setupNotificationServiceTest(t)

	_, err := notificationService.Dispatch(9999, "Fresh roast available")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestNotificationService_List(t *testing.T) {
	notificationService, product := setupNotificationServiceTest(t)

	_, err := notificationService.Dispatch(product.ID, "first")
	require.NoError(t, err)
	_, err = notificationService.Dispatch(product.ID, "second")
	require.NoError(t, err)

	notifications, total, err := notificationService.List(10, 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, notifications, 2)
}

func TestNotificationService_List_Pagination(t *testing.T) {
	notificationService, product := setupNotificationServiceTest(t)

	for i := 0; i < 5; i++ {
		_, err := notificationService.Dispatch(product.ID, "restock")
		require.NoError(t, err)
	}

	notifications, total, err := notificationService.List(2, 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, notifications, 2)
}
