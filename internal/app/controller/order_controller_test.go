package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/roastline/roastline-backend/internal/app/model"
	"github.com/roastline/roastline-backend/internal/app/repository"
	"github.com/roastline/roastline-backend/internal/app/service"
	"github.com/roastline/roastline-backend/internal/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupOrderControllerTest(t *testing.T) (*OrderController, *gin.Engine, *gorm.DB, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	orderRepo := repository.NewOrderRepository(testDB)
	orderService := service.NewOrderService(testDB, orderRepo)
	exportService := service.NewExportService(orderService)
	orderController := NewOrderController(orderService, exportService)

	product := &model.Product{
		Name:     "Yirgacheffe Washed",
		Price:    decimal.RequireFromString("24.99"),
		Category: model.CategorySingleOrigin,
		InStock:  true,
	}
	testDB.Create(product)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return orderController, router, testDB, product
}

func placeOrderBody(productID uint, quantity int) []byte {
	body, _ := json.Marshal(gin.H{
		"customer_name":    "Jamie Doe",
		"customer_email":   "jamie@example.com",
		"customer_phone":   "555-0100",
		"shipping_address": "12 Harbor St, Portland OR",
		"items": []gin.H{
			{"product_id": productID, "quantity": quantity},
		},
	})
	return body
}

func TestOrderController_PlaceOrder(t *testing.T) {
	controller, router, testDB, product := setupOrderControllerTest(t)

	// Pre-fill the cart; checkout must clear it
	cartRepo := repository.NewCartRepository(testDB)
	require.NoError(t, cartRepo.Upsert(&model.CartItem{
		SessionID: "s1", ProductID: product.ID, Quantity: 3,
	}))

	router.POST("/orders", withSession("s1", controller.PlaceOrder))

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(placeOrderBody(product.ID, 3)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Order model.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, model.OrderStatusPending, response.Order.Status)
	assert.True(t, response.Order.TotalAmount.Equal(decimal.RequireFromString("74.97")))

	items, err := cartRepo.FindBySessionID("s1")
	require.NoError(t, err)
	assert.Len(t, items, 0)
}

func TestOrderController_PlaceOrder_MissingFields(t *testing.T) {
	controller, router, _, product := setupOrderControllerTest(t)

	router.POST("/orders", withSession("s1", controller.PlaceOrder))

	body, _ := json.Marshal(gin.H{
		"customer_name": "Jamie Doe",
		// no email, no address
		"items": []gin.H{{"product_id": product.ID, "quantity": 1}},
	})
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderController_PlaceOrder_OutOfStock(t *testing.T) {
	controller, router, testDB, _ := setupOrderControllerTest(t)

	unavailable := &model.Product{
		Name:     "Sold Out Lot",
		Price:    decimal.RequireFromString("30.00"),
		Category: model.CategorySingleOrigin,
		InStock:  false,
	}
	testDB.Create(unavailable)

	router.POST("/orders", withSession("s1", controller.PlaceOrder))

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(placeOrderBody(unavailable.ID, 1)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestOrderController_GetOrder(t *testing.T) {
	controller, router, testDB, product := setupOrderControllerTest(t)

	orderRepo := repository.NewOrderRepository(testDB)
	orderService := service.NewOrderService(testDB, orderRepo)
	order, err := orderService.PlaceOrder("s1", service.CustomerInfo{
		Name:            "Jamie Doe",
		Email:           "jamie@example.com",
		ShippingAddress: "12 Harbor St",
	}, []service.LineItemInput{{ProductID: product.ID, Quantity: 1}})
	require.NoError(t, err)

	router.GET("/orders/:id", controller.GetOrder)

	req := httptest.NewRequest(http.MethodGet, "/orders/"+itoa(order.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Order model.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, order.ID, response.Order.ID)
	require.Len(t, response.Order.OrderItems, 1)
}

func TestOrderController_GetOrder_NotFound(t *testing.T) {
	controller, router, _, _ := setupOrderControllerTest(t)

	router.GET("/orders/:id", controller.GetOrder)

	req := httptest.NewRequest(http.MethodGet, "/orders/9999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderController_UpdateStatus(t *testing.T) {
	controller, router, testDB, product := setupOrderControllerTest(t)

	orderRepo := repository.NewOrderRepository(testDB)
	orderService := service.NewOrderService(testDB, orderRepo)
	order, err := orderService.PlaceOrder("s1", service.CustomerInfo{
		Name:            "Jamie Doe",
		Email:           "jamie@example.com",
		ShippingAddress: "12 Harbor St",
	}, []service.LineItemInput{{ProductID: product.ID, Quantity: 1}})
	require.NoError(t, err)

	router.PUT("/orders/:id/status", controller.UpdateStatus)

	body, _ := json.Marshal(gin.H{"status": "completed"})
	req := httptest.NewRequest(http.MethodPut, "/orders/"+itoa(order.ID)+"/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	// A completed order rejects further transitions
	body, _ = json.Marshal(gin.H{"status": "pending"})
	req = httptest.NewRequest(http.MethodPut, "/orders/"+itoa(order.ID)+"/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestOrderController_ExportOrders(t *testing.T) {
	controller, router, testDB, product := setupOrderControllerTest(t)

	orderRepo := repository.NewOrderRepository(testDB)
	orderService := service.NewOrderService(testDB, orderRepo)
	_, err := orderService.PlaceOrder("s1", service.CustomerInfo{
		Name:            "Jamie Doe",
		Email:           "jamie@example.com",
		ShippingAddress: "12 Harbor St",
	}, []service.LineItemInput{{ProductID: product.ID, Quantity: 2}})
	require.NoError(t, err)

	router.GET("/orders/export", controller.ExportOrders)

	req := httptest.NewRequest(http.MethodGet, "/orders/export", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotEmpty(t, w.Body.Bytes())
}
