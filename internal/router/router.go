package router

import (
	"github.com/gin-gonic/gin"
	"github.com/roastline/roastline-backend/config"
	"github.com/roastline/roastline-backend/internal/app/controller"
	"github.com/roastline/roastline-backend/internal/middleware"
	"github.com/roastline/roastline-backend/internal/websocket"
)

type Router struct {
	authController         *controller.AuthController
	productController      *controller.ProductController
	cartController         *controller.CartController
	orderController        *controller.OrderController
	notificationController *controller.NotificationController
	uploadController       *controller.UploadController
	authMiddleware         *middleware.AuthMiddleware
	hub                    *websocket.Hub
	config                 *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	productController *controller.ProductController,
	cartController *controller.CartController,
	orderController *controller.OrderController,
	notificationController *controller.NotificationController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	hub *websocket.Hub,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:         authController,
		productController:      productController,
		cartController:         cartController,
		orderController:        orderController,
		notificationController: notificationController,
		uploadController:       uploadController,
		authMiddleware:         authMiddleware,
		hub:                    hub,
		config:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":     "healthy",
			"message":    "ROASTLINE API is running",
			"ws_clients": r.hub.ClientCount(),
		})
	})

	// Live notification feed for storefront clients.
	router.GET("/ws/notifications", websocket.ServeWS(r.hub))

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", r.authController.Login)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.Me)
		}

		products := v1.Group("/products")
		{
			products.GET("", r.productController.ListProducts)
			products.GET("/:id", r.productController.GetProduct)

			products.POST("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireAdmin(),
				r.productController.CreateProduct,
			)
			products.PUT("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireAdmin(),
				r.productController.UpdateProduct,
			)
			products.DELETE("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireAdmin(),
				r.productController.DeleteProduct,
			)
		}

		cart := v1.Group("/cart", middleware.Session())
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("", r.cartController.AddItem)
			cart.PUT("/:id", r.cartController.UpdateItem)
			cart.DELETE("/:id", r.cartController.RemoveItem)
			cart.DELETE("", r.cartController.ClearCart)
		}

		orders := v1.Group("/orders")
		{
			orders.POST("", middleware.Session(), r.orderController.PlaceOrder)

			orders.GET("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireAdmin(),
				r.orderController.ListOrders,
			)
			orders.GET("/export",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireAdmin(),
				r.orderController.ExportOrders,
			)
			orders.GET("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireAdmin(),
				r.orderController.GetOrder,
			)
			orders.PUT("/:id/status",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireAdmin(),
				r.orderController.UpdateStatus,
			)
		}

		notifications := v1.Group("/notifications",
			r.authMiddleware.Authenticate(),
			r.authMiddleware.RequireAdmin(),
		)
		{
			notifications.POST("", r.notificationController.Dispatch)
			notifications.GET("", r.notificationController.List)
		}

		uploads := v1.Group("/uploads",
			r.authMiddleware.Authenticate(),
			r.authMiddleware.RequireAdmin(),
		)
		{
			uploads.POST("/product-image", r.uploadController.PresignProductImage)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Session-Token, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Session-Token, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
