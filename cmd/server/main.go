package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/roastline/roastline-backend/config"
	"github.com/roastline/roastline-backend/internal/app/controller"
	"github.com/roastline/roastline-backend/internal/app/repository"
	"github.com/roastline/roastline-backend/internal/app/service"
	"github.com/roastline/roastline-backend/internal/cache"
	"github.com/roastline/roastline-backend/internal/db"
	"github.com/roastline/roastline-backend/internal/middleware"
	"github.com/roastline/roastline-backend/internal/router"
	"github.com/roastline/roastline-backend/internal/scheduler"
	"github.com/roastline/roastline-backend/internal/storage"
	"github.com/roastline/roastline-backend/internal/websocket"
	"github.com/roastline/roastline-backend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting ROASTLINE Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	database, err := db.Connect(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", err)
	}
	defer func() {
		if err := db.Close(database); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(database); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	productCache, err := cache.NewProductCache(&cfg.Redis)
	if err != nil {
		logger.Warn("Redis unavailable, catalog cache disabled", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if productCache != nil {
		defer productCache.Close()
	}

	// Repositories
	productRepo := repository.NewProductRepository(database)
	cartRepo := repository.NewCartRepository(database)
	orderRepo := repository.NewOrderRepository(database)
	adminRepo := repository.NewAdminUserRepository(database)
	notificationRepo := repository.NewNotificationRepository(database)

	// Live notification feed
	hub := websocket.NewHub()
	go hub.Run()

	// Services
	catalogService := service.NewCatalogService(productRepo, productCache)
	cartService := service.NewCartService(cartRepo, productRepo)
	orderService := service.NewOrderService(database, orderRepo)
	exportService := service.NewExportService(orderService)
	authService := service.NewAuthService(adminRepo, &cfg.JWT)
	notificationService := service.NewNotificationService(notificationRepo, productRepo, hub)

	// Controllers
	authController := controller.NewAuthController(authService)
	productController := controller.NewProductController(catalogService)
	cartController := controller.NewCartController(cartService)
	orderController := controller.NewOrderController(orderService, exportService)
	notificationController := controller.NewNotificationController(notificationService)

	var imageStorage *storage.ImageStorage
	if cfg.S3.Bucket != "" {
		imageStorage = storage.NewImageStorage(
			cfg.S3.Region,
			cfg.S3.Bucket,
			cfg.S3.AccessKeyID,
			cfg.S3.SecretAccessKey,
			cfg.S3.BaseURL,
		)
	} else {
		logger.Warn("S3 bucket not configured, image uploads disabled", nil)
	}
	uploadController := controller.NewUploadController(imageStorage)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	cartCleanup := scheduler.NewCartCleanupScheduler(cartRepo, cfg.Cart.TTLDays)
	if err := cartCleanup.Start(); err != nil {
		logger.Fatal("Failed to start cart cleanup scheduler", err)
	}

	r := router.NewRouter(
		authController,
		productController,
		cartController,
		orderController,
		notificationController,
		uploadController,
		authMiddleware,
		hub,
		cfg,
	)
	engine := r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: engine,
	}

	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	cartCleanup.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced server shutdown", err)
	}

	logger.Info("Server stopped successfully")
}
