package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/roastline/roastline-backend/config"
	"github.com/roastline/roastline-backend/internal/app/model"
	"github.com/roastline/roastline-backend/pkg/logger"
)

const (
	productKeyPrefix = "catalog:product:"
	productListKey   = "catalog:products"
)

// ProductCache is a read-through cache for the catalog, which is read-mostly.
// All methods are safe on a nil receiver so redis-less deployments and tests
// just skip caching.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProductCache connects to redis. Returns nil (cache disabled) when no
// redis host is configured.
func NewProductCache(cfg *config.RedisConfig) (*ProductCache, error) {
	addr := cfg.Addr()
	if addr == "" {
		logger.Info("Redis not configured, catalog cache disabled")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"addr": addr,
		})
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully", map[string]interface{}{
		"addr": addr,
	})
	return &ProductCache{client: client, ttl: cfg.CacheTTL}, nil
}

// Close closes the redis connection.
func (c *ProductCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

// GetProduct returns the cached product and whether it was present.
func (c *ProductCache) GetProduct(ctx context.Context, id uint) (*model.Product, bool) {
	if c == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, fmt.Sprintf("%s%d", productKeyPrefix, id)).Bytes()
	if err != nil {
		return nil, false
	}

	var product model.Product
	if err := json.Unmarshal(data, &product); err != nil {
		logger.Warn("Failed to decode cached product", map[string]interface{}{
			"product_id": id,
			"error":      err.Error(),
		})
		return nil, false
	}
	return &product, true
}

// SetProduct caches a product. Best effort; failures are logged and ignored.
func (c *ProductCache) SetProduct(ctx context.Context, product *model.Product) {
	if c == nil {
		return
	}

	data, err := json.Marshal(product)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, fmt.Sprintf("%s%d", productKeyPrefix, product.ID), data, c.ttl).Err(); err != nil {
		logger.Warn("Failed to cache product", map[string]interface{}{
			"product_id": product.ID,
			"error":      err.Error(),
		})
	}
}

// GetProductList returns the cached unfiltered catalog listing.
func (c *ProductCache) GetProductList(ctx context.Context) ([]model.Product, bool) {
	if c == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, productListKey).Bytes()
	if err != nil {
		return nil, false
	}

	var products []model.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, false
	}
	return products, true
}

// SetProductList caches the unfiltered catalog listing.
func (c *ProductCache) SetProductList(ctx context.Context, products []model.Product) {
	if c == nil {
		return
	}

	data, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, productListKey, data, c.ttl).Err(); err != nil {
		logger.Warn("Failed to cache product list", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// Invalidate drops a product entry and the list entry after an admin
// mutation.
func (c *ProductCache) Invalidate(ctx context.Context, id uint) {
	if c == nil {
		return
	}

	if err := c.client.Del(ctx, fmt.Sprintf("%s%d", productKeyPrefix, id), productListKey).Err(); err != nil {
		logger.Warn("Failed to invalidate product cache", map[string]interface{}{
			"product_id": id,
			"error":      err.Error(),
		})
	}
}
