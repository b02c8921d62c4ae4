package service

import (
	"context"
	"errors"

	"github.com/roastline/roastline-backend/internal/app/model"
	"github.com/roastline/roastline-backend/internal/app/repository"
	"github.com/roastline/roastline-backend/internal/cache"
	"github.com/roastline/roastline-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidPrice    = errors.New("price must not be negative")
)

type CatalogService interface {
	ListProducts(filter repository.ProductFilter) ([]model.Product, error)
	GetProduct(id uint) (*model.Product, error)
	CreateProduct(product *model.Product) error
	UpdateProduct(product *model.Product) (*model.Product, error)
	DeleteProduct(id uint) error
}

type catalogService struct {
	productRepo repository.ProductRepository
	cache       *cache.ProductCache
}

func NewCatalogService(productRepo repository.ProductRepository, productCache *cache.ProductCache) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		cache:       productCache,
	}
}

func (s *catalogService) ListProducts(filter repository.ProductFilter) ([]model.Product, error) {
	logger.Debug("Fetching products", map[string]interface{}{
		"category": filter.Category,
		"origin":   filter.Origin,
		"search":   filter.Search,
	})

	// Only the unfiltered listing is cached; filtered queries go to the
	// store directly.
	unfiltered := filter == (repository.ProductFilter{})
	if unfiltered {
		if products, ok := s.cache.GetProductList(context.Background()); ok {
			logger.Debug("Product list served from cache", map[string]interface{}{
				"count": len(products),
			})
			return products, nil
		}
	}

	products, err := s.productRepo.FindWithFilter(filter)
	if err != nil {
		logger.Error("Failed to fetch products", err, nil)
		return nil, err
	}

	if unfiltered {
		s.cache.SetProductList(context.Background(), products)
	}

	logger.Info("Products fetched successfully", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (s *catalogService) GetProduct(id uint) (*model.Product, error) {
	logger.Debug("Fetching product", map[string]interface{}{
		"product_id": id,
	})

	if product, ok := s.cache.GetProduct(context.Background(), id); ok {
		return product, nil
	}

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	s.cache.SetProduct(context.Background(), product)
	return product, nil
}

func (s *catalogService) CreateProduct(product *model.Product) error {
	logger.Info("Creating product", map[string]interface{}{
		"name":     product.Name,
		"category": product.Category,
		"price":    product.Price,
	})

	if product.Price.IsNegative() {
		logger.Warn("Cannot create product: negative price", map[string]interface{}{
			"name":  product.Name,
			"price": product.Price,
		})
		return ErrInvalidPrice
	}

	if err := s.productRepo.Create(product); err != nil {
		logger.Error("Failed to create product", err, map[string]interface{}{
			"name": product.Name,
		})
		return err
	}

	s.cache.Invalidate(context.Background(), product.ID)

	logger.Info("Product created successfully", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return nil
}

func (s *catalogService) UpdateProduct(product *model.Product) (*model.Product, error) {
	logger.Info("Updating product", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})

	if product.Price.IsNegative() {
		return nil, ErrInvalidPrice
	}

	existing, err := s.productRepo.FindByID(product.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot update product: not found", map[string]interface{}{
				"product_id": product.ID,
			})
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	existing.Name = product.Name
	existing.Description = product.Description
	existing.Price = product.Price
	existing.Category = product.Category
	existing.Origin = product.Origin
	existing.RoastLevel = product.RoastLevel
	existing.TastingNotes = product.TastingNotes
	existing.ImageURL = product.ImageURL
	existing.InStock = product.InStock

	if err := s.productRepo.Update(existing); err != nil {
		logger.Error("Failed to update product", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return nil, err
	}

	s.cache.Invalidate(context.Background(), existing.ID)

	logger.Info("Product updated successfully", map[string]interface{}{
		"product_id": existing.ID,
	})
	return existing, nil
}

func (s *catalogService) DeleteProduct(id uint) error {
	logger.Info("Deleting product", map[string]interface{}{
		"product_id": id,
	})

	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	if err := s.productRepo.Delete(id); err != nil {
		logger.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}

	s.cache.Invalidate(context.Background(), id)

	logger.Info("Product deleted successfully", map[string]interface{}{
		"product_id": id,
	})
	return nil
}
