package controller

import (
	goerrors "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/roastline/roastline-backend/internal/app/model"
	"github.com/roastline/roastline-backend/internal/app/repository"
	"github.com/roastline/roastline-backend/internal/app/service"
	"github.com/roastline/roastline-backend/internal/errors"
	"github.com/roastline/roastline-backend/internal/middleware"
	"github.com/shopspring/decimal"
)

type ProductController struct {
	catalogService service.CatalogService
}

func NewProductController(catalogService service.CatalogService) *ProductController {
	return &ProductController{
		catalogService: catalogService,
	}
}

type CreateProductRequest struct {
	Name         string                `json:"name" binding:"required"`
	Description  string                `json:"description"`
	Price        decimal.Decimal       `json:"price" binding:"required"`
	Category     model.ProductCategory `json:"category" binding:"required"`
	Origin       string                `json:"origin"`
	RoastLevel   model.RoastLevel      `json:"roast_level"`
	TastingNotes []string              `json:"tasting_notes"`
	ImageURL     string                `json:"image_url"`
	InStock      *bool                 `json:"in_stock"`
}

// ListProducts returns the catalog, optionally filtered.
// GET /api/v1/products
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter := repository.ProductFilter{
		Origin: c.Query("origin"),
		Search: c.Query("search"),
		SortBy: repository.ProductSort(c.Query("sort_by")),
	}
	if v := c.Query("category"); v != "" {
		category := model.ProductCategory(v)
		filter.Category = &category
	}
	if v := c.Query("roast_level"); v != "" {
		roast := model.RoastLevel(v)
		filter.RoastLevel = &roast
	}
	filter.InStockOnly = c.Query("in_stock") == "true"
	if filter.SortBy != "" {
		filter.SortAscending = c.Query("sort_order") != "desc"
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil && offset > 0 {
		filter.Offset = offset
	}

	products, err := ctrl.catalogService.ListProducts(filter)
	if err != nil {
		log.Error("Failed to fetch products", err, nil)
		errors.InternalError(c, "Failed to fetch products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProduct returns a single product.
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := ctrl.catalogService.GetProduct(id)
	if err != nil {
		if goerrors.Is(err, service.ErrProductNotFound) {
			errors.NotFound(c, errors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		errors.InternalError(c, "Failed to fetch product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// CreateProduct creates a catalog entry. Admin only.
// POST /api/v1/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid product creation request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	inStock := true
	if req.InStock != nil {
		inStock = *req.InStock
	}

	product := &model.Product{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Category:     req.Category,
		Origin:       req.Origin,
		RoastLevel:   req.RoastLevel,
		TastingNotes: req.TastingNotes,
		ImageURL:     req.ImageURL,
		InStock:      inStock,
	}

	if err := ctrl.catalogService.CreateProduct(product); err != nil {
		if goerrors.Is(err, service.ErrInvalidPrice) {
			errors.BadRequest(c, errors.ValidationInvalidInput, "Price must not be negative")
			return
		}
		log.Error("Failed to create product", err, map[string]interface{}{
			"name": req.Name,
		})
		errors.RespondWithStorageError(c, err, "product")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"product": product,
	})
}

// UpdateProduct replaces a product's mutable fields. Admin only.
// PUT /api/v1/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid product update request", map[string]interface{}{
			"product_id": id,
			"error":      err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	inStock := true
	if req.InStock != nil {
		inStock = *req.InStock
	}

	product := &model.Product{
		ID:           id,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Category:     req.Category,
		Origin:       req.Origin,
		RoastLevel:   req.RoastLevel,
		TastingNotes: req.TastingNotes,
		ImageURL:     req.ImageURL,
		InStock:      inStock,
	}

	updated, err := ctrl.catalogService.UpdateProduct(product)
	if err != nil {
		switch {
		case goerrors.Is(err, service.ErrProductNotFound):
			errors.NotFound(c, errors.ProductNotFound, "Product not found")
		case goerrors.Is(err, service.ErrInvalidPrice):
			errors.BadRequest(c, errors.ValidationInvalidInput, "Price must not be negative")
		default:
			log.Error("Failed to update product", err, map[string]interface{}{
				"product_id": id,
			})
			errors.InternalError(c, "Failed to update product")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": updated,
	})
}

// DeleteProduct soft-deletes a catalog entry. Admin only.
// DELETE /api/v1/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.catalogService.DeleteProduct(id); err != nil {
		if goerrors.Is(err, service.ErrProductNotFound) {
			errors.NotFound(c, errors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		errors.InternalError(c, "Failed to delete product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted",
	})
}

// parseIDParam parses a positive integer path parameter, responding with a
// standard validation error on failure.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	idStr := c.Param(name)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}
