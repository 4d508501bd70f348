// Package service provides the implementation of inventory and sales business logic.
package service

import (
	"context"
	"fmt"

	"github.com/abgdnv/crickstore/internal/store"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// DefaultLowStockThreshold is the stock level below which a product is flagged as low on stock.
const DefaultLowStockThreshold int32 = 5

// ProductService defines the methods for managing the inventory.
type ProductService interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id uuid.UUID) (*ProductDto, error)

	// FindAll returns the whole inventory in creation order.
	FindAll(ctx context.Context) ([]ProductDto, error)

	// Create adds a new product to the inventory.
	// Returns ErrValidation if the product is not valid.
	Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error)

	// Update overwrites every field of an existing product except its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, product ProductDto) (*ProductDto, error)
}

// Products implements ProductService.
type Products struct {
	repository        store.ProductStore
	validate          *validator.Validate
	lowStockThreshold int32
}

// NewProductService creates a new instance of ProductService with the provided repository.
// A non-positive threshold falls back to DefaultLowStockThreshold.
func NewProductService(repo store.ProductStore, lowStockThreshold int32) *Products {
	if lowStockThreshold <= 0 {
		lowStockThreshold = DefaultLowStockThreshold
	}
	return &Products{
		repository:        repo,
		validate:          newValidator(),
		lowStockThreshold: lowStockThreshold,
	}
}

// FindByID retrieves a product by its ID and returns it as a ProductDto.
func (s *Products) FindByID(ctx context.Context, id uuid.UUID) (*ProductDto, error) {
	product, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %s: %w", id, err)
	}
	return s.toDto(product), nil
}

// FindAll retrieves the inventory and returns it as ProductDTOs.
func (s *Products) FindAll(ctx context.Context) ([]ProductDto, error) {
	products, err := s.repository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	productDTOs := make([]ProductDto, len(products))
	for i, item := range products {
		productDTOs[i] = *s.toDto(&item)
	}
	return productDTOs, nil
}

// Create validates and stores a new product.
func (s *Products) Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error) {
	if err := validateStruct(s.validate, product); err != nil {
		return nil, err
	}
	p, err := s.repository.Create(ctx, store.Product{
		Name:     product.Name,
		Category: store.Category(product.Category),
		Price:    product.Price,
		Stock:    product.Stock,
		SKU:      product.SKU,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return s.toDto(p), nil
}

// Update validates the product and replaces the stored record with the same ID.
func (s *Products) Update(ctx context.Context, product ProductDto) (*ProductDto, error) {
	if err := validateStruct(s.validate, product); err != nil {
		return nil, err
	}
	updated, err := s.repository.Update(ctx, store.Product{
		ID:       product.ID,
		Name:     product.Name,
		Category: store.Category(product.Category),
		Price:    product.Price,
		Stock:    product.Stock,
		SKU:      product.SKU,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update product with ID %s: %w", product.ID, err)
	}
	return s.toDto(updated), nil
}

// toDto converts a store.Product to a ProductDto.
func (s *Products) toDto(product *store.Product) *ProductDto {
	return &ProductDto{
		ID:       product.ID,
		Name:     product.Name,
		Category: string(product.Category),
		Price:    product.Price,
		Stock:    product.Stock,
		SKU:      product.SKU,
		LowStock: IsLowStock(product.Stock, s.lowStockThreshold),
	}
}

// IsLowStock reports whether stock is below the threshold.
func IsLowStock(stock, threshold int32) bool {
	return stock < threshold
}
