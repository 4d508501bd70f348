package store

import (
	"context"
	"fmt"
	"sync"

	perrors "github.com/abgdnv/crickstore/internal/errors"
	"github.com/google/uuid"
)

// inMemoryProducts implements ProductStore using an ordered in-memory map.
type inMemoryProducts struct {
	mu       sync.RWMutex
	products *ordered[Product]
}

// NewInMemoryProductStore creates a new, empty instance of ProductStore.
func NewInMemoryProductStore() ProductStore {
	return &inMemoryProducts{
		products: newOrdered[Product](),
	}
}

// FindByID retrieves a product by its ID.
func (s *inMemoryProducts) FindByID(_ context.Context, id uuid.UUID) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products.get(id)
	if !ok {
		return nil, perrors.ErrProductNotFound
	}
	return &p, nil
}

// FindAll retrieves all products in creation order.
func (s *inMemoryProducts) FindAll(_ context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.products.values(), nil
}

// Create stores a new product under a freshly generated ID and returns it.
func (s *inMemoryProducts) Create(_ context.Context, product Product) (*Product, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate product ID: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product.ID = id
	s.products.append(id, product)
	return &product, nil
}

// Update replaces name, category, price, stock and SKU of an existing product.
func (s *inMemoryProducts) Update(_ context.Context, product Product) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.products.replace(product.ID, product) {
		return nil, perrors.ErrProductNotFound
	}
	return &product, nil
}

// AdjustStock adds delta to the stock of a product unless the result would be negative.
func (s *inMemoryProducts) AdjustStock(_ context.Context, id uuid.UUID, delta int32) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products.get(id)
	if !ok {
		return nil, perrors.ErrProductNotFound
	}
	if p.Stock+delta < 0 {
		return nil, fmt.Errorf("product %s. Available: %d, Requested: %d: %w", p.Name, p.Stock, -delta, perrors.ErrInsufficientStock)
	}
	p.Stock += delta
	s.products.replace(id, p)
	return &p, nil
}

// inMemorySales implements SaleStore using an ordered in-memory map, newest first.
type inMemorySales struct {
	mu    sync.RWMutex
	sales *ordered[Sale]
}

// NewInMemorySaleStore creates a new, empty instance of SaleStore.
func NewInMemorySaleStore() SaleStore {
	return &inMemorySales{
		sales: newOrdered[Sale](),
	}
}

// FindByID retrieves a sale by its ID.
func (s *inMemorySales) FindByID(_ context.Context, id uuid.UUID) (*Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sale, ok := s.sales.get(id)
	if !ok {
		return nil, perrors.ErrSaleNotFound
	}
	return &sale, nil
}

// FindAll retrieves the sales history, most recent first.
func (s *inMemorySales) FindAll(_ context.Context) ([]Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sales.values(), nil
}

// Create stores a new sale in front of the history and returns it.
func (s *inMemorySales) Create(_ context.Context, sale Sale) (*Sale, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate sale ID: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sale.ID = id
	s.sales.prepend(id, sale)
	return &sale, nil
}

// UpdateField sets the payment or shipping status of a sale. Any value of the
// field's enum may follow any other.
func (s *inMemorySales) UpdateField(_ context.Context, id uuid.UUID, field SaleField, value string) (*Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sale, ok := s.sales.get(id)
	if !ok {
		return nil, perrors.ErrSaleNotFound
	}
	switch field {
	case FieldPaymentStatus:
		sale.PaymentStatus = PaymentStatus(value)
	case FieldShippingStatus:
		sale.ShippingStatus = ShippingStatus(value)
	default:
		return nil, fmt.Errorf("unknown sale field %q: %w", field, perrors.ErrInvalidStatus)
	}
	s.sales.replace(id, sale)
	return &sale, nil
}
