// Package store provides interfaces for inventory and sales storage operations.
package store

import (
	"context"

	"github.com/google/uuid"
)

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
type ProductStore interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindAll returns all products in the order they were created.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]Product, error)

	// Create assigns a new ID to the product and appends it to the inventory.
	Create(ctx context.Context, product Product) (*Product, error)

	// Update replaces every field of an existing product except its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, product Product) (*Product, error)

	// AdjustStock changes the stock of a product by delta in a single step.
	// Returns ErrProductNotFound if no product exists with the given ID and
	// ErrInsufficientStock if the resulting stock would be negative.
	AdjustStock(ctx context.Context, id uuid.UUID, delta int32) (*Product, error)
}

// SaleStore is an interface for sale storage operations.
type SaleStore interface {
	// FindByID retrieves a single sale by its unique identifier.
	// Returns ErrSaleNotFound if no sale exists with the given ID.
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)

	// FindAll returns all sales, most recent first.
	FindAll(ctx context.Context) ([]Sale, error)

	// Create assigns a new ID to the sale and puts it in front of the history.
	Create(ctx context.Context, sale Sale) (*Sale, error)

	// UpdateField sets one status field of a sale.
	// Returns ErrSaleNotFound if no sale exists with the given ID.
	UpdateField(ctx context.Context, id uuid.UUID, field SaleField, value string) (*Sale, error)
}
