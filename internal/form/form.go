// Package form holds the state of the product and sale entry forms shared by the user interfaces.
package form

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	perrors "github.com/abgdnv/crickstore/internal/errors"
	"github.com/abgdnv/crickstore/internal/service"
	"github.com/abgdnv/crickstore/internal/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind identifies which form is open.
type Kind int

const (
	KindNone Kind = iota
	KindProduct
	KindSale
)

func (k Kind) String() string {
	switch k {
	case KindProduct:
		return "product"
	case KindSale:
		return "sale"
	default:
		return "none"
	}
}

// ProductDraft holds the raw product form input.
type ProductDraft struct {
	Name     string
	Category string
	Price    string
	Stock    string
	SKU      string
}

// SaleDraft holds the raw sale form input.
type SaleDraft struct {
	Customer       string
	ProductID      uuid.UUID
	Quantity       string
	PaymentStatus  string
	ShippingStatus string
}

func newProductDraft() ProductDraft {
	return ProductDraft{Category: string(store.CategoryBats)}
}

func newSaleDraft() SaleDraft {
	return SaleDraft{
		Quantity:       "1",
		PaymentStatus:  string(store.PaymentPending),
		ShippingStatus: string(store.ShippingPending),
	}
}

// State tracks the open form, both drafts and the product being edited.
// EditingID is uuid.Nil unless an existing product is being edited.
type State struct {
	Kind      Kind
	Product   ProductDraft
	Sale      SaleDraft
	EditingID uuid.UUID

	products service.ProductService
	sales    service.SaleService
}

// New creates a closed form state backed by the given services.
func New(products service.ProductService, sales service.SaleService) *State {
	return &State{
		Product:  newProductDraft(),
		Sale:     newSaleDraft(),
		products: products,
		sales:    sales,
	}
}

// IsEditing reports whether the product form edits an existing product.
func (s *State) IsEditing() bool {
	return s.EditingID != uuid.Nil
}

// OpenAddProduct opens an empty product form.
func (s *State) OpenAddProduct() {
	s.Product = newProductDraft()
	s.EditingID = uuid.Nil
	s.Kind = KindProduct
}

// OpenEditProduct opens the product form filled with p.
func (s *State) OpenEditProduct(p service.ProductDto) {
	s.Product = ProductDraft{
		Name:     p.Name,
		Category: p.Category,
		Price:    p.Price.String(),
		Stock:    strconv.FormatInt(int64(p.Stock), 10),
		SKU:      p.SKU,
	}
	s.EditingID = p.ID
	s.Kind = KindProduct
}

// SubmitProduct saves the product draft. On success the form is closed and cleared;
// on any error it stays open with the input kept.
func (s *State) SubmitProduct(ctx context.Context) (*service.ProductDto, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(s.Product.Price))
	if err != nil {
		return nil, fmt.Errorf("price %q is not a number: %w", s.Product.Price, perrors.ErrInvalidDraft)
	}
	stock, err := strconv.ParseInt(strings.TrimSpace(s.Product.Stock), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("stock %q is not a whole number: %w", s.Product.Stock, perrors.ErrInvalidDraft)
	}

	var saved *service.ProductDto
	if s.IsEditing() {
		saved, err = s.products.Update(ctx, service.ProductDto{
			ID:       s.EditingID,
			Name:     strings.TrimSpace(s.Product.Name),
			Category: s.Product.Category,
			Price:    price,
			Stock:    int32(stock),
			SKU:      strings.TrimSpace(s.Product.SKU),
		})
	} else {
		saved, err = s.products.Create(ctx, service.ProductCreateDto{
			Name:     strings.TrimSpace(s.Product.Name),
			Category: s.Product.Category,
			Price:    price,
			Stock:    int32(stock),
			SKU:      strings.TrimSpace(s.Product.SKU),
		})
	}
	if err != nil {
		return nil, err
	}
	s.Close()
	return saved, nil
}

// OpenRecordSale opens the sale form with its defaults.
func (s *State) OpenRecordSale() {
	s.Sale = newSaleDraft()
	s.Kind = KindSale
}

// SubmitSale records the sale draft. On success the form is closed and cleared;
// on any error, insufficient stock included, it stays open with the input kept.
func (s *State) SubmitSale(ctx context.Context) (*service.SaleDto, error) {
	quantity, err := strconv.ParseInt(strings.TrimSpace(s.Sale.Quantity), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("quantity %q is not a whole number: %w", s.Sale.Quantity, perrors.ErrInvalidDraft)
	}
	sale, err := s.sales.Record(ctx, service.SaleCreateDto{
		Customer:       strings.TrimSpace(s.Sale.Customer),
		ProductID:      s.Sale.ProductID,
		Quantity:       int32(quantity),
		PaymentStatus:  s.Sale.PaymentStatus,
		ShippingStatus: s.Sale.ShippingStatus,
	})
	if err != nil {
		return nil, err
	}
	s.Close()
	return sale, nil
}

// Close closes whichever form is open and clears both drafts and the editing id.
func (s *State) Close() {
	s.Product = newProductDraft()
	s.Sale = newSaleDraft()
	s.EditingID = uuid.Nil
	s.Kind = KindNone
}
