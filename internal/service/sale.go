package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	perrors "github.com/abgdnv/crickstore/internal/errors"
	"github.com/abgdnv/crickstore/internal/store"
	"github.com/abgdnv/crickstore/pkg/messaging"
	"github.com/abgdnv/crickstore/pkg/messaging/events"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/abgdnv/crickstore/internal/service"

// SaleService defines the methods for recording sales and tracking their status.
type SaleService interface {
	// FindByID retrieves a single sale by its unique identifier.
	// Returns ErrSaleNotFound if no sale exists with the given ID.
	FindByID(ctx context.Context, id uuid.UUID) (*SaleDto, error)

	// FindAll returns the sales history, most recent first.
	FindAll(ctx context.Context) ([]SaleDto, error)

	// Record validates a sale, decrements the product stock and stores the sale as one step.
	// Returns ErrValidation, ErrProductNotFound or ErrInsufficientStock without mutating anything.
	Record(ctx context.Context, sale SaleCreateDto) (*SaleDto, error)

	// UpdateStatus sets the payment or shipping status of a sale.
	// Returns ErrInvalidStatus for an unknown field or value and ErrSaleNotFound for an unknown sale.
	UpdateStatus(ctx context.Context, id uuid.UUID, update SaleStatusUpdateDto) (*SaleDto, error)
}

// Sales implements SaleService.
type Sales struct {
	mu        sync.Mutex
	products  store.ProductStore
	sales     store.SaleStore
	publisher messaging.Publisher
	validate  *validator.Validate
	clock     func() time.Time
	tracer    trace.Tracer

	salesCounter    metric.Int64Counter
	itemsCounter    metric.Int64Counter
	rejectedCounter metric.Int64Counter
}

// NewSaleService creates a new instance of SaleService.
// A nil publisher drops events and a nil clock uses time.Now.
func NewSaleService(products store.ProductStore, sales store.SaleStore, publisher messaging.Publisher, clock func() time.Time) *Sales {
	if publisher == nil {
		publisher = messaging.NopPublisher{}
	}
	if clock == nil {
		clock = time.Now
	}
	meter := otel.Meter(instrumentationName)
	salesCounter, err := meter.Int64Counter("sales_recorded", metric.WithDescription("Total number of recorded sales"))
	if err != nil {
		panic(fmt.Sprintf("failed to create sales_recorded counter: %v", err))
	}
	itemsCounter, err := meter.Int64Counter("items_sold", metric.WithDescription("Total number of sold items"))
	if err != nil {
		panic(fmt.Sprintf("failed to create items_sold counter: %v", err))
	}
	rejectedCounter, err := meter.Int64Counter("sales_rejected_insufficient_stock",
		metric.WithDescription("Total number of sales rejected because of insufficient stock"))
	if err != nil {
		panic(fmt.Sprintf("failed to create sales_rejected_insufficient_stock counter: %v", err))
	}
	return &Sales{
		products:        products,
		sales:           sales,
		publisher:       publisher,
		validate:        newValidator(),
		clock:           clock,
		tracer:          otel.Tracer(instrumentationName),
		salesCounter:    salesCounter,
		itemsCounter:    itemsCounter,
		rejectedCounter: rejectedCounter,
	}
}

// FindByID retrieves a sale by its ID and returns it as a SaleDto.
func (s *Sales) FindByID(ctx context.Context, id uuid.UUID) (*SaleDto, error) {
	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sale by ID %s: %w", id, err)
	}
	return toSaleDto(sale), nil
}

// FindAll retrieves the sales history and returns it as SaleDtos.
func (s *Sales) FindAll(ctx context.Context) ([]SaleDto, error) {
	sales, err := s.sales.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sales: %w", err)
	}
	saleDTOs := make([]SaleDto, len(sales))
	for i, item := range sales {
		saleDTOs[i] = *toSaleDto(&item)
	}
	return saleDTOs, nil
}

// Record records a sale and returns it as a SaleDto.
// The stock check, the decrement and the insert happen under one lock; the event is
// published after the lock is released.
func (s *Sales) Record(ctx context.Context, sale SaleCreateDto) (*SaleDto, error) {
	ctx, span := s.tracer.Start(ctx, "SaleService.Record",
		trace.WithAttributes(attribute.String("product.id", sale.ProductID.String()), attribute.Int("sale.quantity", int(sale.Quantity))))
	defer span.End()

	if sale.PaymentStatus == "" {
		sale.PaymentStatus = string(store.PaymentPending)
	}
	if sale.ShippingStatus == "" {
		sale.ShippingStatus = string(store.ShippingPending)
	}
	if err := validateStruct(s.validate, sale); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		return nil, err
	}

	product, created, err := s.commit(ctx, sale)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "sale not recorded")
		return nil, fmt.Errorf("failed to record sale: %w", err)
	}

	event := events.SaleRecordedEvent{
		SaleID:     created.ID,
		ProductID:  product.ID,
		Customer:   created.Customer,
		Quantity:   created.Quantity,
		Total:      created.Total,
		StockLeft:  product.Stock,
		RecordedAt: s.clock().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		slog.ErrorContext(ctx, "Failed to publish SaleRecordedEvent", "error", err)
	}
	s.salesCounter.Add(ctx, 1)
	s.itemsCounter.Add(ctx, int64(created.Quantity))

	return toSaleDto(created), nil
}

// commit decrements the stock and inserts the sale while holding s.mu.
// A failed insert puts the stock back.
func (s *Sales) commit(ctx context.Context, sale SaleCreateDto) (*store.Product, *store.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, err := s.products.AdjustStock(ctx, sale.ProductID, -sale.Quantity)
	if err != nil {
		if errors.Is(err, perrors.ErrInsufficientStock) {
			slog.WarnContext(ctx, "Insufficient stock", "product_id", sale.ProductID, "requested", sale.Quantity, "error", err)
			s.rejectedCounter.Add(ctx, 1)
		}
		return nil, nil, err
	}

	created, err := s.sales.Create(ctx, store.Sale{
		Customer:       sale.Customer,
		Product:        product.Name,
		Quantity:       sale.Quantity,
		Total:          product.Price.Mul(decimal.NewFromInt32(sale.Quantity)),
		PaymentStatus:  store.PaymentStatus(sale.PaymentStatus),
		ShippingStatus: store.ShippingStatus(sale.ShippingStatus),
		Date:           s.clock().UTC().Format(time.DateOnly),
	})
	if err != nil {
		if _, rollbackErr := s.products.AdjustStock(ctx, sale.ProductID, sale.Quantity); rollbackErr != nil {
			slog.ErrorContext(ctx, "Failed to restore stock after failed sale", "product_id", sale.ProductID, "error", rollbackErr)
		}
		return nil, nil, err
	}
	return product, created, nil
}

// UpdateStatus changes one status field of a sale and leaves the other untouched.
func (s *Sales) UpdateStatus(ctx context.Context, id uuid.UUID, update SaleStatusUpdateDto) (*SaleDto, error) {
	if err := validateStruct(s.validate, update); err != nil {
		return nil, fmt.Errorf("%w: %w", perrors.ErrInvalidStatus, err)
	}
	field := store.SaleField(update.Field)
	if !store.ValidStatus(field, update.Value) {
		return nil, fmt.Errorf("%q is not a valid %s: %w", update.Value, field, perrors.ErrInvalidStatus)
	}
	updated, err := s.sales.UpdateField(ctx, id, field, update.Value)
	if err != nil {
		return nil, fmt.Errorf("failed to update sale with ID %s: %w", id, err)
	}
	return toSaleDto(updated), nil
}

// toSaleDto converts a store.Sale to a SaleDto.
func toSaleDto(sale *store.Sale) *SaleDto {
	return &SaleDto{
		ID:             sale.ID,
		Customer:       sale.Customer,
		Product:        sale.Product,
		Quantity:       sale.Quantity,
		Total:          sale.Total,
		PaymentStatus:  string(sale.PaymentStatus),
		ShippingStatus: string(sale.ShippingStatus),
		Date:           sale.Date,
	}
}
