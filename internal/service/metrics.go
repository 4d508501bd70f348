package service

import (
	"context"
	"fmt"

	"github.com/abgdnv/crickstore/internal/store"
	"github.com/abgdnv/crickstore/pkg/money"
	"github.com/shopspring/decimal"
)

// Metrics derives the shop totals from the stores. Nothing is cached, every call
// reads the current history.
type Metrics struct {
	products          store.ProductStore
	sales             store.SaleStore
	formatter         money.Formatter
	lowStockThreshold int32
}

// NewMetrics creates a new Metrics view over the given stores.
func NewMetrics(products store.ProductStore, sales store.SaleStore, formatter money.Formatter, lowStockThreshold int32) *Metrics {
	if lowStockThreshold <= 0 {
		lowStockThreshold = DefaultLowStockThreshold
	}
	return &Metrics{
		products:          products,
		sales:             sales,
		formatter:         formatter,
		lowStockThreshold: lowStockThreshold,
	}
}

// TotalRevenue returns the sum of all sale totals.
func (m *Metrics) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	sales, err := m.sales.FindAll(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to fetch sales: %w", err)
	}
	total := decimal.Zero
	for _, s := range sales {
		total = total.Add(s.Total)
	}
	return total, nil
}

// TotalItemsSold returns the sum of all sale quantities.
func (m *Metrics) TotalItemsSold(ctx context.Context) (int64, error) {
	sales, err := m.sales.FindAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch sales: %w", err)
	}
	var items int64
	for _, s := range sales {
		items += int64(s.Quantity)
	}
	return items, nil
}

// Summary returns every header metric from a single read of each store.
func (m *Metrics) Summary(ctx context.Context) (*MetricsDto, error) {
	sales, err := m.sales.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sales: %w", err)
	}
	products, err := m.products.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	summary := MetricsDto{
		TotalRevenue: decimal.Zero,
		Products:     len(products),
		Sales:        len(sales),
	}
	for _, s := range sales {
		summary.TotalRevenue = summary.TotalRevenue.Add(s.Total)
		summary.TotalItemsSold += int64(s.Quantity)
	}
	for _, p := range products {
		if IsLowStock(p.Stock, m.lowStockThreshold) {
			summary.LowStockProducts++
		}
	}
	summary.TotalRevenueDisplay = m.formatter.Format(summary.TotalRevenue)
	return &summary, nil
}
