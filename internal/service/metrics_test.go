package service

import (
	"context"
	"errors"
	"testing"

	"github.com/abgdnv/crickstore/internal/store"
	"github.com/abgdnv/crickstore/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSaleStore is a mock implementation of the SaleStore interface
type mockSaleStore struct {
	store.SaleStore
	sales []store.Sale
	error error
}

func (m *mockSaleStore) FindAll(_ context.Context) ([]store.Sale, error) {
	return m.sales, m.error
}

func Test_Metrics_Totals(t *testing.T) {
	testCases := []struct {
		name            string
		sales           []store.Sale
		expectedRevenue decimal.Decimal
		expectedItems   int64
	}{
		{
			name:            "Empty history",
			expectedRevenue: decimal.Zero,
		},
		{
			name:            "Seeded history",
			sales:           store.SeedSales(),
			expectedRevenue: decimal.NewFromInt(650),
			expectedItems:   13,
		},
		{
			name: "Fractional totals",
			sales: []store.Sale{
				{Quantity: 3, Total: decimal.RequireFromString("10.50")},
				{Quantity: 1, Total: decimal.RequireFromString("0.25")},
			},
			expectedRevenue: decimal.RequireFromString("10.75"),
			expectedItems:   4,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			m := NewMetrics(&mockProductStore{}, &mockSaleStore{sales: tc.sales}, money.NewFormatter(""), 0)
			// when
			revenue, err := m.TotalRevenue(context.Background())
			require.NoError(t, err)
			items, err := m.TotalItemsSold(context.Background())
			require.NoError(t, err)
			// then
			assert.True(t, tc.expectedRevenue.Equal(revenue), "expected %s, got %s", tc.expectedRevenue, revenue)
			assert.Equal(t, tc.expectedItems, items)
		})
	}
}

func Test_Metrics_Errors(t *testing.T) {
	// given
	storeErr := errors.New("store unavailable")
	m := NewMetrics(&mockProductStore{}, &mockSaleStore{error: storeErr}, money.NewFormatter(""), 0)
	// when
	_, revenueErr := m.TotalRevenue(context.Background())
	_, itemsErr := m.TotalItemsSold(context.Background())
	summary, summaryErr := m.Summary(context.Background())
	// then
	assert.ErrorIs(t, revenueErr, storeErr)
	assert.ErrorIs(t, itemsErr, storeErr)
	assert.ErrorIs(t, summaryErr, storeErr)
	assert.Nil(t, summary)
}

func Test_Metrics_Summary_FollowsRecordedSales(t *testing.T) {
	// given
	ctx := context.Background()
	products, sales, bySKU := seededShop(t)
	m := NewMetrics(products, sales, money.NewFormatter(""), DefaultLowStockThreshold)
	svc := NewSaleService(products, sales, nil, fixedClock)
	// when
	_, err := svc.Record(ctx, SaleCreateDto{Customer: "Rahul D.", ProductID: bySKU["GLV-KP-022"].ID, Quantity: 4})
	require.NoError(t, err)
	summary, err := m.Summary(ctx)
	// then
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(870).Equal(summary.TotalRevenue))
	assert.Equal(t, "₹870", summary.TotalRevenueDisplay)
	assert.Equal(t, int64(17), summary.TotalItemsSold)
	assert.Equal(t, 4, summary.Products)
	assert.Equal(t, 3, summary.Sales)
	assert.Equal(t, 1, summary.LowStockProducts, "gloves drop to 4")
}
