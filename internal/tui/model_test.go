package tui

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/abgdnv/crickstore/internal/form"
	"github.com/abgdnv/crickstore/internal/service"
	"github.com/abgdnv/crickstore/internal/store"
	"github.com/abgdnv/crickstore/pkg/money"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T, extra ...store.Product) Model {
	t.Helper()
	ctx := context.Background()
	products := store.NewInMemoryProductStore()
	sales := store.NewInMemorySaleStore()
	require.NoError(t, store.Seed(ctx, products, sales))
	for _, p := range extra {
		_, err := products.Create(ctx, p)
		require.NoError(t, err)
	}
	formatter := money.NewFormatter("")
	clock := func() time.Time { return time.Date(2024, time.March, 14, 9, 0, 0, 0, time.UTC) }
	return New(ctx, Options{
		Products:  service.NewProductService(products, 5),
		Sales:     service.NewSaleService(products, sales, nil, clock),
		Metrics:   service.NewMetrics(products, sales, formatter, 5),
		Formatter: formatter,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyOf(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func press(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestNew_LoadsSeededListings(t *testing.T) {
	// when
	m := newTestModel(t)

	// then
	assert.Len(t, m.productList, 4)
	assert.Len(t, m.saleList, 2)
	assert.True(t, decimal.NewFromInt(650).Equal(m.summary.TotalRevenue))
	assert.Equal(t, int64(13), m.summary.TotalItemsSold)

	view := m.View()
	assert.Contains(t, view, "CrickStore")
	assert.Contains(t, view, "₹650")
	assert.Contains(t, view, "English Willow Bat (Grade A)")
	assert.Contains(t, view, "In Stock")
}

func TestTabs(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, TabInventory, m.tab)

	m = press(m, keyOf(tea.KeyTab))
	assert.Equal(t, TabSales, m.tab)
	assert.Contains(t, m.View(), "Ready to Ship")
	assert.Contains(t, m.View(), "Local Club XI")

	m = press(m, keyOf(tea.KeyTab))
	assert.Equal(t, TabInventory, m.tab)

	m = press(m, runes("2"))
	assert.Equal(t, TabSales, m.tab)
	m = press(m, runes("1"))
	assert.Equal(t, TabInventory, m.tab)
}

func TestCursor_StaysWithinListing(t *testing.T) {
	m := newTestModel(t)

	m = press(m, runes("k"))
	assert.Equal(t, 0, m.productCursor)

	for range 10 {
		m = press(m, runes("j"))
	}
	assert.Equal(t, 3, m.productCursor)

	m = press(m, keyOf(tea.KeyUp))
	assert.Equal(t, 2, m.productCursor)
}

func TestRecordSale(t *testing.T) {
	// given
	m := newTestModel(t)

	// when
	m = press(m,
		runes("n"),
		runes("Local Club XI"),
		keyOf(tea.KeyTab),
		keyOf(tea.KeyRight), keyOf(tea.KeyRight), // match ball
		keyOf(tea.KeyTab),
		keyOf(tea.KeyBackspace),
		runes("12"),
	)
	assert.Contains(t, m.View(), "₹300")
	m = press(m, keyOf(tea.KeyEnter))

	// then
	assert.Equal(t, form.KindNone, m.form.Kind)
	assert.Nil(t, m.fields)
	assert.Empty(t, m.alert)
	assert.Equal(t, TabSales, m.tab)
	require.Len(t, m.saleList, 3)
	assert.Equal(t, "Local Club XI", m.saleList[0].Customer)
	assert.Equal(t, "Leather Match Ball (Red)", m.saleList[0].Product)
	assert.True(t, decimal.NewFromInt(300).Equal(m.saleList[0].Total))
	assert.Equal(t, "2024-03-14", m.saleList[0].Date)
	assert.Equal(t, int32(138), m.productList[1].Stock)
	assert.True(t, decimal.NewFromInt(950).Equal(m.summary.TotalRevenue))
	assert.Equal(t, int64(25), m.summary.TotalItemsSold)
	assert.Contains(t, m.notice, "Recorded sale")
}

func TestRecordSale_InsufficientStockKeepsForm(t *testing.T) {
	// given
	m := newTestModel(t)

	// when
	m = press(m,
		runes("n"),
		runes("Club"),
		keyOf(tea.KeyTab),
		keyOf(tea.KeyRight), keyOf(tea.KeyRight), keyOf(tea.KeyRight), // keeper gloves
		keyOf(tea.KeyTab),
		keyOf(tea.KeyBackspace),
		runes("9"),
		keyOf(tea.KeyEnter),
	)

	// then
	assert.Equal(t, "Insufficient stock!", m.alert)
	assert.Contains(t, m.View(), "Insufficient stock!")
	assert.Equal(t, form.KindSale, m.form.Kind)
	assert.Equal(t, "Club", m.fields[saleCustomer].value())
	assert.Equal(t, "9", m.fields[saleQuantity].value())
	assert.Len(t, m.saleList, 2)
	assert.Equal(t, int32(8), m.productList[2].Stock)

	// any key dismisses the alert and is not typed into the form
	m = press(m, runes("x"))
	assert.Empty(t, m.alert)
	assert.Equal(t, form.KindSale, m.form.Kind)
	assert.Equal(t, "9", m.fields[saleQuantity].value())
}

func TestRecordSale_MissingFields(t *testing.T) {
	m := newTestModel(t)

	m = press(m, runes("n"), keyOf(tea.KeyEnter))

	assert.Contains(t, m.alert, "Customer is required")
	assert.Contains(t, m.alert, "Product is required")
	assert.Equal(t, form.KindSale, m.form.Kind)
}

func TestRecordSale_OutOfStockProductsAreNotOffered(t *testing.T) {
	m := newTestModel(t, store.Product{
		Name: "Sold Out Helmet", Category: store.CategoryProtection, Price: decimal.NewFromInt(90), Stock: 0, SKU: "HLM-SO-001",
	})

	m = press(m, runes("n"))

	options := m.fields[saleProduct].options
	require.Len(t, options, 5)
	assert.Equal(t, "Select product", options[0].label)
	for _, o := range options {
		assert.NotContains(t, o.label, "Sold Out Helmet")
	}
}

func TestAddProduct(t *testing.T) {
	// given
	m := newTestModel(t)

	// when
	m = press(m,
		runes("a"),
		runes("Tennis Ball Pack"),
		keyOf(tea.KeyTab),
		keyOf(tea.KeyRight), // Balls
		keyOf(tea.KeyTab),
		runes("45.50"),
		keyOf(tea.KeyTab),
		runes("3"),
		keyOf(tea.KeyTab),
		runes("BAL-TN-010"),
		keyOf(tea.KeyEnter),
	)

	// then
	assert.Empty(t, m.alert)
	assert.Equal(t, form.KindNone, m.form.Kind)
	require.Len(t, m.productList, 5)
	added := m.productList[4]
	assert.Equal(t, "Tennis Ball Pack", added.Name)
	assert.Equal(t, "Balls", added.Category)
	assert.True(t, decimal.RequireFromString("45.5").Equal(added.Price))
	assert.Equal(t, int32(3), added.Stock)
	assert.True(t, added.LowStock)
	assert.Equal(t, "Added Tennis Ball Pack", m.notice)
	assert.Contains(t, m.View(), "Low Stock")
}

func TestAddProduct_InvalidPriceKeepsForm(t *testing.T) {
	m := newTestModel(t)

	m = press(m,
		runes("a"),
		runes("Scorebook"),
		keyOf(tea.KeyTab), keyOf(tea.KeyTab),
		runes("abc"),
		keyOf(tea.KeyTab),
		runes("3"),
		keyOf(tea.KeyTab),
		runes("ACC-SB-001"),
		keyOf(tea.KeyEnter),
	)

	assert.Equal(t, `price "abc" is not a number`, m.alert)
	assert.Equal(t, form.KindProduct, m.form.Kind)
	assert.Equal(t, "Scorebook", m.fields[productName].value())
	assert.Len(t, m.productList, 4)
}

func TestEditProduct(t *testing.T) {
	// given
	m := newTestModel(t)

	// when
	m = press(m, runes("j"), runes("e"))

	// then the form is filled with the selected product
	require.Equal(t, form.KindProduct, m.form.Kind)
	assert.True(t, m.form.IsEditing())
	assert.Contains(t, m.View(), "Edit Product")
	assert.Equal(t, "Leather Match Ball (Red)", m.fields[productName].value())
	assert.Equal(t, "Balls", m.fields[productCategory].value())
	assert.Equal(t, "25", m.fields[productPrice].value())
	assert.Equal(t, "150", m.fields[productStock].value())

	// when the stock is lowered
	m = press(m,
		keyOf(tea.KeyTab), keyOf(tea.KeyTab), keyOf(tea.KeyTab),
		keyOf(tea.KeyBackspace), keyOf(tea.KeyBackspace), keyOf(tea.KeyBackspace),
		runes("4"),
		keyOf(tea.KeyEnter),
	)

	// then
	assert.Empty(t, m.alert)
	assert.Equal(t, form.KindNone, m.form.Kind)
	require.Len(t, m.productList, 4)
	assert.Equal(t, "Leather Match Ball (Red)", m.productList[1].Name)
	assert.Equal(t, int32(4), m.productList[1].Stock)
	assert.True(t, m.productList[1].LowStock)
	assert.Equal(t, 1, m.summary.LowStockProducts)
	assert.Equal(t, "Updated Leather Match Ball (Red)", m.notice)
}

func TestCancelForm_ClearsDraft(t *testing.T) {
	m := newTestModel(t)

	m = press(m, runes("a"), runes("Half typed"), keyOf(tea.KeyEsc))
	assert.Equal(t, form.KindNone, m.form.Kind)
	assert.Nil(t, m.fields)

	m = press(m, runes("a"))
	assert.Equal(t, "", m.fields[productName].value())
	assert.Equal(t, "Bats", m.fields[productCategory].value())
}

func TestCycleStatus(t *testing.T) {
	// given
	m := newTestModel(t)
	m = press(m, runes("2"))
	require.Equal(t, "Rahul D.", m.saleList[0].Customer)

	// when
	m = press(m, runes("p"), runes("s"))

	// then
	assert.Equal(t, "Pending", m.saleList[0].PaymentStatus)
	assert.Equal(t, "Delivered", m.saleList[0].ShippingStatus)

	// when the second sale is advanced
	m = press(m, runes("j"), runes("s"), runes("p"))

	// then
	assert.Equal(t, "Shipped", m.saleList[1].ShippingStatus)
	assert.Equal(t, "Refunded", m.saleList[1].PaymentStatus)
	assert.Equal(t, "Delivered", m.saleList[0].ShippingStatus)
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)

	// typing q into a form does not quit
	m = press(m, runes("a"), runes("q"))
	assert.False(t, m.quitting)
	assert.Equal(t, "q", m.fields[productName].value())
	m = press(m, keyOf(tea.KeyEsc))

	next, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.View())
}

func TestNextValue(t *testing.T) {
	assert.Equal(t, "Pending", nextValue(store.PaymentStatuses, "Paid"))
	assert.Equal(t, "Paid", nextValue(store.PaymentStatuses, "Refunded"))
	assert.Equal(t, "Ready", nextValue(store.ShippingStatuses, "Pending"))
	assert.Equal(t, "Pending", nextValue(store.ShippingStatuses, "Delivered"))
	assert.Equal(t, "Pending", nextValue(store.ShippingStatuses, "unknown"))
}
