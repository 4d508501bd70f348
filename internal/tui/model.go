// Package tui implements the terminal shop shell: an inventory tab, a sales history tab,
// header metrics and modal forms for products and sales.
package tui

import (
	"context"
	"log/slog"

	"github.com/abgdnv/crickstore/internal/form"
	"github.com/abgdnv/crickstore/internal/service"
	"github.com/abgdnv/crickstore/internal/store"
	"github.com/abgdnv/crickstore/pkg/money"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Tab represents the visible listing.
type Tab int

const (
	TabInventory Tab = iota
	TabSales
)

func (t Tab) String() string {
	if t == TabSales {
		return "Sales History"
	}
	return "Inventory"
}

// MetricsReader provides the header metrics.
type MetricsReader interface {
	Summary(ctx context.Context) (*service.MetricsDto, error)
}

// Options configures the shell.
type Options struct {
	Products  service.ProductService
	Sales     service.SaleService
	Metrics   MetricsReader
	Form      *form.State
	Formatter money.Formatter
	Logger    *slog.Logger
}

// Model is the Bubble Tea model of the shell. Every key press is handled synchronously
// against the in-process services, so the listings are always current after Update returns.
type Model struct {
	ctx       context.Context
	products  service.ProductService
	sales     service.SaleService
	metrics   MetricsReader
	form      *form.State
	formatter money.Formatter
	logger    *slog.Logger

	keys   keyMap
	styles styles
	help   help.Model

	tab           Tab
	productCursor int
	saleCursor    int
	productList   []service.ProductDto
	saleList      []service.SaleDto
	summary       service.MetricsDto

	// modal form rows, nil when no form is open
	fields []field
	focus  int

	// alert blocks input until dismissed by any key
	alert  string
	notice string

	width    int
	height   int
	quitting bool
}

// New creates the shell model and loads the listings.
func New(ctx context.Context, opts Options) Model {
	state := opts.Form
	if state == nil {
		state = form.New(opts.Products, opts.Sales)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	m := Model{
		ctx:       ctx,
		products:  opts.Products,
		sales:     opts.Sales,
		metrics:   opts.Metrics,
		form:      state,
		formatter: opts.Formatter,
		logger:    logger,
		keys:      defaultKeyMap(),
		styles:    defaultStyles(),
		help:      help.New(),
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// cursor blink and other input messages
	if m.fields != nil {
		return m, m.fields[m.focus].update(msg)
	}
	return m, nil
}

// handleKey dispatches a key press to the alert, the open form or the listings.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}
	if m.alert != "" {
		m.alert = ""
		return m, nil
	}
	if m.form.Kind != form.KindNone {
		return m.handleFormKey(msg)
	}
	m.notice = ""
	return m.handleListKey(msg)
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Tab):
		if m.tab == TabInventory {
			m.tab = TabSales
		} else {
			m.tab = TabInventory
		}
	case key.Matches(msg, m.keys.Inventory):
		m.tab = TabInventory
	case key.Matches(msg, m.keys.Sales):
		m.tab = TabSales
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.RefreshListing):
		m.refresh()
	case key.Matches(msg, m.keys.RecordSale):
		m.form.OpenRecordSale()
		return m, m.openForm()
	case m.tab == TabInventory && key.Matches(msg, m.keys.AddProduct):
		m.form.OpenAddProduct()
		return m, m.openForm()
	case m.tab == TabInventory && key.Matches(msg, m.keys.EditProduct):
		if len(m.productList) == 0 {
			return m, nil
		}
		m.form.OpenEditProduct(m.productList[m.productCursor])
		return m, m.openForm()
	case m.tab == TabSales && key.Matches(msg, m.keys.CyclePayment):
		m.cycleStatus(store.FieldPaymentStatus)
	case m.tab == TabSales && key.Matches(msg, m.keys.CycleShipping):
		m.cycleStatus(store.FieldShippingStatus)
	}
	return m, nil
}

func (m *Model) moveCursor(step int) {
	if m.tab == TabInventory {
		m.productCursor = clamp(m.productCursor+step, len(m.productList))
		return
	}
	m.saleCursor = clamp(m.saleCursor+step, len(m.saleList))
}

// cycleStatus moves the selected sale to the next value of the given status field.
func (m *Model) cycleStatus(field store.SaleField) {
	if len(m.saleList) == 0 {
		return
	}
	sale := m.saleList[m.saleCursor]
	var next string
	if field == store.FieldPaymentStatus {
		next = nextValue(store.PaymentStatuses, sale.PaymentStatus)
	} else {
		next = nextValue(store.ShippingStatuses, sale.ShippingStatus)
	}
	if _, err := m.sales.UpdateStatus(m.ctx, sale.ID, service.SaleStatusUpdateDto{Field: string(field), Value: next}); err != nil {
		m.alert = m.describe(err)
		return
	}
	m.refresh()
}

// refresh reloads the listings and the header metrics.
func (m *Model) refresh() {
	products, err := m.products.FindAll(m.ctx)
	if err != nil {
		m.alert = m.describe(err)
		return
	}
	sales, err := m.sales.FindAll(m.ctx)
	if err != nil {
		m.alert = m.describe(err)
		return
	}
	summary, err := m.metrics.Summary(m.ctx)
	if err != nil {
		m.alert = m.describe(err)
		return
	}
	m.productList = products
	m.saleList = sales
	m.summary = *summary
	m.productCursor = clamp(m.productCursor, len(products))
	m.saleCursor = clamp(m.saleCursor, len(sales))
}

func nextValue[T ~string](values []T, current string) string {
	for i, v := range values {
		if string(v) == current {
			return string(values[(i+1)%len(values)])
		}
	}
	return string(values[0])
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// Run starts the shell on the alternate screen and blocks until the user quits or ctx is done.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(New(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
