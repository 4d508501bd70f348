package tui

import (
	"errors"
	"fmt"
	"strings"

	perrors "github.com/abgdnv/crickstore/internal/errors"
	"github.com/abgdnv/crickstore/internal/form"
	"github.com/abgdnv/crickstore/internal/service"
	"github.com/abgdnv/crickstore/internal/store"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// product form rows
const (
	productName = iota
	productCategory
	productPrice
	productStock
	productSKU
)

// sale form rows
const (
	saleCustomer = iota
	saleProduct
	saleQuantity
	salePayment
	saleShipping
)

func productFields(d form.ProductDraft) []field {
	categories := make([]option, 0, len(store.Categories))
	for _, c := range store.Categories {
		categories = append(categories, option{value: string(c), label: string(c)})
	}
	return []field{
		productName:     newTextField("Name", "English Willow Bat", d.Name, 100),
		productCategory: newSelectField("Category", categories, d.Category),
		productPrice:    newTextField("Price", "0", d.Price, 12),
		productStock:    newTextField("Stock", "0", d.Stock, 9),
		productSKU:      newTextField("SKU", "BAT-EW-001", d.SKU, 50),
	}
}

// saleFields builds the sale form. Products that are out of stock cannot be picked.
func saleFields(d form.SaleDraft, products []service.ProductDto) []field {
	choices := []option{{value: "", label: "Select product"}}
	for _, p := range products {
		if p.Stock <= 0 {
			continue
		}
		choices = append(choices, option{value: p.ID.String(), label: fmt.Sprintf("%s (%d in stock)", p.Name, p.Stock)})
	}
	selected := ""
	if d.ProductID != uuid.Nil {
		selected = d.ProductID.String()
	}

	payments := make([]option, 0, len(store.PaymentStatuses))
	for _, s := range store.PaymentStatuses {
		payments = append(payments, option{value: string(s), label: string(s)})
	}
	shipping := make([]option, 0, len(store.ShippingStatuses))
	for _, s := range store.ShippingStatuses {
		shipping = append(shipping, option{value: string(s), label: shippingLabel(string(s))})
	}

	return []field{
		saleCustomer: newTextField("Customer", "Customer or club name", d.Customer, 100),
		saleProduct:  newSelectField("Product", choices, selected),
		saleQuantity: newTextField("Quantity", "1", d.Quantity, 9),
		salePayment:  newSelectField("Payment", payments, d.PaymentStatus),
		saleShipping: newSelectField("Shipping", shipping, d.ShippingStatus),
	}
}

// shippingLabel returns the display label of a shipping status.
func shippingLabel(status string) string {
	if status == string(store.ShippingReady) {
		return "Ready to Ship"
	}
	return status
}

// openForm builds the input rows of whichever form is open and focuses the first one.
func (m *Model) openForm() tea.Cmd {
	switch m.form.Kind {
	case form.KindProduct:
		m.fields = productFields(m.form.Product)
	case form.KindSale:
		m.fields = saleFields(m.form.Sale, m.productList)
	default:
		m.fields = nil
		return nil
	}
	m.focus = 0
	return m.fields[0].focus()
}

func (m *Model) closeForm() {
	m.form.Close()
	m.fields = nil
	m.focus = 0
}

// syncDraft copies the input rows into the draft of the open form.
func (m *Model) syncDraft() {
	switch m.form.Kind {
	case form.KindProduct:
		m.form.Product = form.ProductDraft{
			Name:     m.fields[productName].value(),
			Category: m.fields[productCategory].value(),
			Price:    m.fields[productPrice].value(),
			Stock:    m.fields[productStock].value(),
			SKU:      m.fields[productSKU].value(),
		}
	case form.KindSale:
		// the placeholder option parses to uuid.Nil, which validation rejects
		id, _ := uuid.Parse(m.fields[saleProduct].value())
		m.form.Sale = form.SaleDraft{
			Customer:       m.fields[saleCustomer].value(),
			ProductID:      id,
			Quantity:       m.fields[saleQuantity].value(),
			PaymentStatus:  m.fields[salePayment].value(),
			ShippingStatus: m.fields[saleShipping].value(),
		}
	}
}

func (m *Model) moveFocus(step int) tea.Cmd {
	m.fields[m.focus].blur()
	m.focus = (m.focus + step + len(m.fields)) % len(m.fields)
	return m.fields[m.focus].focus()
}

// handleFormKey handles key presses while a form is open.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc:
		m.closeForm()
		return m, nil
	case msg.Type == tea.KeyEnter:
		return m.submitForm()
	case msg.Type == tea.KeyTab || msg.Type == tea.KeyDown:
		return m, m.moveFocus(1)
	case msg.Type == tea.KeyShiftTab || msg.Type == tea.KeyUp:
		return m, m.moveFocus(-1)
	}

	f := &m.fields[m.focus]
	if f.isSelect() {
		switch msg.Type {
		case tea.KeyRight, tea.KeySpace:
			f.cycle(1)
		case tea.KeyLeft:
			f.cycle(-1)
		}
		return m, nil
	}
	return m, f.update(msg)
}

// submitForm saves the open form. Errors are shown as an alert and keep the form open.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	m.syncDraft()

	switch m.form.Kind {
	case form.KindProduct:
		editing := m.form.IsEditing()
		saved, err := m.form.SubmitProduct(m.ctx)
		if err != nil {
			m.alert = m.describe(err)
			return m, nil
		}
		m.logger.InfoContext(m.ctx, "Product saved", "product_id", saved.ID, "editing", editing)
		if editing {
			m.notice = fmt.Sprintf("Updated %s", saved.Name)
		} else {
			m.notice = fmt.Sprintf("Added %s", saved.Name)
		}
		m.tab = TabInventory
	case form.KindSale:
		sale, err := m.form.SubmitSale(m.ctx)
		if err != nil {
			m.alert = m.describe(err)
			return m, nil
		}
		m.logger.InfoContext(m.ctx, "Sale recorded", "sale_id", sale.ID, "quantity", sale.Quantity)
		m.notice = fmt.Sprintf("Recorded sale of %d x %s to %s for %s", sale.Quantity, sale.Product, sale.Customer, m.formatter.Format(sale.Total))
		m.tab = TabSales
		m.saleCursor = 0
	}
	m.fields = nil
	m.focus = 0
	m.refresh()
	return m, nil
}

// describe turns a service error into the alert shown to the user.
func (m *Model) describe(err error) string {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, perrors.ErrInsufficientStock):
		return "Insufficient stock!"
	case errors.As(err, &verrs):
		problems := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			problems = append(problems, fieldProblem(fe))
		}
		return "Please check: " + strings.Join(problems, ", ")
	case errors.Is(err, perrors.ErrInvalidDraft):
		return strings.TrimSuffix(err.Error(), ": "+perrors.ErrInvalidDraft.Error())
	case errors.Is(err, perrors.ErrProductNotFound):
		return "Product no longer exists"
	case errors.Is(err, perrors.ErrSaleNotFound):
		return "Sale no longer exists"
	case errors.Is(err, perrors.ErrInvalidStatus):
		return "Invalid status"
	default:
		m.logger.ErrorContext(m.ctx, "Unexpected error", "error", err)
		return "Something went wrong: " + err.Error()
	}
}

func fieldProblem(fe validator.FieldError) string {
	name := fe.Field()
	if name == "ProductID" {
		name = "Product"
	}
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", name, fe.Param())
	default:
		return name + " is invalid"
	}
}
