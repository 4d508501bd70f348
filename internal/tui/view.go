package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abgdnv/crickstore/internal/form"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")
	if m.form.Kind != form.KindNone {
		b.WriteString(m.renderForm())
	} else if m.tab == TabInventory {
		b.WriteString(m.renderInventory())
	} else {
		b.WriteString(m.renderSales())
	}
	b.WriteString("\n")

	switch {
	case m.alert != "":
		b.WriteString(m.styles.Alert.Render("! "+m.alert) + m.styles.Muted.Render("  (press any key)"))
		b.WriteString("\n")
	case m.notice != "":
		b.WriteString(m.styles.Notice.Render(m.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderHeader() string {
	parts := []string{
		m.styles.Title.Render("CrickStore"),
		"Revenue " + m.styles.Metric.Render(m.formatter.Format(m.summary.TotalRevenue)),
		"Items sold " + m.styles.Metric.Render(strconv.FormatInt(m.summary.TotalItemsSold, 10)),
		"Low stock " + m.styles.Metric.Render(strconv.Itoa(m.summary.LowStockProducts)),
	}
	return m.styles.Header.Render(strings.Join(parts, "   "))
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, 2)
	for i, t := range []Tab{TabInventory, TabSales} {
		label := fmt.Sprintf("%d %s", i+1, t)
		if t == m.tab {
			tabs = append(tabs, m.styles.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// cell pads or truncates s to exactly w columns.
func cell(s string, w int) string {
	return lipgloss.NewStyle().Width(w).MaxWidth(w).Render(s)
}

func rightCell(s string, w int) string {
	return lipgloss.NewStyle().Width(w).MaxWidth(w).Align(lipgloss.Right).Render(s)
}

func (m Model) renderInventory() string {
	if len(m.productList) == 0 {
		return m.styles.Muted.Render("No products yet. Press a to add one.")
	}

	var b strings.Builder
	b.WriteString("  " + m.styles.TableHead.Render(
		cell("Product", 30)+" "+cell("SKU", 12)+" "+cell("Category", 12)+" "+
			rightCell("Price", 10)+" "+rightCell("Stock", 6)+"  "+cell("Status", 10)))
	b.WriteString("\n")

	for i, p := range m.productList {
		status := m.styles.InStock.Render("In Stock")
		if p.LowStock {
			status = m.styles.LowStock.Render("Low Stock")
		}
		row := cell(p.Name, 30) + " " + cell(p.SKU, 12) + " " + cell(p.Category, 12) + " " +
			rightCell(m.formatter.Format(p.Price), 10) + " " + rightCell(strconv.Itoa(int(p.Stock)), 6)
		if i == m.productCursor {
			b.WriteString(m.styles.Selected.Render("> "+row) + "  " + status)
		} else {
			b.WriteString("  " + m.styles.Row.Render(row) + "  " + status)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderSales() string {
	if len(m.saleList) == 0 {
		return m.styles.Muted.Render("No sales recorded yet. Press n to record one.")
	}

	var b strings.Builder
	b.WriteString("  " + m.styles.TableHead.Render(
		cell("Date", 11)+" "+cell("Customer", 18)+" "+cell("Product", 28)+" "+rightCell("Qty", 4)+" "+
			rightCell("Total", 10)+"  "+cell("Payment", 9)+" "+cell("Shipping", 13)))
	b.WriteString("\n")

	for i, s := range m.saleList {
		row := cell(s.Date, 11) + " " + cell(s.Customer, 18) + " " + cell(s.Product, 28) + " " +
			rightCell(strconv.Itoa(int(s.Quantity)), 4) + " " + rightCell(m.formatter.Format(s.Total), 10) + "  " +
			cell(s.PaymentStatus, 9) + " " + cell(shippingLabel(s.ShippingStatus), 13)
		if i == m.saleCursor {
			b.WriteString(m.styles.Selected.Render("> " + row))
		} else {
			b.WriteString("  " + m.styles.Row.Render(row))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderForm() string {
	title := "Record Sale"
	if m.form.Kind == form.KindProduct {
		title = "Add Product"
		if m.form.IsEditing() {
			title = "Edit Product"
		}
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n\n")
	for i, f := range m.fields {
		label := m.styles.Label.Render(cell(f.label, 10))
		if i == m.focus {
			label = m.styles.FocusLabel.Render(cell(f.label, 10))
		}
		value := f.input.View()
		if f.isSelect() {
			value = m.styles.Option.Render("‹ " + f.display() + " ›")
		}
		b.WriteString(label + " " + value + "\n")
	}
	if m.form.Kind == form.KindSale {
		if total, ok := m.saleTotalPreview(); ok {
			b.WriteString("\n" + m.styles.Label.Render(cell("Total", 10)) + " " + m.styles.Metric.Render(m.formatter.Format(total)) + "\n")
		}
	}
	return m.styles.Modal.Render(strings.TrimSuffix(b.String(), "\n"))
}

// saleTotalPreview computes price times quantity for the picked product, if both are set.
func (m Model) saleTotalPreview() (decimal.Decimal, bool) {
	id := m.fields[saleProduct].value()
	qty, err := strconv.Atoi(strings.TrimSpace(m.fields[saleQuantity].value()))
	if id == "" || err != nil || qty <= 0 {
		return decimal.Zero, false
	}
	for _, p := range m.productList {
		if p.ID.String() == id {
			return p.Price.Mul(decimal.NewFromInt(int64(qty))), true
		}
	}
	return decimal.Zero, false
}

func (m Model) renderHelp() string {
	switch {
	case m.form.Kind != form.KindNone:
		return m.help.ShortHelpView(m.keys.formHelp())
	case m.tab == TabSales:
		return m.help.ShortHelpView(m.keys.salesHelp())
	default:
		return m.help.ShortHelpView(m.keys.inventoryHelp())
	}
}
