package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings of the shell.
type keyMap struct {
	// Global
	Quit      key.Binding
	Tab       key.Binding
	Inventory key.Binding
	Sales     key.Binding

	// Navigation
	Up   key.Binding
	Down key.Binding

	// Actions
	AddProduct     key.Binding
	EditProduct    key.Binding
	RecordSale     key.Binding
	CyclePayment   key.Binding
	CycleShipping  key.Binding
	RefreshListing key.Binding

	// Forms
	NextField key.Binding
	PrevField key.Binding
	NextValue key.Binding
	PrevValue key.Binding
	Submit    key.Binding
	Cancel    key.Binding
}

// defaultKeyMap returns the default key bindings.
func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch tab"),
		),
		Inventory: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "inventory"),
		),
		Sales: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "sales"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),

		AddProduct: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add product"),
		),
		EditProduct: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit product"),
		),
		RecordSale: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new sale"),
		),
		CyclePayment: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "payment status"),
		),
		CycleShipping: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "shipping status"),
		),
		RefreshListing: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),

		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab/↓", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab/↑", "previous field"),
		),
		NextValue: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "next option"),
		),
		PrevValue: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "previous option"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

func (k keyMap) inventoryHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Up, k.Down, k.AddProduct, k.EditProduct, k.RecordSale, k.Quit}
}

func (k keyMap) salesHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Up, k.Down, k.RecordSale, k.CyclePayment, k.CycleShipping, k.Quit}
}

func (k keyMap) formHelp() []key.Binding {
	return []key.Binding{k.NextField, k.PrevField, k.PrevValue, k.NextValue, k.Submit, k.Cancel}
}
