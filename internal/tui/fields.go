package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// option is one choice of a selector field.
type option struct {
	value string
	label string
}

// field is one row of a modal form: either a text input or a selector cycled with left/right.
type field struct {
	label    string
	input    textinput.Model
	options  []option
	selected int
}

func newTextField(label, placeholder, value string, limit int) field {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 32
	ti.Prompt = ""
	ti.SetValue(value)
	ti.CursorEnd()
	return field{label: label, input: ti}
}

func newSelectField(label string, options []option, value string) field {
	if options == nil {
		options = []option{}
	}
	f := field{label: label, options: options}
	for i, o := range options {
		if o.value == value {
			f.selected = i
			break
		}
	}
	return f
}

// isSelect reports whether the field is a selector. A selector without options is still a selector.
func (f *field) isSelect() bool {
	return f.options != nil
}

// value returns the text input value or the value of the selected option.
func (f *field) value() string {
	if f.isSelect() {
		if len(f.options) == 0 {
			return ""
		}
		return f.options[f.selected].value
	}
	return f.input.Value()
}

func (f *field) display() string {
	if len(f.options) == 0 {
		return ""
	}
	return f.options[f.selected].label
}

func (f *field) cycle(step int) {
	if len(f.options) == 0 {
		return
	}
	f.selected = (f.selected + step + len(f.options)) % len(f.options)
}

func (f *field) focus() tea.Cmd {
	if f.isSelect() {
		return nil
	}
	return f.input.Focus()
}

func (f *field) blur() {
	if !f.isSelect() {
		f.input.Blur()
	}
}

func (f *field) update(msg tea.Msg) tea.Cmd {
	if f.isSelect() {
		return nil
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd
}
