package tui

import "github.com/charmbracelet/lipgloss"

// styles holds the lipgloss styles of the shell.
type styles struct {
	Title      lipgloss.Style
	Header     lipgloss.Style
	Metric     lipgloss.Style
	ActiveTab  lipgloss.Style
	Tab        lipgloss.Style
	TableHead  lipgloss.Style
	Selected   lipgloss.Style
	Row        lipgloss.Style
	LowStock   lipgloss.Style
	InStock    lipgloss.Style
	Modal      lipgloss.Style
	Label      lipgloss.Style
	FocusLabel lipgloss.Style
	Option     lipgloss.Style
	Alert      lipgloss.Style
	Notice     lipgloss.Style
	Muted      lipgloss.Style
}

const (
	colorAccent  = "#10B981"
	colorDanger  = "#EF4444"
	colorWarning = "#F59E0B"
	colorMuted   = "#6B7280"
	colorText    = "#E5E7EB"
	colorSurface = "#1F2937"
)

func defaultStyles() styles {
	return styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorAccent)).
			Bold(true),
		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(colorSurface)).
			Foreground(lipgloss.Color(colorText)).
			Padding(0, 1),
		Metric: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorText)).
			Bold(true),
		ActiveTab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorAccent)).
			Bold(true).
			Underline(true).
			Padding(0, 1),
		Tab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorMuted)).
			Padding(0, 1),
		TableHead: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorMuted)).
			Bold(true),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(colorSurface)).
			Foreground(lipgloss.Color(colorAccent)),
		Row: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorText)),
		LowStock: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorDanger)).
			Bold(true),
		InStock: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorAccent)),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorAccent)).
			Padding(1, 2),
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorMuted)),
		FocusLabel: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorAccent)).
			Bold(true),
		Option: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorText)),
		Alert: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorDanger)).
			Bold(true),
		Notice: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorWarning)),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorMuted)),
	}
}
