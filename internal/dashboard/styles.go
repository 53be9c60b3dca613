package dashboard

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/arthur-debert/toran/settings"
)

// Palette is the set of colors for one theme
type Palette struct {
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
}

var (
	lightPalette = Palette{
		Foreground: lipgloss.Color("#101F38"),
		Primary:    lipgloss.Color("#101F38"),
		Accent:     lipgloss.Color("#8BC34A"),
		Muted:      lipgloss.Color("#6b7280"),
		Border:     lipgloss.Color("#dce0e5"),
	}
	darkPalette = Palette{
		Foreground: lipgloss.Color("#f2f2f2"),
		Primary:    lipgloss.Color("#8BC34A"),
		Accent:     lipgloss.Color("#4db6ac"),
		Muted:      lipgloss.Color("#9aa4b2"),
		Border:     lipgloss.Color("#2a3850"),
	}

	destructive = lipgloss.Color("#e53935")
	warning     = lipgloss.Color("#FFC107")
)

// Styles holds the rendered styles for the current theme
type Styles struct {
	Brand     lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Heading   lipgloss.Style
	Muted     lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Card      lipgloss.Style
	User      lipgloss.Style
	AI        lipgloss.Style
	Table     table.Styles
}

// NewStyles builds the styles for theme
func NewStyles(theme settings.Theme) Styles {
	p := lightPalette
	if theme == settings.Dark {
		p = darkPalette
	}

	tableStyles := table.DefaultStyles()
	tableStyles.Header = tableStyles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(p.Border).
		BorderBottom(true).
		Bold(true)
	tableStyles.Selected = tableStyles.Selected.
		Foreground(p.Foreground).
		Background(p.Border).
		Bold(false)

	return Styles{
		Brand:     lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		Tab:       lipgloss.NewStyle().Padding(0, 1).Foreground(p.Muted),
		ActiveTab: lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(p.Primary).Underline(true),
		Heading:   lipgloss.NewStyle().Bold(true).Foreground(p.Foreground).MarginBottom(1),
		Muted:     lipgloss.NewStyle().Foreground(p.Muted),
		Status:    lipgloss.NewStyle().Foreground(p.Accent),
		Error:     lipgloss.NewStyle().Foreground(destructive),
		Warning:   lipgloss.NewStyle().Foreground(warning),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 2).
			Width(24),
		User:  lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
		AI:    lipgloss.NewStyle().Foreground(p.Accent),
		Table: tableStyles,
	}
}
