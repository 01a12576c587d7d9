package render

import (
	"mediadeck/internal/config"
	"mediadeck/pkg/types"

	"github.com/charmbracelet/lipgloss"
)

// Palette is the lipgloss style set for one theme
type Palette struct {
	Theme types.Theme
	Glyph string

	App       lipgloss.Style
	Title     lipgloss.Style
	Card      lipgloss.Style
	Row       lipgloss.Style
	Name      lipgloss.Style
	Label     lipgloss.Style
	Bar       lipgloss.Style
	Score     lipgloss.Style
	Tag       lipgloss.Style
	Muted     lipgloss.Style
	Help      lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Modal     lipgloss.Style
	Alert     lipgloss.Style
	Active    lipgloss.Style
	Inactive  lipgloss.Style
	EmptyBox  lipgloss.Style
	StatusBar lipgloss.Style
}

// ThemeGlyph is the icon shown on the theme toggle
func ThemeGlyph(t types.Theme) string {
	if t == types.ThemeLight {
		return "☀"
	}
	return "☾"
}

// NewPalette builds the styles for t from the configured theme colors
func NewPalette(t types.Theme) Palette {
	c := config.GetTheme(t.String())
	color := func(k string) lipgloss.Color { return lipgloss.Color(c[k]) }

	return Palette{
		Theme: t,
		Glyph: ThemeGlyph(t),

		App: lipgloss.NewStyle().
			Foreground(color("text")).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(color("primary")).
			Padding(0, 1),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color("border")).
			Padding(0, 1),
		Row: lipgloss.NewStyle().
			Foreground(color("text")),
		Name: lipgloss.NewStyle().
			Bold(true).
			Foreground(color("text")),
		Label: lipgloss.NewStyle().
			Foreground(color("primary")).
			Bold(true),
		Bar: lipgloss.NewStyle().
			Foreground(color("success")),
		Score: lipgloss.NewStyle().
			Foreground(color("success")),
		Tag: lipgloss.NewStyle().
			Foreground(color("surface")).
			Background(color("primary")).
			Padding(0, 1),
		Muted: lipgloss.NewStyle().
			Foreground(color("muted")),
		Help: lipgloss.NewStyle().
			Foreground(color("muted")),
		Success: lipgloss.NewStyle().
			Foreground(color("success")),
		Error: lipgloss.NewStyle().
			Foreground(color("error")),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(color("primary")).
			Padding(1, 2),
		Alert: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(color("error")).
			Foreground(color("error")).
			Padding(1, 2),
		Active: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(color("primary")).
			Padding(0, 1),
		Inactive: lipgloss.NewStyle().
			Foreground(color("muted")).
			Padding(0, 1),
		EmptyBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(color("muted")).
			Foreground(color("muted")).
			Padding(1, 4),
		StatusBar: lipgloss.NewStyle().
			Foreground(color("muted")),
	}
}
