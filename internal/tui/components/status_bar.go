package components

import (
	"mediadeck/internal/render"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// StatusBar shows the loading spinner, the connection dot and a short notice
type StatusBar struct {
	text      string
	failed    bool
	connected bool
	loading   bool
	spinner   spinner.Model
	palette   render.Palette
}

func NewStatusBar(p render.Palette) *StatusBar {
	s := spinner.New()
	s.Spinner = spinner.Dot

	sb := &StatusBar{spinner: s}
	sb.SetPalette(p)
	return sb
}

// SetPalette restyles the bar for a theme
func (s *StatusBar) SetPalette(p render.Palette) {
	s.palette = p
	s.spinner.Style = p.Label
}

// SetLoading starts or stops the spinner. Starting returns the first tick.
func (s *StatusBar) SetLoading(loading bool) tea.Cmd {
	was := s.loading
	s.loading = loading
	if loading && !was {
		return s.spinner.Tick
	}
	return nil
}

func (s *StatusBar) Loading() bool {
	return s.loading
}

func (s *StatusBar) SetConnected(connected bool) {
	s.connected = connected
}

// SetText shows an informational notice
func (s *StatusBar) SetText(text string) {
	s.text = text
	s.failed = false
}

// SetError shows a failure notice
func (s *StatusBar) SetError(text string) {
	s.text = text
	s.failed = true
}

func (s *StatusBar) Text() string {
	return s.text
}

func (s *StatusBar) Update(msg tea.Msg) tea.Cmd {
	if s.loading {
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return cmd
	}
	return nil
}

func (s *StatusBar) View() string {
	dot := s.palette.Error.Render("● offline")
	if s.connected {
		dot = s.palette.Success.Render("● connected")
	}

	parts := []string{dot}
	if s.loading {
		parts = append(parts, s.palette.StatusBar.Render(s.spinner.View()+" Loading..."))
	}
	if s.text != "" {
		style := s.palette.StatusBar
		if s.failed {
			style = s.palette.Error
		}
		parts = append(parts, style.Render(s.text))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, joinSpaced(parts)...)
}

func joinSpaced(parts []string) []string {
	out := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			out = append(out, "  ")
		}
		out = append(out, p)
	}
	return out
}
