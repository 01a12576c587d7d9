package views

import (
	"strings"

	"mediadeck/internal/tui/common"
	"mediadeck/pkg/types"

	"github.com/charmbracelet/lipgloss"
)

// RenderMainView draws the current page with any overlay on top
func RenderMainView(m common.ModelReader) string {
	p := m.Palette()

	var body string
	switch m.Page() {
	case types.Landing:
		body = renderLanding(m, false)
	case types.Entering, types.Leaving:
		body = renderLanding(m, true)
	default:
		body = renderApp(m)
	}

	switch {
	case m.Alert() != "":
		body = overlay(m, p.Alert.Render(m.Alert()+"\n\n"+p.Help.Render("[enter] OK")))
	case m.Page() == types.App && m.ModalOpen():
		body = overlay(m, m.ModalView())
	}
	return p.App.Render(body)
}

func renderLanding(m common.ModelReader, hiding bool) string {
	p := m.Palette()
	var sb strings.Builder
	sb.WriteString(renderBanner(m))
	sb.WriteString("\n\n")
	if hiding {
		sb.WriteString(p.Muted.Render("..."))
		return p.Muted.Render(sb.String())
	}
	sb.WriteString("Upload, browse and search your stored media.\n\n")
	sb.WriteString(p.Help.Render("[enter] Start  [t] Theme " + p.Glyph + "  [q] Quit"))
	return sb.String()
}

func renderApp(m common.ModelReader) string {
	sections := []string{
		m.ToolbarView(),
		m.FilterView(),
		m.BoardView(),
		m.StatusView(),
		m.HelpView(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// overlay centers box on a blank canvas the width of the app
func overlay(m common.ModelReader, box string) string {
	w := m.Width()
	if w <= 0 {
		return box
	}
	return lipgloss.PlaceHorizontal(w, lipgloss.Center, box)
}

func renderBanner(m common.ModelReader) string {
	return m.Palette().Title.Render(`
 █▀▄▀█ █▀▀ █▀▄ █ ▄▀█ █▀▄ █▀▀ █▀▀ █▄▀
 █ ▀ █ ██▄ █▄▀ █ █▀█ █▄▀ ██▄ █▄▄ █ █
`)
}
