package render

import (
	"fmt"
	"strings"

	"mediadeck/pkg/types"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	// GridCardWidth is the inner width of a grid card
	GridCardWidth = 26
	// gridGutter is the border plus padding plus spacing around a grid card
	gridGutter = 6
	barWidth   = 10
	listName   = 28
)

// EmptyStateText is shown instead of cards when the listing is empty
const EmptyStateText = "No files found.\nUpload something or loosen the filters."

// Board owns the cards of the current listing and their layout
type Board struct {
	cards []Card
	mode  types.ViewMode
	width int
}

// NewBoard creates an empty board in mode
func NewBoard(mode types.ViewMode) *Board {
	return &Board{mode: mode, width: 80}
}

// Render replaces every card with cards built from files and re-applies the
// active view mode. Previous cards are discarded, never diffed.
func (b *Board) Render(files []types.FileRecord) {
	b.cards = BuildCards(files)
	b.apply()
}

// SetMode switches grid/list and rewrites every card's slot. Card content is
// left alone.
func (b *Board) SetMode(mode types.ViewMode) {
	b.mode = mode
	b.apply()
}

// SetWidth sets the available terminal width and reflows
func (b *Board) SetWidth(width int) {
	if width <= 0 {
		return
	}
	b.width = width
	b.apply()
}

// Mode returns the active view mode
func (b *Board) Mode() types.ViewMode {
	return b.mode
}

// Cards returns the current cards
func (b *Board) Cards() []Card {
	return b.cards
}

// Empty reports whether the board shows the empty-state placeholder
func (b *Board) Empty() bool {
	return len(b.cards) == 0
}

// Columns returns how many grid cards fit side by side
func (b *Board) Columns() int {
	if b.mode == types.ViewList {
		return 1
	}
	cols := b.width / (GridCardWidth + gridGutter)
	if cols < 1 {
		cols = 1
	}
	return cols
}

func (b *Board) apply() {
	cols := b.Columns()
	for i := range b.cards {
		s := Slot{Mode: b.mode}
		if b.mode == types.ViewGrid {
			s.Row, s.Col, s.Width = i/cols, i%cols, GridCardWidth
		} else {
			s.Row, s.Col, s.Width = i, 0, b.width
		}
		b.cards[i].Slot = s
	}
}

// View lays the cards out with p
func (b *Board) View(p Palette) string {
	if b.Empty() {
		return p.EmptyBox.Render(EmptyStateText)
	}
	if b.mode == types.ViewList {
		return b.listView(p)
	}
	return b.gridView(p)
}

func (b *Board) gridView(p Palette) string {
	var rows []string
	var current []string
	row := 0
	for _, c := range b.cards {
		if c.Slot.Row != row {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = nil
			row = c.Slot.Row
		}
		current = append(current, gridCard(c, p))
	}
	if len(current) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func gridCard(c Card, p Palette) string {
	w := c.Slot.Width
	lines := []string{
		p.Muted.Render(truncate(c.PreviewText(), w)),
		p.Name.Render(truncate(c.Name, w)),
		p.Label.Render(c.Label()),
		p.Bar.Render(c.ScoreBar(barWidth)) + " " + p.Score.Render(c.ScoreText()),
	}
	if c.Category != "" {
		lines = append(lines, p.Tag.Render(truncate(c.Category, w-2)))
	}
	if c.Timestamp != "" {
		lines = append(lines, p.Muted.Render(c.Timestamp))
	}
	return p.Card.Width(w).MarginRight(1).Render(strings.Join(lines, "\n"))
}

func (b *Board) listView(p Palette) string {
	var sb strings.Builder
	for i, c := range b.cards {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(listRow(c, p))
	}
	return sb.String()
}

func listRow(c Card, p Palette) string {
	preview := c.Descriptor.Icon
	if c.Preview == PreviewImage {
		preview = "▣"
	}
	parts := []string{
		runewidth.FillRight(preview, 3),
		p.Name.Render(runewidth.FillRight(truncate(c.Name, listName), listName)),
		p.Label.Render(fmt.Sprintf("%-12s", c.Label())),
		p.Bar.Render(c.ScoreBar(barWidth)),
		p.Score.Render(fmt.Sprintf("%4s", c.ScoreText())),
	}
	if c.Category != "" {
		parts = append(parts, p.Tag.Render(c.Category))
	}
	if c.Timestamp != "" {
		parts = append(parts, p.Muted.Render(c.Timestamp))
	}
	return p.Row.Render(strings.Join(parts, " "))
}

func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return runewidth.Truncate(s, w, "…")
}
