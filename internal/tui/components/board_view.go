package components

import (
	"mediadeck/internal/render"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// BoardView scrolls the rendered board inside a viewport
type BoardView struct {
	viewport viewport.Model
	board    *render.Board
	height   int
	width    int
}

func NewBoardView(board *render.Board) *BoardView {
	return &BoardView{
		viewport: viewport.New(80, 20),
		board:    board,
	}
}

// SetSize resizes the viewport and reflows the board to the new width
func (bv *BoardView) SetSize(width, height int) {
	bv.width = width
	bv.height = height
	bv.viewport.Width = width
	bv.viewport.Height = max(height, 3)
	bv.board.SetWidth(width)
}

// Update scrolls on arrows, page keys and the mouse wheel
func (bv *BoardView) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	bv.viewport, cmd = bv.viewport.Update(msg)
	return cmd
}

// Refresh re-renders the board into the viewport
func (bv *BoardView) Refresh(p render.Palette) {
	bv.viewport.SetContent(bv.board.View(p))
}

// ResetScroll jumps back to the first card after a new listing arrived
func (bv *BoardView) ResetScroll() {
	bv.viewport.GotoTop()
}

func (bv *BoardView) View() string {
	return bv.viewport.View()
}
