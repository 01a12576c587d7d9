package common

import (
	"mediadeck/internal/render"
	"mediadeck/pkg/types"
)

// ModelReader defines the interface that views use to read model state
type ModelReader interface {
	Page() types.Page
	Palette() render.Palette
	Width() int

	// App page
	ToolbarView() string
	FilterView() string
	BoardView() string
	StatusView() string
	HelpView() string

	// Overlays
	ModalOpen() bool
	ModalView() string
	Alert() string
}
