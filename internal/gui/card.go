//go:build !nogui

package gui

import (
	"mediadeck/internal/render"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

var previewSize = fyne.NewSize(64, 64)

// newCardWidget draws one file card. The same widget serves grid and list
// layouts.
func newCardWidget(c render.Card) fyne.CanvasObject {
	bar := widget.NewProgressBar()
	bar.SetValue(float64(c.Score) / 100)
	bar.TextFormatter = c.ScoreText

	rows := []fyne.CanvasObject{
		widget.NewLabelWithStyle(c.Label(), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		bar,
	}
	if c.Category != "" {
		rows = append(rows, widget.NewLabelWithStyle("#"+c.Category, fyne.TextAlignLeading, fyne.TextStyle{Italic: true}))
	}
	if c.Timestamp != "" {
		rows = append(rows, widget.NewLabel(c.Timestamp))
	}

	body := container.NewBorder(nil, nil, preview(c), nil, container.NewVBox(rows...))
	return widget.NewCard(c.Name, "", body)
}

// preview is the image for image/video cards with a preview URL, else the
// type icon
func preview(c render.Card) fyne.CanvasObject {
	if c.Preview == render.PreviewImage {
		if uri, err := storage.ParseURI(c.PreviewURL); err == nil {
			img := canvas.NewImageFromURI(uri)
			img.FillMode = canvas.ImageFillContain
			img.SetMinSize(previewSize)
			return img
		}
	}
	icon := canvas.NewText(c.Descriptor.Icon, theme.Color(theme.ColorNameForeground))
	icon.TextSize = 32
	icon.Alignment = fyne.TextAlignCenter
	return container.NewCenter(icon)
}
