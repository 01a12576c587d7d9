package components

import (
	"fmt"
	"os"
	"strings"

	"mediadeck/internal/render"
	"mediadeck/internal/upload"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

const pickerHeight = 10

// UploadModal is the file picker plus the pending selection
type UploadModal struct {
	picker    filepicker.Model
	selection *upload.Selection
	notice    string
	width     int
}

func NewUploadModal(selection *upload.Selection, p render.Palette) *UploadModal {
	fp := filepicker.New()
	fp.Height = pickerHeight
	fp.ShowPermissions = false
	if wd, err := os.Getwd(); err == nil {
		fp.CurrentDirectory = wd
	}
	m := &UploadModal{picker: fp, selection: selection, width: 60}
	m.SetPalette(p)
	return m
}

// SetPalette restyles the picker for a theme
func (um *UploadModal) SetPalette(p render.Palette) {
	um.picker.Styles = PickerStyles(p)
}

// SetWidth bounds the modal box
func (um *UploadModal) SetWidth(width int) {
	um.width = max(width-8, 30)
}

// Open reads the picker's directory
func (um *UploadModal) Open() tea.Cmd {
	um.notice = ""
	return um.picker.Init()
}

// SetNotice shows a short message under the selection
func (um *UploadModal) SetNotice(text string) {
	um.notice = text
}

func (um *UploadModal) Notice() string {
	return um.notice
}

// Update drives the picker and returns the path picked by this message, if any
func (um *UploadModal) Update(msg tea.Msg) (string, tea.Cmd) {
	var cmd tea.Cmd
	um.picker, cmd = um.picker.Update(msg)
	if ok, path := um.picker.DidSelectFile(msg); ok {
		return path, cmd
	}
	return "", cmd
}

func (um *UploadModal) View(p render.Palette, help string) string {
	var s strings.Builder
	s.WriteString(p.Title.Render("Upload files"))
	s.WriteString("\n\n")
	s.WriteString(p.Muted.Render(um.picker.CurrentDirectory))
	s.WriteString("\n")
	s.WriteString(um.picker.View())
	s.WriteString("\n")

	items := um.selection.Items()
	if len(items) == 0 {
		s.WriteString(p.Muted.Render("No files selected."))
	} else {
		s.WriteString(p.Name.Render(fmt.Sprintf("%d selected (%s)", len(items), humanize.Bytes(uint64(um.selection.TotalSize())))))
		for _, it := range items {
			s.WriteString("\n  ")
			s.WriteString(it.Name)
			s.WriteString(p.Muted.Render(fmt.Sprintf("  %s  %s", it.HumanSize(), it.MimeType)))
		}
	}
	if um.notice != "" {
		s.WriteString("\n")
		s.WriteString(p.Error.Render(um.notice))
	}
	s.WriteString("\n\n")
	s.WriteString(help)
	return p.Modal.Width(um.width).Render(s.String())
}

// PickerStyles maps a palette onto the file picker
func PickerStyles(p render.Palette) filepicker.Styles {
	st := filepicker.DefaultStyles()
	st.Cursor = p.Label
	st.Selected = p.Active
	st.Directory = p.Label.Copy().Bold(true)
	st.File = p.Row
	st.DisabledFile = p.Muted
	st.DisabledCursor = p.Muted
	st.FileSize = p.Muted.Copy().Width(7).Align(lipgloss.Right)
	st.EmptyDirectory = p.Muted.Copy().SetString("Bummer. No files found.")
	return st
}
