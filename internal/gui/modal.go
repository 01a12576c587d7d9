//go:build !nogui

package gui

import (
	"fmt"
	"strings"

	"mediadeck/internal/log"
	"mediadeck/internal/ui"
	"mediadeck/pkg/types"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/dustin/go-humanize"
)

// OpenModal shows the upload modal
func (a *App) OpenModal() {
	a.mu.Lock()
	ok := a.ctrl.OpenModal()
	a.mu.Unlock()
	if ok {
		a.showModal()
	}
}

// CloseModal hides the modal and drops the pending selection
func (a *App) CloseModal() {
	a.mu.Lock()
	a.ctrl.CloseModal()
	a.mu.Unlock()
	a.hideModal()
}

// HandleDrop adds dropped files to the selection, opening the modal if needed
func (a *App) HandleDrop(paths []string) {
	a.mu.Lock()
	inApp := a.ctrl.Page() == types.App
	opened := inApp && !a.ctrl.ModalOpen() && a.ctrl.OpenModal()
	a.mu.Unlock()
	if !inApp {
		log.Debug("drop ignored outside the app page")
		return
	}
	if opened {
		a.showModal()
	}
	a.addFiles(paths)
}

func (a *App) addFiles(paths []string) {
	a.mu.Lock()
	_, refused := a.ctrl.Selection().AddAll(paths)
	a.mu.Unlock()
	for _, err := range refused {
		log.LogWithError(err).Warn("file refused")
	}
	if len(refused) > 0 {
		a.statusLabel.SetText(refused[0].Error())
	}
	a.refreshModal()
}

// Upload sends the selection. Success closes the modal; failure keeps it.
func (a *App) Upload() {
	a.mu.Lock()
	sel := a.ctrl.Selection()
	if sel.Empty() {
		a.ctrl.Raise(ui.AlertNoFile)
		a.mu.Unlock()
		a.showAlert()
		return
	}
	snapshot := sel.Snapshot()
	a.mu.Unlock()

	a.store.BeginLoad()
	a.syncLoading()
	res, err := snapshot.Send(a.ctx, a.backend)

	a.mu.Lock()
	a.ctrl.UploadFinished(err)
	open := a.ctrl.ModalOpen()
	a.mu.Unlock()

	if err != nil {
		a.store.Fail(err)
		a.syncLoading()
		a.refreshModal()
		a.showAlert()
		return
	}
	a.store.Succeed()
	a.syncLoading()
	if !open {
		a.hideModal()
	}
	msg := res.Message
	if msg == "" {
		msg = fmt.Sprintf("Uploaded %d file(s)", snapshot.Len())
	}
	a.statusLabel.SetText(msg)
	a.reload()
}

func (a *App) showModal() {
	a.modalList = widget.NewLabel("")
	pick := widget.NewButtonWithIcon("Add files...", theme.FileIcon(), a.pickFile)
	send := widget.NewButtonWithIcon("Upload", theme.UploadIcon(), func() { go a.Upload() })
	send.Importance = widget.HighImportance
	cancel := widget.NewButton("Cancel", a.CloseModal)

	content := container.NewVBox(
		widget.NewLabelWithStyle("Upload files", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Drop files on the window or pick them."),
		pick,
		a.modalList,
		container.NewHBox(cancel, send),
	)
	a.modal = widget.NewModalPopUp(content, a.mainWindow.Canvas())
	a.refreshModal()
	a.modal.Show()
}

func (a *App) hideModal() {
	if a.modal != nil {
		a.modal.Hide()
		a.modal = nil
	}
}

func (a *App) refreshModal() {
	if a.modalList == nil {
		return
	}
	a.mu.Lock()
	items := a.ctrl.Selection().Items()
	total := a.ctrl.Selection().TotalSize()
	a.mu.Unlock()

	if len(items) == 0 {
		a.modalList.SetText("No files selected.")
		return
	}
	lines := []string{fmt.Sprintf("%d selected (%s)", len(items), humanize.Bytes(uint64(total)))}
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("%s  %s  %s", it.Name, it.HumanSize(), it.MimeType))
	}
	a.modalList.SetText(strings.Join(lines, "\n"))
}

func (a *App) pickFile() {
	dialog.ShowFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil || r == nil {
			return
		}
		path := r.URI().Path()
		r.Close()
		a.addFiles([]string{path})
	}, a.mainWindow)
}

// showAlert displays the controller's alert as a blocking dialog
func (a *App) showAlert() {
	a.mu.Lock()
	text := a.ctrl.Alert()
	a.mu.Unlock()
	if text == "" {
		return
	}
	d := dialog.NewInformation("mediadeck", text, a.mainWindow)
	d.SetOnClosed(func() {
		a.mu.Lock()
		a.ctrl.Dismiss()
		a.mu.Unlock()
	})
	a.alert = d
	d.Show()
}
