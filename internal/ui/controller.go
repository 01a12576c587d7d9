// Package ui holds the toolkit-independent navigation state shared by the
// terminal and desktop frontends: which page is up, whether the upload modal
// is open, the layout and theme flags, and the single blocking alert.
package ui

import (
	"context"

	"mediadeck/internal/log"
	"mediadeck/internal/search"
	"mediadeck/internal/upload"
	"mediadeck/pkg/types"
)

// Backend is the API surface both frontends drive
type Backend interface {
	search.Backend
	upload.Uploader
	GetCategories(ctx context.Context) ([]types.CategoryCount, error)
}

// Generic alert texts. The detailed error goes to the log.
const (
	AlertLoad   = "Could not load files. Check the server connection and try again."
	AlertSearch = "Search failed. Please try again."
	AlertUpload = "Upload failed. Please try again."
	AlertNoFile = "Select at least one file to upload."
)

// Controller is the page/modal/view/theme state machine. Its flags are
// independent of each other; only the modal depends on being in App.
type Controller struct {
	page      types.Page
	modalOpen bool
	view      types.ViewMode
	theme     types.Theme
	alert     string
	selection *upload.Selection
}

// NewController starts on the landing page with the given presentation flags
func NewController(view types.ViewMode, theme types.Theme, selection *upload.Selection) *Controller {
	if selection == nil {
		selection = upload.NewSelection(nil)
	}
	return &Controller{
		page:      types.Landing,
		view:      view,
		theme:     theme,
		selection: selection,
	}
}

func (c *Controller) Page() types.Page { return c.page }

func (c *Controller) ModalOpen() bool { return c.modalOpen }

func (c *Controller) View() types.ViewMode { return c.view }

func (c *Controller) Theme() types.Theme { return c.theme }

// Selection is the pending upload set shown in the modal
func (c *Controller) Selection() *upload.Selection { return c.selection }

func (c *Controller) moveTo(p types.Page) {
	log.LogWithFields(log.F("from", c.page.String()), log.F("to", p.String())).Debug("page transition")
	c.page = p
}

// Start begins the Landing to App stagger. It returns false when not on the
// landing page.
func (c *Controller) Start() bool {
	if c.page != types.Landing {
		return false
	}
	c.moveTo(types.Entering)
	return true
}

// Back begins the App to Landing stagger. The modal is closed on the way out.
func (c *Controller) Back() bool {
	if c.page != types.App {
		return false
	}
	if c.modalOpen {
		c.CloseModal()
	}
	c.moveTo(types.Leaving)
	return true
}

// Settle finishes a pending stagger. It returns true when the App page was
// just entered and the initial file load must be issued.
func (c *Controller) Settle() (load bool) {
	switch c.page {
	case types.Entering:
		c.moveTo(types.App)
		return true
	case types.Leaving:
		c.moveTo(types.Landing)
	}
	return false
}

// OpenModal shows the upload modal. Only possible on the App page.
func (c *Controller) OpenModal() bool {
	if c.page != types.App || c.modalOpen {
		return false
	}
	c.modalOpen = true
	return true
}

// CloseModal hides the upload modal and drops the pending selection, so the
// next open starts empty.
func (c *Controller) CloseModal() {
	c.modalOpen = false
	c.selection.Clear()
}

// UploadFinished applies the outcome of an upload. Success closes the modal;
// failure keeps the modal and the selection for a retry and raises the alert.
func (c *Controller) UploadFinished(err error) {
	if err != nil {
		c.RaiseFor(err, AlertUpload)
		return
	}
	c.CloseModal()
}

// SetView switches the layout mode and reports whether it changed
func (c *Controller) SetView(mode types.ViewMode) bool {
	if c.view == mode {
		return false
	}
	c.view = mode
	return true
}

// ToggleView flips between grid and list
func (c *Controller) ToggleView() types.ViewMode {
	c.view = c.view.Toggle()
	return c.view
}

// ToggleTheme flips between light and dark
func (c *Controller) ToggleTheme() types.Theme {
	c.theme = c.theme.Toggle()
	return c.theme
}

// Raise sets the blocking alert. A second alert replaces the first.
func (c *Controller) Raise(msg string) {
	c.alert = msg
}

// RaiseFor logs err in full and raises the generic alert text in its place
func (c *Controller) RaiseFor(err error, alert string) {
	if err == nil {
		return
	}
	log.LogWithError(err).Error(alert)
	c.Raise(alert)
}

// Dismiss clears the alert
func (c *Controller) Dismiss() {
	c.alert = ""
}

// Alert returns the current alert text, empty when none
func (c *Controller) Alert() string {
	return c.alert
}

// Blocked reports whether input other than dismissing the alert is ignored
func (c *Controller) Blocked() bool {
	return c.alert != ""
}
