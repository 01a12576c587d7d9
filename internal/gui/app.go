//go:build !nogui

package gui

import (
	"context"
	"fmt"
	"image/color"
	"sync"
	"time"

	"mediadeck/internal/catalog"
	"mediadeck/internal/config"
	"mediadeck/internal/log"
	"mediadeck/internal/render"
	"mediadeck/internal/search"
	"mediadeck/internal/ui"
	"mediadeck/internal/upload"
	"mediadeck/pkg/types"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// gridCardSize is the cell size of one card in grid mode
var gridCardSize = fyne.NewSize(220, 210)

// App is the GUI application
type App struct {
	fyneApp    fyne.App
	mainWindow fyne.Window
	cfg        *config.Config
	backend    ui.Backend
	ctx        context.Context

	// mu guards ctrl; backend replies arrive on worker goroutines
	mu        sync.Mutex
	ctrl      *ui.Controller
	store     *catalog.Store
	board     *render.Board
	debouncer *search.Debouncer

	// boardMu serializes card and category rebuilds
	boardMu sync.Mutex
	// loadingMu serializes progress bar updates
	loadingMu sync.Mutex

	// Widgets
	landing     fyne.CanvasObject
	appView     fyne.CanvasObject
	searchEntry *widget.Entry
	typeSelect  *widget.Select
	scoreSelect *widget.Select
	categoryBar *fyne.Container
	boardBox    *fyne.Container
	cardObjects []fyne.CanvasObject
	statusLabel *widget.Label
	connLabel   *widget.Label
	loading     *widget.ProgressBarInfinite
	themeButton *widget.Button
	modal       *widget.PopUp
	modalList   *widget.Label
	alert       dialog.Dialog
}

// NewApp creates the GUI on fyneApp. rules may be nil to accept every file.
func NewApp(fyneApp fyne.App, cfg *config.Config, backend ui.Backend, rules *upload.Rules) *App {
	th := types.ParseTheme(cfg.UI.Theme)
	mode := types.ParseViewMode(cfg.UI.ViewMode)

	a := &App{
		fyneApp:   fyneApp,
		cfg:       cfg,
		backend:   backend,
		ctx:       context.Background(),
		ctrl:      ui.NewController(mode, th, upload.NewSelection(rules)),
		store:     catalog.NewStore(),
		board:     render.NewBoard(mode),
		debouncer: search.NewDebouncer(cfg.Debounce()),
	}

	a.mainWindow = fyneApp.NewWindow("mediadeck")
	a.mainWindow.Resize(fyne.NewSize(1000, 720))
	a.mainWindow.SetOnDropped(func(_ fyne.Position, uris []fyne.URI) {
		paths := make([]string, 0, len(uris))
		for _, u := range uris {
			paths = append(paths, u.Path())
		}
		a.HandleDrop(paths)
	})

	a.landing = a.buildLanding()
	a.appView = a.buildAppView()
	a.applyTheme(th)
	a.mainWindow.SetContent(a.landing)
	return a
}

// Run shows the main window and blocks until it is closed
func (a *App) Run() {
	a.mainWindow.ShowAndRun()
}

// GetMainWindow returns the main window instance
func (a *App) GetMainWindow() fyne.Window {
	return a.mainWindow
}

// ShowError logs err and raises the generic alert
func (a *App) ShowError(alert string, err error) {
	a.mu.Lock()
	a.ctrl.RaiseFor(err, alert)
	a.mu.Unlock()
	a.showAlert()
}

// ShowInfo puts message on the status line
func (a *App) ShowInfo(message string) {
	a.statusLabel.SetText(message)
}

func (a *App) buildLanding() fyne.CanvasObject {
	title := widget.NewLabelWithStyle("mediadeck", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	sub := widget.NewLabelWithStyle("Upload, browse and search your stored media.", fyne.TextAlignCenter, fyne.TextStyle{})
	start := widget.NewButton("Get started", a.Start)
	start.Importance = widget.HighImportance
	return container.NewCenter(container.NewVBox(title, sub, start))
}

func (a *App) buildAppView() fyne.CanvasObject {
	a.searchEntry = widget.NewEntry()
	a.searchEntry.SetPlaceHolder("Search files...")
	a.searchEntry.OnChanged = a.onSearchChanged

	a.typeSelect = widget.NewSelect(types.TypeOptions(), nil)
	a.typeSelect.SetSelected(types.All)
	a.typeSelect.OnChanged = func(string) { a.onControlsChanged() }

	scores := make([]string, len(types.ScoreBands))
	for i, b := range types.ScoreBands {
		scores[i] = string(b)
	}
	a.scoreSelect = widget.NewSelect(scores, nil)
	a.scoreSelect.SetSelected(types.All)
	a.scoreSelect.OnChanged = func(string) { a.onControlsChanged() }

	a.themeButton = widget.NewButton(render.ThemeGlyph(a.ctrl.Theme()), a.ToggleTheme)
	toolbar := container.NewBorder(nil, nil,
		container.NewHBox(
			widget.NewButtonWithIcon("", theme.NavigateBackIcon(), a.Back),
			widget.NewButtonWithIcon("Upload", theme.UploadIcon(), a.OpenModal),
		),
		container.NewHBox(
			a.typeSelect,
			a.scoreSelect,
			widget.NewButtonWithIcon("", theme.GridIcon(), func() { a.SetView(types.ViewGrid) }),
			widget.NewButtonWithIcon("", theme.ListIcon(), func() { a.SetView(types.ViewList) }),
			a.themeButton,
		),
		a.searchEntry,
	)

	a.categoryBar = container.NewHBox()
	a.boardBox = container.New(a.boardLayout())
	a.statusLabel = widget.NewLabel("")
	a.connLabel = widget.NewLabel("offline")
	a.loading = widget.NewProgressBarInfinite()
	a.loading.Stop()
	a.loading.Hide()

	top := container.NewVBox(toolbar, container.NewHScroll(a.categoryBar), a.loading)
	bottom := container.NewHBox(a.connLabel, layout.NewSpacer(), a.statusLabel)
	return container.NewBorder(top, bottom, nil, nil, container.NewVScroll(a.boardBox))
}

// Start runs the Landing to App stagger and the initial load
func (a *App) Start() {
	a.mu.Lock()
	ok := a.ctrl.Start()
	a.mu.Unlock()
	if !ok {
		return
	}
	time.AfterFunc(a.cfg.Stagger(), func() {
		a.mu.Lock()
		load := a.ctrl.Settle()
		a.mu.Unlock()
		a.mainWindow.SetContent(a.appView)
		if load {
			a.reload()
		}
	})
}

// Back runs the App to Landing stagger without reloading
func (a *App) Back() {
	a.mu.Lock()
	ok := a.ctrl.Back()
	a.mu.Unlock()
	if !ok {
		return
	}
	a.debouncer.Cancel()
	a.hideModal()
	time.AfterFunc(a.cfg.Stagger(), func() {
		a.mu.Lock()
		a.ctrl.Settle()
		a.mu.Unlock()
		a.mainWindow.SetContent(a.landing)
	})
}

// Page returns the current page
func (a *App) Page() types.Page {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ctrl.Page()
}

func (a *App) onSearchChanged(text string) {
	a.debouncer.Trigger(text, func(q string) {
		a.fetch(search.Plan(q, a.cfg.Search.MinQuery))
	})
}

func (a *App) onControlsChanged() {
	f := a.store.SetControls(a.typeSelect.Selected, types.ScoreBand(a.scoreSelect.Selected))
	go a.fetch(search.List(f))
}

// SelectCategory marks name active and reloads with it
func (a *App) SelectCategory(name string) {
	f := a.store.SetActiveCategory(name)
	a.refreshCategories()
	go a.fetch(search.List(f))
}

// reload fetches the listing with the current filters plus the categories
func (a *App) reload() {
	go func() {
		cats, err := a.backend.GetCategories(a.ctx)
		if err != nil {
			log.LogWithError(err).Warn("categories unavailable")
			return
		}
		a.store.SetCategories(cats)
		a.refreshCategories()
	}()
	go a.fetch(search.List(a.store.Filters()))
}

// fetch runs req on the calling goroutine and applies the reply
func (a *App) fetch(req search.Request) {
	a.store.BeginLoad()
	a.syncLoading()
	res, err := search.Execute(a.ctx, a.backend, req)

	if err != nil {
		a.store.Fail(err)
		a.syncLoading()
		a.connLabel.SetText("offline")
		alert := ui.AlertLoad
		if req.Kind == search.KindSearch {
			alert = ui.AlertSearch
		}
		a.ShowError(alert, err)
		return
	}

	a.store.Replace(res)
	a.syncLoading()
	a.connLabel.SetText("connected")
	a.statusLabel.SetText(req.Summary(len(res.Data)))
	a.rebuildCards()
	a.refreshCategories()
}

// syncLoading shows the progress bar while any call is in flight. The lock
// orders concurrent syncs so the last one reflects the store.
func (a *App) syncLoading() {
	a.loadingMu.Lock()
	defer a.loadingMu.Unlock()
	if a.store.Loading() {
		a.loading.Show()
		a.loading.Start()
		return
	}
	a.loading.Stop()
	a.loading.Hide()
}

// LoadingShown reports whether the progress bar is visible
func (a *App) LoadingShown() bool {
	a.loadingMu.Lock()
	defer a.loadingMu.Unlock()
	return a.loading.Visible()
}

// rebuildCards replaces every card widget after a new listing arrived
func (a *App) rebuildCards() {
	a.boardMu.Lock()
	defer a.boardMu.Unlock()
	a.board.Render(a.store.Files())
	cards := a.board.Cards()
	if len(cards) == 0 {
		a.cardObjects = []fyne.CanvasObject{widget.NewLabel(render.EmptyStateText)}
	} else {
		a.cardObjects = make([]fyne.CanvasObject, 0, len(cards))
		for _, c := range cards {
			a.cardObjects = append(a.cardObjects, newCardWidget(c))
		}
	}
	a.boardBox.Objects = a.cardObjects
	a.boardBox.Layout = a.boardLayout()
	a.boardBox.Refresh()
}

func (a *App) boardLayout() fyne.Layout {
	if a.board.Mode() == types.ViewList {
		return layout.NewVBoxLayout()
	}
	return layout.NewGridWrapLayout(gridCardSize)
}

func (a *App) refreshCategories() {
	a.boardMu.Lock()
	defer a.boardMu.Unlock()
	active := a.store.ActiveCategory()
	buttons := []fyne.CanvasObject{categoryButton(types.All, types.All, active, a.SelectCategory)}
	for _, c := range a.store.Categories() {
		buttons = append(buttons, categoryButton(fmt.Sprintf("%s %d", c.Name, c.Count), c.Name, active, a.SelectCategory))
	}
	a.categoryBar.Objects = buttons
	a.categoryBar.Refresh()
}

func categoryButton(label, name, active string, pick func(string)) *widget.Button {
	b := widget.NewButton(label, func() { pick(name) })
	if name == active {
		b.Importance = widget.HighImportance
	}
	return b
}

// SetView swaps the layout of the existing card widgets. Nothing is rebuilt
// or fetched.
func (a *App) SetView(mode types.ViewMode) {
	a.mu.Lock()
	changed := a.ctrl.SetView(mode)
	a.mu.Unlock()
	if !changed {
		return
	}
	a.boardMu.Lock()
	defer a.boardMu.Unlock()
	a.board.SetMode(mode)
	a.boardBox.Layout = a.boardLayout()
	a.boardBox.Refresh()
}

// CardObjects returns the card widgets currently on the board
func (a *App) CardObjects() []fyne.CanvasObject {
	a.boardMu.Lock()
	defer a.boardMu.Unlock()
	return append([]fyne.CanvasObject(nil), a.boardBox.Objects...)
}

// BoardMode returns the layout the board is drawn in
func (a *App) BoardMode() types.ViewMode {
	a.boardMu.Lock()
	defer a.boardMu.Unlock()
	return a.board.Mode()
}

// ToggleTheme flips light and dark
func (a *App) ToggleTheme() {
	a.mu.Lock()
	t := a.ctrl.ToggleTheme()
	a.mu.Unlock()
	a.applyTheme(t)
}

func (a *App) applyTheme(t types.Theme) {
	variant := theme.VariantDark
	if t == types.ThemeLight {
		variant = theme.VariantLight
	}
	a.fyneApp.Settings().SetTheme(&variantTheme{Theme: theme.DefaultTheme(), variant: variant})
	if a.themeButton != nil {
		a.themeButton.SetText(render.ThemeGlyph(t))
	}
}

// Controller exposes the navigation state
func (a *App) Controller() *ui.Controller { return a.ctrl }

// Store exposes the catalog state
func (a *App) Store() *catalog.Store { return a.store }

// variantTheme pins the default theme to one variant
type variantTheme struct {
	fyne.Theme
	variant fyne.ThemeVariant
}

func (t *variantTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return t.Theme.Color(name, t.variant)
}
