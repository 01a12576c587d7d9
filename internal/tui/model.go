package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mediadeck/internal/catalog"
	"mediadeck/internal/config"
	"mediadeck/internal/log"
	"mediadeck/internal/render"
	"mediadeck/internal/search"
	"mediadeck/internal/tui/components"
	"mediadeck/internal/tui/messages"
	"mediadeck/internal/tui/views"
	"mediadeck/internal/ui"
	"mediadeck/internal/upload"
	"mediadeck/internal/watch"
	"mediadeck/pkg/types"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// chromeHeight is the rows taken by everything above and below the board
const chromeHeight = 9

type Model struct {
	// Core state
	cfg       *config.Config
	backend   ui.Backend
	ctx       context.Context
	store     *catalog.Store
	board     *render.Board
	ctrl      *ui.Controller
	debouncer *search.Debouncer
	drops     <-chan watch.Drop

	// Presentation
	palette   render.Palette
	keys      types.KeyMap
	help      help.Model
	input     textinput.Model
	status    *components.StatusBar
	filters   *components.FilterBar
	boardVw   *components.BoardView
	modal     *components.UploadModal
	width     int
	height    int
	fullHelp  bool
	uploading bool
}

// Option customizes a Model
type Option func(*Model)

// WithDrops feeds files from a drop-directory watcher into the upload modal
func WithDrops(drops <-chan watch.Drop) Option {
	return func(m *Model) { m.drops = drops }
}

// WithContext sets the context every backend call runs under
func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

// New builds the terminal frontend. rules may be nil to accept every file.
func New(cfg *config.Config, backend ui.Backend, rules *upload.Rules, opts ...Option) *Model {
	theme := types.ParseTheme(cfg.UI.Theme)
	mode := types.ParseViewMode(cfg.UI.ViewMode)

	selection := upload.NewSelection(rules)
	palette := render.NewPalette(theme)
	board := render.NewBoard(mode)

	in := textinput.New()
	in.Placeholder = "Search files..."
	in.Prompt = "/ "
	in.CharLimit = 200
	in.Width = 40

	m := &Model{
		cfg:       cfg,
		backend:   backend,
		ctx:       context.Background(),
		store:     catalog.NewStore(),
		board:     board,
		ctrl:      ui.NewController(mode, theme, selection),
		debouncer: search.NewDebouncer(cfg.Debounce()),
		palette:   palette,
		keys:      types.DefaultKeyMap(),
		help:      help.New(),
		input:     in,
		status:    components.NewStatusBar(palette),
		filters:   components.NewFilterBar(),
		boardVw:   components.NewBoardView(board),
		modal:     components.NewUploadModal(selection, palette),
		width:     80,
		height:    24,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.layout()
	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForDrop())
}

// View implements tea.Model
func (m *Model) View() string {
	return views.RenderMainView(m)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case messages.StaggerMsg:
		if m.ctrl.Settle() {
			return m, m.loadAll()
		}
		return m, nil

	case messages.DebounceMsg:
		if !m.debouncer.Current(msg.Token) {
			return m, nil
		}
		return m, m.fetch(search.Plan(msg.Query, m.cfg.Search.MinQuery))

	case messages.FilesLoadedMsg:
		m.applyFiles(msg)
		return m, nil

	case messages.CategoriesLoadedMsg:
		if msg.Err != nil {
			log.LogWithError(msg.Err).Warn("categories unavailable")
		} else {
			m.store.SetCategories(msg.Categories)
		}
		m.syncChrome()
		return m, nil

	case messages.UploadDoneMsg:
		return m, m.applyUpload(msg)

	case messages.DropMsg:
		return m, tea.Batch(m.handleDrop(msg.Path), m.waitForDrop())

	case spinner.TickMsg:
		return m, m.status.Update(msg)
	}

	if m.ctrl.ModalOpen() {
		_, cmd := m.modal.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.ctrl.Blocked() {
		if key.Matches(msg, m.keys.Dismiss) {
			m.ctrl.Dismiss()
		}
		return m, nil
	}

	switch m.ctrl.Page() {
	case types.Landing:
		return m.handleLandingKeys(msg)
	case types.App:
		if m.ctrl.ModalOpen() {
			return m.handleModalKeys(msg)
		}
		if m.input.Focused() {
			return m.handleSearchKeys(msg)
		}
		return m.handleAppKeys(msg)
	}
	// keys are ignored mid-transition
	return m, nil
}

func (m *Model) handleLandingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Start):
		if m.ctrl.Start() {
			return m, m.stagger()
		}
	case key.Matches(msg, m.keys.Theme):
		m.toggleTheme()
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleAppKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Search):
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Upload):
		if m.ctrl.OpenModal() {
			return m, m.modal.Open()
		}
	case key.Matches(msg, m.keys.Grid):
		m.setView(types.ViewGrid)
	case key.Matches(msg, m.keys.List):
		m.setView(types.ViewList)
	case key.Matches(msg, m.keys.Theme):
		m.toggleTheme()
	case key.Matches(msg, m.keys.NextType):
		return m, m.cycleType(1)
	case key.Matches(msg, m.keys.PrevType):
		return m, m.cycleType(-1)
	case key.Matches(msg, m.keys.NextScore):
		return m, m.cycleScore(1)
	case key.Matches(msg, m.keys.PrevScore):
		return m, m.cycleScore(-1)
	case key.Matches(msg, m.keys.NextCategory):
		return m, m.cycleCategory(1)
	case key.Matches(msg, m.keys.PrevCategory):
		return m, m.cycleCategory(-1)
	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadAll()
	case key.Matches(msg, m.keys.Back):
		if m.ctrl.Back() {
			m.debouncer.Cancel()
			return m, m.stagger()
		}
	case key.Matches(msg, m.keys.Help):
		m.fullHelp = !m.fullHelp
		m.help.ShowAll = m.fullHelp
		m.layout()
	default:
		return m, m.boardVw.Update(msg)
	}
	return m, nil
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.input.Blur()
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.debounce(m.input.Value()))
}

func (m *Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.ctrl.CloseModal()
		return m, nil
	case key.Matches(msg, m.keys.Send):
		return m, m.send()
	case key.Matches(msg, m.keys.RemoveLast):
		m.ctrl.Selection().RemoveLast()
		return m, nil
	}

	path, cmd := m.modal.Update(msg)
	if path != "" {
		m.addToSelection(path)
	}
	return m, cmd
}

// debounce restarts the quiet window for query
func (m *Model) debounce(query string) tea.Cmd {
	token := m.debouncer.Next()
	return tea.Tick(m.debouncer.Delay(), func(time.Time) tea.Msg {
		return messages.DebounceMsg{Token: token, Query: query}
	})
}

func (m *Model) stagger() tea.Cmd {
	return tea.Tick(m.cfg.Stagger(), func(time.Time) tea.Msg {
		return messages.StaggerMsg{}
	})
}

// fetch issues req. Responses are applied in arrival order.
func (m *Model) fetch(req search.Request) tea.Cmd {
	m.store.BeginLoad()
	backend, ctx := m.backend, m.ctx
	log.LogWithFields(log.F("kind", req.Kind.String()), log.F("query", req.Query)).Debug("fetching files")
	return tea.Batch(
		m.status.SetLoading(true),
		func() tea.Msg {
			res, err := search.Execute(ctx, backend, req)
			return messages.FilesLoadedMsg{Request: req, Result: res, Err: err}
		},
	)
}

func (m *Model) loadCategories() tea.Cmd {
	backend, ctx := m.backend, m.ctx
	return func() tea.Msg {
		cats, err := backend.GetCategories(ctx)
		return messages.CategoriesLoadedMsg{Categories: cats, Err: err}
	}
}

// loadAll reloads the listing with the current filters plus the categories
func (m *Model) loadAll() tea.Cmd {
	return tea.Batch(m.fetch(search.List(m.store.Filters())), m.loadCategories())
}

func (m *Model) applyFiles(msg messages.FilesLoadedMsg) {
	if msg.Err != nil {
		m.store.Fail(msg.Err)
		m.status.SetLoading(m.store.Loading())
		alert := ui.AlertLoad
		if msg.Request.Kind == search.KindSearch {
			alert = ui.AlertSearch
		}
		m.ctrl.RaiseFor(msg.Err, alert)
		m.status.SetError("Showing previous files")
		m.syncChrome()
		return
	}

	m.store.Replace(msg.Result)
	m.status.SetLoading(m.store.Loading())
	m.board.Render(m.store.Files())
	m.boardVw.ResetScroll()
	m.status.SetText(msg.Request.Summary(len(msg.Result.Data)))
	m.syncChrome()
}

func (m *Model) send() tea.Cmd {
	if m.uploading {
		return nil
	}
	if m.ctrl.Selection().Empty() {
		m.ctrl.Raise(ui.AlertNoFile)
		return nil
	}
	m.uploading = true
	m.store.BeginLoad()
	sel := m.ctrl.Selection().Snapshot()
	count := sel.Len()
	backend, ctx := m.backend, m.ctx
	return tea.Batch(
		m.status.SetLoading(true),
		func() tea.Msg {
			res, err := sel.Send(ctx, backend)
			return messages.UploadDoneMsg{Count: count, Result: res, Err: err}
		},
	)
}

func (m *Model) applyUpload(msg messages.UploadDoneMsg) tea.Cmd {
	m.uploading = false
	m.ctrl.UploadFinished(msg.Err)
	if msg.Err != nil {
		m.store.Fail(msg.Err)
		m.status.SetLoading(m.store.Loading())
		m.status.SetError(fmt.Sprintf("%d file(s) not uploaded", msg.Count))
		m.syncChrome()
		return nil
	}

	m.store.Succeed()
	m.status.SetLoading(m.store.Loading())
	text := fmt.Sprintf("Uploaded %d file(s)", msg.Count)
	if msg.Result.Message != "" {
		text = msg.Result.Message
	}
	m.status.SetText(text)
	log.LogWithFields(log.F("files", msg.Count), log.F("storage_mode", msg.Result.StorageMode)).Info("upload complete")
	return m.loadAll()
}

func (m *Model) handleDrop(path string) tea.Cmd {
	if m.ctrl.Page() != types.App {
		log.LogWithFields(log.F("file", path)).Debug("drop ignored outside the app page")
		return nil
	}
	var cmd tea.Cmd
	if !m.ctrl.ModalOpen() && m.ctrl.OpenModal() {
		cmd = m.modal.Open()
	}
	m.addToSelection(path)
	return cmd
}

func (m *Model) addToSelection(path string) {
	item, err := m.ctrl.Selection().Add(path)
	if err != nil {
		log.LogWithError(err).Warn("file refused")
		m.modal.SetNotice(err.Error())
		return
	}
	m.modal.SetNotice("")
	log.LogWithFields(log.F("file", item.Name), log.F("mime", item.MimeType)).Debug("file selected")
}

func (m *Model) waitForDrop() tea.Cmd {
	if m.drops == nil {
		return nil
	}
	drops := m.drops
	return func() tea.Msg {
		d, ok := <-drops
		if !ok {
			return nil
		}
		return messages.DropMsg{Path: d.Path}
	}
}

func (m *Model) cycleType(step int) tea.Cmd {
	f := m.store.Filters()
	next := types.Cycle(types.TypeOptions(), f.Type, step)
	return m.fetch(search.List(m.store.SetControls(next, f.Score)))
}

func (m *Model) cycleScore(step int) tea.Cmd {
	f := m.store.Filters()
	opts := make([]string, len(types.ScoreBands))
	for i, b := range types.ScoreBands {
		opts[i] = string(b)
	}
	next := types.ScoreBand(types.Cycle(opts, string(f.Score), step))
	return m.fetch(search.List(m.store.SetControls(f.Type, next)))
}

func (m *Model) cycleCategory(step int) tea.Cmd {
	next := types.Cycle(m.store.CategoryOptions(), m.store.ActiveCategory(), step)
	return m.fetch(search.List(m.store.SetActiveCategory(next)))
}

// setView re-lays the existing cards. No fetch, no rebuild.
func (m *Model) setView(mode types.ViewMode) {
	if m.ctrl.SetView(mode) {
		m.board.SetMode(mode)
		m.boardVw.Refresh(m.palette)
	}
}

func (m *Model) toggleTheme() {
	m.palette = render.NewPalette(m.ctrl.ToggleTheme())
	m.status.SetPalette(m.palette)
	m.modal.SetPalette(m.palette)
	m.boardVw.Refresh(m.palette)
}

func (m *Model) syncChrome() {
	m.status.SetConnected(m.store.Connected())
	m.filters.Set(m.store.Filters(), m.store.Categories(), m.store.ActiveCategory())
	m.boardVw.Refresh(m.palette)
}

func (m *Model) layout() {
	inner := max(m.width-4, 20)
	chrome := chromeHeight
	if m.fullHelp {
		chrome += 3
	}
	m.boardVw.SetSize(inner, m.height-chrome)
	m.modal.SetWidth(m.width)
	m.help.Width = inner
	m.boardVw.Refresh(m.palette)
}

// Getters

func (m *Model) Page() types.Page        { return m.ctrl.Page() }
func (m *Model) Palette() render.Palette { return m.palette }
func (m *Model) Width() int              { return m.width }
func (m *Model) ModalOpen() bool         { return m.ctrl.ModalOpen() }
func (m *Model) Alert() string           { return m.ctrl.Alert() }

// Store exposes the catalog state
func (m *Model) Store() *catalog.Store { return m.store }

// Board exposes the rendered cards
func (m *Model) Board() *render.Board { return m.board }

// Controller exposes the navigation state
func (m *Model) Controller() *ui.Controller { return m.ctrl }

// SearchValue returns the current search box text
func (m *Model) SearchValue() string { return m.input.Value() }

func (m *Model) ToolbarView() string {
	p := m.palette
	grid, list := p.Inactive, p.Inactive
	if m.ctrl.View() == types.ViewGrid {
		grid = p.Active
	} else {
		list = p.Active
	}
	parts := []string{
		p.Title.Render("mediadeck"),
		m.input.View(),
		grid.Render("▦ grid"),
		list.Render("☰ list"),
		p.Muted.Render(p.Glyph),
	}
	return strings.Join(parts, " ")
}

func (m *Model) FilterView() string {
	return m.filters.View(m.palette)
}

func (m *Model) BoardView() string {
	return m.boardVw.View()
}

func (m *Model) StatusView() string {
	return m.status.View()
}

func (m *Model) HelpView() string {
	return m.help.View(m.keys)
}

func (m *Model) ModalView() string {
	return m.modal.View(m.palette, m.help.ShortHelpView(m.keys.ModalHelp()))
}
