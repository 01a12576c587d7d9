package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings of the terminal frontend.
// It lives in pkg/types so the model and the help line share one definition.
type KeyMap struct {
	// General
	Help  key.Binding
	Quit  key.Binding
	Theme key.Binding

	// Landing
	Start key.Binding

	// App
	Search       key.Binding
	Upload       key.Binding
	Grid         key.Binding
	List         key.Binding
	NextType     key.Binding
	PrevType     key.Binding
	NextScore    key.Binding
	PrevScore    key.Binding
	NextCategory key.Binding
	PrevCategory key.Binding
	Refresh      key.Binding
	Back         key.Binding

	// Upload modal
	Send       key.Binding
	RemoveLast key.Binding
	Cancel     key.Binding

	// Alert
	Dismiss key.Binding
}

// DefaultKeyMap returns the standard bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Theme: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),

		Start: key.NewBinding(key.WithKeys("enter", "s"), key.WithHelp("enter", "start")),

		Search:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Upload:       key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "upload")),
		Grid:         key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "grid")),
		List:         key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "list")),
		NextType:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f/F", "type")),
		PrevType:     key.NewBinding(key.WithKeys("F")),
		NextScore:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c/C", "score")),
		PrevScore:    key.NewBinding(key.WithKeys("C")),
		NextCategory: key.NewBinding(key.WithKeys("]"), key.WithHelp("[/]", "category")),
		PrevCategory: key.NewBinding(key.WithKeys("[")),
		Refresh:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Back:         key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "back")),

		Send:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "upload")),
		RemoveLast: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove last")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),

		Dismiss: key.NewBinding(key.WithKeys("enter", "esc", " "), key.WithHelp("enter", "dismiss")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Upload, k.Grid, k.List, k.Theme, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Upload, k.Refresh, k.Back},
		{k.NextType, k.NextScore, k.NextCategory},
		{k.Grid, k.List, k.Theme},
		{k.Help, k.Quit},
	}
}

// ModalHelp lists the bindings active inside the upload modal
func (k KeyMap) ModalHelp() []key.Binding {
	return []key.Binding{k.Send, k.RemoveLast, k.Cancel}
}
