package types

// ViewMode defines how rendered cards are laid out
type ViewMode int

const (
	ViewGrid ViewMode = iota
	ViewList
)

func (v ViewMode) String() string {
	if v == ViewList {
		return "list"
	}
	return "grid"
}

// ParseViewMode maps "grid" or "list" to a ViewMode. Anything else is grid.
func ParseViewMode(s string) ViewMode {
	if s == "list" {
		return ViewList
	}
	return ViewGrid
}

// Toggle returns the other view mode
func (v ViewMode) Toggle() ViewMode {
	if v == ViewList {
		return ViewGrid
	}
	return ViewList
}

// Theme is the light/dark presentation flag
type Theme int

const (
	ThemeDark Theme = iota
	ThemeLight
)

func (t Theme) String() string {
	if t == ThemeLight {
		return "light"
	}
	return "dark"
}

// ParseTheme maps "light" or "dark" to a Theme. Anything else is dark.
func ParseTheme(s string) Theme {
	if s == "light" {
		return ThemeLight
	}
	return ThemeDark
}

// Toggle returns the other theme
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}
