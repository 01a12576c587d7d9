package types

// Page is the top-level screen the frontend is showing
type Page int

const (
	// Landing is the start screen
	Landing Page = iota
	// Entering is the stagger between Landing and App
	Entering
	// App is the file browser
	App
	// Leaving is the stagger between App and Landing
	Leaving
)

func (p Page) String() string {
	switch p {
	case Landing:
		return "landing"
	case Entering:
		return "entering"
	case App:
		return "app"
	case Leaving:
		return "leaving"
	}
	return "unknown"
}

// Transitioning reports whether the page is mid-stagger
func (p Page) Transitioning() bool {
	return p == Entering || p == Leaving
}
