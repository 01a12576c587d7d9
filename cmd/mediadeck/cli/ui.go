package cli

import (
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// ColorTheme represents a set of colors for the CLI
type ColorTheme struct {
	Name       string
	Success    string
	Error      string
	Warning    string
	Info       string
	Header     string
	Logo       string
	BoxOutline string
}

// Available themes, named like the ui.theme setting
var (
	DarkTheme = ColorTheme{
		Name:       "dark",
		Success:    colorGreen,
		Error:      colorRed,
		Warning:    colorYellow,
		Info:       colorPurple,
		Header:     colorWhite + colorBold,
		Logo:       "\033[38;5;105m",
		BoxOutline: colorPurple,
	}

	LightTheme = ColorTheme{
		Name:       "light",
		Success:    "\033[38;5;28m",
		Error:      "\033[38;5;160m",
		Warning:    "\033[38;5;136m",
		Info:       colorBlue,
		Header:     colorBlue + colorBold,
		Logo:       colorBlue,
		BoxOutline: colorBlue,
	}
)

// AvailableThemes lists every theme
var AvailableThemes = []ColorTheme{DarkTheme, LightTheme}

// CurrentTheme is the active theme
var CurrentTheme = DarkTheme

// colorEnabled is false when stdout is not a terminal
var colorEnabled = term.IsTerminal(int(os.Stdout.Fd()))

// Terminal colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorPurple = "\033[35m"
	colorWhite  = "\033[37m"
	colorBold   = "\033[1m"
)

const defaultWidth = 80

// SetTheme sets the current theme by name
func SetTheme(themeName string) bool {
	for _, theme := range AvailableThemes {
		if theme.Name == themeName {
			CurrentTheme = theme
			return true
		}
	}
	return false
}

// SetColor forces color output on or off
func SetColor(on bool) {
	colorEnabled = on
}

func paint(color, s string) string {
	if !colorEnabled || color == "" {
		return s
	}
	return color + s + colorReset
}

// Success formats a success message
func Success(message string) string {
	return paint(CurrentTheme.Success, "✓ "+message)
}

// Error formats an error message
func Error(message string) string {
	return paint(CurrentTheme.Error, "✗ "+message)
}

// Warning formats a warning message
func Warning(message string) string {
	return paint(CurrentTheme.Warning, "! "+message)
}

// Info formats an informational message
func Info(message string) string {
	return paint(CurrentTheme.Info, "ℹ "+message)
}

// Header formats a section header with an underline of the same width
func Header(message string) string {
	return paint(CurrentTheme.Header, message) + "\n" + strings.Repeat("─", runewidth.StringWidth(message))
}

// DrawBox creates a colored box around content
func DrawBox(content, color string) string {
	lines := strings.Split(content, "\n")
	maxLen := 0
	for _, line := range lines {
		if w := runewidth.StringWidth(line); w > maxLen {
			maxLen = w
		}
	}

	var b strings.Builder
	b.WriteString("┌" + strings.Repeat("─", maxLen+2) + "┐\n")
	for _, line := range lines {
		b.WriteString("│ " + runewidth.FillRight(line, maxLen) + " │\n")
	}
	b.WriteString("└" + strings.Repeat("─", maxLen+2) + "┘")
	return paint(color, b.String())
}

// DrawBoxWithTheme creates a colored box using the current theme
func DrawBoxWithTheme(content string) string {
	return DrawBox(content, CurrentTheme.BoxOutline)
}

// DrawLogo generates the ASCII art logo.
func DrawLogo() string {
	logo := `
┌┬┐┌─┐┌┬┐┬┌─┐┌┬┐┌─┐┌─┐┬┌─
│││├┤  ││││├─┤ ││├┤ │  ├┴┐
┴ ┴└─┘─┴┘┴┴ ┴─┴┘└─┘└─┘┴ ┴`

	return paint(CurrentTheme.Logo, logo)
}

// IsTerminal reports whether stdout is attached to a terminal
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Width returns the terminal width, or 80 when it cannot be determined
func Width() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}
