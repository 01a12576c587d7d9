//go:build nogui
// +build nogui

package gui

import (
	"fmt"

	"mediadeck/internal/config"
	"mediadeck/internal/ui"
	"mediadeck/internal/upload"
)

// StartGUI is a stub implementation for builds with GUI disabled
func StartGUI(cfg *config.Config, backend ui.Backend, rules *upload.Rules) error {
	fmt.Println("GUI is disabled in this build. Please use the tui command.")
	return fmt.Errorf("GUI not available in this build")
}

// IsGUIAvailable returns whether the GUI is available in this build
func IsGUIAvailable() bool {
	return false
}
