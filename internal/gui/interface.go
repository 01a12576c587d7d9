//go:build !nogui

package gui

import (
	"mediadeck/internal/config"
	"mediadeck/internal/ui"
	"mediadeck/internal/upload"

	"fyne.io/fyne/v2/app"
)

// Interface defines the contract for GUI operations
type Interface interface {
	Run()
	ShowError(alert string, err error)
	ShowInfo(message string)
}

// Factory creates GUI instances
type Factory struct {
	config  *config.Config
	backend ui.Backend
	rules   *upload.Rules
}

// NewFactory creates a new GUI factory
func NewFactory(cfg *config.Config, backend ui.Backend, rules *upload.Rules) *Factory {
	return &Factory{
		config:  cfg,
		backend: backend,
		rules:   rules,
	}
}

// Create returns a new GUI instance on a desktop fyne app
func (f *Factory) Create() (Interface, error) {
	return NewApp(app.NewWithID("io.github.mediadeck"), f.config, f.backend, f.rules), nil
}

// StartGUI runs the desktop frontend until its window closes
func StartGUI(cfg *config.Config, backend ui.Backend, rules *upload.Rules) error {
	g, err := NewFactory(cfg, backend, rules).Create()
	if err != nil {
		return err
	}
	g.Run()
	return nil
}

// IsGUIAvailable returns whether the GUI is available in this build
func IsGUIAvailable() bool {
	return true
}
