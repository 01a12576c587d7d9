package main

import (
	"fmt"

	"mediadeck/cmd/mediadeck/cli"
	"mediadeck/internal/errors"
	"mediadeck/internal/gui"
	"mediadeck/internal/log"
	"mediadeck/internal/tui"
	"mediadeck/internal/watch"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// newTUICmd represents the TUI command
func newTUICmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the terminal user interface",
		Long:  `Start the terminal user interface. Files copied into upload.drop_dir are offered for upload.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, o)
		},
	}
}

func runTUI(cmd *cobra.Command, o *rootOptions) error {
	if !cli.IsTerminal() {
		return errors.New("the terminal UI needs an interactive terminal; try the list or search commands")
	}

	// The program owns the terminal, so log lines go to a file
	logOpts := []log.Option{log.WithFile(o.cfg.LogPath())}
	if o.json {
		logOpts = append(logOpts, log.WithJSON())
	}
	log.Configure(logOpts...)

	rules, err := o.rules()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	opts := []tui.Option{tui.WithContext(ctx)}
	if dir := o.cfg.Upload.DropDir; dir != "" {
		w, err := watch.New(watch.DefaultSettle)
		if err != nil {
			return errors.Wrap(err, "failed to create drop watcher")
		}
		if err := w.AddDirectory(dir); err != nil {
			return err
		}
		if err := w.Start(); err != nil {
			return errors.Wrap(err, "failed to start drop watcher")
		}
		defer w.Stop()
		opts = append(opts, tui.WithDrops(w.Drops()))
		log.LogWithFields(log.F("dir", dir)).Info("watching drop directory")
	}

	m := tui.New(o.cfg, o.client(), rules, opts...)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

// newGUICmd creates the GUI command for the CLI
func newGUICmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Launch the graphical user interface",
		Long:  `Launch the desktop frontend. Files dropped on the window are offered for upload.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !gui.IsGUIAvailable() {
				return errors.New("GUI not available in this build")
			}
			rules, err := o.rules()
			if err != nil {
				return err
			}
			return gui.StartGUI(o.cfg, o.client(), rules)
		},
	}
}
