package main

import (
	"fmt"

	"mediadeck/cmd/mediadeck/cli"
	"mediadeck/internal/api"
	"mediadeck/internal/config"
	"mediadeck/internal/log"
	"mediadeck/internal/upload"
	"mediadeck/pkg/types"

	"github.com/spf13/cobra"
)

// rootOptions carries the persistent flags and the loaded config to every
// subcommand
type rootOptions struct {
	cfgFile string
	baseURL string
	view    string
	logFile string
	debug   bool
	json    bool

	cfg *config.Config
}

// NewRootCmd creates the root command. Without a subcommand it starts the TUI.
func NewRootCmd() *cobra.Command {
	o := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "mediadeck",
		Short:   "Browse, search and upload files on a media storage backend",
		Long:    `mediadeck is a frontend for a media storage service. It lists stored files as cards, filters and searches them, and uploads new ones.`,
		Version: version,
		Args:    cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, o)
		},
		SilenceUsage: true,
	}

	helpTemplate := cli.DrawLogo() + "\n\n" + rootCmd.UsageTemplate()
	rootCmd.SetUsageTemplate(helpTemplate)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&o.cfgFile, "config", "", "config file (default is $HOME/.config/mediadeck/config.yaml)")
	flags.StringVar(&o.baseURL, "base-url", "", "backend API root, overrides server.base_url")
	flags.StringVar(&o.view, "view", "", "initial layout: grid or list")
	flags.StringVar(&o.logFile, "log-file", "", "log file for the terminal UI")
	flags.BoolVar(&o.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&o.json, "json-logs", false, "write logs as JSON lines")

	rootCmd.AddCommand(newTUICmd(o))
	rootCmd.AddCommand(newGUICmd(o))
	rootCmd.AddCommand(newListCmd(o))
	rootCmd.AddCommand(newSearchCmd(o))
	rootCmd.AddCommand(newCategoriesCmd(o))
	rootCmd.AddCommand(newUploadCmd(o))
	rootCmd.AddCommand(newWatchCmd(o))

	return rootCmd
}

// load reads the config file and applies flag overrides on top
func (o *rootOptions) load(cmd *cobra.Command) error {
	var err error
	if o.cfgFile != "" {
		o.cfg, err = config.LoadConfigFile(o.cfgFile)
	} else {
		o.cfg, err = config.LoadConfig()
	}
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), cli.Warning(err.Error()))
		fmt.Fprintln(cmd.ErrOrStderr(), cli.Info("Using default settings."))
		o.cfg = config.New()
	}

	if o.baseURL != "" {
		o.cfg.Server.BaseURL = o.baseURL
	}
	if o.view != "" {
		o.cfg.UI.ViewMode = o.view
	}
	if o.logFile != "" {
		o.cfg.Log.File = o.logFile
	}
	if o.debug {
		o.cfg.Log.Debug = true
	}
	if err := o.cfg.Validate(); err != nil {
		return err
	}

	log.SetDebug(o.cfg.Log.Debug)
	if o.json {
		log.Configure(log.WithOutput(cmd.ErrOrStderr()), log.WithJSON())
	} else {
		log.Configure(log.WithOutput(cmd.ErrOrStderr()))
	}
	cli.SetTheme(o.cfg.UI.Theme)

	log.LogWithFields(
		log.F("base_url", o.cfg.Server.BaseURL),
		log.F("view", o.cfg.UI.ViewMode),
	).Debug("configuration loaded")
	return nil
}

// client builds the backend client, optionally with upload options
func (o *rootOptions) client(opts ...api.Option) *api.Client {
	return api.New(o.cfg.Server.BaseURL, opts...)
}

// rules builds the upload acceptance rules from the config
func (o *rootOptions) rules() (*upload.Rules, error) {
	return upload.NewRules(o.cfg.Upload.Accept, o.cfg.MaxUploadBytes())
}

// viewMode returns the configured layout
func (o *rootOptions) viewMode() types.ViewMode {
	return types.ParseViewMode(o.cfg.UI.ViewMode)
}
