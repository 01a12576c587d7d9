package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"mediadeck/internal/errors"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// EnvBaseURL overrides server.base_url when set
const EnvBaseURL = "MEDIADECK_BASE_URL"

// Config represents the application configuration structure.
// It defines the backend location, UI defaults, search pacing and upload rules.
type Config struct {
	Server struct {
		BaseURL string `yaml:"base_url"` // Backend API root, e.g. http://localhost:8000/api
	} `yaml:"server"`
	UI struct {
		Theme     string `yaml:"theme"`      // light or dark
		ViewMode  string `yaml:"view_mode"`  // grid or list
		StaggerMS int    `yaml:"stagger_ms"` // Delay between landing hide and app show
	} `yaml:"ui"`
	Search struct {
		DebounceMS int `yaml:"debounce_ms"` // Quiet period before a search fires
		MinQuery   int `yaml:"min_query"`   // Shorter queries fall back to a plain listing
	} `yaml:"search"`
	Upload struct {
		MaxSizeMB int      `yaml:"max_size_mb"` // Per-file size cap, 0 disables
		Accept    []string `yaml:"accept"`      // Glob patterns for accepted file names
		DropDir   string   `yaml:"drop_dir"`    // Directory watched for dropped files
	} `yaml:"upload"`
	Log struct {
		File  string `yaml:"file"`  // TUI log file, defaults next to the config
		Debug bool   `yaml:"debug"` // Enable debug output
	} `yaml:"log"`
}

// DefaultPath returns ~/.config/mediadeck/config.yaml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mediadeck", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location
// (~/.config/mediadeck/config.yaml).
func LoadConfig() (*Config, error) {
	configPath, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(configPath)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, errors.NewConfigError("error reading config file", path, errors.ConfigNotFound, err)
	}

	// Unmarshal into a temporary config to preserve defaults for unset fields
	var tempCfg Config
	if err := yaml.Unmarshal(data, &tempCfg); err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}

	if tempCfg.Server.BaseURL != "" {
		cfg.Server.BaseURL = tempCfg.Server.BaseURL
	}
	if tempCfg.UI.Theme != "" {
		cfg.UI.Theme = tempCfg.UI.Theme
	}
	if tempCfg.UI.ViewMode != "" {
		cfg.UI.ViewMode = tempCfg.UI.ViewMode
	}
	if tempCfg.UI.StaggerMS > 0 {
		cfg.UI.StaggerMS = tempCfg.UI.StaggerMS
	}
	if tempCfg.Search.DebounceMS > 0 {
		cfg.Search.DebounceMS = tempCfg.Search.DebounceMS
	}
	if tempCfg.Search.MinQuery > 0 {
		cfg.Search.MinQuery = tempCfg.Search.MinQuery
	}
	if tempCfg.Upload.MaxSizeMB != 0 {
		cfg.Upload.MaxSizeMB = tempCfg.Upload.MaxSizeMB
	}
	if len(tempCfg.Upload.Accept) > 0 {
		cfg.Upload.Accept = tempCfg.Upload.Accept
	}
	cfg.Upload.DropDir = tempCfg.Upload.DropDir
	if tempCfg.Log.File != "" {
		cfg.Log.File = tempCfg.Log.File
	}
	cfg.Log.Debug = tempCfg.Log.Debug

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.Server.BaseURL = v
	}
}

// defaultConfig returns the default configuration with safe defaults.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Server.BaseURL = "http://localhost:8000/api"

	cfg.UI.Theme = "dark"
	cfg.UI.ViewMode = "grid"
	cfg.UI.StaggerMS = 150

	cfg.Search.DebounceMS = 300
	cfg.Search.MinQuery = 2

	// The backend stores images, videos, ZIP bundles and JSON documents
	cfg.Upload.MaxSizeMB = 50
	cfg.Upload.Accept = []string{
		"*.{png,jpg,jpeg,gif,bmp,webp}",
		"*.{mp4,mov,avi,mkv,wmv}",
		"*.zip",
		"*.json",
	}
	cfg.Upload.DropDir = ""

	return cfg
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
// Returns error if any settings are invalid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewConfigError("nil config", "", errors.InvalidConfig, nil)
	}

	u, err := url.Parse(c.Server.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.NewConfigError("base url must be absolute", "server.base_url", errors.InvalidConfig, err)
	}

	if c.UI.Theme != "light" && c.UI.Theme != "dark" {
		return errors.NewConfigError("theme must be light or dark", "ui.theme", errors.InvalidConfig, nil)
	}
	if c.UI.ViewMode != "grid" && c.UI.ViewMode != "list" {
		return errors.NewConfigError("view mode must be grid or list", "ui.view_mode", errors.InvalidConfig, nil)
	}

	if c.Search.DebounceMS < 1 {
		return errors.NewConfigError("debounce must be >= 1ms", "search.debounce_ms", errors.InvalidConfig, nil)
	}
	if c.Search.MinQuery < 1 {
		return errors.NewConfigError("minimum query length must be >= 1", "search.min_query", errors.InvalidConfig, nil)
	}

	if c.Upload.MaxSizeMB < 0 {
		return errors.NewConfigError("max size must be >= 0", "upload.max_size_mb", errors.InvalidConfig, nil)
	}
	for i, pattern := range c.Upload.Accept {
		if _, err := glob.Compile(pattern); err != nil {
			return errors.NewConfigError(fmt.Sprintf("accept pattern %d does not compile", i), "upload.accept", errors.InvalidConfig, err)
		}
	}

	if c.Upload.DropDir != "" {
		info, err := os.Stat(c.Upload.DropDir)
		if err != nil {
			return errors.NewConfigError("error accessing drop directory", "upload.drop_dir", errors.InvalidConfig, err)
		}
		if !info.IsDir() {
			return errors.NewConfigError("drop directory is not a directory", "upload.drop_dir", errors.InvalidConfig, nil)
		}
	}

	return nil
}

// Debounce returns the search quiet period
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Search.DebounceMS) * time.Millisecond
}

// Stagger returns the landing/app transition delay
func (c *Config) Stagger() time.Duration {
	return time.Duration(c.UI.StaggerMS) * time.Millisecond
}

// MaxUploadBytes returns the per-file size cap in bytes, 0 meaning unlimited
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Upload.MaxSizeMB) * 1024 * 1024
}

// LogPath returns the configured log file or one next to the default config
func (c *Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	if p, err := DefaultPath(); err == nil {
		return filepath.Join(filepath.Dir(p), "mediadeck.log")
	}
	return filepath.Join(os.TempDir(), "mediadeck.log")
}

// NewTestConfig creates a configuration instance for testing purposes.
func NewTestConfig(baseURL string) *Config {
	cfg := defaultConfig()
	cfg.Server.BaseURL = baseURL
	cfg.UI.StaggerMS = 1
	cfg.Search.DebounceMS = 20
	return cfg
}

// New creates a new configuration instance with default values.
func New() *Config {
	cfg := defaultConfig()
	cfg.applyEnv()
	return cfg
}

// GetTheme returns the color set for a theme name.
// If the theme doesn't exist, returns the dark theme.
func GetTheme(name string) map[string]string {
	themes := map[string]map[string]string{
		"dark": {
			"primary":    "#7B61FF",
			"background": "#161616",
			"surface":    "#232323",
			"text":       "#EEEEEE",
			"muted":      "#8A8A8A",
			"success":    "#73F59F",
			"warning":    "#F5C542",
			"error":      "#FF5F5F",
			"border":     "#4F4FB7",
		},
		"light": {
			"primary":    "#4F4FB7",
			"background": "#FAFAFA",
			"surface":    "#FFFFFF",
			"text":       "#1C1C1C",
			"muted":      "#666666",
			"success":    "#1E9E4A",
			"warning":    "#B7791F",
			"error":      "#C53030",
			"border":     "#B0B0D8",
		},
	}

	if theme, exists := themes[name]; exists {
		return theme
	}

	return themes["dark"]
}

// ListThemes returns a list of available theme names.
func ListThemes() []string {
	return []string{"dark", "light"}
}
