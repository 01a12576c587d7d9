package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"mediadeck/internal/config"
	"mediadeck/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a temporary YAML config file
func createTestYAML(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp(t.TempDir(), "config-*.yaml")
	require.NoError(t, err)
	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, tmpFile.Close())
	return tmpFile.Name()
}

const (
	validYAML = `
server:
  base_url: "http://files.internal:9000/api"
ui:
  theme: light
  view_mode: list
search:
  debounce_ms: 500
upload:
  max_size_mb: 10
  accept: ["*.png", "*.json"]
`
	invalidSyntaxYAML = `
server:
  base_url: "http://broken
ui: [
`
	invalidThemeYAML = `
ui:
  theme: sepia
`
	invalidAcceptYAML = `
upload:
  accept: ["*.{png"]
`
)

func TestLoadConfigFile(t *testing.T) {
	t.Run("load valid config", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(createTestYAML(t, validYAML))
		require.NoError(t, err)

		assert.Equal(t, "http://files.internal:9000/api", cfg.Server.BaseURL)
		assert.Equal(t, "light", cfg.UI.Theme)
		assert.Equal(t, "list", cfg.UI.ViewMode)
		assert.Equal(t, 500*time.Millisecond, cfg.Debounce())
		assert.Equal(t, int64(10*1024*1024), cfg.MaxUploadBytes())
		assert.Equal(t, []string{"*.png", "*.json"}, cfg.Upload.Accept)

		// Unset fields keep their defaults
		assert.Equal(t, 2, cfg.Search.MinQuery)
		assert.Equal(t, 150*time.Millisecond, cfg.Stagger())
	})

	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8000/api", cfg.Server.BaseURL)
		assert.Equal(t, 300*time.Millisecond, cfg.Debounce())
		assert.Equal(t, "dark", cfg.UI.Theme)
		assert.Equal(t, "grid", cfg.UI.ViewMode)
	})

	t.Run("invalid syntax", func(t *testing.T) {
		_, err := config.LoadConfigFile(createTestYAML(t, invalidSyntaxYAML))
		require.Error(t, err)
		assert.True(t, errors.IsInvalidConfig(err))
	})

	t.Run("invalid theme", func(t *testing.T) {
		_, err := config.LoadConfigFile(createTestYAML(t, invalidThemeYAML))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ui.theme")
	})

	t.Run("invalid accept glob", func(t *testing.T) {
		_, err := config.LoadConfigFile(createTestYAML(t, invalidAcceptYAML))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "upload.accept")
	})

	t.Run("env overrides base url", func(t *testing.T) {
		t.Setenv(config.EnvBaseURL, "http://override:1234/api")
		cfg, err := config.LoadConfigFile(createTestYAML(t, validYAML))
		require.NoError(t, err)
		assert.Equal(t, "http://override:1234/api", cfg.Server.BaseURL)
	})
}

func TestValidate(t *testing.T) {
	cfg := config.New()
	require.NoError(t, cfg.Validate())

	cfg.Server.BaseURL = "not a url"
	assert.Error(t, cfg.Validate())

	cfg = config.New()
	cfg.Search.DebounceMS = 0
	assert.Error(t, cfg.Validate())

	cfg = config.New()
	cfg.Upload.DropDir = filepath.Join(t.TempDir(), "missing")
	assert.Error(t, cfg.Validate())

	cfg = config.New()
	cfg.Upload.DropDir = t.TempDir()
	assert.NoError(t, cfg.Validate())

	var nilCfg *config.Config
	assert.Error(t, nilCfg.Validate())
}

func TestSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := config.New()
	cfg.UI.Theme = "light"
	require.NoError(t, config.SaveConfig(cfg, path))

	loaded, err := config.LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "light", loaded.UI.Theme)
	assert.Equal(t, cfg.Upload.Accept, loaded.Upload.Accept)
}

func TestThemes(t *testing.T) {
	for _, name := range config.ListThemes() {
		theme := config.GetTheme(name)
		assert.NotEmpty(t, theme["primary"], name)
		assert.NotEmpty(t, theme["text"], name)
	}
	assert.Equal(t, config.GetTheme("dark"), config.GetTheme("unknown"))
}
