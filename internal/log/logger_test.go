package log

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mediadeck/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.Info("info message")
	assert.Contains(t, buf.String(), "level=info")
	assert.Contains(t, buf.String(), "info message")
	buf.Reset()

	l.Warn("warn message")
	assert.Contains(t, buf.String(), "level=warning")
	assert.Contains(t, buf.String(), "warn message")
	buf.Reset()

	l.Error("error message")
	assert.Contains(t, buf.String(), "level=error")
	buf.Reset()

	l.Infof("formatted %s", "message")
	assert.Contains(t, buf.String(), "formatted message")
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	SetDebug(false)
	l.Debug("debug message")
	assert.Empty(t, buf.String())

	SetDebug(true)
	defer SetDebug(false)
	l.Debug("debug message")
	assert.Contains(t, buf.String(), "level=debug")
	assert.Contains(t, buf.String(), "debug message")
	buf.Reset()

	l.Debugf("formatted %s", "debug")
	assert.Contains(t, buf.String(), "formatted debug")
}

func TestStructuredLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.With(F("key1", "value1"), F("key2", 123)).Info("structured message")
	output := buf.String()
	assert.Contains(t, output, "structured message")
	assert.Contains(t, output, "key1=value1")
	assert.Contains(t, output, "key2=123")
	buf.Reset()

	l.With(F("key1", "value1")).With(F("key2", 123)).Info("chained fields")
	output = buf.String()
	assert.Contains(t, output, "key1=value1")
	assert.Contains(t, output, "key2=123")
}

func TestJSONLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf), WithJSON())

	l.With(F("key1", "value1"), F("key2", 123)).Info("structured json")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "structured json", entry["message"])
	assert.Contains(t, entry, "timestamp")
	assert.Equal(t, "value1", entry["key1"])
	assert.Equal(t, float64(123), entry["key2"])
}

func TestErrorLogging(t *testing.T) {
	var buf bytes.Buffer
	originalLogger := logger
	logger = NewLogger(WithOutput(&buf))
	defer func() { logger = originalLogger }()

	reqErr := errors.NewRequestError("list files", errors.HTTPError, 503, "unavailable", nil)
	LogWithError(reqErr).Error("list failed")
	output := buf.String()
	assert.Contains(t, output, "list failed")
	assert.Contains(t, output, "op=\"list files\"")
	assert.Contains(t, output, "status=503")
	assert.Contains(t, output, "error_kind=\"http error\"")
	buf.Reset()

	upErr := errors.NewUploadError("not accepted", "/tmp/x.exe", errors.InvalidUpload, nil)
	LogError(upErr, "selection refused")
	output = buf.String()
	assert.Contains(t, output, "selection refused")
	assert.Contains(t, output, "path=/tmp/x.exe")
	buf.Reset()

	cfgErr := errors.NewConfigError("bad", "ui.theme", errors.InvalidConfig, fmt.Errorf("nope"))
	LogWithError(cfgErr).Warn("config")
	assert.Contains(t, buf.String(), "param=ui.theme")
	buf.Reset()

	LogWithError(nil).Error("nil error test")
	assert.Contains(t, buf.String(), "error=<nil>")
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mediadeck.log")

	originalLogger := logger
	Configure(WithFile(path))
	defer func() {
		logger.Close()
		logger = originalLogger
	}()

	LogWithFields(F("component", "tui")).Info("file test message")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "file test message")
	assert.Contains(t, string(content), "component=tui")
}
