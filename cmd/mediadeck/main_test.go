package main

import (
	"bytes"
	"context"
	"os"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"mediadeck/cmd/mediadeck/cli"
	"mediadeck/internal/api"
	"mediadeck/pkg/testutils"
	"mediadeck/pkg/types"

	alsrt "github.com/alecthomas/assert"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backendStub serves the storage API from memory and records what it saw
type backendStub struct {
	mu       sync.Mutex
	queries  []string
	uploaded []string
}

func (b *backendStub) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(api.PathFiles, func(w http.ResponseWriter, r *http.Request) {
		b.record(r.URL.RawQuery)
		w.Write([]byte(`{"data":[{"name":"cat.png","type":"image","consistency_score":92,"category":"pets"},{"name":"notes.pdf","type":"pdf","consistency_score":30}]}`))
	})
	mux.HandleFunc(api.PathSearch, func(w http.ResponseWriter, r *http.Request) {
		b.record("q=" + r.URL.Query().Get("q"))
		w.Write([]byte(`[{"name":"cat.png","type":"image","consistency_score":92}]`))
	})
	mux.HandleFunc(api.PathCategories, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"name":"pets","count":1},{"name":"docs","count":12}]`))
	})
	mux.HandleFunc(api.PathUpload, func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		b.mu.Lock()
		for _, fh := range r.MultipartForm.File["file"] {
			b.uploaded = append(b.uploaded, fh.Filename)
		}
		b.mu.Unlock()
		w.Write([]byte(`{"success":true,"message":"stored","saved_files":[{"filename":"a.png","online_url":"https://cdn.test/a.png"}]}`))
	})
	return mux
}

func (b *backendStub) uploads() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.uploaded...)
}

func (b *backendStub) record(q string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.queries = append(b.queries, q)
}

// run executes the root command against srv and returns stdout and stderr
func run(t *testing.T, srv *httptest.Server, args ...string) (string, string, error) {
	t.Helper()
	cli.SetColor(false)
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	base := []string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "--base-url", srv.URL}
	cmd.SetArgs(append(base, args...))
	err := cmd.Execute()
	return testutils.StripANSI(stdout.String()), stderr.String(), err
}

// lockedBuffer is written by the watch callback while the test polls it
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (l *lockedBuffer) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.Write(p)
}

func (l *lockedBuffer) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.String()
}

func newServer(t *testing.T) (*httptest.Server, *backendStub) {
	t.Helper()
	b := &backendStub{}
	srv := httptest.NewServer(b.handler(t))
	t.Cleanup(srv.Close)
	return srv, b
}

func TestListCommand(t *testing.T) {
	srv, b := newServer(t)

	out, _, err := run(t, srv, "list", "--view", "list", "--type", "image", "--score", "high", "--category", "pets")
	require.NoError(t, err)
	alsrt.Contains(t, out, "cat.png")
	alsrt.Contains(t, out, "IMAGE")
	alsrt.Contains(t, out, "92%")
	alsrt.Contains(t, out, "2 files")
	alsrt.Equal(t, []string{"category=pets&score=high&type=image"}, b.queries)
}

func TestListRejectsUnknownFilters(t *testing.T) {
	srv, b := newServer(t)

	_, _, err := run(t, srv, "list", "--type", "sculpture")
	assert.ErrorContains(t, err, "unknown type")
	_, _, err = run(t, srv, "list", "--score", "great")
	assert.ErrorContains(t, err, "unknown score band")
	assert.Empty(t, b.queries)
}

func TestListJSON(t *testing.T) {
	srv, _ := newServer(t)

	out, _, err := run(t, srv, "list", "--json")
	require.NoError(t, err)

	var records []types.FileRecord
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "notes.pdf", records[1].Name)
}

func TestSearchCommand(t *testing.T) {
	srv, b := newServer(t)

	out, _, err := run(t, srv, "search", "black", "cat")
	require.NoError(t, err)
	assert.Contains(t, out, "cat.png")

	_, stderr, err := run(t, srv, "search", "c")
	require.NoError(t, err)
	assert.Contains(t, stderr, "listing all files")

	assert.Equal(t, []string{"q=black cat", ""}, b.queries)
}

func TestCategoriesCommand(t *testing.T) {
	srv, _ := newServer(t)

	out, _, err := run(t, srv, "categories")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Category  Files", lines[0])
	assert.Equal(t, "pets          1", lines[2])
	assert.Equal(t, "docs         12", lines[3])
}

func TestUploadCommand(t *testing.T) {
	srv, b := newServer(t)
	dir := t.TempDir()
	testutils.CreateTestFilesWithContent(t, dir, map[string]string{
		"a.png": "\x89PNG\r\n\x1a\nrest",
		"b.json": "{}",
	})

	out, stderr, err := run(t, srv, "upload", "-q",
		filepath.Join(dir, "a.png"), filepath.Join(dir, "b.json"), filepath.Join(dir, "missing.png"))
	require.NoError(t, err)
	assert.Contains(t, stderr, "missing.png")
	assert.Contains(t, out, "Uploading 2 file(s)")
	assert.Contains(t, out, "✓ stored")
	assert.Contains(t, out, "https://cdn.test/a.png")
	assert.Equal(t, []string{"a.png", "b.json"}, b.uploaded)
}

func TestUploadWithNothingAccepted(t *testing.T) {
	srv, b := newServer(t)

	_, _, err := run(t, srv, "upload", filepath.Join(t.TempDir(), "nope.png"))
	assert.ErrorContains(t, err, "no files to upload")
	assert.ErrorContains(t, err, "*.zip", "the error lists what would have been accepted")
	assert.Empty(t, b.uploaded)
}

func TestRootNeedsTerminal(t *testing.T) {
	srv, _ := newServer(t)

	_, _, err := run(t, srv)
	assert.ErrorContains(t, err, "interactive terminal")
}

func TestInvalidViewFlag(t *testing.T) {
	srv, _ := newServer(t)

	_, _, err := run(t, srv, "list", "--view", "mosaic")
	assert.ErrorContains(t, err, "view mode")
}

func TestWatchCommandUploadsDrops(t *testing.T) {
	srv, b := newServer(t)
	dir := t.TempDir()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	stdout := &lockedBuffer{}

	go func() {
		// Allow the watcher to start before dropping
		time.Sleep(300 * time.Millisecond)
		_ = os.WriteFile(filepath.Join(dir, "drop.png"), []byte("png"), 0644)
		for !strings.Contains(stdout.String(), "Uploaded") && ctx.Err() == nil {
			time.Sleep(20 * time.Millisecond)
		}
		cancel()
	}()

	cli.SetColor(false)
	cmd := NewRootCmd()
	cmd.SetOut(stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "--base-url", srv.URL, "watch", "--dir", dir})
	require.NoError(t, cmd.ExecuteContext(ctx))

	assert.Equal(t, []string{"drop.png"}, b.uploads())
	assert.Contains(t, stdout.String(), "Uploaded "+filepath.Join(dir, "drop.png"))
	assert.Contains(t, stdout.String(), "1 uploaded, 0 failed")
}

func TestWatchCommandNeedsDirectory(t *testing.T) {
	srv, _ := newServer(t)

	_, _, err := run(t, srv, "watch")
	assert.ErrorContains(t, err, "no drop directory")
}
