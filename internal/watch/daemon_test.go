package watch

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"mediadeck/internal/api"
	"mediadeck/internal/upload"
	"mediadeck/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingUploader struct {
	mu    sync.Mutex
	names []string
	err   error
}

func (r *recordingUploader) UploadFiles(_ context.Context, files []api.UploadFile) (types.UploadResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range files {
		_, _ = io.Copy(io.Discard, f.Body)
		r.names = append(r.names, f.Name)
	}
	return types.UploadResult{Message: "ok"}, r.err
}

func (r *recordingUploader) sent() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.names...)
}

type handled struct {
	path string
	err  error
}

func startDaemon(t *testing.T, up upload.Uploader, rules *upload.Rules) (*Daemon, string, <-chan handled) {
	t.Helper()
	dir := t.TempDir()
	d, err := NewDaemon(up, rules, 30*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, d.AddWatchDirectory(dir))

	results := make(chan handled, 8)
	d.SetCallback(func(path string, _ types.UploadResult, err error) {
		results <- handled{path: path, err: err}
	})
	require.NoError(t, d.Start(context.Background()))
	t.Cleanup(d.Stop)

	// Allow a brief moment for fsnotify to initialize watches
	time.Sleep(100 * time.Millisecond)
	return d, dir, results
}

func waitHandled(t *testing.T, results <-chan handled) handled {
	t.Helper()
	select {
	case h := <-results:
		return h
	case <-time.After(2 * time.Second):
		t.Fatal("drop was not handled")
		return handled{}
	}
}

func TestDaemonUploadsDrops(t *testing.T) {
	up := &recordingUploader{}
	d, dir, results := startDaemon(t, up, nil)

	path := filepath.Join(dir, "scan.png")
	require.NoError(t, os.WriteFile(path, []byte("image bytes"), 0644))

	h := waitHandled(t, results)
	assert.Equal(t, path, h.path)
	assert.NoError(t, h.err)
	assert.Equal(t, []string{"scan.png"}, up.sent())

	status := d.Status()
	assert.True(t, status.Running)
	assert.Equal(t, []string{dir}, status.WatchDirectories)
	assert.Equal(t, 1, status.FilesUploaded)
	assert.Zero(t, status.FilesFailed)
	assert.False(t, status.LastActivity.IsZero())
}

func TestDaemonRefusesByRules(t *testing.T) {
	rules, err := upload.NewRules([]string{"*.png"}, 0)
	require.NoError(t, err)
	up := &recordingUploader{}
	d, dir, results := startDaemon(t, up, rules)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "setup.exe"), []byte("MZ"), 0644))

	h := waitHandled(t, results)
	assert.ErrorContains(t, h.err, "not accepted")
	assert.Empty(t, up.sent())
	assert.Equal(t, 1, d.Status().FilesFailed)
}

func TestDaemonCountsFailedUploads(t *testing.T) {
	up := &recordingUploader{err: errors.New("backend down")}
	d, dir, results := startDaemon(t, up, nil)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "clip.mp4"), []byte("video"), 0644))

	h := waitHandled(t, results)
	assert.Error(t, h.err)
	assert.Equal(t, 1, d.Status().FilesFailed)
	assert.Zero(t, d.Status().FilesUploaded)
}

func TestDaemonDryRun(t *testing.T) {
	up := &recordingUploader{}
	d, dir, results := startDaemon(t, up, nil)
	d.SetDryRun(true)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte("{}"), 0644))

	h := waitHandled(t, results)
	assert.NoError(t, h.err)
	assert.Empty(t, up.sent())
}

func TestDaemonStartStop(t *testing.T) {
	d, err := NewDaemon(&recordingUploader{}, nil, 0)
	require.NoError(t, err)
	assert.Error(t, d.Start(context.Background()), "no directories")

	require.NoError(t, d.AddWatchDirectory(t.TempDir()))
	require.NoError(t, d.Start(context.Background()))
	assert.Error(t, d.Start(context.Background()), "already running")

	d.Stop()
	assert.False(t, d.Status().Running)
	d.Stop()
}
