package watch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"mediadeck/internal/log"
	"mediadeck/internal/upload"
	"mediadeck/pkg/types"
)

// DaemonStatus represents the current status of the daemon
type DaemonStatus struct {
	Running          bool      // Whether the daemon is currently active
	WatchDirectories []string  // Directories being watched
	LastActivity     time.Time // Time of the last drop
	FilesUploaded    int       // Drops the backend accepted
	FilesFailed      int       // Drops that were refused or failed to upload
}

// UploadCallback is told about every drop the daemon handled. err is nil on
// success; res is empty in dry run mode.
type UploadCallback func(path string, res types.UploadResult, err error)

// Daemon uploads every file that settles in its drop directories, one
// request per file
type Daemon struct {
	watcher  *Watcher
	uploader upload.Uploader
	rules    *upload.Rules

	// Statistics
	uploaded     int
	failed       int
	lastActivity time.Time

	callback UploadCallback
	dryRun   bool

	// Lock for modifications
	mutex   sync.RWMutex
	running bool
	done    chan struct{}
	cancel  context.CancelFunc
}

// NewDaemon creates a drop-folder uploader. rules may be nil to accept every
// file.
func NewDaemon(uploader upload.Uploader, rules *upload.Rules, settle time.Duration) (*Daemon, error) {
	watcher, err := New(settle)
	if err != nil {
		return nil, err
	}
	return &Daemon{
		watcher:  watcher,
		uploader: uploader,
		rules:    rules,
	}, nil
}

// AddWatchDirectory adds a directory to be watched
func (d *Daemon) AddWatchDirectory(dir string) error {
	return d.watcher.AddDirectory(dir)
}

// Start begins uploading drops until ctx is done or Stop is called
func (d *Daemon) Start(ctx context.Context) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.running {
		return fmt.Errorf("daemon is already running")
	}
	if len(d.watcher.GetDirectories()) == 0 {
		return fmt.Errorf("no directories to watch")
	}
	if err := d.watcher.Start(); err != nil {
		return fmt.Errorf("error starting watcher: %w", err)
	}

	ctx, d.cancel = context.WithCancel(ctx)
	d.done = make(chan struct{})
	d.running = true
	go d.processEvents(ctx)
	go func() {
		<-ctx.Done()
		d.watcher.Stop()
	}()
	return nil
}

// Stop halts the daemon and waits for the upload in flight, if any
func (d *Daemon) Stop() {
	d.mutex.Lock()
	if !d.running {
		d.mutex.Unlock()
		return
	}
	d.running = false
	cancel, done := d.cancel, d.done
	d.mutex.Unlock()

	cancel()
	<-done
}

// SetCallback sets a function to be called after each drop is handled
func (d *Daemon) SetCallback(cb UploadCallback) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.callback = cb
}

// SetDryRun makes the daemon check drops without sending them
func (d *Daemon) SetDryRun(dryRun bool) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.dryRun = dryRun
}

// Status returns the current status of the daemon
func (d *Daemon) Status() DaemonStatus {
	d.mutex.RLock()
	defer d.mutex.RUnlock()

	return DaemonStatus{
		Running:          d.running,
		WatchDirectories: d.watcher.GetDirectories(),
		LastActivity:     d.lastActivity,
		FilesUploaded:    d.uploaded,
		FilesFailed:      d.failed,
	}
}

// processEvents handles settled drops until the watcher closes its channel
func (d *Daemon) processEvents(ctx context.Context) {
	defer close(d.done)
	for drop := range d.watcher.Drops() {
		d.mutex.Lock()
		d.lastActivity = drop.Timestamp
		d.mutex.Unlock()

		res, err := d.UploadFile(ctx, drop.Path)

		d.mutex.RLock()
		cb := d.callback
		d.mutex.RUnlock()
		if cb != nil {
			cb(drop.Path, res, err)
		}
	}
}

// UploadFile checks path against the rules and sends it on its own
func (d *Daemon) UploadFile(ctx context.Context, path string) (types.UploadResult, error) {
	logger := log.LogWithFields(log.F("path", path))

	sel := upload.NewSelection(d.rules)
	if _, err := sel.Add(path); err != nil {
		d.count(err)
		logger.With(log.F("error", err)).Warn("drop refused")
		return types.UploadResult{}, err
	}

	d.mutex.RLock()
	dryRun := d.dryRun
	d.mutex.RUnlock()
	if dryRun {
		logger.Info("would upload")
		return types.UploadResult{}, nil
	}

	res, err := sel.Send(ctx, d.uploader)
	d.count(err)
	if err != nil {
		logger.With(log.F("error", err)).Error("upload failed")
		return res, err
	}
	logger.Info("uploaded")
	return res, nil
}

func (d *Daemon) count(err error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if err != nil {
		d.failed++
		return
	}
	d.uploaded++
}
