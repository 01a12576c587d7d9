package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"mediadeck/internal/log"

	"github.com/fsnotify/fsnotify"
)

// DefaultSettle is how long a file must stay quiet before it counts as dropped
const DefaultSettle = 200 * time.Millisecond

// Drop is a file that landed in a watched drop directory
type Drop struct {
	Path      string
	Info      os.FileInfo
	Timestamp time.Time
}

// Watcher turns files appearing in drop directories into Drop events. Bursts
// of create/write events for one path are coalesced until the file settles.
type Watcher struct {
	// Directories being watched
	directories []string

	// Channel delivering settled drops
	dropChan chan Drop

	// Channel to signal stop
	stopChan chan struct{}

	fsWatcher *fsnotify.Watcher
	settle    time.Duration

	// Per-path settle timers
	pending map[string]*time.Timer

	mutex   sync.RWMutex
	running bool
}

// New creates a drop watcher. settle <= 0 uses DefaultSettle.
func New(settle time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if settle <= 0 {
		settle = DefaultSettle
	}

	return &Watcher{
		dropChan:  make(chan Drop, 16),
		stopChan:  make(chan struct{}),
		fsWatcher: fsWatcher,
		settle:    settle,
		pending:   make(map[string]*time.Timer),
	}, nil
}

// AddDirectory starts watching dir for drops
func (w *Watcher) AddDirectory(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("error accessing directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to add directory %s to watcher: %w", dir, err)
	}

	w.mutex.Lock()
	found := false
	for _, existing := range w.directories {
		if existing == dir {
			found = true
			break
		}
	}
	if !found {
		w.directories = append(w.directories, dir)
	}
	w.mutex.Unlock()
	log.LogWithFields(log.F("directory", dir)).Info("Watching drop directory")
	return nil
}

// Drops returns the channel that delivers settled drops. It is closed by Stop.
func (w *Watcher) Drops() <-chan Drop {
	return w.dropChan
}

// Start begins processing filesystem events
func (w *Watcher) Start() error {
	w.mutex.Lock()
	if w.running {
		w.mutex.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.stopChan = make(chan struct{})
	stop := w.stopChan
	w.mutex.Unlock()

	go w.loop(stop)
	log.Debug("drop watcher started")
	return nil
}

func (w *Watcher) loop(stop chan struct{}) {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			if ignored(event.Name) {
				continue
			}
			w.schedule(event.Name)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")

		case <-stop:
			return
		}
	}
}

// schedule (re)starts the settle timer for path
func (w *Watcher) schedule(path string) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if !w.running {
		return
	}
	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	w.pending[path] = time.AfterFunc(w.settle, func() { w.emit(path) })
}

func (w *Watcher) emit(path string) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	delete(w.pending, path)
	if !w.running {
		return
	}

	info, err := os.Stat(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.LogWithFields(log.F("file", path), log.F("error", err)).Error("Error stating dropped file")
		}
		return
	}
	if info.IsDir() {
		return
	}

	select {
	case w.dropChan <- Drop{Path: path, Info: info, Timestamp: time.Now()}:
	default:
		log.LogWithFields(log.F("file", path)).Warn("Drop channel is full, dropped event")
	}
}

// ignored filters editor swap files and partial downloads
func ignored(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, "~") {
		return true
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".part", ".crdownload", ".tmp", ".swp":
		return true
	}
	return false
}

// Stop halts the watcher and closes the drop channel
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if !w.running {
		return
	}
	close(w.stopChan)
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("Error closing fsnotify watcher")
	}
	w.running = false
	close(w.dropChan)
	log.Debug("drop watcher stopped")
}

// IsRunning returns whether the watcher is currently active
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}

// GetDirectories returns the list of directories being watched
func (w *Watcher) GetDirectories() []string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	dirs := make([]string, len(w.directories))
	copy(dirs, w.directories)
	return dirs
}
