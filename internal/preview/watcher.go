package preview

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-sdui/internal/logging"
	"github.com/goliatone/go-sdui/pkg/interfaces"
)

// DefaultWatchDebounce coalesces the burst of events editors emit on save.
const DefaultWatchDebounce = 100 * time.Millisecond

// Loader accepts a freshly read schema file. *Server satisfies it.
type Loader interface {
	Load(raw []byte) error
}

// Watcher reloads a schema file into a Loader whenever it changes on disk.
type Watcher struct {
	path     string
	target   Loader
	logger   interfaces.Logger
	debounce time.Duration

	fs        *fsnotify.Watcher
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// WatcherOption customises a Watcher.
type WatcherOption func(*Watcher)

// WithWatchLogger sets the watcher logger.
func WithWatchLogger(logger interfaces.Logger) WatcherOption {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithDebounce sets the quiet period before a reload.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// Watch starts watching path. The parent directory is watched so files
// replaced by rename on save are still picked up.
func Watch(path string, target Loader, opts ...WatcherOption) (*Watcher, error) {
	if target == nil {
		return nil, fmt.Errorf("preview: watch %s: nil loader", path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("preview: resolve %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("preview: create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("preview: watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:     abs,
		target:   target,
		logger:   logging.NoOp(),
		debounce: DefaultWatchDebounce,
		fs:       fsw,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = logging.WithFields(w.logger, map[string]any{"path": abs})

	w.wg.Add(1)
	go w.loop()
	w.logger.Info("preview.watch.started")
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher and waits for the event loop to exit.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fs.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.reload()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Error("preview.watch.error", "error", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

func (w *Watcher) reload() {
	raw, err := os.ReadFile(w.path)
	if err != nil {
		w.logger.Warn("preview.watch.read_failed", "error", err)
		return
	}
	if err := w.target.Load(raw); err != nil {
		w.logger.Warn("preview.watch.reload_failed", "error", err)
		return
	}
	w.logger.Info("preview.watch.reloaded", "bytes", len(raw))
}
