package fileutil

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the window in which repeated events for the same
// path collapse into one change. Editors often write a file several
// times in quick succession.
const DefaultDebounce = 500 * time.Millisecond

// Change is one debounced filesystem change.
type Change struct {
	// Path is the changed file or directory.
	Path string

	// Op is the last fsnotify operation observed in the window.
	Op fsnotify.Op

	// Time is when the last event arrived.
	Time time.Time
}

// ChangeHandler receives debounced changes.
type ChangeHandler func(Change)

// Watcher monitors a directory tree and reports changes after a
// debounce window. New subdirectories are added to the watch
// automatically.
type Watcher struct {
	root     string
	debounce time.Duration
	ignore   []string
	handler  ChangeHandler
	logger   *slog.Logger

	fsw *fsnotify.Watcher

	mu      sync.Mutex
	pending map[string]Change
	timer   *time.Timer

	stopOnce sync.Once
	done     chan struct{}
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the debounce window.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithIgnorePatterns sets glob patterns for paths the watcher skips.
func WithIgnorePatterns(patterns []string) WatcherOption {
	return func(w *Watcher) {
		w.ignore = patterns
	}
}

// WithWatcherLogger sets the logger for watch errors.
func WithWatcherLogger(logger *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// NewWatcher creates a Watcher for the tree rooted at root. Changes
// are delivered to handler after the debounce window closes.
func NewWatcher(root string, handler ChangeHandler, opts ...WatcherOption) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	w := &Watcher{
		root:     root,
		debounce: DefaultDebounce,
		handler:  handler,
		logger:   slog.Default(),
		fsw:      fsw,
		pending:  make(map[string]Change),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := w.addRecursive(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Start blocks processing events until ctx is canceled or Stop is
// called.
func (w *Watcher) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.done:
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

// Stop shuts the watcher down. Pending debounced changes are dropped.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
		w.fsw.Close()
	})
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil {
		rel = event.Name
	}
	if matchesAny(w.ignore, filepath.Base(event.Name), filepath.ToSlash(rel)) {
		return
	}

	// Watch newly created directories so the whole tree stays covered.
	if event.Op.Has(fsnotify.Create) && IsDir(event.Name) {
		if err := w.addRecursive(event.Name); err != nil {
			w.logger.Warn("watch new directory", "path", event.Name, "error", err)
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[event.Name] = Change{Path: event.Name, Op: event.Op, Time: time.Now()}
	if w.timer == nil {
		w.timer = time.AfterFunc(w.debounce, w.flush)
	} else {
		w.timer.Reset(w.debounce)
	}
}

// flush delivers all pending changes to the handler.
func (w *Watcher) flush() {
	w.mu.Lock()
	changes := make([]Change, 0, len(w.pending))
	for _, c := range w.pending {
		changes = append(changes, c)
	}
	w.pending = make(map[string]Change)
	w.timer = nil
	w.mu.Unlock()

	select {
	case <-w.done:
		return
	default:
	}
	for _, c := range changes {
		w.handler(c)
	}
}

// addRecursive watches dir and all its subdirectories.
func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable subtrees are skipped
		}
		if !d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(w.root, path)
		if relErr == nil && matchesAny(w.ignore, d.Name(), filepath.ToSlash(rel)) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}
