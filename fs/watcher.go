package fs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/challengegit/chatbot"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for further changes
// before invalidating the cache.
const DefaultDebounce = 500 * time.Millisecond

// Watcher invalidates a context cache when corpus files change on disk.
type Watcher struct {
	dir      string
	cache    chatbot.ContextCache
	logger   *slog.Logger
	debounce time.Duration

	watcher *fsnotify.Watcher

	mu    sync.Mutex
	timer *time.Timer
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the debounce delay.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithLogger sets the logger used for watch events.
func WithLogger(logger *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// NewWatcher creates a Watcher for dir. Call Start to begin watching.
func NewWatcher(dir string, cache chatbot.ContextCache, opts ...WatcherOption) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		dir:      dir,
		cache:    cache,
		logger:   slog.Default(),
		debounce: DefaultDebounce,
		watcher:  fsw,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start adds the corpus directory to the watch list and processes events
// until ctx is canceled or Close is called.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.watcher.Add(w.dir); err != nil {
		return err
	}

	go w.run(ctx)

	w.logger.Info("corpus watcher started", "dir", w.dir, "debounce", w.debounce)
	return nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}

func (w *Watcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			_ = w.Close()
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !IsRelevant(ev) {
				continue
			}
			w.logger.Debug("corpus change", "file", ev.Name, "op", ev.Op.String())
			w.schedule()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("corpus watcher error", "err", err)
		}
	}
}

// schedule invalidates the cache once no further events arrive within
// the debounce delay.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.cache.Invalidate()
		w.logger.Info("corpus invalidated", "dir", w.dir)
	})
}

// IsRelevant reports whether a filesystem event can change the corpus.
// Chmod-only events are ignored.
func IsRelevant(ev fsnotify.Event) bool {
	if !IsCorpusName(ev.Name) {
		return false
	}
	return ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write) ||
		ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
}
