package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/membridge/internal/logger"
)

// DefaultRebuildInterval is the minimum gap between two rebuilds.
// Editors often emit several events per save; they collapse into one rebuild.
const DefaultRebuildInterval = time.Second

// RebuildFunc rebuilds the document set from scratch.
type RebuildFunc func(ctx context.Context) error

// Watcher triggers a wholesale rebuild when Markdown files change.
type Watcher struct {
	root    string
	rebuild RebuildFunc
	limiter *rate.Limiter
	pending chan struct{}
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithRebuildInterval sets the minimum gap between rebuilds.
// Zero disables throttling.
func WithRebuildInterval(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d <= 0 {
			w.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		w.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// NewWatcher creates a watcher over root that calls rebuild on change.
func NewWatcher(root string, rebuild RebuildFunc, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		root:    root,
		rebuild: rebuild,
		limiter: rate.NewLimiter(rate.Every(DefaultRebuildInterval), 1),
		pending: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches until ctx is cancelled. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := w.addTree(fsw, w.root); err != nil {
		return err
	}

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.rebuildLoop(loopCtx)
	}()
	defer func() {
		cancel()
		<-done
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(fsw, event)

		case werr, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watch error: %v", werr)
		}
	}
}

// handleEvent follows new directories and schedules a rebuild for relevant events.
func (w *Watcher) handleEvent(fsw *fsnotify.Watcher, event fsnotify.Event) {
	if event.Has(fsnotify.Create) && !isHidden(w.relative(event.Name)) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(fsw, event.Name); err != nil {
				logger.Warn("Watch %s: %v", event.Name, err)
			}
			w.schedule()
			return
		}
	}

	if !w.isRelevant(event) {
		return
	}
	logger.Debug("Change detected: %s %s", event.Op, event.Name)
	w.schedule()
}

// isRelevant reports whether event can change the document set.
func (w *Watcher) isRelevant(event fsnotify.Event) bool {
	if isHidden(w.relative(event.Name)) {
		return false
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	// A removed or renamed directory takes its files with it.
	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		return true
	}
	return isMarkdown(event.Name)
}

// schedule requests a rebuild without blocking; requests coalesce.
func (w *Watcher) schedule() {
	select {
	case w.pending <- struct{}{}:
	default:
	}
}

func (w *Watcher) rebuildLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.pending:
		}

		if err := w.limiter.Wait(ctx); err != nil {
			return
		}
		if err := w.rebuild(ctx); err != nil {
			logger.Error("Rebuild failed: %v", err)
		}
	}
}

// addTree watches dir and every non-hidden directory beneath it.
func (w *Watcher) addTree(fsw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("Error reading %s: %v", path, err)
			return nil
		}
		if !entry.IsDir() {
			return nil
		}
		if path != w.root && isHidden(w.relative(path)) {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) relative(path string) string {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return path
	}
	return rel
}
