// Package watch re-runs a callback when files under a set of directories change.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Event is a wrapper around fsnotify.Event
type Event struct {
	Name string
	Op   fsnotify.Op
}

// Watcher handles filesystem events and fires OnEvent once per burst
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   *zap.Logger
	Dirs     []string
	Debounce time.Duration
	// Filter, when set, drops events whose path it rejects.
	Filter  func(path string) bool
	OnEvent func(Event)
}

// New creates a new watcher for the specified directories
func New(dirs []string, debounce time.Duration, logger *zap.Logger, onEvent func(Event)) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create file watcher")
	}

	return &Watcher{
		watcher:  w,
		logger:   logger,
		Dirs:     dirs,
		Debounce: debounce,
		OnEvent:  onEvent,
	}, nil
}

// addTree watches dir and every non-hidden directory below it
func (w *Watcher) addTree(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if path != dir && filepath.Base(path)[0] == '.' {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

// Start watches until ctx is done. OnEvent runs on its own goroutine, never
// concurrently with itself, with the last event of each debounced burst.
func (w *Watcher) Start(ctx context.Context) error {
	defer func() { _ = w.watcher.Close() }()

	for _, dir := range w.Dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			w.logger.Warn("watch directory does not exist", zap.String("dir", dir))
			continue
		}
		if err := w.addTree(dir); err != nil {
			return errors.Wrapf(err, "watch %s", dir)
		}
	}
	w.logger.Info("watch mode active", zap.Strings("dirs", w.Dirs), zap.Duration("debounce", w.Debounce))

	var (
		timer   *time.Timer
		mu      sync.Mutex // serializes OnEvent
		running sync.WaitGroup
	)
	// a timer stopped before firing never calls Done itself
	stop := func() {
		if timer != nil && timer.Stop() {
			running.Done()
		}
	}
	defer func() {
		stop()
		running.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			// Ignore chmod and other meta events
			if event.Op&fsnotify.Chmod == fsnotify.Chmod {
				continue
			}

			// Handle new directories
			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						w.logger.Warn("failed to watch new directory", zap.String("dir", event.Name), zap.Error(err))
					}
					continue
				}
			}
			if w.Filter != nil && !w.Filter(event.Name) {
				continue
			}

			w.logger.Debug("change detected", zap.String("path", event.Name), zap.Stringer("op", event.Op))
			ev := Event{Name: event.Name, Op: event.Op}
			stop()
			running.Add(1)
			timer = time.AfterFunc(w.Debounce, func() {
				defer running.Done()
				if ctx.Err() != nil {
					return
				}
				mu.Lock()
				defer mu.Unlock()
				w.OnEvent(ev)
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", zap.Error(err))
		}
	}
}
