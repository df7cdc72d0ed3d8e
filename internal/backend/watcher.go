// Package backend notices when directories shown on screen change on disk.
// The watcher only reports; refreshing views happens on the UI loop.
package backend

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event names a directory whose listing may be stale, or carries an error
// from the underlying notifier.
type Event struct {
	Path string
	Err  error
}

// Watcher wraps fsnotify with a replaceable set of watched directories.
type Watcher struct {
	fs       *fsnotify.Watcher
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	watched map[string]struct{}

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts a watcher that coalesces changes over interval.
func NewWatcher(interval time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		fs:       fsw,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		watched:  make(map[string]struct{}),
		events:   make(chan Event, 16),
	}
	w.wg.Add(1)
	go w.run()
	go func() {
		w.wg.Wait()
		close(w.events)
	}()
	return w, nil
}

// Events returns the channel of change notifications. It is closed after Stop.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Watch replaces the watched set with dirs. Directories that cannot be added
// are skipped and the first such error is returned.
func (w *Watcher) Watch(dirs ...string) error {
	want := make(map[string]struct{}, len(dirs))
	for _, d := range dirs {
		want[filepath.Clean(d)] = struct{}{}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for d := range w.watched {
		if _, keep := want[d]; keep {
			continue
		}
		_ = w.fs.Remove(d)
		delete(w.watched, d)
	}
	var firstErr error
	for d := range want {
		if _, ok := w.watched[d]; ok {
			continue
		}
		if err := w.fs.Add(d); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("watch %s: %w", d, err)
			}
			continue
		}
		w.watched[d] = struct{}{}
	}
	return firstErr
}

// Watched returns the directories currently watched.
func (w *Watcher) Watched() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	dirs := make([]string, 0, len(w.watched))
	for d := range w.watched {
		dirs = append(dirs, d)
	}
	return dirs
}

// Stop shuts the watcher down; Wait blocks until the event loop has exited.
func (w *Watcher) Stop() {
	w.cancel()
	_ = w.fs.Close()
}

// Wait blocks until the events channel is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) isWatched(dir string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.watched[dir]
	return ok
}

func (w *Watcher) run() {
	defer w.wg.Done()
	pending := newBatch(w.interval)
	defer pending.stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev.Op == fsnotify.Chmod {
				continue
			}
			if dir := filepath.Dir(ev.Name); w.isWatched(dir) {
				pending.add(dir)
			}
			// the watched directory itself was removed or renamed
			if w.isWatched(filepath.Clean(ev.Name)) {
				pending.add(filepath.Clean(ev.Name))
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			if !w.emit(Event{Err: err}) {
				return
			}
		case <-pending.ready():
			for _, dir := range pending.drain() {
				if !w.emit(Event{Path: dir}) {
					return
				}
			}
		}
	}
}

func (w *Watcher) emit(evt Event) bool {
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- evt:
		return true
	}
}
