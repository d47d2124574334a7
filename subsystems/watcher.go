// Package subsystems ships a handful of concrete demo Subsystem
// implementations that exercise real ecosystem dependencies. They are
// scaffolding for the demo binary, not a resource-kind library: the
// scheduler's own contract (see engine and engine/graph) does not know or
// care that these exist.
package subsystems

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/roboctl/cmdsched/engine"
	"github.com/roboctl/cmdsched/util/errwrap"
)

// Watcher is a Subsystem that watches a directory with fsnotify and marks
// itself dirty on any event. Periodic drains whatever events have queued up
// since the last tick instead of blocking on the fsnotify channel, matching
// a cooperative, externally-ticked subsystem rather than recwatch's
// goroutine-fed event channel.
type Watcher struct {
	Path string
	Logf func(format string, v ...interface{})

	suid    engine.SUID
	watcher *fsnotify.Watcher

	mu    sync.Mutex
	dirty bool
}

var _ engine.Subsystem = (*Watcher)(nil)

// NewWatcher starts watching path and returns the ready Subsystem.
func NewWatcher(path string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errwrap.Wrapf(err, "subsystems: could not start watcher")
	}
	if err := w.Add(path); err != nil {
		_ = w.Close()
		return nil, errwrap.Wrapf(err, "subsystems: could not watch %s", path)
	}
	return &Watcher{
		Path:    path,
		suid:    engine.NewSUID("subsystems.Watcher:" + path),
		watcher: w,
	}, nil
}

// SUID returns this watcher's stable identity, derived from its path so two
// watchers on different paths never collide.
func (w *Watcher) SUID() engine.SUID { return w.suid }

// Periodic drains every fsnotify event and error queued since the last
// call, without blocking if none have arrived, and marks the watcher dirty
// if at least one event fired.
func (w *Watcher) Periodic(time.Duration) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.logf("event: %v", event)
			w.setDirty()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logf("watch error: %v", err)
		default:
			return
		}
	}
}

func (w *Watcher) setDirty() {
	w.mu.Lock()
	w.dirty = true
	w.mu.Unlock()
}

// Dirty reports whether an event has fired since the last call to
// Dirty, and clears the flag.
func (w *Watcher) Dirty() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	dirty := w.dirty
	w.dirty = false
	return dirty
}

func (w *Watcher) logf(format string, v ...interface{}) {
	if w.Logf != nil {
		w.Logf(format, v...)
	}
}

// DefaultCommand returns nil: a bare filesystem watcher has nothing useful
// to run when unowned, it just keeps accumulating dirty state for whoever
// schedules a command requiring it.
func (w *Watcher) DefaultCommand() engine.Command { return nil }

// Close releases the underlying fsnotify watcher.
func (w *Watcher) Close() error { return w.watcher.Close() }
