package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// Watcher watches the config directory for external edits to config.yaml.
// The tray's own saves land here too; callers coalesce them away by checking
// Store.Reload's changed result.
type Watcher struct {
	fsWatcher  *fsnotify.Watcher
	changed    chan string
	done       chan struct{}
	debounce   map[string]*time.Timer
	debounceMu sync.Mutex
}

// NewWatcher creates a watcher for the config directory.
func NewWatcher() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		fsWatcher: fsWatcher,
		changed:   make(chan string, 1),
		done:      make(chan struct{}),
		debounce:  make(map[string]*time.Timer),
	}, nil
}

// Changed returns the channel carrying config file paths after a change
// settles. At most one notification is pending at a time; bursts coalesce.
func (w *Watcher) Changed() <-chan string {
	return w.changed
}

// Start begins watching the config directory.
func (w *Watcher) Start() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		return err
	}

	go w.processEvents()

	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	close(w.done)
	_ = w.fsWatcher.Close()
}

// processEvents processes file system events.
func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("config watcher error")
		}
	}
}

// handleEvent processes a single file system event.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	// Accept write, create, and rename events. Rename matters: atomic saves
	// (write tmp, rename over target) report a Rename on the target file,
	// and editors use the same pattern.
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}
	if filepath.Base(event.Name) != ConfigFileName {
		return
	}

	log.Debug().Str("op", event.Op.String()).Str("path", event.Name).Msg("config file event")

	w.debounceEvent(event.Name, func() {
		select {
		case w.changed <- event.Name:
		default:
			// A notification is already pending
		}
	})
}

// debounceEvent debounces events for the same path.
func (w *Watcher) debounceEvent(path string, fn func()) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	// Cancel existing timer
	if timer, ok := w.debounce[path]; ok {
		timer.Stop()
	}

	// Create new timer
	w.debounce[path] = time.AfterFunc(100*time.Millisecond, func() {
		w.debounceMu.Lock()
		delete(w.debounce, path)
		w.debounceMu.Unlock()
		fn()
	})
}
