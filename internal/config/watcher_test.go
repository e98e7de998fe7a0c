package config

import (
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func newTestWatcher() *Watcher {
	return &Watcher{
		changed:  make(chan string, 1),
		done:     make(chan struct{}),
		debounce: map[string]*time.Timer{},
	}
}

// A burst of writes to config.yaml must settle into a single notification.
func TestWatcherDebouncesBursts(t *testing.T) {
	w := newTestWatcher()

	for i := 0; i < 5; i++ {
		w.handleEvent(fsnotify.Event{Name: "/cfg/" + ConfigFileName, Op: fsnotify.Write})
	}

	select {
	case <-w.changed:
	case <-time.After(time.Second):
		t.Fatal("no notification after a write burst")
	}

	select {
	case <-w.changed:
		t.Error("burst produced more than one notification")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	w := newTestWatcher()

	w.handleEvent(fsnotify.Event{Name: "/cfg/" + InstanceFileName, Op: fsnotify.Write})
	w.handleEvent(fsnotify.Event{Name: "/cfg/config.yaml.tmp-1", Op: fsnotify.Create})
	w.handleEvent(fsnotify.Event{Name: "/cfg/" + ConfigFileName, Op: fsnotify.Chmod})

	select {
	case path := <-w.changed:
		t.Errorf("unexpected notification for %q", path)
	case <-time.After(300 * time.Millisecond):
	}
}

// Rename is how atomic saves and most editors land their writes.
func TestWatcherAcceptsRename(t *testing.T) {
	w := newTestWatcher()

	w.handleEvent(fsnotify.Event{Name: "/cfg/" + ConfigFileName, Op: fsnotify.Rename})

	select {
	case <-w.changed:
	case <-time.After(time.Second):
		t.Fatal("no notification for a rename event")
	}
}

// Concurrent events on the same path must not race the debounce map.
func TestWatcherDebounceConcurrent(t *testing.T) {
	w := newTestWatcher()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.handleEvent(fsnotify.Event{Name: "/cfg/" + ConfigFileName, Op: fsnotify.Write})
		}()
	}
	wg.Wait()

	select {
	case <-w.changed:
	case <-time.After(time.Second):
		t.Fatal("no notification after concurrent events")
	}
}
