package app

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/kabuspl/instantreplay/internal/config"
	"github.com/kabuspl/instantreplay/internal/event"
)

type fakeRecorder struct {
	saves    int
	restarts int
	saveErr  error
}

func (r *fakeRecorder) Start(cfg config.Config) error   { return nil }
func (r *fakeRecorder) Restart(cfg config.Config) error { r.restarts++; return nil }
func (r *fakeRecorder) Stop()                           {}
func (r *fakeRecorder) SaveReplay() error               { r.saves++; return r.saveErr }
func (r *fakeRecorder) Version() (string, error)        { return "5.0.1", nil }
func (r *fakeRecorder) SetOnExit(fn func(error))        {}

type fakePicker struct {
	dir    string
	ok     bool
	err    error
	picked int
}

func (p *fakePicker) AskNumber(title, label string, def int) (int, bool, error) {
	return 0, false, nil
}

func (p *fakePicker) Message(title, text string) error { return nil }

func (p *fakePicker) PickDirectory(title, start string) (string, bool, error) {
	p.picked++
	return p.dir, p.ok, p.err
}

func newTestApp(t *testing.T, rec *fakeRecorder, picker *fakePicker) (*App, *config.Store) {
	t.Helper()

	store, err := config.Open(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}

	a := New(store, rec, picker)
	a.notifyInfo = func(title, message string) {}
	a.notifyError = func(title, message string) {}
	return a, store
}

func TestSaveReplayEvent(t *testing.T) {
	rec := &fakeRecorder{}
	a, _ := newTestApp(t, rec, &fakePicker{})

	a.handleEvent(event.SaveReplay)

	if rec.saves != 1 {
		t.Errorf("SaveReplay called %d times, want 1", rec.saves)
	}
}

func TestSaveReplayFailureNotifies(t *testing.T) {
	rec := &fakeRecorder{saveErr: errors.New("not running")}
	a, _ := newTestApp(t, rec, &fakePicker{})

	notified := 0
	a.notifyError = func(title, message string) { notified++ }

	a.handleEvent(event.SaveReplay)

	if notified != 1 {
		t.Errorf("error notified %d times, want 1", notified)
	}
}

func TestChangeReplayPathUpdatesStore(t *testing.T) {
	picker := &fakePicker{dir: "/data/replays", ok: true}
	a, store := newTestApp(t, &fakeRecorder{}, picker)

	a.handleEvent(event.ChangeReplayPath)

	if picker.picked != 1 {
		t.Errorf("picker shown %d times, want 1", picker.picked)
	}
	if got := store.Snapshot().ReplayPath; got != "/data/replays" {
		t.Errorf("ReplayPath = %q, want %q", got, "/data/replays")
	}
}

func TestChangeReplayPathCancelLeavesStore(t *testing.T) {
	picker := &fakePicker{ok: false}
	a, store := newTestApp(t, &fakeRecorder{}, picker)

	before := store.Snapshot()
	a.handleEvent(event.ChangeReplayPath)

	if got := store.Snapshot(); got != before {
		t.Error("cancelling the picker must not change the settings")
	}
}

func TestQuitEventCallsQuit(t *testing.T) {
	a, _ := newTestApp(t, &fakeRecorder{}, &fakePicker{})

	quits := 0
	a.quit = func() { quits++ }

	a.handleEvent(event.Quit)

	if quits != 1 {
		t.Errorf("quit called %d times, want 1", quits)
	}
}

// A burst of settings changes must leave exactly the latest snapshot queued.
func TestQueueRestartCoalesces(t *testing.T) {
	a, _ := newTestApp(t, &fakeRecorder{}, &fakePicker{})

	first := *config.NewConfig()
	first.Framerate = 30
	second := *config.NewConfig()
	second.Framerate = 144

	a.queueRestart(first)
	a.queueRestart(second)

	select {
	case cfg := <-a.settings:
		if cfg.Framerate != 144 {
			t.Errorf("queued Framerate = %d, want 144 (latest wins)", cfg.Framerate)
		}
	default:
		t.Fatal("no restart queued")
	}

	select {
	case <-a.settings:
		t.Error("more than one restart queued")
	default:
	}
}
