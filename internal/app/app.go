// Package app wires the tray menu, the recorder supervisor, the config
// store and the dialogs together and runs the main event loop.
package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/kabuspl/instantreplay/internal/config"
	"github.com/kabuspl/instantreplay/internal/event"
	"github.com/kabuspl/instantreplay/internal/notify"
	"github.com/kabuspl/instantreplay/internal/tray"
)

const appTitle = "InstantReplay"

// Recorder is the supervisor surface the app loop drives.
type Recorder interface {
	Start(cfg config.Config) error
	Restart(cfg config.Config) error
	Stop()
	SaveReplay() error
	Version() (string, error)
	SetOnExit(fn func(error))
}

// Dialogs is the prompt surface shared by the app loop and the tray menu.
// The directory picker lives here and only here: portal file choosers are
// not delivered when requested from inside the tray library's callback
// context, so the Path menu entry dispatches an event and the picker runs on
// the app loop.
type Dialogs interface {
	AskNumber(title, label string, def int) (int, bool, error)
	Message(title, text string) error
	PickDirectory(title, start string) (string, bool, error)
}

// App owns the main loop: it consumes tray events, applies settings changes
// to the recorder and reacts to external config edits.
type App struct {
	store    *config.Store
	recorder Recorder
	dialogs  Dialogs
	tray     *tray.Tray
	watcher  *config.Watcher

	events   chan event.Action
	settings chan config.Config
	done     chan struct{}

	quit        func()
	notifyInfo  func(title, message string)
	notifyError func(title, message string)
}

// New assembles the application around an opened store.
func New(store *config.Store, rec Recorder, dialogs Dialogs) *App {
	a := &App{
		store:       store,
		recorder:    rec,
		dialogs:     dialogs,
		events:      make(chan event.Action, 16),
		settings:    make(chan config.Config, 1),
		done:        make(chan struct{}),
		notifyInfo:  notify.Info,
		notifyError: notify.Error,
	}
	a.quit = func() {
		if a.tray != nil {
			a.tray.Quit()
		}
	}
	return a
}

// Run starts the tray on the calling goroutine and blocks until it exits.
// Must run on the main goroutine.
func (a *App) Run() error {
	watcher, err := config.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}
	a.watcher = watcher

	a.tray = tray.New(tray.Options{
		Store:           a.store,
		Events:          a.events,
		Dialogs:         a.dialogs,
		RecorderVersion: a.recorder.Version,
		NotifyError:     a.notifyError,
	})

	// Every settings change, from the menu or from an external edit,
	// re-marks the menu and queues a recorder restart.
	a.store.SetOnChange(func(cfg config.Config) {
		a.tray.Refresh(cfg)
		a.queueRestart(cfg)
	})

	a.recorder.SetOnExit(func(err error) {
		a.notifyError(appTitle, "The recorder stopped unexpectedly. Replays are not being recorded.")
	})

	onStart := func() {
		if err := a.recorder.Start(a.store.Snapshot()); err != nil {
			log.Error().Err(err).Msg("failed to start recorder")
			a.notifyError(appTitle, "Could not start the recorder.")
		}
		if err := a.watcher.Start(); err != nil {
			log.Warn().Err(err).Msg("config watcher disabled")
		}
		go a.loop()
		go a.handleSignals()
	}

	onExit := func() {
		close(a.done)
		a.watcher.Stop()
		a.recorder.Stop()
		log.Info().Msg("shut down")
	}

	a.tray.Run(onStart, onExit)
	return nil
}

// loop is the single consumer of the event channel and the only goroutine
// that restarts the recorder.
func (a *App) loop() {
	for {
		select {
		case <-a.done:
			return
		case act := <-a.events:
			a.handleEvent(act)
		case cfg := <-a.settings:
			log.Info().Msg("settings changed, restarting recorder")
			if err := a.recorder.Restart(cfg); err != nil {
				log.Error().Err(err).Msg("failed to restart recorder")
				a.notifyError(appTitle, "Could not restart the recorder with the new settings.")
			}
		case <-a.watcher.Changed():
			changed, err := a.store.Reload()
			if err != nil {
				log.Error().Err(err).Msg("failed to reload config")
				continue
			}
			if changed {
				log.Info().Msg("config reloaded after external edit")
			}
		}
	}
}

func (a *App) handleEvent(act event.Action) {
	log.Debug().Stringer("event", act).Msg("handling event")

	switch act {
	case event.SaveReplay:
		if err := a.recorder.SaveReplay(); err != nil {
			log.Error().Err(err).Msg("failed to save replay")
			a.notifyError(appTitle, "Could not save the replay: the recorder is not running.")
			return
		}
		a.notifyInfo(appTitle, "Replay saved to "+a.store.Snapshot().ReplayPath)
	case event.ChangeReplayPath:
		a.changeReplayPath()
	case event.Quit:
		a.quit()
	}
}

// changeReplayPath runs the directory picker and stores the result. Cancel
// changes nothing.
func (a *App) changeReplayPath() {
	cfg := a.store.Snapshot()

	dir, ok, err := a.dialogs.PickDirectory("Choose replay folder", cfg.ReplayPath)
	if err != nil {
		log.Error().Err(err).Msg("directory picker failed")
		a.notifyError(appTitle, "Could not open the folder picker.")
		return
	}
	if !ok {
		return
	}

	if err := a.store.Update(func(c *config.Config) { c.ReplayPath = dir }); err != nil {
		log.Error().Err(err).Msg("failed to persist replay path")
		a.notifyError(appTitle, "The new replay folder could not be saved to disk.")
	}
}

// queueRestart coalesces restart requests; only the latest snapshot matters.
func (a *App) queueRestart(cfg config.Config) {
	for {
		select {
		case a.settings <- cfg:
			return
		default:
			select {
			case <-a.settings:
			default:
			}
		}
	}
}

// handleSignals quits the tray on SIGINT/SIGTERM so Run unwinds through the
// normal exit path.
func (a *App) handleSignals() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("received signal, shutting down")
		a.quit()
	case <-a.done:
	}
}
