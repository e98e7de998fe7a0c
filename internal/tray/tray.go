// Package tray implements the system tray icon and its settings menu.
package tray

import (
	_ "embed"

	"github.com/getlantern/systray"
	"github.com/rs/zerolog/log"

	"github.com/kabuspl/instantreplay/internal/config"
	"github.com/kabuspl/instantreplay/internal/event"
)

//go:embed icon.png
var iconData []byte

// actionQueueSize bounds the click queue. Clicks arrive one at a time from a
// human; the buffer only exists so a slow dialog doesn't stall the
// forwarding goroutines.
const actionQueueSize = 16

// Options carries the collaborators the tray needs. Everything is injected;
// the tray never reaches for ambient state.
type Options struct {
	Store           SettingsStore
	Events          chan<- event.Action
	Dialogs         DialogService
	RecorderVersion func() (string, error)
	NotifyError     func(title, message string)
}

// group ties the checkbox items of one settings group to the render function
// that recomputes its selection mark from a config snapshot.
type group struct {
	field  field
	items  []*systray.MenuItem
	render func(config.Config) Group
}

// Tray owns the systray menu. The menu is built once when the tray becomes
// ready (the systray library cannot remove items); selection marks are
// refreshed from fresh config snapshots, so what the user sees is always a
// function of the latest snapshot.
type Tray struct {
	store   SettingsStore
	handler *handler
	actions chan action

	groups    []*group
	saveItem  *systray.MenuItem
	pathItem  *systray.MenuItem
	aboutItem *systray.MenuItem
	quitItem  *systray.MenuItem

	onStart func()
}

// New creates the tray. Run must be called afterwards on the main goroutine.
func New(opts Options) *Tray {
	return &Tray{
		store: opts.Store,
		handler: &handler{
			store:       opts.Store,
			dialogs:     opts.Dialogs,
			events:      opts.Events,
			version:     opts.RecorderVersion,
			notifyError: opts.NotifyError,
		},
		actions: make(chan action, actionQueueSize),
	}
}

// Run starts the system tray and blocks the calling goroutine; systray must
// own the main goroutine. onStart runs once the tray is ready, onExit when
// it shuts down.
func (t *Tray) Run(onStart, onExit func()) {
	t.onStart = onStart
	systray.Run(t.onReady, onExit)
}

// Quit signals the tray to exit.
func (t *Tray) Quit() {
	systray.Quit()
}

func (t *Tray) onReady() {
	systray.SetIcon(iconData)
	systray.SetTitle("InstantReplay")
	systray.SetTooltip("InstantReplay — screen replay recorder")

	cfg := t.store.Snapshot()

	t.saveItem = systray.AddMenuItem("Save replay", "Save the rolling replay buffer to disk")
	systray.AddSeparator()

	settings := systray.AddMenuItem("Settings", "Recording settings")
	t.groups = []*group{
		newGroup(settings, fieldFramerate, cfg, func(c config.Config) Group {
			return BuildGroup(framerateChoices, c.Framerate, true)
		}),
		newGroup(settings, fieldDuration, cfg, func(c config.Config) Group {
			return BuildGroup(durationChoices, c.ReplayDurationSecs, true)
		}),
		newGroup(settings, fieldQuality, cfg, func(c config.Config) Group {
			return BuildGroup(qualityChoices, c.Quality, false)
		}),
		newGroup(settings, fieldContainer, cfg, func(c config.Config) Group {
			return BuildGroup(containerChoices, c.Container, false)
		}),
	}
	t.pathItem = settings.AddSubMenuItem("Path", "Choose where replays are saved")

	t.aboutItem = systray.AddMenuItem("About", "Version and license information")
	systray.AddSeparator()
	t.quitItem = systray.AddMenuItem("Quit", "Quit InstantReplay")

	for _, g := range t.groups {
		for i, item := range g.items {
			t.forward(item.ClickedCh, action{kind: actionSelect, field: g.field, index: i})
		}
	}
	t.forward(t.saveItem.ClickedCh, action{kind: actionDispatch, event: event.SaveReplay})
	t.forward(t.pathItem.ClickedCh, action{kind: actionDispatch, event: event.ChangeReplayPath})
	t.forward(t.aboutItem.ClickedCh, action{kind: actionAbout})
	t.forward(t.quitItem.ClickedCh, action{kind: actionDispatch, event: event.Quit})

	go t.runActions()

	log.Debug().Msg("tray menu ready")

	if t.onStart != nil {
		t.onStart()
	}
}

// newGroup creates one settings submenu with a checkbox item per choice,
// marked per the initial snapshot.
func newGroup(parent *systray.MenuItem, f field, cfg config.Config, render func(config.Config) Group) *group {
	sub := parent.AddSubMenuItem(f.title(), "")
	rendered := render(cfg)

	g := &group{field: f, render: render}
	for i, label := range rendered.Labels {
		g.items = append(g.items, sub.AddSubMenuItemCheckbox(label, "", rendered.Marked(i)))
	}
	return g
}

// Refresh re-marks every settings group from cfg. Idempotent for an
// unchanged snapshot; safe to call from any goroutine.
func (t *Tray) Refresh(cfg config.Config) {
	for _, g := range t.groups {
		rendered := g.render(cfg)
		for i, item := range g.items {
			if rendered.Marked(i) {
				item.Check()
			} else {
				item.Uncheck()
			}
		}
	}
}

// forward turns clicks on one menu item into queued actions. The queue send
// blocks when the worker is busy, which keeps clicks ordered.
func (t *Tray) forward(clicks <-chan struct{}, a action) {
	go func() {
		for range clicks {
			t.actions <- a
		}
	}()
}

func (t *Tray) runActions() {
	for a := range t.actions {
		t.handler.handle(a)
	}
}
