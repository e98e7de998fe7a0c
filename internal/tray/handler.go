package tray

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/kabuspl/instantreplay/internal/buildinfo"
	"github.com/kabuspl/instantreplay/internal/config"
	"github.com/kabuspl/instantreplay/internal/event"
)

const (
	settingsTitle = "InstantReplay Settings"
	aboutTitle    = "About InstantReplay"
)

// actionKind tags the closed set of things a menu click can mean.
type actionKind int

const (
	actionSelect actionKind = iota
	actionDispatch
	actionAbout
)

// action is one decoded menu click. Menu callbacks only build these and put
// them on the queue; the worker goroutine interprets them, so every store
// mutation runs on a single goroutine and the lock discipline lives in one
// place instead of in per-item closures.
type action struct {
	kind  actionKind
	field field
	index int
	event event.Action
}

// SettingsStore is the access the menu needs to the shared recording
// settings: consistent snapshots for rendering and serialized updates that
// persist before the write lock is released.
type SettingsStore interface {
	Snapshot() config.Config
	Update(mutate func(*config.Config)) error
}

// DialogService is the subset of native prompts that are safe to run from
// the menu worker. The directory picker is deliberately absent: it must run
// on the main loop, so the Path entry dispatches an event instead.
type DialogService interface {
	AskNumber(title, label string, def int) (int, bool, error)
	Message(title, text string) error
}

// handler interprets queued actions against the store, the dialogs and the
// outbound event channel.
type handler struct {
	store       SettingsStore
	dialogs     DialogService
	events      chan<- event.Action
	version     func() (string, error)
	notifyError func(title, message string)
}

func (h *handler) handle(a action) {
	switch a.kind {
	case actionSelect:
		h.selectOption(a.field, a.index)
	case actionDispatch:
		h.dispatch(a.event)
	case actionAbout:
		h.showAbout()
	}
}

// selectOption reconciles a click on a settings group entry. In-bounds
// indexes resolve against the same choice table the group was rendered from;
// the index one past the end is the custom slot on the numeric groups.
func (h *handler) selectOption(f field, index int) {
	switch f {
	case fieldFramerate:
		h.setNumber(f, framerateChoices, index, func(c *config.Config, v int) { c.Framerate = v })
	case fieldDuration:
		h.setNumber(f, durationChoices, index, func(c *config.Config, v int) { c.ReplayDurationSecs = v })
	case fieldQuality:
		if index < len(qualityChoices) {
			h.setField(f, func(c *config.Config) { c.Quality = qualityChoices[index].Value })
		}
	case fieldContainer:
		if index < len(containerChoices) {
			h.setField(f, func(c *config.Config) { c.Container = containerChoices[index].Value })
		}
	}
}

// setNumber assigns a predefined value, or prompts for a custom one when the
// custom slot was clicked. Cancelling the prompt leaves the field untouched;
// a prompt failure is logged and surfaced as a notification, never a crash.
func (h *handler) setNumber(f field, choices []Choice[int], index int, assign func(*config.Config, int)) {
	if index < len(choices) {
		h.setField(f, func(c *config.Config) { assign(c, choices[index].Value) })
		return
	}

	n, ok, err := h.dialogs.AskNumber(settingsTitle, f.title(), 0)
	if err != nil {
		log.Error().Err(err).Str("field", f.String()).Msg("custom value prompt failed")
		h.notifyError("Settings", fmt.Sprintf("Could not read a custom %s value.", strings.ToLower(f.title())))
		return
	}
	if !ok {
		log.Debug().Str("field", f.String()).Msg("custom value prompt cancelled")
		return
	}
	h.setField(f, func(c *config.Config) { assign(c, n) })
}

func (h *handler) setField(f field, mutate func(*config.Config)) {
	if err := h.store.Update(mutate); err != nil {
		log.Error().Err(err).Str("field", f.String()).Msg("failed to persist settings")
		h.notifyError("Settings", "The settings change could not be saved to disk.")
		return
	}
	log.Info().Str("field", f.String()).Msg("settings updated")
}

// dispatch forwards one event to the main loop. The channel is buffered and
// the main loop drains it for the life of the tray, so a full buffer means
// the receiver is gone or wedged; that is reported instead of blocking the
// menu worker forever.
func (h *handler) dispatch(a event.Action) {
	select {
	case h.events <- a:
		log.Debug().Stringer("event", a).Msg("event dispatched")
	default:
		log.Error().Stringer("event", a).Msg("event channel full, dropping event")
		h.notifyError("InstantReplay", "The application is not responding to menu actions.")
	}
}

// showAbout queries the recorder binary's version and shows the about box.
// Both steps run external processes; failures are reported, not propagated.
func (h *handler) showAbout() {
	recorderVersion := "unavailable"
	if v, err := h.version(); err != nil {
		log.Error().Err(err).Msg("failed to query recorder version")
	} else {
		recorderVersion = v
	}

	text := fmt.Sprintf(
		"InstantReplay version: %s\ngpu-screen-recorder version: %s\nReport issues at: https://github.com/kabuspl/instantreplay/issues\nLicense: MIT\n© 2025 kabuspl",
		buildinfo.Version, recorderVersion,
	)
	if err := h.dialogs.Message(aboutTitle, text); err != nil {
		log.Error().Err(err).Msg("failed to show about box")
		h.notifyError("InstantReplay", "Could not open the about window.")
	}
}
