// Package notify raises desktop notifications. Failures are logged and
// dropped: a missing notification daemon must never break the recorder.
package notify

import (
	"github.com/gen2brain/beeep"
	"github.com/rs/zerolog/log"
)

func init() {
	beeep.AppName = "InstantReplay"
}

// Info shows a regular notification.
func Info(title, message string) {
	if err := beeep.Notify(title, message, ""); err != nil {
		log.Warn().Err(err).Str("title", title).Msg("failed to show notification")
	}
}

// Error shows an urgent notification.
func Error(title, message string) {
	if err := beeep.Alert(title, message, ""); err != nil {
		log.Warn().Err(err).Str("title", title).Msg("failed to show notification")
	}
}
