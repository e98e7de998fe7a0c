// Package cli implements the instantreplay commands.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kabuspl/instantreplay/internal/app"
	"github.com/kabuspl/instantreplay/internal/config"
	"github.com/kabuspl/instantreplay/internal/dialog"
	"github.com/kabuspl/instantreplay/internal/recorder"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:   "instantreplay",
	Short: "System tray for recording screen replays with gpu-screen-recorder",
	Long: `InstantReplay keeps gpu-screen-recorder running in replay mode and puts an
icon in the system tray. Save the rolling replay buffer and adjust recording
settings from the tray menu.`,
	SilenceUsage:     true,
	PersistentPreRun: initLog,
	RunE:             runTray,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.AddCommand(versionCmd)
}

func runTray(cmd *cobra.Command, args []string) error {
	if err := config.EnsureDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Two replay recorders would fight over the GPU encoder.
	running, info, err := config.IsInstanceRunning()
	if err != nil {
		return fmt.Errorf("failed to check for a running instance: %w", err)
	}
	if running {
		return fmt.Errorf("instantreplay is already running (PID %d)", info.PID)
	}
	if err := config.SaveInstanceInfo(config.NewInstanceInfo(os.Getpid())); err != nil {
		return fmt.Errorf("failed to write instance record: %w", err)
	}
	defer func() {
		if err := config.RemoveInstanceInfo(); err != nil {
			log.Warn().Err(err).Msg("failed to remove instance record")
		}
	}()

	path, err := config.File()
	if err != nil {
		return err
	}
	store, err := config.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config: %w", err)
	}

	rec, err := recorder.New()
	if err != nil {
		return err
	}
	dialogs, err := dialog.New()
	if err != nil {
		return err
	}

	log.Info().Str("config", path).Int("pid", os.Getpid()).Msg("starting instantreplay")

	return app.New(store, rec, dialogs).Run()
}
