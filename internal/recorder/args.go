package recorder

import (
	"strconv"

	"github.com/kabuspl/instantreplay/internal/config"
)

// Args builds the replay-mode argument vector for one settings snapshot.
// gpu-screen-recorder enters replay mode when -r (replay buffer seconds) is
// given; SIGUSR1 then saves the buffer to -o.
func Args(cfg config.Config) []string {
	return []string{
		"-w", cfg.Window,
		"-f", strconv.Itoa(cfg.Framerate),
		"-a", cfg.Audio,
		"-c", string(cfg.Container),
		"-q", string(cfg.Quality),
		"-r", strconv.Itoa(cfg.ReplayDurationSecs),
		"-o", cfg.ReplayPath,
		"-v", "no",
	}
}
