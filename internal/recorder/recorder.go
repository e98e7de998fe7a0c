// Package recorder supervises the gpu-screen-recorder child process.
package recorder

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kabuspl/instantreplay/internal/config"
)

const binaryName = "gpu-screen-recorder"

// stopGrace is how long a stopped recorder gets to exit on SIGTERM before it
// is killed. The recorder flushes its encoder on SIGTERM, so the grace
// period matters for not corrupting an in-flight save.
const stopGrace = 5 * time.Second

// process is one recorder run. stopRequested distinguishes exits we asked
// for from crashes, per run, so a restart can never misattribute an old
// process's exit.
type process struct {
	cmd           *exec.Cmd
	done          chan struct{}
	stopRequested atomic.Bool
}

func (p *process) running() bool {
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}

// Supervisor owns the recorder child in replay mode: it starts it from a
// settings snapshot, restarts it when settings change, saves the replay
// buffer with SIGUSR1 and reports unexpected exits.
type Supervisor struct {
	mu      sync.Mutex
	path    string
	current *process
	onExit  func(error)
}

// New locates the recorder binary.
func New() (*Supervisor, error) {
	path, err := exec.LookPath(binaryName)
	if err != nil {
		return nil, fmt.Errorf("%s not found in PATH: %w", binaryName, err)
	}
	return &Supervisor{path: path}, nil
}

// SetOnExit registers a callback invoked when the recorder exits without
// Stop having been called. The callback runs on the supervisor's wait
// goroutine.
func (s *Supervisor) SetOnExit(fn func(error)) {
	s.mu.Lock()
	s.onExit = fn
	s.mu.Unlock()
}

// Start launches the recorder with the given settings. The replay output
// directory is created first; the recorder refuses to start into a missing
// one.
func (s *Supervisor) Start(cfg config.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil && s.current.running() {
		return errors.New("recorder is already running")
	}

	if err := os.MkdirAll(cfg.ReplayPath, 0755); err != nil {
		return fmt.Errorf("failed to create replay directory %s: %w", cfg.ReplayPath, err)
	}

	args := Args(cfg)
	log.Info().Str("binary", s.path).Strs("args", args).Msg("starting recorder")

	cmd := exec.Command(s.path, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", binaryName, err)
	}

	p := &process{cmd: cmd, done: make(chan struct{})}
	s.current = p
	go s.wait(p)
	return nil
}

// wait reaps the process and reports crashes.
func (s *Supervisor) wait(p *process) {
	err := p.cmd.Wait()
	close(p.done)

	if p.stopRequested.Load() {
		log.Debug().Msg("recorder stopped")
		return
	}

	log.Error().Err(err).Msg("recorder exited unexpectedly")

	s.mu.Lock()
	fn := s.onExit
	s.mu.Unlock()
	if fn != nil {
		fn(err)
	}
}

// Stop terminates the recorder: SIGTERM, a grace period, then SIGKILL.
// No-op when nothing is running.
func (s *Supervisor) Stop() {
	s.mu.Lock()
	p := s.current
	s.current = nil
	s.mu.Unlock()

	if p == nil || !p.running() {
		return
	}

	p.stopRequested.Store(true)
	_ = p.cmd.Process.Signal(syscall.SIGTERM)

	select {
	case <-p.done:
		return
	case <-time.After(stopGrace):
	}

	log.Warn().Msg("recorder did not exit on SIGTERM, killing")
	_ = p.cmd.Process.Kill()
	<-p.done
}

// Restart applies a new settings snapshot by stopping the current recorder
// and starting a fresh one.
func (s *Supervisor) Restart(cfg config.Config) error {
	s.Stop()
	return s.Start(cfg)
}

// Running reports whether a recorder process is alive.
func (s *Supervisor) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil && s.current.running()
}

// SaveReplay asks the recorder to flush the replay buffer to disk by sending
// SIGUSR1.
func (s *Supervisor) SaveReplay() error {
	s.mu.Lock()
	p := s.current
	s.mu.Unlock()

	if p == nil || !p.running() {
		return errors.New("recorder is not running")
	}
	if err := p.cmd.Process.Signal(syscall.SIGUSR1); err != nil {
		return fmt.Errorf("failed to signal recorder: %w", err)
	}
	log.Info().Msg("replay save requested")
	return nil
}

// Version runs the recorder with --version and returns the trimmed output.
func (s *Supervisor) Version() (string, error) {
	out, err := exec.Command(s.path, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("failed to run %s --version: %w", binaryName, err)
	}
	return strings.TrimSpace(string(out)), nil
}
