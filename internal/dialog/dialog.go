// Package dialog shows native prompts through kdialog or zenity.
package dialog

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// tool identifies the dialog backend found on this system.
type tool int

const (
	toolKDialog tool = iota
	toolZenity
)

// Service runs native dialogs. Every prompt blocks until the user answers,
// so callers pick which goroutine they are safe on.
type Service struct {
	tool tool
	path string
}

// New locates a dialog backend. kdialog is preferred, zenity is the fallback.
func New() (*Service, error) {
	if path, err := exec.LookPath("kdialog"); err == nil {
		return &Service{tool: toolKDialog, path: path}, nil
	}
	if path, err := exec.LookPath("zenity"); err == nil {
		return &Service{tool: toolZenity, path: path}, nil
	}
	return nil, errors.New("no dialog tool found (install kdialog or zenity)")
}

// AskNumber prompts for a whole number, pre-filled with def. The second
// return value is false when the user cancelled the dialog.
func (s *Service) AskNumber(title, label string, def int) (int, bool, error) {
	out, ok, err := s.run(numberArgs(s.tool, title, label, def))
	if err != nil || !ok {
		return 0, ok, err
	}

	n, err := parseNumber(out)
	if err != nil {
		return 0, true, err
	}
	return n, true, nil
}

// Message shows an information box and waits for it to be dismissed.
func (s *Service) Message(title, text string) error {
	_, _, err := s.run(messageArgs(s.tool, title, text))
	return err
}

// PickDirectory opens a directory chooser rooted at start. The second return
// value is false when the user cancelled the chooser.
func (s *Service) PickDirectory(title, start string) (string, bool, error) {
	out, ok, err := s.run(directoryArgs(s.tool, title, start))
	if err != nil || !ok {
		return "", ok, err
	}

	dir := strings.TrimSpace(out)
	if dir == "" {
		return "", false, nil
	}
	return dir, true, nil
}

// run executes the dialog tool and captures its stdout. ok=false means the
// user dismissed the dialog: both kdialog and zenity exit 1 on cancel.
func (s *Service) run(args []string) (string, bool, error) {
	log.Debug().Str("tool", s.path).Strs("args", args).Msg("running dialog")

	cmd := exec.Command(s.path, args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to run %s: %w", s.path, err)
	}
	return stdout.String(), true, nil
}

// numberArgs returns the argv for a number prompt on the given backend.
func numberArgs(t tool, title, label string, def int) []string {
	switch t {
	case toolZenity:
		return []string{"--entry", "--title", title, "--text", label, "--entry-text", strconv.Itoa(def)}
	default:
		return []string{"--title", title, "--inputbox", label, strconv.Itoa(def)}
	}
}

// messageArgs returns the argv for a message box on the given backend.
func messageArgs(t tool, title, text string) []string {
	switch t {
	case toolZenity:
		return []string{"--info", "--title", title, "--text", text}
	default:
		return []string{"--title", title, "--msgbox", text}
	}
}

// directoryArgs returns the argv for a directory chooser on the given backend.
func directoryArgs(t tool, title, start string) []string {
	switch t {
	case toolZenity:
		return []string{"--file-selection", "--directory", "--title", title, "--filename", start + "/"}
	default:
		return []string{"--title", title, "--getexistingdirectory", start}
	}
}

// parseNumber parses a dialog entry as an unsigned whole number. Signs,
// fractions and stray text are rejected rather than truncated.
func parseNumber(out string) (int, error) {
	trimmed := strings.TrimSpace(out)
	n, err := strconv.ParseUint(trimmed, 10, 31)
	if err != nil {
		return 0, fmt.Errorf("not a whole number: %q", trimmed)
	}
	return int(n), nil
}
