// Package event defines the actions the tray menu sends to the main loop.
package event

// Action is a request from the tray menu that must run outside the menu
// callback context, either because it drives the recorder process or because
// it opens a platform-modal interaction like the directory picker.
type Action int

const (
	// SaveReplay flushes the rolling replay buffer to disk.
	SaveReplay Action = iota
	// ChangeReplayPath opens the directory picker and stores the result.
	ChangeReplayPath
	// Quit shuts the application down.
	Quit
)

// String returns the action name for logs.
func (a Action) String() string {
	switch a {
	case SaveReplay:
		return "save_replay"
	case ChangeReplayPath:
		return "change_replay_path"
	case Quit:
		return "quit"
	}
	return "unknown"
}
