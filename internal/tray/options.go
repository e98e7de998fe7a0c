package tray

import "github.com/kabuspl/instantreplay/internal/config"

// Choice pairs a menu label with the typed value it stands for. The per-field
// tables below are the single source for both rendering and index→value
// resolution, so a clicked index always resolves against the same sequence it
// was rendered from.
type Choice[T comparable] struct {
	Label string
	Value T
}

// customLabel is the sentinel entry appended to groups that accept values
// outside the predefined list.
const customLabel = "Custom..."

// Group is the rendered form of one single-selection settings group.
type Group struct {
	Labels      []string
	Selected    int
	AllowCustom bool
}

// BuildGroup renders choices into a Group for the given current value.
// Selected is the index of the first choice whose value equals current; when
// nothing matches it is len(choices), which is the custom slot when
// allowCustom is set (a non-listed value is active) and one past the end
// otherwise (nothing marked). Choice values are distinct by construction, so
// first-match is the only match.
func BuildGroup[T comparable](choices []Choice[T], current T, allowCustom bool) Group {
	labels := make([]string, 0, len(choices)+1)
	for _, c := range choices {
		labels = append(labels, c.Label)
	}
	if allowCustom {
		labels = append(labels, customLabel)
	}

	selected := len(choices)
	for i, c := range choices {
		if c.Value == current {
			selected = i
			break
		}
	}

	return Group{Labels: labels, Selected: selected, AllowCustom: allowCustom}
}

// Marked reports whether the entry at index i carries the selection mark.
func (g Group) Marked(i int) bool {
	return i == g.Selected && g.Selected < len(g.Labels)
}

// field identifies which configuration field a settings group drives.
type field int

const (
	fieldFramerate field = iota
	fieldDuration
	fieldQuality
	fieldContainer
)

// String returns the field name for logs.
func (f field) String() string {
	switch f {
	case fieldFramerate:
		return "framerate"
	case fieldDuration:
		return "replay_duration_secs"
	case fieldQuality:
		return "quality"
	case fieldContainer:
		return "container"
	}
	return "unknown"
}

// title returns the menu label for the field's group, also used as the
// custom-value prompt label.
func (f field) title() string {
	switch f {
	case fieldFramerate:
		return "Framerate"
	case fieldDuration:
		return "Duration"
	case fieldQuality:
		return "Quality"
	case fieldContainer:
		return "Container"
	}
	return "unknown"
}

var framerateChoices = []Choice[int]{
	{Label: "30", Value: 30},
	{Label: "60", Value: 60},
}

var durationChoices = []Choice[int]{
	{Label: "30s", Value: 30},
	{Label: "1min", Value: 60},
	{Label: "2min", Value: 120},
	{Label: "3min", Value: 180},
	{Label: "5min", Value: 300},
}

var qualityChoices = []Choice[config.Quality]{
	{Label: config.QualityMedium.Label(), Value: config.QualityMedium},
	{Label: config.QualityHigh.Label(), Value: config.QualityHigh},
	{Label: config.QualityVeryHigh.Label(), Value: config.QualityVeryHigh},
	{Label: config.QualityUltra.Label(), Value: config.QualityUltra},
}

var containerChoices = []Choice[config.Container]{
	{Label: config.ContainerMKV.Label(), Value: config.ContainerMKV},
	{Label: config.ContainerMP4.Label(), Value: config.ContainerMP4},
	{Label: config.ContainerWEBM.Label(), Value: config.ContainerWEBM},
	{Label: config.ContainerFLV.Label(), Value: config.ContainerFLV},
}
