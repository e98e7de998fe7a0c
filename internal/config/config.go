package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Quality is the recording quality level passed to gpu-screen-recorder (-q).
type Quality string

// Supported quality levels, in menu order.
const (
	QualityMedium   Quality = "medium"
	QualityHigh     Quality = "high"
	QualityVeryHigh Quality = "very_high"
	QualityUltra    Quality = "ultra"
)

// Valid reports whether q is a known quality level.
func (q Quality) Valid() bool {
	switch q {
	case QualityMedium, QualityHigh, QualityVeryHigh, QualityUltra:
		return true
	}
	return false
}

// Label returns the human-readable menu label for q.
func (q Quality) Label() string {
	switch q {
	case QualityMedium:
		return "Medium"
	case QualityHigh:
		return "High"
	case QualityVeryHigh:
		return "Very high"
	case QualityUltra:
		return "Ultra"
	}
	return string(q)
}

// UnmarshalYAML validates the quality level on load.
func (q *Quality) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	v := Quality(s)
	if !v.Valid() {
		return fmt.Errorf("unknown quality %q (expected medium, high, very_high or ultra)", s)
	}
	*q = v
	return nil
}

// Container is the output container format passed to gpu-screen-recorder (-c).
type Container string

// Supported container formats, in menu order.
const (
	ContainerMKV  Container = "mkv"
	ContainerMP4  Container = "mp4"
	ContainerWEBM Container = "webm"
	ContainerFLV  Container = "flv"
)

// Valid reports whether c is a known container format.
func (c Container) Valid() bool {
	switch c {
	case ContainerMKV, ContainerMP4, ContainerWEBM, ContainerFLV:
		return true
	}
	return false
}

// Label returns the human-readable menu label for c.
func (c Container) Label() string {
	switch c {
	case ContainerMKV:
		return "MKV"
	case ContainerMP4:
		return "MP4"
	case ContainerWEBM:
		return "WEBM"
	case ContainerFLV:
		return "FLV"
	}
	return string(c)
}

// UnmarshalYAML validates the container format on load.
func (c *Container) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	v := Container(s)
	if !v.Valid() {
		return fmt.Errorf("unknown container %q (expected mkv, mp4, webm or flv)", s)
	}
	*c = v
	return nil
}

// Config represents the recording settings.
// This corresponds to ~/.config/instantreplay/config.yaml.
type Config struct {
	Version            int       `yaml:"version"`
	Window             string    `yaml:"window"`
	Audio              string    `yaml:"audio"`
	Framerate          int       `yaml:"framerate"`
	ReplayDurationSecs int       `yaml:"replay_duration_secs"`
	Quality            Quality   `yaml:"quality"`
	Container          Container `yaml:"container"`
	ReplayPath         string    `yaml:"replay_path"`
}

// NewConfig creates a config with default values.
func NewConfig() *Config {
	return &Config{
		Version:            1,
		Window:             "screen",
		Audio:              "default_output",
		Framerate:          60,
		ReplayDurationSecs: 120,
		Quality:            QualityVeryHigh,
		Container:          ContainerMKV,
		ReplayPath:         defaultReplayPath(),
	}
}

// defaultReplayPath returns ~/Videos/Replays, or a relative fallback when the
// home directory cannot be resolved.
func defaultReplayPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join("Videos", "Replays")
	}
	return filepath.Join(home, "Videos", "Replays")
}
