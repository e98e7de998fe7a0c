package config

import (
	"os"
	"syscall"
	"time"
)

// InstanceInfo records the running tray process.
// This corresponds to ~/.config/instantreplay/instance.yaml.
type InstanceInfo struct {
	Version   int       `yaml:"version"`
	PID       int       `yaml:"pid"`
	StartedAt time.Time `yaml:"started_at"`
}

// NewInstanceInfo creates instance info for the given PID.
func NewInstanceInfo(pid int) *InstanceInfo {
	return &InstanceInfo{
		Version:   1,
		PID:       pid,
		StartedAt: time.Now().UTC(),
	}
}

// LoadInstanceInfo loads the instance record from instance.yaml.
// Returns nil if the file doesn't exist.
func LoadInstanceInfo() (*InstanceInfo, error) {
	path, err := InstanceFile()
	if err != nil {
		return nil, err
	}

	if !FileExists(path) {
		return nil, nil
	}

	var info InstanceInfo
	if err := LoadYAML(path, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// SaveInstanceInfo writes the instance record to instance.yaml.
func SaveInstanceInfo(info *InstanceInfo) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	path, err := InstanceFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, info)
}

// RemoveInstanceInfo removes the instance.yaml file.
func RemoveInstanceInfo() error {
	path, err := InstanceFile()
	if err != nil {
		return err
	}

	if !FileExists(path) {
		return nil
	}
	return os.Remove(path)
}

// IsInstanceRunning checks if another tray process is still running.
// Returns true if instance.yaml exists and the PID is alive.
func IsInstanceRunning() (bool, *InstanceInfo, error) {
	info, err := LoadInstanceInfo()
	if err != nil {
		return false, nil, err
	}
	if info == nil {
		return false, nil, nil
	}

	// Check if process is alive using kill -0
	process, err := os.FindProcess(info.PID)
	if err != nil {
		// On Unix, FindProcess always succeeds
		return false, info, nil
	}

	// Send signal 0 to check if process exists
	err = process.Signal(syscall.Signal(0))
	if err != nil {
		// Process doesn't exist, clean up stale file
		_ = RemoveInstanceInfo()
		return false, info, nil
	}

	return true, info, nil
}
