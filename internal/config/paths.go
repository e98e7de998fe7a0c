// Package config handles recording settings: loading, saving, the shared
// store, and path management.
package config

import (
	"os"
	"path/filepath"
)

const (
	// DirName is the name of the InstantReplay directory inside the user
	// config directory (~/.config on Linux).
	DirName = "instantreplay"

	// DirEnvVar overrides the config directory location when set. Used by
	// tests and by users who keep their dotfiles elsewhere.
	DirEnvVar = "INSTANTREPLAY_CONFIG_DIR"
)

// File names
const (
	ConfigFileName   = "config.yaml"
	InstanceFileName = "instance.yaml"
)

// Dir returns the path to the InstantReplay config directory
// (~/.config/instantreplay/ unless overridden via INSTANTREPLAY_CONFIG_DIR).
func Dir() (string, error) {
	if dir := os.Getenv(DirEnvVar); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, DirName), nil
}

// File returns the path to the config.yaml file.
func File() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// InstanceFile returns the path to the instance.yaml file.
func InstanceFile() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, InstanceFileName), nil
}

// EnsureDir creates the InstantReplay config directory if it doesn't exist.
func EnsureDir() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}
