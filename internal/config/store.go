package config

import (
	"fmt"
	"sync"
)

// Store holds the shared recording settings behind a read-write lock.
// The tray menu, the recorder supervisor and the file watcher all talk to
// the same Store; it is the only component that writes config.yaml.
type Store struct {
	mu       sync.RWMutex
	path     string
	cfg      Config
	save     func(path string, v interface{}) error
	onChange func(Config)
}

// Open loads the settings from path, falling back to defaults when the file
// doesn't exist yet. On first run the defaults are written out immediately so
// external editors and the file watcher have a file to work with.
func Open(path string) (*Store, error) {
	existed := FileExists(path)
	cfg, err := LoadYAMLOrDefault(path, NewConfig)
	if err != nil {
		return nil, err
	}

	s := &Store{
		path: path,
		cfg:  *cfg,
		save: SaveYAML,
	}

	if !existed {
		if err := s.save(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to write default config: %w", err)
		}
	}
	return s, nil
}

// Path returns the config file location backing this store.
func (s *Store) Path() string {
	return s.path
}

// Snapshot returns a copy of the current settings.
func (s *Store) Snapshot() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Update applies mutate under the exclusive lock and persists the result
// before the lock is released. A reader that runs after Update returns is
// guaranteed the file already carries the value it observes. The in-memory
// settings keep the new value even when the disk write fails; the error is
// returned for the caller to surface.
func (s *Store) Update(mutate func(*Config)) error {
	s.mu.Lock()
	mutate(&s.cfg)
	cfg := s.cfg
	err := s.save(s.path, &cfg)
	s.mu.Unlock()

	s.notifyChange(cfg)

	if err != nil {
		return fmt.Errorf("failed to persist settings: %w", err)
	}
	return nil
}

// Reload re-reads the config file, replacing the in-memory settings.
// Returns true when the settings actually changed.
func (s *Store) Reload() (bool, error) {
	cfg, err := LoadYAMLOrDefault(s.path, NewConfig)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	changed := *cfg != s.cfg
	s.cfg = *cfg
	s.mu.Unlock()

	if changed {
		s.notifyChange(*cfg)
	}
	return changed, nil
}

// SetOnChange registers a callback invoked with a settings snapshot after
// every change, whether it came from the menu or from an external file edit.
// The callback runs outside the store lock.
func (s *Store) SetOnChange(fn func(Config)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

func (s *Store) notifyChange(cfg Config) {
	s.mu.RLock()
	fn := s.onChange
	s.mu.RUnlock()

	if fn != nil {
		fn(cfg)
	}
}
