package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the config file searched for in the user config
// directory and the working directory.
const FileName = "skald.toml"

// LoadFile parses a TOML config file and applies its keys to the
// store's global layer. A missing file is not an error. The first
// invalid key aborts the load with nothing applied.
func (s *Store) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return s.Apply(data, path)
}

// Apply parses TOML data and applies it to the global layer. All keys
// are validated before any is assigned, so a bad file changes nothing.
func (s *Store) Apply(data []byte, source string) error {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing %s: %w", source, err)
	}

	validated := make(overlay, len(raw))
	for k, v := range raw {
		val, err := validate(k, v)
		if err != nil {
			return fmt.Errorf("%s: %w", source, err)
		}
		validated[k] = val
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range validated {
		applyKey(&s.global, k, v)
	}
	return nil
}

// DefaultPath returns the per-user config file path, following the OS
// config-directory convention.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config dir: %w", err)
	}
	return filepath.Join(dir, "skald", FileName), nil
}

// Discover returns existing config paths in load order: the per-user
// file first, then a working-directory file overriding it.
func Discover() []string {
	var paths []string
	if p, err := DefaultPath(); err == nil {
		paths = append(paths, p)
	}
	paths = append(paths, FileName)
	return paths
}
