package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Settings holds all configuration options.
type Settings struct {
	// LibraryPath is the directory holding one subdirectory per title.
	LibraryPath string `json:"library_path"`

	// DOSBoxPath overrides emulator discovery with a fixed command.
	// Empty means probe the usual install locations.
	DOSBoxPath string `json:"dosbox_path"`

	// Verbose enables per-file progress output.
	Verbose bool `json:"verbose"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		LibraryPath: filepath.Join(homeDir, ".ialauncher", "library"),
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".ialauncher", "config.json")
}

// Load reads settings from a JSON file.
//
// A missing file yields the defaults, not an error.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
