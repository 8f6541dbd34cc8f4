// Package config loads and saves the app configuration under
// ~/.config/go-fingerpick.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// BackendType selects the playback backend.
type BackendType string

const (
	BackendMIDI    BackendType = "midi"
	BackendSampler BackendType = "sampler"
)

// UIConfig stores UI preferences carried across sessions. Musical session
// state (chord, pattern, step) is deliberately never persisted.
type UIConfig struct {
	LastTempo float64 `json:"lastTempo,omitempty"`
	LastSwing float64 `json:"lastSwing,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	Backend     BackendType `json:"backend,omitempty"`
	MIDIPort    string      `json:"midiPort,omitempty"`    // output port for the midi backend
	PedalPort   string      `json:"pedalPort,omitempty"`   // input port for a foot controller
	SamplePath  string      `json:"samplePath,omitempty"`  // instrument wav for the sampler backend
	PalettePath string      `json:"palettePath,omitempty"` // optional .gpl theme palette
	UI          UIConfig    `json:"ui,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Backend:    BackendMIDI,
		SamplePath: "guitar.wav",
		UI: UIConfig{
			LastTempo: 120,
			LastSwing: 0,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-fingerpick"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
