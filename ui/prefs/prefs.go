// Package prefs provides JSON-based editor preferences.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const prefsFile = "preferences.json"

// Prefs holds the editor settings persisted between sessions.
type Prefs struct {
	ServerURL    string  `json:"server_url"`
	TelemetryURL string  `json:"telemetry_url"`
	GridEnabled  bool    `json:"grid_enabled"`
	GridPitch    float64 `json:"grid_pitch"`
	DefaultColor string  `json:"default_color"`
	SmoothKernel int     `json:"smooth_kernel"`

	path string
}

// Defaults returns the built-in preference values.
func Defaults() *Prefs {
	return &Prefs{
		ServerURL:    "http://localhost:3000",
		TelemetryURL: "ws://localhost:3000/ws",
		GridEnabled:  true,
		GridPitch:    20,
		DefaultColor: "#000000",
		SmoothKernel: 5,
	}
}

// Load reads preferences from ~/.config/robomap/preferences.json,
// falling back to defaults for anything missing.
func Load() *Prefs {
	p := Defaults()

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	p.path = filepath.Join(configDir, "robomap", prefsFile)

	data, err := os.ReadFile(p.path)
	if err != nil {
		return p
	}
	_ = json.Unmarshal(data, p)
	return p
}

// Save writes preferences to disk.
func (p *Prefs) Save() error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(p.path, data, 0o644)
}
