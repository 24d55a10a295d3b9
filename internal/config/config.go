// Package config handles persistent user configuration for pokeshop.
//
// Configuration is stored as JSON at ~/.config/pokeshop/config.json (or
// the platform-equivalent path returned by os.UserConfigDir). Environment
// variables, optionally loaded from a .env file, override stored values
// for a single invocation.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	appDir   = "pokeshop"
	fileName = "config.json"
)

// pathOverride, when non-empty, replaces the default config file path.
// Intended for testing. Use SetPath / ResetPath to manage.
var pathOverride string

// SetPath overrides the config file path. Intended for testing.
func SetPath(p string) { pathOverride = p }

// ResetPath clears the path override. Intended for testing.
func ResetPath() { pathOverride = "" }

// Config holds user preferences that persist across invocations. Empty
// fields mean "use the default".
type Config struct {
	DefaultSort string `json:"default_sort,omitempty"`
	PageSize    int    `json:"page_size,omitempty"`
	APIURL      string `json:"api_url,omitempty"`
	ViewMode    string `json:"view_mode,omitempty"`
	Source      string `json:"source,omitempty"`
}

// Path returns the absolute path to the config file.
func Path() (string, error) {
	if pathOverride != "" {
		return pathOverride, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: unable to determine config directory: %w", err)
	}
	return filepath.Join(base, appDir, fileName), nil
}

// Load reads the config file. A missing file yields a zero Config.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom reads the config from path, or from Path() when path is empty.
func LoadFrom(path string) (*Config, error) {
	if path == "" {
		var err error
		if path, err = Path(); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes the config to Path(), creating the parent directory.
func (c *Config) Save() error {
	return c.SaveTo("")
}

// SaveTo writes the config to path, or to Path() when path is empty.
func (c *Config) SaveTo(path string) error {
	if path == "" {
		var err error
		if path, err = Path(); err != nil {
			return err
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("config: failed to create directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("config: failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: failed to write %s: %w", path, err)
	}
	return nil
}
