package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that override stored configuration.
const (
	EnvAPIURL      = "POKESHOP_API_URL"
	EnvPageSize    = "POKESHOP_PAGE_SIZE"
	EnvDefaultSort = "POKESHOP_DEFAULT_SORT"
	EnvSource      = "POKESHOP_SOURCE"
)

// LoadEnvFile loads variables from a dotenv file into the process
// environment without overriding variables already set. A missing file is
// not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays environment overrides onto c in memory. Invalid page
// sizes are reported and leave the stored value untouched.
func (c *Config) ApplyEnv() error {
	return c.applyEnv(os.LookupEnv)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAPIURL); ok && v != "" {
		c.APIURL = v
	}
	if v, ok := lookup(EnvDefaultSort); ok && v != "" {
		c.DefaultSort = v
	}
	if v, ok := lookup(EnvSource); ok && v != "" {
		c.Source = v
	}
	if v, ok := lookup(EnvPageSize); ok && v != "" {
		n, err := ParsePageSize(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvPageSize, err)
		}
		c.PageSize = n
	}
	return nil
}

// LoadEffective loads the stored config and applies environment overrides.
func LoadEffective() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}
