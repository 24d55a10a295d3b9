package config

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"nathanbeddoewebdev/pokeshop/internal/config"
	"nathanbeddoewebdev/pokeshop/internal/domain"
	"nathanbeddoewebdev/pokeshop/internal/providers"
)

// setupTestConfig points the config package at a temp file and returns its path.
func setupTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	config.SetPath(path)
	t.Cleanup(config.ResetPath)
	return path
}

// registerTestProvider registers a no-op source in the global registry.
func registerTestProvider(t *testing.T, name string) {
	t.Helper()
	providers.Reset()
	t.Cleanup(func() { providers.Reset() })
	providers.Register(name, func(opts providers.Options) (domain.CatalogSource, error) {
		return nil, nil
	})
}

// execConfig creates the config command, wires up output buffers, runs with the
// given args, and returns what was written to stdout and stderr.
func execConfig(t *testing.T, args ...string) (stdout, stderr string) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	cmd.Execute()
	return outBuf.String(), errBuf.String()
}

func loadConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

func TestSet_DefaultSort_Normalized(t *testing.T) {
	setupTestConfig(t)

	stdout, stderr := execConfig(t, "set", "default-sort", "Menor")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if !strings.Contains(stdout, `default-sort set to "price-asc"`) {
		t.Errorf("expected normalized confirmation, got: %s", stdout)
	}
	if got := loadConfig(t).DefaultSort; got != "price-asc" {
		t.Errorf("DefaultSort = %q, want %q", got, "price-asc")
	}
}

func TestSet_DefaultSort_Invalid(t *testing.T) {
	setupTestConfig(t)

	_, stderr := execConfig(t, "set", "default-sort", "random")

	if !strings.Contains(stderr, "unknown sort mode") {
		t.Errorf("expected 'unknown sort mode' error, got: %s", stderr)
	}
	if got := loadConfig(t).DefaultSort; got != "" {
		t.Errorf("DefaultSort should be untouched, got %q", got)
	}
}

func TestSet_PageSize(t *testing.T) {
	setupTestConfig(t)

	execConfig(t, "set", "page-size", " 40 ")
	if got := loadConfig(t).PageSize; got != 40 {
		t.Errorf("PageSize = %d, want 40", got)
	}

	_, stderr := execConfig(t, "set", "page-size", "0")
	if !strings.Contains(stderr, "invalid page size") {
		t.Errorf("expected page size error, got: %s", stderr)
	}
}

func TestSet_Source(t *testing.T) {
	setupTestConfig(t)
	registerTestProvider(t, "pokeapi")

	stdout, stderr := execConfig(t, "set", "source", "PokeAPI")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if !strings.Contains(stdout, `"pokeapi"`) {
		t.Errorf("expected normalized source name, got: %s", stdout)
	}
	if got := loadConfig(t).Source; got != "pokeapi" {
		t.Errorf("Source = %q, want pokeapi", got)
	}
}

func TestSet_Source_Unknown(t *testing.T) {
	setupTestConfig(t)
	registerTestProvider(t, "pokeapi")

	_, stderr := execConfig(t, "set", "source", "nonexistent")

	if !strings.Contains(stderr, "unknown source") {
		t.Errorf("expected 'unknown source' error, got: %s", stderr)
	}
}

func TestSet_UnknownKey(t *testing.T) {
	setupTestConfig(t)

	_, stderr := execConfig(t, "set", "bogus-key", "value")

	if !strings.Contains(stderr, "unknown configuration key") {
		t.Errorf("expected 'unknown configuration key' error, got: %s", stderr)
	}
}

func TestUnset(t *testing.T) {
	path := setupTestConfig(t)

	cfg := &config.Config{ViewMode: "list", PageSize: 30}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	stdout, _ := execConfig(t, "unset", "view-mode")
	if !strings.Contains(stdout, "view-mode reset to default") {
		t.Errorf("unexpected output: %s", stdout)
	}

	got := loadConfig(t)
	if got.ViewMode != "" {
		t.Errorf("ViewMode = %q, want empty", got.ViewMode)
	}
	if got.PageSize != 30 {
		t.Errorf("PageSize should be untouched, got %d", got.PageSize)
	}
}
