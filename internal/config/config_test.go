package config

import (
	"os"
	"path/filepath"
	"testing"

	"nathanbeddoewebdev/pokeshop/internal/domain"
	"nathanbeddoewebdev/pokeshop/internal/pokeapi"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(&Config{}, cfg); diff != "" {
		t.Errorf("expected zero config (-want +got):\n%s", diff)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pokeshop", "config.json")

	want := &Config{DefaultSort: "price-asc", PageSize: 40, ViewMode: "list"}
	if err := want.SaveTo(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestSetPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.json")
	SetPath(path)
	t.Cleanup(ResetPath)

	if err := (&Config{Source: "pokeapi"}).Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Source != "pokeapi" {
		t.Errorf("Source = %q, want pokeapi", cfg.Source)
	}
}

func TestEffectiveDefaults(t *testing.T) {
	cfg := &Config{}

	if got := cfg.SortMode(); got != domain.SortByRelevance {
		t.Errorf("SortMode() = %v, want relevance", got)
	}
	if got := cfg.EffectivePageSize(); got != pokeapi.DefaultPageSize {
		t.Errorf("EffectivePageSize() = %d, want %d", got, pokeapi.DefaultPageSize)
	}
	if got := cfg.EffectiveAPIURL(); got != pokeapi.DefaultBaseURL {
		t.Errorf("EffectiveAPIURL() = %q", got)
	}
	if got := cfg.EffectiveViewMode(); got != ViewGrid {
		t.Errorf("EffectiveViewMode() = %q, want grid", got)
	}
	if got := cfg.EffectiveSource(); got != DefaultSource {
		t.Errorf("EffectiveSource() = %q, want %q", got, DefaultSource)
	}
}

func TestEffective_UnknownSortFallsBack(t *testing.T) {
	cfg := &Config{DefaultSort: "cheapest-first", PageSize: 999}

	if got := cfg.SortMode(); got != domain.SortByRelevance {
		t.Errorf("SortMode() = %v, want relevance", got)
	}
	if got := cfg.EffectivePageSize(); got != MaxPageSize {
		t.Errorf("EffectivePageSize() = %d, want %d", got, MaxPageSize)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvAPIURL:      "http://localhost:9000/api/v2",
		EnvPageSize:    "50",
		EnvDefaultSort: "price-desc",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := &Config{PageSize: 10, DefaultSort: "relevance", Source: "pokeapi"}
	if err := cfg.applyEnv(lookup); err != nil {
		t.Fatalf("applyEnv error: %v", err)
	}

	want := &Config{
		APIURL:      "http://localhost:9000/api/v2",
		PageSize:    50,
		DefaultSort: "price-desc",
		Source:      "pokeapi",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyEnv_InvalidPageSize(t *testing.T) {
	cfg := &Config{PageSize: 10}
	err := cfg.applyEnv(func(k string) (string, bool) {
		if k == EnvPageSize {
			return "lots", true
		}
		return "", false
	})
	if err == nil {
		t.Fatal("expected error for invalid page size")
	}
	if cfg.PageSize != 10 {
		t.Errorf("PageSize changed to %d", cfg.PageSize)
	}
}

func TestLoadEnvFile(t *testing.T) {
	if err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("missing file should be ignored, got %v", err)
	}

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("POKESHOP_TEST_ONLY=from-file\n"), 0o600); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("POKESHOP_TEST_ONLY") })

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile error: %v", err)
	}
	if got := os.Getenv("POKESHOP_TEST_ONLY"); got != "from-file" {
		t.Errorf("POKESHOP_TEST_ONLY = %q, want from-file", got)
	}
}
