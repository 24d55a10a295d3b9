package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"nathanbeddoewebdev/pokeshop/internal/domain"
	"nathanbeddoewebdev/pokeshop/internal/util"
)

// KeySpec describes a single configuration key.
type KeySpec struct {
	// Name is the CLI-facing key name (e.g. "default-sort").
	Name string

	// Description is a short human-readable explanation shown in help text.
	Description string

	// Get returns the current value for this key from a loaded Config.
	Get func(cfg *Config) string

	// Set applies an already validated value to cfg in memory.
	Set func(cfg *Config, value string)

	// Normalize validates a raw value and returns its canonical form.
	Normalize func(value string) (string, error)

	// Effective returns the value in force once defaults are applied.
	Effective func(cfg *Config) string

	// Choices lists the canonical values of an enumerated key. Free-form
	// keys leave it nil.
	Choices []string
}

// Keys is the authoritative list of all supported configuration keys.
var Keys = []KeySpec{
	{
		Name:        "default-sort",
		Description: "Catalog order: relevance, price-asc or price-desc",
		Get:         func(cfg *Config) string { return cfg.DefaultSort },
		Set:         func(cfg *Config, v string) { cfg.DefaultSort = v },
		Normalize:   normalizeSort,
		Effective:   func(cfg *Config) string { return cfg.SortMode().String() },
		Choices:     sortChoices(),
	},
	{
		Name:        "page-size",
		Description: fmt.Sprintf("Items requested per catalog page (%d-%d)", MinPageSize, MaxPageSize),
		Get: func(cfg *Config) string {
			if cfg.PageSize == 0 {
				return ""
			}
			return strconv.Itoa(cfg.PageSize)
		},
		Set: func(cfg *Config, v string) {
			n, _ := strconv.Atoi(v)
			cfg.PageSize = n
		},
		Normalize: func(v string) (string, error) {
			n, err := ParsePageSize(v)
			if err != nil {
				return "", err
			}
			return strconv.Itoa(n), nil
		},
		Effective: func(cfg *Config) string { return strconv.Itoa(cfg.EffectivePageSize()) },
	},
	{
		Name:        "api-url",
		Description: "PokeAPI root URL",
		Get:         func(cfg *Config) string { return cfg.APIURL },
		Set:         func(cfg *Config, v string) { cfg.APIURL = v },
		Normalize:   normalizeURL,
		Effective:   (*Config).EffectiveAPIURL,
	},
	{
		Name:        "view-mode",
		Description: "Catalog layout in the shop: grid or list",
		Get:         func(cfg *Config) string { return cfg.ViewMode },
		Set:         func(cfg *Config, v string) { cfg.ViewMode = v },
		Normalize:   normalizeViewMode,
		Effective:   (*Config).EffectiveViewMode,
		Choices:     []string{ViewGrid, ViewList},
	},
	{
		Name:        "source",
		Description: "Catalog source used when --source is not specified",
		Get:         func(cfg *Config) string { return cfg.Source },
		Set:         func(cfg *Config, v string) { cfg.Source = v },
		Normalize: func(v string) (string, error) {
			if v = util.NormalizeKey(v); v == "" {
				return "", fmt.Errorf("source must not be empty")
			}
			return v, nil
		},
		Effective: (*Config).EffectiveSource,
	},
}

// Lookup returns the KeySpec for the given name, or nil if not found.
// The name is matched case-insensitively after trimming whitespace.
func Lookup(name string) *KeySpec {
	normalized := util.NormalizeKey(name)
	for i := range Keys {
		if Keys[i].Name == normalized {
			return &Keys[i]
		}
	}
	return nil
}

// KeyNames returns the names of all registered keys.
func KeyNames() []string {
	names := make([]string, len(Keys))
	for i, k := range Keys {
		names[i] = k.Name
	}
	return names
}

// KeysHelp builds a formatted block listing all available keys and their
// descriptions, suitable for inclusion in Cobra Long help text.
func KeysHelp() string {
	maxLen := 0
	for _, k := range Keys {
		maxLen = max(maxLen, len(k.Name))
	}

	var b strings.Builder
	b.WriteString("Available keys:\n")
	for _, k := range Keys {
		fmt.Fprintf(&b, "  %-*s   %s\n", maxLen, k.Name, k.Description)
	}
	return b.String()
}

func sortChoices() []string {
	names := make([]string, len(domain.SortModes))
	for i, m := range domain.SortModes {
		names[i] = m.String()
	}
	return names
}

func normalizeSort(v string) (string, error) {
	mode, ok := domain.LookupSortMode(v)
	if !ok || strings.TrimSpace(v) == "" {
		return "", fmt.Errorf("unknown sort mode %q (valid: relevance, price-asc, price-desc)", v)
	}
	return mode.String(), nil
}

func normalizeViewMode(v string) (string, error) {
	switch util.NormalizeKey(v) {
	case ViewGrid, "cuadros":
		return ViewGrid, nil
	case ViewList, "lista":
		return ViewList, nil
	}
	return "", fmt.Errorf("unknown view mode %q (valid: grid, list)", v)
}

func normalizeURL(v string) (string, error) {
	v = strings.TrimRight(strings.TrimSpace(v), "/")
	u, err := url.Parse(v)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("invalid URL %q: must be an absolute http(s) URL", v)
	}
	return v, nil
}

func errPageSize(v string) error {
	return fmt.Errorf("invalid page size %q: must be an integer between %d and %d", v, MinPageSize, MaxPageSize)
}
