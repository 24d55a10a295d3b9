package config

import (
	"strconv"
	"strings"

	"nathanbeddoewebdev/pokeshop/internal/domain"
	"nathanbeddoewebdev/pokeshop/internal/pokeapi"
	"nathanbeddoewebdev/pokeshop/internal/util"
)

// View modes for catalog rendering.
const (
	ViewGrid = "grid"
	ViewList = "list"
)

const (
	DefaultSource = "pokeapi"
	MinPageSize   = 1
	MaxPageSize   = 200
)

// SortMode returns the configured default sort, falling back to relevance.
func (c *Config) SortMode() domain.SortMode {
	return domain.ParseSortMode(c.DefaultSort)
}

// EffectivePageSize returns the configured page size clamped to
// [MinPageSize, MaxPageSize], or the source default when unset.
func (c *Config) EffectivePageSize() int {
	switch {
	case c.PageSize <= 0:
		return pokeapi.DefaultPageSize
	case c.PageSize > MaxPageSize:
		return MaxPageSize
	}
	return c.PageSize
}

// EffectiveAPIURL returns the configured API root or the public default.
func (c *Config) EffectiveAPIURL() string {
	if u := strings.TrimSpace(c.APIURL); u != "" {
		return u
	}
	return pokeapi.DefaultBaseURL
}

// EffectiveViewMode returns "list" when configured, otherwise "grid".
func (c *Config) EffectiveViewMode() string {
	if util.NormalizeKey(c.ViewMode) == ViewList {
		return ViewList
	}
	return ViewGrid
}

// EffectiveSource returns the configured source name or "pokeapi".
func (c *Config) EffectiveSource() string {
	if s := util.NormalizeKey(c.Source); s != "" {
		return s
	}
	return DefaultSource
}

// ParsePageSize parses and range-checks a page size value.
func ParsePageSize(v string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, errPageSize(v)
	}
	if n < MinPageSize || n > MaxPageSize {
		return 0, errPageSize(v)
	}
	return n, nil
}
