package providers

import (
	"fmt"
	"slices"
	"sync"

	"nathanbeddoewebdev/pokeshop/internal/domain"
	"nathanbeddoewebdev/pokeshop/internal/util"
)

// Factory builds a catalog source from shared options.
type Factory func(opts Options) (domain.CatalogSource, error)

var (
	mu       sync.RWMutex
	registry = map[string]Factory{}
)

// Register adds a source factory under name. It panics on an empty name,
// a nil factory, or a duplicate registration.
func Register(name string, factory Factory) {
	normalizedName := util.NormalizeKey(name)
	if normalizedName == "" {
		panic("providers: empty source name")
	}
	if factory == nil {
		panic("providers: nil factory")
	}

	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[normalizedName]; exists {
		panic(fmt.Sprintf("providers: source %q already registered", name))
	}

	registry[normalizedName] = factory
}

// Get builds the source registered under name.
func Get(name string, opts Options) (domain.CatalogSource, error) {
	normalizedName := util.NormalizeKey(name)
	mu.RLock()
	factory, ok := registry[normalizedName]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("providers: unknown source %q", name)
	}

	source, err := factory(opts)
	if err != nil {
		return nil, fmt.Errorf("providers: %s: %w", normalizedName, err)
	}
	return source, nil
}

// Reset clears the registry. Intended for use in tests only.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	registry = map[string]Factory{}
}

// List returns the registered source names in sorted order.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
