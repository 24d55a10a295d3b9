// Package swrcache layers stale-while-revalidate semantics over the file
// cache: fresh entries are served directly, stale ones are served while a
// background refresh runs, and expired ones are refetched synchronously.
package swrcache

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"nathanbeddoewebdev/pokeshop/internal/cache"
)

const (
	defaultFreshTTL = 10 * time.Minute
	defaultMaxStale = 24 * time.Hour
	refreshTimeout  = 30 * time.Second
)

// Cache is safe for concurrent use.
type Cache struct {
	store    *cache.Cache
	freshTTL time.Duration
	maxStale time.Duration

	// refreshing holds keys with a background refresh in flight.
	refreshing sync.Map
}

// New returns a cache rooted at dir with default TTLs.
func New(dir string) *Cache {
	return WithTTLs(dir, defaultFreshTTL, defaultMaxStale)
}

// NewDefault returns a cache under the pokeshop user cache dir.
func NewDefault() *Cache {
	return New(filepath.Join(cache.DefaultDir(), "pages"))
}

// WithTTLs returns a cache rooted at dir. Entries younger than freshTTL are
// served as is; entries up to maxStale old are served while refreshing. A
// non-positive maxStale serves stale entries indefinitely.
func WithTTLs(dir string, freshTTL, maxStale time.Duration) *Cache {
	return &Cache{store: cache.New(dir), freshTTL: freshTTL, maxStale: maxStale}
}

// GetOrFetch returns the value cached under key, calling fetch on a miss,
// on expiry, or in the background once the entry turns stale.
func GetOrFetch[T any](c *Cache, ctx context.Context, key string, fetch func(context.Context) (T, error)) (T, error) {
	if c == nil || c.store.Dir() == "" {
		return fetch(ctx)
	}

	entry, ok := readEntry[T](c, key)
	if !ok || entry.FetchedAt.IsZero() {
		return fetchAndStore(c, ctx, key, fetch)
	}

	age := time.Since(entry.FetchedAt)
	switch {
	case age < 0:
		return fetchAndStore(c, ctx, key, fetch)
	case age <= c.freshTTL:
		return entry.Data, nil
	case c.maxStale <= 0 || age <= c.maxStale:
		revalidate(c, key, fetch)
		return entry.Data, nil
	}
	return fetchAndStore(c, ctx, key, fetch)
}

// Invalidate removes a single cached entry.
func (c *Cache) Invalidate(key string) error {
	if c == nil {
		return nil
	}
	return c.store.Invalidate(key)
}

// InvalidatePrefix removes cached entries whose key starts with prefix.
func (c *Cache) InvalidatePrefix(prefix string) error {
	if c == nil {
		return nil
	}
	return c.store.InvalidatePrefix(prefix)
}

// Clear removes all cached entries.
func (c *Cache) Clear() error {
	if c == nil {
		return nil
	}
	return c.store.Clear()
}

func fetchAndStore[T any](c *Cache, ctx context.Context, key string, fetch func(context.Context) (T, error)) (T, error) {
	data, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	_ = writeEntry(c, key, Entry[T]{Data: data, FetchedAt: time.Now()})
	return data, nil
}

func revalidate[T any](c *Cache, key string, fetch func(context.Context) (T, error)) {
	if _, busy := c.refreshing.LoadOrStore(key, struct{}{}); busy {
		return
	}
	go func() {
		defer c.refreshing.Delete(key)

		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		data, err := fetch(ctx)
		if err != nil {
			return
		}
		_ = writeEntry(c, key, Entry[T]{Data: data, FetchedAt: time.Now()})
	}()
}

func readEntry[T any](c *Cache, key string) (Entry[T], bool) {
	var entry Entry[T]
	_, ok, err := c.store.Load(key, &entry)
	if err != nil || !ok {
		return Entry[T]{}, false
	}
	return entry, true
}

func writeEntry[T any](c *Cache, key string, entry Entry[T]) error {
	return c.store.Set(key, entry)
}
