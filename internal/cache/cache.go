// Package cache is a small file-backed JSON store. Each key maps to one
// file under the cache directory; entries expire by file modification time.
//
// The PokeAPI client keeps item details here, and swrcache builds its
// stale-while-revalidate page cache on top of it.
package cache

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Cache stores JSON documents under dir. A nil Cache or one with an empty
// dir is a valid no-op cache.
type Cache struct {
	dir string
}

// New returns a cache rooted at dir.
func New(dir string) *Cache {
	return &Cache{dir: dir}
}

// NewDefault returns a cache rooted at the pokeshop directory inside the
// OS user cache dir.
func NewDefault() *Cache {
	return New(DefaultDir())
}

// DefaultDir returns the pokeshop directory inside the OS user cache dir.
func DefaultDir() string {
	base, err := os.UserCacheDir()
	if err != nil || base == "" {
		base = os.TempDir()
	}
	return filepath.Join(base, "pokeshop")
}

// Dir returns the directory entries are written to.
func (c *Cache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// Sub returns a cache rooted at a named subdirectory of c.
func (c *Cache) Sub(name string) *Cache {
	if c == nil || c.dir == "" {
		return c
	}
	return New(filepath.Join(c.dir, SanitizeKey(name)))
}

// Get decodes the entry for key into dest if it is younger than ttl.
// Expired entries are removed. Corrupt entries count as a miss.
func (c *Cache) Get(key string, ttl time.Duration, dest any) (bool, error) {
	if ttl <= 0 {
		return false, nil
	}

	modified, ok, err := c.Load(key, dest)
	if err != nil || !ok {
		return false, err
	}
	if time.Since(modified) > ttl {
		_ = c.Invalidate(key)
		return false, nil
	}
	return true, nil
}

// Load decodes the entry for key into dest regardless of age and returns
// when it was written.
func (c *Cache) Load(key string, dest any) (time.Time, bool, error) {
	if c == nil || c.dir == "" {
		return time.Time{}, false, nil
	}

	path := c.pathForKey(key)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return time.Time{}, false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return time.Time{}, false, nil
	}
	return info.ModTime(), true, nil
}

// Set writes data under key. The file is replaced atomically so readers
// never observe a partial document.
func (c *Cache) Set(key string, data any) error {
	if c == nil || c.dir == "" {
		return nil
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(c.dir, SanitizeKey(key)+".tmp-*")
	if err != nil {
		return err
	}
	name := tmp.Name()

	_, werr := tmp.Write(payload)
	cerr := tmp.Close()
	if err := errors.Join(werr, cerr); err != nil {
		_ = os.Remove(name)
		return err
	}
	return os.Rename(name, c.pathForKey(key))
}

// Invalidate removes the entry for key.
func (c *Cache) Invalidate(key string) error {
	if c == nil || c.dir == "" {
		return nil
	}
	err := os.Remove(c.pathForKey(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// InvalidatePrefix removes every entry whose key starts with prefix.
func (c *Cache) InvalidatePrefix(prefix string) error {
	return c.removeMatching(func(name string) bool {
		return strings.HasPrefix(name, SanitizeKey(prefix))
	})
}

// Clear removes everything under the cache directory.
func (c *Cache) Clear() error {
	return c.removeMatching(func(string) bool { return true })
}

func (c *Cache) removeMatching(match func(name string) bool) error {
	if c == nil || c.dir == "" {
		return nil
	}

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if !match(entry.Name()) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(c.dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

func (c *Cache) pathForKey(key string) string {
	return filepath.Join(c.dir, SanitizeKey(key)+".json")
}

// SanitizeKey maps key onto a safe file name: ASCII letters, digits, '-'
// and '_' are kept, everything else becomes '_'.
func SanitizeKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return "cache"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, key)
}
