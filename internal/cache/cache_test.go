package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type cachedItem struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestCache_SetGetRoundTrip(t *testing.T) {
	c := New(t.TempDir())
	want := cachedItem{ID: 25, Name: "pikachu"}

	if err := c.Set("pokemon/25", want); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	var got cachedItem
	hit, err := c.Get("pokemon/25", time.Hour, &got)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !hit {
		t.Fatal("expected cache hit, got miss")
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("cached item mismatch (-want +got):\n%s", diff)
	}
}

func TestCache_ExpiredEntry(t *testing.T) {
	c := New(t.TempDir())
	key := "pokemon_1"

	if err := c.Set(key, cachedItem{ID: 1}); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	old := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(c.pathForKey(key), old, old); err != nil {
		t.Fatalf("Chtimes() error: %v", err)
	}

	var got cachedItem
	hit, err := c.Get(key, time.Hour, &got)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if hit {
		t.Fatal("expected cache miss for expired entry")
	}
	if _, err := os.Stat(c.pathForKey(key)); !os.IsNotExist(err) {
		t.Errorf("expired entry should be removed, stat err = %v", err)
	}
}

func TestCache_CorruptEntry(t *testing.T) {
	c := New(t.TempDir())
	key := "pokemon_2"

	if err := os.WriteFile(c.pathForKey(key), []byte("{invalid json"), 0o600); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	var got cachedItem
	hit, err := c.Get(key, time.Hour, &got)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if hit {
		t.Fatal("expected cache miss for corrupt entry")
	}
}

func TestCache_NilAndDisabled(t *testing.T) {
	var nilCache *Cache
	var got cachedItem

	if hit, err := nilCache.Get("k", time.Hour, &got); hit || err != nil {
		t.Errorf("nil Get() = %v, %v; want miss", hit, err)
	}
	if err := nilCache.Set("k", got); err != nil {
		t.Errorf("nil Set() error: %v", err)
	}

	c := New(t.TempDir())
	if err := c.Set("k", cachedItem{ID: 1}); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if hit, _ := c.Get("k", 0, &got); hit {
		t.Error("zero TTL should always miss")
	}
}

func TestCache_InvalidatePrefixAndClear(t *testing.T) {
	c := New(t.TempDir())
	for _, key := range []string{"page_a", "page_b", "item_1"} {
		if err := c.Set(key, cachedItem{}); err != nil {
			t.Fatalf("Set(%q) error: %v", key, err)
		}
	}

	if err := c.InvalidatePrefix("page"); err != nil {
		t.Fatalf("InvalidatePrefix() error: %v", err)
	}

	var got cachedItem
	if hit, _ := c.Get("page_a", time.Hour, &got); hit {
		t.Error("page_a should be gone")
	}
	if hit, _ := c.Get("item_1", time.Hour, &got); !hit {
		t.Error("item_1 should survive a page prefix invalidation")
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if hit, _ := c.Get("item_1", time.Hour, &got); hit {
		t.Error("item_1 should be gone after Clear")
	}
}

func TestCache_Sub(t *testing.T) {
	root := t.TempDir()
	sub := New(root).Sub("details")

	if err := sub.Set("7", cachedItem{ID: 7}); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "details", "7.json")); err != nil {
		t.Errorf("expected entry inside subdirectory: %v", err)
	}
}

func TestSanitizeKey(t *testing.T) {
	tests := map[string]string{
		"":                                  "cache",
		"  ":                                "cache",
		"pokeapi_page":                      "pokeapi_page",
		"https://pokeapi.co/api/v2/pokemon": "https___pokeapi_co_api_v2_pokemon",
		"price-asc":                         "price-asc",
	}
	for in, want := range tests {
		if got := SanitizeKey(in); got != want {
			t.Errorf("SanitizeKey(%q) = %q, want %q", in, got, want)
		}
	}
}
