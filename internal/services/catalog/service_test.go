package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"nathanbeddoewebdev/pokeshop/internal/domain"
	"nathanbeddoewebdev/pokeshop/internal/swrcache"

	"github.com/google/go-cmp/cmp"
)

type mockSource struct {
	pages     map[string]*domain.Page
	pageCalls []string
	itemCalls []int
}

func (m *mockSource) GetDisplayName() string { return "Mock" }

func (m *mockSource) FetchPage(_ context.Context, url string) (*domain.Page, error) {
	m.pageCalls = append(m.pageCalls, url)
	if p, ok := m.pages[url]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockSource) GetItem(_ context.Context, id int) (*domain.CatalogItem, error) {
	m.itemCalls = append(m.itemCalls, id)
	return &domain.CatalogItem{ID: id, Name: "mon"}, nil
}

func newMock() *mockSource {
	return &mockSource{pages: map[string]*domain.Page{
		"":     {Items: []domain.CatalogItem{{ID: 1, Name: "bulbasaur"}}, NextURL: "next"},
		"next": {Items: []domain.CatalogItem{{ID: 2, Name: "ivysaur"}}},
	}}
}

func TestFetchPage_NoCacheDelegates(t *testing.T) {
	src := newMock()
	svc := New(src)

	page, err := svc.FetchPage(context.Background(), "  next ")
	if err != nil {
		t.Fatalf("FetchPage error: %v", err)
	}
	if page.Items[0].ID != 2 {
		t.Errorf("got item %d, want 2", page.Items[0].ID)
	}
	if diff := cmp.Diff([]string{"next"}, src.pageCalls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchPage_CachedPagesServedFromDisk(t *testing.T) {
	src := newMock()
	svc := New(src, WithCache(swrcache.WithTTLs(t.TempDir(), time.Hour, time.Hour)))

	for i := 0; i < 3; i++ {
		page, err := svc.FetchPage(context.Background(), "")
		if err != nil {
			t.Fatalf("FetchPage error: %v", err)
		}
		if diff := cmp.Diff(newMock().pages[""], page); diff != "" {
			t.Fatalf("page mismatch (-want +got):\n%s", diff)
		}
	}
	if len(src.pageCalls) != 1 {
		t.Errorf("source called %d times, want 1", len(src.pageCalls))
	}

	if err := svc.Refresh(); err != nil {
		t.Fatalf("Refresh error: %v", err)
	}
	if _, err := svc.FetchPage(context.Background(), ""); err != nil {
		t.Fatalf("FetchPage error: %v", err)
	}
	if len(src.pageCalls) != 2 {
		t.Errorf("source called %d times after refresh, want 2", len(src.pageCalls))
	}
}

// sizedSource serves a first page of size items and reports a first page
// URL that reflects the size, the way the PokeAPI client does.
type sizedSource struct {
	mockSource
	size int
}

func (s *sizedSource) FirstPageURL() string {
	return fmt.Sprintf("https://pokeapi.test/api/v2/pokemon?limit=%d&offset=0", s.size)
}

func (s *sizedSource) FetchPage(_ context.Context, url string) (*domain.Page, error) {
	s.pageCalls = append(s.pageCalls, url)
	page := &domain.Page{}
	for i := 1; i <= s.size; i++ {
		page.Items = append(page.Items, domain.CatalogItem{ID: i, Name: fmt.Sprintf("mon-%d", i)})
	}
	return page, nil
}

func TestFetchPage_FirstPageKeyedByPageSize(t *testing.T) {
	dir := t.TempDir()
	fetch := func(size int) (*sizedSource, *domain.Page) {
		t.Helper()
		src := &sizedSource{size: size}
		svc := New(src, WithCache(swrcache.WithTTLs(dir, time.Hour, time.Hour)))
		page, err := svc.FetchPage(context.Background(), "")
		if err != nil {
			t.Fatalf("FetchPage(size=%d) error: %v", size, err)
		}
		return src, page
	}

	_, large := fetch(20)
	if len(large.Items) != 20 {
		t.Fatalf("page-size 20 run: got %d items, want 20", len(large.Items))
	}

	src, small := fetch(5)
	if len(small.Items) != 5 {
		t.Errorf("page-size 5 run: got %d items, want 5", len(small.Items))
	}
	if len(src.pageCalls) != 1 {
		t.Errorf("page-size 5 source called %d times, want 1", len(src.pageCalls))
	}

	src, again := fetch(20)
	if len(again.Items) != 20 {
		t.Errorf("second page-size 20 run: got %d items, want 20", len(again.Items))
	}
	if len(src.pageCalls) != 0 {
		t.Errorf("second page-size 20 run hit the source %d times, want a cache hit", len(src.pageCalls))
	}
}

func TestFetchPage_ErrorsAreNotCached(t *testing.T) {
	src := newMock()
	svc := New(src, WithCache(swrcache.WithTTLs(t.TempDir(), time.Hour, time.Hour)))

	for i := 0; i < 2; i++ {
		if _, err := svc.FetchPage(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	}
	if len(src.pageCalls) != 2 {
		t.Errorf("source called %d times, want 2", len(src.pageCalls))
	}
}

func TestGetItem_Validates(t *testing.T) {
	src := newMock()
	svc := New(src)

	if _, err := svc.GetItem(context.Background(), 0); !errors.Is(err, domain.ErrInvalidItem) {
		t.Errorf("expected ErrInvalidItem, got %v", err)
	}
	if len(src.itemCalls) != 0 {
		t.Errorf("source should not be called for invalid IDs")
	}

	item, err := svc.GetItem(context.Background(), 6)
	if err != nil {
		t.Fatalf("GetItem error: %v", err)
	}
	if item.ID != 6 {
		t.Errorf("got item %d, want 6", item.ID)
	}
}

func TestCacheKey(t *testing.T) {
	tests := []struct {
		source string
		url    string
		want   string
	}{
		{"PokeAPI", "", "pokeapi_page_first"},
		{"PokeAPI", "https://pokeapi.co/api/v2/pokemon?offset=20&limit=20", "pokeapi_page_https://pokeapi.co/api/v2/pokemon?offset=20&limit=20"},
		{"", "", "page_first"},
	}
	for _, tt := range tests {
		if got := pageKey(tt.source, tt.url); got != tt.want {
			t.Errorf("pageKey(%q, %q) = %q, want %q", tt.source, tt.url, got, tt.want)
		}
	}
}
