package shop

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"testing"

	"nathanbeddoewebdev/pokeshop/internal/domain"
	"nathanbeddoewebdev/pokeshop/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// fakeSource serves pages keyed by URL and records every request.
type fakeSource struct {
	mu    sync.Mutex
	pages map[string]*domain.Page
	err   error
	calls []string
}

func (f *fakeSource) GetDisplayName() string { return "Fake" }

func (f *fakeSource) FetchPage(_ context.Context, url string) (*domain.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, url)
	if f.err != nil {
		return nil, f.err
	}
	page, ok := f.pages[url]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return page, nil
}

func (f *fakeSource) GetItem(_ context.Context, id int) (*domain.CatalogItem, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func item(id int, name string) domain.CatalogItem {
	return domain.CatalogItem{ID: id, Name: name}
}

func ids(items []domain.CatalogItem) []int {
	out := make([]int, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func twoPageSource() *fakeSource {
	return &fakeSource{pages: map[string]*domain.Page{
		"": {
			Items:   []domain.CatalogItem{item(2, "ivysaur"), item(1, "bulbasaur")},
			NextURL: "page-2",
		},
		"page-2": {
			Items: []domain.CatalogItem{item(3, "venusaur"), item(1, "bulbasaur-again")},
		},
	}}
}

func TestSession_LoadsUntilLastPage(t *testing.T) {
	src := twoPageSource()
	s := New()

	require.NoError(t, s.LoadMore(context.Background(), src))
	assert.True(t, s.HasMore())
	assert.Equal(t, []int{1, 2}, ids(s.View()))

	require.NoError(t, s.LoadMore(context.Background(), src))
	assert.False(t, s.HasMore())
	assert.Equal(t, []int{1, 2, 3}, ids(s.View()))
	assert.Equal(t, "bulbasaur", s.View()[0].Name, "first occurrence must win")

	assert.Equal(t, []string{"", "page-2"}, src.calls)
}

func TestSession_LoadMoreAfterLastPageIsNoOp(t *testing.T) {
	src := &fakeSource{pages: map[string]*domain.Page{
		"": {Items: []domain.CatalogItem{item(1, "bulbasaur")}},
	}}
	s := New()

	require.NoError(t, s.LoadMore(context.Background(), src))
	before := s.View()

	err := s.LoadMore(context.Background(), src)

	assert.ErrorIs(t, err, ErrNoMorePages)
	assert.Equal(t, 1, src.callCount(), "no fetch may be issued after the last page")
	assert.Equal(t, before, s.View())
	assert.False(t, s.Busy())
}

func TestSession_BusyBlocksSecondFetch(t *testing.T) {
	s := New()

	first, err := s.BeginFetch()
	require.NoError(t, err)
	assert.True(t, s.Busy())

	_, err = s.BeginFetch()
	assert.ErrorIs(t, err, ErrBusy)

	applied := s.Complete(first, &domain.Page{Items: []domain.CatalogItem{item(1, "a")}, NextURL: "next"}, nil)
	assert.True(t, applied)
	assert.False(t, s.Busy())

	second, err := s.BeginFetch()
	require.NoError(t, err)
	assert.Equal(t, "next", second.URL)
}

func TestSession_IdempotentReappend(t *testing.T) {
	s := New()
	page := &domain.Page{Items: []domain.CatalogItem{item(5, "e"), item(4, "d")}, NextURL: "more"}

	t1, err := s.BeginFetch()
	require.NoError(t, err)
	s.Complete(t1, page, nil)
	once := s.View()

	t2, err := s.BeginFetch()
	require.NoError(t, err)
	s.Complete(t2, page, nil)

	assert.Equal(t, once, s.View())
	assert.Len(t, s.Raw(), 4)
	assert.Equal(t, 2, s.Stats().Duplicates)
}

func TestSession_RepeatedDeliveryIsIgnored(t *testing.T) {
	s := New()
	p1 := &domain.Page{Items: []domain.CatalogItem{item(1, "a")}, NextURL: "page-2"}
	p2 := &domain.Page{Items: []domain.CatalogItem{item(2, "b")}}

	t1, err := s.BeginFetch()
	require.NoError(t, err)
	require.True(t, s.Complete(t1, p1, nil))

	t2, err := s.BeginFetch()
	require.NoError(t, err)

	// The first result arrives again while page 2 is in flight.
	assert.False(t, s.Current(t1))
	assert.False(t, s.Complete(t1, p1, nil))
	assert.True(t, s.Busy(), "a repeated result must not clear the busy flag")
	_, err = s.BeginFetch()
	assert.ErrorIs(t, err, ErrBusy)

	require.True(t, s.Complete(t2, p2, nil))
	assert.False(t, s.HasMore())

	// And once more after the terminal page.
	assert.False(t, s.Complete(t1, p1, nil))
	assert.False(t, s.Complete(t2, p2, nil))
	assert.False(t, s.HasMore(), "a late result must not reopen the catalog")
	assert.Equal(t, 2, s.Pages())
	assert.Equal(t, []int{1, 2}, ids(s.View()))

	_, err = s.BeginFetch()
	assert.ErrorIs(t, err, ErrNoMorePages)
}

func TestSession_CompleteWhileIdleIsIgnored(t *testing.T) {
	s := New()

	assert.False(t, s.Complete(Ticket{}, &domain.Page{Items: []domain.CatalogItem{item(1, "a")}}, nil))
	assert.Empty(t, s.Raw())
	assert.False(t, s.Loaded())
}

func TestSession_ResetDiscardsInFlightResult(t *testing.T) {
	s := New()

	stale, err := s.BeginFetch()
	require.NoError(t, err)

	s.Reset()

	assert.False(t, s.Current(stale))

	applied := s.Complete(stale, &domain.Page{Items: []domain.CatalogItem{item(1, "late")}}, nil)
	assert.False(t, applied)
	assert.Empty(t, s.View())
	assert.False(t, s.Busy())
	assert.True(t, s.HasMore())

	fresh, err := s.BeginFetch()
	require.NoError(t, err)
	assert.Equal(t, "", fresh.URL)
	assert.True(t, s.Current(fresh))
}

func TestSession_FetchErrorIsRecorded(t *testing.T) {
	boom := errors.New("connection refused")
	src := &fakeSource{err: boom}
	s := New()

	err := s.LoadMore(context.Background(), src)

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, s.Err(), boom)
	assert.False(t, s.Busy(), "busy flag must clear on failure")
	assert.True(t, s.HasMore())
	assert.Empty(t, s.View())

	src.err = nil
	src.pages = map[string]*domain.Page{"": {Items: []domain.CatalogItem{item(1, "a")}}}
	require.NoError(t, s.LoadMore(context.Background(), src))
	assert.NoError(t, s.Err())
}

func TestSession_SortModes(t *testing.T) {
	rule := pricing.Rule{Base: 0, Divisor: 1}
	s := New(WithRule(rule))

	tk, err := s.BeginFetch()
	require.NoError(t, err)
	s.Complete(tk, &domain.Page{Items: []domain.CatalogItem{
		{ID: 1, Stats: domain.Stats{HP: 30}},
		{ID: 2, Stats: domain.Stats{HP: 10}},
		{ID: 3, Stats: domain.Stats{HP: 20}},
	}}, nil)

	assert.Equal(t, []int{1, 2, 3}, ids(s.View()))

	s.SetMode(domain.SortByPriceAsc)
	assert.Equal(t, []int{2, 3, 1}, ids(s.View()))

	assert.Equal(t, domain.SortByPriceDesc, s.CycleMode())
	assert.Equal(t, []int{1, 3, 2}, ids(s.View()))

	s.SetMode(domain.SortMode(42))
	assert.Equal(t, domain.SortByRelevance, s.Mode())
}

func TestSession_LoadPagesStopsAtLastPage(t *testing.T) {
	src := twoPageSource()
	s := New()

	require.NoError(t, s.LoadPages(context.Background(), src, 10))

	assert.Equal(t, 2, s.Pages())
	assert.Equal(t, 2, src.callCount())
}

func TestSession_LogsMalformedAndDuplicates(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := New(WithLogger(zap.New(core)))

	tk, err := s.BeginFetch()
	require.NoError(t, err)
	s.Complete(tk, &domain.Page{Items: []domain.CatalogItem{
		item(1, "a"), item(0, "missing-id"), item(1, "dup"),
	}}, nil)

	malformed := logs.FilterMessage("skipped malformed catalog records").All()
	require.Len(t, malformed, 1)
	assert.Equal(t, zapcore.WarnLevel, malformed[0].Level)
	assert.Equal(t, int64(1), malformed[0].ContextMap()["count"])

	dups := logs.FilterMessage("discarded duplicate catalog records").All()
	require.Len(t, dups, 1)
	assert.Equal(t, s.ID(), dups[0].ContextMap()["session"])

	assert.Equal(t, []int{1}, ids(s.View()))
}

func TestSession_ConcurrentLoadMoreFetchesOnce(t *testing.T) {
	gate := make(chan struct{})
	src := &blockingSource{gate: gate, page: &domain.Page{Items: []domain.CatalogItem{item(1, "a")}}}
	s := New()

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.LoadMore(context.Background(), src)
		}(i)
	}

	// Wait for the winning fetch to start before releasing it.
	for !s.Busy() {
		runtime.Gosched()
	}
	close(gate)
	wg.Wait()

	busy := 0
	for _, err := range errs {
		if errors.Is(err, ErrBusy) || errors.Is(err, ErrNoMorePages) {
			busy++
			continue
		}
		assert.NoError(t, err)
	}
	assert.Equal(t, len(errs)-1, busy)
	assert.Equal(t, int32(1), src.calls())
}
