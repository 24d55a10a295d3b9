// Package shop holds the storefront session: the single owner of the raw
// catalog list, the pagination cursor, and the busy flag that keeps at most
// one page fetch outstanding.
//
// The session never retries and never reorders. It appends pages as they
// arrive and hands rendering off to catalog.Normalizer, which produces a
// fresh deduplicated, sorted view on demand.
package shop

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"nathanbeddoewebdev/pokeshop/internal/catalog"
	"nathanbeddoewebdev/pokeshop/internal/domain"
	"nathanbeddoewebdev/pokeshop/internal/pricing"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrBusy is returned by BeginFetch while another fetch is outstanding.
	ErrBusy = errors.New("shop: a page fetch is already in progress")

	// ErrNoMorePages is returned by BeginFetch once the source reported the
	// last page. It is a stop signal, not a failure.
	ErrNoMorePages = errors.New("shop: no more pages")
)

// Ticket identifies one fetch. URL is the page to request ("" for the
// first page). Only the ticket of the outstanding fetch is current; any
// other ticket, including one issued before a Reset or one whose result
// was already applied, is stale and its result is discarded.
type Ticket struct {
	URL        string
	Generation uint64
	Seq        uint64
}

// Session is safe for concurrent use.
type Session struct {
	id         string
	log        *zap.Logger
	normalizer *catalog.Normalizer

	mu         sync.Mutex
	raw        []domain.CatalogItem
	version    uint64
	generation uint64
	seq        uint64
	pending    uint64
	nextURL    string
	done       bool
	busy       bool
	pages      int
	mode       domain.SortMode
	err        error
	stats      catalog.Stats
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for fetch and data-quality events.
func WithLogger(log *zap.Logger) Option {
	return func(s *Session) {
		if log != nil {
			s.log = log
		}
	}
}

// WithRule sets the pricing rule used for price ordering.
func WithRule(rule pricing.Rule) Option {
	return func(s *Session) {
		s.normalizer = catalog.NewNormalizer(rule)
	}
}

// WithSortMode sets the initial sort mode.
func WithSortMode(mode domain.SortMode) Option {
	return func(s *Session) {
		s.mode = mode
	}
}

// New returns an empty session positioned before the first page.
func New(opts ...Option) *Session {
	s := &Session{
		id:         uuid.NewString(),
		log:        zap.NewNop(),
		normalizer: catalog.NewNormalizer(pricing.DefaultRule()),
	}
	for _, opt := range opts {
		opt(s)
	}
	if !s.mode.Known() {
		s.mode = domain.SortByRelevance
	}
	s.log = s.log.With(zap.String("session", s.id))
	return s
}

// ID returns the correlation ID attached to every log entry of the session.
func (s *Session) ID() string {
	return s.id
}

// Rule returns the pricing rule the session orders by.
func (s *Session) Rule() pricing.Rule {
	return s.normalizer.Rule()
}

// BeginFetch reserves the next page. It fails with ErrBusy while a fetch is
// outstanding and with ErrNoMorePages after the terminal page.
func (s *Session) BeginFetch() (Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy {
		return Ticket{}, ErrBusy
	}
	if s.done {
		return Ticket{}, ErrNoMorePages
	}

	s.busy = true
	s.seq++
	s.pending = s.seq
	t := Ticket{URL: s.nextURL, Generation: s.generation, Seq: s.seq}
	s.log.Debug("page fetch started", zap.String("url", t.URL), zap.Int("page", s.pages+1))
	return t, nil
}

// Current reports whether t is the fetch the session is waiting for.
func (s *Session) Current(t Ticket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current(t)
}

func (s *Session) current(t Ticket) bool {
	return s.busy && t.Generation == s.generation && t.Seq == s.pending
}

// Complete delivers the outcome of the fetch identified by t. A nil error
// appends page to the raw list; an empty NextURL marks the last page. It
// reports whether the page was applied. Results for stale tickets are
// dropped without touching state, so a late or repeated delivery can
// neither clear the busy flag nor reopen a finished catalog.
func (s *Session) Complete(t Ticket, page *domain.Page, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.current(t) {
		s.log.Debug("discarding superseded page",
			zap.String("url", t.URL),
			zap.Uint64("seq", t.Seq),
			zap.Uint64("pending", s.pending),
			zap.Bool("busy", s.busy))
		return false
	}

	s.busy = false
	s.pending = 0

	if err != nil {
		s.err = err
		s.log.Warn("page fetch failed", zap.String("url", t.URL), zap.Error(err))
		return false
	}
	s.err = nil

	var items []domain.CatalogItem
	var next string
	if page != nil {
		items = page.Items
		next = page.NextURL
	}

	s.raw = append(s.raw, items...)
	s.version++
	s.pages++
	s.nextURL = next
	s.done = next == ""

	before := s.stats
	s.stats = catalog.Inspect(s.raw)
	if n := s.stats.Malformed - before.Malformed; n > 0 {
		s.log.Warn("skipped malformed catalog records", zap.Int("count", n), zap.Int("page", s.pages))
	}
	if n := s.stats.Duplicates - before.Duplicates; n > 0 {
		s.log.Debug("discarded duplicate catalog records", zap.Int("count", n), zap.Int("page", s.pages))
	}

	s.log.Debug("page appended",
		zap.Int("page", s.pages),
		zap.Int("items", len(items)),
		zap.Int("unique", s.stats.Unique),
		zap.Bool("last", s.done))
	return true
}

// LoadMore fetches and appends the next page from source. It returns
// ErrBusy or ErrNoMorePages without calling source when load-more is not
// applicable.
func (s *Session) LoadMore(ctx context.Context, source domain.CatalogSource) error {
	t, err := s.BeginFetch()
	if err != nil {
		return err
	}

	page, err := source.FetchPage(ctx, t.URL)
	s.Complete(t, page, err)
	if err != nil {
		return fmt.Errorf("shop: load page: %w", err)
	}
	return nil
}

// LoadPages calls LoadMore up to n times, stopping early at the last page.
func (s *Session) LoadPages(ctx context.Context, source domain.CatalogSource, n int) error {
	for i := 0; i < n; i++ {
		err := s.LoadMore(ctx, source)
		if errors.Is(err, ErrNoMorePages) {
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Reset empties the session and invalidates any fetch in flight.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.raw = nil
	s.version++
	s.generation++
	s.nextURL = ""
	s.done = false
	s.busy = false
	s.pages = 0
	s.err = nil
	s.stats = catalog.Stats{}
	s.normalizer.Invalidate()
	s.log.Debug("session reset", zap.Uint64("generation", s.generation))
}

// View returns the deduplicated catalog ordered by the current sort mode.
func (s *Session) View() []domain.CatalogItem {
	s.mu.Lock()
	raw, version, mode := s.raw, s.version, s.mode
	s.mu.Unlock()

	// raw only grows by append, so the prefix captured here stays valid.
	return s.normalizer.Normalize(raw, version, mode)
}

// Mode returns the current sort mode.
func (s *Session) Mode() domain.SortMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SetMode changes the sort mode. Unknown modes fall back to relevance.
func (s *Session) SetMode(mode domain.SortMode) {
	if !mode.Known() {
		mode = domain.SortByRelevance
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
}

// CycleMode advances to the next sort mode and returns it.
func (s *Session) CycleMode() domain.SortMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = s.mode.Next()
	return s.mode
}

// Busy reports whether a fetch is outstanding.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// HasMore reports whether load-more would issue a fetch once idle.
func (s *Session) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.done
}

// Loaded reports whether at least one page has been applied.
func (s *Session) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pages > 0
}

// Err returns the error of the most recent fetch, or nil.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Stats returns raw, unique, duplicate and malformed counts.
func (s *Session) Stats() catalog.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Pages returns how many pages have been applied.
func (s *Session) Pages() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pages
}

// Raw returns a copy of the raw accumulated list, duplicates included.
func (s *Session) Raw() []domain.CatalogItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.raw)
}
