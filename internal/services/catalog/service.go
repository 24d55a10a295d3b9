// Package catalog provides the catalog service layer.
//
// The Service type wraps a domain.CatalogSource and adds input
// normalisation, validation, and stale-while-revalidate page caching
// before delegating to the source. The shop session and CLI commands
// fetch pages through a Service rather than calling the source directly.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"nathanbeddoewebdev/pokeshop/internal/domain"
	"nathanbeddoewebdev/pokeshop/internal/swrcache"
	"nathanbeddoewebdev/pokeshop/internal/util"
)

// Compile-time check that Service can stand in for its source.
var _ domain.CatalogSource = (*Service)(nil)

// firstPager is implemented by sources whose first page URL depends on
// their configuration (base URL, page size).
type firstPager interface {
	FirstPageURL() string
}

// Service is the catalog business logic layer.
type Service struct {
	source domain.CatalogSource
	cache  *swrcache.Cache
}

// Option configures a Service.
type Option func(*Service)

// WithCache enables stale-while-revalidate caching for page reads.
func WithCache(cache *swrcache.Cache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

// New returns a Service backed by the given source.
func New(source domain.CatalogSource, opts ...Option) *Service {
	svc := &Service{source: source}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// GetDisplayName returns the underlying source's name.
func (s *Service) GetDisplayName() string {
	return s.source.GetDisplayName()
}

// FetchPage returns the page at url ("" for the first page).
func (s *Service) FetchPage(ctx context.Context, url string) (*domain.Page, error) {
	url = strings.TrimSpace(url)
	if s.cache == nil {
		return s.source.FetchPage(ctx, url)
	}

	return swrcache.GetOrFetch(s.cache, ctx, s.pageCacheKey(url), func(ctx context.Context) (*domain.Page, error) {
		return s.source.FetchPage(ctx, url)
	})
}

// GetItem returns a single item by ID.
func (s *Service) GetItem(ctx context.Context, id int) (*domain.CatalogItem, error) {
	if id <= 0 {
		return nil, fmt.Errorf("item ID must be positive, got %d: %w", id, domain.ErrInvalidItem)
	}
	return s.source.GetItem(ctx, id)
}

// Refresh drops every cached page of the source.
func (s *Service) Refresh() error {
	if s.cache == nil {
		return nil
	}
	return s.cache.InvalidatePrefix(cacheKey(s.source.GetDisplayName(), "page"))
}

// pageCacheKey keys the first page on the source's resolved first page URL so
// sources configured with different page sizes never share an entry.
func (s *Service) pageCacheKey(url string) string {
	if url == "" {
		if fp, ok := s.source.(firstPager); ok {
			url = fp.FirstPageURL()
		}
	}
	return pageKey(s.source.GetDisplayName(), url)
}

func pageKey(source, url string) string {
	if url == "" {
		url = "first"
	}
	return cacheKey(source, "page", url)
}

func cacheKey(source string, parts ...string) string {
	values := make([]string, 0, len(parts)+1)
	if source = util.NormalizeKey(source); source != "" {
		values = append(values, source)
	}
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	if len(values) == 0 {
		return "catalog"
	}
	return strings.Join(values, "_")
}
