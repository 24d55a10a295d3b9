// Package pokeapi is the catalog source backed by https://pokeapi.co.
//
// A catalog page is one call to the paginated /pokemon list endpoint plus
// one detail call per entry. Detail calls run concurrently, share a single
// rate limiter, are retried on transient failures, and are cached on disk.
package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"nathanbeddoewebdev/pokeshop/internal/cache"
	"nathanbeddoewebdev/pokeshop/internal/domain"
	"nathanbeddoewebdev/pokeshop/internal/retry"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the public PokeAPI v2 root.
	DefaultBaseURL = "https://pokeapi.co/api/v2"

	// DefaultPageSize matches the list endpoint's own default.
	DefaultPageSize = 20

	defaultTimeout      = 30 * time.Second
	defaultRate         = rate.Limit(20)
	defaultBurst        = 10
	detailConcurrency   = 8
	defaultDetailTTL    = 7 * 24 * time.Hour
	dreamWorldSpriteFmt = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/other/dream-world/%d.svg"
)

// Compile-time check that Client satisfies domain.CatalogSource.
var _ domain.CatalogSource = (*Client)(nil)

// Client implements domain.CatalogSource against PokeAPI.
type Client struct {
	baseURL   string
	pageSize  int
	client    *http.Client
	limiter   *rate.Limiter
	retry     retry.Config
	cache     *cache.Cache
	detailTTL time.Duration
	log       *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another PokeAPI-compatible root.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u = strings.TrimRight(strings.TrimSpace(u), "/"); u != "" {
			c.baseURL = u
		}
	}
}

// WithPageSize sets the number of items requested for the first page.
// Later pages follow the upstream "next" link unchanged.
func WithPageSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// WithRateLimit caps outgoing requests at r per second with the given burst.
func WithRateLimit(r rate.Limit, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(r, burst)
	}
}

// WithRetry sets the retry policy applied to every request.
func WithRetry(cfg retry.Config) Option {
	return func(c *Client) {
		c.retry = cfg
	}
}

// WithCache caches item details in store for ttl.
func WithCache(store *cache.Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = store
		if ttl > 0 {
			c.detailTTL = ttl
		}
	}
}

// WithLogger sets the logger for request and data-quality events.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// New returns a Client with production defaults.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		pageSize:  DefaultPageSize,
		client:    &http.Client{Timeout: defaultTimeout},
		limiter:   rate.NewLimiter(defaultRate, defaultBurst),
		retry:     retry.DefaultConfig(),
		detailTTL: defaultDetailTTL,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.Named("pokeapi")
	return c
}

// GetDisplayName returns the human-readable source name.
func (c *Client) GetDisplayName() string {
	return "PokeAPI"
}

// FirstPageURL returns the list URL requested when no cursor is given.
func (c *Client) FirstPageURL() string {
	return c.baseURL + "/pokemon?limit=" + strconv.Itoa(c.pageSize) + "&offset=0"
}

// StatusError is returned for non-2xx responses. It unwraps to
// domain.ErrNotFound for 404 and domain.ErrRateLimited for 429.
type StatusError struct {
	Code  int
	URL   string
	After time.Duration
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("pokeapi: %s returned %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

// HTTPStatus returns the response status code.
func (e *StatusError) HTTPStatus() int { return e.Code }

// RetryAfter returns the delay requested by the Retry-After header.
func (e *StatusError) RetryAfter() time.Duration { return e.After }

func (e *StatusError) Unwrap() error {
	switch e.Code {
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusTooManyRequests:
		return domain.ErrRateLimited
	}
	return nil
}

// getJSON fetches url and decodes the body into out, waiting on the rate
// limiter and retrying transient failures.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	cfg := c.retry
	cfg.OnRetry = func(attempt int, err error, delay time.Duration) {
		c.log.Debug("retrying request",
			zap.String("url", url),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err))
	}

	return retry.Do(ctx, cfg, retry.IsRetryable, func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
		return c.doGet(ctx, url, out)
	})
}

func (c *Client) doGet(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("pokeapi: failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("pokeapi: request failed: %w: %w", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	c.log.Debug("request",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, URL: url, After: parseRetryAfter(resp.Header.Get("Retry-After"))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("pokeapi: failed to decode response: %w", err)
	}
	return nil
}

// parseRetryAfter understands the delay-seconds form only.
func parseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
