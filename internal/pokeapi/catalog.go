package pokeapi

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"nathanbeddoewebdev/pokeshop/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// FetchPage fetches the list page at url ("" for the first page) and
// resolves every entry to a full catalog item. Entries whose detail is
// missing or carries no ID are dropped and logged. NextURL is "" on the
// last page.
func (c *Client) FetchPage(ctx context.Context, url string) (*domain.Page, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		url = c.FirstPageURL()
	}

	var list listResponse
	if err := c.getJSON(ctx, url, &list); err != nil {
		return nil, fmt.Errorf("failed to fetch catalog page: %w", err)
	}

	details := make([]*domain.CatalogItem, len(list.Results))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(detailConcurrency)
	for i, entry := range list.Results {
		g.Go(func() error {
			item, err := c.fetchDetail(gctx, entry)
			switch {
			case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrInvalidItem):
				c.log.Warn("skipping malformed catalog entry",
					zap.String("name", entry.Name),
					zap.String("url", entry.URL),
					zap.Error(err))
				return nil
			case err != nil:
				return err
			}
			details[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to fetch catalog page: %w", err)
	}

	page := &domain.Page{Items: make([]domain.CatalogItem, 0, len(details))}
	for _, item := range details {
		if item != nil {
			page.Items = append(page.Items, *item)
		}
	}
	if list.Next != nil {
		page.NextURL = *list.Next
	}

	c.log.Debug("catalog page fetched",
		zap.String("url", url),
		zap.Int("entries", len(list.Results)),
		zap.Int("items", len(page.Items)),
		zap.Bool("last", page.NextURL == ""))
	return page, nil
}

// GetItem fetches a single item by ID.
func (c *Client) GetItem(ctx context.Context, id int) (*domain.CatalogItem, error) {
	if id <= 0 {
		return nil, fmt.Errorf("failed to get item %d: %w", id, domain.ErrInvalidItem)
	}

	ref := namedObject{
		Name: strconv.Itoa(id),
		URL:  c.baseURL + "/pokemon/" + strconv.Itoa(id) + "/",
	}
	item, err := c.fetchDetail(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to get item %d: %w", id, err)
	}
	return item, nil
}

// fetchDetail resolves one list entry, consulting the detail cache first.
func (c *Client) fetchDetail(ctx context.Context, ref namedObject) (*domain.CatalogItem, error) {
	key := detailCacheKey(ref)

	var cached domain.CatalogItem
	if hit, err := c.cache.Get(key, c.detailTTL, &cached); err == nil && hit && cached.Valid() {
		return &cached, nil
	}

	var resp pokemonResponse
	if err := c.getJSON(ctx, ref.URL, &resp); err != nil {
		return nil, err
	}

	item := resp.toItem()
	if !item.Valid() {
		return nil, fmt.Errorf("pokeapi: %s has no id: %w", ref.URL, domain.ErrInvalidItem)
	}

	if err := c.cache.Set(key, item); err != nil {
		c.log.Debug("detail cache write failed", zap.String("key", key), zap.Error(err))
	}
	return &item, nil
}

// detailCacheKey prefers the numeric ID embedded in the detail URL so that
// lookups by name and by ID share an entry.
func detailCacheKey(ref namedObject) string {
	trimmed := strings.TrimRight(ref.URL, "/")
	if i := strings.LastIndexByte(trimmed, '/'); i >= 0 {
		if id, err := strconv.Atoi(trimmed[i+1:]); err == nil && id > 0 {
			return "pokemon_" + strconv.Itoa(id)
		}
	}
	return "pokemon_" + strings.ToLower(ref.Name)
}
