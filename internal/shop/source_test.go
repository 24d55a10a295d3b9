package shop

import (
	"context"
	"sync/atomic"

	"nathanbeddoewebdev/pokeshop/internal/domain"
)

// blockingSource holds every FetchPage call until gate is closed.
type blockingSource struct {
	gate  chan struct{}
	page  *domain.Page
	count atomic.Int32
}

func (b *blockingSource) GetDisplayName() string { return "Blocking" }

func (b *blockingSource) FetchPage(ctx context.Context, _ string) (*domain.Page, error) {
	b.count.Add(1)
	select {
	case <-b.gate:
		return b.page, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (b *blockingSource) GetItem(context.Context, int) (*domain.CatalogItem, error) {
	return nil, domain.ErrNotFound
}

func (b *blockingSource) calls() int32 {
	return b.count.Load()
}
