package domain

import "context"

// CatalogSource is the pagination collaborator. It retrieves the catalog
// page by page; an empty url requests the first page.
type CatalogSource interface {
	GetDisplayName() string

	// FetchPage returns the items at url together with the continuation
	// cursor. Implementations own their retry policy.
	FetchPage(ctx context.Context, url string) (*Page, error)

	// GetItem returns a single item by identifier.
	GetItem(ctx context.Context, id int) (*CatalogItem, error)
}
