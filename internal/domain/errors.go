package domain

import "errors"

// Sentinel errors for cross-source error classification.
// Sources wrap these so the CLI and TUI can handle error categories
// uniformly without knowing which API produced them.
//
//	return fmt.Errorf("failed to fetch page: %w", domain.ErrNetwork)
var (
	// ErrNotFound indicates the requested item does not exist.
	ErrNotFound = errors.New("not found")

	// ErrRateLimited indicates the source throttled the request.
	ErrRateLimited = errors.New("rate limited")

	// ErrNetwork indicates the request never produced a usable response.
	ErrNetwork = errors.New("network error")

	// ErrInvalidItem indicates a record without an identifier.
	ErrInvalidItem = errors.New("invalid catalog item")
)
