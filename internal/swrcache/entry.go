package swrcache

import "time"

// Entry is the on-disk envelope: the cached value and when it was fetched.
type Entry[T any] struct {
	Data      T         `json:"data"`
	FetchedAt time.Time `json:"fetched_at"`
}
