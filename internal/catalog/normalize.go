// Package catalog turns the raw, possibly duplicated, multi-page item list
// into the ordered view the storefront displays.
//
// Every function here is pure: inputs are never mutated and each call
// returns a fresh slice.
package catalog

import (
	"cmp"
	"slices"

	"nathanbeddoewebdev/pokeshop/internal/domain"
	"nathanbeddoewebdev/pokeshop/internal/pricing"
)

// Dedup keeps the first occurrence of every identifier, in first-seen
// order. Later duplicates are discarded, not merged. Items without an
// identifier are dropped.
func Dedup(items []domain.CatalogItem) []domain.CatalogItem {
	seen := make(map[int]struct{}, len(items))
	result := make([]domain.CatalogItem, 0, len(items))
	for _, item := range items {
		if !item.Valid() {
			continue
		}
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		result = append(result, item)
	}
	return result
}

// Sort returns items reordered by mode using a stable sort, so items with
// equal keys keep their relative order. Unknown modes sort by relevance.
func Sort(items []domain.CatalogItem, mode domain.SortMode, rule pricing.Rule) []domain.CatalogItem {
	sorted := slices.Clone(items)
	if sorted == nil {
		sorted = []domain.CatalogItem{}
	}

	switch mode {
	case domain.SortByPriceAsc:
		slices.SortStableFunc(sorted, func(a, b domain.CatalogItem) int {
			return cmp.Compare(rule.Price(a), rule.Price(b))
		})
	case domain.SortByPriceDesc:
		slices.SortStableFunc(sorted, func(a, b domain.CatalogItem) int {
			return cmp.Compare(rule.Price(b), rule.Price(a))
		})
	default:
		slices.SortStableFunc(sorted, func(a, b domain.CatalogItem) int {
			return cmp.Compare(a.ID, b.ID)
		})
	}

	return sorted
}

// View is the full normalization pipeline: dedup, then sort.
func View(raw []domain.CatalogItem, mode domain.SortMode, rule pricing.Rule) []domain.CatalogItem {
	return Sort(Dedup(raw), mode, rule)
}

// Stats describes what normalization removed from a raw list.
type Stats struct {
	Raw        int
	Unique     int
	Duplicates int
	Malformed  int
}

// Inspect counts duplicates and malformed records in raw without
// building a view.
func Inspect(raw []domain.CatalogItem) Stats {
	st := Stats{Raw: len(raw)}
	seen := make(map[int]struct{}, len(raw))
	for _, item := range raw {
		if !item.Valid() {
			st.Malformed++
			continue
		}
		if _, ok := seen[item.ID]; ok {
			st.Duplicates++
			continue
		}
		seen[item.ID] = struct{}{}
	}
	st.Unique = len(seen)
	return st
}
