package catalog

import (
	"slices"
	"sync"

	"nathanbeddoewebdev/pokeshop/internal/domain"
	"nathanbeddoewebdev/pokeshop/internal/pricing"
)

// Normalizer memoizes View. The last result is cached keyed by the raw
// list version, its length, and the sort mode, so repeated renders with
// unchanged inputs skip the O(n log n) work.
type Normalizer struct {
	rule pricing.Rule

	mu       sync.Mutex
	valid    bool
	version  uint64
	length   int
	mode     domain.SortMode
	view     []domain.CatalogItem
	computes int
}

// NewNormalizer returns a Normalizer that prices items with rule.
func NewNormalizer(rule pricing.Rule) *Normalizer {
	return &Normalizer{rule: rule}
}

// Rule returns the pricing rule used for price ordering.
func (n *Normalizer) Rule() pricing.Rule {
	return n.rule
}

// Normalize returns the view of raw for mode. version must change whenever
// the owner appends to or replaces raw. The returned slice is a copy.
func (n *Normalizer) Normalize(raw []domain.CatalogItem, version uint64, mode domain.SortMode) []domain.CatalogItem {
	if !mode.Known() {
		mode = domain.SortByRelevance
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.valid || n.version != version || n.length != len(raw) || n.mode != mode {
		n.view = View(raw, mode, n.rule)
		n.version = version
		n.length = len(raw)
		n.mode = mode
		n.valid = true
		n.computes++
	}

	return slices.Clone(n.view)
}

// Computations returns how many times the view was actually rebuilt.
func (n *Normalizer) Computations() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.computes
}

// Invalidate drops the cached view.
func (n *Normalizer) Invalidate() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.valid = false
	n.view = nil
}
