package domain

import "strings"

// SortMode is the user-selected ordering strategy for the catalog view.
type SortMode int

const (
	// SortByRelevance orders by ascending identifier. It is the default.
	SortByRelevance SortMode = iota
	// SortByPriceAsc orders by ascending derived price.
	SortByPriceAsc
	// SortByPriceDesc orders by descending derived price.
	SortByPriceDesc
)

// SortModes lists every mode in toggle order.
var SortModes = []SortMode{SortByRelevance, SortByPriceAsc, SortByPriceDesc}

// String returns the CLI-facing name of the mode.
func (m SortMode) String() string {
	switch m {
	case SortByPriceAsc:
		return "price-asc"
	case SortByPriceDesc:
		return "price-desc"
	default:
		return "relevance"
	}
}

// Label returns a human-readable description for headers and toolbars.
func (m SortMode) Label() string {
	switch m {
	case SortByPriceAsc:
		return "Lowest price"
	case SortByPriceDesc:
		return "Highest price"
	default:
		return "Relevance (ID)"
	}
}

// Known reports whether m is one of the declared modes.
func (m SortMode) Known() bool {
	return m >= SortByRelevance && m <= SortByPriceDesc
}

// Next returns the following mode in toggle order, wrapping around.
func (m SortMode) Next() SortMode {
	if !m.Known() {
		return SortByRelevance
	}
	return SortModes[(int(m)+1)%len(SortModes)]
}

// ParseSortMode maps a user-supplied name to a SortMode. Unknown values fall
// back to SortByRelevance so the catalog always stays usable.
func ParseSortMode(s string) SortMode {
	mode, _ := LookupSortMode(s)
	return mode
}

// LookupSortMode is like ParseSortMode but also reports whether the name
// was recognised. Callers that validate input (config set) use this.
func LookupSortMode(s string) (SortMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "relevance", "relevante", "id", "":
		return SortByRelevance, true
	case "price-asc", "asc", "menor", "low":
		return SortByPriceAsc, true
	case "price-desc", "desc", "mayor", "high":
		return SortByPriceDesc, true
	}
	return SortByRelevance, false
}
