// Package pricing owns the rule that turns an item's power attributes into
// a price. Every surface that shows or orders by price goes through
// Rule.Price so the displayed value and the sort order cannot drift.
package pricing

import "nathanbeddoewebdev/pokeshop/internal/domain"

const (
	defaultBase    = 10
	defaultDivisor = 4
)

// Rule is the integrated pricing rule: Base + total stats / Divisor.
type Rule struct {
	Base    int `json:"base"`
	Divisor int `json:"divisor"`
}

// DefaultRule returns the storefront's standard pricing rule.
func DefaultRule() Rule {
	return Rule{Base: defaultBase, Divisor: defaultDivisor}
}

// Price returns the derived price of item. It is total and deterministic:
// any item, including the zero value, yields a non-negative integer.
func (r Rule) Price(item domain.CatalogItem) int {
	divisor := r.Divisor
	if divisor <= 0 {
		divisor = 1
	}
	base := r.Base
	if base < 0 {
		base = 0
	}
	return base + item.Stats.Total()/divisor
}

// Subtotal returns the price of qty units of item. Non-positive
// quantities cost nothing.
func (r Rule) Subtotal(item domain.CatalogItem, qty int) int {
	if qty <= 0 {
		return 0
	}
	return r.Price(item) * qty
}
