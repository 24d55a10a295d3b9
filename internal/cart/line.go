package cart

import (
	"time"

	"nathanbeddoewebdev/pokeshop/internal/domain"
	"nathanbeddoewebdev/pokeshop/internal/pricing"
)

// Line is one cart entry: an item snapshot and its quantity.
type Line struct {
	Item    domain.CatalogItem
	Qty     int
	AddedAt time.Time
}

// PricedLine is a Line with prices derived by a pricing rule.
type PricedLine struct {
	Line
	Unit     int
	Subtotal int
}

// Summary is the priced content of a cart.
type Summary struct {
	Lines []PricedLine
	Units int
	Total int
}

// Summarize prices every line with rule and totals them.
func Summarize(lines []Line, rule pricing.Rule) Summary {
	s := Summary{Lines: make([]PricedLine, 0, len(lines))}
	for _, l := range lines {
		pl := PricedLine{
			Line:     l,
			Unit:     rule.Price(l.Item),
			Subtotal: rule.Subtotal(l.Item, l.Qty),
		}
		s.Lines = append(s.Lines, pl)
		s.Units += max(l.Qty, 0)
		s.Total += pl.Subtotal
	}
	return s
}
