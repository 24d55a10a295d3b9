package cart

import (
	"testing"

	"nathanbeddoewebdev/pokeshop/internal/domain"
	"nathanbeddoewebdev/pokeshop/internal/pricing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	rule := pricing.Rule{Base: 10, Divisor: 2}
	lines := []Line{
		{Item: domain.CatalogItem{ID: 1, Stats: domain.Stats{HP: 20}}, Qty: 2},
		{Item: domain.CatalogItem{ID: 2, Stats: domain.Stats{HP: 40}}, Qty: 1},
	}

	s := Summarize(lines, rule)

	assert.Len(t, s.Lines, 2)
	assert.Equal(t, 20, s.Lines[0].Unit)
	assert.Equal(t, 40, s.Lines[0].Subtotal)
	assert.Equal(t, 30, s.Lines[1].Unit)
	assert.Equal(t, 3, s.Units)
	assert.Equal(t, 70, s.Total)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, pricing.DefaultRule())

	assert.NotNil(t, s.Lines)
	assert.Zero(t, s.Total)
	assert.Zero(t, s.Units)
}
