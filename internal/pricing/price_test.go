package pricing

import (
	"math"
	"strconv"
	"testing"

	"nathanbeddoewebdev/pokeshop/internal/domain"

	"github.com/stretchr/testify/assert"
)

func bulbasaur() domain.CatalogItem {
	return domain.CatalogItem{
		ID:   1,
		Name: "bulbasaur",
		Stats: domain.Stats{
			HP: 45, Attack: 49, Defense: 49,
			SpecialAttack: 65, SpecialDefense: 65, Speed: 45,
		},
	}
}

func TestDefaultRule_Price(t *testing.T) {
	// 318 total stats / 4 = 79, plus base 10.
	assert.Equal(t, 89, DefaultRule().Price(bulbasaur()))
}

func TestRule_PriceIsTotal(t *testing.T) {
	tests := []struct {
		name string
		rule Rule
		item domain.CatalogItem
		want int
	}{
		{"zero item", DefaultRule(), domain.CatalogItem{}, 10},
		{"zero divisor treated as one", Rule{Base: 0, Divisor: 0}, bulbasaur(), 318},
		{"negative divisor treated as one", Rule{Base: 1, Divisor: -3}, bulbasaur(), 319},
		{"negative base clamped", Rule{Base: -50, Divisor: 2}, bulbasaur(), 159},
		{"negative stats ignored", DefaultRule(), domain.CatalogItem{Stats: domain.Stats{HP: -100, Attack: 8}}, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.rule.Price(tt.item)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
		})
	}
}

func TestRule_PriceIsDeterministic(t *testing.T) {
	r := DefaultRule()
	item := bulbasaur()
	first := r.Price(item)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, r.Price(item))
	}
}

func TestRule_Subtotal(t *testing.T) {
	r := DefaultRule()
	assert.Equal(t, 267, r.Subtotal(bulbasaur(), 3))
	assert.Equal(t, 0, r.Subtotal(bulbasaur(), 0))
	assert.Equal(t, 0, r.Subtotal(bulbasaur(), -2))
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		amount int
		want   string
	}{
		{0, "$ 0.00"},
		{89, "$ 89.00"},
		{999, "$ 999.00"},
		{1000, "$ 1,000.00"},
		{1234567, "$ 1,234,567.00"},
		{-1500, "-$ 1,500.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPrice(tt.amount), "FormatPrice(%d)", tt.amount)
	}
}

func TestFormatPrice_IntBounds(t *testing.T) {
	if strconv.IntSize != 64 {
		t.Skip("expectations assume 64-bit int")
	}
	assert.Equal(t, "-$ 9,223,372,036,854,775,808.00", FormatPrice(math.MinInt))
	assert.Equal(t, "$ 9,223,372,036,854,775,807.00", FormatPrice(math.MaxInt))
}
