package domain

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Stats holds the power attributes of a catalog item. Prices are derived
// from these values and never stored.
type Stats struct {
	HP             int `json:"hp"`
	Attack         int `json:"attack"`
	Defense        int `json:"defense"`
	SpecialAttack  int `json:"special_attack"`
	SpecialDefense int `json:"special_defense"`
	Speed          int `json:"speed"`
}

// Total returns the sum of all power attributes, ignoring negative values.
func (s Stats) Total() int {
	total := 0
	for _, v := range []int{s.HP, s.Attack, s.Defense, s.SpecialAttack, s.SpecialDefense, s.Speed} {
		if v > 0 {
			total += v
		}
	}
	return total
}

// CatalogItem is one sellable Pokémon.
//
// ID is the stable key. Upstream pagination may repeat entries, so
// uniqueness is restored by the catalog normalizer, not assumed here.
type CatalogItem struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Stats     Stats    `json:"stats"`
	Types     []string `json:"types,omitempty"`
	SpriteURL string   `json:"sprite_url"`
}

// Valid reports whether the item carries an identifier.
func (c CatalogItem) Valid() bool {
	return c.ID > 0
}

// DisplayID returns the zero-padded catalog number, e.g. "#007".
func (c CatalogItem) DisplayID() string {
	id := strconv.Itoa(c.ID)
	if len(id) < 3 {
		id = strings.Repeat("0", 3-len(id)) + id
	}
	return "#" + id
}

// DisplayName returns the name with its first letter upper-cased.
func (c CatalogItem) DisplayName() string {
	r, size := utf8.DecodeRuneInString(c.Name)
	if size == 0 {
		return ""
	}
	return string(unicode.ToUpper(r)) + c.Name[size:]
}

// Page is one batch delivered by a CatalogSource. An empty NextURL means
// there are no more pages; it is a terminal signal, not an error.
type Page struct {
	Items   []CatalogItem `json:"items"`
	NextURL string        `json:"next_url,omitempty"`
}

// HasMore reports whether another page can be requested.
func (p *Page) HasMore() bool {
	return p != nil && p.NextURL != ""
}

