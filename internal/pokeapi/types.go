package pokeapi

import (
	"cmp"
	"fmt"
	"slices"

	"nathanbeddoewebdev/pokeshop/internal/domain"
)

// listResponse is the envelope of GET /pokemon.
type listResponse struct {
	Count    int           `json:"count"`
	Next     *string       `json:"next"`
	Previous *string       `json:"previous"`
	Results  []namedObject `json:"results"`
}

type namedObject struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type statSlot struct {
	BaseStat int         `json:"base_stat"`
	Stat     namedObject `json:"stat"`
}

type typeSlot struct {
	Slot int         `json:"slot"`
	Type namedObject `json:"type"`
}

// pokemonResponse is the subset of GET /pokemon/{id} the storefront uses.
type pokemonResponse struct {
	ID      int        `json:"id"`
	Name    string     `json:"name"`
	Stats   []statSlot `json:"stats"`
	Types   []typeSlot `json:"types"`
	Sprites struct {
		FrontDefault *string `json:"front_default"`
		Other        struct {
			DreamWorld struct {
				FrontDefault *string `json:"front_default"`
			} `json:"dream_world"`
		} `json:"other"`
	} `json:"sprites"`
}

// toItem converts a detail response into a catalog item. Unknown stat
// names are ignored.
func (p pokemonResponse) toItem() domain.CatalogItem {
	item := domain.CatalogItem{ID: p.ID, Name: p.Name}

	for _, s := range p.Stats {
		switch s.Stat.Name {
		case "hp":
			item.Stats.HP = s.BaseStat
		case "attack":
			item.Stats.Attack = s.BaseStat
		case "defense":
			item.Stats.Defense = s.BaseStat
		case "special-attack":
			item.Stats.SpecialAttack = s.BaseStat
		case "special-defense":
			item.Stats.SpecialDefense = s.BaseStat
		case "speed":
			item.Stats.Speed = s.BaseStat
		}
	}

	types := slices.Clone(p.Types)
	slices.SortStableFunc(types, func(a, b typeSlot) int {
		return cmp.Compare(a.Slot, b.Slot)
	})
	for _, t := range types {
		item.Types = append(item.Types, t.Type.Name)
	}

	item.SpriteURL = p.spriteURL()
	return item
}

func (p pokemonResponse) spriteURL() string {
	if u := p.Sprites.Other.DreamWorld.FrontDefault; u != nil && *u != "" {
		return *u
	}
	if u := p.Sprites.FrontDefault; u != nil && *u != "" {
		return *u
	}
	if p.ID > 0 {
		return fmt.Sprintf(dreamWorldSpriteFmt, p.ID)
	}
	return ""
}
