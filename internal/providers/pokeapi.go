package providers

import (
	"nathanbeddoewebdev/pokeshop/internal/domain"
	"nathanbeddoewebdev/pokeshop/internal/pokeapi"
)

// RegisterPokeAPI registers the PokeAPI source under "pokeapi".
func RegisterPokeAPI() {
	Register("pokeapi", func(opts Options) (domain.CatalogSource, error) {
		return pokeapi.New(
			pokeapi.WithBaseURL(opts.BaseURL),
			pokeapi.WithPageSize(opts.PageSize),
			pokeapi.WithCache(opts.Cache, opts.CacheTTL),
			pokeapi.WithLogger(opts.Logger),
		), nil
	})
}
