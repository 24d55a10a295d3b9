package favorites

import (
	"errors"
	"fmt"

	"nathanbeddoewebdev/pokeshop/internal/app"
	"nathanbeddoewebdev/pokeshop/internal/domain"
	"nathanbeddoewebdev/pokeshop/internal/util"

	"github.com/spf13/cobra"
)

// NewCommand returns the "favorites" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "Manage favorite Pokémon",
		Long: `Mark Pokémon as favorites and review them later.

Favorites are stored in the local pokeshop database together with a
snapshot of the Pokémon, so listing them does not hit the catalog source.`,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(ToggleCommand())
	cmd.AddCommand(RemoveCommand())

	return cmd
}

// fetchItem resolves the item named by arg through the configured source.
func fetchItem(cmd *cobra.Command, arg string) (*domain.CatalogItem, error) {
	id, err := util.ParseItemID(arg)
	if err != nil {
		return nil, err
	}

	env, err := app.From(cmd)
	if err != nil {
		return nil, err
	}
	source, err := env.Source(cmd, 0)
	if err != nil {
		return nil, err
	}

	item, err := source.GetItem(cmd.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("no Pokémon with ID %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch item: %w", err)
	}
	return item, nil
}
