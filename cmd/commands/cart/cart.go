package cart

import (
	"errors"
	"fmt"

	"nathanbeddoewebdev/pokeshop/internal/app"
	"nathanbeddoewebdev/pokeshop/internal/domain"

	"github.com/spf13/cobra"
)

// NewCommand returns the "cart" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the shopping cart",
		Long: `Add Pokémon to the cart, change quantities and review the total.

The cart lives in the local pokeshop database. Each line keeps the
Pokémon as it was first added; prices are derived from its stats.`,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(AddCommand())
	cmd.AddCommand(RemoveCommand())
	cmd.AddCommand(ClearCommand())

	return cmd
}

func fetchItem(cmd *cobra.Command, id int) (*domain.CatalogItem, error) {
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
