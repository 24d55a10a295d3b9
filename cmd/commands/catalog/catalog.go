package catalog

import (
	"github.com/spf13/cobra"
)

// NewCommand returns the "catalog" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse the Pokémon catalog",
		Long: `List and inspect Pokémon from the configured catalog source.

Prices are derived from each Pokémon's base stats, so they are the same
in every listing, in the shop and in the cart.`,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(ShowCommand())

	return cmd
}
