package catalog

import (
	"errors"
	"fmt"

	"nathanbeddoewebdev/pokeshop/internal/app"
	"nathanbeddoewebdev/pokeshop/internal/domain"
	"nathanbeddoewebdev/pokeshop/internal/pricing"
	"nathanbeddoewebdev/pokeshop/internal/util"

	"github.com/spf13/cobra"
)

// ShowCommand returns the "catalog show" command.
func ShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show details for one Pokémon",
		Long: `Display the stats, types and price of a single Pokémon.

The ID may be written as 25, 025 or #025.

Examples:
  pokeshop catalog show 25
  pokeshop catalog show '#001' -o json`,
		Args:         cobra.ExactArgs(1),
		RunE:         runShow,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := util.ParseItemID(args[0])
	if err != nil {
		return err
	}

	env, err := app.From(cmd)
	if err != nil {
		return err
	}
	source, err := env.Source(cmd, 0)
	if err != nil {
		return err
	}

	item, err := source.GetItem(cmd.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("no Pokémon with ID %d", id)
	}
	if err != nil {
		return fmt.Errorf("failed to fetch item: %w", err)
	}

	rule := pricing.DefaultRule()
	output, _ := cmd.Flags().GetString("output")
	switch output {
	case "json":
		return printJSON(cmd, pricedItem{CatalogItem: *item, Price: rule.Price(*item)})
	default:
		printItemDetail(cmd, item, rule)
	}
	return nil
}
