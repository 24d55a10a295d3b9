package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"nathanbeddoewebdev/pokeshop/internal/domain"
	"nathanbeddoewebdev/pokeshop/internal/pricing"

	"github.com/spf13/cobra"
)

// pricedItem is the JSON shape of a catalog entry.
type pricedItem struct {
	domain.CatalogItem
	Price int `json:"price"`
}

func priceAll(items []domain.CatalogItem, rule pricing.Rule) []pricedItem {
	out := make([]pricedItem, len(items))
	for i, it := range items {
		out[i] = pricedItem{CatalogItem: it, Price: rule.Price(it)}
	}
	return out
}

// printJSON encodes v as indented JSON to the command's stdout.
func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printItemsTable prints one row per item.
func printItemsTable(cmd *cobra.Command, items []domain.CatalogItem, rule pricing.Rule) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPES\tPRICE")
	fmt.Fprintln(w, "--\t----\t-----\t-----")

	for _, it := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			it.DisplayID(),
			it.DisplayName(),
			strings.Join(it.Types, "/"),
			pricing.FormatPrice(rule.Price(it)),
		)
	}

	w.Flush()
}

// printItemDetail prints a vertical key-value table of one item.
func printItemDetail(cmd *cobra.Command, it *domain.CatalogItem, rule pricing.Rule) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "  ID:\t%s\n", it.DisplayID())
	fmt.Fprintf(w, "  Name:\t%s\n", it.DisplayName())
	if len(it.Types) > 0 {
		fmt.Fprintf(w, "  Types:\t%s\n", strings.Join(it.Types, ", "))
	}
	fmt.Fprintf(w, "  Price:\t%s\n", pricing.FormatPrice(rule.Price(*it)))
	fmt.Fprintf(w, "  HP:\t%d\n", it.Stats.HP)
	fmt.Fprintf(w, "  Attack:\t%d\n", it.Stats.Attack)
	fmt.Fprintf(w, "  Defense:\t%d\n", it.Stats.Defense)
	fmt.Fprintf(w, "  Sp. Attack:\t%d\n", it.Stats.SpecialAttack)
	fmt.Fprintf(w, "  Sp. Defense:\t%d\n", it.Stats.SpecialDefense)
	fmt.Fprintf(w, "  Speed:\t%d\n", it.Stats.Speed)
	fmt.Fprintf(w, "  Total:\t%d\n", it.Stats.Total())
	if it.SpriteURL != "" {
		fmt.Fprintf(w, "  Image:\t%s\n", it.SpriteURL)
	}

	w.Flush()
}
