package favorites

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"nathanbeddoewebdev/pokeshop/internal/favorites"
	"nathanbeddoewebdev/pokeshop/internal/pricing"

	"github.com/spf13/cobra"
)

// ListCommand returns the "favorites list" command.
func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "list",
		Short:        "List favorite Pokémon",
		Long:         `List favorites in the order they were added, with current prices.`,
		Args:         cobra.NoArgs,
		RunE:         runList,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

type favoriteJSON struct {
	ID      int       `json:"id"`
	Name    string    `json:"name"`
	Types   []string  `json:"types,omitempty"`
	Price   int       `json:"price"`
	AddedAt time.Time `json:"added_at"`
}

func runList(cmd *cobra.Command, args []string) error {
	repo, err := favorites.Open()
	if err != nil {
		return err
	}
	defer repo.Close()

	favs, err := repo.List()
	if err != nil {
		return err
	}

	rule := pricing.DefaultRule()
	output, _ := cmd.Flags().GetString("output")
	if output == "json" {
		out := make([]favoriteJSON, len(favs))
		for i, f := range favs {
			out[i] = favoriteJSON{
				ID:      f.Item.ID,
				Name:    f.Item.Name,
				Types:   f.Item.Types,
				Price:   rule.Price(f.Item),
				AddedAt: f.AddedAt,
			}
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if len(favs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No favorites yet.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tADDED")
	fmt.Fprintln(w, "--\t----\t-----\t-----")
	for _, f := range favs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			f.Item.DisplayID(),
			f.Item.DisplayName(),
			pricing.FormatPrice(rule.Price(f.Item)),
			f.AddedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	w.Flush()
	return nil
}
