package cart

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"nathanbeddoewebdev/pokeshop/internal/cart"
	"nathanbeddoewebdev/pokeshop/internal/pricing"

	"github.com/spf13/cobra"
)

// ListCommand returns the "cart list" command.
func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "list",
		Short:        "Show cart lines and total",
		Args:         cobra.NoArgs,
		RunE:         runList,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

type lineJSON struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Qty      int    `json:"qty"`
	Unit     int    `json:"unit_price"`
	Subtotal int    `json:"subtotal"`
}

type summaryJSON struct {
	Lines []lineJSON `json:"lines"`
	Units int        `json:"units"`
	Total int        `json:"total"`
}

func runList(cmd *cobra.Command, args []string) error {
	repo, err := cart.Open()
	if err != nil {
		return err
	}
	defer repo.Close()

	lines, err := repo.List()
	if err != nil {
		return err
	}
	summary := cart.Summarize(lines, pricing.DefaultRule())

	output, _ := cmd.Flags().GetString("output")
	if output == "json" {
		out := summaryJSON{Lines: make([]lineJSON, len(summary.Lines)), Units: summary.Units, Total: summary.Total}
		for i, l := range summary.Lines {
			out.Lines[i] = lineJSON{ID: l.Item.ID, Name: l.Item.Name, Qty: l.Qty, Unit: l.Unit, Subtotal: l.Subtotal}
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if len(summary.Lines) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Your cart is empty.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tQTY\tUNIT\tSUBTOTAL")
	fmt.Fprintln(w, "--\t----\t---\t----\t--------")
	for _, l := range summary.Lines {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			l.Item.DisplayID(),
			l.Item.DisplayName(),
			l.Qty,
			pricing.FormatPrice(l.Unit),
			pricing.FormatPrice(l.Subtotal),
		)
	}
	w.Flush()

	fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %s (%d units)\n", pricing.FormatPrice(summary.Total), summary.Units)
	return nil
}
