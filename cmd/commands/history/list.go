package history

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"nathanbeddoewebdev/pokeshop/internal/activity"
	"nathanbeddoewebdev/pokeshop/internal/domain"
	"nathanbeddoewebdev/pokeshop/internal/util"

	"github.com/spf13/cobra"
)

// ListCommand returns the "history list" command.
func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent activity",
		Long: `List recent favorites and cart changes, newest first.

Examples:
  pokeshop history list
  pokeshop history list --limit 50
  pokeshop history list --item 25
  pokeshop history list -o json`,
		Args:         cobra.NoArgs,
		RunE:         runList,
		SilenceUsage: true,
	}

	cmd.Flags().Int("limit", 25, "Number of entries to display")
	cmd.Flags().String("item", "", "Only show entries for this Pokémon ID")
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		return fmt.Errorf("limit must be greater than 0")
	}

	output, _ := cmd.Flags().GetString("output")
	if output != "table" && output != "json" {
		return fmt.Errorf("unsupported output format %q", output)
	}

	itemFlag, _ := cmd.Flags().GetString("item")
	itemID := 0
	if itemFlag != "" {
		id, err := util.ParseItemID(itemFlag)
		if err != nil {
			return err
		}
		itemID = id
	}

	repo, err := activity.Open()
	if err != nil {
		return err
	}
	defer repo.Close()

	var entries []activity.Entry
	if itemID > 0 {
		entries, err = repo.ListByItem(itemID, limit)
	} else {
		entries, err = repo.List(limit)
	}
	if err != nil {
		return err
	}

	if output == "json" {
		if entries == nil {
			entries = []activity.Entry{}
		}
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No activity recorded.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tACTION\tFROM\tPOKÉMON\tQTY\tOUTCOME\tDETAIL")
	fmt.Fprintln(w, "----\t------\t----\t-------\t---\t-------\t------")
	for _, e := range entries {
		qty := "-"
		if e.Qty > 0 {
			qty = fmt.Sprintf("%d", e.Qty)
		}
		detail := e.Detail
		if detail == "" {
			detail = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.Timestamp.Local().Format(time.DateTime),
			e.Action,
			e.Origin,
			formatItem(e),
			qty,
			e.Outcome,
			detail,
		)
	}
	w.Flush()
	return nil
}

func formatItem(e activity.Entry) string {
	if e.ItemID == 0 {
		return "-"
	}
	item := domain.CatalogItem{ID: e.ItemID, Name: e.ItemName}
	if e.ItemName == "" {
		return item.DisplayID()
	}
	return item.DisplayID() + " " + item.DisplayName()
}
