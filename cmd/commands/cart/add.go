package cart

import (
	"fmt"

	"nathanbeddoewebdev/pokeshop/internal/activity"
	"nathanbeddoewebdev/pokeshop/internal/cart"
	"nathanbeddoewebdev/pokeshop/internal/util"

	"github.com/spf13/cobra"
)

// AddCommand returns the "cart add" command.
func AddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <id>",
		Short: "Add a Pokémon to the cart",
		Long: `Add units of a Pokémon to the cart. Adding a Pokémon that is already
in the cart raises its quantity.

Examples:
  pokeshop cart add 25
  pokeshop cart add '#004' --qty 3`,
		Args:         cobra.ExactArgs(1),
		RunE:         runAdd,
		SilenceUsage: true,
		Annotations:  map[string]string{activity.Annotation: "cart add"},
	}

	cmd.Flags().Int("qty", 1, "Number of units to add")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	id, err := util.ParseItemID(args[0])
	if err != nil {
		return err
	}
	qty, _ := cmd.Flags().GetInt("qty")
	if qty < 1 {
		return fmt.Errorf("--qty must be at least 1, got %d", qty)
	}
	cmd.SetContext(activity.WithSubject(cmd.Context(), activity.Subject{ItemID: id, Qty: qty}))

	item, err := fetchItem(cmd, id)
	if err != nil {
		return err
	}
	cmd.SetContext(activity.WithSubject(cmd.Context(), activity.Subject{ItemName: item.Name}))

	repo, err := cart.Open()
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := repo.Add(*item, qty); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added %d × %s %s to the cart\n", qty, item.DisplayID(), item.DisplayName())
	return nil
}
