package cart

import (
	"errors"
	"fmt"

	"nathanbeddoewebdev/pokeshop/internal/activity"
	"nathanbeddoewebdev/pokeshop/internal/cart"
	"nathanbeddoewebdev/pokeshop/internal/domain"
	"nathanbeddoewebdev/pokeshop/internal/util"

	"github.com/spf13/cobra"
)

// RemoveCommand returns the "cart remove" command.
func RemoveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "remove <id>",
		Aliases:      []string{"rm"},
		Short:        "Remove a line from the cart",
		Args:         cobra.ExactArgs(1),
		RunE:         runRemove,
		SilenceUsage: true,
		Annotations:  map[string]string{activity.Annotation: "cart remove"},
	}

	return cmd
}

func runRemove(cmd *cobra.Command, args []string) error {
	id, err := util.ParseItemID(args[0])
	if err != nil {
		return err
	}
	cmd.SetContext(activity.WithSubject(cmd.Context(), activity.Subject{ItemID: id}))

	repo, err := cart.Open()
	if err != nil {
		return err
	}
	defer repo.Close()

	label := domain.CatalogItem{ID: id}.DisplayID()
	if err := repo.Remove(id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%s is not in the cart", label)
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s removed from the cart\n", label)
	return nil
}
