package favorites

import (
	"errors"
	"fmt"

	"nathanbeddoewebdev/pokeshop/internal/activity"
	"nathanbeddoewebdev/pokeshop/internal/domain"
	"nathanbeddoewebdev/pokeshop/internal/favorites"
	"nathanbeddoewebdev/pokeshop/internal/util"

	"github.com/spf13/cobra"
)

// RemoveCommand returns the "favorites remove" command.
func RemoveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "remove <id>",
		Aliases:      []string{"rm"},
		Short:        "Remove a favorite",
		Long:         `Remove a Pokémon from favorites without contacting the catalog source.`,
		Args:         cobra.ExactArgs(1),
		RunE:         runRemove,
		SilenceUsage: true,
		Annotations:  map[string]string{activity.Annotation: "favorites remove"},
	}

	return cmd
}

func runRemove(cmd *cobra.Command, args []string) error {
	id, err := util.ParseItemID(args[0])
	if err != nil {
		return err
	}
	cmd.SetContext(activity.WithSubject(cmd.Context(), activity.Subject{ItemID: id}))

	repo, err := favorites.Open()
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := repo.Remove(id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%s is not a favorite", domain.CatalogItem{ID: id}.DisplayID())
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s removed from favorites\n", domain.CatalogItem{ID: id}.DisplayID())
	return nil
}
