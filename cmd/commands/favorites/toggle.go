package favorites

import (
	"fmt"

	"nathanbeddoewebdev/pokeshop/internal/activity"
	"nathanbeddoewebdev/pokeshop/internal/favorites"

	"github.com/spf13/cobra"
)

// ToggleCommand returns the "favorites toggle" command.
func ToggleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Add or remove a favorite",
		Long: `Mark a Pokémon as favorite, or unmark it if it already is one.

Examples:
  pokeshop favorites toggle 25
  pokeshop favorites toggle '#001'`,
		Args:         cobra.ExactArgs(1),
		RunE:         runToggle,
		SilenceUsage: true,
		Annotations:  map[string]string{activity.Annotation: "favorites toggle"},
	}

	return cmd
}

func runToggle(cmd *cobra.Command, args []string) error {
	item, err := fetchItem(cmd, args[0])
	if err != nil {
		return err
	}
	cmd.SetContext(activity.WithSubject(cmd.Context(), activity.Subject{ItemID: item.ID, ItemName: item.Name}))

	repo, err := favorites.Open()
	if err != nil {
		return err
	}
	defer repo.Close()

	added, err := repo.Toggle(*item)
	if err != nil {
		return err
	}

	if added {
		fmt.Fprintf(cmd.OutOrStdout(), "♥ %s %s added to favorites\n", item.DisplayID(), item.DisplayName())
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "♡ %s %s removed from favorites\n", item.DisplayID(), item.DisplayName())
	}
	return nil
}
