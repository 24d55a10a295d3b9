package history

import "github.com/spf13/cobra"

// NewCommand returns the "history" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "View and manage favorites and cart activity",
		Long: "View a local history of favorites and cart changes made from the CLI\n" +
			"or the shop, and prune old entries.\n\n" +
			"History is stored locally in ~/.config/pokeshop/pokeshop.db.",
		SilenceUsage: true,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(PruneCommand())

	return cmd
}
