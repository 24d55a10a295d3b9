package config

import (
	"nathanbeddoewebdev/pokeshop/internal/config"

	"github.com/spf13/cobra"
)

// NewCommand returns the "config" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage pokeshop configuration",
		Long: "View and modify persistent pokeshop settings.\n\n" +
			"Configuration is stored at ~/.config/pokeshop/config.json.\n" +
			"POKESHOP_* environment variables (or a .env file) override stored\n" +
			"values for a single run.\n\n" +
			config.KeysHelp(),
	}

	cmd.AddCommand(SetCommand())
	cmd.AddCommand(GetCommand())
	cmd.AddCommand(UnsetCommand())

	return cmd
}
