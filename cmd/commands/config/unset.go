package config

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/pokeshop/internal/config"

	"github.com/spf13/cobra"
)

// UnsetCommand returns the "config unset" command.
func UnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset <key>",
		Short: "Restore a configuration value to its default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := config.Lookup(args[0])
			if spec == nil {
				return fmt.Errorf("unknown configuration key %q (valid: %s)", args[0], strings.Join(config.KeyNames(), ", "))
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			spec.Set(cfg, "")
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s reset to default\n", spec.Name)
			return nil
		},
		SilenceUsage: true,
	}
}
