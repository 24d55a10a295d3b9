package config

import (
	"fmt"
	"slices"
	"strings"

	"nathanbeddoewebdev/pokeshop/internal/config"
	"nathanbeddoewebdev/pokeshop/internal/providers"

	"github.com/spf13/cobra"
)

// SetCommand returns the "config set" command.
func SetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: "Set a persistent configuration value.\n\n" +
			config.KeysHelp() +
			"\nExamples:\n" +
			"  pokeshop config set default-sort price-asc\n" +
			"  pokeshop config set page-size 40",
		Args:         cobra.ExactArgs(2),
		RunE:         runSet,
		SilenceUsage: true,
	}

	return cmd
}

// validators maps key names to checks that need more than the key's own
// Normalize, such as the provider registry.
var validators = map[string]func(value string) error{
	"source": validateSource,
}

func runSet(cmd *cobra.Command, args []string) error {
	spec := config.Lookup(args[0])
	if spec == nil {
		return fmt.Errorf("unknown configuration key %q (valid: %s)", args[0], strings.Join(config.KeyNames(), ", "))
	}

	value, err := spec.Normalize(args[1])
	if err != nil {
		return err
	}
	if validate, ok := validators[spec.Name]; ok {
		if err := validate(value); err != nil {
			return err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	spec.Set(cfg, value)
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s set to %q\n", spec.Name, value)
	return nil
}

// validateSource checks that the given name is a registered catalog source.
func validateSource(name string) error {
	known := providers.List()
	if slices.Contains(known, name) {
		return nil
	}
	return fmt.Errorf("unknown source %q (registered: %s)", name, strings.Join(known, ", "))
}
