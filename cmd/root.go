package cmd

import (
	"fmt"
	"os"
	"time"

	cartcmd "nathanbeddoewebdev/pokeshop/cmd/commands/cart"
	"nathanbeddoewebdev/pokeshop/cmd/commands/catalog"
	cfgcmd "nathanbeddoewebdev/pokeshop/cmd/commands/config"
	favcmd "nathanbeddoewebdev/pokeshop/cmd/commands/favorites"
	"nathanbeddoewebdev/pokeshop/cmd/commands/history"
	shopcmd "nathanbeddoewebdev/pokeshop/cmd/commands/shop"
	"nathanbeddoewebdev/pokeshop/internal/app"
	"nathanbeddoewebdev/pokeshop/internal/cache"
	"nathanbeddoewebdev/pokeshop/internal/config"
	"nathanbeddoewebdev/pokeshop/internal/logging"
	"nathanbeddoewebdev/pokeshop/internal/providers"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// rootCmd represents the base command when called without any subcommands.
func rootCmd() *cobra.Command {
	var (
		logOpts logging.Options
		env     *app.Env
	)

	var cmd = &cobra.Command{
		Use:   "pokeshop",
		Short: "A terminal storefront for the Pokémon catalog",
		Long: `pokeshop browses the Pokémon catalog from PokeAPI, prices every
Pokémon from its base stats, and keeps favorites and a shopping cart
in a local database.

Quick start:
  pokeshop shop                        # Interactive storefront
  pokeshop catalog list --sort price-asc
  pokeshop cart add 25 --qty 2         # Two Pikachu
  pokeshop cart list                   # Lines and total`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadEnvFile(""); err != nil {
				return err
			}
			cfg, err := config.LoadEffective()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			logger, err := logging.New(logOpts)
			if err != nil {
				return err
			}

			env = &app.Env{Config: cfg, Logger: logger}
			if noCache, _ := cmd.Flags().GetBool("no-cache"); !noCache {
				env.CacheDir = cache.DefaultDir()
			}

			logger.Debug("command started",
				zap.String("command", cmd.CommandPath()),
				zap.String("source", env.SourceName(cmd)))
			cmd.SetContext(app.WithEnv(cmd.Context(), env))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if env != nil {
				_ = env.Logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().String("source", "", "Catalog source to use (overrides config)")
	cmd.PersistentFlags().BoolVar(&logOpts.Verbose, "verbose", false, "Log debug output")
	cmd.PersistentFlags().StringVar(&logOpts.File, "log-file", "", "Write JSON logs to this file")
	cmd.PersistentFlags().Bool("no-cache", false, "Bypass the on-disk page and item caches")

	cmd.AddCommand(catalog.NewCommand())
	cmd.AddCommand(favcmd.NewCommand())
	cmd.AddCommand(cartcmd.NewCommand())
	cmd.AddCommand(cfgcmd.NewCommand())
	cmd.AddCommand(shopcmd.NewCommand())
	cmd.AddCommand(history.NewCommand())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	providers.RegisterPokeAPI()

	var root = rootCmd()
	start := time.Now()
	executed, err := root.ExecuteC()
	recordActivity(executed, start, err)
	if err != nil {
		os.Exit(1)
	}
}
