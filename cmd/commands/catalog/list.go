package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"

	"nathanbeddoewebdev/pokeshop/internal/app"
	"nathanbeddoewebdev/pokeshop/internal/config"
	"nathanbeddoewebdev/pokeshop/internal/domain"
	"nathanbeddoewebdev/pokeshop/internal/shop"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// ListCommand returns the "catalog list" command.
func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List Pokémon with prices",
		Long: `Load one or more catalog pages and print the deduplicated, sorted list.

Sort modes: relevance (by ID), price-asc, price-desc. An unknown mode
falls back to relevance.

Examples:
  pokeshop catalog list
  pokeshop catalog list --pages 3 --sort price-desc
  pokeshop catalog list -o json`,
		Args:         cobra.NoArgs,
		RunE:         runList,
		SilenceUsage: true,
	}

	cmd.Flags().String("sort", "", "Sort order: relevance, price-asc or price-desc (default from config)")
	cmd.Flags().Int("pages", 1, "Number of pages to load")
	cmd.Flags().Int("page-size", 0, "Items per page (default from config)")
	cmd.Flags().Bool("refresh", false, "Ignore cached pages and fetch again")
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	env, err := app.From(cmd)
	if err != nil {
		return err
	}

	mode := env.Config.SortMode()
	if cmd.Flags().Changed("sort") {
		raw, _ := cmd.Flags().GetString("sort")
		parsed, ok := domain.LookupSortMode(raw)
		if !ok {
			env.Logger.Warn("unknown sort mode, using relevance", zap.String("sort", raw))
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: unknown sort mode %q, using relevance\n", raw)
		}
		mode = parsed
	}

	pages, _ := cmd.Flags().GetInt("pages")
	if pages < 1 {
		return fmt.Errorf("--pages must be at least 1, got %d", pages)
	}

	pageSize, _ := cmd.Flags().GetInt("page-size")
	if cmd.Flags().Changed("page-size") && (pageSize < config.MinPageSize || pageSize > config.MaxPageSize) {
		return fmt.Errorf("--page-size must be between %d and %d, got %d", config.MinPageSize, config.MaxPageSize, pageSize)
	}

	source, err := env.Source(cmd, pageSize)
	if err != nil {
		return err
	}
	if refresh, _ := cmd.Flags().GetBool("refresh"); refresh {
		if err := source.Refresh(); err != nil {
			env.Logger.Warn("failed to clear cached pages", zap.Error(err))
		}
	}

	session := shop.New(shop.WithLogger(env.Logger), shop.WithSortMode(mode))
	output, _ := cmd.Flags().GetString("output")

	load := func(ctx context.Context) error {
		return session.LoadPages(ctx, source, pages)
	}
	if output != "json" && term.IsTerminal(int(os.Stdout.Fd())) {
		accessible := os.Getenv("ACCESSIBLE") != ""
		err = spinner.New().
			Title("Searching Pokémon...").
			Accessible(accessible).
			Output(os.Stderr).
			ActionWithErr(load).
			Run()
		if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, context.Canceled) {
			return nil
		}
	} else {
		err = load(cmd.Context())
	}
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	items := session.View()
	rule := session.Rule()

	if output == "json" {
		return printJSON(cmd, priceAll(items, rule))
	}

	if len(items) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No Pokémon found.")
		return nil
	}

	printItemsTable(cmd, items, rule)

	fmt.Fprintf(cmd.OutOrStdout(), "\n%d available, sorted by %s", len(items), mode.Label())
	if session.HasMore() {
		fmt.Fprintf(cmd.OutOrStdout(), " (more with --pages %d)", session.Pages()+1)
	}
	fmt.Fprintln(cmd.OutOrStdout())

	if stats := session.Stats(); stats.Malformed > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "Skipped %d malformed record(s)\n", stats.Malformed)
	}
	return nil
}
