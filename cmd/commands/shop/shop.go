package shop

import (
	"errors"
	"fmt"
	"os"

	"nathanbeddoewebdev/pokeshop/internal/activity"
	"nathanbeddoewebdev/pokeshop/internal/app"
	"nathanbeddoewebdev/pokeshop/internal/cart"
	"nathanbeddoewebdev/pokeshop/internal/favorites"
	"nathanbeddoewebdev/pokeshop/internal/shop"
	"nathanbeddoewebdev/pokeshop/internal/tui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// interactive reports whether the full-window TUI can run.
var interactive = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// NewCommand returns the "shop" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shop",
		Short: "Open the interactive storefront",
		Long: `Browse the catalog, sort by price, and manage favorites and the cart
in a full-window terminal UI.

Keys:
  j/k, arrows   navigate          s   cycle sort order
  v             grid or list      m   load more
  f             toggle favorite   c   add to / remove from cart
  enter         details           tab catalog, favorites, cart
  q             quit

Logs go to --log-file only, so they never draw over the screen.`,
		Args:         cobra.NoArgs,
		RunE:         runShop,
		SilenceUsage: true,
	}

	cmd.Flags().String("sort", "", "Initial sort order (default from config)")

	return cmd
}

func runShop(cmd *cobra.Command, args []string) error {
	if !interactive() {
		return errors.New("the shop needs an interactive terminal; use 'pokeshop catalog list' instead")
	}

	env, err := app.From(cmd)
	if err != nil {
		return err
	}
	source, err := env.Source(cmd, 0)
	if err != nil {
		return err
	}

	mode := env.Config.SortMode()
	if raw, _ := cmd.Flags().GetString("sort"); raw != "" {
		mode = parseSort(env.Logger, raw)
	}

	favs, err := favorites.Open()
	if err != nil {
		return err
	}
	defer favs.Close()

	lines, err := cart.Open()
	if err != nil {
		return err
	}
	defer lines.Close()

	history, err := activity.Open()
	if err != nil {
		return err
	}
	defer history.Close()

	session := shop.New(shop.WithLogger(env.Logger), shop.WithSortMode(mode))
	env.Logger.Info("shop opened",
		zap.String("session", session.ID()),
		zap.String("source", env.SourceName(cmd)),
		zap.String("sort", mode.String()))

	err = tui.RunShop(tui.ShopOptions{
		Context:    cmd.Context(),
		Source:     source,
		SourceName: source.GetDisplayName(),
		Session:    session,
		Favorites:  favs,
		Cart:       lines,
		Activity:   history,
		Layout:     env.Config.EffectiveViewMode(),
		Logger:     env.Logger,
	})
	if err != nil {
		return fmt.Errorf("shop failed: %w", err)
	}

	stats := session.Stats()
	env.Logger.Info("shop closed",
		zap.String("session", session.ID()),
		zap.Int("pages", session.Pages()),
		zap.Int("unique", stats.Unique),
		zap.Int("duplicates", stats.Duplicates),
		zap.Int("malformed", stats.Malformed))
	return nil
}
