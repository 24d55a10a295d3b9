package cart

import (
	"errors"
	"fmt"
	"os"

	"nathanbeddoewebdev/pokeshop/internal/activity"
	"nathanbeddoewebdev/pokeshop/internal/cart"
	"nathanbeddoewebdev/pokeshop/internal/pricing"
	"nathanbeddoewebdev/pokeshop/internal/tui"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// interactive reports whether a confirmation prompt can be shown.
var interactive = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// ClearCommand returns the "cart clear" command.
func ClearCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Long: `Remove every line from the cart.

In a terminal you are asked to confirm. Scripts must pass --yes.`,
		Args:         cobra.NoArgs,
		RunE:         runClear,
		SilenceUsage: true,
		Annotations:  map[string]string{activity.Annotation: "cart clear"},
	}

	cmd.Flags().Bool("yes", false, "Skip the confirmation prompt")

	return cmd
}

func runClear(cmd *cobra.Command, args []string) error {
	repo, err := cart.Open()
	if err != nil {
		return err
	}
	defer repo.Close()

	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		if !interactive() {
			return errors.New("refusing to clear the cart without confirmation: pass --yes")
		}

		lines, err := repo.List()
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Your cart is already empty.")
			return nil
		}

		ok, err := tui.ConfirmClearCart(cart.Summarize(lines, pricing.DefaultRule()))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Cart left unchanged.")
			return nil
		}
	}

	if err := repo.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Cart cleared.")
	return nil
}
