package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"nathanbeddoewebdev/pokeshop/internal/cart"
	"nathanbeddoewebdev/pokeshop/internal/pricing"

	"github.com/charmbracelet/huh"
)

// ErrAborted is returned when a user cancels an interactive prompt.
var ErrAborted = errors.New("aborted by user")

func runForm(accessible bool, groups ...*huh.Group) error {
	err := huh.NewForm(groups...).WithAccessible(accessible).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrAborted
	}
	return err
}

// ConfirmClearCart asks before emptying the cart. Declining or aborting
// returns false without an error.
func ConfirmClearCart(summary cart.Summary) (bool, error) {
	accessible := os.Getenv("ACCESSIBLE") != ""

	confirm := false
	note := huh.NewNote().
		Title("Your cart").
		Description(buildCartSummary(summary))
	confirmField := huh.NewConfirm().
		Title("Empty the cart?").
		Affirmative("Yes, empty it").
		Negative("Cancel").
		Value(&confirm)

	if err := runForm(accessible, huh.NewGroup(note, confirmField)); err != nil {
		if errors.Is(err, ErrAborted) {
			return false, nil
		}
		return false, err
	}
	return confirm, nil
}

// buildCartSummary renders one line per cart line plus the total.
func buildCartSummary(summary cart.Summary) string {
	var b strings.Builder
	for _, l := range summary.Lines {
		fmt.Fprintf(&b, "%s %s ×%d  %s\n",
			l.Item.DisplayID(), l.Item.DisplayName(), l.Qty, pricing.FormatPrice(l.Subtotal))
	}
	fmt.Fprintf(&b, "Total: %s", pricing.FormatPrice(summary.Total))
	return b.String()
}
