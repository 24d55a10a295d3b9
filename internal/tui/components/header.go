// Package components provides render-only helpers shared by the pokeshop
// TUI models.
package components

import (
	"strings"

	"nathanbeddoewebdev/pokeshop/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Header renders the application header bar.
//
//	┌──────────────────────────────────────────┐
//	│  pokeshop > catalog       20 Disponibles │
//	└──────────────────────────────────────────┘
func Header(width int, breadcrumb string, right string) string {
	if width < 10 {
		return ""
	}

	left := styles.Title.Foreground(styles.Gold).Render("pokeshop")
	if breadcrumb != "" {
		left += styles.MutedText.Render(" > ") + styles.Title.Render(breadcrumb)
	}
	if right != "" {
		right = styles.Subtitle.Render(right)
	}

	innerWidth := width - 4
	gap := max(innerWidth-lipgloss.Width(left)-lipgloss.Width(right), 1)

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderBottom(true).
		BorderForeground(styles.DimGray).
		Render(left + strings.Repeat(" ", gap) + right)
}
