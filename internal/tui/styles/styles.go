package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// --- Typography ---

var (
	// Title is the main header text style.
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(White)

	// Subtitle is used for secondary headings.
	Subtitle = lipgloss.NewStyle().
			Foreground(Gray)

	// Label is used for field names in detail views.
	Label = lipgloss.NewStyle().
		Foreground(Gray).
		Bold(true)

	// Value is used for field values in detail views.
	Value = lipgloss.NewStyle().
		Foreground(White)

	MutedText = lipgloss.NewStyle().
			Foreground(Muted)

	AccentText = lipgloss.NewStyle().
			Foreground(Blue)

	ErrorText = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)

	SuccessText = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	// PriceText renders formatted prices.
	PriceText = lipgloss.NewStyle().
			Foreground(Gold).
			Bold(true)
)

// --- Badges ---

// TypeStyle returns the badge style for a Pokémon type.
func TypeStyle(name string) lipgloss.Style {
	c, ok := typeColors[strings.ToLower(name)]
	if !ok {
		c = Gray
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}

// TypeBadges renders each type in its color, separated by slashes.
func TypeBadges(types []string) string {
	if len(types) == 0 {
		return MutedText.Render("-")
	}
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = TypeStyle(t).Render(t)
	}
	return strings.Join(parts, MutedText.Render("/"))
}

// Heart renders the favorite marker.
func Heart(on bool) string {
	if on {
		return lipgloss.NewStyle().Foreground(Pink).Render("♥")
	}
	return MutedText.Render("♡")
}

// CartMark renders the in-cart marker.
func CartMark(on bool) string {
	if on {
		return SuccessText.Render("✓")
	}
	return MutedText.Render("+")
}

// --- Layout components ---

var (
	Border = lipgloss.RoundedBorder()

	// Card is a rounded-border panel for content sections.
	Card = lipgloss.NewStyle().
		Border(Border).
		BorderForeground(DimGray).
		Padding(0, 1)

	// CardActive is a card with an accent border for the focused item.
	CardActive = lipgloss.NewStyle().
			Border(Border).
			BorderForeground(Blue).
			Padding(0, 1)
)

// --- Key binding hint styles ---

var (
	KeyStyle = lipgloss.NewStyle().
			Foreground(Blue).
			Bold(true)

	KeyDescStyle = lipgloss.NewStyle().
			Foreground(Muted)

	KeySepStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// FormatKeyBinding formats a single key binding for the footer.
func FormatKeyBinding(key, desc string) string {
	return KeyStyle.Render(key) + " " + KeyDescStyle.Render(desc)
}

// --- Table styles ---

var (
	TableHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(Gray).
			Padding(0, 1)

	TableCell = lipgloss.NewStyle().
			Foreground(White).
			Padding(0, 1)

	TableSelectedRow = lipgloss.NewStyle().
				Foreground(White).
				Background(DarkBlue).
				Bold(true).
				Padding(0, 1)
)
