package tui

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/pokeshop/internal/cart"
	"nathanbeddoewebdev/pokeshop/internal/pricing"
	"nathanbeddoewebdev/pokeshop/internal/tui/styles"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// --- Favorites ---

func (m shopModel) handleFavoritesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.favCursor > 0 {
			m.favCursor--
		}
	case "down", "j":
		m.favCursor = clampCursor(m.favCursor+1, len(m.favList))
	}

	if len(m.favList) == 0 {
		return m, nil
	}
	item := m.favList[m.favCursor].Item

	switch msg.String() {
	case "enter":
		return m.showDetail(item), nil
	case "f", "x":
		return m, m.toggleFavorite(item)
	case "c":
		return m, m.toggleCart(item)
	}
	return m, nil
}

func (m shopModel) renderFavorites(height int) string {
	if len(m.favList) == 0 {
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render("No favorites yet. Press ")+
				styles.KeyStyle.Render("f")+
				styles.MutedText.Render(" on a Pokémon to save it."))
	}

	rows := make([]string, 0, len(m.favList))
	for i, f := range m.favList {
		rows = append(rows, m.basketRow(i == m.favCursor,
			f.Item.DisplayID(),
			f.Item.DisplayName(),
			styles.PriceText.Render(m.price(f.Item)),
			styles.CartMark(m.inCart[f.Item.ID]),
		))
	}

	title := styles.Title.Render(fmt.Sprintf("Favorites (%d)", len(m.favList)))
	return m.basketFrame(height, title, visibleWindow(rows, m.favCursor, height-3))
}

// --- Cart ---

func (m shopModel) handleCartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cartCursor > 0 {
			m.cartCursor--
		}
	case "down", "j":
		m.cartCursor = clampCursor(m.cartCursor+1, len(m.cartLines))
	}

	if len(m.cartLines) == 0 || m.cart == nil {
		return m, nil
	}
	line := m.cartLines[m.cartCursor]

	switch msg.String() {
	case "enter":
		return m.showDetail(line.Item), nil
	case "+", "=":
		return m, m.setQty(line.Item.ID, line.Qty+1)
	case "-":
		return m, m.setQty(line.Item.ID, line.Qty-1)
	case "x", "c":
		return m, m.toggleCart(line.Item)
	}
	return m, nil
}

func (m shopModel) renderCart(height int) string {
	if len(m.cartLines) == 0 {
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render("Your cart is empty. Press ")+
				styles.KeyStyle.Render("c")+
				styles.MutedText.Render(" on a Pokémon to add it."))
	}

	summary := cart.Summarize(m.cartLines, m.session.Rule())
	rows := make([]string, 0, len(summary.Lines))
	for i, l := range summary.Lines {
		rows = append(rows, m.basketRow(i == m.cartCursor,
			l.Item.DisplayID(),
			l.Item.DisplayName(),
			fmt.Sprintf("%s %s", styles.MutedText.Render(fmt.Sprintf("×%d", l.Qty)), styles.MutedText.Render(pricing.FormatPrice(l.Unit))),
			styles.PriceText.Render(pricing.FormatPrice(l.Subtotal)),
		))
	}

	title := styles.Title.Render(fmt.Sprintf("Cart (%d units)", summary.Units))
	total := styles.Label.Render("Total ") + styles.PriceText.Render(pricing.FormatPrice(summary.Total))
	body := lipgloss.JoinVertical(lipgloss.Left, visibleWindow(rows, m.cartCursor, height-5), "", total)
	return m.basketFrame(height, title, body)
}

// --- Shared ---

func (m shopModel) basketRow(selected bool, id, name, middle, right string) string {
	nameW := max(m.width-56, 12)
	prefix := "  "
	nameStyle := styles.MutedText
	if selected {
		prefix = styles.AccentText.Render("> ")
		nameStyle = styles.Value.Bold(true)
	}

	return prefix +
		styles.MutedText.Width(6).Render(id) +
		nameStyle.Width(nameW).Render(ansi.Truncate(name, nameW-1, "…")) +
		lipgloss.NewStyle().Width(22).Render(middle) +
		right
}

func (m shopModel) basketFrame(height int, title, body string) string {
	content := lipgloss.JoinVertical(lipgloss.Left, title, "", body)
	return lipgloss.NewStyle().Padding(0, 2).Height(height).Render(content)
}

// visibleWindow returns the slice of rows that keeps cursor on screen.
func visibleWindow(rows []string, cursor, height int) string {
	height = max(height, 1)
	start := 0
	if cursor >= height {
		start = cursor - height + 1
	}
	end := min(start+height, len(rows))
	return strings.Join(rows[start:end], "\n")
}
