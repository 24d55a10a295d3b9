package tui

import (
	"strings"

	"nathanbeddoewebdev/pokeshop/internal/config"
	"nathanbeddoewebdev/pokeshop/internal/domain"
	"nathanbeddoewebdev/pokeshop/internal/pricing"
	"nathanbeddoewebdev/pokeshop/internal/tui/components"
	"nathanbeddoewebdev/pokeshop/internal/tui/styles"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	// cardWidth and cardHeight include the rounded border.
	cardWidth  = 24
	cardHeight = 6

	loadingText = "Searching Pokémon..."
)

func (m shopModel) handleCatalogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	step := 1
	if m.layout == config.ViewGrid {
		step = m.gridColumns()
	}

	switch msg.String() {
	case "up", "k":
		if m.cursor-step >= 0 {
			m.cursor -= step
		}
	case "down", "j":
		m.cursor = clampCursor(m.cursor+step, len(m.items))
	case "left", "h":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right", "l":
		m.cursor = clampCursor(m.cursor+1, len(m.items))
	case "g":
		m.cursor = 0
	case "G":
		m.cursor = clampCursor(len(m.items)-1, len(m.items))

	case "s":
		mode := m.session.CycleMode()
		m = m.refreshItems()
		m = m.notify("Sorted by " + mode.Label())

	case "v":
		if m.layout == config.ViewGrid {
			m.layout = config.ViewList
		} else {
			m.layout = config.ViewGrid
		}

	case "m":
		cmd := m.loadMore()
		switch {
		case cmd != nil:
			m.status = ""
			return m, tea.Batch(m.spinner.Tick, cmd)
		case m.session.Busy():
			m = m.notify("Already loading")
		default:
			m = m.notify("End of catalog")
		}

	case "r":
		cmd := m.reload()
		m = m.refreshItems()
		m.status = ""
		if cmd != nil {
			return m, tea.Batch(m.spinner.Tick, cmd)
		}

	case "enter":
		if item, ok := m.selected(); ok {
			return m.showDetail(item), nil
		}
	case "f":
		if item, ok := m.selected(); ok {
			return m, m.toggleFavorite(item)
		}
	case "c":
		if item, ok := m.selected(); ok {
			return m, m.toggleCart(item)
		}
	}

	return m, nil
}

func (m shopModel) selected() (domain.CatalogItem, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return domain.CatalogItem{}, false
	}
	return m.items[m.cursor], true
}

func (m shopModel) gridColumns() int {
	return max((m.width-4)/cardWidth, 1)
}

func (m shopModel) price(item domain.CatalogItem) string {
	return pricing.FormatPrice(m.session.Rule().Price(item))
}

// --- Rendering ---

func (m shopModel) renderCatalog(height int) string {
	toolbar := m.renderToolbar()
	bodyH := max(height-lipgloss.Height(toolbar)-1, 1)

	var body string
	switch {
	case len(m.items) == 0 && m.session.Busy():
		body = lipgloss.Place(m.width, bodyH, lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render(m.spinner.View()+"  "+loadingText))
	case len(m.items) == 0 && m.session.Err() != nil:
		body = lipgloss.Place(m.width, bodyH, lipgloss.Center, lipgloss.Center,
			styles.ErrorText.Render("Failed to load the catalog. Press ")+
				styles.KeyStyle.Render("r")+
				styles.ErrorText.Render(" to retry."))
	case len(m.items) == 0:
		body = lipgloss.Place(m.width, bodyH, lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render("No Pokémon found."))
	case m.layout == config.ViewList:
		body = m.renderList(bodyH)
	default:
		body = m.renderGrid(bodyH)
	}

	return lipgloss.JoinVertical(lipgloss.Left, toolbar, "", body)
}

func (m shopModel) renderToolbar() string {
	parts := []string{
		styles.Label.Render("Sort ") + styles.AccentText.Render(m.session.Mode().Label()),
		styles.Label.Render("View ") + styles.AccentText.Render(m.layout),
	}

	switch {
	case m.session.Busy() && len(m.items) > 0:
		parts = append(parts, m.spinner.View()+" "+styles.MutedText.Render(loadingText))
	case m.session.HasMore() && m.session.Loaded():
		parts = append(parts, styles.MutedText.Render("more available: ")+styles.KeyStyle.Render("m"))
	case m.session.Loaded():
		parts = append(parts, styles.MutedText.Render("all pages loaded"))
	}

	return lipgloss.NewStyle().Padding(0, 2).Render(strings.Join(parts, styles.KeySepStyle.Render("  •  ")))
}

func (m shopModel) renderGrid(height int) string {
	cols := m.gridColumns()
	visibleRows := max(height/cardHeight, 1)

	cursorRow := m.cursor / cols
	startRow := 0
	if cursorRow >= visibleRows {
		startRow = cursorRow - visibleRows + 1
	}

	rows := make([]string, 0, visibleRows)
	for r := startRow; r < startRow+visibleRows; r++ {
		start := r * cols
		if start >= len(m.items) {
			break
		}
		end := min(start+cols, len(m.items))

		cards := make([]string, 0, cols)
		for i := start; i < end; i++ {
			cards = append(cards, m.renderCard(m.items[i], i == m.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	return lipgloss.NewStyle().Padding(0, 2).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m shopModel) renderCard(item domain.CatalogItem, selected bool) string {
	inner := cardWidth - 4

	top := styles.MutedText.Render(item.DisplayID())
	marks := styles.Heart(m.favorite[item.ID]) + " " + styles.CartMark(m.inCart[item.ID])
	gap := max(inner-lipgloss.Width(top)-lipgloss.Width(marks), 1)

	name := styles.Title.Render(ansi.Truncate(item.DisplayName(), inner, "…"))
	if !selected {
		name = styles.Value.Render(ansi.Truncate(item.DisplayName(), inner, "…"))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		top+strings.Repeat(" ", gap)+marks,
		name,
		ansi.Truncate(styles.TypeBadges(item.Types), inner, "…"),
		styles.PriceText.Render(m.price(item)),
	)

	style := styles.Card
	if selected {
		style = styles.CardActive
	}
	return style.Width(cardWidth - 2).Render(content)
}

func (m shopModel) renderList(height int) string {
	type column struct {
		title string
		width int
	}

	available := m.width - 4
	cols := []column{
		{title: "ID", width: 7},
		{title: "NAME", width: 16},
		{title: "TYPES", width: 18},
		{title: "PRICE", width: 14},
		{title: "FAV", width: 5},
		{title: "CART", width: 6},
	}
	total := 0
	for _, c := range cols {
		total += c.width
	}
	if available > total {
		cols[1].width += available - total
	}

	headerCells := make([]string, len(cols))
	for i, col := range cols {
		headerCells[i] = styles.TableHeader.Width(col.width).Render(col.title)
	}
	headerRow := lipgloss.JoinHorizontal(lipgloss.Top, headerCells...)
	sep := styles.MutedText.Render(strings.Repeat("─", max(available, 1)))

	visibleRows := max(height-2, 1)
	startIdx := 0
	if m.cursor >= visibleRows {
		startIdx = m.cursor - visibleRows + 1
	}
	endIdx := min(startIdx+visibleRows, len(m.items))

	rows := make([]string, 0, visibleRows)
	for i := startIdx; i < endIdx; i++ {
		item := m.items[i]
		cellStyle := styles.TableCell
		if i == m.cursor {
			cellStyle = styles.TableSelectedRow
		}

		cells := make([]string, 0, len(cols))
		for _, col := range cols {
			var value string
			switch col.title {
			case "ID":
				value = item.DisplayID()
			case "NAME":
				value = ansi.Truncate(item.DisplayName(), col.width-2, "…")
			case "TYPES":
				value = ansi.Truncate(strings.Join(item.Types, "/"), col.width-2, "…")
			case "PRICE":
				value = m.price(item)
			case "FAV":
				value = styles.Heart(m.favorite[item.ID])
			case "CART":
				value = styles.CartMark(m.inCart[item.ID])
			}
			cells = append(cells, cellStyle.Width(col.width).Render(value))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	table := lipgloss.JoinVertical(lipgloss.Left, append([]string{headerRow, sep}, rows...)...)
	return lipgloss.NewStyle().Padding(0, 2).Render(table)
}

func (m shopModel) renderDetail(height int) string {
	item := m.detail

	title := styles.Title.Render(item.DisplayName()) + "  " + styles.MutedText.Render(item.DisplayID())
	fields := lipgloss.JoinVertical(lipgloss.Left,
		styles.Label.Render("Types  ")+styles.TypeBadges(item.Types),
		styles.Label.Render("Price  ")+styles.PriceText.Render(m.price(item)),
		styles.Label.Render("Saved  ")+styles.Heart(m.favorite[item.ID])+" "+styles.CartMark(m.inCart[item.ID]),
	)
	if item.SpriteURL != "" {
		fields = lipgloss.JoinVertical(lipgloss.Left, fields,
			styles.Label.Render("Image  ")+styles.MutedText.Render(ansi.Truncate(item.SpriteURL, 48, "…")))
	}

	card := styles.Card.Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left,
		title, "", fields, "", components.StatBars(item.Stats, 40),
	))

	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, card)
}
