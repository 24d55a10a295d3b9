package components

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/pokeshop/internal/domain"
	"nathanbeddoewebdev/pokeshop/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// statCeiling is the value drawn as a full bar. Base stats above it are
// clamped.
const statCeiling = 160

// StatBars renders one horizontal bar per base stat.
//
//	HP        45 ███████░░░░░░░░░░░░░
//	Attack    49 ███████░░░░░░░░░░░░░
func StatBars(stats domain.Stats, width int) string {
	rows := []struct {
		label string
		value int
	}{
		{"HP", stats.HP},
		{"Attack", stats.Attack},
		{"Defense", stats.Defense},
		{"Sp. Atk", stats.SpecialAttack},
		{"Sp. Def", stats.SpecialDefense},
		{"Speed", stats.Speed},
	}

	// "Sp. Def" + gap + three-digit value + gap.
	barWidth := max(width-14, 10)

	lines := make([]string, 0, len(rows)+1)
	for _, r := range rows {
		lines = append(lines, styles.Label.Width(9).Render(r.label)+
			fmt.Sprintf("%3d ", r.value)+
			bar(r.value, barWidth))
	}
	lines = append(lines, styles.MutedText.Render(fmt.Sprintf("Total %d", stats.Total())))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func bar(value, width int) string {
	filled := min(max(value, 0), statCeiling) * width / statCeiling
	color := styles.Red
	switch {
	case value >= 90:
		color = styles.Green
	case value >= 60:
		color = styles.Yellow
	}
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		styles.MutedText.Render(strings.Repeat("░", width-filled))
}
