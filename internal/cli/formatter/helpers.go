package formatter

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// ShortIDLen is how many leading id characters the CLI prints. Any unique
// prefix is accepted back by `task` subcommands.
const ShortIDLen = 8

// RenderBox draws content in a rounded border tinted with accent.
func RenderBox(accent lipgloss.Color, content string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(1, 3).
		Render(content)
}

// TruncID returns the dimmed short form of a task id.
func TruncID(id string) string {
	if len(id) > ShortIDLen {
		id = id[:ShortIDLen]
	}
	return StyleDim.Render(id)
}

// FormatMinutes renders a minute count as "45m", "2h" or "1h 30m".
func FormatMinutes(minutes int) string {
	h, m := max(minutes, 0)/60, max(minutes, 0)%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}
