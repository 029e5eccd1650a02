package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const tableGap = "  "

// RenderTable lays rows out under underlined headers. Cell widths are
// measured with lipgloss so styled cells line up. Columns listed in
// rightAligned are padded on the left, the rest on the right; the last
// column is never padded unless it is right-aligned.
func RenderTable(headers []string, rows [][]string, rightAligned ...int) string {
	if len(headers) == 0 {
		return ""
	}
	right := make(map[int]bool, len(rightAligned))
	for _, c := range rightAligned {
		right[c] = true
	}

	widths := make([]int, len(headers))
	measure := func(cells []string) {
		for i := range widths {
			if i < len(cells) {
				widths[i] = max(widths[i], lipgloss.Width(cells[i]))
			}
		}
	}
	measure(headers)
	for _, r := range rows {
		measure(r)
	}

	line := func(cells []string, style func(string) string) string {
		parts := make([]string, len(widths))
		for i, w := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := strings.Repeat(" ", max(w-lipgloss.Width(cell), 0))
			cell = style(cell)
			switch {
			case right[i]:
				parts[i] = pad + cell
			case i == len(widths)-1:
				parts[i] = cell
			default:
				parts[i] = cell + pad
			}
		}
		return strings.Join(parts, tableGap)
	}

	var sb strings.Builder
	sb.WriteString(line(headers, func(s string) string { return StyleHeader.Render(s) }))
	sb.WriteString("\n")
	rules := make([]string, len(widths))
	for i, w := range widths {
		rules[i] = StyleDim.Render(strings.Repeat("─", w))
	}
	sb.WriteString(strings.Join(rules, tableGap))
	sb.WriteString("\n")
	for _, r := range rows {
		sb.WriteString(line(r, func(s string) string { return s }))
		sb.WriteString("\n")
	}
	return sb.String()
}
