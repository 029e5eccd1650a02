package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

func clampFraction(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 1 {
		return 1
	}
	return pct
}

func blocks(pct float64, width int) string {
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	return strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
}

// RenderProgress renders a progress bar like [████░░░░] 45%.
// The bar is colored based on percentage: green >66%, yellow 33-66%, red <33%.
func RenderProgress(pct float64, width int) string {
	pct = clampFraction(pct)
	if width < 2 {
		width = 2
	}

	var style = StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}

	pctStr := fmt.Sprintf("%3.0f%%", pct*100)
	return fmt.Sprintf("[%s] %s", style.Render(blocks(pct, width)), pctStr)
}

// RenderCompactBar renders a bare bar with no brackets or label, used for
// the per-day rows of the stats view.
func RenderCompactBar(pct float64, width int, dim bool) string {
	pct = clampFraction(pct)
	if width < 2 {
		width = 2
	}
	if dim {
		return blocks(pct, width)
	}
	return StylePurple.Render(blocks(pct, width))
}

// Ratio is n/total guarded against a zero total.
func Ratio(n, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(n) / float64(total)
}
