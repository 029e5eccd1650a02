package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/focusboard/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// ModeColor returns the accent color of a timer mode.
func ModeColor(m domain.Mode) lipgloss.Color {
	switch m {
	case domain.ModeShortBreak:
		return ColorGreen
	case domain.ModeLongBreak:
		return ColorBlue
	default:
		return ColorRed
	}
}

// ModeStyle returns a bold style in the mode's accent color.
func ModeStyle(m domain.Mode) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ModeColor(m)).Bold(true)
}

// LaneStyle colors a lane heading.
func LaneStyle(id domain.LaneID) lipgloss.Style {
	switch id {
	case domain.LaneInProgress:
		return StyleYellow.Bold(true)
	case domain.LaneDone:
		return StyleGreen.Bold(true)
	default:
		return StyleBlue.Bold(true)
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
