package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/focusboard/internal/domain"
)

// ModeTabs renders the three mode labels with the active one highlighted.
func ModeTabs(active domain.Mode) string {
	tabs := make([]string, 0, len(domain.Modes))
	for i, m := range domain.Modes {
		label := fmt.Sprintf("%d %s", i+1, m.Label())
		if m == active {
			tabs = append(tabs, ModeStyle(m).Underline(true).Render(label))
			continue
		}
		tabs = append(tabs, Dim(label))
	}
	return strings.Join(tabs, "   ")
}

// RunState renders the running/paused marker.
func RunState(running bool) string {
	if running {
		return StyleGreen.Render("● running")
	}
	return StyleYellow.Render("❚❚ paused")
}

// SessionCount renders the completed focus session counter.
func SessionCount(n int) string {
	unit := "sessions"
	if n == 1 {
		unit = "session"
	}
	next := domain.LongBreakInterval - n%domain.LongBreakInterval
	return fmt.Sprintf("%d %s completed", n, unit) + Dim(fmt.Sprintf(" · long break in %d", next))
}

// TimerLine is the single status line printed by `timer run`.
func TimerLine(st domain.TimerState) string {
	return fmt.Sprintf("%s %s %s",
		ModeStyle(st.Mode).Render(st.Mode.Label()),
		Bold(domain.FormatClock(st.SecondsRemaining)),
		RunState(st.IsRunning))
}

// FormatSettings renders the durations for `timer settings`.
func FormatSettings(s domain.TimerSettings) string {
	rows := make([][]string, 0, len(domain.Modes))
	for _, m := range domain.Modes {
		rows = append(rows, []string{m.Label(), fmt.Sprintf("%d min", s.Minutes(m))})
	}
	return RenderTable([]string{"MODE", "DURATION"}, rows, 1)
}

// CompletionTitle is the heading of the message shown after a session ends.
func CompletionTitle(from domain.Mode) string {
	if from == domain.ModeFocus {
		return "Great job!"
	}
	return "Break time is over!"
}

// CompletionBody is the text under CompletionTitle.
func CompletionBody(from domain.Mode) string {
	if from == domain.ModeFocus {
		return "You completed a focused work session. Take a well-deserved break!"
	}
	return "Ready to get back to work? Your next focused session awaits!"
}
