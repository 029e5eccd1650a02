package cli

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// pushViewMsg pushes a modal view (a form) above the active tab.
type pushViewMsg struct {
	view View
}

// popViewMsg pops the current modal view.
type popViewMsg struct{}

// refreshViewMsg is broadcast to every view after a mutation so each one
// re-reads its data.
type refreshViewMsg struct{}

// noticeMsg flashes a line in the status bar until the next key press.
type noticeMsg struct {
	text string
}

// wizardCompleteMsg is sent when a wizard form completes or is cancelled.
// The appModel handles it atomically: pop the wizard view, then run nextCmd.
type wizardCompleteMsg struct {
	nextCmd tea.Cmd
}

// tickMsg is the once-per-second heartbeat that drives the timer engine.
// gen identifies the chain it belongs to; ticks from a superseded chain are
// dropped.
type tickMsg struct {
	at  time.Time
	gen int
}

// pushView returns a tea.Cmd that pushes a view onto the stack.
func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

// popView returns a tea.Cmd that pops the current view.
func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

func refresh() tea.Msg { return refreshViewMsg{} }

func notice(text string) tea.Cmd {
	return func() tea.Msg { return noticeMsg{text: text} }
}

// tickEvery schedules the next heartbeat of chain gen.
func tickEvery(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg{at: t, gen: gen} })
}
