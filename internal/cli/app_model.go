package cli

import (
	"strings"

	"github.com/alexanderramin/focusboard/internal/cli/formatter"
	"github.com/alexanderramin/focusboard/internal/domain"
	"github.com/alexanderramin/focusboard/internal/timer"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type globalKeyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Quit     key.Binding
	Continue key.Binding
}

var globalKeys = globalKeyMap{
	Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch view")),
	Prev:     key.NewBinding(key.WithKeys("shift+tab")),
	Quit:     key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	Continue: key.NewBinding(key.WithKeys("any"), key.WithHelp("any key", "continue")),
}

func newHelpModel() help.Model {
	h := help.New()
	h.ShortSeparator = "  "
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	return h
}

// appModel is the root bubbletea Model for the TUI.
// It owns the three tabs (timer, board, stats), a stack of modal views
// such as forms above them, and the heartbeat that ticks the engine.
type appModel struct {
	state    *SharedState
	tabs     []View
	tab      int
	stack    []View
	quitting bool
	help     help.Model

	// tickGen is the live heartbeat chain. Starting the timer opens a new
	// chain so the first decrement lands one full second after the start.
	tickGen int

	// completion is set when a session ends and cleared by any key.
	completion *timer.TickResult
	notice     string
}

func newAppModel(app *App) appModel {
	state := &SharedState{App: app}
	return appModel{
		state: state,
		help:  newHelpModel(),
		tabs: []View{
			newTimerView(state),
			newBoardView(state),
			newStatsView(state),
		},
	}
}

// activeView returns the top modal view, or the selected tab.
func (m *appModel) activeView() View {
	if len(m.stack) > 0 {
		return m.stack[len(m.stack)-1]
	}
	return m.tabs[m.tab]
}

// setActiveView replaces whatever activeView returned.
func (m *appModel) setActiveView(v View) {
	if len(m.stack) > 0 {
		m.stack[len(m.stack)-1] = v
		return
	}
	m.tabs[m.tab] = v
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	cmds := []tea.Cmd{tickEvery(m.tickGen)}
	for _, v := range m.tabs {
		cmds = append(cmds, v.Init())
	}
	return tea.Batch(cmds...)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		return m, m.broadcast(msg)

	case tickMsg:
		if msg.gen != m.tickGen {
			return m, nil
		}
		res := m.state.App.Timer.Tick()
		if !res.Completed {
			return m, tickEvery(m.tickGen)
		}
		m.completion = &res
		return m, tea.Batch(tickEvery(m.tickGen), refresh)

	case tea.KeyMsg:
		wasRunning := m.state.App.Timer.State().IsRunning
		next, cmd := m.handleKey(msg)
		am := next.(appModel)
		if !wasRunning && am.state.App.Timer.State().IsRunning {
			am.tickGen++
			cmd = tea.Batch(cmd, tickEvery(am.tickGen))
		}
		return am, cmd

	case pushViewMsg:
		m.stack = append(m.stack, msg.view)
		return m, msg.view.Init()

	case popViewMsg:
		if len(m.stack) > 0 {
			m.stack = m.stack[:len(m.stack)-1]
		}
		return m, nil

	case refreshViewMsg:
		return m, m.broadcast(msg)

	case noticeMsg:
		m.notice = msg.text
		return m, nil

	case wizardCompleteMsg:
		if len(m.stack) > 0 {
			m.stack = m.stack[:len(m.stack)-1]
		}
		return m, tea.Batch(msg.nextCmd, refresh)
	}

	// Anything else (form internals, cursor blinks) goes to the active view.
	updated, cmd := m.activeView().Update(msg)
	m.setActiveView(updated.(View))
	return m, cmd
}

// broadcast delivers msg to every tab and modal view.
func (m *appModel) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for i, v := range m.tabs {
		updated, cmd := v.Update(msg)
		m.tabs[i] = updated.(View)
		cmds = append(cmds, cmd)
	}
	for i, v := range m.stack {
		updated, cmd := v.Update(msg)
		m.stack[i] = updated.(View)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global quit
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	m.notice = ""

	// Any key dismisses the completion message.
	if m.completion != nil {
		m.completion = nil
		return m, nil
	}

	// Forms receive every key, including q and tab.
	if len(m.stack) > 0 {
		updated, cmd := m.activeView().Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	switch {
	case key.Matches(msg, globalKeys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, globalKeys.Next):
		m.tab = (m.tab + 1) % len(m.tabs)
		return m, refresh
	case key.Matches(msg, globalKeys.Prev):
		m.tab = (m.tab + len(m.tabs) - 1) % len(m.tabs)
		return m, refresh
	}

	updated, cmd := m.activeView().Update(msg)
	m.setActiveView(updated.(View))
	return m, cmd
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	if m.completion != nil {
		sections = append(sections, m.renderCompletion())
	} else {
		sections = append(sections, m.activeView().View())
	}

	sections = append(sections, m.renderStatusBar())

	result := strings.Join(sections, "\n")

	// Pad to terminal height to prevent stale line artifacts from
	// bubbletea's line-diff renderer in alt-screen mode.
	if m.state.Height > 0 {
		lines := strings.Count(result, "\n") + 1
		if lines < m.state.Height {
			result += strings.Repeat("\n", m.state.Height-lines)
		}
	}

	return result
}

// ── rendering helpers ────────────────────────────────────────────────────────

func (m *appModel) renderHeader() string {
	title := formatter.StylePurple.Render("focusboard")

	tabs := make([]string, 0, len(m.tabs))
	for i, v := range m.tabs {
		if i == m.tab {
			tabs = append(tabs, formatter.StyleHeader.Render(v.Title()))
			continue
		}
		tabs = append(tabs, formatter.Dim(v.Title()))
	}
	header := title + "  " + strings.Join(tabs, formatter.Dim(" · "))

	if top := m.stack; len(top) > 0 {
		header += " " + formatter.Dim("›") + " " + formatter.Dim(top[len(top)-1].Title())
	}

	st := m.state.App.Timer.State()
	if st.IsRunning {
		header += "  " + formatter.ModeStyle(st.Mode).Render(domain.FormatClock(st.SecondsRemaining))
	}

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return header + "\n" + sep
}

func (m *appModel) renderStatusBar() string {
	var bindings []key.Binding
	switch {
	case m.completion != nil:
		bindings = []key.Binding{globalKeys.Continue}
	case len(m.stack) > 0:
		bindings = m.activeView().ShortHelp()
	default:
		bindings = append(m.activeView().ShortHelp(), globalKeys.Next, globalKeys.Quit)
	}

	m.help.Width = m.state.Width
	bar := m.help.ShortHelpView(bindings)
	if m.notice != "" {
		bar = m.notice + "  " + bar
	}
	sepStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(formatter.ColorDim))
	sep := sepStyle.Render(strings.Repeat("─", max(m.state.Width, 20)))
	return sep + "\n" + bar
}

func (m *appModel) renderCompletion() string {
	from := m.completion.From
	body := formatter.ModeStyle(from).Render(formatter.CompletionTitle(from)) + "\n\n" +
		formatter.CompletionBody(from) + "\n\n" +
		formatter.Dim("Up next: "+m.completion.To.Label())
	box := formatter.RenderBox(formatter.ModeColor(from), body)
	if m.state.Width > 0 {
		return lipgloss.PlaceHorizontal(m.state.Width, lipgloss.Center, box)
	}
	return box
}
