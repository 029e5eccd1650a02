package cli

import (
	"github.com/alexanderramin/focusboard/internal/cli/formatter"
	"github.com/alexanderramin/focusboard/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type timerKeyMap struct {
	Toggle   key.Binding
	Reset    key.Binding
	Focus    key.Binding
	Short    key.Binding
	Long     key.Binding
	Settings key.Binding
}

var timerKeys = timerKeyMap{
	Toggle:   key.NewBinding(key.WithKeys(" ", "space", "enter"), key.WithHelp("space", "start/pause")),
	Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
	Focus:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "focus")),
	Short:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "short")),
	Long:     key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "long")),
	Settings: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "settings")),
}

const maxTimerBarWidth = 60

// timerView shows the countdown. It reads the engine on every render, so
// it never holds a stale copy of the state.
type timerView struct {
	state *SharedState
	bar   progress.Model
}

func newTimerView(state *SharedState) *timerView {
	return &timerView{
		state: state,
		bar:   progress.New(progress.WithoutPercentage(), progress.WithWidth(40)),
	}
}

func (v *timerView) ID() ViewID    { return ViewTimer }
func (v *timerView) Title() string { return "Timer" }

func (v *timerView) ShortHelp() []key.Binding {
	return []key.Binding{timerKeys.Toggle, timerKeys.Reset, timerKeys.Focus, timerKeys.Short, timerKeys.Long, timerKeys.Settings}
}

func (v *timerView) Init() tea.Cmd { return nil }

func (v *timerView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	engine := v.state.App.Timer
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.bar.Width = min(max(msg.Width-8, 10), maxTimerBarWidth)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, timerKeys.Toggle):
			engine.Toggle()
		case key.Matches(msg, timerKeys.Reset):
			engine.Reset()
		case key.Matches(msg, timerKeys.Focus):
			engine.SwitchMode(domain.ModeFocus)
		case key.Matches(msg, timerKeys.Short):
			engine.SwitchMode(domain.ModeShortBreak)
		case key.Matches(msg, timerKeys.Long):
			engine.SwitchMode(domain.ModeLongBreak)
		case key.Matches(msg, timerKeys.Settings):
			return v, v.openSettings()
		}
	}
	return v, nil
}

func (v *timerView) openSettings() tea.Cmd {
	app := v.state.App
	fields := newSettingsFields(app.Timer.Settings())
	form := wizardTimerSettings(fields)
	return startWizardCmd(v.state, "Settings", form, func() tea.Cmd {
		return func() tea.Msg { return applyTimerSettings(app, fields) }
	})
}

func (v *timerView) View() string {
	engine := v.state.App.Timer
	st := engine.State()

	clock := lipgloss.NewStyle().
		Foreground(formatter.ModeColor(st.Mode)).
		Bold(true).
		Padding(1, 4).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(formatter.ModeColor(st.Mode)).
		Render(domain.FormatClock(st.SecondsRemaining))

	v.bar.FullColor = string(formatter.ModeColor(st.Mode))
	v.bar.EmptyColor = string(formatter.ColorDim)

	lines := []string{
		formatter.ModeTabs(st.Mode),
		"",
		clock,
		"",
		v.bar.ViewAs(engine.Progress()),
		"",
		formatter.RunState(st.IsRunning),
		formatter.SessionCount(st.CompletedFocusSessions),
	}
	body := lipgloss.JoinVertical(lipgloss.Center, lines...)
	if v.state.Width > 0 {
		body = lipgloss.PlaceHorizontal(v.state.Width, lipgloss.Center, body)
	}
	return "\n" + body
}
