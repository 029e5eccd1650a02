package cli

import (
	"context"

	"github.com/alexanderramin/focusboard/internal/cli/formatter"
	"github.com/alexanderramin/focusboard/internal/stats"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

var statsReloadKey = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload"))

// statsView shows the weekly cards, the daily bars and the insight lines.
// It reloads on every refreshViewMsg.
type statsView struct {
	state   *SharedState
	summary stats.Summary
}

func newStatsView(state *SharedState) *statsView {
	v := &statsView{state: state}
	v.reload()
	return v
}

func (v *statsView) ID() ViewID    { return ViewStats }
func (v *statsView) Title() string { return "Stats" }

func (v *statsView) ShortHelp() []key.Binding { return []key.Binding{statsReloadKey} }

func (v *statsView) Init() tea.Cmd { return nil }

func (v *statsView) reload() {
	if v.state.App.Stats == nil {
		return
	}
	v.summary = v.state.App.Stats.Load(context.Background())
}

func (v *statsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshViewMsg:
		v.reload()
	case tea.KeyMsg:
		if key.Matches(msg, statsReloadKey) {
			v.reload()
		}
	}
	return v, nil
}

func (v *statsView) View() string {
	s := v.summary
	return "\n" + formatter.Header("This week") + "\n" +
		formatter.FormatStatCards(s) + "\n\n" +
		formatter.Header("Daily") + "\n" +
		formatter.FormatDaily(s) + "\n\n" +
		formatter.Header("Weekly insights") + "\n" +
		formatter.FormatInsights(s)
}
