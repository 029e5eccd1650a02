package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/focusboard/internal/cli/formatter"
	"github.com/alexanderramin/focusboard/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type boardKeyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	Add       key.Binding
	Toggle    key.Binding
	Delete    key.Binding
	MoveLeft  key.Binding
	MoveRight key.Binding
	MoveUp    key.Binding
	MoveDown  key.Binding
}

var boardKeys = boardKeyMap{
	Left:      key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/l", "lane")),
	Right:     key.NewBinding(key.WithKeys("l", "right")),
	Up:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("j/k", "task")),
	Down:      key.NewBinding(key.WithKeys("j", "down")),
	Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Toggle:    key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "done")),
	Delete:    key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete")),
	MoveLeft:  key.NewBinding(key.WithKeys("H", "shift+left"), key.WithHelp("H/L", "move")),
	MoveRight: key.NewBinding(key.WithKeys("L", "shift+right")),
	MoveUp:    key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("J/K", "reorder")),
	MoveDown:  key.NewBinding(key.WithKeys("J", "shift+down")),
}

const minLaneWidth = 18

// boardView renders the three lanes side by side with a cursor on one task.
type boardView struct {
	state *SharedState
	board *domain.Board
	lane  int
	row   int
}

func newBoardView(state *SharedState) *boardView {
	v := &boardView{state: state}
	v.reload()
	return v
}

func (v *boardView) ID() ViewID    { return ViewBoard }
func (v *boardView) Title() string { return "Board" }

func (v *boardView) ShortHelp() []key.Binding {
	return []key.Binding{boardKeys.Left, boardKeys.Up, boardKeys.Add, boardKeys.Toggle,
		boardKeys.Delete, boardKeys.MoveLeft, boardKeys.MoveUp}
}

func (v *boardView) Init() tea.Cmd { return nil }

func (v *boardView) reload() {
	v.board = v.state.App.Board.Board()
	v.clampCursor()
}

func (v *boardView) clampCursor() {
	v.lane = min(max(v.lane, 0), len(v.board.Lanes)-1)
	n := len(v.board.Lanes[v.lane].Tasks)
	v.row = min(max(v.row, 0), max(n-1, 0))
}

// selected returns the task under the cursor.
func (v *boardView) selected() (domain.Task, bool) {
	tasks := v.board.Lanes[v.lane].Tasks
	if v.row < 0 || v.row >= len(tasks) {
		return domain.Task{}, false
	}
	return tasks[v.row], true
}

// follow puts the cursor back on id after a mutation moved it.
func (v *boardView) follow(id string) {
	if li, ti, ok := v.board.Locate(id); ok {
		v.lane, v.row = li, ti
	}
	v.clampCursor()
}

func (v *boardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshViewMsg:
		v.reload()
		return v, nil
	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *boardView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, boardKeys.Left):
		v.lane--
		v.clampCursor()
		return v, nil
	case key.Matches(msg, boardKeys.Right):
		v.lane++
		v.clampCursor()
		return v, nil
	case key.Matches(msg, boardKeys.Up):
		v.row--
		v.clampCursor()
		return v, nil
	case key.Matches(msg, boardKeys.Down):
		v.row++
		v.clampCursor()
		return v, nil
	case key.Matches(msg, boardKeys.Add):
		return v, v.openAddTask()
	}

	task, ok := v.selected()
	if !ok {
		return v, nil
	}
	ctx := context.Background()
	svc := v.state.App.Board

	var err error
	switch {
	case key.Matches(msg, boardKeys.Toggle):
		_, err = svc.ToggleCompletion(ctx, task.ID)
	case key.Matches(msg, boardKeys.Delete):
		_, err = svc.DeleteTask(ctx, task.ID)
	case key.Matches(msg, boardKeys.MoveLeft):
		if v.lane > 0 {
			_, err = svc.MoveTaskBy(ctx, task.ID, domain.LaneOrder[v.lane-1])
		}
	case key.Matches(msg, boardKeys.MoveRight):
		if v.lane < len(domain.LaneOrder)-1 {
			_, err = svc.MoveTaskBy(ctx, task.ID, domain.LaneOrder[v.lane+1])
		}
	case key.Matches(msg, boardKeys.MoveUp):
		_, err = svc.Reorder(ctx, task.ID, -1)
	case key.Matches(msg, boardKeys.MoveDown):
		_, err = svc.Reorder(ctx, task.ID, 1)
	default:
		return v, nil
	}

	v.reload()
	v.follow(task.ID)
	if err != nil {
		return v, notice(formatter.StyleRed.Render("Error: " + err.Error()))
	}
	return v, nil
}

func (v *boardView) openAddTask() tea.Cmd {
	app := v.state.App
	var content string
	form := wizardInputTask(&content)
	return startWizardCmd(v.state, "Add task", form, func() tea.Cmd {
		return func() tea.Msg { return applyAddTask(app, content) }
	})
}

func (v *boardView) View() string {
	width := minLaneWidth
	if v.state.Width > 0 {
		width = max((v.state.Width-len(v.board.Lanes)*3)/len(v.board.Lanes), minLaneWidth)
	}

	cols := make([]string, 0, len(v.board.Lanes))
	for li, lane := range v.board.Lanes {
		cols = append(cols, v.renderLane(li, lane, width))
	}
	return "\n" + lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (v *boardView) renderLane(li int, lane domain.Lane, width int) string {
	var sb strings.Builder
	title := fmt.Sprintf("%s (%d)", lane.Title, len(lane.Tasks))
	sb.WriteString(formatter.LaneStyle(lane.ID).Render(title))
	sb.WriteString("\n\n")

	if len(lane.Tasks) == 0 {
		sb.WriteString(formatter.Dim("empty"))
	}
	for ti, t := range lane.Tasks {
		cursor := "  "
		if li == v.lane && ti == v.row {
			cursor = formatter.StyleHeader.Render("▸ ")
		}
		line := lipgloss.NewStyle().MaxWidth(width - 2).Render(formatter.TaskLine(t))
		sb.WriteString(cursor + line)
		if ti < len(lane.Tasks)-1 {
			sb.WriteString("\n")
		}
	}

	border := formatter.ColorDim
	if li == v.lane {
		border = formatter.ColorHeader
	}
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Render(sb.String())
}
