package cli

import (
	"context"
	"time"

	"github.com/alexanderramin/focusboard/internal/rollup"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive timer, board and stats views",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), app)
		},
	}
}

// runTUI runs the bubbletea program until the user quits. While it runs,
// stats compaction is scheduled for every midnight.
func runTUI(ctx context.Context, app *App) error {
	if app.Recorder != nil {
		sched := rollup.NewScheduler(time.Local)
		if _, err := sched.ScheduleCompaction(app.Recorder, app.logger()); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()
	}

	p := tea.NewProgram(newAppModel(app), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	app.Timer.Pause()
	flushEffects(ctx, app.Timer)
	return err
}
