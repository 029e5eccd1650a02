package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/alexanderramin/focusboard/internal/board"
	"github.com/alexanderramin/focusboard/internal/config"
	"github.com/alexanderramin/focusboard/internal/domain"
	"github.com/alexanderramin/focusboard/internal/repository"
	"github.com/alexanderramin/focusboard/internal/rollup"
	"github.com/alexanderramin/focusboard/internal/stats"
	"github.com/alexanderramin/focusboard/internal/timer"
	"github.com/spf13/cobra"
)

// App holds the wired components used by CLI commands and the TUI.
type App struct {
	Board    *board.Service
	Timer    *timer.Engine
	Stats    *stats.Aggregator
	Settings repository.SettingsRepo
	Transfer *repository.Transfer

	// Recorder is nil when record_stats is off.
	Recorder *rollup.Recorder

	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger

	// IsInteractive reports whether stdin is a terminal. The bare command
	// opens the TUI only when it returns true.
	IsInteractive func() bool
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return a.Logger
}

// applySettings clamps s, hands it to the engine and persists what was
// applied.
func (a *App) applySettings(ctx context.Context, s domain.TimerSettings) (domain.TimerSettings, error) {
	applied := a.Timer.UpdateSettings(s)
	if a.Settings == nil {
		return applied, nil
	}
	if err := a.Settings.SaveSettings(ctx, applied); err != nil {
		return applied, fmt.Errorf("saving timer settings: %w", err)
	}
	return applied, nil
}

// NewRootCmd creates the top-level "focusboard" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "focusboard",
		Short:         "Pomodoro timer and task board for the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return runTUI(cmd.Context(), app)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newTUICmd(app),
		newTimerCmd(app),
		newTaskCmd(app),
		newStatsCmd(app),
		newConfigCmd(app),
		newDataCmd(app),
	)

	return root
}
