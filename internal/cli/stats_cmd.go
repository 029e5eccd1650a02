package cli

import (
	"fmt"

	"github.com/alexanderramin/focusboard/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show this week's focus and task statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStats(app.Stats.Load(cmd.Context())))
			return nil
		},
	}
}
