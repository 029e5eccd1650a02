package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/focusboard/internal/cli/formatter"
	"github.com/alexanderramin/focusboard/internal/domain"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks"},
		Short:   "Manage tasks on the board",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskToggleCmd(app),
		newTaskRemoveCmd(app),
		newTaskMoveCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a task to the end of To Do",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, changed, err := app.Board.AddTask(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if !changed {
				return fmt.Errorf("task text is empty")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s\n", formatter.TruncID(task.ID), task.Content)
			return nil
		},
	}
}

func newTaskListCmd(app *App) *cobra.Command {
	var lane domain.LaneID

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the board",
		RunE: func(cmd *cobra.Command, args []string) error {
			b := app.Board.Board()
			if lane != "" {
				l := b.Lane(lane)
				b = &domain.Board{Lanes: []domain.Lane{*l}}
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBoard(b))
			return nil
		},
	}

	cmd.Flags().Var(newLaneValue(&lane), "lane", "Only show one lane: todo, inProgress or done")

	return cmd
}

func newTaskToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Check or uncheck a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, _, err := app.Board.Find(args[0])
			if err != nil {
				return err
			}
			if _, err := app.Board.ToggleCompletion(cmd.Context(), task.ID); err != nil {
				return err
			}
			task.Completed = !task.Completed
			fmt.Fprintln(cmd.OutOrStdout(), formatter.TaskLine(task))
			return nil
		},
	}
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, _, err := app.Board.Find(args[0])
			if err != nil {
				return err
			}
			if _, err := app.Board.DeleteTask(cmd.Context(), task.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", formatter.TruncID(task.ID), task.Content)
			return nil
		},
	}
}

func newTaskMoveCmd(app *App) *cobra.Command {
	var index int

	cmd := &cobra.Command{
		Use:   "mv <id> <lane>",
		Short: "Move a task to a lane",
		Long: "Moves a task to the given lane (todo, inProgress, done). --index sets the\n" +
			"position in the destination lane; the default appends to the end.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, from, err := app.Board.Find(args[0])
			if err != nil {
				return err
			}
			to, err := domain.ParseLaneID(args[1])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			var changed bool
			if index < 0 {
				changed, err = app.Board.MoveTaskBy(cmd.Context(), task.ID, to)
			} else {
				changed, err = app.Board.MoveTask(cmd.Context(), task.ID, from, to, index)
			}
			if err != nil {
				return err
			}
			if !changed {
				fmt.Fprintln(out, formatter.Dim("Nothing to move."))
				return nil
			}
			fmt.Fprintf(out, "Moved %s to %s\n", task.Content, to.Title())
			return nil
		},
	}

	cmd.Flags().IntVar(&index, "index", -1, "Position in the destination lane (0 = top)")

	return cmd
}
