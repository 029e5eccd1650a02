package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/alexanderramin/focusboard/internal/cli/formatter"
	"github.com/alexanderramin/focusboard/internal/domain"
	"github.com/alexanderramin/focusboard/internal/timer"
	"github.com/spf13/cobra"
)

func newTimerCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Run the countdown or change its durations",
	}

	cmd.AddCommand(
		newTimerRunCmd(app),
		newTimerSettingsCmd(app),
	)

	return cmd
}

func newTimerRunCmd(app *App) *cobra.Command {
	var mode domain.Mode
	var tick time.Duration

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Count down one session in the terminal",
		Long: "Counts down one session of the chosen mode, printing the clock every second.\n" +
			"Exits when the session completes or on Ctrl+C.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			out := cmd.OutOrStdout()
			app.Timer.SwitchMode(mode)
			app.Timer.Start()
			fmt.Fprintf(out, "\r%s", formatter.TimerLine(app.Timer.State()))

			var done timer.TickResult
			runner := timer.NewRunner(app.Timer,
				timer.WithInterval(tick),
				timer.StopOnComplete(),
				timer.WithTickHandler(func(res timer.TickResult) {
					if res.Completed {
						done = res
						return
					}
					fmt.Fprintf(out, "\r%s", formatter.TimerLine(app.Timer.State()))
				}),
			)
			err := runner.Run(ctx)
			flushEffects(cmd.Context(), app.Timer)
			if err != nil {
				app.Timer.Pause()
				fmt.Fprintf(out, "\n%s\n", formatter.Dim("Stopped."))
				return nil
			}

			fmt.Fprintf(out, "\r%s\n", formatter.TimerLine(domain.TimerState{Mode: done.From}))
			fmt.Fprintln(out, formatter.ModeStyle(done.From).Render(formatter.CompletionTitle(done.From)))
			fmt.Fprintln(out, formatter.CompletionBody(done.From))
			fmt.Fprintln(out, formatter.Dim("Next: "+done.To.Label()))
			return nil
		},
	}

	cmd.Flags().Var(newModeValue(domain.ModeFocus, &mode), "mode", "Mode to run: focus, short or long")
	cmd.Flags().DurationVar(&tick, "tick", time.Second, "Countdown step")
	_ = cmd.Flags().MarkHidden("tick")

	return cmd
}

// effectsTimeout bounds how long a finished run waits for its sound and
// desktop notification before the process exits.
const effectsTimeout = 3 * time.Second

func flushEffects(ctx context.Context, e *timer.Engine) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), effectsTimeout)
	defer cancel()
	_ = e.Wait(ctx)
}

func newTimerSettingsCmd(app *App) *cobra.Command {
	var focus, short, long int

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or update the mode durations (minutes)",
		Long: "Without flags, prints the current durations. With flags, updates them.\n" +
			"Values are clamped: focus and long break 1-60, short break 1-30.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := app.Timer.Settings()
			flags := cmd.Flags()
			if flags.Changed("focus") || flags.Changed("short") || flags.Changed("long") {
				if flags.Changed("focus") {
					s.Focus = focus
				}
				if flags.Changed("short") {
					s.ShortBreak = short
				}
				if flags.Changed("long") {
					s.LongBreak = long
				}
				applied, err := app.applySettings(cmd.Context(), s)
				if err != nil {
					return err
				}
				s = applied
				fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleGreen.Render("Settings saved."))
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSettings(s))
			return nil
		},
	}

	cmd.Flags().IntVar(&focus, "focus", 0, "Focus duration in minutes")
	cmd.Flags().IntVar(&short, "short", 0, "Short break duration in minutes")
	cmd.Flags().IntVar(&long, "long", 0, "Long break duration in minutes")

	return cmd
}
