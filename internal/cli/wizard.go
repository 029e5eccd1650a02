package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/focusboard/internal/cli/formatter"
	"github.com/alexanderramin/focusboard/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// focusboardHuhTheme returns a custom huh theme using the Gruvbox palette.
func focusboardHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// wizardInputTask creates a huh form for the text of a new task.
func wizardInputTask(result *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("New task").
				Placeholder("What needs doing?").
				Value(result).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("task text is required")
					}
					return nil
				}),
		),
	).WithTheme(focusboardHuhTheme()).WithShowHelp(false)
}

func applyAddTask(app *App, content string) noticeMsg {
	task, changed, err := app.Board.AddTask(context.Background(), content)
	if err != nil {
		return noticeMsg{text: formatter.StyleRed.Render("Error: " + err.Error())}
	}
	if !changed {
		return noticeMsg{text: formatter.Dim("Nothing added.")}
	}
	return noticeMsg{text: formatter.StyleGreen.Render("Added: " + task.Content)}
}

// settingsFields is the string-backed form state of the settings wizard.
type settingsFields struct {
	focus, short, long string
}

func newSettingsFields(s domain.TimerSettings) *settingsFields {
	return &settingsFields{
		focus: strconv.Itoa(s.Focus),
		short: strconv.Itoa(s.ShortBreak),
		long:  strconv.Itoa(s.LongBreak),
	}
}

// validateMinutes accepts any integer; range is enforced by clamping.
func validateMinutes(s string) error {
	if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("enter a whole number of minutes")
	}
	return nil
}

// wizardTimerSettings creates a huh form for the three durations.
func wizardTimerSettings(f *settingsFields) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Focus (minutes)").
				Description(fmt.Sprintf("%d-%d", domain.MinDurationMin, domain.MaxFocusMin)).
				Value(&f.focus).
				Validate(validateMinutes),
			huh.NewInput().
				Title("Short break (minutes)").
				Description(fmt.Sprintf("%d-%d", domain.MinDurationMin, domain.MaxShortBreakMin)).
				Value(&f.short).
				Validate(validateMinutes),
			huh.NewInput().
				Title("Long break (minutes)").
				Description(fmt.Sprintf("%d-%d", domain.MinDurationMin, domain.MaxLongBreakMin)).
				Value(&f.long).
				Validate(validateMinutes),
		),
	).WithTheme(focusboardHuhTheme()).WithShowHelp(false)
}

func (f *settingsFields) settings(fallback domain.TimerSettings) domain.TimerSettings {
	parse := func(s string, def int) int {
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return def
		}
		return v
	}
	return domain.TimerSettings{
		Focus:      parse(f.focus, fallback.Focus),
		ShortBreak: parse(f.short, fallback.ShortBreak),
		LongBreak:  parse(f.long, fallback.LongBreak),
	}
}

func applyTimerSettings(app *App, f *settingsFields) noticeMsg {
	applied, err := app.applySettings(context.Background(), f.settings(app.Timer.Settings()))
	if err != nil {
		return noticeMsg{text: formatter.StyleRed.Render("Error: " + err.Error())}
	}
	return noticeMsg{text: formatter.StyleGreen.Render(fmt.Sprintf(
		"Saved: focus %d, short %d, long %d", applied.Focus, applied.ShortBreak, applied.LongBreak))}
}
