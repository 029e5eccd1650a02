package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/focusboard/internal/stats"
)

const dailyBarWidth = 20

// FormatStatCards renders the three weekly totals side by side.
func FormatStatCards(sum stats.Summary) string {
	cards := []struct{ label, value string }{
		{"Total Focus Time", fmt.Sprintf("%d min", sum.TotalFocusMinutes)},
		{"Completed Tasks", fmt.Sprintf("%d", sum.TotalTasks)},
		{"Pomodoros", fmt.Sprintf("%d", sum.TotalPomodoros)},
	}
	parts := make([]string, 0, len(cards))
	for _, c := range cards {
		parts = append(parts, Dim(c.label)+" "+Bold(c.value))
	}
	return strings.Join(parts, "   ")
}

// FormatInsights renders the weekly insight sentences.
func FormatInsights(sum stats.Summary) string {
	return fmt.Sprintf(
		"You've completed %d tasks this week, averaging %.1f tasks per day.\n"+
			"Your total focus time is %d minutes, with %d completed Pomodoros.",
		sum.TotalTasks, sum.TasksPerDay, sum.TotalFocusMinutes, sum.TotalPomodoros)
}

// FormatDaily renders one bar per day, scaled to the busiest day.
func FormatDaily(sum stats.Summary) string {
	if len(sum.Daily) == 0 {
		return Dim("No daily data yet. Finish a focus session or check off a task.")
	}
	maxFocus := 0
	for _, d := range sum.Daily {
		maxFocus = max(maxFocus, d.FocusTime)
	}
	_, maxTasks := sum.MaxDaily()

	rows := make([][]string, 0, len(sum.Daily))
	for _, d := range sum.Daily {
		rows = append(rows, []string{
			d.Date,
			RenderCompactBar(Ratio(d.FocusTime, maxFocus), dailyBarWidth, false),
			FormatMinutes(d.FocusTime),
			fmt.Sprintf("%d", d.Pomodoros),
			RenderCompactBar(Ratio(d.Tasks, maxTasks), dailyBarWidth/2, true),
			fmt.Sprintf("%d", d.Tasks),
		})
	}
	return RenderTable([]string{"DAY", "FOCUS", "", "POMODOROS", "TASKS", ""}, rows, 2, 3, 5)
}

// FormatStats is the full `stats` command output.
func FormatStats(sum stats.Summary) string {
	var sb strings.Builder
	sb.WriteString(Header("This week"))
	sb.WriteString("\n")
	sb.WriteString(FormatStatCards(sum))
	sb.WriteString("\n\n")
	sb.WriteString(Header("Daily"))
	sb.WriteString("\n")
	sb.WriteString(FormatDaily(sum))
	sb.WriteString("\n\n")
	sb.WriteString(Header("Weekly insights"))
	sb.WriteString("\n")
	sb.WriteString(FormatInsights(sum))
	sb.WriteString("\n")
	return sb.String()
}
