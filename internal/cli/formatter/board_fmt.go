package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/focusboard/internal/domain"
)

// Checkbox renders the completion marker of a task.
func Checkbox(completed bool) string {
	if completed {
		return StyleGreen.Render("[x]")
	}
	return StyleDim.Render("[ ]")
}

// TaskLine renders one task as "<checkbox> <content>".
func TaskLine(t domain.Task) string {
	content := t.Content
	if t.Completed {
		content = StyleDim.Strikethrough(true).Render(content)
	}
	return Checkbox(t.Completed) + " " + content
}

// FormatBoard renders every lane as a table for `task list`.
func FormatBoard(b *domain.Board) string {
	var sb strings.Builder
	for i, lane := range b.Lanes {
		if i > 0 {
			sb.WriteString("\n")
		}
		title := fmt.Sprintf("%s (%d)", lane.Title, len(lane.Tasks))
		sb.WriteString(LaneStyle(lane.ID).Render(title))
		sb.WriteString("\n")
		if len(lane.Tasks) == 0 {
			sb.WriteString(Dim("  no tasks"))
			sb.WriteString("\n")
			continue
		}
		rows := make([][]string, 0, len(lane.Tasks))
		for _, t := range lane.Tasks {
			rows = append(rows, []string{TruncID(t.ID), Checkbox(t.Completed), t.Content})
		}
		sb.WriteString(RenderTable([]string{"ID", "DONE", "TASK"}, rows))
	}
	return sb.String()
}
