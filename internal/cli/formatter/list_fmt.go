package formatter

import (
	"dayboard/internal/daykey"
	"dayboard/internal/domain"
)

// FormatTaskList formats tasks as a table of title, due date, and status.
func FormatTaskList(tasks []domain.Task) string {
	headers := []string{"TASK", "DUE", "STATUS"}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		title := Bold(t.Title)
		if t.Description != "" {
			title += " " + Dim(t.Description)
		}
		rows = append(rows, []string{
			title,
			DueDateStyled(daykey.FromInstant(t.DueDate)),
			DonePill(t.Status),
		})
	}
	return RenderTable(headers, rows)
}

// FormatChecklist formats the daily checklist as checkbox lines.
func FormatChecklist(items []domain.ChecklistItem) string {
	out := ""
	for _, item := range items {
		if item.IsComplete {
			out += StyleGreen.Render("[x] ") + StyleDim.Render(item.Text) + "\n"
		} else {
			out += StyleFg.Render("[ ] ") + StyleFg.Render(item.Text) + "\n"
		}
	}
	return out
}

// FormatGoalList formats goals as a table ordered the way the caller passes
// them, normally by ascending target date.
func FormatGoalList(goals []domain.Goal) string {
	headers := []string{"GOAL", "TARGET", "STATUS"}
	rows := make([][]string, 0, len(goals))
	for _, g := range goals {
		rows = append(rows, []string{
			Bold(g.Text),
			DueDateStyled(daykey.FromInstant(g.TargetDate)),
			DonePill(g.IsCompleted),
		})
	}
	return RenderTable(headers, rows)
}

// FormatJournal formats all reflections as date-keyed excerpt lines, newest
// first when the caller passes them that way.
func FormatJournal(reflections []domain.Reflection) string {
	headers := []string{"DATE", "REFLECTION"}
	rows := make([][]string, 0, len(reflections))
	for _, r := range reflections {
		rows = append(rows, []string{
			StyleBlue.Render(r.Date),
			Excerpt(r.Content, 72),
		})
	}
	return RenderTable(headers, rows)
}
