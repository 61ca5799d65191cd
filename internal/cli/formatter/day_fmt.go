package formatter

import (
	"strings"

	"dayboard/internal/daykey"
	"dayboard/internal/domain"
)

// DayData carries everything shown on a single day's board.
type DayData struct {
	Date       daykey.Date
	TasksDue   []domain.Task
	Checklist  []domain.ChecklistItem
	Rating     domain.Option[domain.PerformanceRating]
	Reflection domain.Option[domain.Reflection]
}

// FormatDay formats the full board for one day: due tasks, the checklist,
// the performance rating, and the reflection.
func FormatDay(data DayData) string {
	var b strings.Builder

	b.WriteString(Header("Tasks Due") + "\n")
	if len(data.TasksDue) == 0 {
		b.WriteString(Dim("Nothing due.") + "\n")
	} else {
		for _, t := range data.TasksDue {
			if t.Status {
				b.WriteString(StyleGreen.Render("✔ ") + StyleDim.Render(t.Title))
			} else {
				b.WriteString(StyleBlue.Render("○ ") + Bold(t.Title))
			}
			if t.Description != "" {
				b.WriteString(" " + Dim(t.Description))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n" + Header("Daily Checklist") + "\n")
	if len(data.Checklist) == 0 {
		b.WriteString(Dim("No checklist items.") + "\n")
	} else {
		b.WriteString(FormatChecklist(data.Checklist))
	}

	b.WriteString("\n" + Header("Rating") + "\n")
	if r, ok := data.Rating.Get(); ok {
		b.WriteString(ScoreBadge(r.Score) + "\n")
	} else {
		b.WriteString(Dim("Not rated.") + "\n")
	}

	b.WriteString("\n" + Header("Reflection") + "\n")
	if r, ok := data.Reflection.Get(); ok && r.Content != "" {
		b.WriteString(StyleFg.Render(r.Content) + "\n")
	} else {
		b.WriteString(Dim("No reflection yet.") + "\n")
	}

	return RenderBox(HumanDate(data.Date)+" · "+data.Date.Key(), b.String())
}
