package formatter

import (
	"fmt"

	"dayboard/internal/daykey"
)

// HumanDate returns a human-friendly label for a calendar date.
func HumanDate(d daykey.Date) string {
	return HumanDateFrom(d, daykey.Today())
}

// HumanDateFrom returns the label for d relative to a reference day.
func HumanDateFrom(d, today daykey.Date) string {
	switch {
	case d == today:
		return "Today"
	case d == today.AddDays(1):
		return "Tomorrow"
	case d == today.AddDays(-1):
		return "Yesterday"
	}
	return d.Time().Format("Jan 2, 2006")
}

// DueDateStyled renders a due date with urgency coloring: overdue and
// imminent dates in red, the coming week in yellow.
func DueDateStyled(d daykey.Date) string {
	return dueDateStyledFrom(d, daykey.Today())
}

func dueDateStyledFrom(d, today daykey.Date) string {
	text := HumanDateFrom(d, today)
	days := daysBetween(today, d)
	switch {
	case days <= 2:
		return StyleRed.Render(text)
	case days <= 7:
		return StyleYellow.Render(text)
	}
	return StyleFg.Render(text)
}

func daysBetween(from, to daykey.Date) int {
	return int(to.Time().Sub(from.Time()).Hours() / 24)
}

// Excerpt truncates long reflection text to a single display line.
func Excerpt(text string, max int) string {
	runes := []rune(text)
	for i, r := range runes {
		if r == '\n' {
			runes = runes[:i]
			break
		}
	}
	if len(runes) > max {
		return fmt.Sprintf("%s…", string(runes[:max-1]))
	}
	return string(runes)
}
