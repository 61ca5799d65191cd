package domain

import "dayboard/internal/daykey"

// Task is a dated to-do item. Title doubles as the identifier: the backend
// contract addresses tasks by title, not by a synthetic id.
type Task struct {
	Title       string
	Description string
	DueDate     daykey.Instant
	Status      bool // true = complete
}

// DueOn reports whether the task is due on the given local calendar date.
func (t Task) DueOn(d daykey.Date) bool {
	return daykey.SameDay(t.DueDate, d)
}
