package testutil

import (
	"time"

	"dayboard/internal/daykey"
	"dayboard/internal/domain"
)

// Day is shorthand for constructing a calendar date in tests.
func Day(year int, month time.Month, day int) daykey.Date {
	return daykey.Date{Year: year, Month: month, Day: day}
}

// TaskOption mutates a test task.
type TaskOption func(*domain.Task)

func WithDescription(d string) TaskOption {
	return func(t *domain.Task) {
		t.Description = d
	}
}

func WithCompleted() TaskOption {
	return func(t *domain.Task) {
		t.Status = true
	}
}

// NewTestTask builds a task due on the given date.
func NewTestTask(title string, due daykey.Date, opts ...TaskOption) domain.Task {
	t := domain.Task{
		Title:   title,
		DueDate: due.Instant(),
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// NewTestGoal builds an open goal targeting the given date.
func NewTestGoal(text string, target daykey.Date) domain.Goal {
	return domain.Goal{Text: text, TargetDate: target.Instant()}
}

// NewTestRating builds a rating for the given date.
func NewTestRating(date daykey.Date, score int) domain.PerformanceRating {
	return domain.PerformanceRating{Date: date.Instant(), Score: score}
}
