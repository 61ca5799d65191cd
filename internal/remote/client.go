package remote

import (
	"context"

	"dayboard/internal/daykey"
	"dayboard/internal/domain"
)

// Client is the backend contract: every operation is a single asynchronous
// request with a success or failure outcome, no partial results. The contract
// addresses tasks, checklist items, and goals by their title/text; day-keyed
// records (ratings, reflections) upsert per day. No delete is exposed.
type Client interface {
	GetTasks(ctx context.Context) ([]domain.Task, error)
	AddTask(ctx context.Context, title, description string, dueDate daykey.Instant) error
	ToggleTaskStatus(ctx context.Context, title string) error

	GetDailies(ctx context.Context) ([]domain.ChecklistItem, error)
	AddDaily(ctx context.Context, text string) error
	ToggleDaily(ctx context.Context, text string) error

	GetGoals(ctx context.Context) ([]domain.Goal, error)
	AddGoal(ctx context.Context, text string, targetDate daykey.Instant) error
	UpdateGoalStatus(ctx context.Context, text string, isCompleted bool) error

	GetPerformanceRating(ctx context.Context, date daykey.Instant) (domain.Option[domain.PerformanceRating], error)
	SetPerformanceRating(ctx context.Context, date daykey.Instant, score int) error
	GetAllPerformanceRatings(ctx context.Context) ([]domain.PerformanceRating, error)

	GetReflection(ctx context.Context, dateKey string) (domain.Option[domain.Reflection], error)
	SaveReflection(ctx context.Context, dateKey, content string) error
	GetAllReflections(ctx context.Context) ([]domain.Reflection, error)
}
