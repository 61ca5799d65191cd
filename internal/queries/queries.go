// Package queries exposes the read side of the tracker: typed accessors that
// serve from the cache and fall through to the backend, coalescing concurrent
// reads per key.
package queries

import (
	"context"

	"dayboard/internal/daykey"
	"dayboard/internal/domain"
	"dayboard/internal/querycache"
	"dayboard/internal/remote"
)

// Queries binds a cache store to a backend client.
type Queries struct {
	store  *querycache.Store
	client remote.Client
}

// New creates the read-side accessor set.
func New(store *querycache.Store, client remote.Client) *Queries {
	return &Queries{store: store, client: client}
}

// Tasks returns the task collection.
func (q *Queries) Tasks(ctx context.Context) ([]domain.Task, error) {
	return querycache.Fetch(ctx, q.store, querycache.TasksKey(), q.client.GetTasks)
}

// Dailies returns the daily checklist.
func (q *Queries) Dailies(ctx context.Context) ([]domain.ChecklistItem, error) {
	return querycache.Fetch(ctx, q.store, querycache.DailiesKey(), q.client.GetDailies)
}

// Goals returns all goals ordered by target date.
func (q *Queries) Goals(ctx context.Context) ([]domain.Goal, error) {
	return querycache.Fetch(ctx, q.store, querycache.GoalsKey(), func(ctx context.Context) ([]domain.Goal, error) {
		goals, err := q.client.GetGoals(ctx)
		if err != nil {
			return nil, err
		}
		domain.SortGoalsByTarget(goals)
		return goals, nil
	})
}

// Rating returns the performance rating for a day, or None.
func (q *Queries) Rating(ctx context.Context, date daykey.Date) (domain.Option[domain.PerformanceRating], error) {
	return querycache.Fetch(ctx, q.store, querycache.RatingKey(date), func(ctx context.Context) (domain.Option[domain.PerformanceRating], error) {
		return q.client.GetPerformanceRating(ctx, date.Instant())
	})
}

// AllRatings returns every recorded rating.
func (q *Queries) AllRatings(ctx context.Context) ([]domain.PerformanceRating, error) {
	return querycache.Fetch(ctx, q.store, querycache.AllRatingsKey(), q.client.GetAllPerformanceRatings)
}

// Reflection returns the reflection for a day, or None.
func (q *Queries) Reflection(ctx context.Context, date daykey.Date) (domain.Option[domain.Reflection], error) {
	return querycache.Fetch(ctx, q.store, querycache.ReflectionKey(date), func(ctx context.Context) (domain.Option[domain.Reflection], error) {
		return q.client.GetReflection(ctx, date.Key())
	})
}

// AllReflections returns every recorded reflection.
func (q *Queries) AllReflections(ctx context.Context) ([]domain.Reflection, error) {
	return querycache.Fetch(ctx, q.store, querycache.AllReflectionsKey(), q.client.GetAllReflections)
}

// Store returns the underlying cache, for change subscription and version
// checks by derived views.
func (q *Queries) Store() *querycache.Store {
	return q.store
}
