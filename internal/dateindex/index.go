// Package dateindex derives calendar-cell markers from the cached task and
// rating collections: which days have incomplete or completed tasks, and
// which have a performance rating.
package dateindex

import (
	"context"
	"sync"
	"time"

	"dayboard/internal/daykey"
	"dayboard/internal/domain"
	"dayboard/internal/queries"
	"dayboard/internal/querycache"
)

// Summary holds the markers for one day cell.
type Summary struct {
	HasIncomplete bool
	HasComplete   bool
	HasRating     bool
}

type taskFlags struct {
	incomplete bool
	complete   bool
}

// Index memoizes its day-key sets on the cache entry versions of the two
// source collections, so unrelated state changes never trigger a rebuild.
type Index struct {
	q *queries.Queries

	mu            sync.Mutex
	taskVersion   uint64
	ratingVersion uint64
	built         bool
	taskDays      map[daykey.Date]taskFlags
	ratingDays    map[daykey.Date]struct{}
}

// New creates an index over the given read side.
func New(q *queries.Queries) *Index {
	return &Index{q: q}
}

// refresh rebuilds the day-key sets when either source collection has
// changed since the last build.
func (i *Index) refresh(ctx context.Context) error {
	tasks, err := i.q.Tasks(ctx)
	if err != nil {
		return err
	}
	ratings, err := i.q.AllRatings(ctx)
	if err != nil {
		return err
	}

	store := i.q.Store()
	taskVersion := store.Version(querycache.TasksKey())
	ratingVersion := store.Version(querycache.AllRatingsKey())

	i.mu.Lock()
	defer i.mu.Unlock()
	if i.built && i.taskVersion == taskVersion && i.ratingVersion == ratingVersion {
		return nil
	}

	i.taskDays = make(map[daykey.Date]taskFlags, len(tasks))
	for _, t := range tasks {
		day := daykey.FromInstant(t.DueDate)
		flags := i.taskDays[day]
		if t.Status {
			flags.complete = true
		} else {
			flags.incomplete = true
		}
		i.taskDays[day] = flags
	}

	i.ratingDays = make(map[daykey.Date]struct{}, len(ratings))
	for _, r := range ratings {
		i.ratingDays[r.Day()] = struct{}{}
	}

	i.taskVersion = taskVersion
	i.ratingVersion = ratingVersion
	i.built = true
	return nil
}

// Summary returns the markers for one day.
func (i *Index) Summary(ctx context.Context, date daykey.Date) (Summary, error) {
	if err := i.refresh(ctx); err != nil {
		return Summary{}, err
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	flags := i.taskDays[date]
	_, rated := i.ratingDays[date]
	return Summary{
		HasIncomplete: flags.incomplete,
		HasComplete:   flags.complete,
		HasRating:     rated,
	}, nil
}

// Month returns the summaries for every day of a month, keyed by day number.
func (i *Index) Month(ctx context.Context, year int, month time.Month) (map[int]Summary, error) {
	if err := i.refresh(ctx); err != nil {
		return nil, err
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	out := make(map[int]Summary, daykey.DaysIn(year, month))
	for _, d := range daykey.MonthDates(year, month) {
		flags := i.taskDays[d]
		_, rated := i.ratingDays[d]
		out[d.Day] = Summary{
			HasIncomplete: flags.incomplete,
			HasComplete:   flags.complete,
			HasRating:     rated,
		}
	}
	return out, nil
}

// TasksDue returns the cached tasks due on the given day, for the day-detail
// panel under the calendar.
func (i *Index) TasksDue(ctx context.Context, date daykey.Date) ([]domain.Task, error) {
	tasks, err := i.q.Tasks(ctx)
	if err != nil {
		return nil, err
	}
	var due []domain.Task
	for _, t := range tasks {
		if t.DueOn(date) {
			due = append(due, t)
		}
	}
	return due, nil
}
