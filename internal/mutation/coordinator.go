package mutation

import (
	"context"
	"sync"
	"time"

	"dayboard/internal/daykey"
	"dayboard/internal/domain"
	"dayboard/internal/querycache"
	"dayboard/internal/remote"

	"github.com/google/uuid"
)

// Coordinator performs logical writes and keeps the cache consistent with
// them. Mutations on one key are ordered by a per-key sequence number; a
// failed optimistic write rolls the cache back to its pre-mutation snapshot
// unless a newer mutation on that key has landed in the meantime.
type Coordinator struct {
	store    *querycache.Store
	client   remote.Client
	notifier Notifier
	observer Observer

	mu        sync.Mutex
	nextSeq   map[querycache.Key]uint64
	committed map[querycache.Key]uint64
}

// NewCoordinator wires a coordinator over the given cache and backend.
// A nil notifier or observer is replaced with its no-op variant.
func NewCoordinator(store *querycache.Store, client remote.Client, notifier Notifier, observer Observer) *Coordinator {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	if observer == nil {
		observer = NoopObserver{}
	}
	return &Coordinator{
		store:     store,
		client:    client,
		notifier:  notifier,
		observer:  observer,
		nextSeq:   make(map[querycache.Key]uint64),
		committed: make(map[querycache.Key]uint64),
	}
}

// mutationCtx carries the per-invocation state of one optimistic write:
// the snapshot belongs to this invocation, never to the key.
type mutationCtx struct {
	key      querycache.Key
	seq      uint64
	snapshot any
	had      bool
}

// apply claims the next sequence number on key, snapshots the current value,
// and writes the speculative one, all under the coordinator lock so no other
// mutation's rollback can interleave with the write.
func (c *Coordinator) apply(key querycache.Key, value any) mutationCtx {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextSeq[key]++
	m := mutationCtx{key: key, seq: c.nextSeq[key]}
	m.snapshot, m.had = c.store.Snapshot(key)
	c.store.Set(key, value)
	return m
}

// commit records seq as committed on key. Returns false when a newer
// sequence had already committed.
func (c *Coordinator) commit(key querycache.Key, seq uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.committed[key] >= seq {
		return false
	}
	c.committed[key] = seq
	return true
}

// rollbackUnlessSuperseded restores the snapshot taken by m, unless a newer
// mutation on the key has committed or written speculatively since. The check
// and the restore share one critical section so a concurrent apply cannot
// slip between them. Returns true when the rollback was skipped.
func (c *Coordinator) rollbackUnlessSuperseded(m mutationCtx) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.committed[m.key] >= m.seq || c.nextSeq[m.key] > m.seq {
		return true
	}
	if m.had {
		c.store.Set(m.key, m.snapshot)
	} else {
		c.store.Clear(m.key)
	}
	return false
}

// invalidateAfter runs call, invalidates keys on success, and reports the
// outcome. The cache is left untouched on failure. An empty successMsg
// suppresses the success notification.
func (c *Coordinator) invalidateAfter(ctx context.Context, name, successMsg string, keys []querycache.Key, call func(context.Context) error) error {
	start := time.Now()
	event := Event{
		Mutation:     name,
		InvocationID: uuid.New().String(),
		Key:          keys[0].String(),
		Policy:       PolicyInvalidateAfter,
		StartedAt:    start,
	}

	if err := call(ctx); err != nil {
		event.Duration = time.Since(start)
		event.Err = err
		c.observer.ObserveMutation(event)
		c.notifier.Failure(err.Error())
		return err
	}

	for _, key := range keys {
		c.store.Invalidate(key)
	}
	event.Duration = time.Since(start)
	event.Success = true
	c.observer.ObserveMutation(event)
	if successMsg != "" {
		c.notifier.Success(successMsg)
	}
	return nil
}

// optimistic applies value to key before calling the backend, then either
// confirms (invalidating key and its dependents) or rolls back to the
// snapshot taken for this invocation.
func (c *Coordinator) optimistic(ctx context.Context, name, successMsg string, key querycache.Key, value any, dependents []querycache.Key, call func(context.Context) error) error {
	start := time.Now()
	m := c.apply(key, value)

	event := Event{
		Mutation:     name,
		InvocationID: uuid.New().String(),
		Key:          key.String(),
		Policy:       PolicyOptimistic,
		Seq:          m.seq,
		StartedAt:    start,
	}

	if err := call(ctx); err != nil {
		if c.rollbackUnlessSuperseded(m) {
			// A newer mutation landed while this one was in flight; its
			// state wins and this rollback is a no-op.
			event.Superseded = true
		} else {
			event.RolledBack = true
		}
		event.Duration = time.Since(start)
		event.Err = err
		c.observer.ObserveMutation(event)
		c.notifier.Failure(err.Error())
		return err
	}

	if !c.commit(key, m.seq) {
		event.Superseded = true
	} else {
		c.store.Invalidate(key)
		for _, dep := range dependents {
			c.store.Invalidate(dep)
		}
	}
	event.Duration = time.Since(start)
	event.Success = true
	c.observer.ObserveMutation(event)
	if successMsg != "" {
		c.notifier.Success(successMsg)
	}
	return nil
}

// AddTask creates a task; the tasks collection re-fetches on next read.
func (c *Coordinator) AddTask(ctx context.Context, title, description string, dueDate daykey.Instant) error {
	return c.invalidateAfter(ctx, "addTask", "Task added successfully",
		[]querycache.Key{querycache.TasksKey()},
		func(ctx context.Context) error {
			return c.client.AddTask(ctx, title, description, dueDate)
		})
}

// ToggleTaskStatus flips a task's completion state by title.
func (c *Coordinator) ToggleTaskStatus(ctx context.Context, title string) error {
	return c.invalidateAfter(ctx, "toggleTaskStatus", "Task status updated",
		[]querycache.Key{querycache.TasksKey()},
		func(ctx context.Context) error {
			return c.client.ToggleTaskStatus(ctx, title)
		})
}

// AddDaily creates a checklist item.
func (c *Coordinator) AddDaily(ctx context.Context, text string) error {
	return c.invalidateAfter(ctx, "addDaily", "Checklist item added",
		[]querycache.Key{querycache.DailiesKey()},
		func(ctx context.Context) error {
			return c.client.AddDaily(ctx, text)
		})
}

// ToggleDaily flips a checklist item. Toggles are frequent, so no success
// notification.
func (c *Coordinator) ToggleDaily(ctx context.Context, text string) error {
	return c.invalidateAfter(ctx, "toggleDaily", "",
		[]querycache.Key{querycache.DailiesKey()},
		func(ctx context.Context) error {
			return c.client.ToggleDaily(ctx, text)
		})
}

// AddGoal creates a goal.
func (c *Coordinator) AddGoal(ctx context.Context, text string, targetDate daykey.Instant) error {
	return c.invalidateAfter(ctx, "addGoal", "Goal added successfully",
		[]querycache.Key{querycache.GoalsKey()},
		func(ctx context.Context) error {
			return c.client.AddGoal(ctx, text, targetDate)
		})
}

// ToggleGoal sets a goal's completion state, reflecting the change in the
// cached goals list immediately. With no cached list there is nothing to
// update speculatively and the mutation degrades to invalidate-after.
func (c *Coordinator) ToggleGoal(ctx context.Context, text string, isCompleted bool) error {
	key := querycache.GoalsKey()
	call := func(ctx context.Context) error {
		return c.client.UpdateGoalStatus(ctx, text, isCompleted)
	}

	cached, ok := c.store.Snapshot(key)
	if !ok {
		return c.invalidateAfter(ctx, "updateGoalStatus", "Goal updated", []querycache.Key{key}, call)
	}

	goals, ok := cached.([]domain.Goal)
	if !ok {
		return c.invalidateAfter(ctx, "updateGoalStatus", "Goal updated", []querycache.Key{key}, call)
	}
	updated := make([]domain.Goal, len(goals))
	copy(updated, goals)
	for i := range updated {
		if updated[i].Text == text {
			updated[i].IsCompleted = isCompleted
		}
	}

	return c.optimistic(ctx, "updateGoalStatus", "Goal updated", key, updated, nil, call)
}

// SetPerformanceRating upserts the rating for a day. Scores outside [1,10]
// are rejected before any backend call.
func (c *Coordinator) SetPerformanceRating(ctx context.Context, date daykey.Date, score int) error {
	if err := domain.ValidateScore(score); err != nil {
		c.notifier.Failure(err.Error())
		return err
	}

	value := domain.Some(domain.PerformanceRating{Date: date.Instant(), Score: score})
	return c.optimistic(ctx, "setPerformanceRating", "Performance rating saved",
		querycache.RatingKey(date), value,
		[]querycache.Key{querycache.AllRatingsKey()},
		func(ctx context.Context) error {
			return c.client.SetPerformanceRating(ctx, date.Instant(), score)
		})
}

// SaveReflection upserts the reflection for a day.
func (c *Coordinator) SaveReflection(ctx context.Context, date daykey.Date, content string) error {
	value := domain.Some(domain.Reflection{Date: date.Key(), Content: content})
	return c.optimistic(ctx, "saveReflection", "Reflection saved",
		querycache.ReflectionKey(date), value,
		[]querycache.Key{querycache.AllReflectionsKey()},
		func(ctx context.Context) error {
			return c.client.SaveReflection(ctx, date.Key(), content)
		})
}
