package testutil

import (
	"context"
	"sync"

	"dayboard/internal/daykey"
	"dayboard/internal/domain"
	"dayboard/internal/remote"
)

// FakeClient is an in-memory remote.Client for tests. It honors the backend
// contract (title/text identity, day-keyed upserts, no deletes) and supports
// per-operation failure injection, call counting, and intercept hooks for
// driving interleavings.
type FakeClient struct {
	mu          sync.Mutex
	Tasks       []domain.Task
	Dailies     []domain.ChecklistItem
	Goals       []domain.Goal
	Ratings     map[daykey.Date]domain.PerformanceRating
	Reflections map[string]domain.Reflection

	calls      map[string]int
	failures   map[string]error
	intercepts map[string]func() error
}

// NewFakeClient returns an empty fake backend.
func NewFakeClient() *FakeClient {
	return &FakeClient{
		Ratings:     make(map[daykey.Date]domain.PerformanceRating),
		Reflections: make(map[string]domain.Reflection),
		calls:       make(map[string]int),
		failures:    make(map[string]error),
		intercepts:  make(map[string]func() error),
	}
}

// FailWith makes every subsequent call to op return err. A nil err clears
// the injection.
func (f *FakeClient) FailWith(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.failures, op)
		return
	}
	f.failures[op] = err
}

// Intercept installs a hook run at the start of each call to op. The hook
// may block to control interleaving; a non-nil result fails the call.
func (f *FakeClient) Intercept(op string, fn func() error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if fn == nil {
		delete(f.intercepts, op)
		return
	}
	f.intercepts[op] = fn
}

// Calls returns how many times op has been invoked.
func (f *FakeClient) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

// begin records the call and applies intercepts and injected failures.
// The intercept runs outside the lock so it may block.
func (f *FakeClient) begin(op string) error {
	f.mu.Lock()
	f.calls[op]++
	fn := f.intercepts[op]
	err := f.failures[op]
	f.mu.Unlock()

	if fn != nil {
		if hookErr := fn(); hookErr != nil {
			return hookErr
		}
	}
	return err
}

func (f *FakeClient) GetTasks(ctx context.Context) ([]domain.Task, error) {
	if err := f.begin(remote.OpGetTasks); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Task, len(f.Tasks))
	copy(out, f.Tasks)
	return out, nil
}

func (f *FakeClient) AddTask(ctx context.Context, title, description string, dueDate daykey.Instant) error {
	if err := f.begin(remote.OpAddTask); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.Tasks {
		if t.Title == title {
			return remote.ErrAlreadyExists
		}
	}
	f.Tasks = append(f.Tasks, domain.Task{Title: title, Description: description, DueDate: dueDate})
	return nil
}

func (f *FakeClient) ToggleTaskStatus(ctx context.Context, title string) error {
	if err := f.begin(remote.OpToggleTaskStatus); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.Tasks {
		if f.Tasks[i].Title == title {
			f.Tasks[i].Status = !f.Tasks[i].Status
			return nil
		}
	}
	return remote.ErrNotFound
}

func (f *FakeClient) GetDailies(ctx context.Context) ([]domain.ChecklistItem, error) {
	if err := f.begin(remote.OpGetDailies); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.ChecklistItem, len(f.Dailies))
	copy(out, f.Dailies)
	return out, nil
}

func (f *FakeClient) AddDaily(ctx context.Context, text string) error {
	if err := f.begin(remote.OpAddDaily); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.Dailies {
		if d.Text == text {
			return remote.ErrAlreadyExists
		}
	}
	f.Dailies = append(f.Dailies, domain.ChecklistItem{Text: text})
	return nil
}

func (f *FakeClient) ToggleDaily(ctx context.Context, text string) error {
	if err := f.begin(remote.OpToggleDaily); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.Dailies {
		if f.Dailies[i].Text == text {
			f.Dailies[i].IsComplete = !f.Dailies[i].IsComplete
			return nil
		}
	}
	return remote.ErrNotFound
}

func (f *FakeClient) GetGoals(ctx context.Context) ([]domain.Goal, error) {
	if err := f.begin(remote.OpGetGoals); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Goal, len(f.Goals))
	copy(out, f.Goals)
	return out, nil
}

func (f *FakeClient) AddGoal(ctx context.Context, text string, targetDate daykey.Instant) error {
	if err := f.begin(remote.OpAddGoal); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, g := range f.Goals {
		if g.Text == text {
			return remote.ErrAlreadyExists
		}
	}
	f.Goals = append(f.Goals, domain.Goal{Text: text, TargetDate: targetDate})
	return nil
}

func (f *FakeClient) UpdateGoalStatus(ctx context.Context, text string, isCompleted bool) error {
	if err := f.begin(remote.OpUpdateGoalStatus); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.Goals {
		if f.Goals[i].Text == text {
			f.Goals[i].IsCompleted = isCompleted
			return nil
		}
	}
	return remote.ErrNotFound
}

func (f *FakeClient) GetPerformanceRating(ctx context.Context, date daykey.Instant) (domain.Option[domain.PerformanceRating], error) {
	if err := f.begin(remote.OpGetPerformanceRating); err != nil {
		return domain.None[domain.PerformanceRating](), err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.Ratings[daykey.FromInstant(date)]; ok {
		return domain.Some(r), nil
	}
	return domain.None[domain.PerformanceRating](), nil
}

func (f *FakeClient) SetPerformanceRating(ctx context.Context, date daykey.Instant, score int) error {
	if err := f.begin(remote.OpSetPerformanceRating); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Ratings[daykey.FromInstant(date)] = domain.PerformanceRating{Date: date, Score: score}
	return nil
}

func (f *FakeClient) GetAllPerformanceRatings(ctx context.Context) ([]domain.PerformanceRating, error) {
	if err := f.begin(remote.OpGetAllPerformanceRatings); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.PerformanceRating, 0, len(f.Ratings))
	for _, r := range f.Ratings {
		out = append(out, r)
	}
	return out, nil
}

func (f *FakeClient) GetReflection(ctx context.Context, dateKey string) (domain.Option[domain.Reflection], error) {
	if err := f.begin(remote.OpGetReflection); err != nil {
		return domain.None[domain.Reflection](), err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.Reflections[dateKey]; ok {
		return domain.Some(r), nil
	}
	return domain.None[domain.Reflection](), nil
}

func (f *FakeClient) SaveReflection(ctx context.Context, dateKey, content string) error {
	if err := f.begin(remote.OpSaveReflection); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Reflections[dateKey] = domain.Reflection{Date: dateKey, Content: content}
	return nil
}

func (f *FakeClient) GetAllReflections(ctx context.Context) ([]domain.Reflection, error) {
	if err := f.begin(remote.OpGetAllReflections); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Reflection, 0, len(f.Reflections))
	for _, r := range f.Reflections {
		out = append(out, r)
	}
	return out, nil
}
