package remote

import (
	"context"

	"dayboard/internal/daykey"
	"dayboard/internal/domain"
)

// gatedClient wraps a Client with session awareness: with no active session,
// queries degrade to empty results and mutations fail with ErrNotConnected,
// without touching the inner client.
type gatedClient struct {
	inner   Client
	session *Session
}

// Gated returns a session-gated view of the given client.
func Gated(inner Client, session *Session) Client {
	return &gatedClient{inner: inner, session: session}
}

func (g *gatedClient) GetTasks(ctx context.Context) ([]domain.Task, error) {
	if !g.session.Active() {
		return nil, nil
	}
	return g.inner.GetTasks(ctx)
}

func (g *gatedClient) AddTask(ctx context.Context, title, description string, dueDate daykey.Instant) error {
	if !g.session.Active() {
		return ErrNotConnected
	}
	return g.inner.AddTask(ctx, title, description, dueDate)
}

func (g *gatedClient) ToggleTaskStatus(ctx context.Context, title string) error {
	if !g.session.Active() {
		return ErrNotConnected
	}
	return g.inner.ToggleTaskStatus(ctx, title)
}

func (g *gatedClient) GetDailies(ctx context.Context) ([]domain.ChecklistItem, error) {
	if !g.session.Active() {
		return nil, nil
	}
	return g.inner.GetDailies(ctx)
}

func (g *gatedClient) AddDaily(ctx context.Context, text string) error {
	if !g.session.Active() {
		return ErrNotConnected
	}
	return g.inner.AddDaily(ctx, text)
}

func (g *gatedClient) ToggleDaily(ctx context.Context, text string) error {
	if !g.session.Active() {
		return ErrNotConnected
	}
	return g.inner.ToggleDaily(ctx, text)
}

func (g *gatedClient) GetGoals(ctx context.Context) ([]domain.Goal, error) {
	if !g.session.Active() {
		return nil, nil
	}
	return g.inner.GetGoals(ctx)
}

func (g *gatedClient) AddGoal(ctx context.Context, text string, targetDate daykey.Instant) error {
	if !g.session.Active() {
		return ErrNotConnected
	}
	return g.inner.AddGoal(ctx, text, targetDate)
}

func (g *gatedClient) UpdateGoalStatus(ctx context.Context, text string, isCompleted bool) error {
	if !g.session.Active() {
		return ErrNotConnected
	}
	return g.inner.UpdateGoalStatus(ctx, text, isCompleted)
}

func (g *gatedClient) GetPerformanceRating(ctx context.Context, date daykey.Instant) (domain.Option[domain.PerformanceRating], error) {
	if !g.session.Active() {
		return domain.None[domain.PerformanceRating](), nil
	}
	return g.inner.GetPerformanceRating(ctx, date)
}

func (g *gatedClient) SetPerformanceRating(ctx context.Context, date daykey.Instant, score int) error {
	if !g.session.Active() {
		return ErrNotConnected
	}
	return g.inner.SetPerformanceRating(ctx, date, score)
}

func (g *gatedClient) GetAllPerformanceRatings(ctx context.Context) ([]domain.PerformanceRating, error) {
	if !g.session.Active() {
		return nil, nil
	}
	return g.inner.GetAllPerformanceRatings(ctx)
}

func (g *gatedClient) GetReflection(ctx context.Context, dateKey string) (domain.Option[domain.Reflection], error) {
	if !g.session.Active() {
		return domain.None[domain.Reflection](), nil
	}
	return g.inner.GetReflection(ctx, dateKey)
}

func (g *gatedClient) SaveReflection(ctx context.Context, dateKey, content string) error {
	if !g.session.Active() {
		return ErrNotConnected
	}
	return g.inner.SaveReflection(ctx, dateKey, content)
}

func (g *gatedClient) GetAllReflections(ctx context.Context) ([]domain.Reflection, error) {
	if !g.session.Active() {
		return nil, nil
	}
	return g.inner.GetAllReflections(ctx)
}
