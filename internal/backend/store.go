package backend

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"dayboard/internal/daykey"
	"dayboard/internal/domain"
	"dayboard/internal/remote"
)

// Store is the local backend: a SQLite-backed implementation of the remote
// contract, used in-process by the CLI and behind the HTTP server. The
// contract's identity rules hold here: titles and texts are primary keys,
// day-keyed records upsert, nothing is ever deleted.
type Store struct {
	db *sql.DB
}

// NewStore wraps an opened backend database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetTasks(ctx context.Context) ([]domain.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT title, description, due_date, status FROM tasks ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		var t domain.Task
		var due int64
		var status int
		if err := rows.Scan(&t.Title, &t.Description, &due, &status); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		t.DueDate = daykey.Instant(due)
		t.Status = intToBool(status)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Store) AddTask(ctx context.Context, title, description string, dueDate daykey.Instant) error {
	if title == "" {
		return fmt.Errorf("task title is required")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (title, description, due_date, status, created_at) VALUES (?, ?, ?, 0, ?)`,
		title, description, int64(dueDate), nowUTC())
	if isUniqueViolation(err) {
		return fmt.Errorf("task %q: %w", title, remote.ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (s *Store) ToggleTaskStatus(ctx context.Context, title string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET status = 1 - status WHERE title = ?`, title)
	if err != nil {
		return fmt.Errorf("toggling task: %w", err)
	}
	return requireOneRow(res, fmt.Sprintf("task %q", title))
}

func (s *Store) GetDailies(ctx context.Context) ([]domain.ChecklistItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT text, is_complete FROM dailies ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("listing dailies: %w", err)
	}
	defer rows.Close()

	var items []domain.ChecklistItem
	for rows.Next() {
		var item domain.ChecklistItem
		var complete int
		if err := rows.Scan(&item.Text, &complete); err != nil {
			return nil, fmt.Errorf("scanning checklist item: %w", err)
		}
		item.IsComplete = intToBool(complete)
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Store) AddDaily(ctx context.Context, text string) error {
	if text == "" {
		return fmt.Errorf("checklist item text is required")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO dailies (text, is_complete, created_at) VALUES (?, 0, ?)`, text, nowUTC())
	if isUniqueViolation(err) {
		return fmt.Errorf("checklist item %q: %w", text, remote.ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("inserting checklist item: %w", err)
	}
	return nil
}

func (s *Store) ToggleDaily(ctx context.Context, text string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE dailies SET is_complete = 1 - is_complete WHERE text = ?`, text)
	if err != nil {
		return fmt.Errorf("toggling checklist item: %w", err)
	}
	return requireOneRow(res, fmt.Sprintf("checklist item %q", text))
}

func (s *Store) GetGoals(ctx context.Context) ([]domain.Goal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT text, target_date, is_completed FROM goals ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	defer rows.Close()

	var goals []domain.Goal
	for rows.Next() {
		var g domain.Goal
		var target int64
		var completed int
		if err := rows.Scan(&g.Text, &target, &completed); err != nil {
			return nil, fmt.Errorf("scanning goal: %w", err)
		}
		g.TargetDate = daykey.Instant(target)
		g.IsCompleted = intToBool(completed)
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (s *Store) AddGoal(ctx context.Context, text string, targetDate daykey.Instant) error {
	if text == "" {
		return fmt.Errorf("goal text is required")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO goals (text, target_date, is_completed, created_at) VALUES (?, ?, 0, ?)`,
		text, int64(targetDate), nowUTC())
	if isUniqueViolation(err) {
		return fmt.Errorf("goal %q: %w", text, remote.ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("inserting goal: %w", err)
	}
	return nil
}

func (s *Store) UpdateGoalStatus(ctx context.Context, text string, isCompleted bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE goals SET is_completed = ? WHERE text = ?`, boolToInt(isCompleted), text)
	if err != nil {
		return fmt.Errorf("updating goal: %w", err)
	}
	return requireOneRow(res, fmt.Sprintf("goal %q", text))
}

func (s *Store) GetPerformanceRating(ctx context.Context, date daykey.Instant) (domain.Option[domain.PerformanceRating], error) {
	day := daykey.FromInstant(date).Key()
	var stored int64
	var score int
	err := s.db.QueryRowContext(ctx,
		`SELECT date, score FROM ratings WHERE day = ?`, day).Scan(&stored, &score)
	if err == sql.ErrNoRows {
		return domain.None[domain.PerformanceRating](), nil
	}
	if err != nil {
		return domain.None[domain.PerformanceRating](), fmt.Errorf("reading rating: %w", err)
	}
	return domain.Some(domain.PerformanceRating{Date: daykey.Instant(stored), Score: score}), nil
}

func (s *Store) SetPerformanceRating(ctx context.Context, date daykey.Instant, score int) error {
	if err := domain.ValidateScore(score); err != nil {
		return err
	}
	day := daykey.FromInstant(date).Key()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO ratings (day, date, score, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(day) DO UPDATE SET date = excluded.date, score = excluded.score, updated_at = excluded.updated_at`,
		day, int64(date), score, nowUTC())
	if err != nil {
		return fmt.Errorf("upserting rating: %w", err)
	}
	return nil
}

func (s *Store) GetAllPerformanceRatings(ctx context.Context) ([]domain.PerformanceRating, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT date, score FROM ratings ORDER BY day`)
	if err != nil {
		return nil, fmt.Errorf("listing ratings: %w", err)
	}
	defer rows.Close()

	var ratings []domain.PerformanceRating
	for rows.Next() {
		var stored int64
		var score int
		if err := rows.Scan(&stored, &score); err != nil {
			return nil, fmt.Errorf("scanning rating: %w", err)
		}
		ratings = append(ratings, domain.PerformanceRating{Date: daykey.Instant(stored), Score: score})
	}
	return ratings, rows.Err()
}

func (s *Store) GetReflection(ctx context.Context, dateKey string) (domain.Option[domain.Reflection], error) {
	var r domain.Reflection
	err := s.db.QueryRowContext(ctx,
		`SELECT day, content FROM reflections WHERE day = ?`, dateKey).Scan(&r.Date, &r.Content)
	if err == sql.ErrNoRows {
		return domain.None[domain.Reflection](), nil
	}
	if err != nil {
		return domain.None[domain.Reflection](), fmt.Errorf("reading reflection: %w", err)
	}
	return domain.Some(r), nil
}

func (s *Store) SaveReflection(ctx context.Context, dateKey, content string) error {
	if _, err := daykey.ParseKey(dateKey); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO reflections (day, content, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(day) DO UPDATE SET content = excluded.content, updated_at = excluded.updated_at`,
		dateKey, content, nowUTC())
	if err != nil {
		return fmt.Errorf("upserting reflection: %w", err)
	}
	return nil
}

func (s *Store) GetAllReflections(ctx context.Context) ([]domain.Reflection, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT day, content FROM reflections ORDER BY day`)
	if err != nil {
		return nil, fmt.Errorf("listing reflections: %w", err)
	}
	defer rows.Close()

	var reflections []domain.Reflection
	for rows.Next() {
		var r domain.Reflection
		if err := rows.Scan(&r.Date, &r.Content); err != nil {
			return nil, fmt.Errorf("scanning reflection: %w", err)
		}
		reflections = append(reflections, r)
	}
	return reflections, rows.Err()
}

func requireOneRow(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, remote.ErrNotFound)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool {
	return i != 0
}

func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
