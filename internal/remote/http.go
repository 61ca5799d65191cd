package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"dayboard/internal/daykey"
	"dayboard/internal/domain"
)

// HTTPConfig holds the transport settings for an HTTP backend.
type HTTPConfig struct {
	BaseURL   string
	TimeoutMs int
}

// DefaultHTTPConfig returns transport settings for a local backend.
func DefaultHTTPConfig() HTTPConfig {
	return HTTPConfig{
		BaseURL:   "http://localhost:8173",
		TimeoutMs: 10000,
	}
}

// httpClient implements Client against the dayboard HTTP backend. Each
// operation is one POST with a JSON body; timeouts are enforced per call and
// a timeout is indistinguishable from any other transport failure to callers.
type httpClient struct {
	cfg  HTTPConfig
	http *http.Client
}

// NewHTTPClient creates a Client that talks to a dayboard backend over HTTP.
// Zero config fields fall back to DefaultHTTPConfig values.
func NewHTTPClient(cfg HTTPConfig) Client {
	defaults := DefaultHTTPConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.BaseURL
	}
	if cfg.TimeoutMs <= 0 {
		cfg.TimeoutMs = defaults.TimeoutMs
	}
	return &httpClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
	}
}

// call performs one operation round trip. A nil reqBody sends an empty JSON
// object; a nil respBody discards the response payload.
func (c *httpClient) call(ctx context.Context, op string, reqBody, respBody any) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	if reqBody == nil {
		reqBody = struct{}{}
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("encoding %s request: %w", op, err)
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/api/" + op
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var rejection ErrorResponse
		body, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(body, &rejection) == nil && rejection.Error != "" {
			return fmt.Errorf("%s: %s", op, rejection.Error)
		}
		return fmt.Errorf("%s: backend returned status %d", op, resp.StatusCode)
	}

	if respBody == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
		return fmt.Errorf("decoding %s response: %w", op, err)
	}
	return nil
}

func (c *httpClient) GetTasks(ctx context.Context) ([]domain.Task, error) {
	var resp TasksResponse
	if err := c.call(ctx, OpGetTasks, nil, &resp); err != nil {
		return nil, err
	}
	tasks := make([]domain.Task, 0, len(resp.Tasks))
	for _, w := range resp.Tasks {
		tasks = append(tasks, w.Domain())
	}
	return tasks, nil
}

func (c *httpClient) AddTask(ctx context.Context, title, description string, dueDate daykey.Instant) error {
	return c.call(ctx, OpAddTask, AddTaskRequest{
		Title:       title,
		Description: description,
		DueDate:     int64(dueDate),
	}, nil)
}

func (c *httpClient) ToggleTaskStatus(ctx context.Context, title string) error {
	return c.call(ctx, OpToggleTaskStatus, ToggleTaskRequest{Title: title}, nil)
}

func (c *httpClient) GetDailies(ctx context.Context) ([]domain.ChecklistItem, error) {
	var resp DailiesResponse
	if err := c.call(ctx, OpGetDailies, nil, &resp); err != nil {
		return nil, err
	}
	items := make([]domain.ChecklistItem, 0, len(resp.Items))
	for _, w := range resp.Items {
		items = append(items, w.Domain())
	}
	return items, nil
}

func (c *httpClient) AddDaily(ctx context.Context, text string) error {
	return c.call(ctx, OpAddDaily, AddDailyRequest{Text: text}, nil)
}

func (c *httpClient) ToggleDaily(ctx context.Context, text string) error {
	return c.call(ctx, OpToggleDaily, ToggleDailyRequest{Text: text}, nil)
}

func (c *httpClient) GetGoals(ctx context.Context) ([]domain.Goal, error) {
	var resp GoalsResponse
	if err := c.call(ctx, OpGetGoals, nil, &resp); err != nil {
		return nil, err
	}
	goals := make([]domain.Goal, 0, len(resp.Goals))
	for _, w := range resp.Goals {
		goals = append(goals, w.Domain())
	}
	return goals, nil
}

func (c *httpClient) AddGoal(ctx context.Context, text string, targetDate daykey.Instant) error {
	return c.call(ctx, OpAddGoal, AddGoalRequest{Text: text, TargetDate: int64(targetDate)}, nil)
}

func (c *httpClient) UpdateGoalStatus(ctx context.Context, text string, isCompleted bool) error {
	return c.call(ctx, OpUpdateGoalStatus, UpdateGoalStatusRequest{Text: text, IsCompleted: isCompleted}, nil)
}

func (c *httpClient) GetPerformanceRating(ctx context.Context, date daykey.Instant) (domain.Option[domain.PerformanceRating], error) {
	var resp RatingResponse
	if err := c.call(ctx, OpGetPerformanceRating, RatingQueryRequest{Date: int64(date)}, &resp); err != nil {
		return domain.None[domain.PerformanceRating](), err
	}
	if resp.Rating == nil {
		return domain.None[domain.PerformanceRating](), nil
	}
	return domain.Some(resp.Rating.Domain()), nil
}

func (c *httpClient) SetPerformanceRating(ctx context.Context, date daykey.Instant, score int) error {
	return c.call(ctx, OpSetPerformanceRating, SetRatingRequest{Date: int64(date), Score: score}, nil)
}

func (c *httpClient) GetAllPerformanceRatings(ctx context.Context) ([]domain.PerformanceRating, error) {
	var resp RatingsResponse
	if err := c.call(ctx, OpGetAllPerformanceRatings, nil, &resp); err != nil {
		return nil, err
	}
	ratings := make([]domain.PerformanceRating, 0, len(resp.Ratings))
	for _, w := range resp.Ratings {
		ratings = append(ratings, w.Domain())
	}
	return ratings, nil
}

func (c *httpClient) GetReflection(ctx context.Context, dateKey string) (domain.Option[domain.Reflection], error) {
	var resp ReflectionResponse
	if err := c.call(ctx, OpGetReflection, ReflectionQueryRequest{Date: dateKey}, &resp); err != nil {
		return domain.None[domain.Reflection](), err
	}
	if resp.Reflection == nil {
		return domain.None[domain.Reflection](), nil
	}
	return domain.Some(resp.Reflection.Domain()), nil
}

func (c *httpClient) SaveReflection(ctx context.Context, dateKey, content string) error {
	return c.call(ctx, OpSaveReflection, SaveReflectionRequest{Date: dateKey, Content: content}, nil)
}

func (c *httpClient) GetAllReflections(ctx context.Context) ([]domain.Reflection, error) {
	var resp ReflectionsResponse
	if err := c.call(ctx, OpGetAllReflections, nil, &resp); err != nil {
		return nil, err
	}
	reflections := make([]domain.Reflection, 0, len(resp.Reflections))
	for _, w := range resp.Reflections {
		reflections = append(reflections, w.Domain())
	}
	return reflections, nil
}
