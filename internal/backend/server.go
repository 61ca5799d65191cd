package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"dayboard/internal/daykey"
	"dayboard/internal/domain"
	"dayboard/internal/remote"
)

// Server exposes a Store over HTTP: one POST endpoint per backend operation
// under /api/, with JSON bodies matching the remote wire types.
type Server struct {
	store  *Store
	logger *slog.Logger
	mux    *http.ServeMux
}

// NewServer builds the HTTP surface for a store. A nil logger disables
// request logging.
func NewServer(store *Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{store: store, logger: logger, mux: http.NewServeMux()}
	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	s.mux.ServeHTTP(w, r)
	s.logger.Info("request", "method", r.Method, "path", r.URL.Path, "duration_ms", time.Since(start).Milliseconds())
}

func (s *Server) routes() {
	s.handle(remote.OpGetTasks, s.getTasks)
	s.handle(remote.OpAddTask, s.addTask)
	s.handle(remote.OpToggleTaskStatus, s.toggleTaskStatus)
	s.handle(remote.OpGetDailies, s.getDailies)
	s.handle(remote.OpAddDaily, s.addDaily)
	s.handle(remote.OpToggleDaily, s.toggleDaily)
	s.handle(remote.OpGetGoals, s.getGoals)
	s.handle(remote.OpAddGoal, s.addGoal)
	s.handle(remote.OpUpdateGoalStatus, s.updateGoalStatus)
	s.handle(remote.OpGetPerformanceRating, s.getPerformanceRating)
	s.handle(remote.OpSetPerformanceRating, s.setPerformanceRating)
	s.handle(remote.OpGetAllPerformanceRatings, s.getAllPerformanceRatings)
	s.handle(remote.OpGetReflection, s.getReflection)
	s.handle(remote.OpSaveReflection, s.saveReflection)
	s.handle(remote.OpGetAllReflections, s.getAllReflections)
}

func (s *Server) handle(op string, fn func(*http.Request) (any, error)) {
	s.mux.HandleFunc("POST /api/"+op, func(w http.ResponseWriter, r *http.Request) {
		resp, err := fn(r)
		if err != nil {
			s.writeError(w, op, err)
			return
		}
		if resp == nil {
			resp = struct{}{}
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			s.logger.Error("encoding response", "op", op, "error", err)
		}
	})
}

// writeError maps contract violations to 4xx and everything else to 500,
// carrying the message verbatim for the client to surface.
func (s *Server) writeError(w http.ResponseWriter, op string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, remote.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, remote.ErrAlreadyExists):
		status = http.StatusConflict
	case isValidationError(err):
		status = http.StatusBadRequest
	}
	s.logger.Warn("rejection", "op", op, "status", status, "error", err.Error())
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(remote.ErrorResponse{Error: err.Error()})
}

// validationError marks caller contract violations (bad score, empty title).
type validationError struct {
	err error
}

func (v validationError) Error() string { return v.err.Error() }
func (v validationError) Unwrap() error { return v.err }

func isValidationError(err error) bool {
	var v validationError
	return errors.As(err, &v)
}

func decode[T any](r *http.Request) (T, error) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, validationError{fmt.Errorf("invalid request body: %w", err)}
	}
	return req, nil
}

func (s *Server) getTasks(r *http.Request) (any, error) {
	tasks, err := s.store.GetTasks(r.Context())
	if err != nil {
		return nil, err
	}
	resp := remote.TasksResponse{Tasks: make([]remote.WireTask, 0, len(tasks))}
	for _, t := range tasks {
		resp.Tasks = append(resp.Tasks, remote.TaskToWire(t))
	}
	return resp, nil
}

func (s *Server) addTask(r *http.Request) (any, error) {
	req, err := decode[remote.AddTaskRequest](r)
	if err != nil {
		return nil, err
	}
	return nil, s.store.AddTask(r.Context(), req.Title, req.Description, daykey.Instant(req.DueDate))
}

func (s *Server) toggleTaskStatus(r *http.Request) (any, error) {
	req, err := decode[remote.ToggleTaskRequest](r)
	if err != nil {
		return nil, err
	}
	return nil, s.store.ToggleTaskStatus(r.Context(), req.Title)
}

func (s *Server) getDailies(r *http.Request) (any, error) {
	items, err := s.store.GetDailies(r.Context())
	if err != nil {
		return nil, err
	}
	resp := remote.DailiesResponse{Items: make([]remote.WireChecklistItem, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, remote.ChecklistItemToWire(item))
	}
	return resp, nil
}

func (s *Server) addDaily(r *http.Request) (any, error) {
	req, err := decode[remote.AddDailyRequest](r)
	if err != nil {
		return nil, err
	}
	return nil, s.store.AddDaily(r.Context(), req.Text)
}

func (s *Server) toggleDaily(r *http.Request) (any, error) {
	req, err := decode[remote.ToggleDailyRequest](r)
	if err != nil {
		return nil, err
	}
	return nil, s.store.ToggleDaily(r.Context(), req.Text)
}

func (s *Server) getGoals(r *http.Request) (any, error) {
	goals, err := s.store.GetGoals(r.Context())
	if err != nil {
		return nil, err
	}
	resp := remote.GoalsResponse{Goals: make([]remote.WireGoal, 0, len(goals))}
	for _, g := range goals {
		resp.Goals = append(resp.Goals, remote.GoalToWire(g))
	}
	return resp, nil
}

func (s *Server) addGoal(r *http.Request) (any, error) {
	req, err := decode[remote.AddGoalRequest](r)
	if err != nil {
		return nil, err
	}
	return nil, s.store.AddGoal(r.Context(), req.Text, daykey.Instant(req.TargetDate))
}

func (s *Server) updateGoalStatus(r *http.Request) (any, error) {
	req, err := decode[remote.UpdateGoalStatusRequest](r)
	if err != nil {
		return nil, err
	}
	return nil, s.store.UpdateGoalStatus(r.Context(), req.Text, req.IsCompleted)
}

func (s *Server) getPerformanceRating(r *http.Request) (any, error) {
	req, err := decode[remote.RatingQueryRequest](r)
	if err != nil {
		return nil, err
	}
	rating, err := s.store.GetPerformanceRating(r.Context(), daykey.Instant(req.Date))
	if err != nil {
		return nil, err
	}
	resp := remote.RatingResponse{}
	if v, ok := rating.Get(); ok {
		wire := remote.RatingToWire(v)
		resp.Rating = &wire
	}
	return resp, nil
}

func (s *Server) setPerformanceRating(r *http.Request) (any, error) {
	req, err := decode[remote.SetRatingRequest](r)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateScore(req.Score); err != nil {
		return nil, validationError{err}
	}
	return nil, s.store.SetPerformanceRating(r.Context(), daykey.Instant(req.Date), req.Score)
}

func (s *Server) getAllPerformanceRatings(r *http.Request) (any, error) {
	ratings, err := s.store.GetAllPerformanceRatings(r.Context())
	if err != nil {
		return nil, err
	}
	resp := remote.RatingsResponse{Ratings: make([]remote.WireRating, 0, len(ratings))}
	for _, rating := range ratings {
		resp.Ratings = append(resp.Ratings, remote.RatingToWire(rating))
	}
	return resp, nil
}

func (s *Server) getReflection(r *http.Request) (any, error) {
	req, err := decode[remote.ReflectionQueryRequest](r)
	if err != nil {
		return nil, err
	}
	reflection, err := s.store.GetReflection(r.Context(), req.Date)
	if err != nil {
		return nil, err
	}
	resp := remote.ReflectionResponse{}
	if v, ok := reflection.Get(); ok {
		wire := remote.ReflectionToWire(v)
		resp.Reflection = &wire
	}
	return resp, nil
}

func (s *Server) saveReflection(r *http.Request) (any, error) {
	req, err := decode[remote.SaveReflectionRequest](r)
	if err != nil {
		return nil, err
	}
	if _, err := daykey.ParseKey(req.Date); err != nil {
		return nil, validationError{err}
	}
	return nil, s.store.SaveReflection(r.Context(), req.Date, req.Content)
}

func (s *Server) getAllReflections(r *http.Request) (any, error) {
	reflections, err := s.store.GetAllReflections(r.Context())
	if err != nil {
		return nil, err
	}
	resp := remote.ReflectionsResponse{Reflections: make([]remote.WireReflection, 0, len(reflections))}
	for _, reflection := range reflections {
		resp.Reflections = append(resp.Reflections, remote.ReflectionToWire(reflection))
	}
	return resp, nil
}
