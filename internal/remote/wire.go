package remote

import (
	"dayboard/internal/daykey"
	"dayboard/internal/domain"
)

// Operation names, one POST endpoint per operation under /api/.
const (
	OpGetTasks                 = "getTasks"
	OpAddTask                  = "addTask"
	OpToggleTaskStatus         = "toggleTaskStatus"
	OpGetDailies               = "getDailies"
	OpAddDaily                 = "addDaily"
	OpToggleDaily              = "toggleDaily"
	OpGetGoals                 = "getGoals"
	OpAddGoal                  = "addGoal"
	OpUpdateGoalStatus         = "updateGoalStatus"
	OpGetPerformanceRating     = "getPerformanceRating"
	OpSetPerformanceRating     = "setPerformanceRating"
	OpGetAllPerformanceRatings = "getAllPerformanceRatings"
	OpGetReflection            = "getReflection"
	OpSaveReflection           = "saveReflection"
	OpGetAllReflections        = "getAllReflections"
)

// Wire representations. Instants travel as int64 nanosecond counts.

type WireTask struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     int64  `json:"dueDate"`
	Status      bool   `json:"status"`
}

type WireChecklistItem struct {
	Text       string `json:"text"`
	IsComplete bool   `json:"isComplete"`
}

type WireGoal struct {
	Text        string `json:"text"`
	TargetDate  int64  `json:"targetDate"`
	IsCompleted bool   `json:"isCompleted"`
}

type WireRating struct {
	Date  int64 `json:"date"`
	Score int   `json:"score"`
}

type WireReflection struct {
	Date    string `json:"date"`
	Content string `json:"content"`
}

// Request bodies.

type AddTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     int64  `json:"dueDate"`
}

type ToggleTaskRequest struct {
	Title string `json:"title"`
}

type AddDailyRequest struct {
	Text string `json:"text"`
}

type ToggleDailyRequest struct {
	Text string `json:"text"`
}

type AddGoalRequest struct {
	Text       string `json:"text"`
	TargetDate int64  `json:"targetDate"`
}

type UpdateGoalStatusRequest struct {
	Text        string `json:"text"`
	IsCompleted bool   `json:"isCompleted"`
}

type RatingQueryRequest struct {
	Date int64 `json:"date"`
}

type SetRatingRequest struct {
	Date  int64 `json:"date"`
	Score int   `json:"score"`
}

type ReflectionQueryRequest struct {
	Date string `json:"date"`
}

type SaveReflectionRequest struct {
	Date    string `json:"date"`
	Content string `json:"content"`
}

// Response bodies. Optional records use a nullable pointer on the wire.

type TasksResponse struct {
	Tasks []WireTask `json:"tasks"`
}

type DailiesResponse struct {
	Items []WireChecklistItem `json:"items"`
}

type GoalsResponse struct {
	Goals []WireGoal `json:"goals"`
}

type RatingResponse struct {
	Rating *WireRating `json:"rating"`
}

type RatingsResponse struct {
	Ratings []WireRating `json:"ratings"`
}

type ReflectionResponse struct {
	Reflection *WireReflection `json:"reflection"`
}

type ReflectionsResponse struct {
	Reflections []WireReflection `json:"reflections"`
}

// ErrorResponse carries a backend rejection message, propagated verbatim to
// the user.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (w WireTask) Domain() domain.Task {
	return domain.Task{
		Title:       w.Title,
		Description: w.Description,
		DueDate:     daykey.Instant(w.DueDate),
		Status:      w.Status,
	}
}

func TaskToWire(t domain.Task) WireTask {
	return WireTask{
		Title:       t.Title,
		Description: t.Description,
		DueDate:     int64(t.DueDate),
		Status:      t.Status,
	}
}

func (w WireChecklistItem) Domain() domain.ChecklistItem {
	return domain.ChecklistItem{Text: w.Text, IsComplete: w.IsComplete}
}

func ChecklistItemToWire(c domain.ChecklistItem) WireChecklistItem {
	return WireChecklistItem{Text: c.Text, IsComplete: c.IsComplete}
}

func (w WireGoal) Domain() domain.Goal {
	return domain.Goal{
		Text:        w.Text,
		TargetDate:  daykey.Instant(w.TargetDate),
		IsCompleted: w.IsCompleted,
	}
}

func GoalToWire(g domain.Goal) WireGoal {
	return WireGoal{Text: g.Text, TargetDate: int64(g.TargetDate), IsCompleted: g.IsCompleted}
}

func (w WireRating) Domain() domain.PerformanceRating {
	return domain.PerformanceRating{Date: daykey.Instant(w.Date), Score: w.Score}
}

func RatingToWire(r domain.PerformanceRating) WireRating {
	return WireRating{Date: int64(r.Date), Score: r.Score}
}

func (w WireReflection) Domain() domain.Reflection {
	return domain.Reflection{Date: w.Date, Content: w.Content}
}

func ReflectionToWire(r domain.Reflection) WireReflection {
	return WireReflection{Date: r.Date, Content: r.Content}
}
