package domain

import (
	"fmt"

	"dayboard/internal/daykey"
)

// Score bounds for a daily performance rating.
const (
	MinScore = 1
	MaxScore = 10
)

// PerformanceRating is the 1-10 self-assessment for one calendar day.
// Date is the instant at local midnight; at most one rating exists per day.
type PerformanceRating struct {
	Date  daykey.Instant
	Score int
}

// Day returns the calendar date this rating belongs to.
func (r PerformanceRating) Day() daykey.Date {
	return daykey.FromInstant(r.Date)
}

// ValidateScore rejects scores outside [MinScore, MaxScore]. Out-of-range
// values are a caller contract violation and never reach the backend.
func ValidateScore(score int) error {
	if score < MinScore || score > MaxScore {
		return fmt.Errorf("score must be between %d and %d, got %d", MinScore, MaxScore, score)
	}
	return nil
}
