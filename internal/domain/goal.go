package domain

import (
	"sort"

	"dayboard/internal/daykey"
)

// Goal is a future objective with a target date, identified by its text.
type Goal struct {
	Text        string
	TargetDate  daykey.Instant
	IsCompleted bool
}

// SortGoalsByTarget orders goals by ascending target date, the display order
// used everywhere goals are listed.
func SortGoalsByTarget(goals []Goal) {
	sort.SliceStable(goals, func(i, j int) bool {
		return goals[i].TargetDate < goals[j].TargetDate
	})
}
