package domain

// ChecklistItem is one entry of the daily checklist, identified by its text.
type ChecklistItem struct {
	Text       string
	IsComplete bool
}
