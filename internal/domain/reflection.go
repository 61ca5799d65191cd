package domain

// Reflection is the free-text daily note, keyed by its YYYY-MM-DD date string
// rather than an instant.
type Reflection struct {
	Date    string
	Content string
}
