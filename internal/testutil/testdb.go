package testutil

import (
	"testing"

	"dayboard/internal/backend"
)

// NewTestStore creates a backend store over an in-memory SQLite database
// with all migrations applied. The database is closed when the test
// completes.
func NewTestStore(t *testing.T) *backend.Store {
	t.Helper()
	db, err := backend.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	return backend.NewStore(db)
}
