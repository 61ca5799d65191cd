package cli

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"dayboard/internal/dateindex"
	"dayboard/internal/mutation"
	"dayboard/internal/queries"
	"dayboard/internal/querycache"
	"dayboard/internal/remote"
	"dayboard/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestApp wires an App against the in-memory fake backend with an active
// session.
func newTestApp(t *testing.T) (*App, *testutil.FakeClient) {
	t.Helper()
	fake := testutil.NewFakeClient()
	session := remote.NewSession()
	session.Login("tester")
	client := remote.Gated(fake, session)

	store := querycache.NewStore()
	q := queries.New(store, client)
	coord := mutation.NewCoordinator(store, client, mutation.NoopNotifier{}, mutation.NoopObserver{})

	saver := mutation.NewReflectionSaver(coord.SaveReflection, 5*time.Millisecond)
	t.Cleanup(saver.Close)

	return &App{
		Queries:   q,
		Mutations: coord,
		Index:     dateindex.New(q),
		Session:   session,
		Saver:     saver,
	}, fake
}

// runCommand executes args through the cobra tree, capturing stdout.
func runCommand(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	pr, pw, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = pw

	root := NewRootCmd(app)
	root.SetOut(pw)
	root.SetErr(pw)
	root.SetArgs(args)
	root.SilenceUsage = true
	root.SilenceErrors = true

	var out strings.Builder
	done := make(chan struct{})
	go func() {
		io.Copy(&out, pr)
		close(done)
	}()

	execErr := root.Execute()

	pw.Close()
	os.Stdout = origStdout
	<-done

	return out.String(), execErr
}

func TestTaskAddAndList(t *testing.T) {
	app, _ := newTestApp(t)

	_, err := runCommand(t, app, "task", "add", "--title", "Pay rent", "--desc", "before noon", "--due", "2024-03-15")
	require.NoError(t, err)

	out, err := runCommand(t, app, "task", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Pay rent")
	assert.Contains(t, out, "before noon")
	assert.Contains(t, out, "Open")
}

func TestTaskToggle(t *testing.T) {
	app, fake := newTestApp(t)

	_, err := runCommand(t, app, "task", "add", "--title", "Pay rent", "--due", "2024-03-15")
	require.NoError(t, err)
	_, err = runCommand(t, app, "task", "toggle", "Pay rent")
	require.NoError(t, err)

	assert.Equal(t, 1, fake.Calls(remote.OpToggleTaskStatus))

	out, err := runCommand(t, app, "task", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Done")
}

func TestTaskAddRejectsBadDate(t *testing.T) {
	app, fake := newTestApp(t)

	_, err := runCommand(t, app, "task", "add", "--title", "Pay rent", "--due", "15/03/2024")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
	assert.Equal(t, 0, fake.Calls(remote.OpAddTask))
}

func TestDailyAddToggleList(t *testing.T) {
	app, _ := newTestApp(t)

	_, err := runCommand(t, app, "daily", "add", "Morning", "run")
	require.NoError(t, err)
	_, err = runCommand(t, app, "daily", "toggle", "Morning", "run")
	require.NoError(t, err)

	out, err := runCommand(t, app, "daily", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "[x]")
	assert.Contains(t, out, "Morning run")
}

func TestGoalListSortedByTarget(t *testing.T) {
	app, _ := newTestApp(t)

	_, err := runCommand(t, app, "goal", "add", "--text", "Later goal", "--target", "2024-09-01")
	require.NoError(t, err)
	_, err = runCommand(t, app, "goal", "add", "--text", "Sooner goal", "--target", "2024-04-01")
	require.NoError(t, err)

	out, err := runCommand(t, app, "goal", "list")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Sooner goal"), strings.Index(out, "Later goal"))
}

func TestGoalDoneAndReopen(t *testing.T) {
	app, _ := newTestApp(t)

	_, err := runCommand(t, app, "goal", "add", "--text", "Run a marathon", "--target", "2024-09-01")
	require.NoError(t, err)
	_, err = runCommand(t, app, "goal", "done", "Run a marathon")
	require.NoError(t, err)

	out, err := runCommand(t, app, "goal", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Done")

	_, err = runCommand(t, app, "goal", "reopen", "Run a marathon")
	require.NoError(t, err)

	out, err = runCommand(t, app, "goal", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Open")
}

func TestRatingSetAndShow(t *testing.T) {
	app, _ := newTestApp(t)

	_, err := runCommand(t, app, "rating", "set", "8", "--date", "2024-03-15")
	require.NoError(t, err)

	out, err := runCommand(t, app, "rating", "show", "2024-03-15")
	require.NoError(t, err)
	assert.Contains(t, out, "8/10")
}

func TestRatingShowUnrated(t *testing.T) {
	app, _ := newTestApp(t)

	out, err := runCommand(t, app, "rating", "show", "2024-03-15")
	require.NoError(t, err)
	assert.Contains(t, out, "not rated")
}

func TestRatingSetRejectsOutOfRange(t *testing.T) {
	app, fake := newTestApp(t)

	_, err := runCommand(t, app, "rating", "set", "11", "--date", "2024-03-15")
	require.Error(t, err)
	assert.Equal(t, 0, fake.Calls(remote.OpSetPerformanceRating))
}

func TestJournalNewestFirst(t *testing.T) {
	app, _ := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, app.Mutations.SaveReflection(ctx, testutil.Day(2024, time.March, 10), "older entry"))
	require.NoError(t, app.Mutations.SaveReflection(ctx, testutil.Day(2024, time.March, 15), "newer entry"))

	out, err := runCommand(t, app, "journal")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "newer entry"), strings.Index(out, "older entry"))
}

func TestDayShowsAllSections(t *testing.T) {
	app, _ := newTestApp(t)

	_, err := runCommand(t, app, "task", "add", "--title", "Pay rent", "--due", "2024-03-15")
	require.NoError(t, err)
	_, err = runCommand(t, app, "rating", "set", "7", "--date", "2024-03-15")
	require.NoError(t, err)

	out, err := runCommand(t, app, "day", "2024-03-15")
	require.NoError(t, err)
	assert.Contains(t, out, "Pay rent")
	assert.Contains(t, out, "7/10")
	assert.Contains(t, out, "No reflection yet.")
}

func TestCalendarShowsMarkers(t *testing.T) {
	app, _ := newTestApp(t)

	_, err := runCommand(t, app, "task", "add", "--title", "Pay rent", "--due", "2024-03-15")
	require.NoError(t, err)

	out, err := runCommand(t, app, "calendar", "2024-03")
	require.NoError(t, err)
	assert.Contains(t, out, "MARCH 2024")
	assert.Contains(t, out, "incomplete")
}

func TestCalendarRejectsBadMonth(t *testing.T) {
	app, _ := newTestApp(t)

	_, err := runCommand(t, app, "calendar", "March-2024")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM")
}

func TestServeWithoutBackendFails(t *testing.T) {
	app, _ := newTestApp(t)

	_, err := runCommand(t, app, "serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "local backend")
}
