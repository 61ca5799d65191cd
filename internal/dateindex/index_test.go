package dateindex

import (
	"context"
	"testing"
	"time"

	"dayboard/internal/queries"
	"dayboard/internal/querycache"
	"dayboard/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIndex(t *testing.T) (*Index, *testutil.FakeClient, *querycache.Store) {
	t.Helper()
	store := querycache.NewStore()
	client := testutil.NewFakeClient()
	return New(queries.New(store, client)), client, store
}

func TestSummary_March2024Scenario(t *testing.T) {
	idx, client, _ := newTestIndex(t)
	ctx := context.Background()

	// One incomplete task on the 10th, a rating on the 12th.
	require.NoError(t, client.AddTask(ctx, "File taxes", "", testutil.Day(2024, time.March, 10).Instant()))
	require.NoError(t, client.SetPerformanceRating(ctx, testutil.Day(2024, time.March, 12).Instant(), 8))

	day10, err := idx.Summary(ctx, testutil.Day(2024, time.March, 10))
	require.NoError(t, err)
	assert.True(t, day10.HasIncomplete)
	assert.False(t, day10.HasComplete)
	assert.False(t, day10.HasRating)

	day12, err := idx.Summary(ctx, testutil.Day(2024, time.March, 12))
	require.NoError(t, err)
	assert.False(t, day12.HasIncomplete)
	assert.False(t, day12.HasComplete)
	assert.True(t, day12.HasRating)
}

func TestSummary_MixedTasksOnOneDay(t *testing.T) {
	idx, client, _ := newTestIndex(t)
	ctx := context.Background()
	day := testutil.Day(2024, time.March, 10)

	require.NoError(t, client.AddTask(ctx, "done one", "", day.Instant()))
	require.NoError(t, client.ToggleTaskStatus(ctx, "done one"))
	require.NoError(t, client.AddTask(ctx, "open one", "", day.Instant()))

	s, err := idx.Summary(ctx, day)
	require.NoError(t, err)
	assert.True(t, s.HasIncomplete)
	assert.True(t, s.HasComplete)
}

func TestMonth_CoversEveryDay(t *testing.T) {
	idx, client, _ := newTestIndex(t)
	ctx := context.Background()
	require.NoError(t, client.SetPerformanceRating(ctx, testutil.Day(2024, time.February, 29).Instant(), 6))

	month, err := idx.Month(ctx, 2024, time.February)
	require.NoError(t, err)
	require.Len(t, month, 29)
	assert.True(t, month[29].HasRating)
	assert.False(t, month[1].HasRating)
}

func TestRefresh_MemoizedOnCollectionVersions(t *testing.T) {
	idx, client, store := newTestIndex(t)
	ctx := context.Background()
	day := testutil.Day(2024, time.March, 10)
	require.NoError(t, client.AddTask(ctx, "File taxes", "", day.Instant()))

	_, err := idx.Summary(ctx, day)
	require.NoError(t, err)

	// Repeated summaries without collection changes rebuild nothing and
	// issue no further backend calls.
	for range 50 {
		_, err := idx.Summary(ctx, day)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, client.Calls("getTasks"))
	assert.Equal(t, 1, client.Calls("getAllPerformanceRatings"))

	// A collection change is picked up on the next summary.
	require.NoError(t, client.ToggleTaskStatus(ctx, "File taxes"))
	store.Invalidate(querycache.TasksKey())

	s, err := idx.Summary(ctx, day)
	require.NoError(t, err)
	assert.True(t, s.HasComplete)
	assert.False(t, s.HasIncomplete)
	assert.Equal(t, 2, client.Calls("getTasks"))
}

func TestTasksDue_FiltersByDay(t *testing.T) {
	idx, client, _ := newTestIndex(t)
	ctx := context.Background()

	require.NoError(t, client.AddTask(ctx, "on the day", "", testutil.Day(2024, time.March, 10).Instant()))
	require.NoError(t, client.AddTask(ctx, "day after", "", testutil.Day(2024, time.March, 11).Instant()))

	due, err := idx.TasksDue(ctx, testutil.Day(2024, time.March, 10))
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "on the day", due[0].Title)
}
