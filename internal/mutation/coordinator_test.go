package mutation

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"dayboard/internal/domain"
	"dayboard/internal/querycache"
	"dayboard/internal/remote"
	"dayboard/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCoordinator(t *testing.T) (*Coordinator, *querycache.Store, *testutil.FakeClient, *testutil.RecordingNotifier) {
	t.Helper()
	store := querycache.NewStore()
	client := testutil.NewFakeClient()
	notifier := &testutil.RecordingNotifier{}
	coord := NewCoordinator(store, client, notifier, NoopObserver{})
	return coord, store, client, notifier
}

func fetchTasks(t *testing.T, store *querycache.Store, client remote.Client) []domain.Task {
	t.Helper()
	tasks, err := querycache.Fetch(context.Background(), store, querycache.TasksKey(), client.GetTasks)
	require.NoError(t, err)
	return tasks
}

func TestAddTask_InvalidatesCollection(t *testing.T) {
	coord, store, client, notifier := newTestCoordinator(t)
	ctx := context.Background()
	due := testutil.Day(2024, time.March, 15)

	// Prime the cache with the empty collection.
	assert.Empty(t, fetchTasks(t, store, client))

	require.NoError(t, coord.AddTask(ctx, "Pay rent", "transfer before noon", due.Instant()))

	assert.True(t, store.Get(querycache.TasksKey()).Stale)
	tasks := fetchTasks(t, store, client)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Pay rent", tasks[0].Title)
	assert.Equal(t, []string{"Task added successfully"}, notifier.Successes())
}

func TestToggleTaskStatus_NoOptimisticStep(t *testing.T) {
	coord, store, client, _ := newTestCoordinator(t)
	ctx := context.Background()
	due := testutil.Day(2024, time.March, 15)

	require.NoError(t, coord.AddTask(ctx, "Pay rent", "", due.Instant()))
	tasks := fetchTasks(t, store, client)
	require.Len(t, tasks, 1)
	require.False(t, tasks[0].Status)
	versionBefore := store.Version(querycache.TasksKey())

	// Block the toggle call and check the cache was not touched speculatively.
	release := make(chan struct{})
	client.Intercept(remote.OpToggleTaskStatus, func() error {
		<-release
		return nil
	})
	done := make(chan error, 1)
	go func() {
		done <- coord.ToggleTaskStatus(ctx, "Pay rent")
	}()

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, versionBefore, store.Version(querycache.TasksKey()), "invalidate-after must not write before the call resolves")

	close(release)
	require.NoError(t, <-done)

	tasks = fetchTasks(t, store, client)
	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].Status)
}

func TestAddDaily_FailureLeavesCacheUntouched(t *testing.T) {
	coord, store, client, notifier := newTestCoordinator(t)
	ctx := context.Background()

	require.NoError(t, client.AddDaily(ctx, "Meditate"))
	items, err := querycache.Fetch(ctx, store, querycache.DailiesKey(), client.GetDailies)
	require.NoError(t, err)
	require.Len(t, items, 1)

	client.FailWith(remote.OpAddDaily, errors.New("backend rejected the item"))
	err = coord.AddDaily(ctx, "Stretch")
	require.Error(t, err)

	entry := store.Get(querycache.DailiesKey())
	assert.Equal(t, querycache.StatusReady, entry.Status)
	assert.False(t, entry.Stale, "failed invalidate-after mutation must leave the cache untouched")
	assert.Equal(t, []string{"backend rejected the item"}, notifier.Failures())
}

func TestSetPerformanceRating_OptimisticWhilePending(t *testing.T) {
	coord, store, client, _ := newTestCoordinator(t)
	date := testutil.Day(2024, time.March, 15)
	key := querycache.RatingKey(date)

	inFlight := make(chan struct{})
	release := make(chan struct{})
	client.Intercept(remote.OpSetPerformanceRating, func() error {
		close(inFlight)
		<-release
		return nil
	})

	done := make(chan error, 1)
	go func() {
		done <- coord.SetPerformanceRating(context.Background(), date, 8)
	}()

	<-inFlight
	entry := store.Get(key)
	require.Equal(t, querycache.StatusReady, entry.Status)
	rating, ok := entry.Value.(domain.Option[domain.PerformanceRating]).Get()
	require.True(t, ok, "pending optimistic write must already be readable")
	assert.Equal(t, 8, rating.Score)

	close(release)
	require.NoError(t, <-done)

	// Both the day slot and the aggregate are stale after commit.
	assert.True(t, store.Get(key).Stale)
	assert.True(t, store.Get(querycache.AllRatingsKey()).Stale || store.Get(querycache.AllRatingsKey()).Status == querycache.StatusAbsent)
}

func TestSetPerformanceRating_RollbackToPriorValue(t *testing.T) {
	coord, store, client, notifier := newTestCoordinator(t)
	date := testutil.Day(2024, time.March, 15)
	key := querycache.RatingKey(date)

	prior := domain.Some(testutil.NewTestRating(date, 5))
	store.Set(key, prior)

	client.FailWith(remote.OpSetPerformanceRating, errors.New("validation failed"))
	err := coord.SetPerformanceRating(context.Background(), date, 8)
	require.Error(t, err)

	entry := store.Get(key)
	require.Equal(t, querycache.StatusReady, entry.Status)
	assert.Equal(t, prior, entry.Value, "failed optimistic write must restore the snapshot")
	assert.Equal(t, []string{"validation failed"}, notifier.Failures())
}

func TestSetPerformanceRating_RollbackToAbsent(t *testing.T) {
	coord, store, client, _ := newTestCoordinator(t)
	date := testutil.Day(2024, time.March, 15)

	client.FailWith(remote.OpSetPerformanceRating, errors.New("boom"))
	err := coord.SetPerformanceRating(context.Background(), date, 8)
	require.Error(t, err)

	assert.Equal(t, querycache.StatusAbsent, store.Get(querycache.RatingKey(date)).Status)
}

func TestSetPerformanceRating_NoRollbackAfterSupersession(t *testing.T) {
	coord, store, client, _ := newTestCoordinator(t)
	date := testutil.Day(2024, time.March, 15)
	key := querycache.RatingKey(date)

	store.Set(key, domain.Some(testutil.NewTestRating(date, 3)))

	// First call blocks and ultimately fails; the second succeeds while the
	// first is still in flight.
	var call atomic.Int32
	release := make(chan struct{})
	firstBlocked := make(chan struct{})
	client.Intercept(remote.OpSetPerformanceRating, func() error {
		if call.Add(1) == 1 {
			close(firstBlocked)
			<-release
			return errors.New("stale response failure")
		}
		return nil
	})

	m1Done := make(chan error, 1)
	go func() {
		m1Done <- coord.SetPerformanceRating(context.Background(), date, 5)
	}()
	<-firstBlocked

	require.NoError(t, coord.SetPerformanceRating(context.Background(), date, 9))

	close(release)
	require.Error(t, <-m1Done)

	entry := store.Get(key)
	require.Equal(t, querycache.StatusReady, entry.Status)
	rating, ok := entry.Value.(domain.Option[domain.PerformanceRating]).Get()
	require.True(t, ok)
	assert.Equal(t, 9, rating.Score, "stale failure must not clobber the newer committed value")
}

func TestSetPerformanceRating_FailureKeepsNewerPendingWrite(t *testing.T) {
	coord, store, client, _ := newTestCoordinator(t)
	date := testutil.Day(2024, time.March, 15)
	key := querycache.RatingKey(date)

	var call atomic.Int32
	firstBlocked := make(chan struct{})
	secondBlocked := make(chan struct{})
	releaseFirst := make(chan struct{})
	releaseSecond := make(chan struct{})
	client.Intercept(remote.OpSetPerformanceRating, func() error {
		if call.Add(1) == 1 {
			close(firstBlocked)
			<-releaseFirst
			return errors.New("request timed out")
		}
		close(secondBlocked)
		<-releaseSecond
		return nil
	})

	m1Done := make(chan error, 1)
	go func() {
		m1Done <- coord.SetPerformanceRating(context.Background(), date, 4)
	}()
	<-firstBlocked

	m2Done := make(chan error, 1)
	go func() {
		m2Done <- coord.SetPerformanceRating(context.Background(), date, 9)
	}()
	<-secondBlocked

	// The first mutation fails while the second is still pending. Its
	// rollback must not revert the second's speculative value.
	close(releaseFirst)
	require.Error(t, <-m1Done)

	entry := store.Get(key)
	require.Equal(t, querycache.StatusReady, entry.Status)
	rating, ok := entry.Value.(domain.Option[domain.PerformanceRating]).Get()
	require.True(t, ok)
	assert.Equal(t, 9, rating.Score, "failed write must not revert a newer pending one")

	close(releaseSecond)
	require.NoError(t, <-m2Done)
}

func TestSetPerformanceRating_RejectsOutOfRangeScore(t *testing.T) {
	coord, _, client, notifier := newTestCoordinator(t)
	date := testutil.Day(2024, time.March, 15)

	for _, score := range []int{0, 11, -3} {
		err := coord.SetPerformanceRating(context.Background(), date, score)
		require.Error(t, err)
	}
	assert.Zero(t, client.Calls(remote.OpSetPerformanceRating), "invalid scores must never reach the backend")
	assert.Len(t, notifier.Failures(), 3)
}

func TestToggleGoal_OptimisticUpdateAndRollback(t *testing.T) {
	coord, store, client, _ := newTestCoordinator(t)
	ctx := context.Background()
	target := testutil.Day(2024, time.June, 1)

	require.NoError(t, client.AddGoal(ctx, "Run a marathon", target.Instant()))
	goals, err := querycache.Fetch(ctx, store, querycache.GoalsKey(), client.GetGoals)
	require.NoError(t, err)
	require.Len(t, goals, 1)

	client.FailWith(remote.OpUpdateGoalStatus, errors.New("goal not found"))
	err = coord.ToggleGoal(ctx, "Run a marathon", true)
	require.Error(t, err)

	entry := store.Get(querycache.GoalsKey())
	require.Equal(t, querycache.StatusReady, entry.Status)
	rolled := entry.Value.([]domain.Goal)
	assert.False(t, rolled[0].IsCompleted, "UI must visibly revert after rollback")

	client.FailWith(remote.OpUpdateGoalStatus, nil)
	require.NoError(t, coord.ToggleGoal(ctx, "Run a marathon", true))
	assert.True(t, store.Get(querycache.GoalsKey()).Stale)

	goals, err = querycache.Fetch(ctx, store, querycache.GoalsKey(), client.GetGoals)
	require.NoError(t, err)
	assert.True(t, goals[0].IsCompleted)
}

func TestToggleGoal_NoCachedListDegradesToInvalidateAfter(t *testing.T) {
	coord, store, client, _ := newTestCoordinator(t)
	ctx := context.Background()
	target := testutil.Day(2024, time.June, 1)

	require.NoError(t, client.AddGoal(ctx, "Read 12 books", target.Instant()))
	require.NoError(t, coord.ToggleGoal(ctx, "Read 12 books", true))

	assert.Equal(t, querycache.StatusAbsent, store.Get(querycache.GoalsKey()).Status)
	assert.Equal(t, 1, client.Calls(remote.OpUpdateGoalStatus))
}

func TestSaveReflection_OptimisticThenAuthoritative(t *testing.T) {
	coord, store, client, notifier := newTestCoordinator(t)
	date := testutil.Day(2024, time.March, 15)
	key := querycache.ReflectionKey(date)

	require.NoError(t, coord.SaveReflection(context.Background(), date, "productive day"))

	assert.True(t, store.Get(key).Stale)
	got, err := querycache.Fetch(context.Background(), store, key, func(ctx context.Context) (domain.Option[domain.Reflection], error) {
		return client.GetReflection(ctx, date.Key())
	})
	require.NoError(t, err)
	reflection, ok := got.Get()
	require.True(t, ok)
	assert.Equal(t, "productive day", reflection.Content)
	assert.Equal(t, "2024-03-15", reflection.Date)
	assert.Equal(t, []string{"Reflection saved"}, notifier.Successes())
}

func TestMutations_FailFastWhenLoggedOut(t *testing.T) {
	store := querycache.NewStore()
	session := remote.NewSession()
	client := remote.Gated(testutil.NewFakeClient(), session)
	notifier := &testutil.RecordingNotifier{}
	coord := NewCoordinator(store, client, notifier, NoopObserver{})

	err := coord.AddTask(context.Background(), "Pay rent", "", testutil.Day(2024, time.March, 15).Instant())
	require.ErrorIs(t, err, remote.ErrNotConnected)

	tasks, err := client.GetTasks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tasks, "queries degrade to empty results without a session")
}
