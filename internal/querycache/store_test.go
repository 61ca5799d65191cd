package querycache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"dayboard/internal/daykey"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_AbsentKey(t *testing.T) {
	s := NewStore()
	e := s.Get(TasksKey())
	assert.Equal(t, StatusAbsent, e.Status)
	assert.Nil(t, e.Value)
}

func TestSet_ThenGet(t *testing.T) {
	s := NewStore()
	s.Set(TasksKey(), []string{"a"})

	e := s.Get(TasksKey())
	assert.Equal(t, StatusReady, e.Status)
	assert.Equal(t, []string{"a"}, e.Value)
	assert.False(t, e.Stale)
	assert.Equal(t, uint64(1), e.Version)
}

func TestFetch_PopulatesOnFirstRead(t *testing.T) {
	s := NewStore()
	calls := 0
	fn := func(context.Context) ([]string, error) {
		calls++
		return []string{"fetched"}, nil
	}

	v, err := Fetch(context.Background(), s, TasksKey(), fn)
	require.NoError(t, err)
	assert.Equal(t, []string{"fetched"}, v)
	assert.Equal(t, 1, calls)

	// Second read is served from cache.
	v, err = Fetch(context.Background(), s, TasksKey(), fn)
	require.NoError(t, err)
	assert.Equal(t, []string{"fetched"}, v)
	assert.Equal(t, 1, calls)
}

func TestFetch_ErrorRecorded(t *testing.T) {
	s := NewStore()
	boom := errors.New("backend down")
	_, err := Fetch(context.Background(), s, GoalsKey(), func(context.Context) ([]string, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)

	e := s.Get(GoalsKey())
	assert.Equal(t, StatusError, e.Status)
	assert.ErrorIs(t, e.Err, boom)

	// An errored entry re-fetches on the next read.
	v, err := Fetch(context.Background(), s, GoalsKey(), func(context.Context) ([]string, error) {
		return []string{"recovered"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"recovered"}, v)
}

func TestInvalidate_ForcesRefetch(t *testing.T) {
	s := NewStore()
	calls := 0
	fn := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}

	v, err := Fetch(context.Background(), s, DailiesKey(), fn)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	s.Invalidate(DailiesKey())
	assert.True(t, s.Get(DailiesKey()).Stale)

	v, err = Fetch(context.Background(), s, DailiesKey(), fn)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	assert.Equal(t, 2, calls)
}

func TestInvalidate_Idempotent(t *testing.T) {
	s := NewStore()
	calls := 0
	fn := func(context.Context) (string, error) {
		calls++
		return "x", nil
	}

	_, err := Fetch(context.Background(), s, TasksKey(), fn)
	require.NoError(t, err)

	s.Invalidate(TasksKey())
	s.Invalidate(TasksKey())

	_, err = Fetch(context.Background(), s, TasksKey(), fn)
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "double invalidation must cause exactly one re-fetch")
}

func TestInvalidate_DuringInFlightFetch(t *testing.T) {
	s := NewStore()
	var calls atomic.Int32
	inFlight := make(chan struct{})
	release := make(chan struct{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := Fetch(context.Background(), s, TasksKey(), func(context.Context) (string, error) {
			calls.Add(1)
			close(inFlight)
			<-release
			return "pre-mutation data", nil
		})
		assert.NoError(t, err)
	}()

	// A mutation invalidates the key while the fetch is still in flight;
	// the landing result must not erase the stale mark.
	<-inFlight
	s.Invalidate(TasksKey())
	close(release)
	<-done

	assert.True(t, s.Get(TasksKey()).Stale, "in-flight fetch result must land stale after invalidation")

	v, err := Fetch(context.Background(), s, TasksKey(), func(context.Context) (string, error) {
		calls.Add(1)
		return "authoritative data", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "authoritative data", v)
	assert.Equal(t, int32(2), calls.Load())
}

func TestInvalidate_DuringRefetchOfStaleEntry(t *testing.T) {
	s := NewStore()
	s.Set(DailiesKey(), "first value")
	s.Invalidate(DailiesKey())

	inFlight := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := Fetch(context.Background(), s, DailiesKey(), func(context.Context) (string, error) {
			close(inFlight)
			<-release
			return "second value", nil
		})
		assert.NoError(t, err)
	}()

	<-inFlight
	s.Invalidate(DailiesKey())
	close(release)
	<-done

	e := s.Get(DailiesKey())
	assert.Equal(t, StatusReady, e.Status)
	assert.True(t, e.Stale, "invalidation during a re-fetch must leave the entry stale")

	v, err := Fetch(context.Background(), s, DailiesKey(), func(context.Context) (string, error) {
		return "third value", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "third value", v)
}

func TestInvalidate_AbsentKeyIsNoop(t *testing.T) {
	s := NewStore()
	s.Invalidate(TasksKey())
	assert.Equal(t, StatusAbsent, s.Get(TasksKey()).Status)
}

func TestFetch_CoalescesConcurrentReads(t *testing.T) {
	s := NewStore()
	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	fn := func(context.Context) (string, error) {
		calls.Add(1)
		close(started)
		<-release
		return "shared", nil
	}

	const readers = 8
	var wg sync.WaitGroup
	results := make([]string, readers)
	wg.Add(readers)
	for i := range readers {
		go func() {
			defer wg.Done()
			v, err := Fetch(context.Background(), s, TasksKey(), fn)
			assert.NoError(t, err)
			results[i] = v
		}()
	}

	<-started
	// Give the remaining readers time to join the in-flight call.
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load(), "concurrent reads must share one backend call")
	for _, r := range results {
		assert.Equal(t, "shared", r)
	}
}

func TestFetch_WriteDuringFlightWins(t *testing.T) {
	s := NewStore()
	inFlight := make(chan struct{})
	release := make(chan struct{})

	done := make(chan string, 1)
	go func() {
		v, _ := Fetch(context.Background(), s, GoalsKey(), func(context.Context) (string, error) {
			close(inFlight)
			<-release
			return "stale fetch result", nil
		})
		done <- v
	}()

	<-inFlight
	s.Set(GoalsKey(), "optimistic value")
	close(release)

	assert.Equal(t, "optimistic value", <-done)
	assert.Equal(t, "optimistic value", s.Get(GoalsKey()).Value)
}

func TestSnapshot(t *testing.T) {
	s := NewStore()
	_, ok := s.Snapshot(TasksKey())
	assert.False(t, ok)

	s.Set(TasksKey(), 42)
	v, ok := s.Snapshot(TasksKey())
	require.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestClear_ReturnsToAbsent(t *testing.T) {
	s := NewStore()
	s.Set(TasksKey(), 1)
	s.Clear(TasksKey())
	assert.Equal(t, StatusAbsent, s.Get(TasksKey()).Status)
}

func TestOnChange_NotifiesSetAndInvalidate(t *testing.T) {
	s := NewStore()
	var mu sync.Mutex
	var seen []Key
	s.OnChange(func(k Key) {
		mu.Lock()
		seen = append(seen, k)
		mu.Unlock()
	})

	s.Set(TasksKey(), 1)
	s.Invalidate(TasksKey())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []Key{TasksKey(), TasksKey()}, seen)
}

func TestKeys_DistinctParams(t *testing.T) {
	s := NewStore()
	d1 := daykey.Date{Year: 2024, Month: time.March, Day: 15}
	d2 := daykey.Date{Year: 2024, Month: time.March, Day: 16}

	s.Set(RatingKey(d1), 8)
	s.Invalidate(RatingKey(d2))

	e := s.Get(RatingKey(d1))
	assert.Equal(t, StatusReady, e.Status)
	assert.False(t, e.Stale, "invalidating one date must not touch another")
	assert.Equal(t, "performanceRating:2024-03-15", RatingKey(d1).String())
}
