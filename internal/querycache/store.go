package querycache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Status describes the lifecycle of a cache entry.
type Status string

const (
	StatusAbsent  Status = "absent"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// Entry is the observable state of one cache slot.
type Entry struct {
	Status    Status
	Value     any
	Err       error
	Stale     bool
	Version   uint64
	UpdatedAt time.Time
}

type entry struct {
	status    Status
	value     any
	err       error
	stale     bool
	version   uint64
	updatedAt time.Time
}

// Store is the in-memory query cache: one entry per key, request coalescing
// for concurrent fetches of the same key, and change notification for views.
// It is an explicit instance with no package-level state; tests construct
// isolated stores.
type Store struct {
	mu        sync.Mutex
	entries   map[Key]*entry
	flight    singleflight.Group
	listeners []func(Key)
	now       func() time.Time
}

// NewStore creates an empty cache.
func NewStore() *Store {
	return &Store{
		entries: make(map[Key]*entry),
		now:     time.Now,
	}
}

// OnChange registers a listener invoked after any entry changes. Listeners
// run outside the store lock and must not block.
func (s *Store) OnChange(fn func(Key)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) notify(key Key) {
	s.mu.Lock()
	fns := make([]func(Key), len(s.listeners))
	copy(fns, s.listeners)
	s.mu.Unlock()
	for _, fn := range fns {
		fn(key)
	}
}

// Get returns the current state of a key without triggering a fetch.
func (s *Store) Get(key Key) Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return Entry{Status: StatusAbsent}
	}
	return Entry{
		Status:    e.status,
		Value:     e.value,
		Err:       e.err,
		Stale:     e.stale,
		Version:   e.version,
		UpdatedAt: e.updatedAt,
	}
}

// Set overwrites a key with a ready value. Used both for authoritative
// responses and for speculative writes by the mutation layer.
func (s *Store) Set(key Key, value any) {
	s.mu.Lock()
	e := s.ensure(key)
	e.status = StatusReady
	e.value = value
	e.err = nil
	e.stale = false
	e.version++
	e.updatedAt = s.now()
	s.mu.Unlock()
	s.notify(key)
}

// SetError records a failed fetch for a key.
func (s *Store) SetError(key Key, err error) {
	s.mu.Lock()
	e := s.ensure(key)
	e.status = StatusError
	e.err = err
	e.stale = false
	e.version++
	e.updatedAt = s.now()
	s.mu.Unlock()
	s.notify(key)
}

// Invalidate marks a key stale so the next read re-fetches, and drops any
// coalescing slot so the re-fetch is a fresh call. The version advances so a
// fetch already in flight cannot land over the stale mark. Invalidating an
// absent key is a no-op.
func (s *Store) Invalidate(key Key) {
	s.mu.Lock()
	e, ok := s.entries[key]
	if ok {
		e.stale = true
		e.version++
	}
	s.mu.Unlock()
	s.flight.Forget(key.String())
	if ok {
		s.notify(key)
	}
}

// Snapshot captures the current ready value for a key, for later
// restoration. The second return is false when the key holds no value.
func (s *Store) Snapshot(key Key) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok || e.status != StatusReady {
		return nil, false
	}
	return e.value, true
}

// Clear removes a key entirely, returning it to the absent state. Used to
// roll back an optimistic write whose snapshot was absent.
func (s *Store) Clear(key Key) {
	s.mu.Lock()
	_, ok := s.entries[key]
	delete(s.entries, key)
	s.mu.Unlock()
	s.flight.Forget(key.String())
	if ok {
		s.notify(key)
	}
}

// Version returns the entry's change counter, 0 for absent keys. Derived
// views memoize on this.
func (s *Store) Version(key Key) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[key]; ok {
		return e.version
	}
	return 0
}

// ensure returns the entry for key, creating an absent one if needed.
// Caller must hold s.mu.
func (s *Store) ensure(key Key) *entry {
	e, ok := s.entries[key]
	if !ok {
		e = &entry{status: StatusAbsent}
		s.entries[key] = e
	}
	return e
}

// Fetch returns the cached value for key, calling fn to populate it when the
// entry is absent, errored, or stale. Concurrent fetches of one key coalesce
// into a single backend call whose result is shared by every waiter. A value
// written to the key while the fetch was in flight wins over the fetch
// result (last-committed-wins).
func Fetch[T any](ctx context.Context, s *Store, key Key, fn func(context.Context) (T, error)) (T, error) {
	s.mu.Lock()
	if e, ok := s.entries[key]; ok && e.status == StatusReady && !e.stale {
		v := e.value.(T)
		s.mu.Unlock()
		return v, nil
	}
	s.mu.Unlock()

	v, err, _ := s.flight.Do(key.String(), func() (any, error) {
		s.mu.Lock()
		e := s.ensure(key)
		startVersion := e.version
		if e.status == StatusAbsent || e.status == StatusError {
			e.status = StatusLoading
			e.err = nil
		}
		s.mu.Unlock()
		s.notify(key)

		value, err := fn(ctx)
		if err != nil {
			s.SetError(key, err)
			return nil, err
		}

		s.mu.Lock()
		e = s.ensure(key)
		if e.version != startVersion {
			if e.status == StatusReady {
				// A write landed while the fetch was in flight; it wins.
				newer := e.value
				s.mu.Unlock()
				return newer, nil
			}
			// Invalidated mid-flight. Store the result for display but keep
			// the stale mark so the next read re-fetches.
			e.status = StatusReady
			e.value = value
			e.err = nil
			e.version++
			e.updatedAt = s.now()
			s.mu.Unlock()
			s.notify(key)
			return value, nil
		}
		e.status = StatusReady
		e.value = value
		e.err = nil
		e.stale = false
		e.version++
		e.updatedAt = s.now()
		s.mu.Unlock()
		s.notify(key)
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
