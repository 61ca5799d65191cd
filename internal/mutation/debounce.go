package mutation

import (
	"context"
	"sync"
	"time"

	"dayboard/internal/daykey"
)

// DefaultSaveDelay is the quiet period after the last edit before a
// reflection auto-save fires.
const DefaultSaveDelay = time.Second

// SaveFunc persists one reflection.
type SaveFunc func(ctx context.Context, date daykey.Date, content string) error

// ReflectionSaver coalesces rapid reflection edits into debounced saves.
// Each edit resets the countdown for its date; only after the quiet period
// does the save fire, carrying the latest content. At most one save per date
// is in flight at a time; edits arriving during a save queue behind it.
type ReflectionSaver struct {
	save  SaveFunc
	delay time.Duration

	mu     sync.Mutex
	states map[string]*saveState
	closed bool
}

type saveState struct {
	date     daykey.Date
	timer    *time.Timer
	latest   string
	dirty    bool
	inFlight bool
}

// NewReflectionSaver creates a saver with the given quiet period.
func NewReflectionSaver(save SaveFunc, delay time.Duration) *ReflectionSaver {
	if delay <= 0 {
		delay = DefaultSaveDelay
	}
	return &ReflectionSaver{
		save:   save,
		delay:  delay,
		states: make(map[string]*saveState),
	}
}

// Edit records a new content revision for the date and restarts its
// countdown. If a save for the date is already in flight, the revision is
// queued and saved once the in-flight call resolves.
func (s *ReflectionSaver) Edit(date daykey.Date, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	st, ok := s.states[date.Key()]
	if !ok {
		st = &saveState{date: date}
		s.states[date.Key()] = st
	}
	st.latest = content
	st.dirty = true

	if st.inFlight {
		// The queued revision fires after the current save resolves.
		return
	}
	if st.timer != nil {
		st.timer.Stop()
	}
	st.timer = time.AfterFunc(s.delay, func() {
		s.fire(date.Key())
	})
}

// fire saves the latest revision for a state, then reschedules immediately
// if another edit arrived while the save was running.
func (s *ReflectionSaver) fire(key string) {
	s.mu.Lock()
	st, ok := s.states[key]
	if !ok || s.closed || st.inFlight || !st.dirty {
		s.mu.Unlock()
		return
	}
	st.timer = nil
	st.dirty = false
	st.inFlight = true
	content := st.latest
	date := st.date
	s.mu.Unlock()

	// Save outcome (including failure rollback) is the coordinator's
	// responsibility; the saver only sequences calls.
	_ = s.save(context.Background(), date, content)

	s.mu.Lock()
	st.inFlight = false
	requeue := st.dirty && !s.closed
	s.mu.Unlock()
	if requeue {
		s.fire(key)
	}
}

// Flush runs any pending saves now instead of waiting out their countdowns
// and returns once they resolve. A save already in flight keeps running; a
// revision queued behind it still follows it.
func (s *ReflectionSaver) Flush() {
	s.mu.Lock()
	keys := make([]string, 0, len(s.states))
	for key, st := range s.states {
		if st.timer != nil {
			st.timer.Stop()
			st.timer = nil
		}
		keys = append(keys, key)
	}
	s.mu.Unlock()

	for _, key := range keys {
		s.fire(key)
	}
}

// Close flushes pending saves and stops accepting edits.
func (s *ReflectionSaver) Close() {
	s.Flush()
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}
