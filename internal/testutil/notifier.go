package testutil

import "sync"

// RecordingNotifier captures notifications for assertion.
type RecordingNotifier struct {
	mu        sync.Mutex
	successes []string
	failures  []string
}

func (n *RecordingNotifier) Success(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, message)
}

func (n *RecordingNotifier) Failure(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failures = append(n.failures, message)
}

func (n *RecordingNotifier) Successes() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.successes))
	copy(out, n.successes)
	return out
}

func (n *RecordingNotifier) Failures() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.failures))
	copy(out, n.failures)
	return out
}
