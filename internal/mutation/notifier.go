package mutation

// Notifier is the user-facing notification port: every mutation outcome that
// the user should see goes through it (the toast analogue). Implementations
// must not block.
type Notifier interface {
	Success(message string)
	Failure(message string)
}

// NoopNotifier discards all notifications.
type NoopNotifier struct{}

func (NoopNotifier) Success(string) {}
func (NoopNotifier) Failure(string) {}
