package mutation

import (
	"io"
	"log/slog"
	"time"
)

// Policy names the cache-reconciliation strategy a mutation ran under.
type Policy string

const (
	PolicyInvalidateAfter Policy = "invalidate_after"
	PolicyOptimistic      Policy = "optimistic"
)

// Event captures lightweight execution telemetry for one mutation.
type Event struct {
	Mutation     string
	InvocationID string
	Key          string
	Policy       Policy
	Seq          uint64
	Duration     time.Duration
	Success      bool
	RolledBack   bool
	Superseded   bool
	Err          error
	StartedAt    time.Time
}

// Observer receives mutation execution events.
type Observer interface {
	ObserveMutation(event Event)
}

// NoopObserver ignores all events.
type NoopObserver struct{}

func (NoopObserver) ObserveMutation(Event) {}

type logObserver struct {
	logger *slog.Logger
}

// NewLogObserver writes mutation events to the provided writer.
func NewLogObserver(w io.Writer) Observer {
	if w == nil {
		return NoopObserver{}
	}
	return &logObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logObserver) ObserveMutation(event Event) {
	attrs := []any{
		"mutation", event.Mutation,
		"invocation_id", event.InvocationID,
		"key", event.Key,
		"policy", string(event.Policy),
		"duration_ms", event.Duration.Milliseconds(),
		"success", event.Success,
	}
	if event.Policy == PolicyOptimistic {
		attrs = append(attrs, "seq", event.Seq)
	}
	if event.RolledBack {
		attrs = append(attrs, "rolled_back", true)
	}
	if event.Superseded {
		attrs = append(attrs, "superseded", true)
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.Error("mutation", attrs...)
		return
	}
	o.logger.Info("mutation", attrs...)
}
