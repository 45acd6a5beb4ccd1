package sim

// EventKind identifies the type of a structured engine event.
type EventKind string

const (
	EventQueued    EventKind = "queued"     // request admitted and enqueued
	EventAssigned  EventKind = "assigned"   // request dispatched to a server
	EventBlocked   EventKind = "blocked"    // request rejected by the admission filter
	EventScaleUp   EventKind = "scale-up"   // one server added to the pool
	EventScaleDown EventKind = "scale-down" // one idle server removed from the pool
	EventStatus    EventKind = "status"     // periodic status snapshot
	EventInfo      EventKind = "info"       // informational banner line
)

// Event is a structured record of something notable the engine did.
// The engine emits events through a Reporter; rendering and destinations
// (console, log file) are the reporter's concern, not the engine's.
// Which payload fields are meaningful depends on Kind.
type Event struct {
	Kind EventKind
	Tick int

	// Queued, Assigned, Blocked
	Request  *Request
	ServerID string // Assigned only

	// ScaleUp, ScaleDown, Status
	QueueSize   int
	Threshold   int // the threshold that was crossed (scaling events)
	ServerCount int

	// Status
	TotalCycles int
	Capacity    int // queue capacity at the scale-up threshold
	Generated   uint64
	Blocked     uint64
	Completed   uint64

	// Info
	Message string
}

// Reporter consumes engine events. Implementations must not retain the
// Request pointer past the call; it may be reused by the engine.
type Reporter interface {
	Report(Event)
}

// NopReporter discards all events. Used in tests and as the default when
// no reporter is configured.
type NopReporter struct{}

func (NopReporter) Report(Event) {}

// MultiReporter fans every event out to each wrapped reporter in order.
type MultiReporter []Reporter

func (m MultiReporter) Report(ev Event) {
	for _, r := range m {
		r.Report(ev)
	}
}
