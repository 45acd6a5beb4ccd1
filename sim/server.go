// Defines the Server type that models one backend unit of capacity.
// A server handles at most one request at a time and counts down a
// processing timer each tick.

package sim

// Server models a single backend server in the farm. A server holds at
// most one in-flight request; each Tick decrements the remaining
// processing time, and the server becomes idle again once it reaches zero.
//
// Invariant: remainingTicks > 0 iff the server is busy iff currentRequest
// is non-nil.
type Server struct {
	id             string   // Unique identifier assigned at creation time
	busy           bool     // true while a request is being processed
	remainingTicks int      // Ticks left until the current request finishes
	currentRequest *Request // Copy of the request currently being handled
	completedCount uint64   // Running total of requests finished by this server
}

// NewServer constructs an idle Server with the given identifier.
func NewServer(id string) *Server {
	return &Server{id: id}
}

// TryAssign hands a request to this server. It returns false without
// mutating any state if the server is already busy or req is nil.
// On success the server stores its own copy of the request and starts
// the countdown at the request's cost.
func (s *Server) TryAssign(req *Request) bool {
	if req == nil || s.busy {
		return false
	}

	cp := *req
	s.currentRequest = &cp
	s.remainingTicks = cp.Cost
	s.busy = true
	return true
}

// Tick advances the server by one simulated tick. An idle server is a
// no-op returning false. Otherwise the countdown is decremented; when it
// reaches zero the request is complete, the slot is cleared, the
// completed counter is incremented, and the server returns to idle.
// Returns true exactly when a request completed this tick.
func (s *Server) Tick() bool {
	if !s.busy {
		return false
	}

	s.remainingTicks--
	if s.remainingTicks <= 0 {
		s.currentRequest = nil
		s.remainingTicks = 0
		s.busy = false
		s.completedCount++
		return true
	}
	return false
}

// IsAvailable reports whether the server has no active request.
func (s *Server) IsAvailable() bool {
	return !s.busy
}

// ID returns the identifier assigned at creation time.
func (s *Server) ID() string {
	return s.id
}

// CompletedCount returns the total number of requests this server has finished.
func (s *Server) CompletedCount() uint64 {
	return s.completedCount
}
