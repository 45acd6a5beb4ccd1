package sim

// AdmissionFilter decides whether a request's source address may enter
// the queue. The engine consults it exactly once per generated request,
// before enqueueing. Implementations MUST treat a malformed address as
// blocked (fail closed), never silently admit it.
//
// The sim package only defines the interface; the range-matching
// implementation lives in sim/firewall.
type AdmissionFilter interface {
	IsBlocked(addr string) bool
}

// AllowAll admits every address unconditionally.
type AllowAll struct{}

func (AllowAll) IsBlocked(string) bool { return false }
