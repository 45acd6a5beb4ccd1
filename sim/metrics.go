// Tracks simulation-wide counters reported at the end of a run.

package sim

import "fmt"

// SimulationStats aggregates statistics about the simulation for final
// reporting. All counters are monotonically non-decreasing while the run
// is in progress except FinalQueueSize and FinalServerCount, which are
// point-in-time snapshots taken once when the run finishes. The struct
// returned by Simulator.Run is frozen; no further mutation occurs.
type SimulationStats struct {
	GeneratedRequests uint64 // Total requests created (includes blocked ones)
	AcceptedRequests  uint64 // Requests that passed the firewall and entered the queue
	BlockedRequests   uint64 // Requests rejected by the admission filter
	CompletedRequests uint64 // Requests that finished processing on a server
	ServersAdded      int    // Number of scale-up events
	ServersRemoved    int    // Number of scale-down events
	PeakQueueSize     int    // Largest queue depth observed across all ticks
	FinalQueueSize    int    // Queue depth at the end of the last tick
	FinalServerCount  int    // Active servers when the simulation ended
}

// Print displays the aggregated counters at the end of the simulation.
func (s *SimulationStats) Print() {
	fmt.Println("==== Simulation Summary ====")
	fmt.Printf("Generated requests : %d\n", s.GeneratedRequests)
	fmt.Printf("Accepted requests  : %d\n", s.AcceptedRequests)
	fmt.Printf("Blocked requests   : %d\n", s.BlockedRequests)
	fmt.Printf("Completed requests : %d\n", s.CompletedRequests)
	fmt.Printf("Peak queue size    : %d\n", s.PeakQueueSize)
	fmt.Printf("Final queue size   : %d\n", s.FinalQueueSize)
	fmt.Printf("Servers added      : %d\n", s.ServersAdded)
	fmt.Printf("Servers removed    : %d\n", s.ServersRemoved)
	fmt.Printf("Final server count : %d\n", s.FinalServerCount)
}
