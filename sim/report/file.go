package report

import (
	"fmt"
	"os"

	"github.com/loadsim/loadsim/sim"
)

// FileReporter appends every engine event to a textual log file, one
// bracket-tagged line per event. The file is the run's only persistent
// artifact; its shape is a reporting concern, not engine state.
type FileReporter struct {
	f *os.File
}

// NewFileReporter opens (truncating) the log file at path.
func NewFileReporter(path string) (*FileReporter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return &FileReporter{f: f}, nil
}

// Report writes one tagged line for the event.
func (r *FileReporter) Report(ev sim.Event) {
	switch ev.Kind {
	case sim.EventQueued:
		fmt.Fprintf(r.f, "[QUEUED] Request #%d | %s -> %s | type=%s time=%d\n",
			ev.Request.ID, ev.Request.SourceAddr, ev.Request.DestAddr, ev.Request.Job, ev.Request.Cost)
	case sim.EventAssigned:
		fmt.Fprintf(r.f, "[ASSIGNED] Request #%d -> server %s | %s -> %s | time=%d\n",
			ev.Request.ID, ev.ServerID, ev.Request.SourceAddr, ev.Request.DestAddr, ev.Request.Cost)
	case sim.EventBlocked:
		fmt.Fprintf(r.f, "[BLOCK] Request #%d BLOCKED | src=%s dst=%s\n",
			ev.Request.ID, ev.Request.SourceAddr, ev.Request.DestAddr)
	case sim.EventScaleUp:
		fmt.Fprintf(r.f, "[SCALE UP] Cycle %d: queue=%d exceeded max threshold=%d, added 1 server (now %d)\n",
			ev.Tick, ev.QueueSize, ev.Threshold, ev.ServerCount)
	case sim.EventScaleDown:
		fmt.Fprintf(r.f, "[SCALE DOWN] Cycle %d: queue=%d below min threshold=%d, removed 1 server (now %d)\n",
			ev.Tick, ev.QueueSize, ev.Threshold, ev.ServerCount)
	case sim.EventStatus:
		fmt.Fprintf(r.f, "[INFO] %s\n", statusLine(ev))
	case sim.EventInfo:
		fmt.Fprintf(r.f, "[INFO] %s\n", ev.Message)
	}
}

// WriteSummary appends the end-of-run summary block.
func (r *FileReporter) WriteSummary(stats sim.SimulationStats, logPath string) {
	fmt.Fprintf(r.f, "\n[INFO] ==== Simulation Summary ====\n")
	fmt.Fprintf(r.f, "[INFO] Generated requests : %d\n", stats.GeneratedRequests)
	fmt.Fprintf(r.f, "[INFO] Accepted requests  : %d\n", stats.AcceptedRequests)
	fmt.Fprintf(r.f, "[INFO] Blocked requests   : %d\n", stats.BlockedRequests)
	fmt.Fprintf(r.f, "[INFO] Completed requests : %d\n", stats.CompletedRequests)
	fmt.Fprintf(r.f, "[INFO] Peak queue size    : %d\n", stats.PeakQueueSize)
	fmt.Fprintf(r.f, "[INFO] Final queue size   : %d\n", stats.FinalQueueSize)
	fmt.Fprintf(r.f, "[INFO] Servers added      : %d\n", stats.ServersAdded)
	fmt.Fprintf(r.f, "[INFO] Servers removed    : %d\n", stats.ServersRemoved)
	fmt.Fprintf(r.f, "[INFO] Final server count : %d\n", stats.FinalServerCount)
	fmt.Fprintf(r.f, "[INFO] Log file           : %s\n", logPath)
}

// Close flushes and closes the underlying file.
func (r *FileReporter) Close() error {
	return r.f.Close()
}
