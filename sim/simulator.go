// sim/simulator.go
package sim

import (
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// RunState tracks the coarse lifecycle of a simulation run.
type RunState string

const (
	RunNotStarted   RunState = "not-started"
	RunInitializing RunState = "initializing"
	RunRunning      RunState = "running"
	RunFinished     RunState = "finished"
)

// Simulator is the core object that holds simulation time, the server
// pool, the request queue, and the tick loop.
//
// The engine is single-threaded and cooperative: one logical actor
// advances tick-by-tick, and all phases of a tick (arrivals, dispatch,
// server countdown, scaling) run to completion before the next tick
// begins. Servers are advanced in stable pool order each tick, which
// keeps runs bit-for-bit reproducible under a fixed seed.
type Simulator struct {
	// Clock is the current tick, 1-based while the run is in progress.
	Clock int
	// State is the coarse lifecycle state of the run.
	State RunState

	cfg      Config
	filter   AdmissionFilter
	reporter Reporter
	rng      *PartitionedRNG

	pool  []*Server
	queue *RequestQueue

	nextRequestID uint64
	cooldown      int // ticks remaining before the next scaling event is allowed
	stats         SimulationStats
}

// NewSimulator constructs a Simulator from a clamped copy of cfg.
// A nil filter admits everything; a nil reporter discards events.
// When cfg.Seed is zero the seed is derived from the wall clock, so
// repeated runs differ; pass a nonzero seed for reproducible runs.
func NewSimulator(cfg Config, filter AdmissionFilter, reporter Reporter) *Simulator {
	cfg.Clamp()
	if filter == nil {
		filter = AllowAll{}
	}
	if reporter == nil {
		reporter = NopReporter{}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
		logrus.Debugf("seed not configured, derived %d from clock", seed)
	}

	return &Simulator{
		State:         RunNotStarted,
		cfg:           cfg,
		filter:        filter,
		reporter:      reporter,
		rng:           NewPartitionedRNG(NewSimulationKey(seed)),
		queue:         &RequestQueue{},
		nextRequestID: 1,
	}
}

// Stats returns a copy of the counters accumulated so far.
func (sim *Simulator) Stats() SimulationStats {
	return sim.stats
}

// PoolSize returns the current number of servers in the pool.
func (sim *Simulator) PoolSize() int {
	return len(sim.pool)
}

// QueueLen returns the current queue depth.
func (sim *Simulator) QueueLen() int {
	return sim.queue.Len()
}

// generateRequest creates the next randomized request, consuming state
// from the traffic RNG subsystem.
func (sim *Simulator) generateRequest() Request {
	req := GenerateRequest(sim.nextRequestID, sim.rng.ForSubsystem(SubsystemTraffic),
		sim.cfg.MinRequestCost, sim.cfg.MaxRequestCost)
	sim.nextRequestID++
	return req
}

// admit runs a generated request through the admission filter and either
// enqueues it or counts it as blocked. Every generated request passes
// through here exactly once.
func (sim *Simulator) admit(req Request) {
	sim.stats.GeneratedRequests++

	if sim.filter.IsBlocked(req.SourceAddr) {
		sim.stats.BlockedRequests++
		sim.reporter.Report(Event{Kind: EventBlocked, Tick: sim.Clock, Request: &req})
		return
	}

	sim.queue.Enqueue(req)
	sim.stats.AcceptedRequests++
	sim.reporter.Report(Event{Kind: EventQueued, Tick: sim.Clock, Request: &req})
}

// addServer appends a new server to the pool. The identity is derived
// from the current pool size, matching the original numbering scheme.
func (sim *Simulator) addServer() *Server {
	srv := NewServer(strconv.Itoa(len(sim.pool) + 1))
	sim.pool = append(sim.pool, srv)
	return srv
}

// removeServer removes one idle server, searching from the back of the
// pool so the most recently created idle server goes first. Returns
// false if every server is busy; in-flight work is never interrupted.
func (sim *Simulator) removeServer() bool {
	for i := len(sim.pool) - 1; i >= 0; i-- {
		if sim.pool[i].IsAvailable() {
			sim.pool = append(sim.pool[:i], sim.pool[i+1:]...)
			return true
		}
	}
	return false
}

// arrive is the per-tick arrival phase. With probability
// ArrivalProbabilityPct a burst of uniformly-sized [1, MaxNewRequestsPerCycle]
// requests is generated and run through admission.
func (sim *Simulator) arrive() {
	rng := sim.rng.ForSubsystem(SubsystemArrivals)
	if rng.Intn(100) >= sim.cfg.ArrivalProbabilityPct {
		return
	}

	maxNew := sim.cfg.MaxNewRequestsPerCycle
	if maxNew < 1 {
		maxNew = 1
	}
	n := rng.Intn(maxNew) + 1
	for i := 0; i < n; i++ {
		sim.admit(sim.generateRequest())
	}
}

// dispatch hands queued requests to idle servers in stable pool order.
// A later idle server never takes an earlier one's turn; the loop stops
// as soon as the queue is empty.
func (sim *Simulator) dispatch() {
	for _, srv := range sim.pool {
		if sim.queue.Len() == 0 {
			break
		}
		if !srv.IsAvailable() {
			continue
		}

		next, _ := sim.queue.Dequeue()
		srv.TryAssign(&next)
		sim.reporter.Report(Event{
			Kind:     EventAssigned,
			Tick:     sim.Clock,
			Request:  &next,
			ServerID: srv.ID(),
		})
	}
}

// tickServers advances every server by exactly one tick and counts
// completions.
func (sim *Simulator) tickServers() {
	for _, srv := range sim.pool {
		if srv.Tick() {
			sim.stats.CompletedRequests++
		}
	}
}

// balanceLoad evaluates queue pressure and adjusts the pool size.
// While the cooldown is running it only counts down; scaling and
// cooldown countdown never happen on the same tick. A scale-down
// attempt that finds no idle server is free: no removal, no cooldown.
func (sim *Simulator) balanceLoad() {
	if sim.cooldown > 0 {
		sim.cooldown--
		return
	}

	serverCount := len(sim.pool)
	queueSize := sim.queue.Len()
	lowerThreshold := sim.cfg.MinQueuePerServer * serverCount
	upperThreshold := sim.cfg.MaxQueuePerServer * serverCount

	if queueSize > upperThreshold {
		sim.addServer()
		sim.stats.ServersAdded++
		sim.cooldown = sim.cfg.ScalingCooldownCycles
		sim.reporter.Report(Event{
			Kind:        EventScaleUp,
			Tick:        sim.Clock,
			QueueSize:   queueSize,
			Threshold:   upperThreshold,
			ServerCount: len(sim.pool),
		})
	} else if queueSize < lowerThreshold && serverCount > 1 {
		if sim.removeServer() {
			sim.stats.ServersRemoved++
			sim.cooldown = sim.cfg.ScalingCooldownCycles
			sim.reporter.Report(Event{
				Kind:        EventScaleDown,
				Tick:        sim.Clock,
				QueueSize:   queueSize,
				Threshold:   lowerThreshold,
				ServerCount: len(sim.pool),
			})
		}
	}
}

// initialize creates the starting server pool and pre-fills the queue to
// InitialServers * InitialQueueMultiplier requests. Pre-fill still runs
// every request through admission, so a filter that rejects everything
// could starve the target forever; attempts are capped and the shortfall
// reported rather than hanging.
func (sim *Simulator) initialize() {
	sim.State = RunInitializing

	for i := 0; i < sim.cfg.InitialServers; i++ {
		sim.addServer()
	}

	sim.reporter.Report(Event{
		Kind:    EventInfo,
		Message: fmt.Sprintf("Starting simulation for %d cycles with %d server(s)", sim.cfg.SimulationCycles, len(sim.pool)),
	})

	target := sim.cfg.InitialServers * sim.cfg.InitialQueueMultiplier
	maxAttempts := 100 * target
	if maxAttempts < 1000 {
		maxAttempts = 1000
	}
	attempts := 0
	for sim.queue.Len() < target {
		if attempts >= maxAttempts {
			logrus.Warnf("initial queue fill stopped after %d attempts: %d of %d admitted",
				attempts, sim.queue.Len(), target)
			break
		}
		sim.admit(sim.generateRequest())
		attempts++
	}

	sim.stats.PeakQueueSize = sim.queue.Len()

	sim.reporter.Report(Event{
		Kind: EventInfo,
		Message: fmt.Sprintf("Initial queue: %d requests | generated=%d | blocked=%d | accepted=%d",
			sim.queue.Len(), sim.stats.GeneratedRequests, sim.stats.BlockedRequests, sim.stats.AcceptedRequests),
	})

	capacity := len(sim.pool) * sim.cfg.MaxQueuePerServer
	fillPct := 0
	if capacity > 0 {
		fillPct = sim.queue.Len() * 100 / capacity
	}
	sim.reporter.Report(Event{
		Kind: EventInfo,
		Message: fmt.Sprintf("Queue capacity: %d (%d per server) | fill=%d%%  [scale-up >%d/srv, scale-down <%d/srv]",
			capacity, sim.cfg.MaxQueuePerServer, fillPct, sim.cfg.MaxQueuePerServer, sim.cfg.MinQueuePerServer),
	})
}

// reportStatus emits the periodic status snapshot.
func (sim *Simulator) reportStatus() {
	sim.reporter.Report(Event{
		Kind:        EventStatus,
		Tick:        sim.Clock,
		TotalCycles: sim.cfg.SimulationCycles,
		QueueSize:   sim.queue.Len(),
		Capacity:    len(sim.pool) * sim.cfg.MaxQueuePerServer,
		ServerCount: len(sim.pool),
		Generated:   sim.stats.GeneratedRequests,
		Blocked:     sim.stats.BlockedRequests,
		Completed:   sim.stats.CompletedRequests,
	})
}

// Run executes the complete simulation and returns the frozen stats.
//
// Each tick runs four phases in order: arrivals, dispatch, server
// countdown, and load balancing. The peak queue depth is sampled once
// per tick, after arrivals and before dispatch, so it is well-defined
// and reproducible. Cancellation mid-run is not supported; the run
// completes all configured cycles.
func (sim *Simulator) Run() SimulationStats {
	sim.initialize()
	sim.State = RunRunning

	for cycle := 1; cycle <= sim.cfg.SimulationCycles; cycle++ {
		sim.Clock = cycle

		sim.arrive()
		if q := sim.queue.Len(); q > sim.stats.PeakQueueSize {
			sim.stats.PeakQueueSize = q
		}
		sim.dispatch()
		sim.tickServers()
		sim.balanceLoad()

		if sim.cfg.StatusPrintInterval > 0 && cycle%sim.cfg.StatusPrintInterval == 0 {
			sim.reportStatus()
		}
	}

	sim.State = RunFinished
	sim.stats.FinalQueueSize = sim.queue.Len()
	sim.stats.FinalServerCount = len(sim.pool)
	logrus.Debugf("[tick %07d] Simulation ended", sim.Clock)
	return sim.stats
}
