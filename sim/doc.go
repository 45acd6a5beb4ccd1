// Package sim provides the tick-based simulation engine for the
// load-balanced server farm.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - request.go: Request data model and the randomized request factory
//   - server.go: the single-slot server countdown state machine
//   - simulator.go: the tick loop, dispatch, and autoscaling logic
//
// # Architecture
//
// The sim package defines interfaces and the engine; implementations of
// the boundary concerns live in sub-packages:
//   - sim/firewall/: IP range parsing and fail-closed admission filtering
//   - sim/report/: console and file Reporter implementations
//
// Time is a monotonically increasing integer tick counter. Each tick
// runs four phases to completion in order: arrivals, dispatch to idle
// servers, server countdown, and pool scaling with cooldown. The engine
// is single-threaded; determinism under a fixed seed comes from the
// PartitionedRNG (rng.go) and the stable iteration order of the pool.
//
// # Key Interfaces
//
//   - AdmissionFilter: blocked/allowed predicate over source addresses
//   - Reporter: sink for structured engine events (queued, assigned,
//     blocked, scale-up, scale-down, status)
package sim
