// Defines the Request struct that models an individual client request in the simulation,
// and the factory that produces randomized requests with seeded randomness.

package sim

import (
	"fmt"
	"math/rand"
)

// JobType categorizes the workload a request carries.
type JobType string

const (
	JobProcessing JobType = "processing"
	JobStreaming  JobType = "streaming"
)

// Request models a single client request flowing through the balancer.
// Each request carries source and destination IP addresses, a processing
// cost in ticks, and a job-type tag. Requests are immutable after
// generation; a Server keeps its own copy while processing.
type Request struct {
	ID         uint64  // Unique sequential identifier assigned at generation time
	SourceAddr string  // Source (client) IP address in dotted-decimal notation
	DestAddr   string  // Destination IP address in dotted-decimal notation
	Cost       int     // Number of ticks needed to process this request
	Job        JobType // Workload category
}

// This method returns a human-readable string representation of a Request.
func (r Request) String() string {
	return fmt.Sprintf("Request: (ID: %d, %s -> %s, type=%s, cost=%d)",
		r.ID, r.SourceAddr, r.DestAddr, r.Job, r.Cost)
}

// RandomAddr generates a random IPv4 address string of the form "A.B.C.D".
// Each octet is drawn independently and uniformly from [0, 255].
func RandomAddr(rng *rand.Rand) string {
	return fmt.Sprintf("%d.%d.%d.%d", rng.Intn(256), rng.Intn(256), rng.Intn(256), rng.Intn(256))
}

// GenerateRequest produces a fully populated Request with random
// addresses, a cost drawn uniformly from [minCost, maxCost] inclusive,
// and a uniformly chosen job type. A degenerate range is corrected
// (minCost raised to 1, maxCost raised to minCost) so generation never
// fails. Given the same rng state the output is fully deterministic.
func GenerateRequest(id uint64, rng *rand.Rand, minCost, maxCost int) Request {
	if minCost < 1 {
		minCost = 1
	}
	if maxCost < minCost {
		maxCost = minCost
	}

	req := Request{
		ID:         id,
		SourceAddr: RandomAddr(rng),
		DestAddr:   RandomAddr(rng),
		Cost:       minCost + rng.Intn(maxCost-minCost+1),
	}
	if rng.Intn(2) == 0 {
		req.Job = JobProcessing
	} else {
		req.Job = JobStreaming
	}
	return req
}
