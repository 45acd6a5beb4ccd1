package sim

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds all tunable parameters for a simulation run.
// Defaults come from DefaultConfig; any field can be overridden by the
// YAML configuration file (see LoadConfig) or by CLI flags. Out-of-range
// values are silently corrected by Clamp so that a bad configuration
// degrades gracefully instead of crashing a running simulation.
type Config struct {
	InitialServers         int      `yaml:"initial_servers"`            // Servers created at startup
	SimulationCycles       int      `yaml:"simulation_cycles"`          // Total ticks to simulate
	InitialQueueMultiplier int      `yaml:"initial_queue_multiplier"`   // Pre-fill depth = InitialServers * this
	MinQueuePerServer      int      `yaml:"min_queue_per_server"`       // Scale down below this * pool size
	MaxQueuePerServer      int      `yaml:"max_queue_per_server"`       // Scale up above this * pool size
	ScalingCooldownCycles  int      `yaml:"scaling_cooldown_cycles"`    // Minimum ticks between scaling events
	MinRequestCost         int      `yaml:"min_request_cost"`           // Shortest request processing cost (ticks)
	MaxRequestCost         int      `yaml:"max_request_cost"`           // Longest request processing cost (ticks)
	ArrivalProbabilityPct  int      `yaml:"arrival_probability_pct"`    // Chance (0-100) that requests arrive each tick
	MaxNewRequestsPerCycle int      `yaml:"max_new_requests_per_cycle"` // Upper bound on arrivals in one tick
	StatusPrintInterval    int      `yaml:"status_print_interval"`      // Status event every N ticks (0 = disabled)
	Seed                   int64    `yaml:"seed"`                       // RNG seed (0 = entropy-derived)
	LogFile                string   `yaml:"log_file"`                   // Path for the append-only event log
	BlockedRanges          []string `yaml:"blocked_ranges"`             // IP ranges/CIDRs rejected by the firewall
}

// DefaultConfig returns the documented default configuration.
func DefaultConfig() Config {
	return Config{
		InitialServers:         10,
		SimulationCycles:       10000,
		InitialQueueMultiplier: 100,
		MinQueuePerServer:      50,
		MaxQueuePerServer:      80,
		ScalingCooldownCycles:  25,
		MinRequestCost:         1,
		MaxRequestCost:         30,
		ArrivalProbabilityPct:  50,
		MaxNewRequestsPerCycle: 2,
		StatusPrintInterval:    500,
		Seed:                   0,
		LogFile:                "load_balancer.log",
	}
}

// LoadConfig reads a YAML configuration file over the defaults.
// Fields absent from the file keep their default values; unknown keys
// are ignored so the file can carry notes without breaking the loader.
// The returned Config is already clamped.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.Clamp()
	return cfg, nil
}

// Clamp silently corrects out-of-range values. Corrections are warnings
// at most, never errors: misconfiguration degrades gracefully.
func (c *Config) Clamp() {
	if c.InitialServers < 1 {
		c.InitialServers = 1
	}
	if c.SimulationCycles < 0 {
		c.SimulationCycles = 0
	}
	if c.InitialQueueMultiplier < 0 {
		c.InitialQueueMultiplier = 0
	}
	if c.ScalingCooldownCycles < 0 {
		c.ScalingCooldownCycles = 0
	}
	if c.MinRequestCost < 1 {
		c.MinRequestCost = 1
	}
	if c.MaxRequestCost < c.MinRequestCost {
		c.MaxRequestCost = c.MinRequestCost
	}
	if c.ArrivalProbabilityPct < 0 {
		c.ArrivalProbabilityPct = 0
	}
	if c.ArrivalProbabilityPct > 100 {
		c.ArrivalProbabilityPct = 100
	}
	if c.MaxNewRequestsPerCycle < 0 {
		c.MaxNewRequestsPerCycle = 0
	}
	if c.StatusPrintInterval < 0 {
		c.StatusPrintInterval = 0
	}
	if c.MinQueuePerServer < 0 {
		c.MinQueuePerServer = 0
	}
	if c.MaxQueuePerServer < c.MinQueuePerServer {
		// An inverted threshold pair would oscillate the pool forever.
		logrus.Warnf("max_queue_per_server %d below min_queue_per_server %d, raising to %d",
			c.MaxQueuePerServer, c.MinQueuePerServer, c.MinQueuePerServer)
		c.MaxQueuePerServer = c.MinQueuePerServer
	}
}
