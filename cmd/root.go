package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/loadsim/loadsim/sim"
	"github.com/loadsim/loadsim/sim/firewall"
	"github.com/loadsim/loadsim/sim/report"
)

var (
	// CLI flags for run control
	configPath string // Path to the YAML configuration file
	logLevel   string // Log verbosity level

	// CLI flags mirroring the configuration record; each overrides the
	// config file only when explicitly set on the command line
	initialServers     int
	simulationCycles   int
	queueMultiplier    int
	minQueuePerServer  int
	maxQueuePerServer  int
	cooldownCycles     int
	minRequestCost     int
	maxRequestCost     int
	arrivalProbability int
	maxNewRequests     int
	statusInterval     int
	seed               int64
	logFilePath        string
	blockedRanges      []string
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "loadsim",
	Short: "Tick-based simulation of a load-balanced, autoscaled server farm",
}

// runCmd executes the simulation using the config file plus CLI overrides
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the load balancer simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg := loadBaseConfig(cmd)
		applyFlagOverrides(cmd, &cfg)
		cfg.Clamp()

		blocker, rejected := firewall.New(cfg.BlockedRanges)
		for _, spec := range rejected {
			logrus.Warnf("Invalid blocked range ignored: %s", spec)
		}

		reporter := sim.MultiReporter{report.NewConsoleReporter(level)}
		var fileReporter *report.FileReporter
		if cfg.LogFile != "" {
			fileReporter, err = report.NewFileReporter(cfg.LogFile)
			if err != nil {
				logrus.Warnf("Event log disabled: %v", err)
			} else {
				defer fileReporter.Close()
				reporter = append(reporter, fileReporter)
			}
		}

		if ranges := blocker.Ranges(); len(ranges) > 0 {
			msg := fmt.Sprintf("Blocked IP ranges (%d): ", len(ranges))
			for i, r := range ranges {
				if i > 0 {
					msg += ", "
				}
				msg += r
			}
			reporter.Report(sim.Event{Kind: sim.EventInfo, Message: msg})
		}

		s := sim.NewSimulator(cfg, blocker, reporter)
		stats := s.Run()

		if fileReporter != nil {
			fileReporter.WriteSummary(stats, cfg.LogFile)
		}

		fmt.Println()
		stats.Print()
		fmt.Printf("Log file           : %s\n", cfg.LogFile)
	},
}

// loadBaseConfig reads the YAML config file over the defaults. A missing
// file at the default path is fine; a missing or broken file that was
// requested explicitly is fatal.
func loadBaseConfig(cmd *cobra.Command) sim.Config {
	cfg, err := sim.LoadConfig(configPath)
	if err == nil {
		logrus.Infof("Config loaded from: %s", configPath)
		return cfg
	}
	if cmd.Flags().Changed("config") {
		logrus.Fatalf("unable to load config: %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		logrus.Warnf("ignoring unreadable config %s: %v", configPath, err)
	}
	return sim.DefaultConfig()
}

// applyFlagOverrides copies explicitly-set flags into cfg.
func applyFlagOverrides(cmd *cobra.Command, cfg *sim.Config) {
	set := func(name string, apply func()) {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
	set("servers", func() { cfg.InitialServers = initialServers })
	set("cycles", func() { cfg.SimulationCycles = simulationCycles })
	set("queue-multiplier", func() { cfg.InitialQueueMultiplier = queueMultiplier })
	set("min-queue-per-server", func() { cfg.MinQueuePerServer = minQueuePerServer })
	set("max-queue-per-server", func() { cfg.MaxQueuePerServer = maxQueuePerServer })
	set("cooldown", func() { cfg.ScalingCooldownCycles = cooldownCycles })
	set("min-cost", func() { cfg.MinRequestCost = minRequestCost })
	set("max-cost", func() { cfg.MaxRequestCost = maxRequestCost })
	set("arrival-probability", func() { cfg.ArrivalProbabilityPct = arrivalProbability })
	set("max-new-requests", func() { cfg.MaxNewRequestsPerCycle = maxNewRequests })
	set("status-interval", func() { cfg.StatusPrintInterval = statusInterval })
	set("seed", func() { cfg.Seed = seed })
	set("log-file", func() { cfg.LogFile = logFilePath })
	set("blocked-ranges", func() { cfg.BlockedRanges = blockedRanges })
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	defaults := sim.DefaultConfig()

	runCmd.Flags().StringVar(&configPath, "config", "config.yaml", "Path to YAML configuration file")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")

	runCmd.Flags().IntVar(&initialServers, "servers", defaults.InitialServers, "Number of servers created at startup")
	runCmd.Flags().IntVar(&simulationCycles, "cycles", defaults.SimulationCycles, "Total simulation cycles (ticks)")
	runCmd.Flags().IntVar(&queueMultiplier, "queue-multiplier", defaults.InitialQueueMultiplier, "Initial queue depth = servers * this")
	runCmd.Flags().IntVar(&minQueuePerServer, "min-queue-per-server", defaults.MinQueuePerServer, "Scale down when queue < this * servers")
	runCmd.Flags().IntVar(&maxQueuePerServer, "max-queue-per-server", defaults.MaxQueuePerServer, "Scale up when queue > this * servers")
	runCmd.Flags().IntVar(&cooldownCycles, "cooldown", defaults.ScalingCooldownCycles, "Minimum cycles between scaling events")
	runCmd.Flags().IntVar(&minRequestCost, "min-cost", defaults.MinRequestCost, "Shortest request processing cost (ticks)")
	runCmd.Flags().IntVar(&maxRequestCost, "max-cost", defaults.MaxRequestCost, "Longest request processing cost (ticks)")
	runCmd.Flags().IntVar(&arrivalProbability, "arrival-probability", defaults.ArrivalProbabilityPct, "Chance (0-100) that requests arrive each cycle")
	runCmd.Flags().IntVar(&maxNewRequests, "max-new-requests", defaults.MaxNewRequestsPerCycle, "Upper bound on arrivals in one cycle")
	runCmd.Flags().IntVar(&statusInterval, "status-interval", defaults.StatusPrintInterval, "Status line every N cycles (0 = disabled)")
	runCmd.Flags().Int64Var(&seed, "seed", defaults.Seed, "RNG seed (0 = derive from clock)")
	runCmd.Flags().StringVar(&logFilePath, "log-file", defaults.LogFile, "Path for the append-only event log")
	runCmd.Flags().StringSliceVar(&blockedRanges, "blocked-ranges", nil, "Comma-separated IP ranges/CIDRs to block")

	rootCmd.AddCommand(runCmd)
}
