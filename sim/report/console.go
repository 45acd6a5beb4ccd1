// Package report contains Reporter implementations consumed by the
// simulation engine: a color-aware console reporter backed by logrus and
// an append-only file reporter that mirrors the classic log format.
package report

import (
	"fmt"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/loadsim/loadsim/sim"
)

// ConsoleReporter renders engine events as level-tagged console lines.
// Per-request events (queued, assigned) are logged at debug level so the
// default console output stays readable; scaling, blocking, and status
// events surface at info/warn.
type ConsoleReporter struct {
	log *logrus.Logger
}

// NewConsoleReporter builds a ConsoleReporter writing to stdout at the
// given level. Colors are forced when stdout is a terminal and routed
// through go-colorable so they survive on Windows consoles.
func NewConsoleReporter(level logrus.Level) *ConsoleReporter {
	log := logrus.New()
	log.SetLevel(level)

	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		log.SetOutput(colorable.NewColorableStdout())
		log.SetFormatter(&logrus.TextFormatter{ForceColors: true, DisableTimestamp: true})
	} else {
		log.SetOutput(os.Stdout)
		log.SetFormatter(&logrus.TextFormatter{DisableColors: true, DisableTimestamp: true})
	}

	return &ConsoleReporter{log: log}
}

// NewConsoleReporterTo builds a ConsoleReporter writing plain lines to an
// arbitrary logrus logger. Intended for tests.
func NewConsoleReporterTo(log *logrus.Logger) *ConsoleReporter {
	return &ConsoleReporter{log: log}
}

// Report renders one event.
func (c *ConsoleReporter) Report(ev sim.Event) {
	switch ev.Kind {
	case sim.EventQueued:
		c.log.Debugf("Request #%d queued | %s -> %s | type=%s time=%d",
			ev.Request.ID, ev.Request.SourceAddr, ev.Request.DestAddr, ev.Request.Job, ev.Request.Cost)
	case sim.EventAssigned:
		c.log.Debugf("Request #%d -> server %s | %s -> %s | time=%d",
			ev.Request.ID, ev.ServerID, ev.Request.SourceAddr, ev.Request.DestAddr, ev.Request.Cost)
	case sim.EventBlocked:
		c.log.Warnf("Request #%d BLOCKED | src=%s dst=%s",
			ev.Request.ID, ev.Request.SourceAddr, ev.Request.DestAddr)
	case sim.EventScaleUp:
		c.log.Infof("Cycle %d: queue=%d exceeded max threshold=%d, added 1 server (now %d)",
			ev.Tick, ev.QueueSize, ev.Threshold, ev.ServerCount)
	case sim.EventScaleDown:
		c.log.Infof("Cycle %d: queue=%d below min threshold=%d, removed 1 server (now %d)",
			ev.Tick, ev.QueueSize, ev.Threshold, ev.ServerCount)
	case sim.EventStatus:
		c.log.Info(statusLine(ev))
	case sim.EventInfo:
		c.log.Info(ev.Message)
	}
}

// statusLine formats the periodic status snapshot shared by the console
// and file reporters.
func statusLine(ev sim.Event) string {
	pct := 0
	if ev.Capacity > 0 {
		pct = ev.QueueSize * 100 / ev.Capacity
	}
	return fmt.Sprintf("Cycle %d/%d  |  queue %d/%d (%d%%)  |  servers=%d  |  gen=%d blocked=%d done=%d",
		ev.Tick, ev.TotalCycles, ev.QueueSize, ev.Capacity, pct,
		ev.ServerCount, ev.Generated, ev.Blocked, ev.Completed)
}
