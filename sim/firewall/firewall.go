// Package firewall blocks requests from configured IP ranges, acting as
// a basic firewall in front of the simulator's request queue.
//
// Ranges may be given as CIDR prefixes ("10.0.0.0/8"), dash-separated
// spans ("192.168.0.1-192.168.0.50"), or single addresses. Matching is
// fail closed: an address that cannot be parsed is always blocked.
package firewall

import (
	"fmt"
	"net/netip"
	"strings"

	"github.com/loadsim/loadsim/sim"
)

// Blocker keeps a list of blocked IPv4 ranges and checks incoming
// addresses against them. The zero value is ready to use and admits
// every well-formed address.
type Blocker struct {
	specs  []string
	ranges []ipRange
}

// ipRange is an inclusive span of IPv4 addresses in integer form.
type ipRange struct {
	start uint32
	end   uint32
}

var _ sim.AdmissionFilter = (*Blocker)(nil)

// New builds a Blocker from a list of range specs. Invalid specs are
// skipped and returned in rejected so the caller can warn about them;
// the remaining ranges are still installed.
func New(specs []string) (b *Blocker, rejected []string) {
	b = &Blocker{}
	for _, spec := range specs {
		if err := b.AddBlockedRange(spec); err != nil {
			rejected = append(rejected, spec)
		}
	}
	return b, rejected
}

// parseAddr parses a dotted-decimal IPv4 address into integer form.
func parseAddr(s string) (uint32, error) {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return 0, fmt.Errorf("parse address %q: %w", s, err)
	}
	if !addr.Is4() {
		return 0, fmt.Errorf("address %q is not IPv4", s)
	}
	octets := addr.As4()
	return uint32(octets[0])<<24 | uint32(octets[1])<<16 | uint32(octets[2])<<8 | uint32(octets[3]), nil
}

// AddBlockedRange installs one blocked range. Supported forms:
// "a.b.c.d-e.f.g.h" (bounds swapped if reversed), "a.b.c.d/n" CIDR,
// or a single address. Returns an error for anything else.
func (b *Blocker) AddBlockedRange(spec string) error {
	if left, right, ok := strings.Cut(spec, "-"); ok {
		return b.addSpan(spec, left, right)
	}

	if strings.Contains(spec, "/") {
		prefix, err := netip.ParsePrefix(spec)
		if err != nil {
			return fmt.Errorf("parse range %q: %w", spec, err)
		}
		if !prefix.Addr().Is4() {
			return fmt.Errorf("range %q is not IPv4", spec)
		}

		base, err := parseAddr(prefix.Addr().String())
		if err != nil {
			return err
		}
		var mask uint32
		if prefix.Bits() > 0 {
			mask = ^uint32(0) << (32 - prefix.Bits())
		}
		start := base & mask
		b.specs = append(b.specs, spec)
		b.ranges = append(b.ranges, ipRange{start: start, end: start | ^mask})
		return nil
	}

	return b.addSpan(spec, spec, spec)
}

func (b *Blocker) addSpan(spec, startAddr, endAddr string) error {
	start, err := parseAddr(startAddr)
	if err != nil {
		return err
	}
	end, err := parseAddr(endAddr)
	if err != nil {
		return err
	}
	if start > end {
		start, end = end, start
	}

	b.specs = append(b.specs, spec)
	b.ranges = append(b.ranges, ipRange{start: start, end: end})
	return nil
}

// IsBlocked reports whether the address falls in any blocked range.
// Malformed addresses are always blocked, never silently admitted.
func (b *Blocker) IsBlocked(addr string) bool {
	value, err := parseAddr(addr)
	if err != nil {
		return true
	}

	for _, r := range b.ranges {
		if value >= r.start && value <= r.end {
			return true
		}
	}
	return false
}

// Ranges returns the installed range specs in insertion order.
func (b *Blocker) Ranges() []string {
	return b.specs
}
