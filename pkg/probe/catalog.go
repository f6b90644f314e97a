// Package probe implements the read-only command catalog and executor: the
// only way the rest of the system is allowed to touch the host.
package probe

import (
	"sort"
	"time"

	"github.com/jjgarcianorway/anna/pkg/policy"
)

// Probe is a named, idempotent, read-only command descriptor. Probes never
// mutate state; that invariant is enforced at registration time by
// NewCatalog, which panics on a probe that declares a mutating command
// (spec.md §4.1: "Probes that write, delete, or mutate are rejected at
// catalog-registration time").
type Probe struct {
	ID            string
	Command       string
	Args          []string
	RequiredTools []string
	Timeout       time.Duration
	Purpose       string
	Domain        policy.Domain
	Independent   bool
}

// mutatingCommands is the same blacklist the planner and executor apply to
// command plans; a probe built from one of these is a programming error.
var mutatingCommands = map[string]bool{
	"rm": true, "rmdir": true, "mv": true, "dd": true, "mkfs": true,
	"shred": true, "wipefs": true, "parted": true, "fdisk": true,
	"reboot": true, "shutdown": true, "poweroff": true, "halt": true,
	"kill": true, "killall": true, "pkill": true,
}

// Catalog is the immutable set of known probes, built once at startup.
type Catalog struct {
	byID    map[string]Probe
	ordered []string
}

// NewCatalog builds a Catalog from a list of probes, sorted by id for
// deterministic iteration. It panics if two probes share an id or if a probe
// names a command on the mutating blacklist — both are programming errors
// caught at startup, never at runtime.
func NewCatalog(probes ...Probe) *Catalog {
	c := &Catalog{byID: make(map[string]Probe, len(probes))}
	for _, p := range probes {
		if mutatingCommands[p.Command] {
			panic("probe: refusing to register mutating command as probe: " + p.Command)
		}
		if _, exists := c.byID[p.ID]; exists {
			panic("probe: duplicate probe id: " + p.ID)
		}
		c.byID[p.ID] = p
		c.ordered = append(c.ordered, p.ID)
	}
	sort.Strings(c.ordered)
	return c
}

// AvailableProbes returns every registered probe, in deterministic (sorted
// by id) order. Pure: repeated calls return an equal slice.
func (c *Catalog) AvailableProbes() []Probe {
	out := make([]Probe, 0, len(c.ordered))
	for _, id := range c.ordered {
		out = append(out, c.byID[id])
	}
	return out
}

// IsValid reports whether id names a registered probe. O(1).
func (c *Catalog) IsValid(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Get returns the probe registered under id.
func (c *Catalog) Get(id string) (Probe, bool) {
	p, ok := c.byID[id]
	return p, ok
}
