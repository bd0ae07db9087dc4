// Dispenser state and the Registry that owns it. The Registry is loaded once
// from the catalog file at startup and is mutated only by the Simulator.

package sim

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Dispenser is a single fuel-serving unit with a bounded queue.
// QueueLength counts customers queued or currently being served.
// LastServiceEnd is the busy-until marker: the minute at which the most
// recently applied completion freed the dispenser. It advances only when a
// completion is applied, never when a customer queues up behind one.
type Dispenser struct {
	ID             int
	MaxQueue       int
	Products       []string
	QueueLength    int
	LastServiceEnd Minutes
	CurrentClient  *Request // customer currently at the pump, nil when idle
}

// Serves reports whether the dispenser supports the given product.
func (d *Dispenser) Serves(product string) bool {
	return slices.Contains(d.Products, product)
}

// AtCapacity reports whether the dispenser's queue is full.
func (d *Dispenser) AtCapacity() bool {
	return d.QueueLength >= d.MaxQueue
}

// String returns the display line for a dispenser, queue depth rendered as stars.
func (d *Dispenser) String() string {
	return fmt.Sprintf("Dispenser %d max queue: %d products: %s ->%s",
		d.ID, d.MaxQueue, strings.Join(d.Products, " "), strings.Repeat("*", d.QueueLength))
}

// Registry owns all dispensers for a run, keyed by dispenser id.
// Only the Simulator mutates dispenser state; everything else reads snapshots.
type Registry struct {
	dispensers map[int]*Dispenser
}

// NewRegistry builds a Registry from pre-constructed dispensers.
func NewRegistry(dispensers ...*Dispenser) *Registry {
	reg := &Registry{dispensers: make(map[int]*Dispenser, len(dispensers))}
	for _, d := range dispensers {
		reg.dispensers[d.ID] = d
	}
	return reg
}

// LoadRegistry reads the dispenser catalog file and builds a Registry.
// Each line is "id maxQueue product [product...]". Malformed lines are
// skipped with a warning; an unreadable file is a fatal error for the caller.
func LoadRegistry(path string) (*Registry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read dispenser catalog: %w", err)
	}
	defer file.Close()
	return ReadRegistry(file)
}

// ReadRegistry parses catalog lines from r. See LoadRegistry for the format.
func ReadRegistry(r io.Reader) (*Registry, error) {
	reg := &Registry{dispensers: make(map[int]*Dispenser)}

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) < 3 {
			logrus.Warnf("catalog line %d skipped, want \"id maxQueue product...\": %q", lineNum, line)
			continue
		}

		id, err := strconv.Atoi(parts[0])
		if err != nil {
			logrus.Warnf("catalog line %d skipped, bad dispenser id: %v", lineNum, err)
			continue
		}
		maxQueue, err := strconv.Atoi(parts[1])
		if err != nil {
			logrus.Warnf("catalog line %d skipped, bad max queue: %v", lineNum, err)
			continue
		}
		if id <= 0 || maxQueue < 0 {
			logrus.Warnf("catalog line %d skipped, id must be positive and max queue non-negative: %q", lineNum, line)
			continue
		}

		reg.dispensers[id] = &Dispenser{
			ID:       id,
			MaxQueue: maxQueue,
			Products: parts[2:],
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("unable to read dispenser catalog: %w", err)
	}

	return reg, nil
}

// Get returns the dispenser with the given id, or nil if unknown.
func (reg *Registry) Get(id int) *Dispenser {
	return reg.dispensers[id]
}

// Len returns the number of registered dispensers.
func (reg *Registry) Len() int {
	return len(reg.dispensers)
}

// IDs returns all dispenser ids in ascending order.
func (reg *Registry) IDs() []int {
	ids := make([]int, 0, len(reg.dispensers))
	for id := range reg.dispensers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Snapshot returns a read-only copy of every dispenser, ordered by ascending
// id, for display and audit. Mutating the copies does not touch the Registry.
func (reg *Registry) Snapshot() []Dispenser {
	snap := make([]Dispenser, 0, len(reg.dispensers))
	for _, id := range reg.IDs() {
		d := *reg.dispensers[id]
		d.Products = slices.Clone(d.Products)
		snap = append(snap, d)
	}
	return snap
}

// checkInvariant panics when a dispenser's queue bound is violated. The
// selection policy keeps this from ever firing; a panic here means dispenser
// state was mutated outside the engine's transitions.
func (d *Dispenser) checkInvariant() {
	if d.QueueLength < 0 || d.QueueLength > d.MaxQueue {
		logrus.Panicf("dispenser %d queue length %d outside [0, %d]", d.ID, d.QueueLength, d.MaxQueue)
	}
}
