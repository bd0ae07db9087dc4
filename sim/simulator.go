// sim/simulator.go
package sim

import (
	"container/heap"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/station-sim/station-sim/sim/trace"
)

// RunState describes where the engine is in a run.
type RunState string

const (
	// StateRunning: arrivals remain to be processed.
	StateRunning RunState = "running"
	// StateDraining: arrivals are exhausted, completions remain on the timeline.
	StateDraining RunState = "draining"
	// StateDone: both streams are empty.
	StateDone RunState = "done"
)

// Simulator is the core object that holds simulation time, dispenser state,
// and the event loop. It merges two orderings of events into one global
// chronological trace: the arrival stream (consumed through a sequential
// cursor over requests sorted by arrival time) and the Timeline (a priority
// queue of pending completions). Before each arrival is handled, every
// completion due at or before the arrival's timestamp is drained in order.
type Simulator struct {
	Clock Minutes
	State RunState
	// Timeline has all pending completion events, earliest first
	Timeline Timeline
	Registry *Registry
	Policy   SelectionPolicy
	// Durations computes per-request service time; inject a FixedVariationModel
	// for reproducible timelines
	Durations DurationModel
	Prices    *PriceTable
	Stats     *RunStatistics
	// Trace is optional; nil disables decision recording
	Trace *trace.SimulationTrace

	arrivals []*Request
	cursor   int
	nextSeq  uint64
}

// NewSimulator wires up an engine for one run. The arrival stream must be
// ordered by arrival time before the simulation starts; the engine enforces
// the precondition with a stable sort, so same-minute arrivals keep their
// input order.
func NewSimulator(reg *Registry, policy SelectionPolicy, durations DurationModel, prices *PriceTable, requests []*Request) *Simulator {
	arrivals := make([]*Request, len(requests))
	copy(arrivals, requests)
	sort.SliceStable(arrivals, func(i, j int) bool {
		return arrivals[i].ArrivalTime < arrivals[j].ArrivalTime
	})

	return &Simulator{
		Clock:     0,
		State:     StateRunning,
		Timeline:  make(Timeline, 0),
		Registry:  reg,
		Policy:    policy,
		Durations: durations,
		Prices:    prices,
		Stats:     NewRunStatistics(),
		arrivals:  arrivals,
	}
}

// Run drives the simulation to completion: every arrival is either queued at
// a dispenser or counted as lost, and every scheduled completion is applied.
func (sim *Simulator) Run() {
	for sim.cursor < len(sim.arrivals) {
		req := sim.arrivals[sim.cursor]
		// apply completions that fall due before this customer shows up
		sim.drainDue(req.ArrivalTime)
		sim.handleArrival(req)
		sim.cursor++
	}

	sim.State = StateDraining
	for sim.Timeline.Len() > 0 {
		sim.applyCompletion(heap.Pop(&sim.Timeline).(*CompletionEvent))
	}

	sim.State = StateDone
	logrus.Infof("[%s] Simulation ended", sim.Clock.Clock())
}

// schedule pushes a completion event onto the timeline, stamping it with its
// creation order so equal timestamps drain FIFO.
func (sim *Simulator) schedule(ev *CompletionEvent) {
	ev.seq = sim.nextSeq
	sim.nextSeq++
	heap.Push(&sim.Timeline, ev)
}

// drainDue applies every pending completion with timestamp <= t, earliest
// first. Completions are always applied before any arrival at or after their
// time, so queue-length decrements are visible to later selection decisions.
func (sim *Simulator) drainDue(t Minutes) {
	for sim.Timeline.Len() > 0 && sim.Timeline.Peek().CompletionTime <= t {
		sim.applyCompletion(heap.Pop(&sim.Timeline).(*CompletionEvent))
	}
}

// applyCompletion advances the clock to the completion time and releases the
// dispenser: queue shrinks by one, the busy-until marker moves forward, the
// current-client marker clears.
func (sim *Simulator) applyCompletion(ev *CompletionEvent) {
	sim.Clock = ev.CompletionTime

	logrus.Infof("[%s] Customer (arrived %s, %s, %d l, %d min) finished refueling at dispenser %d",
		sim.Clock.Clock(), ev.ArrivalTime.Clock(), ev.Product, ev.Quantity, ev.ServiceDuration, ev.DispenserID)

	d := sim.Registry.Get(ev.DispenserID)
	d.QueueLength--
	d.LastServiceEnd = ev.CompletionTime
	d.CurrentClient = nil
	d.checkInvariant()

	if sim.Trace.Enabled() {
		sim.Trace.RecordCompletion(trace.CompletionRecord{
			Clock:           int64(ev.CompletionTime),
			DispenserID:     ev.DispenserID,
			ArrivalTime:     int64(ev.ArrivalTime),
			Product:         ev.Product,
			Quantity:        ev.Quantity,
			ServiceDuration: int64(ev.ServiceDuration),
		})
	}

	sim.logRegistryState()
}

// handleArrival runs the selection policy for one customer and either queues
// them (scheduling exactly one completion) or records them as lost.
func (sim *Simulator) handleArrival(req *Request) {
	sim.Clock = maxMinutes(sim.Clock, req.ArrivalTime)
	sim.Stats.TotalRequests++

	if req.Product == "" {
		logrus.Warnf("[%s] request has no product field, no dispenser can serve it", req.ArrivalTime.Clock())
	}

	id, ok := sim.Policy.SelectDispenser(req, sim.Registry)
	if !ok {
		sim.Stats.RecordLoss(req.Product)
		logrus.Infof("[%s] Customer wanting %s left: no free dispenser", req.ArrivalTime.Clock(), req.Product)
		if sim.Trace.Enabled() {
			sim.Trace.RecordSelection(trace.SelectionRecord{
				Clock:       int64(req.ArrivalTime),
				ArrivalTime: int64(req.ArrivalTime),
				Product:     req.Product,
				Quantity:    req.Quantity,
				Accepted:    false,
				Reason:      "no eligible dispenser with spare capacity",
			})
		}
		sim.logRegistryState()
		return
	}

	d := sim.Registry.Get(id)
	d.QueueLength++
	d.CurrentClient = req
	d.checkInvariant()

	duration := sim.Durations.EstimateDuration(req.Quantity)
	// service starts once the dispenser frees up and the customer is present
	start := maxMinutes(d.LastServiceEnd, req.ArrivalTime)
	completion := start + duration

	sim.schedule(&CompletionEvent{
		CompletionTime:  completion,
		DispenserID:     id,
		ArrivalTime:     req.ArrivalTime,
		Product:         req.Product,
		Quantity:        req.Quantity,
		ServiceDuration: duration,
	})

	// revenue is recognized on queueing, not on completion
	sim.Stats.RecordSale(req.Product, req.Quantity, sim.Prices.Price(req.Product))

	logrus.Infof("[%s] New customer: %s %s %d l, %d min -> queued at dispenser %d",
		req.ArrivalTime.Clock(), req.ArrivalTime.Clock(), req.Product, req.Quantity, duration, id)

	if sim.Trace.Enabled() {
		sim.Trace.RecordSelection(trace.SelectionRecord{
			Clock:       int64(req.ArrivalTime),
			ArrivalTime: int64(req.ArrivalTime),
			Product:     req.Product,
			Quantity:    req.Quantity,
			Accepted:    true,
			DispenserID: id,
			Reason:      "eligible dispenser with spare capacity",
		})
	}

	sim.logRegistryState()
}

// logRegistryState emits the progressive per-event snapshot of every
// dispenser, ordered by id.
func (sim *Simulator) logRegistryState() {
	if !logrus.IsLevelEnabled(logrus.InfoLevel) {
		return
	}
	for _, d := range sim.Registry.Snapshot() {
		logrus.Info(d.String())
	}
}
