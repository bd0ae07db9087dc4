package sim

import (
	"math/rand"

	"github.com/sirupsen/logrus"
)

// SelectionPolicy defines the interface for picking which dispenser serves an
// arriving customer.
type SelectionPolicy interface {
	// SelectDispenser picks the dispenser that should serve the request.
	// Parameters:
	//   req: the arriving request
	//   reg: current state of all dispensers (for state-aware selection)
	// Returns: the chosen dispenser id, or ok=false when no dispenser
	// supporting the product has spare queue capacity (customer is lost).
	SelectDispenser(req *Request, reg *Registry) (id int, ok bool)
}

// NewSelectionPolicy creates a selection policy of the specified type
func NewSelectionPolicy(policyType string, rng *rand.Rand) SelectionPolicy {
	switch policyType {
	case "shortest-queue":
		return &ShortestQueuePolicy{}
	case "random":
		return NewRandomPolicy(rng)
	default:
		logrus.Panicf("unknown selection policy type: %s", policyType)
		return nil
	}
}

// GetAvailableSelectionPolicies returns list of supported selection policy types
func GetAvailableSelectionPolicies() []string {
	return []string{"shortest-queue", "random"}
}

// eligibleIDs returns, in ascending id order, the dispensers that support the
// request's product and still have spare queue capacity.
func eligibleIDs(req *Request, reg *Registry) []int {
	var ids []int
	for _, id := range reg.IDs() {
		d := reg.Get(id)
		if d.Serves(req.Product) && !d.AtCapacity() {
			ids = append(ids, id)
		}
	}
	return ids
}

// ShortestQueuePolicy picks the eligible dispenser with the fewest queued
// customers, smallest id breaking ties. Greedy and stateless: it never looks
// ahead and never rebalances customers that are already queued.
type ShortestQueuePolicy struct{}

// SelectDispenser implements SelectionPolicy.
func (p *ShortestQueuePolicy) SelectDispenser(req *Request, reg *Registry) (int, bool) {
	best := 0
	found := false
	for _, id := range eligibleIDs(req, reg) {
		if !found || reg.Get(id).QueueLength < reg.Get(best).QueueLength {
			best = id
			found = true
		}
	}
	return best, found
}

// RandomPolicy picks uniformly among eligible dispensers. Useful as a
// baseline when comparing queueing behavior across policies.
type RandomPolicy struct {
	rand *rand.Rand
}

// NewRandomPolicy creates a random selection policy
func NewRandomPolicy(rng *rand.Rand) *RandomPolicy {
	return &RandomPolicy{rand: rng}
}

// SelectDispenser implements SelectionPolicy.
func (p *RandomPolicy) SelectDispenser(req *Request, reg *Registry) (int, bool) {
	ids := eligibleIDs(req, reg)
	if len(ids) == 0 {
		return 0, false
	}
	return ids[p.rand.Intn(len(ids))], true
}
