package sim

// CompletionEvent is the scheduled future point at which a dispenser finishes
// serving an accepted request. The originating request's fields are retained
// for reporting. Each accepted request produces exactly one CompletionEvent,
// and each event is applied exactly once when its time is drained.
type CompletionEvent struct {
	CompletionTime  Minutes
	DispenserID     int
	ArrivalTime     Minutes
	Product         string
	Quantity        int
	ServiceDuration Minutes

	// seq is the creation order of the event, assigned by the Simulator.
	// Events sharing a CompletionTime drain in FIFO creation order.
	seq uint64
}

// Timeline implements heap.Interface and orders pending completion events by
// timestamp, creation order breaking ties.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type Timeline []*CompletionEvent

func (tl Timeline) Len() int { return len(tl) }

func (tl Timeline) Less(i, j int) bool {
	if tl[i].CompletionTime != tl[j].CompletionTime {
		return tl[i].CompletionTime < tl[j].CompletionTime
	}
	return tl[i].seq < tl[j].seq
}

func (tl Timeline) Swap(i, j int) { tl[i], tl[j] = tl[j], tl[i] }

func (tl *Timeline) Push(x any) {
	*tl = append(*tl, x.(*CompletionEvent))
}

func (tl *Timeline) Pop() any {
	old := *tl
	n := len(old)
	item := old[n-1]
	*tl = old[0 : n-1]
	return item
}

// Peek returns the earliest pending completion without removing it,
// or nil when the timeline is empty.
func (tl Timeline) Peek() *CompletionEvent {
	if len(tl) == 0 {
		return nil
	}
	return tl[0]
}
