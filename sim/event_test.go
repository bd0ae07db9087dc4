package sim

import (
	"container/heap"
	"testing"
)

func TestTimeline_PopsInTimestampOrder(t *testing.T) {
	// GIVEN completions pushed out of order
	tl := make(Timeline, 0)
	for i, at := range []Minutes{30, 10, 20} {
		heap.Push(&tl, &CompletionEvent{CompletionTime: at, seq: uint64(i)})
	}

	// WHEN the timeline is drained
	var got []Minutes
	for tl.Len() > 0 {
		got = append(got, heap.Pop(&tl).(*CompletionEvent).CompletionTime)
	}

	// THEN events come out earliest first
	want := []Minutes{10, 20, 30}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pop %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestTimeline_EqualTimestamps_DrainFIFO(t *testing.T) {
	// GIVEN three completions sharing a timestamp, created in order 1, 2, 3
	tl := make(Timeline, 0)
	for i, id := range []int{1, 2, 3} {
		heap.Push(&tl, &CompletionEvent{CompletionTime: 15, DispenserID: id, seq: uint64(i)})
	}

	// WHEN drained
	var got []int
	for tl.Len() > 0 {
		got = append(got, heap.Pop(&tl).(*CompletionEvent).DispenserID)
	}

	// THEN creation order is preserved
	want := []int{1, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pop %d: got dispenser %d, want %d", i, got[i], want[i])
		}
	}
}

func TestTimeline_Peek(t *testing.T) {
	tl := make(Timeline, 0)
	if tl.Peek() != nil {
		t.Error("Peek on empty timeline: want nil")
	}

	heap.Push(&tl, &CompletionEvent{CompletionTime: 25})
	heap.Push(&tl, &CompletionEvent{CompletionTime: 5, seq: 1})

	if got := tl.Peek(); got.CompletionTime != 5 {
		t.Errorf("Peek: got %d, want 5", got.CompletionTime)
	}
	if tl.Len() != 2 {
		t.Errorf("Peek modified timeline length: got %d, want 2", tl.Len())
	}
}
