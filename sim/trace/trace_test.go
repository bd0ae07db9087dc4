package trace

import "testing"

func TestIsValidTraceLevel(t *testing.T) {
	tests := []struct {
		level string
		want  bool
	}{
		{"none", true},
		{"decisions", true},
		{"", true},
		{"verbose", false},
		{"all", false},
	}

	for _, tt := range tests {
		if got := IsValidTraceLevel(tt.level); got != tt.want {
			t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestSimulationTrace_Enabled(t *testing.T) {
	var nilTrace *SimulationTrace
	if nilTrace.Enabled() {
		t.Error("nil trace must not be enabled")
	}

	off := NewSimulationTrace(TraceConfig{Level: TraceLevelNone})
	if off.Enabled() {
		t.Error("level none must not be enabled")
	}

	on := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})
	if !on.Enabled() {
		t.Error("level decisions must be enabled")
	}
}

func TestSimulationTrace_RecordsAppendInOrder(t *testing.T) {
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	st.RecordSelection(SelectionRecord{Clock: 0, Accepted: true, DispenserID: 1})
	st.RecordSelection(SelectionRecord{Clock: 5, Accepted: false})
	st.RecordCompletion(CompletionRecord{Clock: 12, DispenserID: 1})

	if len(st.Selections) != 2 || len(st.Completions) != 1 {
		t.Fatalf("got %d selections and %d completions, want 2 and 1", len(st.Selections), len(st.Completions))
	}
	if st.Selections[0].Clock != 0 || st.Selections[1].Clock != 5 {
		t.Error("selection records out of order")
	}
}
