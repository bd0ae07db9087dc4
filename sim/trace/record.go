// Package trace provides decision-trace recording for post-run analysis.
// This package has no dependencies on sim/ and stores pure data types.
package trace

// SelectionRecord captures a single dispenser-selection decision.
type SelectionRecord struct {
	Clock       int64 // simulated minute the decision was made
	ArrivalTime int64
	Product     string
	Quantity    int
	Accepted    bool
	DispenserID int // 0 when the customer was lost
	Reason      string
}

// CompletionRecord captures a service completion being applied.
type CompletionRecord struct {
	Clock           int64 // completion minute
	DispenserID     int
	ArrivalTime     int64
	Product         string
	Quantity        int
	ServiceDuration int64
}
