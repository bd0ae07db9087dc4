package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalArrivals         int
	AcceptedCount         int
	LostCount             int
	CompletionCount       int
	UniqueDispensers      int
	DispenserDistribution map[int]int // dispenser id → count of customers assigned
	MeanServiceDuration   float64     // minutes, over completions
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		DispenserDistribution: make(map[int]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalArrivals = len(st.Selections)
	for _, s := range st.Selections {
		if s.Accepted {
			summary.AcceptedCount++
			summary.DispenserDistribution[s.DispenserID]++
		} else {
			summary.LostCount++
		}
	}

	summary.CompletionCount = len(st.Completions)
	if len(st.Completions) > 0 {
		total := int64(0)
		for _, c := range st.Completions {
			total += c.ServiceDuration
		}
		summary.MeanServiceDuration = float64(total) / float64(len(st.Completions))
	}

	summary.UniqueDispensers = len(summary.DispenserDistribution)

	return summary
}
