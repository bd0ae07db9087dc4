// Package report builds the post-run profitability analysis: revenue lost to
// turned-away customers and whether an extra dispenser would pay for itself.
// Pure aggregation over the final run counters; nothing here feeds back into
// the simulation.
package report

import (
	"fmt"
	"math"
	"slices"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/station-sim/station-sim/sim"
)

const (
	// DefaultDispenserCost is the assumed purchase price of one new dispenser.
	DefaultDispenserCost = 1_700_000.0

	// DefaultAssumedVolume is the per-customer volume assumed when the run
	// sold nothing at all, leaving no observed demand to average.
	DefaultAssumedVolume = 30.0

	// projection horizon: one simulated day extrapolated to a month
	daysPerMonth = 30
)

// Verdict classifies the payback period of an additional dispenser.
type Verdict string

const (
	// VerdictProfitable: payback within 12 months.
	VerdictProfitable Verdict = "profitable"
	// VerdictModeratelyProfitable: payback within 24 months.
	VerdictModeratelyProfitable Verdict = "moderately-profitable"
	// VerdictUnprofitable: payback would take longer than 24 months.
	VerdictUnprofitable Verdict = "unprofitable"
)

// ClassifyPayback maps a payback period in months to a Verdict.
func ClassifyPayback(months float64) Verdict {
	switch {
	case months <= 12:
		return VerdictProfitable
	case months <= 24:
		return VerdictModeratelyProfitable
	default:
		return VerdictUnprofitable
	}
}

// Report is the lost-profit analysis over one run's final statistics.
type Report struct {
	RunID string // random identifier stamped on the printed report

	LostVolumeByProduct  map[string]float64 // estimated litres lost per product
	LostRevenueByProduct map[string]float64
	TotalLostVolume      float64
	TotalLostRevenue     float64

	RecommendedProduct string // product with the most lost customers, "" when none lost
	MonthlyLostRevenue float64
	DispenserCost      float64
	PaybackMonths      float64 // +Inf when no revenue was lost
	Verdict            Verdict
}

// Build computes the lost-profit report from final run statistics.
//
// The volume a lost customer would have bought is estimated from observed
// demand: the product's own average accepted volume when it sold, otherwise
// the sales-weighted mean volume across all products, otherwise
// DefaultAssumedVolume.
func Build(stats *sim.RunStatistics, prices *sim.PriceTable) *Report {
	r := &Report{
		RunID:                uuid.NewString(),
		LostVolumeByProduct:  make(map[string]float64),
		LostRevenueByProduct: make(map[string]float64),
		DispenserCost:        DefaultDispenserCost,
		PaybackMonths:        math.Inf(1),
	}

	fallback := fallbackVolume(stats)

	mostLost := 0
	for _, product := range stats.Products() {
		lost := stats.LostByProduct[product]
		if lost == 0 {
			continue
		}

		avgVolume := fallback
		if sales := stats.SoldByProduct[product]; sales.Count > 0 {
			avgVolume = float64(sales.Units) / float64(sales.Count)
		}

		lostVolume := float64(lost) * avgVolume
		lostRevenue := lostVolume * prices.Price(product)

		r.LostVolumeByProduct[product] = lostVolume
		r.LostRevenueByProduct[product] = lostRevenue
		r.TotalLostVolume += lostVolume
		r.TotalLostRevenue += lostRevenue

		// Products() is sorted, so ties keep the first product seen
		if lost > mostLost {
			mostLost = lost
			r.RecommendedProduct = product
		}
	}

	r.MonthlyLostRevenue = r.TotalLostRevenue * daysPerMonth
	if r.MonthlyLostRevenue > 0 {
		r.PaybackMonths = r.DispenserCost / r.MonthlyLostRevenue
	}
	r.Verdict = ClassifyPayback(r.PaybackMonths)

	return r
}

// fallbackVolume is the sales-weighted mean accepted volume across all
// products, or DefaultAssumedVolume when nothing sold.
func fallbackVolume(stats *sim.RunStatistics) float64 {
	var volumes, weights []float64
	for _, product := range stats.Products() {
		if sales := stats.SoldByProduct[product]; sales.Count > 0 {
			volumes = append(volumes, float64(sales.Units)/float64(sales.Count))
			weights = append(weights, float64(sales.Count))
		}
	}
	if len(volumes) == 0 {
		return DefaultAssumedVolume
	}
	return stat.Mean(volumes, weights)
}

// Print displays the profitability analysis after the sales summary.
func (r *Report) Print() {
	fmt.Println("=== Lost Profit Analysis ===")
	fmt.Printf("Run %s\n", r.RunID)

	if r.RecommendedProduct == "" {
		fmt.Println("No customers were lost; an additional dispenser is not needed.")
		return
	}

	products := make([]string, 0, len(r.LostVolumeByProduct))
	for product := range r.LostVolumeByProduct {
		products = append(products, product)
	}
	slices.Sort(products)
	for _, product := range products {
		fmt.Printf("  %s: lost ~%.1f l, revenue ~%.2f\n", product, r.LostVolumeByProduct[product], r.LostRevenueByProduct[product])
	}
	fmt.Printf("Total lost           : %.1f l, revenue %.2f\n", r.TotalLostVolume, r.TotalLostRevenue)
	fmt.Printf("Most lost customers  : %s\n", r.RecommendedProduct)
	fmt.Printf("Recommended          : install a %s dispenser\n", r.RecommendedProduct)
	fmt.Printf("Monthly lost revenue : %.0f\n", r.MonthlyLostRevenue)
	fmt.Printf("Dispenser cost       : %.0f\n", r.DispenserCost)
	fmt.Printf("Payback period       : %.1f months (%s)\n", r.PaybackMonths, r.Verdict)
}
