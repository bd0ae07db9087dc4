package report

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/station-sim/station-sim/sim"
)

func TestClassifyPayback(t *testing.T) {
	tests := []struct {
		months float64
		want   Verdict
	}{
		{1, VerdictProfitable},
		{12, VerdictProfitable},
		{12.1, VerdictModeratelyProfitable},
		{24, VerdictModeratelyProfitable},
		{24.1, VerdictUnprofitable},
		{math.Inf(1), VerdictUnprofitable},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyPayback(tt.months), "months=%v", tt.months)
	}
}

func TestBuild_NoLostCustomers(t *testing.T) {
	stats := sim.NewRunStatistics()
	stats.RecordSale("AI-92", 40, 60.5)

	r := Build(stats, sim.DefaultPriceTable())

	assert.Empty(t, r.RecommendedProduct)
	assert.Zero(t, r.TotalLostRevenue)
	assert.True(t, math.IsInf(r.PaybackMonths, 1))
	assert.Equal(t, VerdictUnprofitable, r.Verdict)
	assert.NotEmpty(t, r.RunID)
}

func TestBuild_UsesProductOwnAverageVolume(t *testing.T) {
	// GIVEN AI-95 sold 2 customers x 30 l average and lost 3 customers
	stats := sim.NewRunStatistics()
	stats.RecordSale("AI-95", 20, 65.0)
	stats.RecordSale("AI-95", 40, 65.0)
	for i := 0; i < 3; i++ {
		stats.RecordLoss("AI-95")
	}
	prices := sim.NewPriceTable(map[string]float64{"AI-95": 65.0})

	r := Build(stats, prices)

	// THEN lost volume is 3 x 30 l at 65.0 per litre
	assert.InDelta(t, 90.0, r.LostVolumeByProduct["AI-95"], 1e-9)
	assert.InDelta(t, 90.0*65.0, r.LostRevenueByProduct["AI-95"], 1e-9)
	assert.Equal(t, "AI-95", r.RecommendedProduct)
	assert.InDelta(t, 90.0*65.0*30, r.MonthlyLostRevenue, 1e-6)
}

func TestBuild_FallbackVolumeForUnsoldProduct(t *testing.T) {
	// GIVEN AI-98 lost customers but never sold; other products average
	// (40*1 + 20*3) / 4 = 25 l per accepted customer
	stats := sim.NewRunStatistics()
	stats.RecordSale("AI-92", 40, 60.5)
	stats.RecordSale("AI-95", 60, 65.0)
	stats.SoldByProduct["AI-95"] = sim.ProductSales{Units: 60, Count: 3}
	stats.RecordLoss("AI-98")
	prices := sim.NewPriceTable(map[string]float64{"AI-98": 80.0})

	r := Build(stats, prices)

	assert.InDelta(t, 25.0, r.LostVolumeByProduct["AI-98"], 1e-9)
	assert.InDelta(t, 25.0*80.0, r.LostRevenueByProduct["AI-98"], 1e-9)
}

func TestBuild_FallbackVolumeWhenNothingSold(t *testing.T) {
	stats := sim.NewRunStatistics()
	stats.RecordLoss("AI-92")

	r := Build(stats, sim.DefaultPriceTable())

	assert.InDelta(t, DefaultAssumedVolume, r.LostVolumeByProduct["AI-92"], 1e-9)
}

func TestBuild_RecommendsProductWithMostLosses(t *testing.T) {
	stats := sim.NewRunStatistics()
	stats.RecordLoss("AI-92")
	stats.RecordLoss("AI-98")
	stats.RecordLoss("AI-98")

	r := Build(stats, sim.DefaultPriceTable())

	assert.Equal(t, "AI-98", r.RecommendedProduct)
}

func TestBuild_PaybackMonths(t *testing.T) {
	// GIVEN daily lost revenue engineered so the monthly projection covers
	// the dispenser cost in exactly ten months
	stats := sim.NewRunStatistics()
	stats.RecordSale("A", 100, 1.0)
	stats.RecordLoss("A")
	prices := sim.NewPriceTable(map[string]float64{"A": DefaultDispenserCost / (100.0 * 30 * 10)})

	r := Build(stats, prices)

	assert.InDelta(t, 10.0, r.PaybackMonths, 1e-6)
	assert.Equal(t, VerdictProfitable, r.Verdict)
}
