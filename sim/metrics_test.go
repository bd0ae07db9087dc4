package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunStatistics_RecordSale(t *testing.T) {
	s := NewRunStatistics()
	s.RecordSale("AI-92", 20, 60.5)
	s.RecordSale("AI-92", 10, 60.5)
	s.RecordSale("AI-95", 30, 65.0)

	assert.Equal(t, ProductSales{Units: 30, Count: 2}, s.SoldByProduct["AI-92"])
	assert.Equal(t, ProductSales{Units: 30, Count: 1}, s.SoldByProduct["AI-95"])
	assert.Equal(t, 3, s.AcceptedRequests)
	assert.Equal(t, 60, s.TotalUnitsSold())
	assert.InDelta(t, 20*60.5+10*60.5+30*65.0, s.TotalRevenue, 1e-9)
}

func TestRunStatistics_RecordLoss(t *testing.T) {
	s := NewRunStatistics()
	s.RecordLoss("AI-98")
	s.RecordLoss("AI-98")
	s.RecordLoss("AI-80")

	assert.Equal(t, 2, s.LostByProduct["AI-98"])
	assert.Equal(t, 1, s.LostByProduct["AI-80"])
	assert.Equal(t, 3, s.LostClients)
	assert.Equal(t, 0, s.AcceptedRequests)
}

func TestRunStatistics_Products_SortedUnionOfSoldAndLost(t *testing.T) {
	s := NewRunStatistics()
	s.RecordSale("AI-95", 10, 65.0)
	s.RecordLoss("AI-80")
	s.RecordLoss("AI-95")
	s.RecordSale("AI-92", 5, 60.5)

	assert.Equal(t, []string{"AI-80", "AI-92", "AI-95"}, s.Products())
}
