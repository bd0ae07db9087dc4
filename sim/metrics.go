// Tracks run-wide sales and lost-customer statistics.

package sim

import (
	"fmt"
	"slices"
)

// ProductSales accumulates accepted demand for one product.
type ProductSales struct {
	Units int // litres sold
	Count int // number of accepted requests
}

// RunStatistics aggregates sales, revenue and lost-customer counters for a
// run. Mutated only by the Simulator; read-only externally until the run
// reaches StateDone. Consumed afterwards by the profitability report.
type RunStatistics struct {
	SoldByProduct map[string]ProductSales
	TotalRevenue  float64
	LostByProduct map[string]int
	LostClients   int

	AcceptedRequests int
	TotalRequests    int
}

// NewRunStatistics creates an empty statistics collector.
func NewRunStatistics() *RunStatistics {
	return &RunStatistics{
		SoldByProduct: make(map[string]ProductSales),
		LostByProduct: make(map[string]int),
	}
}

// RecordSale registers an accepted request. Revenue is recognized here, at
// acceptance time, not when the service completes.
func (s *RunStatistics) RecordSale(product string, quantity int, unitPrice float64) {
	sales := s.SoldByProduct[product]
	sales.Units += quantity
	sales.Count++
	s.SoldByProduct[product] = sales
	s.TotalRevenue += float64(quantity) * unitPrice
	s.AcceptedRequests++
}

// RecordLoss registers a customer that left because no eligible dispenser had
// spare capacity.
func (s *RunStatistics) RecordLoss(product string) {
	s.LostByProduct[product]++
	s.LostClients++
}

// TotalUnitsSold returns the litres sold across all products.
func (s *RunStatistics) TotalUnitsSold() int {
	total := 0
	for _, sales := range s.SoldByProduct {
		total += sales.Units
	}
	return total
}

// Products returns every product seen in sales or losses, sorted.
func (s *RunStatistics) Products() []string {
	seen := make(map[string]bool)
	for p := range s.SoldByProduct {
		seen[p] = true
	}
	for p := range s.LostByProduct {
		seen[p] = true
	}
	products := make([]string, 0, len(seen))
	for p := range seen {
		products = append(products, p)
	}
	slices.Sort(products)
	return products
}

// Print displays the sales summary at the end of the simulation.
func (s *RunStatistics) Print() {
	fmt.Println("=== Sales Summary ===")
	for _, product := range s.Products() {
		sales := s.SoldByProduct[product]
		fmt.Printf("  %s: %d l (%d customers)\n", product, sales.Units, sales.Count)
	}
	fmt.Printf("Total fuel sold      : %d l\n", s.TotalUnitsSold())
	fmt.Printf("Total revenue        : %.2f\n", s.TotalRevenue)
	fmt.Printf("Lost customers       : %d\n", s.LostClients)
}
