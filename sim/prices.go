package sim

import (
	"fmt"
	"os"
	"slices"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// PricesSpec is the on-disk price table.
// Loaded from YAML via LoadPriceTable(path).
type PricesSpec struct {
	Version  string             `yaml:"version"`
	Currency string             `yaml:"currency,omitempty"`
	Products map[string]float64 `yaml:"products"`
}

// PriceTable maps product identifiers to their per-litre price. Products
// missing from the table price at zero; the first lookup of an unknown
// product emits a warning.
type PriceTable struct {
	prices map[string]float64
	warned map[string]bool
}

// NewPriceTable builds a PriceTable from a product -> price map.
func NewPriceTable(prices map[string]float64) *PriceTable {
	t := &PriceTable{
		prices: make(map[string]float64, len(prices)),
		warned: make(map[string]bool),
	}
	for product, price := range prices {
		t.prices[product] = price
	}
	return t
}

// DefaultPriceTable returns the built-in price table used when no prices
// file is supplied.
func DefaultPriceTable() *PriceTable {
	return NewPriceTable(map[string]float64{
		"AI-80": 38.0,
		"AI-92": 60.5,
		"AI-95": 65.0,
		"AI-98": 82.3,
	})
}

// LoadPriceTable reads a PricesSpec YAML file into a PriceTable.
func LoadPriceTable(path string) (*PriceTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read prices spec: %w", err)
	}
	var spec PricesSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("unable to parse prices spec %s: %w", path, err)
	}
	if len(spec.Products) == 0 {
		return nil, fmt.Errorf("prices spec %s lists no products", path)
	}
	return NewPriceTable(spec.Products), nil
}

// Price returns the per-litre price for a product, zero when unknown.
func (t *PriceTable) Price(product string) float64 {
	price, ok := t.prices[product]
	if !ok && !t.warned[product] {
		logrus.Warnf("no price listed for product %q, selling at 0", product)
		t.warned[product] = true
	}
	return price
}

// Products returns the priced product identifiers, sorted.
func (t *PriceTable) Products() []string {
	products := make([]string, 0, len(t.prices))
	for p := range t.prices {
		products = append(products, p)
	}
	slices.Sort(products)
	return products
}
