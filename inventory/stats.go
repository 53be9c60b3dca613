package inventory

import "github.com/arthur-debert/toran/types"

// LowStockThreshold is the quantity below which an item counts as low stock
const LowStockThreshold = 5

// Stats summarizes the whole inventory, ignoring any active filter
type Stats struct {
	ItemTypes  int `json:"item_types" yaml:"item_types"`
	TotalUnits int `json:"total_units" yaml:"total_units"`
	LowStock   int `json:"low_stock" yaml:"low_stock"`
}

// ComputeStats reduces items into their summary metrics.
// Quantities are read with types.ParseIntOrZero so bad input counts as 0.
func ComputeStats(items []types.Item) Stats {
	stats := Stats{ItemTypes: len(items)}
	for _, it := range items {
		units := it.Units()
		stats.TotalUnits += units
		if IsLowStock(it) {
			stats.LowStock++
		}
	}
	return stats
}

// IsLowStock reports whether item is below LowStockThreshold
func IsLowStock(item types.Item) bool {
	return item.Units() < LowStockThreshold
}

// StockValue is the sum of units times unit price. Blank or non-numeric
// prices count as 0.
func StockValue(items []types.Item) float64 {
	var total float64
	for _, it := range items {
		total += float64(it.Units()) * it.Price.Float(0)
	}
	return total
}
