package calc

import (
	"github.com/arayasuryanto/tools-simulasikelayakan/pkg/models"
)

// ItemTotal computes the cost of a single budget line.
//
// FORMULA: total = volume * price
func ItemTotal(item models.LineItem) float64 {
	return item.Volume * item.Price
}

// SumItemTotals aggregates a line-item collection. An empty or nil
// collection sums to 0. Negative volumes or prices are not rejected
// here; the sign simply carries through to the caller.
func SumItemTotals(items []models.LineItem) float64 {
	total := 0.0
	for _, item := range items {
		total += ItemTotal(item)
	}
	return total
}
