// Package services provides the quantity and cost calculation engine for
// construction quotes: concrete, masonry, painting, roofing and finishes
// calculators, price resolution, quote aggregation and document export.
package services

import "math"

// sanitizeQty guards quantity inputs feeding cost displays: negative or NaN
// values collapse to 0 instead of producing an error.
func sanitizeQty(q float64) float64 {
	if math.IsNaN(q) || q < 0 {
		return 0
	}
	return q
}

// ApplyWastage inflates a net quantity by a fractional wastage allowance.
// The result is not rounded; callers pick the purchase-unit rounding that
// matches their material.
func ApplyWastage(quantity, wastagePct float64) float64 {
	quantity = sanitizeQty(quantity)
	if math.IsNaN(wastagePct) || wastagePct < 0 {
		wastagePct = 0
	}
	return quantity * (1 + wastagePct)
}

// RoundUpBags rounds a quantity up to whole purchasable bags.
func RoundUpBags(quantity float64) float64 {
	return math.Ceil(sanitizeQty(quantity))
}

// RoundUpHalfLitre rounds a quantity up to the nearest 0.5 litre.
func RoundUpHalfLitre(quantity float64) float64 {
	return math.Ceil(sanitizeQty(quantity)*2) / 2
}

// RoundUp2dp rounds a continuous quantity up at 2 decimal places.
func RoundUp2dp(quantity float64) float64 {
	return math.Ceil(sanitizeQty(quantity)*100) / 100
}
