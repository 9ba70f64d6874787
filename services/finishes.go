package services

import (
	"github.com/spf13/cast"
)

// defaultFinishWastage is the fallback wastage fraction for finishes.
const defaultFinishWastage = 0.1

// FinishElement is one flooring or internal finish line: a material, a
// measured quantity and its unit.
type FinishElement struct {
	ID       string
	Material string
	Quantity float64
	Unit     string
}

// FinishWastage coerces the quote's wastage setting into a fraction. The
// stored value may be a number or a string percentage; anything invalid or
// missing falls back to 10%.
func FinishWastage(setting any) float64 {
	if setting == nil {
		return defaultFinishWastage
	}
	pct, err := cast.ToFloat64E(setting)
	if err != nil {
		return defaultFinishWastage
	}
	return pct / 100
}

// FinishResult is the computed output for one finish element. Costs are
// kept both without wastage (material needed) and with wastage (material to
// purchase) for distinct downstream displays.
type FinishResult struct {
	ID          string
	Material    string
	Quantity    float64
	AdjustedQty float64
	WastageQty  float64
	Unit        string
	UnitRate    float64

	Cost            float64
	CostWithWastage float64
	WastageCost     float64
}

// CalcFinish applies wastage and resolves the unit rate for one element.
func CalcFinish(el FinishElement, catalog PriceCatalog, region string, wastage float64) FinishResult {
	qty := sanitizeQty(el.Quantity)
	rate := catalog.WallingRate(el.Material, region)

	adjusted := RoundUp2dp(ApplyWastage(qty, wastage))

	return FinishResult{
		ID:              el.ID,
		Material:        el.Material,
		Quantity:        qty,
		AdjustedQty:     adjusted,
		WastageQty:      adjusted - qty,
		Unit:            el.Unit,
		UnitRate:        rate,
		Cost:            qty * rate,
		CostWithWastage: adjusted * rate,
		WastageCost:     (adjusted - qty) * rate,
	}
}

// FinishesSummary aggregates all finish elements. TotalAreaM2 counts only
// m² and m quantities; cost totals include every element regardless of
// unit, since area and cost feed different displays.
type FinishesSummary struct {
	Results []FinishResult

	TotalAreaM2          float64
	TotalQuantity        float64
	TotalAdjustedQty     float64
	TotalCost            float64
	TotalCostWithWastage float64
	TotalWastageQty      float64
	TotalWastageCost     float64
	WastagePct           float64
}

// CalcFinishes computes each element and folds the totals.
func CalcFinishes(elements []FinishElement, catalog PriceCatalog, region string, wastage float64) FinishesSummary {
	summary := FinishesSummary{WastagePct: wastage}
	for _, el := range elements {
		result := CalcFinish(el, catalog, region, wastage)
		summary.Results = append(summary.Results, result)

		if result.Unit == "m²" || result.Unit == "m" {
			summary.TotalAreaM2 += result.Quantity
		}
		summary.TotalQuantity += result.Quantity
		summary.TotalAdjustedQty += result.AdjustedQty
		summary.TotalCost += result.Cost
		summary.TotalCostWithWastage += result.CostWithWastage
		summary.TotalWastageQty += result.WastageQty
		summary.TotalWastageCost += result.WastageCost
	}
	return summary
}
