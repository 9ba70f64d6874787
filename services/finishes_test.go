package services

import (
	"math"
	"testing"
)

func finishesCatalog() PriceCatalog {
	return PriceCatalog{
		Materials: []MaterialPrice{
			{
				ID: "w1", Name: "Wall-Finishes",
				Type: &PriceBreakdown{
					WallingMaterials: []RatedMaterial{
						{Name: "Gypsum Board", Rates: []float64{950}},
					},
					TilingMaterials: []RatedMaterial{
						{Name: "Ceramic Tiles", Rates: []float64{1200}},
					},
				},
			},
		},
	}
}

func TestFinishWastage(t *testing.T) {
	tests := []struct {
		name    string
		setting any
		want    float64
	}{
		{"numeric percentage", 15.0, 0.15},
		{"integer percentage", 5, 0.05},
		{"string percentage", "12", 0.12},
		{"zero is honored", 0.0, 0},
		{"invalid string defaults", "lots", 0.1},
		{"nil defaults", nil, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FinishWastage(tt.setting)
			if math.Abs(got-tt.want) > 0.0001 {
				t.Errorf("FinishWastage(%v) = %v, want %v", tt.setting, got, tt.want)
			}
		})
	}
}

func TestCalcFinish(t *testing.T) {
	el := FinishElement{ID: "f1", Material: "Ceramic Tiles", Quantity: 25, Unit: "m²"}
	got := CalcFinish(el, finishesCatalog(), "Nairobi", 0.1)

	if math.Abs(got.AdjustedQty-27.5) > 0.011 {
		t.Errorf("AdjustedQty = %v, want ~27.5", got.AdjustedQty)
	}
	if math.Abs(got.WastageQty-2.5) > 0.011 {
		t.Errorf("WastageQty = %v, want ~2.5", got.WastageQty)
	}
	if math.Abs(got.Cost-25*1200) > 0.001 {
		t.Errorf("Cost = %v, want %v", got.Cost, 25*1200)
	}
	if math.Abs(got.CostWithWastage-got.AdjustedQty*1200) > 0.001 {
		t.Errorf("CostWithWastage = %v, want %v", got.CostWithWastage, got.AdjustedQty*1200)
	}
}

func TestCalcFinishAdjustedNeverBelowQuantity(t *testing.T) {
	for _, qty := range []float64{0, 0.01, 7.77, 100} {
		el := FinishElement{ID: "f", Material: "Gypsum Board", Quantity: qty, Unit: "m²"}
		got := CalcFinish(el, finishesCatalog(), "Nairobi", 0.1)
		if got.AdjustedQty < got.Quantity {
			t.Errorf("qty %v: adjusted %v below quantity", qty, got.AdjustedQty)
		}
	}
	// Zero wastage keeps the quantity unchanged.
	el := FinishElement{ID: "f", Material: "Gypsum Board", Quantity: 12.5, Unit: "m²"}
	got := CalcFinish(el, finishesCatalog(), "Nairobi", 0)
	if got.AdjustedQty != got.Quantity {
		t.Errorf("zero wastage: adjusted %v != quantity %v", got.AdjustedQty, got.Quantity)
	}
}

func TestCalcFinishUnknownMaterialCostsZero(t *testing.T) {
	el := FinishElement{ID: "f1", Material: "Marble", Quantity: 25, Unit: "m²"}
	got := CalcFinish(el, finishesCatalog(), "Nairobi", 0.1)

	if got.UnitRate != 0 || got.Cost != 0 {
		t.Errorf("unknown material should price at 0, got rate %v cost %v", got.UnitRate, got.Cost)
	}
	// The quantity math still proceeds.
	if math.Abs(got.AdjustedQty-27.5) > 0.001 {
		t.Errorf("AdjustedQty = %v, want 27.5", got.AdjustedQty)
	}
}

func TestCalcFinishesAreaRollupExcludesCountUnits(t *testing.T) {
	elements := []FinishElement{
		{ID: "a", Material: "Ceramic Tiles", Quantity: 30, Unit: "m²"},
		{ID: "b", Material: "Gypsum Board", Quantity: 12, Unit: "m"},
		{ID: "c", Material: "Ceramic Tiles", Quantity: 5, Unit: "pc"},
	}
	summary := CalcFinishes(elements, finishesCatalog(), "Nairobi", 0.1)

	// Area counts m² and m only; the piece-count line is excluded from
	// area but still costed.
	if math.Abs(summary.TotalAreaM2-42) > 0.001 {
		t.Errorf("TotalAreaM2 = %v, want 42", summary.TotalAreaM2)
	}
	if math.Abs(summary.TotalQuantity-47) > 0.001 {
		t.Errorf("TotalQuantity = %v, want 47", summary.TotalQuantity)
	}
	var wantCost float64
	for _, r := range summary.Results {
		wantCost += r.CostWithWastage
	}
	if math.Abs(summary.TotalCostWithWastage-wantCost) > 0.001 {
		t.Errorf("TotalCostWithWastage = %v, want %v", summary.TotalCostWithWastage, wantCost)
	}
	if summary.Results[2].CostWithWastage == 0 {
		t.Error("piece-count line should still be costed")
	}
}

func TestCalcFinishesEmpty(t *testing.T) {
	summary := CalcFinishes(nil, finishesCatalog(), "Nairobi", 0.1)
	if summary.TotalCost != 0 || len(summary.Results) != 0 {
		t.Errorf("empty input should yield zero summary, got %+v", summary)
	}
}
