package services

import (
	"errors"
	"math"
	"testing"
)

func noWastageSettings() ConcreteSettings {
	s := DefaultConcreteSettings()
	s.WastageCementPct = 0
	s.WastageSandPct = 0
	s.WastageStonePct = 0
	s.WastageWaterPct = 0
	return s
}

func TestParseMixRatio(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    MixRatio
		wantErr bool
	}{
		{"standard structural mix", "1:2:4", MixRatio{1, 2, 4}, false},
		{"rich mix with decimal", "1:1.5:3", MixRatio{1, 1.5, 3}, false},
		{"lean mix", "1:4:8", MixRatio{1, 4, 8}, false},
		{"spaces tolerated", " 1 : 2 : 4 ", MixRatio{1, 2, 4}, false},
		{"two parts", "1:2", MixRatio{}, true},
		{"four parts", "1:2:4:8", MixRatio{}, true},
		{"non numeric", "a:b:c", MixRatio{}, true},
		{"zero part", "0:2:4", MixRatio{}, true},
		{"negative part", "1:-2:4", MixRatio{}, true},
		{"empty", "", MixRatio{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMixRatio(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseMixRatio(%q) expected error, got %+v", tt.input, got)
				}
				if !errors.Is(err, ErrMixRatio) {
					t.Errorf("error should wrap ErrMixRatio, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMixRatio(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseMixRatio(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCalcConcreteRowSlabScenario(t *testing.T) {
	// 4 x 3 x 0.15 slab at 1:2:4: volume 1.8 m³, cement volume 1/7 of
	// that, bags at 0.035 m³ per bag.
	row := ConcreteRow{
		ID: "r1", Name: "Ground slab", Element: ElementSlab,
		Length: 4, Width: 3, Height: 0.15, Mix: "1:2:4", Count: 1,
	}
	got, err := CalcConcreteRow(row, testCatalog(), "Nairobi", noWastageSettings())
	if err != nil {
		t.Fatalf("CalcConcreteRow() error = %v", err)
	}

	if math.Abs(got.VolumeM3-1.8) > 0.001 {
		t.Errorf("VolumeM3 = %v, want 1.8", got.VolumeM3)
	}
	wantBags := 1.8 / 7 / 0.035
	if math.Abs(got.NetCementBags-wantBags) > 0.01 {
		t.Errorf("NetCementBags = %v, want %v", got.NetCementBags, wantBags)
	}
	if math.Abs(got.NetSandM3-2.0/7*1.8) > 0.001 {
		t.Errorf("NetSandM3 = %v, want %v", got.NetSandM3, 2.0/7*1.8)
	}
	if math.Abs(got.NetStoneM3-4.0/7*1.8) > 0.001 {
		t.Errorf("NetStoneM3 = %v, want %v", got.NetStoneM3, 4.0/7*1.8)
	}
	// Gross cement rounds up to whole bags.
	if got.GrossCementBags != math.Ceil(wantBags) {
		t.Errorf("GrossCementBags = %v, want %v", got.GrossCementBags, math.Ceil(wantBags))
	}
	// Slab formwork is the soffit.
	if math.Abs(got.FormworkM2-12) > 0.001 {
		t.Errorf("FormworkM2 = %v, want 12", got.FormworkM2)
	}
}

func TestCalcConcreteRowFractionsSumToVolume(t *testing.T) {
	rows := []ConcreteRow{
		{ID: "a", Element: ElementSlab, Length: 4, Width: 3, Height: 0.15, Mix: "1:2:4"},
		{ID: "b", Element: ElementBeam, Length: 6, Width: 0.23, Height: 0.45, Mix: "1:1.5:3"},
		{ID: "c", Element: ElementColumn, Length: 0.3, Width: 0.3, Height: 3, Mix: "1:3:6", Count: 4},
	}
	for _, row := range rows {
		got, err := CalcConcreteRow(row, testCatalog(), "Nairobi", noWastageSettings())
		if err != nil {
			t.Fatalf("row %s: %v", row.ID, err)
		}
		sum := got.NetCementBags*CementBagVolumeM3 + got.NetSandM3 + got.NetStoneM3
		if math.Abs(sum-got.TotalVolumeM3) > 0.001 {
			t.Errorf("row %s: material volumes sum to %v, want %v", row.ID, sum, got.TotalVolumeM3)
		}
	}
}

func TestCalcConcreteRowZeroDimensions(t *testing.T) {
	row := ConcreteRow{ID: "r1", Element: ElementSlab, Length: 0, Width: 3, Height: 0.15, Mix: "1:2:4"}
	got, err := CalcConcreteRow(row, testCatalog(), "Nairobi", DefaultConcreteSettings())
	if err != nil {
		t.Fatalf("zero dimension should not error, got %v", err)
	}
	if got.VolumeM3 != 0 || got.NetCementBags != 0 || got.TotalCost != 0 {
		t.Errorf("zero dimension row should be all-zero, got %+v", got)
	}
}

func TestCalcConcreteRowNegativeDimension(t *testing.T) {
	row := ConcreteRow{ID: "r1", Element: ElementSlab, Length: -4, Width: 3, Height: 0.15, Mix: "1:2:4"}
	_, err := CalcConcreteRow(row, testCatalog(), "Nairobi", DefaultConcreteSettings())
	if !errors.Is(err, ErrNegativeDimension) {
		t.Errorf("expected ErrNegativeDimension, got %v", err)
	}
}

func TestCalcConcreteRowFoundationBeds(t *testing.T) {
	row := ConcreteRow{
		ID: "f1", Element: ElementFoundation,
		Length: 30, Width: 0.6, Height: 0.2, Mix: "1:3:6", Count: 1,
		HasConcreteBed: true, BedDepth: 0.05,
		HasHardcoreBed: true, HardcoreDepth: 0.3,
	}
	got, err := CalcConcreteRow(row, testCatalog(), "Nairobi", noWastageSettings())
	if err != nil {
		t.Fatalf("CalcConcreteRow() error = %v", err)
	}

	wantBedArea := 30 * 0.6
	if math.Abs(got.BedAreaM2-wantBedArea) > 0.001 {
		t.Errorf("BedAreaM2 = %v, want %v", got.BedAreaM2, wantBedArea)
	}
	if math.Abs(got.BedVolumeM3-wantBedArea*0.05) > 0.001 {
		t.Errorf("BedVolumeM3 = %v, want %v", got.BedVolumeM3, wantBedArea*0.05)
	}
	if math.Abs(got.HardcoreVolumeM3-wantBedArea*0.3) > 0.001 {
		t.Errorf("HardcoreVolumeM3 = %v, want %v", got.HardcoreVolumeM3, wantBedArea*0.3)
	}
	// Bed concrete joins the mix volume.
	wantTotal := 30*0.6*0.2 + wantBedArea*0.05
	if math.Abs(got.TotalVolumeM3-wantTotal) > 0.001 {
		t.Errorf("TotalVolumeM3 = %v, want %v", got.TotalVolumeM3, wantTotal)
	}
	// Strip foundation formwork: two vertical sides.
	if math.Abs(got.FormworkM2-2*30*0.2) > 0.001 {
		t.Errorf("FormworkM2 = %v, want %v", got.FormworkM2, 2*30*0.2)
	}
}

func TestCalcConcreteRowWater(t *testing.T) {
	settings := noWastageSettings()
	row := ConcreteRow{ID: "r1", Element: ElementSlab, Length: 4, Width: 3, Height: 0.15, Mix: "1:2:4"}
	got, err := CalcConcreteRow(row, testCatalog(), "Nairobi", settings)
	if err != nil {
		t.Fatalf("CalcConcreteRow() error = %v", err)
	}

	cementMass := 1.8 / 7 * 1440
	sandMass := 2.0 / 7 * 1.8 * 1600
	stoneMass := 4.0 / 7 * 1.8 * 1500
	adjustment := (sandMass+stoneMass)*0.02 - (sandMass+stoneMass)*0.01
	wantMixing := cementMass*0.5 - adjustment
	if math.Abs(got.Water.MixingL-wantMixing) > 0.1 {
		t.Errorf("MixingL = %v, want %v", got.Water.MixingL, wantMixing)
	}
	wantCuring := 12.0 * 6 * 7
	if math.Abs(got.Water.CuringL-wantCuring) > 0.001 {
		t.Errorf("CuringL = %v, want %v", got.Water.CuringL, wantCuring)
	}
	wantOther := 1.8 * 20
	if math.Abs(got.Water.OtherL-wantOther) > 0.001 {
		t.Errorf("OtherL = %v, want %v", got.Water.OtherL, wantOther)
	}
	wantTotal := wantMixing + wantCuring + wantOther
	if math.Abs(got.Water.TotalL-wantTotal) > 0.1 {
		t.Errorf("TotalL = %v, want %v", got.Water.TotalL, wantTotal)
	}
}

func TestCalcConcreteRowClientProvidesWater(t *testing.T) {
	settings := noWastageSettings()
	settings.ClientProvidesWater = true
	row := ConcreteRow{ID: "r1", Element: ElementSlab, Length: 4, Width: 3, Height: 0.15, Mix: "1:2:4"}
	got, err := CalcConcreteRow(row, testCatalog(), "Nairobi", settings)
	if err != nil {
		t.Fatalf("CalcConcreteRow() error = %v", err)
	}
	if got.WaterCost != 0 {
		t.Errorf("WaterCost = %v, want 0 when client provides water", got.WaterCost)
	}
}

func TestCalcConcreteRowUnresolvedMaterialFlagged(t *testing.T) {
	catalog := PriceCatalog{
		Materials: []MaterialPrice{{ID: "m1", Name: "Cement", Price: 800}},
	}
	row := ConcreteRow{ID: "r1", Element: ElementSlab, Length: 4, Width: 3, Height: 0.15, Mix: "1:2:4"}
	got, err := CalcConcreteRow(row, catalog, "Nairobi", noWastageSettings())
	if err != nil {
		t.Fatalf("CalcConcreteRow() error = %v", err)
	}
	if got.SandCost != 0 {
		t.Errorf("unresolved sand should cost 0, got %v", got.SandCost)
	}
	found := false
	for _, name := range got.UnresolvedMaterials {
		if name == "sand" {
			found = true
		}
	}
	if !found {
		t.Errorf("sand should be flagged unresolved, got %v", got.UnresolvedMaterials)
	}
}

func TestCalcConcreteBadRowDoesNotAbortOthers(t *testing.T) {
	rows := []ConcreteRow{
		{ID: "good", Element: ElementSlab, Length: 4, Width: 3, Height: 0.15, Mix: "1:2:4"},
		{ID: "bad", Element: ElementSlab, Length: 4, Width: 3, Height: 0.15, Mix: "1-2-4"},
	}
	summary := CalcConcrete(rows, testCatalog(), "Nairobi", noWastageSettings())

	if len(summary.Results) != 1 {
		t.Fatalf("expected 1 surviving row, got %d", len(summary.Results))
	}
	if len(summary.Errors) != 1 {
		t.Fatalf("expected 1 row error, got %d", len(summary.Errors))
	}
	if summary.Errors[0].RowID != "bad" {
		t.Errorf("wrong row failed: %s", summary.Errors[0].RowID)
	}
	if !errors.Is(summary.Errors[0].Err, ErrMixRatio) {
		t.Errorf("error should wrap ErrMixRatio, got %v", summary.Errors[0].Err)
	}
	if math.Abs(summary.TotalVolumeM3-1.8) > 0.001 {
		t.Errorf("TotalVolumeM3 = %v, want 1.8", summary.TotalVolumeM3)
	}
}

func TestCalcConcreteIdempotent(t *testing.T) {
	rows := []ConcreteRow{
		{ID: "a", Element: ElementSlab, Length: 4, Width: 3, Height: 0.15, Mix: "1:2:4"},
		{ID: "b", Element: ElementColumn, Length: 0.3, Width: 0.3, Height: 3, Mix: "1:2:4", Count: 6},
	}
	first := CalcConcrete(rows, testCatalog(), "Nairobi", DefaultConcreteSettings())
	second := CalcConcrete(rows, testCatalog(), "Nairobi", DefaultConcreteSettings())

	if first.TotalVolumeM3 != second.TotalVolumeM3 ||
		first.CementBags != second.CementBags ||
		first.TotalCost != second.TotalCost {
		t.Errorf("repeated calculation differs: %+v vs %+v", first, second)
	}
}
