package services

import (
	"math"
	"testing"
)

func TestQuoteTotalsRecalculate(t *testing.T) {
	totals := QuoteTotals{
		ElementATotal:         100000,
		ElementBTotal:         250000,
		ElementCTotal:         80000,
		ElementJTotal:         40000,
		PCAndProvisionalTotal: 15000,
		GeneralPrelimTotal:    20000,
		ParticularPrelimTotal: 10000,
		ProfessionalFees:      35000,
	}
	totals.Recalculate()

	want := 100000.0 + 250000 + 80000 + 40000 + 15000 + 20000 + 10000 + 35000
	if math.Abs(totals.TotalAmount-want) > 0.001 {
		t.Errorf("TotalAmount = %v, want %v", totals.TotalAmount, want)
	}

	// Changing one category and recalculating replaces the total wholesale.
	totals.ElementBTotal = 0
	totals.Recalculate()
	if math.Abs(totals.TotalAmount-(want-250000)) > 0.001 {
		t.Errorf("TotalAmount after change = %v, want %v", totals.TotalAmount, want-250000)
	}
}

func TestQuoteTotalsEmptyIsZero(t *testing.T) {
	var totals QuoteTotals
	totals.Recalculate()
	if totals.TotalAmount != 0 {
		t.Errorf("empty totals should sum to 0, got %v", totals.TotalAmount)
	}
}

func TestBuildQuoteTotals(t *testing.T) {
	concrete := ConcreteSummary{Results: []ConcreteResult{
		{Element: ElementFoundation, TotalCost: 120000},
		{Element: ElementSlab, TotalCost: 200000},
		{Element: ElementColumn, TotalCost: 50000},
	}}
	masonry := MasonrySummary{Results: []WallResult{{
		BlocksCost:  60000,
		MortarCost:  8000,
		WaterCost:   500,
		PlasterCost: 12000,
		DoorsCost:   18000,
		WindowsCost: 9000,
	}}}
	painting := PaintingTotals{TotalCost: 15000}
	roofing := RoofSummary{Results: []RoofResult{{TotalCost: 95000}}, TotalCost: 95000}
	finishes := FinishesSummary{TotalCostWithWastage: 44000}
	prelims := []PrelimSection{
		{Title: "General Preliminaries", Items: []PrelimItem{
			{Code: "GP/1", Amount: 5000},
			{Code: "GP", IsHeader: true, Amount: 999},
		}},
		{Title: "Particular Preliminaries", Items: []PrelimItem{{Code: "PP/1", Amount: 3000}}},
	}
	summary := QuoteSummary{PermitCost: 7000, OverheadAmount: 10000, ContingencyAmount: 5000, ProfitAmount: 20000}

	got := BuildQuoteTotals(concrete, masonry, painting, roofing, finishes, prelims, summary)

	checks := []struct {
		label string
		got   float64
		want  float64
	}{
		{"element A", got.ElementATotal, 120000},
		{"element B", got.ElementBTotal, 250000},
		{"element C", got.ElementCTotal, 68500},
		{"element D", got.ElementDTotal, 9000},
		{"element E", got.ElementETotal, 18000},
		{"element F", got.ElementFTotal, 27000},
		{"element G", got.ElementGTotal, 95000},
		{"element H", got.ElementHTotal, 44000},
		{"PC and provisional", got.PCAndProvisionalTotal, 7000},
		{"general prelims", got.GeneralPrelimTotal, 5000},
		{"particular prelims", got.ParticularPrelimTotal, 3000},
		{"professional fees", got.ProfessionalFees, 35000},
	}
	var want float64
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 0.001 {
			t.Errorf("%s = %v, want %v", c.label, c.got, c.want)
		}
		want += c.want
	}
	if math.Abs(got.TotalAmount-want) > 0.001 {
		t.Errorf("TotalAmount = %v, want %v", got.TotalAmount, want)
	}
	if got.ElementJTotal != 0 {
		t.Errorf("ceiling bucket should be empty, got %v", got.ElementJTotal)
	}
}

func TestBuildQuoteTotalsEmpty(t *testing.T) {
	got := BuildQuoteTotals(ConcreteSummary{}, MasonrySummary{}, PaintingTotals{}, RoofSummary{}, FinishesSummary{}, nil, QuoteSummary{})
	if got.TotalAmount != 0 {
		t.Errorf("empty works should total 0, got %v", got.TotalAmount)
	}
}

func TestSubcontractorCost(t *testing.T) {
	tests := []struct {
		name string
		sub  Subcontractor
		want float64
	}{
		{"daily plan", Subcontractor{PaymentPlan: "daily", Price: 2000, Days: 5}, 10000},
		{"daily plan case insensitive", Subcontractor{PaymentPlan: "Daily", Price: 1500, Days: 2}, 3000},
		{"full plan uses fixed total", Subcontractor{PaymentPlan: "full", Price: 2000, Days: 5, Total: 80000}, 80000},
		{"unknown plan costs nothing", Subcontractor{PaymentPlan: "hourly", Price: 500}, 0},
		{"empty plan", Subcontractor{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sub.Cost(); math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Cost() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecomputeFullContract(t *testing.T) {
	input := QuoteInput{
		ContractType:  ContractFull,
		MaterialsCost: 1000000,
		Equipment:     []EquipmentItem{{Name: "Mixer", TotalCost: 30000}},
		Services:      []ServiceItem{{Name: "Survey", Price: 25000}},
		Subcontractors: []Subcontractor{
			{Name: "Electrical", PaymentPlan: "full", Total: 150000},
			{Name: "Plumbing", PaymentPlan: "daily", Price: 3000, Days: 10},
		},
		Preliminaries: []PrelimSection{
			{Title: "General", Items: []PrelimItem{
				{Code: "GP/1", Description: "Site office", Amount: 40000},
				{Code: "GP", Description: "Heading", IsHeader: true, Amount: 999},
			}},
		},
		DistanceKm:  20,
		PermitCost:  15000,
		Percentages: QuotePercentages{Labor: 30, Overhead: 10, Profit: 15, Contingency: 5},
	}
	got := Recompute(input)

	if got.LaborCost != 300000 {
		t.Errorf("LaborCost = %v, want 300000", got.LaborCost)
	}
	if got.TransportCost != 20*50+500 {
		t.Errorf("TransportCost = %v, want 1500", got.TransportCost)
	}
	if got.SubcontractorsCost != 180000 {
		t.Errorf("SubcontractorsCost = %v, want 180000", got.SubcontractorsCost)
	}
	if got.PreliminariesCost != 40000 {
		t.Errorf("PreliminariesCost = %v, want 40000 (headers skipped)", got.PreliminariesCost)
	}

	wantSubtotal := 1000000.0 + 1500 + 300000 + 30000 + 25000 + 180000 + 40000
	if math.Abs(got.Subtotal-wantSubtotal) > 0.001 {
		t.Errorf("Subtotal = %v, want %v", got.Subtotal, wantSubtotal)
	}
	if math.Abs(got.OverheadAmount-wantSubtotal*0.10) > 0.001 {
		t.Errorf("OverheadAmount = %v, want %v", got.OverheadAmount, wantSubtotal*0.10)
	}
	if math.Abs(got.ContingencyAmount-wantSubtotal*0.05) > 0.001 {
		t.Errorf("ContingencyAmount = %v, want %v", got.ContingencyAmount, wantSubtotal*0.05)
	}

	wantProfit := math.Round(1000000*0.15 + 180000*0.15)
	if math.Abs(got.ProfitAmount-wantProfit) > 0.001 {
		t.Errorf("ProfitAmount = %v, want %v", got.ProfitAmount, wantProfit)
	}

	wantTotal := math.Round(wantSubtotal + wantSubtotal*0.10 + wantSubtotal*0.05 + 15000 + wantProfit)
	if math.Abs(got.TotalAmount-wantTotal) > 0.001 {
		t.Errorf("TotalAmount = %v, want %v", got.TotalAmount, wantTotal)
	}
}

func TestRecomputeLaborOnlyExcludesMaterialsAndTransport(t *testing.T) {
	input := QuoteInput{
		ContractType:  ContractLaborOnly,
		MaterialsCost: 1000000,
		DistanceKm:    20,
		Percentages:   QuotePercentages{Labor: 30},
	}
	got := Recompute(input)

	// Labor is still derived from materials, but materials and transport
	// stay out of the subtotal.
	if got.LaborCost != 300000 {
		t.Errorf("LaborCost = %v, want 300000", got.LaborCost)
	}
	if math.Abs(got.Subtotal-300000) > 0.001 {
		t.Errorf("Subtotal = %v, want 300000", got.Subtotal)
	}
}

func TestRecomputeEmptyInput(t *testing.T) {
	got := Recompute(QuoteInput{})
	// Transport defaults still apply to the base charge; everything else
	// is zero.
	if got.TransportCost != defaultTransportBase {
		t.Errorf("TransportCost = %v, want %v", got.TransportCost, defaultTransportBase)
	}
	if got.TotalAmount != math.Round(got.Subtotal) {
		t.Errorf("TotalAmount = %v, want %v", got.TotalAmount, got.Subtotal)
	}
}

func TestRecomputeIdempotent(t *testing.T) {
	input := QuoteInput{
		ContractType:  ContractFull,
		MaterialsCost: 777777,
		DistanceKm:    13,
		Percentages:   QuotePercentages{Labor: 25, Overhead: 8, Profit: 12, Contingency: 3},
	}
	first := Recompute(input)
	second := Recompute(input)
	if first != second {
		t.Errorf("repeated recompute differs: %+v vs %+v", first, second)
	}
}

func TestRecomputeCustomTransportRate(t *testing.T) {
	input := QuoteInput{
		ContractType:   ContractFull,
		DistanceKm:     100,
		TransportBase:  1000,
		TransportPerKm: 80,
	}
	got := Recompute(input)
	if got.TransportCost != 100*80+1000 {
		t.Errorf("TransportCost = %v, want 9000", got.TransportCost)
	}
}
