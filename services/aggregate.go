package services

import (
	"math"
	"strings"
)

// Contract types change what the subtotal includes: a labor-only contract
// excludes materials and transport, which the client sources directly.
const (
	ContractFull      = "full_contract"
	ContractLaborOnly = "labor_only"
)

// Default transport rate used when the region has no configured rate.
const (
	defaultTransportBase  = 500.0
	defaultTransportPerKm = 50.0
)

// QuoteTotals is the BOQ summary bucketed by construction element. The
// element letters run A through H and then J.
type QuoteTotals struct {
	ElementATotal         float64 `json:"element_a_total"`
	ElementBTotal         float64 `json:"element_b_total"`
	ElementCTotal         float64 `json:"element_c_total"`
	ElementDTotal         float64 `json:"element_d_total"`
	ElementETotal         float64 `json:"element_e_total"`
	ElementFTotal         float64 `json:"element_f_total"`
	ElementGTotal         float64 `json:"element_g_total"`
	ElementHTotal         float64 `json:"element_h_total"`
	ElementJTotal         float64 `json:"element_j_total"`
	PCAndProvisionalTotal float64 `json:"pc_and_provisional_total"`
	GeneralPrelimTotal    float64 `json:"general_prelim_total"`
	ParticularPrelimTotal float64 `json:"particular_prelim_total"`
	ProfessionalFees      float64 `json:"professional_fees"`
	TotalAmount           float64 `json:"total_amount"`
}

// Recalculate sets TotalAmount to the sum of every category and fee. It is
// invoked wholesale after any upstream change; there is no incremental
// path.
func (t *QuoteTotals) Recalculate() {
	t.TotalAmount = t.ElementATotal + t.ElementBTotal + t.ElementCTotal +
		t.ElementDTotal + t.ElementETotal + t.ElementFTotal +
		t.ElementGTotal + t.ElementHTotal + t.ElementJTotal +
		t.PCAndProvisionalTotal + t.GeneralPrelimTotal +
		t.ParticularPrelimTotal + t.ProfessionalFees
}

// BuildQuoteTotals buckets the computed works into the lettered BOQ
// elements: A substructure, B superstructure, C walling, D windows,
// E doors, F wall finishes, G roofing, H floor finishes, J ceiling
// finishes. Elements without a calculator stay zero. Preliminaries
// sections split on "particular" in the section title; permits land in
// PC and provisional sums; the percentage markups make up the fees.
// TotalAmount is the sum of the view's own buckets, so it tracks the
// measured works rather than the contract summary total.
func BuildQuoteTotals(concrete ConcreteSummary, masonry MasonrySummary,
	painting PaintingTotals, roofing RoofSummary, finishes FinishesSummary,
	preliminaries []PrelimSection, summary QuoteSummary) QuoteTotals {

	var t QuoteTotals

	for _, r := range concrete.Results {
		if r.Element == ElementFoundation {
			t.ElementATotal += r.TotalCost
		} else {
			t.ElementBTotal += r.TotalCost
		}
	}
	for _, w := range masonry.Results {
		t.ElementCTotal += w.BlocksCost + w.MortarCost + w.WaterCost
		t.ElementDTotal += w.WindowsCost
		t.ElementETotal += w.DoorsCost
		t.ElementFTotal += w.PlasterCost
	}
	t.ElementFTotal += painting.TotalCost
	t.ElementGTotal += roofing.TotalCost
	t.ElementHTotal += finishes.TotalCostWithWastage

	for _, section := range preliminaries {
		var sectionTotal float64
		for _, item := range section.Items {
			if item.IsHeader {
				continue
			}
			sectionTotal += sanitizeQty(item.Amount)
		}
		if strings.Contains(strings.ToLower(section.Title), "particular") {
			t.ParticularPrelimTotal += sectionTotal
		} else {
			t.GeneralPrelimTotal += sectionTotal
		}
	}

	t.PCAndProvisionalTotal = summary.PermitCost
	t.ProfessionalFees = summary.OverheadAmount + summary.ContingencyAmount + summary.ProfitAmount
	t.Recalculate()
	return t
}

// Subcontractor payment plans.
const (
	PaymentPlanDaily = "daily"
	PaymentPlanFull  = "full"
)

// Subcontractor is a subcontracted work package. Daily plans price as
// rate x days; full plans carry a fixed total.
type Subcontractor struct {
	Name        string
	PaymentPlan string
	Price       float64
	Days        float64
	Total       float64
}

// Cost returns the subcontractor's charge under its payment plan.
func (s Subcontractor) Cost() float64 {
	switch strings.ToLower(s.PaymentPlan) {
	case PaymentPlanDaily:
		return sanitizeQty(s.Price) * sanitizeQty(s.Days)
	case PaymentPlanFull:
		return sanitizeQty(s.Total)
	}
	return 0
}

// ServiceItem is a priced ancillary service on the quote.
type ServiceItem struct {
	Name  string
	Price float64
}

// EquipmentItem is hired equipment with a precomputed total.
type EquipmentItem struct {
	Name      string
	TotalCost float64
}

// PrelimItem is one preliminaries line; header rows carry no amount.
type PrelimItem struct {
	Code        string
	Description string
	Amount      float64
	IsHeader    bool
}

// PrelimSection groups preliminaries items under a title.
type PrelimSection struct {
	Title string
	Items []PrelimItem
}

// QuotePercentages are the markup knobs applied during aggregation, each
// expressed as a percentage.
type QuotePercentages struct {
	Labor       float64
	Overhead    float64
	Profit      float64
	Contingency float64
}

// QuoteInput is everything the aggregation folds: the calculators'
// materials cost plus the non-material cost categories.
type QuoteInput struct {
	ContractType   string
	MaterialsCost  float64
	Equipment      []EquipmentItem
	Services       []ServiceItem
	Subcontractors []Subcontractor
	Preliminaries  []PrelimSection
	DistanceKm     float64
	TransportBase  float64
	TransportPerKm float64
	PermitCost     float64
	Percentages    QuotePercentages
}

// QuoteSummary is the aggregated cost breakdown.
type QuoteSummary struct {
	MaterialsCost      float64
	LaborCost          float64
	EquipmentCost      float64
	ServicesCost       float64
	TransportCost      float64
	SubcontractorsCost float64
	PreliminariesCost  float64
	PermitCost         float64

	Subtotal          float64
	OverheadAmount    float64
	ContingencyAmount float64
	ProfitAmount      float64
	TotalAmount       float64
}

// Recompute folds all cost categories into a quote summary. It never
// fails: empty categories contribute 0 and the total is always computable.
func Recompute(input QuoteInput) QuoteSummary {
	var summary QuoteSummary

	summary.MaterialsCost = sanitizeQty(input.MaterialsCost)
	summary.LaborCost = math.Round(summary.MaterialsCost * input.Percentages.Labor / 100)

	for _, eq := range input.Equipment {
		summary.EquipmentCost += sanitizeQty(eq.TotalCost)
	}
	for _, svc := range input.Services {
		summary.ServicesCost += sanitizeQty(svc.Price)
	}

	var subProfit float64
	for _, sub := range input.Subcontractors {
		cost := sub.Cost()
		summary.SubcontractorsCost += cost
		subProfit += cost * input.Percentages.Profit / 100
	}

	for _, section := range input.Preliminaries {
		for _, item := range section.Items {
			if item.IsHeader {
				continue
			}
			summary.PreliminariesCost += sanitizeQty(item.Amount)
		}
	}

	base := input.TransportBase
	perKm := input.TransportPerKm
	if base <= 0 && perKm <= 0 {
		base = defaultTransportBase
		perKm = defaultTransportPerKm
	}
	summary.TransportCost = sanitizeQty(input.DistanceKm)*perKm + base

	summary.PermitCost = sanitizeQty(input.PermitCost)

	if input.ContractType == ContractLaborOnly {
		summary.Subtotal = summary.LaborCost + summary.EquipmentCost +
			summary.ServicesCost + summary.PreliminariesCost + summary.SubcontractorsCost
	} else {
		summary.Subtotal = summary.MaterialsCost + summary.TransportCost +
			summary.LaborCost + summary.EquipmentCost + summary.ServicesCost +
			summary.SubcontractorsCost + summary.PreliminariesCost
	}

	summary.OverheadAmount = summary.Subtotal * input.Percentages.Overhead / 100
	summary.ContingencyAmount = summary.Subtotal * input.Percentages.Contingency / 100

	materialProfit := summary.MaterialsCost * input.Percentages.Profit / 100
	summary.ProfitAmount = math.Round(materialProfit + subProfit)

	summary.TotalAmount = math.Round(summary.Subtotal + summary.OverheadAmount +
		summary.ContingencyAmount + summary.PermitCost + summary.ProfitAmount)

	return summary
}
