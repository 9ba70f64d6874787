package services

import "fmt"

// Painting layer identifiers.
const (
	LayerSkimming  = "skimming"
	LayerUndercoat = "undercoat"
	LayerFinishing = "finishing"
)

// Finishing paint categories and their allowed subtypes.
const (
	CategoryEmulsion = "emulsion"
	CategoryEnamel   = "enamel"
)

var paintSubtypes = map[string][]string{
	CategoryEmulsion: {"vinyl-matt", "vinyl-silk", "antibacterial"},
	CategoryEnamel:   {"eggshell", "gloss"},
}

// CoverageRates are the m² covered per purchase unit per coat for each
// layer. The common default is 11 for all three.
type CoverageRates struct {
	Skimming  float64
	Undercoat float64
	Finishing float64
}

// DefaultCoverageRates returns the standard 11 m² per unit per coat.
func DefaultCoverageRates() CoverageRates {
	return CoverageRates{Skimming: 11, Undercoat: 11, Finishing: 11}
}

// SkimmingConfig is the surface-preparation filler layer, in 25 kg bags.
type SkimmingConfig struct {
	Enabled bool
	Coats   int
}

// UndercoatConfig is the sealing layer; always exactly one coat when
// enabled.
type UndercoatConfig struct {
	Enabled bool
}

// FinishingConfig is the visible paint layer.
type FinishingConfig struct {
	Category string
	Subtype  string
	Coats    int
}

// PaintingSpec describes one painted surface and its layer stack.
type PaintingSpec struct {
	ID          string
	Location    string
	SurfaceArea float64
	Skimming    SkimmingConfig
	Undercoat   UndercoatConfig
	Finishing   FinishingConfig
}

// ValidatePaintingSpec returns advisory findings for a spec. Error-level
// findings mark specs that need attention; the calculation still proceeds
// with whatever values are given.
func ValidatePaintingSpec(spec PaintingSpec) []Finding {
	var findings []Finding

	if spec.SurfaceArea <= 0 {
		findings = append(findings, Finding{
			Field:    "surfaceArea",
			Message:  "Surface area must be greater than 0",
			Severity: SeverityError,
		})
	}
	if spec.SurfaceArea > 5000 {
		findings = append(findings, Finding{
			Field:    "surfaceArea",
			Message:  "Surface area seems unusually large (>5000 m²)",
			Severity: SeverityWarning,
		})
	}

	if spec.Skimming.Enabled && (spec.Skimming.Coats < 1 || spec.Skimming.Coats > 5) {
		findings = append(findings, Finding{
			Field:    "skimming.coats",
			Message:  "Skimming coats should be between 1 and 5",
			Severity: SeverityWarning,
		})
	}
	if spec.Finishing.Coats < 1 || spec.Finishing.Coats > 4 {
		findings = append(findings, Finding{
			Field:    "finishing.coats",
			Message:  "Finishing paint coats should be between 1 and 4",
			Severity: SeverityWarning,
		})
	}

	// Enamel needs a preparation layer underneath.
	if spec.Finishing.Category == CategoryEnamel && !spec.Skimming.Enabled && !spec.Undercoat.Enabled {
		findings = append(findings, Finding{
			Field:    "finishing",
			Message:  "Enamel paint requires preparation layer (skimming or undercoat)",
			Severity: SeverityError,
		})
	}

	valid := false
	for _, sub := range paintSubtypes[spec.Finishing.Category] {
		if sub == spec.Finishing.Subtype {
			valid = true
			break
		}
	}
	if !valid {
		findings = append(findings, Finding{
			Field:    "finishing.subtype",
			Message:  fmt.Sprintf("Invalid subtype %q for category %q", spec.Finishing.Subtype, spec.Finishing.Category),
			Severity: SeverityError,
		})
	}

	return findings
}

// LayerResult is the computed quantity and cost for one painting layer.
// RoundedQty is the net purchasable quantity ("what's needed"); GrossQty
// adds wastage and re-rounds ("what to purchase"); cost follows GrossQty.
type LayerResult struct {
	Layer      string
	Material   string
	Coats      int
	Coverage   float64
	RawQty     float64
	RoundedQty float64
	GrossQty   float64
	Unit       string // "bags" or "litres"
	UnitRate   float64
	Cost       float64
}

// calcLayer computes one layer. Rounding is whole bags for skimming,
// 0.5 L steps for the liquid layers.
func calcLayer(layer string, area float64, coats int, coverage, unitRate, wastage float64) LayerResult {
	if coverage <= 0 {
		coverage = 11
	}
	result := LayerResult{
		Layer:    layer,
		Coats:    coats,
		Coverage: coverage,
		UnitRate: unitRate,
		Unit:     "litres",
	}
	if layer == LayerSkimming {
		result.Unit = "bags"
	}

	result.RawQty = sanitizeQty(area) / coverage * float64(coats)
	if result.Unit == "bags" {
		result.RoundedQty = RoundUpBags(result.RawQty)
		result.GrossQty = RoundUpBags(ApplyWastage(result.RoundedQty, wastage))
	} else {
		result.RoundedQty = RoundUpHalfLitre(result.RawQty)
		result.GrossQty = RoundUpHalfLitre(ApplyWastage(result.RoundedQty, wastage))
	}
	result.Cost = result.GrossQty * unitRate
	return result
}

// PaintingResult is the full computation for one spec: the enabled layers
// plus validation findings.
type PaintingResult struct {
	ID        string
	Location  string
	Skimming  *LayerResult
	Undercoat *LayerResult
	Finishing *LayerResult
	Findings  []Finding
}

// TotalCost sums the wastage-adjusted costs of the enabled layers.
func (r PaintingResult) TotalCost() float64 {
	var total float64
	for _, layer := range []*LayerResult{r.Skimming, r.Undercoat, r.Finishing} {
		if layer != nil {
			total += layer.Cost
		}
	}
	return total
}

// CalcPainting computes all layers for a painting spec. Disabled layers are
// skipped entirely; the undercoat is fixed at one coat. Validation findings
// are advisory and never stop the calculation.
func CalcPainting(spec PaintingSpec, rates CoverageRates, prices PaintLayerPrices, wastage float64) PaintingResult {
	result := PaintingResult{
		ID:       spec.ID,
		Location: spec.Location,
		Findings: ValidatePaintingSpec(spec),
	}
	if spec.SurfaceArea <= 0 {
		return result
	}

	if spec.Skimming.Enabled {
		layer := calcLayer(LayerSkimming, spec.SurfaceArea, spec.Skimming.Coats, rates.Skimming, prices.Skimming, wastage)
		layer.Material = "Skimming Filler"
		result.Skimming = &layer
	}
	if spec.Undercoat.Enabled {
		layer := calcLayer(LayerUndercoat, spec.SurfaceArea, 1, rates.Undercoat, prices.Undercoat, wastage)
		layer.Material = "Undercoat / Covermat"
		result.Undercoat = &layer
	}
	finishing := calcLayer(LayerFinishing, spec.SurfaceArea, spec.Finishing.Coats, rates.Finishing, prices.Finishing, wastage)
	finishing.Material = fmt.Sprintf("%s - %s", spec.Finishing.Category, spec.Finishing.Subtype)
	result.Finishing = &finishing

	return result
}

// PaintingTotals aggregates layer quantities and costs across specs. The
// net figures are what the work needs; the gross figures add wastage and
// are what gets purchased. Costs follow the gross quantities.
type PaintingTotals struct {
	TotalAreaM2          float64
	SkimmingBags         float64
	GrossSkimmingBags    float64
	SkimmingCost         float64
	UndercoatLitres      float64
	GrossUndercoatLitres float64
	UndercoatCost        float64
	FinishingLitres      float64
	GrossFinishingLitres float64
	FinishingCost        float64
	TotalLitres          float64
	TotalBags            float64
	TotalCost            float64
	Findings             []Finding
}

// CalcPaintingTotals computes every spec and folds the results.
func CalcPaintingTotals(specs []PaintingSpec, rates CoverageRates, prices PaintLayerPrices, wastage float64) PaintingTotals {
	var totals PaintingTotals
	for _, spec := range specs {
		result := CalcPainting(spec, rates, prices, wastage)
		totals.TotalAreaM2 += sanitizeQty(spec.SurfaceArea)
		totals.Findings = append(totals.Findings, result.Findings...)

		if result.Skimming != nil {
			totals.SkimmingBags += result.Skimming.RoundedQty
			totals.GrossSkimmingBags += result.Skimming.GrossQty
			totals.SkimmingCost += result.Skimming.Cost
		}
		if result.Undercoat != nil {
			totals.UndercoatLitres += result.Undercoat.RoundedQty
			totals.GrossUndercoatLitres += result.Undercoat.GrossQty
			totals.UndercoatCost += result.Undercoat.Cost
		}
		if result.Finishing != nil {
			totals.FinishingLitres += result.Finishing.RoundedQty
			totals.GrossFinishingLitres += result.Finishing.GrossQty
			totals.FinishingCost += result.Finishing.Cost
		}
	}
	totals.TotalLitres = totals.UndercoatLitres + totals.FinishingLitres
	totals.TotalBags = totals.SkimmingBags
	totals.TotalCost = totals.SkimmingCost + totals.UndercoatCost + totals.FinishingCost
	return totals
}
