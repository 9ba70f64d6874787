package services

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ElementType categorizes a concrete element and drives the surface-area
// and formwork formulas.
type ElementType string

const (
	ElementSlab       ElementType = "slab"
	ElementBeam       ElementType = "beam"
	ElementColumn     ElementType = "column"
	ElementFoundation ElementType = "foundation"
)

// Industry constants for converting mix-proportion volumes into purchase
// units. One 50 kg cement bag yields 0.035 m³ (35 L) of cement; densities
// are kg/m³ and feed the water calculation.
const (
	CementBagVolumeM3 = 0.035
	CementBagKg       = 50.0
	cementDensity     = 1440.0
	sandDensity       = 1600.0
	stoneDensity      = 1500.0
)

// ErrMixRatio marks a mix ratio string that does not parse as "a:b:c".
// Rows with a malformed ratio fail individually; defaulting the ratio
// would misprice materials invisibly.
var ErrMixRatio = errors.New("invalid mix ratio")

// ErrNegativeDimension marks a row with a negative length, width or height.
var ErrNegativeDimension = errors.New("negative dimension")

// MixRatio is a concrete mix proportion by volume.
type MixRatio struct {
	Cement float64
	Sand   float64
	Stone  float64
}

// ParseMixRatio parses a strict "a:b:c" volume proportion. Parts must be
// positive numbers.
func ParseMixRatio(s string) (MixRatio, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return MixRatio{}, fmt.Errorf("%w: %q", ErrMixRatio, s)
	}
	vals := make([]float64, 3)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return MixRatio{}, fmt.Errorf("%w: %q", ErrMixRatio, s)
		}
		vals[i] = v
	}
	return MixRatio{Cement: vals[0], Sand: vals[1], Stone: vals[2]}, nil
}

// ConcreteRow is one element entry as captured during quote editing.
type ConcreteRow struct {
	ID      string
	Name    string
	Element ElementType
	Length  float64
	Width   float64
	Height  float64
	Mix     string
	Count   int

	// Foundation extras.
	HasConcreteBed bool
	BedDepth       float64
	HasHardcoreBed bool
	HardcoreDepth  float64

	// Overrides the settings default when > 0.
	WaterCementRatio float64
}

// ConcreteSettings carries the site assumptions for concrete work.
type ConcreteSettings struct {
	WastageCementPct    float64
	WastageSandPct      float64
	WastageStonePct     float64
	WastageWaterPct     float64
	ClientProvidesWater bool
	WaterCementRatio    float64
	AggMoisturePct      float64
	AggAbsorptionPct    float64
	CuringRateLM2PerDay float64
	CuringDays          float64
	OtherWaterLPerM3    float64
}

// DefaultConcreteSettings returns the assumptions used when a quote has no
// stored settings: 5% material wastage, 0.5 water/cement ratio, 2% aggregate
// moisture against 1% absorption, 6 L/m² curing for 7 days and 20 L/m³
// other site water.
func DefaultConcreteSettings() ConcreteSettings {
	return ConcreteSettings{
		WastageCementPct:    5,
		WastageSandPct:      5,
		WastageStonePct:     5,
		WastageWaterPct:     5,
		WaterCementRatio:    0.5,
		AggMoisturePct:      2,
		AggAbsorptionPct:    1,
		CuringRateLM2PerDay: 6,
		CuringDays:          7,
		OtherWaterLPerM3:    20,
	}
}

// WaterBreakdown itemizes the water requirement for a row, in litres.
type WaterBreakdown struct {
	MixingL              float64
	CuringL              float64
	OtherL               float64
	AggregateAdjustmentL float64
	TotalL               float64
	GrossTotalL          float64
}

// ConcreteResult is the computed quantity and cost output for one row.
type ConcreteResult struct {
	ID      string
	Name    string
	Element ElementType

	VolumeM3      float64
	TotalVolumeM3 float64
	SurfaceAreaM2 float64
	FormworkM2    float64

	BedVolumeM3      float64
	BedAreaM2        float64
	HardcoreVolumeM3 float64
	HardcoreAreaM2   float64

	NetCementBags float64
	NetSandM3     float64
	NetStoneM3    float64

	GrossCementBags float64
	GrossSandM3     float64
	GrossStoneM3    float64

	Water WaterBreakdown

	CementCost float64
	SandCost   float64
	StoneCost  float64
	WaterCost  float64
	TotalCost  float64
	UnitRate   float64

	// UnresolvedMaterials lists catalog names that resolved to price 0 so
	// the line can be flagged for review.
	UnresolvedMaterials []string
}

// elementGeometry returns curing surface area and formwork area for the
// element type. Slabs cure on top and are shuttered underneath; beams
// expose two sides plus the soffit; columns are shuttered all round; strip
// foundations (length = perimeter) cure on top with two vertical sides.
func elementGeometry(el ElementType, l, w, h float64, count float64) (surface, formwork float64) {
	switch el {
	case ElementSlab:
		return l * w * count, l * w * count
	case ElementBeam:
		return (2*(l*h) + l*w) * count, (2*h*l + w*l) * count
	case ElementColumn:
		area := 2 * (l + w) * h * count
		return area, area
	case ElementFoundation:
		return l * w * count, 2 * l * h * count
	}
	return 0, 0
}

// CalcConcreteRow computes quantities and costs for a single element row.
// Zero dimensions yield an all-zero result; a malformed mix ratio or a
// negative dimension fails the row.
func CalcConcreteRow(row ConcreteRow, catalog PriceCatalog, region string, settings ConcreteSettings) (ConcreteResult, error) {
	result := ConcreteResult{ID: row.ID, Name: row.Name, Element: row.Element}

	if row.Length < 0 || row.Width < 0 || row.Height < 0 {
		return result, fmt.Errorf("%w: %s", ErrNegativeDimension, row.Name)
	}

	mix, err := ParseMixRatio(row.Mix)
	if err != nil {
		return result, err
	}

	count := float64(row.Count)
	if count < 1 {
		count = 1
	}

	result.VolumeM3 = row.Length * row.Width * row.Height * count
	result.SurfaceAreaM2, result.FormworkM2 = elementGeometry(row.Element, row.Length, row.Width, row.Height, count)

	if row.Element == ElementFoundation {
		if row.HasConcreteBed && row.BedDepth > 0 {
			result.BedAreaM2 = row.Length * row.Width * count
			result.BedVolumeM3 = result.BedAreaM2 * row.BedDepth
		}
		if row.HasHardcoreBed && row.HardcoreDepth > 0 {
			result.HardcoreAreaM2 = row.Length * row.Width * count
			result.HardcoreVolumeM3 = result.HardcoreAreaM2 * row.HardcoreDepth
		}
	}

	result.TotalVolumeM3 = result.VolumeM3 + result.BedVolumeM3

	totalParts := mix.Cement + mix.Sand + mix.Stone
	cementVolume := mix.Cement / totalParts * result.TotalVolumeM3
	sandVolume := mix.Sand / totalParts * result.TotalVolumeM3
	stoneVolume := mix.Stone / totalParts * result.TotalVolumeM3

	result.NetCementBags = cementVolume / CementBagVolumeM3
	result.NetSandM3 = sandVolume
	result.NetStoneM3 = stoneVolume

	cementMass := cementVolume * cementDensity
	sandMass := sandVolume * sandDensity
	stoneMass := stoneVolume * stoneDensity

	wcRatio := row.WaterCementRatio
	if wcRatio <= 0 {
		wcRatio = settings.WaterCementRatio
	}
	if wcRatio <= 0 {
		wcRatio = 0.5
	}
	result.Water = calcWater(cementMass, sandMass, stoneMass, wcRatio, result.SurfaceAreaM2, result.TotalVolumeM3, settings)

	result.GrossCementBags = RoundUpBags(ApplyWastage(result.NetCementBags, settings.WastageCementPct/100))
	result.GrossSandM3 = ApplyWastage(result.NetSandM3, settings.WastageSandPct/100)
	result.GrossStoneM3 = ApplyWastage(result.NetStoneM3, settings.WastageStonePct/100)
	result.Water.GrossTotalL = ApplyWastage(result.Water.TotalL, settings.WastageWaterPct/100)

	// Costs from resolved prices; unresolved materials price at 0 and are
	// flagged for review.
	cement := catalog.ResolvePrice("cement", region)
	sand := catalog.ResolvePrice("sand", region)
	stone := catalog.ResolvePrice("ballast", region)
	if !stone.Resolved {
		stone = catalog.ResolvePrice("stone", region)
	}
	water := catalog.ResolvePrice("water", region)

	flag := func(name string, r ResolvedPrice) {
		if !r.Resolved {
			result.UnresolvedMaterials = append(result.UnresolvedMaterials, name)
		}
	}
	flag("cement", cement)
	flag("sand", sand)
	flag("ballast", stone)

	result.CementCost = result.GrossCementBags * cement.Price
	result.SandCost = result.GrossSandM3 * sand.Price
	result.StoneCost = result.GrossStoneM3 * stone.Price
	if !settings.ClientProvidesWater {
		result.WaterCost = result.Water.GrossTotalL / 1000 * water.Price
		flag("water", water)
	}
	result.TotalCost = result.CementCost + result.SandCost + result.StoneCost + result.WaterCost
	if result.TotalVolumeM3 > 0 {
		result.UnitRate = result.TotalCost / result.TotalVolumeM3
	}

	return result, nil
}

// calcWater estimates the water requirement: hydration water from cement
// mass at the water/cement ratio, adjusted for free moisture in and
// absorption by the aggregates, plus curing and general site water.
func calcWater(cementMass, sandMass, stoneMass, wcRatio, surfaceM2, volumeM3 float64, settings ConcreteSettings) WaterBreakdown {
	hydration := cementMass * wcRatio

	moisture := (sandMass + stoneMass) * settings.AggMoisturePct / 100
	absorbed := (sandMass + stoneMass) * settings.AggAbsorptionPct / 100
	adjustment := moisture - absorbed

	mixing := math.Max(0, hydration-adjustment)
	curing := surfaceM2 * settings.CuringRateLM2PerDay * settings.CuringDays
	other := volumeM3 * settings.OtherWaterLPerM3

	return WaterBreakdown{
		MixingL:              mixing,
		CuringL:              curing,
		OtherL:               other,
		AggregateAdjustmentL: adjustment,
		TotalL:               mixing + curing + other,
	}
}

// RowError pairs a failed row with its error so one bad row never aborts
// the rest of the quote.
type RowError struct {
	RowID string
	Name  string
	Err   error
}

// ConcreteSummary aggregates all element rows.
type ConcreteSummary struct {
	Results []ConcreteResult
	Errors  []RowError

	TotalVolumeM3   float64
	CementBags      float64
	SandM3          float64
	StoneM3         float64
	HardcoreM3      float64
	FormworkM2      float64
	WaterL          float64
	TotalCost       float64
	UnresolvedCount int
}

// CalcConcrete computes every row independently and sums the survivors.
// Failed rows are reported in Errors and contribute nothing.
func CalcConcrete(rows []ConcreteRow, catalog PriceCatalog, region string, settings ConcreteSettings) ConcreteSummary {
	var summary ConcreteSummary
	for _, row := range rows {
		result, err := CalcConcreteRow(row, catalog, region, settings)
		if err != nil {
			summary.Errors = append(summary.Errors, RowError{RowID: row.ID, Name: row.Name, Err: err})
			continue
		}
		summary.Results = append(summary.Results, result)
		summary.TotalVolumeM3 += result.TotalVolumeM3
		summary.CementBags += result.GrossCementBags
		summary.SandM3 += result.GrossSandM3
		summary.StoneM3 += result.GrossStoneM3
		summary.HardcoreM3 += result.HardcoreVolumeM3
		summary.FormworkM2 += result.FormworkM2
		summary.WaterL += result.Water.GrossTotalL
		summary.TotalCost += result.TotalCost
		summary.UnresolvedCount += len(result.UnresolvedMaterials)
	}
	return summary
}
