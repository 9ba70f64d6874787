package services

import "math"

// Roof framing constants: metres of rafter timber per square metre of roof
// surface, and the wall-plate wastage which stays at 10% regardless of the
// structural timber wastage setting.
const (
	rafterMetresPerSqm  = 1.68
	wallPlateWastage    = 0.10
	defaultSheetWidthM  = 0.9
	defaultSheetLengthM = 3.0
)

// Structural timber sizes used by the framing members, in millimetres.
const (
	TimberSize100x50 = "100x50"
	TimberSize75x50  = "75x50"
	TimberSize50x50  = "50x50"
)

// RoofSettings carries the framing assumptions shared by every roof plan.
// Pitch is in degrees; spacings are centre-to-centre in metres.
type RoofSettings struct {
	PitchDeg         float64
	EaveWidthM       float64
	TrussSpacingM    float64
	PurlinSpacingM   float64
	TimberWastagePct float64
	SheetWastagePct  float64
}

// DefaultRoofSettings mirrors the usual framing defaults: 25° pitch, 0.8 m
// eaves, 600 mm truss and purlin spacing, 15% wastage on structural timber
// and sheets.
func DefaultRoofSettings() RoofSettings {
	return RoofSettings{
		PitchDeg:         25,
		EaveWidthM:       0.8,
		TrussSpacingM:    0.6,
		PurlinSpacingM:   0.6,
		TimberWastagePct: 15,
		SheetWastagePct:  15,
	}
}

// RoofPlan is one roof over a rectangular building footprint. Length runs
// along the ridge; width is the span the trusses cross. Sheet dimensions
// default to a 0.9 m cover width and 3 m length when unset.
type RoofPlan struct {
	ID   string
	Name string

	LengthM             float64
	WidthM              float64
	ExternalPerimeterM  float64
	InternalWallLengthM float64

	KingPosts bool

	SheetCoverWidthM float64
	SheetLengthM     float64
}

// TimberMember is one framing member line: a named run of structural timber
// of a single cross-section, priced per metre.
type TimberMember struct {
	Name         string
	Size         string
	NetLengthM   float64
	GrossLengthM float64
	UnitRate     float64
	Cost         float64
}

// RoofResult is the computed output for one roof plan.
type RoofResult struct {
	ID   string
	Name string

	ProjectedAreaM2 float64
	EffectiveAreaM2 float64
	TrussCount      int

	Members []TimberMember

	SheetsNet   float64
	SheetsGross float64
	GuttersM    float64
	FasciaM     float64

	TimberCost float64
	SheetsCost float64
	GutterCost float64
	FasciaCost float64
	TotalCost  float64

	Findings []Finding
}

// timberMember builds one framing line, applying wastage to the net length
// and pricing the gross run at the catalog's per-metre rate for the size.
func timberMember(name, size string, netLength, wastage float64, catalog PriceCatalog, region string) TimberMember {
	m := TimberMember{
		Name:       name,
		Size:       size,
		NetLengthM: sanitizeQty(netLength),
	}
	m.GrossLengthM = ApplyWastage(m.NetLengthM, wastage)
	m.UnitRate = catalog.SizePrice("Roofing Timber", "Cypress", size, region)
	m.Cost = m.GrossLengthM * m.UnitRate
	return m
}

// CalcRoof computes framing quantities, sheet counts and costs for a single
// roof plan. The plan area is projected onto the slope: covered area grows
// by the eave overhang, then divides by cos(pitch) to get the surface the
// rafters, purlins and sheets actually span.
func CalcRoof(plan RoofPlan, catalog PriceCatalog, region string, settings RoofSettings) RoofResult {
	result := RoofResult{ID: plan.ID, Name: plan.Name}

	length := sanitizeQty(plan.LengthM)
	width := sanitizeQty(plan.WidthM)
	extPerimeter := sanitizeQty(plan.ExternalPerimeterM)
	intWalls := sanitizeQty(plan.InternalWallLengthM)

	pitchRad := settings.PitchDeg * math.Pi / 180
	cosPitch := math.Cos(pitchRad)
	if cosPitch <= 0 {
		result.Findings = append(result.Findings, Finding{
			Field:    "pitch",
			Message:  "Roof pitch must be below 90°; plan skipped",
			Severity: SeverityError,
		})
		return result
	}

	result.ProjectedAreaM2 = length*width + extPerimeter*settings.EaveWidthM
	result.EffectiveAreaM2 = result.ProjectedAreaM2 / cosPitch

	halfSpan := width / 2
	rasterLength := (halfSpan + settings.EaveWidthM) / cosPitch

	trussSpacing := settings.TrussSpacingM
	if trussSpacing <= 0 {
		trussSpacing = 0.6
	}
	if length > 0 {
		result.TrussCount = int(math.Ceil(length / trussSpacing))
	}
	trusses := float64(result.TrussCount)

	wastage := settings.TimberWastagePct / 100

	members := []TimberMember{
		timberMember("Wall plates", TimberSize100x50, extPerimeter+intWalls, wallPlateWastage, catalog, region),
		timberMember("Tie beams", TimberSize100x50, trusses*width, wastage, catalog, region),
	}
	if plan.KingPosts {
		members = append(members,
			timberMember("King posts", TimberSize100x50, trusses*halfSpan*math.Tan(pitchRad), wastage, catalog, region))
	}
	members = append(members,
		timberMember("Rafters", TimberSize75x50, result.EffectiveAreaM2*rafterMetresPerSqm, wastage, catalog, region))

	purlinSpacing := settings.PurlinSpacingM
	if purlinSpacing <= 0 {
		purlinSpacing = 0.6
	}
	purlinRows := math.Ceil(rasterLength / purlinSpacing)
	members = append(members,
		timberMember("Purlins", TimberSize50x50, purlinRows*length*2, wastage, catalog, region),
		timberMember("Struts", TimberSize50x50, trusses*2*(rasterLength/2), wastage, catalog, region))

	for _, m := range members {
		result.TimberCost += m.Cost
		if m.GrossLengthM > 0 && m.UnitRate == 0 {
			result.Findings = append(result.Findings, Finding{
				Field:    "roofing",
				Message:  "Roofing timber " + m.Size + " has no price and was costed at zero",
				Severity: SeverityWarning,
			})
		}
	}
	result.Members = members

	// Sheets are bought whole: count up to cover the sloped area, then
	// count up again after wastage.
	coverWidth := plan.SheetCoverWidthM
	if coverWidth <= 0 {
		coverWidth = defaultSheetWidthM
	}
	sheetLength := plan.SheetLengthM
	if sheetLength <= 0 {
		sheetLength = defaultSheetLengthM
	}
	coverArea := coverWidth * sheetLength
	if coverArea > 0 && result.EffectiveAreaM2 > 0 {
		result.SheetsNet = math.Ceil(result.EffectiveAreaM2 / coverArea)
		result.SheetsGross = math.Ceil(ApplyWastage(result.SheetsNet, settings.SheetWastagePct/100))
	}
	result.SheetsCost = result.SheetsGross * catalog.Price("roofing sheets", region)

	// Gutters and fascia run the external eave line, no wastage.
	result.GuttersM = extPerimeter
	result.FasciaM = extPerimeter
	result.GutterCost = result.GuttersM * catalog.Price("gutter", region)
	result.FasciaCost = result.FasciaM * catalog.Price("fascia", region)

	result.TotalCost = result.TimberCost + result.SheetsCost + result.GutterCost + result.FasciaCost
	return result
}

// RoofSummary aggregates all roof plans.
type RoofSummary struct {
	Results []RoofResult

	EffectiveAreaM2 float64
	TimberLengthM   float64
	Sheets          float64
	TotalCost       float64

	Findings []Finding
}

// CalcRoofing computes every roof plan independently and sums the results.
func CalcRoofing(plans []RoofPlan, catalog PriceCatalog, region string, settings RoofSettings) RoofSummary {
	var summary RoofSummary
	for _, plan := range plans {
		result := CalcRoof(plan, catalog, region, settings)
		summary.Results = append(summary.Results, result)
		summary.EffectiveAreaM2 += result.EffectiveAreaM2
		for _, m := range result.Members {
			summary.TimberLengthM += m.GrossLengthM
		}
		summary.Sheets += result.SheetsGross
		summary.TotalCost += result.TotalCost
		summary.Findings = append(summary.Findings, result.Findings...)
	}
	return summary
}
