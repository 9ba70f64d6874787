package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Masonry constants: mortar bed volume per square metre of walling, plaster
// coat thickness in metres, and the default mortar joint.
const (
	mortarPerSqm          = 0.017
	plasterThicknessM     = 0.015
	defaultJointM         = 0.01
	defaultMortarRatioStr = "1:4"
)

// Plaster options for a wall.
const (
	PlasterNone      = "None"
	PlasterOneSide   = "One Side"
	PlasterBothSides = "Both Sides"
)

// BlockDims are the dimensions of a walling unit in metres.
type BlockDims struct {
	Length    float64
	Height    float64
	Thickness float64
}

// Standard walling unit sizes. Custom blocks supply their own dimensions on
// the wall entry.
var standardBlocks = map[string]BlockDims{
	"Standard Block": {Length: 0.4, Height: 0.2, Thickness: 0.2},
	"Half Block":     {Length: 0.4, Height: 0.2, Thickness: 0.1},
	"Brick":          {Length: 0.225, Height: 0.075, Thickness: 0.1125},
}

// BlockTypeDims returns the dimensions for a named block type, falling back
// to the standard block when the name is unknown and no custom dims exist.
func BlockTypeDims(name string, custom BlockDims) BlockDims {
	if dims, ok := standardBlocks[name]; ok {
		return dims
	}
	if custom.Length > 0 && custom.Height > 0 {
		return custom
	}
	return standardBlocks["Standard Block"]
}

// OpeningSpec describes a door or window on a wall. Standard openings carry
// a size key like "0.9x2.1" resolved against the fixed size table; custom
// openings carry explicit dimensions. CustomPrice, when set, bypasses the
// catalog for the leaf; FrameCustomPrice does the same for the frame.
type OpeningSpec struct {
	SizeType         string // "standard" or "custom"
	StandardSize     string
	Width            float64
	Height           float64
	Count            int
	Type             string
	FrameType        string
	CustomPrice      float64
	FrameCustomPrice float64
}

var sizeKeyClean = regexp.MustCompile(`[^\d.x]`)

// ParseSizeArea parses a "WxH" size string ("0.9x2.1", "1.2×1.2") into an
// area in m². Unparseable strings yield 0.
func ParseSizeArea(s string) float64 {
	if s == "" {
		return 0
	}
	cleaned := strings.ReplaceAll(strings.ReplaceAll(s, "×", "x"), "X", "x")
	cleaned = sizeKeyClean.ReplaceAllString(cleaned, "")
	parts := strings.Split(cleaned, "x")
	if len(parts) != 2 {
		return 0
	}
	w, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	h, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return 0
	}
	return w * h
}

// area returns the opening's face area in m² for one unit.
func (o OpeningSpec) area() float64 {
	if o.SizeType == "custom" {
		return sanitizeQty(o.Width) * sanitizeQty(o.Height)
	}
	return ParseSizeArea(o.StandardSize)
}

// WallEntry is one room treated as four walls, with its openings.
type WallEntry struct {
	ID     string
	Room   string
	Length float64
	Width  float64
	Height float64

	BlockType   string
	CustomBlock BlockDims

	Plaster      string // None, One Side, Both Sides
	MortarRatio  string // "cement:sand", default 1:4
	PlasterRatio string // defaults to MortarRatio

	Doors   []OpeningSpec
	Windows []OpeningSpec
}

// MasonrySettings carries site assumptions for walling work.
type MasonrySettings struct {
	JointThicknessM     float64
	WastageMasonryPct   float64
	WastageWaterPct     float64
	WaterCementRatio    float64
	ClientProvidesWater bool
}

// DefaultMasonrySettings mirrors the usual site defaults: 10 mm joints,
// 10% masonry wastage, 0.5 water/cement ratio.
func DefaultMasonrySettings() MasonrySettings {
	return MasonrySettings{
		JointThicknessM:   defaultJointM,
		WastageMasonryPct: 10,
		WastageWaterPct:   5,
		WaterCementRatio:  0.5,
	}
}

// WallResult is the computed output for one wall entry.
type WallResult struct {
	ID   string
	Room string

	GrossAreaM2    float64
	OpeningsAreaM2 float64
	NetAreaM2      float64
	PlasterAreaM2  float64

	NetBlocks   float64
	GrossBlocks float64

	NetMortarCementBags   float64
	GrossMortarCementBags float64
	NetMortarSandM3       float64
	GrossMortarSandM3     float64

	NetPlasterCementBags   float64
	GrossPlasterCementBags float64
	NetPlasterSandM3       float64
	GrossPlasterSandM3     float64

	WaterL      float64
	GrossWaterL float64

	DoorCount   int
	WindowCount int

	BlocksCost   float64
	MortarCost   float64
	PlasterCost  float64
	DoorsCost    float64
	WindowsCost  float64
	OpeningsCost float64
	WaterCost    float64
	TotalCost    float64

	Findings []Finding
}

// parseTwoPartRatio parses a "cement:sand" ratio, returning the cement
// fraction and sand fraction of the total. Bad input falls back to 1:4.
func parseTwoPartRatio(s string) (cementFrac, sandFrac float64) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) == 2 {
		c, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		sd, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err1 == nil && err2 == nil && c > 0 && sd > 0 {
			total := c + sd
			return c / total, sd / total
		}
	}
	return 1.0 / 5, 4.0 / 5
}

// CalcWall computes walling quantities and costs for a single room entry.
// Each wall is independent; removing a door or window affects only its own
// wall's contribution.
func CalcWall(entry WallEntry, catalog PriceCatalog, region string, settings MasonrySettings) WallResult {
	result := WallResult{ID: entry.ID, Room: entry.Room}

	length := sanitizeQty(entry.Length)
	width := sanitizeQty(entry.Width)
	height := sanitizeQty(entry.Height)

	// A room is four walls: perimeter times height.
	result.GrossAreaM2 = 2 * (length + width) * height

	for _, d := range entry.Doors {
		result.OpeningsAreaM2 += d.area() * float64(d.Count)
		result.DoorCount += d.Count
	}
	for _, w := range entry.Windows {
		result.OpeningsAreaM2 += w.area() * float64(w.Count)
		result.WindowCount += w.Count
	}

	result.NetAreaM2 = result.GrossAreaM2 - result.OpeningsAreaM2
	if result.NetAreaM2 < 0 {
		result.NetAreaM2 = 0
		result.Findings = append(result.Findings, Finding{
			Field:    "openings",
			Message:  "Openings exceed the wall area; net walling floored at 0",
			Severity: SeverityWarning,
		})
	}

	joint := settings.JointThicknessM
	if joint <= 0 {
		joint = defaultJointM
	}
	dims := BlockTypeDims(entry.BlockType, entry.CustomBlock)
	faceArea := (dims.Length + joint) * (dims.Height + joint)
	if faceArea > 0 && result.NetAreaM2 > 0 {
		result.NetBlocks = math.Ceil(result.NetAreaM2 / faceArea)
	}

	switch entry.Plaster {
	case PlasterOneSide:
		result.PlasterAreaM2 = result.NetAreaM2
	case PlasterBothSides:
		result.PlasterAreaM2 = result.NetAreaM2 * 2
	}

	// Mortar bed and plaster coat, split into cement and sand by ratio.
	mortarRatio := entry.MortarRatio
	if mortarRatio == "" {
		mortarRatio = defaultMortarRatioStr
	}
	plasterRatio := entry.PlasterRatio
	if plasterRatio == "" {
		plasterRatio = mortarRatio
	}

	mortarVolume := result.NetAreaM2 * mortarPerSqm
	cFrac, sFrac := parseTwoPartRatio(mortarRatio)
	result.NetMortarCementBags = cFrac * mortarVolume / CementBagVolumeM3
	result.NetMortarSandM3 = sFrac * mortarVolume

	plasterVolume := result.PlasterAreaM2 * plasterThicknessM
	cFrac, sFrac = parseTwoPartRatio(plasterRatio)
	result.NetPlasterCementBags = cFrac * plasterVolume / CementBagVolumeM3
	result.NetPlasterSandM3 = sFrac * plasterVolume

	wcRatio := settings.WaterCementRatio
	if wcRatio <= 0 {
		wcRatio = 0.5
	}
	cementKg := (result.NetMortarCementBags + result.NetPlasterCementBags) * CementBagKg
	result.WaterL = cementKg * wcRatio

	// Wastage.
	wastage := settings.WastageMasonryPct / 100
	result.GrossBlocks = math.Ceil(ApplyWastage(result.NetBlocks, wastage))
	result.GrossMortarCementBags = RoundUpBags(ApplyWastage(result.NetMortarCementBags, wastage))
	result.GrossMortarSandM3 = ApplyWastage(result.NetMortarSandM3, wastage)
	result.GrossPlasterCementBags = RoundUpBags(ApplyWastage(result.NetPlasterCementBags, wastage))
	result.GrossPlasterSandM3 = ApplyWastage(result.NetPlasterSandM3, wastage)
	result.GrossWaterL = ApplyWastage(result.WaterL, settings.WastageWaterPct/100)

	// Costs.
	blockPrice := catalog.Price(entry.BlockType, region)
	if blockPrice == 0 {
		blockPrice = catalog.Price("blocks", region)
	}
	cementPrice := catalog.Price("cement", region)
	sandPrice := catalog.Price("sand", region)
	waterPrice := catalog.Price("water", region)

	result.BlocksCost = result.GrossBlocks * blockPrice
	result.MortarCost = result.GrossMortarCementBags*cementPrice + result.GrossMortarSandM3*sandPrice
	result.PlasterCost = result.GrossPlasterCementBags*cementPrice + result.GrossPlasterSandM3*sandPrice
	if !settings.ClientProvidesWater {
		result.WaterCost = result.GrossWaterL / 1000 * waterPrice
	}

	for _, d := range entry.Doors {
		leaf := d.CustomPrice
		if leaf == 0 && d.SizeType != "custom" {
			leaf = catalog.SizePrice("Doors", d.Type, d.StandardSize, region)
		}
		frame := d.FrameCustomPrice
		if frame == 0 && d.SizeType != "custom" {
			frame = catalog.SizePrice("Door Frames", d.FrameType, d.StandardSize, region)
		}
		result.DoorsCost += (leaf + frame) * float64(d.Count)
	}
	for _, w := range entry.Windows {
		leaf := w.CustomPrice
		if leaf == 0 && w.SizeType != "custom" {
			leaf = catalog.SizePrice("Windows", w.Type, w.StandardSize, region)
		}
		frame := w.FrameCustomPrice
		if frame == 0 && w.SizeType != "custom" {
			frame = catalog.SizePrice("Window Frames", w.FrameType, w.StandardSize, region)
		}
		result.WindowsCost += (leaf + frame) * float64(w.Count)
	}
	result.OpeningsCost = result.DoorsCost + result.WindowsCost

	result.TotalCost = result.BlocksCost + result.MortarCost + result.PlasterCost +
		result.OpeningsCost + result.WaterCost

	return result
}

// MasonrySummary aggregates all wall entries.
type MasonrySummary struct {
	Results []WallResult

	GrossAreaM2   float64
	NetAreaM2     float64
	PlasterAreaM2 float64
	Blocks        float64
	CementBags    float64
	SandM3        float64
	WaterL        float64
	TotalCost     float64

	Findings []Finding
}

// CalcMasonry computes every wall independently and sums the results.
func CalcMasonry(entries []WallEntry, catalog PriceCatalog, region string, settings MasonrySettings) MasonrySummary {
	var summary MasonrySummary
	for _, entry := range entries {
		result := CalcWall(entry, catalog, region, settings)
		summary.Results = append(summary.Results, result)
		summary.GrossAreaM2 += result.GrossAreaM2
		summary.NetAreaM2 += result.NetAreaM2
		summary.PlasterAreaM2 += result.PlasterAreaM2
		summary.Blocks += result.GrossBlocks
		summary.CementBags += result.GrossMortarCementBags + result.GrossPlasterCementBags
		summary.SandM3 += result.GrossMortarSandM3 + result.GrossPlasterSandM3
		summary.WaterL += result.GrossWaterL
		summary.TotalCost += result.TotalCost
		summary.Findings = append(summary.Findings, result.Findings...)
	}
	return summary
}
