package services

// ExportRow is a single priced line in the quote export. Amount is always
// Qty x Rate so the exported sheet can be audited by hand.
type ExportRow struct {
	Description string
	Unit        string
	Qty         float64
	Rate        float64
	Amount      float64
}

// ExportSection groups rows under a works heading (Concrete Works,
// Masonry Works, and so on) with a section subtotal.
type ExportSection struct {
	Title    string
	Rows     []ExportRow
	Subtotal float64
}

// ExportData holds everything the Excel and PDF generators need.
type ExportData struct {
	Title       string
	QuoteNumber string
	ClientName  string
	Region      string
	CreatedDate string
	Sections    []ExportSection
	Summary     QuoteSummary
}

func exportRow(desc, unit string, qty, rate float64) ExportRow {
	return ExportRow{
		Description: desc,
		Unit:        unit,
		Qty:         qty,
		Rate:        rate,
		Amount:      qty * rate,
	}
}

func sectionOf(title string, rows []ExportRow) ExportSection {
	section := ExportSection{Title: title, Rows: rows}
	for _, r := range rows {
		section.Subtotal += r.Amount
	}
	return section
}

// ConcreteSection flattens a concrete summary into export rows. Rows with a
// zero quantity are skipped so the export only lists materials in play.
func ConcreteSection(summary ConcreteSummary, catalog PriceCatalog, region string) ExportSection {
	var rows []ExportRow
	if summary.CementBags > 0 {
		rows = append(rows, exportRow("Cement", "bags", summary.CementBags, catalog.Price("cement", region)))
	}
	if summary.SandM3 > 0 {
		rows = append(rows, exportRow("Sand", "m³", summary.SandM3, catalog.Price("sand", region)))
	}
	if summary.StoneM3 > 0 {
		rate := catalog.ResolvePrice("ballast", region)
		if !rate.Resolved {
			rate = catalog.ResolvePrice("stone", region)
		}
		rows = append(rows, exportRow("Ballast", "m³", summary.StoneM3, rate.Price))
	}
	if summary.HardcoreM3 > 0 {
		rows = append(rows, exportRow("Hardcore", "m³", summary.HardcoreM3, catalog.Price("hardcore", region)))
	}
	if summary.FormworkM2 > 0 {
		rows = append(rows, exportRow("Formwork", "m²", summary.FormworkM2, catalog.Price("formwork", region)))
	}
	if summary.WaterL > 0 {
		rows = append(rows, exportRow("Water", "L", summary.WaterL, catalog.Price("water", region)))
	}
	return sectionOf("Concrete Works", rows)
}

// MasonrySection flattens a masonry summary into export rows. Mortar and
// plaster materials are listed separately since they are often sourced at
// different grades.
func MasonrySection(summary MasonrySummary, catalog PriceCatalog, region string) ExportSection {
	var mortarBags, mortarSand, plasterBags, plasterSand, openings float64
	for _, r := range summary.Results {
		mortarBags += r.GrossMortarCementBags
		mortarSand += r.GrossMortarSandM3
		plasterBags += r.GrossPlasterCementBags
		plasterSand += r.GrossPlasterSandM3
		openings += r.OpeningsCost
	}

	var rows []ExportRow
	if summary.Blocks > 0 {
		rows = append(rows, exportRow("Blocks", "pcs", summary.Blocks, catalog.Price("blocks", region)))
	}
	if mortarBags > 0 {
		rows = append(rows, exportRow("Mortar cement", "bags", mortarBags, catalog.Price("cement", region)))
	}
	if mortarSand > 0 {
		rows = append(rows, exportRow("Mortar sand", "m³", mortarSand, catalog.Price("sand", region)))
	}
	if plasterBags > 0 {
		rows = append(rows, exportRow("Plaster cement", "bags", plasterBags, catalog.Price("cement", region)))
	}
	if plasterSand > 0 {
		rows = append(rows, exportRow("Plaster sand", "m³", plasterSand, catalog.Price("sand", region)))
	}
	if openings > 0 {
		rows = append(rows, exportRow("Doors, windows and frames", "sum", 1, openings))
	}
	if summary.WaterL > 0 {
		rows = append(rows, exportRow("Water", "L", summary.WaterL, catalog.Price("water", region)))
	}
	return sectionOf("Masonry Works", rows)
}

// PaintingSection flattens painting totals into export rows at the gross
// purchased quantities, so the section subtotal matches the painting cost
// fed into the quote.
func PaintingSection(totals PaintingTotals, prices PaintLayerPrices) ExportSection {
	var rows []ExportRow
	if totals.GrossSkimmingBags > 0 {
		rows = append(rows, exportRow("Skimming compound", "bags", totals.GrossSkimmingBags, prices.Skimming))
	}
	if totals.GrossUndercoatLitres > 0 {
		rows = append(rows, exportRow("Undercoat", "L", totals.GrossUndercoatLitres, prices.Undercoat))
	}
	if totals.GrossFinishingLitres > 0 {
		rows = append(rows, exportRow("Finishing paint", "L", totals.GrossFinishingLitres, prices.Finishing))
	}
	return sectionOf("Painting Works", rows)
}

// RoofingSection flattens a roofing summary into export rows: timber pooled
// per cross-section across all plans, then sheets, gutters and fascia.
func RoofingSection(summary RoofSummary) ExportSection {
	type pooled struct {
		length float64
		rate   float64
	}
	timber := map[string]*pooled{}
	var sheets, sheetsCost, gutters, gutterCost, fascia, fasciaCost float64
	for _, r := range summary.Results {
		for _, m := range r.Members {
			p := timber[m.Size]
			if p == nil {
				p = &pooled{}
				timber[m.Size] = p
			}
			p.length += m.GrossLengthM
			if m.UnitRate > 0 {
				p.rate = m.UnitRate
			}
		}
		sheets += r.SheetsGross
		sheetsCost += r.SheetsCost
		gutters += r.GuttersM
		gutterCost += r.GutterCost
		fascia += r.FasciaM
		fasciaCost += r.FasciaCost
	}

	var rows []ExportRow
	for _, size := range []string{TimberSize100x50, TimberSize75x50, TimberSize50x50} {
		if p, ok := timber[size]; ok && p.length > 0 {
			rows = append(rows, exportRow("Structural timber "+size, "m", p.length, p.rate))
		}
	}
	if sheets > 0 {
		rows = append(rows, exportRow("Roofing sheets", "pcs", sheets, sheetsCost/sheets))
	}
	if gutters > 0 {
		rows = append(rows, exportRow("Gutters", "m", gutters, gutterCost/gutters))
	}
	if fascia > 0 {
		rows = append(rows, exportRow("Fascia board", "m", fascia, fasciaCost/fascia))
	}
	return sectionOf("Roofing Works", rows)
}

// FinishesSection flattens a finishes summary into export rows, one line per
// element at its wastage-adjusted quantity.
func FinishesSection(summary FinishesSummary) ExportSection {
	var rows []ExportRow
	for _, r := range summary.Results {
		if r.AdjustedQty <= 0 {
			continue
		}
		rows = append(rows, exportRow(r.Material, r.Unit, r.AdjustedQty, r.UnitRate))
	}
	return sectionOf("Finishes", rows)
}

// MaterialsTotal sums the section subtotals. It should match the
// MaterialsCost fed into Recompute.
func (d ExportData) MaterialsTotal() float64 {
	var total float64
	for _, s := range d.Sections {
		total += s.Subtotal
	}
	return total
}
