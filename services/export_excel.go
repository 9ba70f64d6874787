package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateExcel creates an Excel workbook from the given ExportData and
// returns the file contents as a byte slice.
func GenerateExcel(data ExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Determine sheet name (max 31 chars).
	sheetName := data.Title
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	if sheetName == "" {
		sheetName = "Quote"
	}

	// Rename default sheet.
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	// Column references (A through F).
	columns := []string{"A", "B", "C", "D", "E", "F"}
	lastCol := columns[len(columns)-1] // "F"

	// Set column widths.
	widths := []float64{6, 42, 10, 12, 16, 18}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	// Title style: bold, 16pt.
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 16,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	// Subtitle style (quote number, client, date).
	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Size: 11,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	// Column header style: bold, white text, charcoal background, centered.
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Color: "#FFFFFF",
			Size:  11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	// Section heading style: bold with a light fill.
	sectionStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E8E8E8"},
			Pattern: 1,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create section style: %w", err)
	}

	// Item style: normal with borders.
	itemStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Size: 10,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create item style: %w", err)
	}

	// Subtotal style: bold with borders.
	subtotalStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 10,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create subtotal style: %w", err)
	}

	// Summary label style: bold, right-aligned.
	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "right",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary label style: %w", err)
	}

	// Summary value style: bold.
	summaryValueStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary value style: %w", err)
	}

	// ── Header Rows (1-4) ───────────────────────────────────────────────

	// Row 1: Title merged across all columns.
	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(data.Title))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	// Row 2: Quote number (if present).
	if data.QuoteNumber != "" {
		if err := f.MergeCell(sheetName, "A2", lastCol+"2"); err != nil {
			return nil, fmt.Errorf("merge quote number: %w", err)
		}
		f.SetCellValue(sheetName, "A2", "Quote No: "+data.QuoteNumber)
		f.SetCellStyle(sheetName, "A2", lastCol+"2", subtitleStyle)
	}

	// Row 3: Client and region.
	if err := f.MergeCell(sheetName, "A3", lastCol+"3"); err != nil {
		return nil, fmt.Errorf("merge client: %w", err)
	}
	clientLine := "Client: " + sanitizeExcelCell(data.ClientName)
	if data.Region != "" {
		clientLine += "  |  Region: " + sanitizeExcelCell(data.Region)
	}
	f.SetCellValue(sheetName, "A3", clientLine)
	f.SetCellStyle(sheetName, "A3", lastCol+"3", subtitleStyle)

	// Row 4: Date.
	if err := f.MergeCell(sheetName, "A4", lastCol+"4"); err != nil {
		return nil, fmt.Errorf("merge date: %w", err)
	}
	f.SetCellValue(sheetName, "A4", "Date: "+data.CreatedDate)
	f.SetCellStyle(sheetName, "A4", lastCol+"4", subtitleStyle)

	// ── Row 6: Column Headers ───────────────────────────────────────────

	headers := []string{"#", "Description", "Unit", "Qty", "Rate", "Amount"}
	for i, h := range headers {
		cell := fmt.Sprintf("%s6", columns[i])
		f.SetCellValue(sheetName, cell, h)
	}
	f.SetCellStyle(sheetName, "A6", lastCol+"6", headerStyle)

	// ── Section Rows (starting row 7) ───────────────────────────────────

	row := 7
	for si, section := range data.Sections {
		rowStr := fmt.Sprintf("%d", row)

		// Section heading merged across description onwards.
		f.SetCellValue(sheetName, "A"+rowStr, fmt.Sprintf("%d", si+1))
		f.SetCellValue(sheetName, "B"+rowStr, sanitizeExcelCell(section.Title))
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, sectionStyle)
		row++

		for ri, r := range section.Rows {
			rowStr = fmt.Sprintf("%d", row)
			f.SetCellValue(sheetName, "A"+rowStr, fmt.Sprintf("%d.%d", si+1, ri+1))
			f.SetCellValue(sheetName, "B"+rowStr, sanitizeExcelCell(r.Description))
			f.SetCellValue(sheetName, "C"+rowStr, sanitizeExcelCell(r.Unit))
			f.SetCellValue(sheetName, "D"+rowStr, FormatQty(r.Qty))
			f.SetCellValue(sheetName, "E"+rowStr, FormatKES(r.Rate))
			f.SetCellValue(sheetName, "F"+rowStr, FormatKES(r.Amount))
			f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, itemStyle)
			row++
		}

		// Section subtotal.
		rowStr = fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "B"+rowStr, "Subtotal — "+sanitizeExcelCell(section.Title))
		f.SetCellValue(sheetName, "F"+rowStr, FormatKES(section.Subtotal))
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, subtotalStyle)
		row++
	}

	// ── Summary Rows ────────────────────────────────────────────────────

	// Skip a blank row.
	row++

	writeSummary := func(label string, amount float64) {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "D"+rowStr, label)
		f.SetCellStyle(sheetName, "D"+rowStr, "E"+rowStr, summaryLabelStyle)
		f.SetCellValue(sheetName, "F"+rowStr, FormatKES(amount))
		f.SetCellStyle(sheetName, "F"+rowStr, "F"+rowStr, summaryValueStyle)
		row++
	}

	s := data.Summary
	writeSummary("Materials:", s.MaterialsCost)
	writeSummary("Labor:", s.LaborCost)
	if s.EquipmentCost > 0 {
		writeSummary("Equipment:", s.EquipmentCost)
	}
	if s.ServicesCost > 0 {
		writeSummary("Services:", s.ServicesCost)
	}
	writeSummary("Transport:", s.TransportCost)
	if s.SubcontractorsCost > 0 {
		writeSummary("Subcontractors:", s.SubcontractorsCost)
	}
	if s.PreliminariesCost > 0 {
		writeSummary("Preliminaries:", s.PreliminariesCost)
	}
	writeSummary("Subtotal:", s.Subtotal)
	writeSummary("Overheads:", s.OverheadAmount)
	writeSummary("Contingency:", s.ContingencyAmount)
	if s.PermitCost > 0 {
		writeSummary("Permits:", s.PermitCost)
	}
	writeSummary("Profit:", s.ProfitAmount)
	writeSummary("Grand Total:", s.TotalAmount)

	// ── Write to buffer ─────────────────────────────────────────────────

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
