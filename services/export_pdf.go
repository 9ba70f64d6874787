package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GeneratePDF creates a PDF document from quote export data using maroto/v2.
// It returns the raw PDF bytes or an error.
func GeneratePDF(data ExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addPDFHeader(m, data)
	addPDFTableHeader(m)

	for si, section := range data.Sections {
		addPDFSectionHeading(m, si+1, section.Title)
		for ri, r := range section.Rows {
			addPDFTableRow(m, fmt.Sprintf("%d.%d", si+1, ri+1), r)
		}
		addPDFSectionSubtotal(m, section)
	}

	addPDFSummary(m, data.Summary)
	addPDFFooter(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addPDFHeader adds the title, quote number, client and date lines.
func addPDFHeader(m core.Maroto, data ExportData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(data.Title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	meta := props.Text{
		Size:  9,
		Align: align.Left,
		Color: &props.Color{Red: 80, Green: 80, Blue: 80},
	}
	metaRight := meta
	metaRight.Align = align.Right

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Quote No: %s", data.QuoteNumber), meta),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Date: %s", data.CreatedDate), metaRight),
			),
		),
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Client: %s", data.ClientName), meta),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Region: %s", data.Region), metaRight),
			),
		),
	)

	// Spacer
	m.AddRows(row.New(4))
}

// addPDFTableHeader adds the column header row for the quote table.
func addPDFTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(
				text.New("#", headerText),
			).WithStyle(&headerCell),
			col.New(4).Add(
				text.New("Description", headerTextLeft),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Unit", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Qty", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Rate", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Amount", headerText),
			).WithStyle(&headerCell),
		),
	)
}

// addPDFSectionHeading adds a shaded works-section heading row.
func addPDFSectionHeading(m core.Maroto, index int, title string) {
	bg := &props.Color{Red: 232, Green: 232, Blue: 232}
	cell := &props.Cell{BackgroundColor: bg}
	heading := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Left,
	}

	m.AddRows(
		row.New(7).Add(
			col.New(1).Add(
				text.New(fmt.Sprintf("%d", index), heading),
			).WithStyle(cell),
			col.New(11).Add(
				text.New(title, heading),
			).WithStyle(cell),
		),
	)
}

// addPDFTableRow adds a single priced line to the quote table.
func addPDFTableRow(m core.Maroto, index string, r ExportRow) {
	baseText := props.Text{
		Size:  7,
		Align: align.Center,
	}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	m.AddRows(
		row.New(7).Add(
			col.New(1).Add(text.New(index, baseText)),
			col.New(4).Add(text.New(r.Description, leftText)),
			col.New(1).Add(text.New(r.Unit, baseText)),
			col.New(2).Add(text.New(FormatQty(r.Qty), rightText)),
			col.New(2).Add(text.New(FormatKES(r.Rate), rightText)),
			col.New(2).Add(text.New(FormatKES(r.Amount), rightText)),
		),
	)
}

// addPDFSectionSubtotal adds the bold subtotal row closing a section.
func addPDFSectionSubtotal(m core.Maroto, section ExportSection) {
	boldLeft := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Left,
	}
	boldRight := boldLeft
	boldRight.Align = align.Right

	m.AddRows(
		row.New(7).Add(
			col.New(1),
			col.New(9).Add(text.New("Subtotal — "+section.Title, boldLeft)),
			col.New(2).Add(text.New(FormatKES(section.Subtotal), boldRight)),
		),
	)
}

// addPDFSummary adds the cost breakdown block at the bottom of the PDF.
func addPDFSummary(m core.Maroto, s QuoteSummary) {
	// Spacer before summary
	m.AddRows(row.New(6))

	summaryBg := &props.Color{Red: 240, Green: 240, Blue: 240}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}

	labelStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
	}
	valueStyle := labelStyle

	writeLine := func(label string, amount float64) {
		m.AddRows(
			row.New(8).Add(
				col.New(8).Add(
					text.New(label, labelStyle),
				).WithStyle(summaryCell),
				col.New(4).Add(
					text.New(FormatKES(amount), valueStyle),
				).WithStyle(summaryCell),
			),
		)
	}

	writeLine("Materials", s.MaterialsCost)
	writeLine("Labor", s.LaborCost)
	if s.EquipmentCost > 0 {
		writeLine("Equipment", s.EquipmentCost)
	}
	if s.ServicesCost > 0 {
		writeLine("Services", s.ServicesCost)
	}
	writeLine("Transport", s.TransportCost)
	if s.SubcontractorsCost > 0 {
		writeLine("Subcontractors", s.SubcontractorsCost)
	}
	if s.PreliminariesCost > 0 {
		writeLine("Preliminaries", s.PreliminariesCost)
	}
	writeLine("Subtotal", s.Subtotal)
	writeLine("Overheads", s.OverheadAmount)
	writeLine("Contingency", s.ContingencyAmount)
	if s.PermitCost > 0 {
		writeLine("Permits", s.PermitCost)
	}
	writeLine("Profit", s.ProfitAmount)
	writeLine("Grand Total", s.TotalAmount)
}

// addPDFFooter adds the generated-date line at the bottom.
func addPDFFooter(m core.Maroto, data ExportData) {
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("Generated on %s", data.CreatedDate),
					props.Text{
						Size:  7,
						Align: align.Left,
						Color: &props.Color{Red: 140, Green: 140, Blue: 140},
					},
				),
			),
		),
	)
}
