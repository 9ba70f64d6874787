package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"constructly/services"
	"constructly/templates"
)

// summaryLines flattens a quote summary into display rows. Zero-valued
// optional categories are omitted; a labor-only contract hides the material
// and transport lines it excludes.
func summaryLines(summary services.QuoteSummary, contractType string) []templates.SummaryLine {
	var lines []templates.SummaryLine
	add := func(label string, value float64, always, bold bool) {
		if !always && value == 0 {
			return
		}
		lines = append(lines, templates.SummaryLine{
			Label: label,
			Value: services.FormatKES(value),
			Bold:  bold,
		})
	}

	laborOnly := contractType == services.ContractLaborOnly
	if !laborOnly {
		add("Materials", summary.MaterialsCost, true, false)
	}
	add("Labor", summary.LaborCost, true, false)
	add("Equipment", summary.EquipmentCost, false, false)
	add("Services", summary.ServicesCost, false, false)
	if !laborOnly {
		add("Transport", summary.TransportCost, true, false)
	}
	add("Subcontractors", summary.SubcontractorsCost, false, false)
	add("Preliminaries", summary.PreliminariesCost, false, false)
	add("Subtotal", summary.Subtotal, true, true)
	add("Overheads", summary.OverheadAmount, false, false)
	add("Contingency", summary.ContingencyAmount, false, false)
	add("Permits", summary.PermitCost, false, false)
	add("Profit", summary.ProfitAmount, false, false)
	add("Grand Total", summary.TotalAmount, true, true)
	return lines
}

// elementLines flattens the lettered element view, skipping empty buckets.
// An all-zero view (no measured works yet) yields nil so the section is
// hidden entirely.
func elementLines(t services.QuoteTotals) []templates.SummaryLine {
	buckets := []struct {
		label string
		value float64
	}{
		{"A Substructure", t.ElementATotal},
		{"B Superstructure", t.ElementBTotal},
		{"C Walling", t.ElementCTotal},
		{"D Windows", t.ElementDTotal},
		{"E Doors", t.ElementETotal},
		{"F Wall Finishes", t.ElementFTotal},
		{"G Roofing", t.ElementGTotal},
		{"H Floor Finishes", t.ElementHTotal},
		{"J Ceiling Finishes", t.ElementJTotal},
		{"PC & Provisional Sums", t.PCAndProvisionalTotal},
		{"General Preliminaries", t.GeneralPrelimTotal},
		{"Particular Preliminaries", t.ParticularPrelimTotal},
		{"Professional Fees", t.ProfessionalFees},
	}

	var lines []templates.SummaryLine
	for _, b := range buckets {
		if b.value == 0 {
			continue
		}
		lines = append(lines, templates.SummaryLine{Label: b.label, Value: services.FormatKES(b.value)})
	}
	if lines == nil {
		return nil
	}
	lines = append(lines, templates.SummaryLine{
		Label: "Measured Works Total",
		Value: services.FormatKES(t.TotalAmount),
		Bold:  true,
	})
	return lines
}

// quoteViewData builds the display model for a computed quote.
func quoteViewData(record *core.Record, comp quoteComputation) templates.QuoteViewData {
	data := templates.QuoteViewData{
		ID:           record.Id,
		QuoteNumber:  record.GetString("quote_number"),
		Title:        record.GetString("title"),
		ClientName:   record.GetString("client_name"),
		Region:       record.GetString("region"),
		ContractType: record.GetString("contract_type"),
		Status:       record.GetString("status"),
		CreatedDate:  comp.Export.CreatedDate,
		Warnings:     comp.Warnings,
	}

	for si, section := range comp.Export.Sections {
		viewSection := templates.QuoteViewSection{
			Title:    section.Title,
			Subtotal: services.FormatKES(section.Subtotal),
		}
		for ri, row := range section.Rows {
			viewSection.Rows = append(viewSection.Rows, templates.QuoteViewRow{
				Index:       fmt.Sprintf("%d.%d", si+1, ri+1),
				Description: row.Description,
				Unit:        row.Unit,
				Qty:         services.FormatQty(row.Qty),
				Rate:        services.FormatKES(row.Rate),
				Amount:      services.FormatKES(row.Amount),
			})
		}
		data.Sections = append(data.Sections, viewSection)
	}

	data.Elements = elementLines(comp.Totals)
	data.Summary = summaryLines(comp.Summary, data.ContractType)
	return data
}

// HandleQuoteView renders the quote detail page with freshly computed
// quantities and costs.
func HandleQuoteView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		record, err := app.FindRecordById("quotes", quoteID)
		if err != nil {
			return e.String(http.StatusNotFound, "Quote not found")
		}

		comp, err := computeQuote(app, record)
		if err != nil {
			log.Printf("quote_view: compute failed: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to compute quote")
		}

		data := quoteViewData(record, comp)
		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.QuoteViewContent(data)
		} else {
			component = templates.QuoteViewPage(data)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}
