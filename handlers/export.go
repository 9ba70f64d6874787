package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"constructly/services"
)

// buildExportData computes a quote and returns the document model fed to
// the Excel and PDF generators.
func buildExportData(app *pocketbase.PocketBase, quoteID string) (services.ExportData, error) {
	record, err := app.FindRecordById("quotes", quoteID)
	if err != nil {
		return services.ExportData{}, fmt.Errorf("quote not found: %w", err)
	}
	comp, err := computeQuote(app, record)
	if err != nil {
		return services.ExportData{}, err
	}
	return comp.Export, nil
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

// exportFilename names the download after the quote number, falling back to
// the title for unnumbered quotes.
func exportFilename(data services.ExportData, ext string) string {
	base := data.QuoteNumber
	if base == "" {
		base = data.Title
	}
	return fmt.Sprintf("%s.%s", sanitizeFilename(base), ext)
}

// HandleQuoteExportExcel generates and downloads the Excel workbook for a
// quote.
func HandleQuoteExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		if quoteID == "" {
			return e.String(http.StatusBadRequest, "Missing quote ID")
		}

		data, err := buildExportData(app, quoteID)
		if err != nil {
			log.Printf("export_excel: %v", err)
			return e.String(http.StatusNotFound, "Quote not found")
		}

		xlsxBytes, err := services.GenerateExcel(data)
		if err != nil {
			log.Printf("export_excel: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
		}

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exportFilename(data, "xlsx")))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleQuoteExportPDF generates and downloads the PDF document for a
// quote.
func HandleQuoteExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		if quoteID == "" {
			return e.String(http.StatusBadRequest, "Missing quote ID")
		}

		data, err := buildExportData(app, quoteID)
		if err != nil {
			log.Printf("export_pdf: %v", err)
			return e.String(http.StatusNotFound, "Quote not found")
		}

		pdfBytes, err := services.GeneratePDF(data)
		if err != nil {
			log.Printf("export_pdf: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate PDF file")
		}

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exportFilename(data, "pdf")))
		e.Response.Write(pdfBytes)
		return nil
	}
}
