package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"constructly/services"
	"constructly/templates"
)

// maxImportSize caps catalog uploads at 5 MB.
const maxImportSize = 5 << 20

func renderImport(e *core.RequestEvent, data templates.CatalogImportData) error {
	var component templ.Component
	if e.Request.Header.Get("HX-Request") == "true" {
		component = templates.CatalogImportContent(data)
	} else {
		component = templates.CatalogImportPage(data)
	}
	return component.Render(e.Request.Context(), e.Response)
}

// HandleCatalogImportPage renders the upload form.
func HandleCatalogImportPage(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return renderImport(e, templates.CatalogImportData{})
	}
}

// HandleCatalogTemplate serves a starter spreadsheet with the accepted
// import columns.
func HandleCatalogTemplate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		template, err := services.GenerateCatalogTemplate()
		if err != nil {
			log.Printf("catalog_import: template failed: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate template")
		}

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", `attachment; filename="catalog-template.xlsx"`)
		e.Response.Write(template)
		return nil
	}
}

// HandleCatalogImportValidate parses and validates an uploaded price file,
// rendering the review stage with errors and a commit button.
func HandleCatalogImportValidate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseMultipartForm(maxImportSize); err != nil {
			return e.String(http.StatusBadRequest, "Invalid upload")
		}
		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return e.String(http.StatusBadRequest, "Missing file")
		}
		defer file.Close()

		result, err := services.ValidateCatalogFile(file, header.Filename)
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, fmt.Sprintf("Could not read file: %v", err))
		}

		data := templates.CatalogImportData{Result: result}
		if rowsJSON, err := json.Marshal(result.ParsedRows); err == nil {
			data.RowsJSON = string(rowsJSON)
		}
		if errorsJSON, err := json.Marshal(result.Errors); err == nil {
			data.ErrorsJSON = string(errorsJSON)
		}
		return renderImport(e, data)
	}
}

// HandleCatalogImportCommit writes the previously validated rows into the
// base price catalog.
func HandleCatalogImportCommit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		var rows []map[string]string
		if err := json.Unmarshal([]byte(e.Request.FormValue("rows")), &rows); err != nil {
			return e.String(http.StatusBadRequest, "Invalid rows payload")
		}

		created, updated, err := services.ImportCatalogRows(app, rows)
		if err != nil {
			log.Printf("catalog_import: commit failed: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Import failed")
		}

		SetToast(e, "success", fmt.Sprintf("Imported %d new, updated %d materials", created, updated))
		return renderImport(e, templates.CatalogImportData{
			Committed: true,
			Created:   created,
			Updated:   updated,
		})
	}
}

// HandleCatalogErrorReport builds a downloadable Excel sheet of the
// validation errors.
func HandleCatalogErrorReport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		var validationErrors []services.ValidationError
		if err := json.Unmarshal([]byte(e.Request.FormValue("errors")), &validationErrors); err != nil {
			return e.String(http.StatusBadRequest, "Invalid errors payload")
		}

		report, err := services.GenerateErrorReport(validationErrors)
		if err != nil {
			log.Printf("catalog_import: error report failed: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate report")
		}

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", `attachment; filename="import-errors.xlsx"`)
		e.Response.Write(report)
		return nil
	}
}
