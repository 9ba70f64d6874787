package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"constructly/services"
	"constructly/templates"
)

func quoteFormDefaults() templates.QuoteFormData {
	return templates.QuoteFormData{
		Action:        "/quotes",
		Heading:       "New Quote",
		Region:        "Nairobi",
		ContractType:  services.ContractFull,
		Regions:       services.RegionOptions,
		ContractTypes: services.ContractTypeOptions,
		Errors:        map[string]string{},
	}
}

// HandleQuoteCreate renders the new-quote form.
func HandleQuoteCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data := quoteFormDefaults()
		if region := GetActiveRegion(e.Request); region != "" {
			data.Region = region
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.QuoteFormContent(data)
		} else {
			component = templates.QuoteFormPage(data)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleQuoteSave creates a quote from the submitted form, assigns the next
// quote number and redirects to the edit page.
func HandleQuoteSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		data := quoteFormDefaults()
		data.Title = strings.TrimSpace(e.Request.FormValue("title"))
		data.ClientName = strings.TrimSpace(e.Request.FormValue("client_name"))
		if region := e.Request.FormValue("region"); region != "" {
			data.Region = region
		}
		if ct := e.Request.FormValue("contract_type"); ct != "" {
			data.ContractType = ct
		}

		if data.Title == "" {
			data.Errors["title"] = "Title is required"
		}
		if data.ContractType != services.ContractFull && data.ContractType != services.ContractLaborOnly {
			data.Errors["contract_type"] = "Unknown contract type"
		}

		if len(data.Errors) > 0 {
			var component templ.Component
			if e.Request.Header.Get("HX-Request") == "true" {
				component = templates.QuoteFormContent(data)
			} else {
				component = templates.QuoteFormPage(data)
			}
			return component.Render(e.Request.Context(), e.Response)
		}

		quotesCol, err := app.FindCollectionByNameOrId("quotes")
		if err != nil {
			log.Printf("quote_create: collection not found: %v", err)
			return e.String(http.StatusInternalServerError, "Quotes collection not found")
		}

		quoteNumber, err := services.GenerateQuoteNumber(app, time.Now())
		if err != nil {
			log.Printf("quote_create: number generation failed: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to assign quote number")
		}

		record := core.NewRecord(quotesCol)
		record.Set("quote_number", quoteNumber)
		record.Set("title", data.Title)
		record.Set("client_name", data.ClientName)
		record.Set("region", data.Region)
		record.Set("contract_type", data.ContractType)
		record.Set("status", "draft")
		if err := app.Save(record); err != nil {
			log.Printf("quote_create: save failed: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to create quote")
		}

		SetToast(e, "success", fmt.Sprintf("Quote %s created", quoteNumber))
		return e.Redirect(http.StatusFound, fmt.Sprintf("/quotes/%s/edit", record.Id))
	}
}
