package handlers

import (
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"constructly/services"
	"constructly/templates"
)

// HandleQuoteList renders the quotes index, newest first.
func HandleQuoteList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quotesCol, err := app.FindCollectionByNameOrId("quotes")
		if err != nil {
			log.Printf("quote_list: collection not found: %v", err)
			return e.String(http.StatusInternalServerError, "Quotes collection not found")
		}

		records, err := app.FindRecordsByFilter(quotesCol, "id != ''", "-created", 0, 0)
		if err != nil {
			log.Printf("quote_list: query failed: %v", err)
			records = nil
		}

		data := templates.QuoteListData{}
		for _, r := range records {
			created := ""
			if dt := r.GetDateTime("created"); !dt.IsZero() {
				created = dt.Time().Format("02 Jan 2006")
			}
			data.Quotes = append(data.Quotes, templates.QuoteListItem{
				ID:             r.Id,
				QuoteNumber:    r.GetString("quote_number"),
				Title:          r.GetString("title"),
				ClientName:     r.GetString("client_name"),
				Region:         r.GetString("region"),
				ContractType:   r.GetString("contract_type"),
				Status:         r.GetString("status"),
				TotalFormatted: services.FormatKES(r.GetFloat("total_amount")),
				CreatedDate:    created,
			})
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.QuoteListContent(data)
		} else {
			component = templates.QuoteListPage(data)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}
