package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleQuoteDelete deletes a quote. The empty 200 response lets HTMX
// remove the row it targeted.
func HandleQuoteDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		record, err := app.FindRecordById("quotes", quoteID)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Quote not found")
		}

		title := record.GetString("title")
		if err := app.Delete(record); err != nil {
			log.Printf("quote_delete: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to delete quote")
		}

		SetToast(e, "success", "Deleted "+title)
		return e.String(http.StatusOK, "")
	}
}
