package handlers

import (
	"log"
	"net/http"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"constructly/services"
)

// HandleQuoteSchedule returns the quote's material schedule as JSON. When a
// GEMINI_API_KEY is configured the schedule is first sent to the model for
// presentational formatting; its arithmetic is recomputed locally either
// way, and any model failure falls back to the locally built schedule.
func HandleQuoteSchedule(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		record, err := app.FindRecordById("quotes", quoteID)
		if err != nil {
			return e.String(http.StatusNotFound, "Quote not found")
		}

		comp, err := computeQuote(app, record)
		if err != nil {
			log.Printf("schedule: compute failed: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to compute quote")
		}

		schedule := services.BuildSchedule(record.GetString("title"), comp.Export)

		if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
			client := services.NewGeminiClient(apiKey, os.Getenv("GEMINI_MODEL"))
			formatted, err := client.FormatSchedule(e.Request.Context(), schedule)
			if err != nil {
				log.Printf("schedule: model formatting failed, using local schedule: %v", err)
			} else {
				schedule = formatted
			}
		}

		return e.JSON(http.StatusOK, schedule)
	}
}
