package collections

import (
	"fmt"
	"log"
	"time"

	"github.com/pocketbase/pocketbase"

	"constructly/services"
)

// MigrateUnnumberedQuotes assigns a quote number to every quote record that
// was saved without one. Safe to call on every startup -- returns early if
// nothing to migrate.
func MigrateUnnumberedQuotes(app *pocketbase.PocketBase) error {
	quotesCol, err := app.FindCollectionByNameOrId("quotes")
	if err != nil {
		return fmt.Errorf("migrate: could not find quotes collection: %w", err)
	}

	unnumbered, err := app.FindRecordsByFilter(
		quotesCol,
		"quote_number = ''",
		"created",
		0,
		0,
		nil,
	)
	if err != nil {
		return fmt.Errorf("migrate: could not query unnumbered quotes: %w", err)
	}

	if len(unnumbered) == 0 {
		return nil
	}

	log.Printf("migrate: found %d quote(s) without a number -- assigning...\n", len(unnumbered))

	for _, quote := range unnumbered {
		number, err := services.GenerateQuoteNumber(app, time.Now())
		if err != nil {
			log.Printf("migrate: failed to generate number for quote %s: %v\n", quote.Id, err)
			continue
		}

		quote.Set("quote_number", number)
		if err := app.Save(quote); err != nil {
			log.Printf("migrate: failed to number quote %s: %v\n", quote.Id, err)
			continue
		}

		log.Printf("migrate: quote %q -> %s\n", quote.GetString("title"), number)
	}

	log.Println("migrate: quote numbering complete.")
	return nil
}
