package services

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase"
)

// formatQuoteNumber constructs the quote number string from components.
func formatQuoteNumber(year, sequence int) string {
	return fmt.Sprintf("Q-%d-%04d", year, sequence)
}

// GenerateQuoteNumber creates the next quote number.
// Format: Q-{year}-{sequence}, e.g. "Q-2026-0042". The sequence is 4-digit
// zero-padded and restarts each calendar year.
func GenerateQuoteNumber(app *pocketbase.PocketBase, now time.Time) (string, error) {
	prefix := fmt.Sprintf("Q-%d-", now.Year())

	existing, err := app.FindRecordsByFilter(
		"quotes",
		"quote_number ~ {:prefix}",
		"",
		0,
		0,
		map[string]any{"prefix": prefix + "%"},
	)
	if err != nil {
		// If collection doesn't exist or no records, start at 1
		existing = nil
	}

	return formatQuoteNumber(now.Year(), len(existing)+1), nil
}
