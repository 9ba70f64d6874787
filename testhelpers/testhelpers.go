// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"constructly/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestMaterial creates a material_base_prices record and returns it.
func CreateTestMaterial(t *testing.T, app *pocketbase.PocketBase, name, unit string, price float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("material_base_prices")
	if err != nil {
		t.Fatalf("failed to find material_base_prices collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("unit", unit)
	record.Set("price", price)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test material: %v", err)
	}

	return record
}

// CreateTestMultiplier creates a regional_multipliers record and returns it.
func CreateTestMultiplier(t *testing.T, app *pocketbase.PocketBase, region string, multiplier float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("regional_multipliers")
	if err != nil {
		t.Fatalf("failed to find regional_multipliers collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("region", region)
	record.Set("multiplier", multiplier)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test multiplier: %v", err)
	}

	return record
}

// CreateTestOverride creates a user_material_prices record linking a material
// to a region-specific price.
func CreateTestOverride(t *testing.T, app *pocketbase.PocketBase, materialID, region string, price float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("user_material_prices")
	if err != nil {
		t.Fatalf("failed to find user_material_prices collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("material", materialID)
	record.Set("region", region)
	record.Set("price", price)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test override: %v", err)
	}

	return record
}

// CreateTestQuote creates a quote record with the given title and returns it.
func CreateTestQuote(t *testing.T, app *pocketbase.PocketBase, title string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("quotes")
	if err != nil {
		t.Fatalf("failed to find quotes collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("title", title)
	record.Set("client_name", "Test Client")
	record.Set("region", "Nairobi")
	record.Set("contract_type", "full_contract")
	record.Set("status", "draft")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test quote: %v", err)
	}

	return record
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHXRedirect checks that the response has an HX-Redirect header with the expected URL.
func AssertHXRedirect(t *testing.T, headerVal, expectedURL string) {
	t.Helper()

	if headerVal != expectedURL {
		t.Errorf("expected HX-Redirect %q, got %q", expectedURL, headerVal)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
