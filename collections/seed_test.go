package collections_test

import (
	"testing"

	"constructly/collections"
	"constructly/testhelpers"
)

func TestSeed_CreatesCatalog(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	// Verify base prices exist
	basePricesCol, _ := app.FindCollectionByNameOrId("material_base_prices")
	materials, err := app.FindAllRecords(basePricesCol)
	if err != nil {
		t.Fatalf("query material_base_prices error: %v", err)
	}
	if len(materials) == 0 {
		t.Fatal("expected seeded materials")
	}

	// Verify regional multipliers
	multipliersCol, _ := app.FindCollectionByNameOrId("regional_multipliers")
	multipliers, _ := app.FindAllRecords(multipliersCol)
	if len(multipliers) != 5 {
		t.Errorf("expected 5 regional multipliers, got %d", len(multipliers))
	}

	// Verify settings
	settingsCol, _ := app.FindCollectionByNameOrId("settings")
	settings, _ := app.FindAllRecords(settingsCol)
	if len(settings) != 3 {
		t.Errorf("expected 3 settings, got %d", len(settings))
	}
}

func TestSeed_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("first Seed() error: %v", err)
	}

	basePricesCol, _ := app.FindCollectionByNameOrId("material_base_prices")
	first, _ := app.FindAllRecords(basePricesCol)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}

	second, _ := app.FindAllRecords(basePricesCol)
	if len(first) != len(second) {
		t.Errorf("material count changed after idempotent seed: %d -> %d", len(first), len(second))
	}
}

func TestSeed_CementDetails(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	basePricesCol, _ := app.FindCollectionByNameOrId("material_base_prices")
	items, _ := app.FindRecordsByFilter(
		basePricesCol,
		"name = {:n}",
		"", 1, 0,
		map[string]any{"n": "Cement"},
	)
	if len(items) == 0 {
		t.Fatal("Cement material not found")
	}

	item := items[0]
	if item.GetFloat("price") != 800 {
		t.Errorf("price = %v, want 800", item.GetFloat("price"))
	}
	if item.GetString("unit") != "bag" {
		t.Errorf("unit = %q, want %q", item.GetString("unit"), "bag")
	}
	if item.GetString("category") != "concrete" {
		t.Errorf("category = %q, want %q", item.GetString("category"), "concrete")
	}
}

func TestSeed_StructuredBreakdowns(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	basePricesCol, _ := app.FindCollectionByNameOrId("material_base_prices")
	for _, name := range []string{"Paint", "Doors", "Windows", "Wall-Finishes"} {
		items, _ := app.FindRecordsByFilter(
			basePricesCol,
			"name = {:n}",
			"", 1, 0,
			map[string]any{"n": name},
		)
		if len(items) == 0 {
			t.Errorf("%s material not found", name)
			continue
		}
		if len(items[0].GetString("breakdown")) == 0 {
			t.Errorf("%s: expected a structured breakdown", name)
		}
	}
}

func TestSeed_SkipsWhenDataExists(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	// Create a material first (not via Seed)
	testhelpers.CreateTestMaterial(t, app, "Pre-existing Cement", "bag", 750)

	// Seed should skip because catalog data already exists
	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	basePricesCol, _ := app.FindCollectionByNameOrId("material_base_prices")
	materials, _ := app.FindAllRecords(basePricesCol)
	if len(materials) != 1 {
		t.Errorf("expected 1 material (pre-existing only), got %d", len(materials))
	}
	if materials[0].GetString("name") != "Pre-existing Cement" {
		t.Errorf("expected pre-existing material, got %q", materials[0].GetString("name"))
	}
}
