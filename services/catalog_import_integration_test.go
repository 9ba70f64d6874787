package services_test

import (
	"testing"

	"constructly/services"
	"constructly/testhelpers"
)

func TestImportCatalogRows_CreatesAndUpdates(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestMaterial(t, app, "Cement", "bag", 700)

	rows := []map[string]string{
		{"name": "Cement", "unit": "bag", "price": "820"},
		{"name": "River Sand", "unit": "m³", "price": "2500", "category": "concrete"},
	}

	created, updated, err := services.ImportCatalogRows(app, rows)
	if err != nil {
		t.Fatalf("ImportCatalogRows() error = %v", err)
	}
	if created != 1 || updated != 1 {
		t.Errorf("created=%d updated=%d, want 1/1", created, updated)
	}

	col, _ := app.FindCollectionByNameOrId("material_base_prices")
	cement, _ := app.FindRecordsByFilter(col, "name = 'Cement'", "", 1, 0, nil)
	if len(cement) == 0 || cement[0].GetFloat("price") != 820 {
		t.Errorf("expected Cement price updated to 820")
	}

	sand, _ := app.FindRecordsByFilter(col, "name = 'River Sand'", "", 1, 0, nil)
	if len(sand) == 0 {
		t.Fatal("River Sand not created")
	}
	if sand[0].GetString("category") != "concrete" {
		t.Errorf("category = %q", sand[0].GetString("category"))
	}
}

func TestImportCatalogRows_SkipsNamelessRows(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	created, updated, err := services.ImportCatalogRows(app, []map[string]string{
		{"name": "", "price": "100"},
	})
	if err != nil {
		t.Fatalf("ImportCatalogRows() error = %v", err)
	}
	if created != 0 || updated != 0 {
		t.Errorf("created=%d updated=%d, want 0/0", created, updated)
	}
}
