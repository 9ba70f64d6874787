package collections_test

import (
	"testing"

	"constructly/collections"
	"constructly/testhelpers"

	"github.com/pocketbase/pocketbase/core"
)

// expectedCollections is the full list of collections that Setup() must create.
var expectedCollections = []string{
	"material_base_prices",
	"regional_multipliers",
	"user_material_prices",
	"settings",
	"quotes",
}

func TestSetup_AllCollectionsExist(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q not found after Setup(): %v", name, err)
			continue
		}
		if col.Name != name {
			t.Errorf("expected collection name %q, got %q", name, col.Name)
		}
	}
}

func TestSetup_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t) // Setup() already called once via NewTestApp

	// Collect IDs from first run
	ids := make(map[string]string)
	for _, name := range expectedCollections {
		col, _ := app.FindCollectionByNameOrId(name)
		ids[name] = col.Id
	}

	// Run Setup() again
	collections.Setup(app)

	// IDs should not change
	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q missing after second Setup(): %v", name, err)
			continue
		}
		if col.Id != ids[name] {
			t.Errorf("collection %q id changed after second Setup(): %s -> %s", name, ids[name], col.Id)
		}
	}
}

func TestSetup_MaterialBasePricesFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("material_base_prices")

	fields := []string{"name", "unit", "price", "category", "breakdown", "created", "updated"}
	for _, f := range fields {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("material_base_prices: missing field %q", f)
		}
	}
}

func TestSetup_UserMaterialPricesRelation(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("user_material_prices")

	materialField := col.Fields.GetByName("material")
	if rf, ok := materialField.(*core.RelationField); ok {
		if rf.MaxSelect != 1 {
			t.Errorf("user_material_prices.material: expected MaxSelect=1, got %d", rf.MaxSelect)
		}
		if !rf.CascadeDelete {
			t.Error("user_material_prices.material: expected CascadeDelete")
		}
		base, _ := app.FindCollectionByNameOrId("material_base_prices")
		if rf.CollectionId != base.Id {
			t.Errorf("user_material_prices.material: wrong target collection %q", rf.CollectionId)
		}
	} else {
		t.Errorf("material field is not a RelationField")
	}
}

func TestSetup_QuotesFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("quotes")

	fields := []string{
		"quote_number", "title", "client_name", "region", "contract_type",
		"status", "concrete_rows", "walls", "painting", "finishes",
		"equipment", "services", "subcontractors", "preliminaries",
		"distance_km", "permit_cost", "percentages", "summary",
		"total_amount", "created", "updated",
	}
	for _, f := range fields {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("quotes: missing field %q", f)
		}
	}

	// Verify contract_type is a select field with expected values
	contractField := col.Fields.GetByName("contract_type")
	if sf, ok := contractField.(*core.SelectField); ok {
		expected := map[string]bool{"full_contract": true, "labor_only": true}
		for _, v := range sf.Values {
			if !expected[v] {
				t.Errorf("unexpected contract_type value: %q", v)
			}
			delete(expected, v)
		}
		for v := range expected {
			t.Errorf("missing contract_type value: %q", v)
		}
	} else {
		t.Errorf("contract_type field is not a SelectField")
	}
}
