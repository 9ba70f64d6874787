package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the material_base_prices,
// regional_multipliers, user_material_prices, settings and quotes
// collections exist.
func Setup(app *pocketbase.PocketBase) {
	basePrices := ensureCollection(app, "material_base_prices", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "unit", Required: false})
		c.Fields.Add(&core.NumberField{Name: "price", Required: false})
		c.Fields.Add(&core.TextField{Name: "category", Required: false})
		c.Fields.Add(&core.JSONField{Name: "breakdown", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "regional_multipliers", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "region", Required: true})
		c.Fields.Add(&core.NumberField{Name: "multiplier", Required: true})
	})

	ensureCollection(app, "user_material_prices", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "material",
			Required:      true,
			CollectionId:  basePrices.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "region", Required: true})
		c.Fields.Add(&core.NumberField{Name: "price", Required: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "settings", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "key", Required: true})
		c.Fields.Add(&core.JSONField{Name: "value", Required: false})
	})

	ensureCollection(app, "quotes", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "quote_number", Required: false})
		c.Fields.Add(&core.TextField{Name: "title", Required: true})
		c.Fields.Add(&core.TextField{Name: "client_name", Required: false})
		c.Fields.Add(&core.TextField{Name: "region", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "contract_type",
			Required:  true,
			Values:    []string{"full_contract", "labor_only"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  false,
			Values:    []string{"draft", "final"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.JSONField{Name: "concrete_rows", Required: false})
		c.Fields.Add(&core.JSONField{Name: "walls", Required: false})
		c.Fields.Add(&core.JSONField{Name: "painting", Required: false})
		c.Fields.Add(&core.JSONField{Name: "roofing", Required: false})
		c.Fields.Add(&core.JSONField{Name: "finishes", Required: false})
		c.Fields.Add(&core.JSONField{Name: "equipment", Required: false})
		c.Fields.Add(&core.JSONField{Name: "services", Required: false})
		c.Fields.Add(&core.JSONField{Name: "subcontractors", Required: false})
		c.Fields.Add(&core.JSONField{Name: "preliminaries", Required: false})
		c.Fields.Add(&core.NumberField{Name: "distance_km", Required: false})
		c.Fields.Add(&core.NumberField{Name: "permit_cost", Required: false})
		c.Fields.Add(&core.JSONField{Name: "percentages", Required: false})
		c.Fields.Add(&core.JSONField{Name: "summary", Required: false})
		c.Fields.Add(&core.JSONField{Name: "element_totals", Required: false})
		c.Fields.Add(&core.NumberField{Name: "total_amount", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
