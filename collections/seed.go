package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"constructly/services"
)

// ── Definition structs ───────────────────────────────────────────────────

type materialDef struct {
	name      string
	unit      string
	price     float64
	category  string
	breakdown *services.PriceBreakdown
}

type multiplierDef struct {
	region     string
	multiplier float64
}

type settingDef struct {
	key   string
	value any
}

// Seed populates the catalog collections with a baseline Kenyan material
// price book. It is safe to call on every startup because it returns early
// if any base price records already exist.
func Seed(app *pocketbase.PocketBase) error {
	// ── idempotency: skip if catalog already populated ───────────────
	basePricesCol, err := app.FindCollectionByNameOrId("material_base_prices")
	if err != nil {
		return fmt.Errorf("seed: could not find material_base_prices collection: %w", err)
	}
	existing, err := app.FindAllRecords(basePricesCol)
	if err != nil {
		return fmt.Errorf("seed: could not query material_base_prices: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: populating baseline material catalog...")

	materials := []materialDef{
		{name: "Cement", unit: "bag", price: 800, category: "concrete"},
		{name: "River Sand", unit: "m³", price: 2500, category: "concrete"},
		{name: "Ballast", unit: "m³", price: 1800, category: "concrete"},
		{name: "Hardcore", unit: "m³", price: 1200, category: "concrete"},
		{name: "Formwork Timber", unit: "m²", price: 450, category: "concrete"},
		{name: "Water", unit: "L", price: 2, category: "concrete"},
		{name: "Machine Cut Blocks", unit: "pc", price: 65, category: "masonry"},
		{name: "Bricks", unit: "pc", price: 15, category: "masonry"},
		{name: "BRC Mesh", unit: "roll", price: 4200, category: "masonry"},
		{name: "DPC Roll", unit: "roll", price: 1500, category: "masonry"},
		{
			name:     "Paint",
			category: "painting",
			breakdown: &services.PriceBreakdown{
				Materials: map[string]float64{
					"Skimming Compound":   1500,
					"Undercoat":           700,
					"Vinyl Matt Emulsion": 850,
				},
			},
		},
		{
			name:     "Doors",
			category: "openings",
			breakdown: &services.PriceBreakdown{
				SizePrices: map[string]map[string]float64{
					"Flush":          {"0.9x2.1": 4500, "0.8x2.1": 4200},
					"Panel":          {"0.9x2.1": 8500, "0.8x2.1": 8000},
					"Steel":          {"0.9x2.1": 12000},
					"Solid Mahogany": {"0.9x2.1": 18500},
				},
			},
		},
		{
			name:     "Door Frames",
			category: "openings",
			breakdown: &services.PriceBreakdown{
				SizePrices: map[string]map[string]float64{
					"Wood":  {"0.9x2.1": 1500, "0.8x2.1": 1400},
					"Steel": {"0.9x2.1": 2800},
				},
			},
		},
		{
			name:     "Windows",
			category: "openings",
			breakdown: &services.PriceBreakdown{
				SizePrices: map[string]map[string]float64{
					"Steel Casement": {"1.2x1.2": 6500, "1.5x1.2": 7800, "0.9x0.9": 4200},
					"Aluminium":      {"1.2x1.2": 11000, "1.5x1.2": 13500},
				},
			},
		},
		{
			name:     "Window Frames",
			category: "openings",
			breakdown: &services.PriceBreakdown{
				SizePrices: map[string]map[string]float64{
					"Steel":     {"1.2x1.2": 1800, "1.5x1.2": 2200, "0.9x0.9": 1400},
					"Aluminium": {"1.2x1.2": 3200, "1.5x1.2": 3800},
				},
			},
		},
		{name: "Roofing Sheets", unit: "pc", price: 1100, category: "roofing"},
		{name: "Steel Gutter", unit: "m", price: 450, category: "roofing"},
		{name: "Timber Fascia", unit: "m", price: 350, category: "roofing"},
		{
			name:     "Roofing Timber",
			category: "roofing",
			breakdown: &services.PriceBreakdown{
				SizePrices: map[string]map[string]float64{
					"Cypress": {
						services.TimberSize100x50: 130,
						services.TimberSize75x50:  95,
						services.TimberSize50x50:  60,
					},
				},
			},
		},
		{
			name:     "Wall-Finishes",
			category: "wall-finishes",
			breakdown: &services.PriceBreakdown{
				WallingMaterials: []services.RatedMaterial{
					{Name: "Gypsum Board", Rates: []float64{950}},
					{Name: "Wall Panelling", Rates: []float64{1400}},
					{Name: "Wallpaper", Rates: []float64{650}},
				},
				TilingMaterials: []services.RatedMaterial{
					{Name: "Ceramic Tiles", Rates: []float64{1200}},
					{Name: "Porcelain Tiles", Rates: []float64{2100}},
					{Name: "Granito Tiles", Rates: []float64{2800}},
				},
			},
		},
	}

	for _, def := range materials {
		record := core.NewRecord(basePricesCol)
		record.Set("name", def.name)
		record.Set("unit", def.unit)
		record.Set("price", def.price)
		record.Set("category", def.category)
		if def.breakdown != nil {
			record.Set("breakdown", def.breakdown)
		}
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed: material %q: %w", def.name, err)
		}
	}

	multipliersCol, err := app.FindCollectionByNameOrId("regional_multipliers")
	if err != nil {
		return fmt.Errorf("seed: could not find regional_multipliers collection: %w", err)
	}
	multipliers := []multiplierDef{
		{region: "Nairobi", multiplier: 1.0},
		{region: "Mombasa", multiplier: 1.1},
		{region: "Kisumu", multiplier: 1.05},
		{region: "Nakuru", multiplier: 0.95},
		{region: "Eldoret", multiplier: 0.95},
	}
	for _, def := range multipliers {
		record := core.NewRecord(multipliersCol)
		record.Set("region", def.region)
		record.Set("multiplier", def.multiplier)
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed: multiplier %q: %w", def.region, err)
		}
	}

	settingsCol, err := app.FindCollectionByNameOrId("settings")
	if err != nil {
		return fmt.Errorf("seed: could not find settings collection: %w", err)
	}
	settings := []settingDef{
		{key: "finishes_wastage_pct", value: 10},
		{key: "transport_base", value: 500},
		{key: "transport_per_km", value: 50},
	}
	for _, def := range settings {
		record := core.NewRecord(settingsCol)
		record.Set("key", def.key)
		record.Set("value", def.value)
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed: setting %q: %w", def.key, err)
		}
	}

	log.Printf("seed: created %d materials, %d multipliers, %d settings.\n",
		len(materials), len(multipliers), len(settings))
	return nil
}
