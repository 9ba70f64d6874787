package handlers

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/spf13/cast"

	"constructly/services"
)

// LoadCatalog reads the full price catalog from the database: base prices
// with their structured breakdowns, regional multipliers and user overrides.
// The returned value is passed explicitly into every calculator call.
func LoadCatalog(app *pocketbase.PocketBase) (services.PriceCatalog, error) {
	var catalog services.PriceCatalog

	materials, err := app.FindAllRecords("material_base_prices")
	if err != nil {
		return catalog, fmt.Errorf("load base prices: %w", err)
	}
	for _, r := range materials {
		mat := services.MaterialPrice{
			ID:       r.Id,
			Name:     r.GetString("name"),
			Unit:     r.GetString("unit"),
			Price:    r.GetFloat("price"),
			Category: r.GetString("category"),
		}
		if raw := r.GetString("breakdown"); raw != "" && raw != "null" {
			var breakdown services.PriceBreakdown
			if err := json.Unmarshal([]byte(raw), &breakdown); err != nil {
				log.Printf("catalog: material %q has invalid breakdown JSON: %v", mat.Name, err)
			} else {
				mat.Type = &breakdown
			}
		}
		catalog.Materials = append(catalog.Materials, mat)
	}

	multipliers, err := app.FindAllRecords("regional_multipliers")
	if err != nil {
		return catalog, fmt.Errorf("load regional multipliers: %w", err)
	}
	for _, r := range multipliers {
		catalog.Multipliers = append(catalog.Multipliers, services.RegionalMultiplier{
			Region:     r.GetString("region"),
			Multiplier: r.GetFloat("multiplier"),
		})
	}

	overrides, err := app.FindAllRecords("user_material_prices")
	if err != nil {
		return catalog, fmt.Errorf("load price overrides: %w", err)
	}
	for _, r := range overrides {
		catalog.Overrides = append(catalog.Overrides, services.PriceOverride{
			MaterialID: r.GetString("material"),
			Region:     r.GetString("region"),
			Price:      r.GetFloat("price"),
		})
	}

	return catalog, nil
}

// LoadSettings reads the settings collection into a key -> value map. Values
// are stored as JSON and returned raw; use settingFloat for numeric reads.
func LoadSettings(app *pocketbase.PocketBase) (map[string]any, error) {
	records, err := app.FindAllRecords("settings")
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	settings := make(map[string]any, len(records))
	for _, r := range records {
		settings[r.GetString("key")] = r.GetString("value")
	}
	return settings, nil
}

// settingFloat reads a numeric setting, falling back when missing or
// unparseable.
func settingFloat(settings map[string]any, key string, fallback float64) float64 {
	raw, ok := settings[key]
	if !ok {
		return fallback
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil {
		return fallback
	}
	return v
}
