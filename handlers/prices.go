package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cast"

	"constructly/services"
	"constructly/templates"
)

// priceRowFor builds the display row for one material in a region.
func priceRowFor(catalog services.PriceCatalog, mat services.MaterialPrice, region string) templates.PriceRow {
	row := templates.PriceRow{
		MaterialID: mat.ID,
		Name:       mat.Name,
		Unit:       mat.Unit,
		Category:   mat.Category,
		Structured: mat.Type != nil && mat.Price == 0,
	}
	if row.Structured {
		return row
	}

	row.BaseFormatted = services.FormatKES(mat.Price)
	resolved := catalog.ResolvePrice(mat.Name, region)
	if resolved.Resolved {
		row.EffectiveFormatted = services.FormatKES(resolved.Price)
	} else {
		row.EffectiveFormatted = "—"
	}
	for _, o := range catalog.Overrides {
		if o.MaterialID == mat.ID && o.Region == region {
			row.HasOverride = true
			row.OverrideValue = strconv.FormatFloat(o.Price, 'f', -1, 64)
			break
		}
	}
	return row
}

// HandlePriceList renders the regional price list.
func HandlePriceList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		region := e.Request.URL.Query().Get("region")
		if region == "" {
			region = GetActiveRegion(e.Request)
		}
		if region == "" {
			region = "Nairobi"
		}

		catalog, err := LoadCatalog(app)
		if err != nil {
			log.Printf("price_list: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to load catalog")
		}

		data := templates.PriceListData{
			Region:  region,
			Regions: services.RegionOptions,
		}
		for _, mat := range catalog.Materials {
			data.Rows = append(data.Rows, priceRowFor(catalog, mat, region))
		}

		setActiveRegion(e, region)

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.PriceListContent(data)
		} else {
			component = templates.PriceListPage(data)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

// findOverrideRecord returns the stored override for (materialID, region),
// or nil when none exists.
func findOverrideRecord(app *pocketbase.PocketBase, materialID, region string) *core.Record {
	records, err := app.FindRecordsByFilter("user_material_prices",
		"material = {:material} && region = {:region}", "", 1, 0,
		map[string]any{"material": materialID, "region": region},
	)
	if err != nil || len(records) == 0 {
		return nil
	}
	return records[0]
}

// renderPriceRow re-renders one price row after an override change.
func renderPriceRow(e *core.RequestEvent, app *pocketbase.PocketBase, materialID, region string) error {
	catalog, err := LoadCatalog(app)
	if err != nil {
		log.Printf("price_row: %v", err)
		return e.String(http.StatusInternalServerError, "Failed to load catalog")
	}
	for _, mat := range catalog.Materials {
		if mat.ID == materialID {
			row := priceRowFor(catalog, mat, region)
			return templates.PriceRowFragment(region, row).Render(e.Request.Context(), e.Response)
		}
	}
	return e.String(http.StatusNotFound, "Material not found")
}

// HandlePriceOverrideSave upserts a user price for a material in a region.
func HandlePriceOverrideSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		materialID := e.Request.PathValue("materialId")
		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "Invalid form data")
		}
		region := e.Request.FormValue("region")
		price := cast.ToFloat64(e.Request.FormValue("price"))
		if region == "" {
			return ErrorToast(e, http.StatusBadRequest, "Region is required")
		}
		if price <= 0 {
			return ErrorToast(e, http.StatusBadRequest, "Price must be positive")
		}
		if _, err := app.FindRecordById("material_base_prices", materialID); err != nil {
			return ErrorToast(e, http.StatusNotFound, "Material not found")
		}

		record := findOverrideRecord(app, materialID, region)
		if record == nil {
			col, err := app.FindCollectionByNameOrId("user_material_prices")
			if err != nil {
				log.Printf("price_override: collection not found: %v", err)
				return e.String(http.StatusInternalServerError, "Overrides collection not found")
			}
			record = core.NewRecord(col)
			record.Set("material", materialID)
			record.Set("region", region)
		}
		record.Set("price", price)
		if err := app.Save(record); err != nil {
			log.Printf("price_override: save failed: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to save override")
		}

		SetToast(e, "success", "Price override saved")
		return renderPriceRow(e, app, materialID, region)
	}
}

// HandlePriceOverrideDelete removes a user price, reverting the material to
// base price times regional multiplier.
func HandlePriceOverrideDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		materialID := e.Request.PathValue("materialId")
		region := e.Request.URL.Query().Get("region")
		if region == "" {
			return ErrorToast(e, http.StatusBadRequest, "Region is required")
		}

		record := findOverrideRecord(app, materialID, region)
		if record != nil {
			if err := app.Delete(record); err != nil {
				log.Printf("price_override: delete failed: %v", err)
				return ErrorToast(e, http.StatusInternalServerError, "Failed to remove override")
			}
		}

		SetToast(e, "success", "Price override removed")
		return renderPriceRow(e, app, materialID, region)
	}
}
