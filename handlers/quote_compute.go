package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"constructly/services"
)

// quoteComputation bundles everything derived from one quote record: the
// priced works sections, the aggregated summary and any advisory warnings.
type quoteComputation struct {
	Export   services.ExportData
	Summary  services.QuoteSummary
	Totals   services.QuoteTotals
	Warnings []string
}

// unmarshalJSONField decodes a JSON record field into dst. Empty and null
// fields are skipped without error.
func unmarshalJSONField(record *core.Record, field string, dst any) error {
	raw := record.GetString(field)
	if raw == "" || raw == "null" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("field %s: %w", field, err)
	}
	return nil
}

// computeQuote runs the full calculation pipeline for a quote record: load
// the catalog and settings, decode the stored line data, run each works
// calculator, then fold everything into the aggregate summary.
func computeQuote(app *pocketbase.PocketBase, record *core.Record) (quoteComputation, error) {
	var comp quoteComputation

	catalog, err := LoadCatalog(app)
	if err != nil {
		return comp, err
	}
	settings, err := LoadSettings(app)
	if err != nil {
		return comp, err
	}

	region := record.GetString("region")

	var (
		concreteRows   []services.ConcreteRow
		walls          []services.WallEntry
		paintingSpecs  []services.PaintingSpec
		roofPlans      []services.RoofPlan
		finishElements []services.FinishElement
		equipment      []services.EquipmentItem
		serviceItems   []services.ServiceItem
		subcontractors []services.Subcontractor
		preliminaries  []services.PrelimSection
		percentages    services.QuotePercentages
	)
	fields := []struct {
		name string
		dst  any
	}{
		{"concrete_rows", &concreteRows},
		{"walls", &walls},
		{"painting", &paintingSpecs},
		{"roofing", &roofPlans},
		{"finishes", &finishElements},
		{"equipment", &equipment},
		{"services", &serviceItems},
		{"subcontractors", &subcontractors},
		{"preliminaries", &preliminaries},
		{"percentages", &percentages},
	}
	for _, f := range fields {
		if err := unmarshalJSONField(record, f.name, f.dst); err != nil {
			return comp, err
		}
	}

	concrete := services.CalcConcrete(concreteRows, catalog, region, services.DefaultConcreteSettings())
	masonry := services.CalcMasonry(walls, catalog, region, services.DefaultMasonrySettings())

	// Painting and finishes share the wastage setting, 10% when unset.
	wastage := services.FinishWastage(settings["finishes_wastage_pct"])
	paintPrices := catalog.PaintPrices(region)
	painting := services.CalcPaintingTotals(paintingSpecs, services.DefaultCoverageRates(), paintPrices, wastage)
	roofing := services.CalcRoofing(roofPlans, catalog, region, services.DefaultRoofSettings())
	finishes := services.CalcFinishes(finishElements, catalog, region, wastage)

	for _, rowErr := range concrete.Errors {
		comp.Warnings = append(comp.Warnings, fmt.Sprintf("Concrete %q: %v", rowErr.Name, rowErr.Err))
	}
	for _, finding := range masonry.Findings {
		comp.Warnings = append(comp.Warnings, finding.Message)
	}
	for _, finding := range painting.Findings {
		comp.Warnings = append(comp.Warnings, finding.Message)
	}
	for _, finding := range roofing.Findings {
		comp.Warnings = append(comp.Warnings, finding.Message)
	}
	if concrete.UnresolvedCount > 0 {
		comp.Warnings = append(comp.Warnings,
			fmt.Sprintf("%d concrete materials have no price and were costed at zero", concrete.UnresolvedCount))
	}

	var sections []services.ExportSection
	for _, section := range []services.ExportSection{
		services.ConcreteSection(concrete, catalog, region),
		services.MasonrySection(masonry, catalog, region),
		services.PaintingSection(painting, paintPrices),
		services.RoofingSection(roofing),
		services.FinishesSection(finishes),
	} {
		if len(section.Rows) > 0 {
			sections = append(sections, section)
		}
	}

	createdDate := ""
	if dt := record.GetDateTime("created"); !dt.IsZero() {
		createdDate = dt.Time().Format("02 Jan 2006")
	}

	comp.Export = services.ExportData{
		Title:       record.GetString("title"),
		QuoteNumber: record.GetString("quote_number"),
		ClientName:  record.GetString("client_name"),
		Region:      region,
		CreatedDate: createdDate,
		Sections:    sections,
	}

	comp.Summary = services.Recompute(services.QuoteInput{
		ContractType:   record.GetString("contract_type"),
		MaterialsCost:  comp.Export.MaterialsTotal(),
		Equipment:      equipment,
		Services:       serviceItems,
		Subcontractors: subcontractors,
		Preliminaries:  preliminaries,
		DistanceKm:     record.GetFloat("distance_km"),
		TransportBase:  settingFloat(settings, "transport_base", 0),
		TransportPerKm: settingFloat(settings, "transport_per_km", 0),
		PermitCost:     record.GetFloat("permit_cost"),
		Percentages:    percentages,
	})
	comp.Export.Summary = comp.Summary
	comp.Totals = services.BuildQuoteTotals(concrete, masonry, painting, roofing, finishes, preliminaries, comp.Summary)

	return comp, nil
}

// recalculateAndStore recomputes a quote and persists the summary and total
// back onto the record.
func recalculateAndStore(app *pocketbase.PocketBase, record *core.Record) (quoteComputation, error) {
	comp, err := computeQuote(app, record)
	if err != nil {
		return comp, err
	}
	record.Set("summary", comp.Summary)
	record.Set("element_totals", comp.Totals)
	record.Set("total_amount", comp.Summary.TotalAmount)
	if err := app.Save(record); err != nil {
		return comp, fmt.Errorf("save quote: %w", err)
	}
	return comp, nil
}
