package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cast"

	"constructly/services"
	"constructly/templates"
)

// decodeQuoteJSONField validates and normalizes one structured line-data
// field. Calculator rows are keyed by ID so results can be traced back to
// their input line; entries arriving without one get a fresh ID here.
func decodeQuoteJSONField(field, raw string) (any, error) {
	decode := func(dst any) (any, error) {
		if err := json.Unmarshal([]byte(raw), dst); err != nil {
			return nil, err
		}
		return dst, nil
	}

	switch field {
	case "concrete_rows":
		var rows []services.ConcreteRow
		if _, err := decode(&rows); err != nil {
			return nil, err
		}
		for i := range rows {
			if rows[i].ID == "" {
				rows[i].ID = uuid.NewString()
			}
		}
		return rows, nil
	case "walls":
		var walls []services.WallEntry
		if _, err := decode(&walls); err != nil {
			return nil, err
		}
		for i := range walls {
			if walls[i].ID == "" {
				walls[i].ID = uuid.NewString()
			}
		}
		return walls, nil
	case "painting":
		var specs []services.PaintingSpec
		if _, err := decode(&specs); err != nil {
			return nil, err
		}
		for i := range specs {
			if specs[i].ID == "" {
				specs[i].ID = uuid.NewString()
			}
		}
		return specs, nil
	case "roofing":
		var plans []services.RoofPlan
		if _, err := decode(&plans); err != nil {
			return nil, err
		}
		for i := range plans {
			if plans[i].ID == "" {
				plans[i].ID = uuid.NewString()
			}
		}
		return plans, nil
	case "finishes":
		var elements []services.FinishElement
		if _, err := decode(&elements); err != nil {
			return nil, err
		}
		for i := range elements {
			if elements[i].ID == "" {
				elements[i].ID = uuid.NewString()
			}
		}
		return elements, nil
	case "equipment":
		return decode(&[]services.EquipmentItem{})
	case "services":
		return decode(&[]services.ServiceItem{})
	case "subcontractors":
		return decode(&[]services.Subcontractor{})
	case "preliminaries":
		return decode(&[]services.PrelimSection{})
	case "percentages":
		return decode(&services.QuotePercentages{})
	}
	return nil, fmt.Errorf("unknown field %q", field)
}

// quoteJSONFieldNames lists the structured fields accepted from the edit
// form, in storage order.
var quoteJSONFieldNames = []string{
	"concrete_rows", "walls", "painting", "roofing", "finishes",
	"equipment", "services", "subcontractors", "preliminaries", "percentages",
}

// jsonFieldOrDefault returns the stored raw JSON for a field, or a sensible
// empty value for the form editor.
func jsonFieldOrDefault(record *core.Record, field, empty string) string {
	raw := record.GetString(field)
	if raw == "" || raw == "null" {
		return empty
	}
	return raw
}

func quoteEditFormData(record *core.Record) templates.QuoteFormData {
	data := templates.QuoteFormData{
		Action:        fmt.Sprintf("/quotes/%s/save", record.Id),
		Heading:       fmt.Sprintf("Edit %s", record.GetString("quote_number")),
		Title:         record.GetString("title"),
		ClientName:    record.GetString("client_name"),
		Region:        record.GetString("region"),
		ContractType:  record.GetString("contract_type"),
		Status:        record.GetString("status"),
		DistanceKm:    strconv.FormatFloat(record.GetFloat("distance_km"), 'f', -1, 64),
		PermitCost:    strconv.FormatFloat(record.GetFloat("permit_cost"), 'f', -1, 64),
		Regions:       services.RegionOptions,
		ContractTypes: services.ContractTypeOptions,
		Errors:        map[string]string{},
		IsEdit:        true,
	}
	data.ConcreteRows = jsonFieldOrDefault(record, "concrete_rows", "[]")
	data.Walls = jsonFieldOrDefault(record, "walls", "[]")
	data.Painting = jsonFieldOrDefault(record, "painting", "[]")
	data.Roofing = jsonFieldOrDefault(record, "roofing", "[]")
	data.Finishes = jsonFieldOrDefault(record, "finishes", "[]")
	data.Equipment = jsonFieldOrDefault(record, "equipment", "[]")
	data.Services = jsonFieldOrDefault(record, "services", "[]")
	data.Subcontractors = jsonFieldOrDefault(record, "subcontractors", "[]")
	data.Preliminaries = jsonFieldOrDefault(record, "preliminaries", "[]")
	data.Percentages = jsonFieldOrDefault(record, "percentages", "{}")
	return data
}

// HandleQuoteEdit renders the edit form with the stored line data.
func HandleQuoteEdit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		record, err := app.FindRecordById("quotes", quoteID)
		if err != nil {
			return e.String(http.StatusNotFound, "Quote not found")
		}

		data := quoteEditFormData(record)
		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.QuoteFormContent(data)
		} else {
			component = templates.QuoteFormPage(data)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleQuoteUpdate saves the edit form, recomputes the summary and
// redirects to the quote view.
func HandleQuoteUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		record, err := app.FindRecordById("quotes", quoteID)
		if err != nil {
			return e.String(http.StatusNotFound, "Quote not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		title := strings.TrimSpace(e.Request.FormValue("title"))
		if title == "" {
			data := quoteEditFormData(record)
			data.Errors["title"] = "Title is required"
			return templates.QuoteFormPage(data).Render(e.Request.Context(), e.Response)
		}
		record.Set("title", title)
		record.Set("client_name", strings.TrimSpace(e.Request.FormValue("client_name")))
		if region := e.Request.FormValue("region"); region != "" {
			record.Set("region", region)
		}
		if ct := e.Request.FormValue("contract_type"); ct == services.ContractFull || ct == services.ContractLaborOnly {
			record.Set("contract_type", ct)
		}
		if status := e.Request.FormValue("status"); status == "draft" || status == "final" {
			record.Set("status", status)
		}
		if v := e.Request.FormValue("distance_km"); v != "" {
			record.Set("distance_km", cast.ToFloat64(v))
		}
		if v := e.Request.FormValue("permit_cost"); v != "" {
			record.Set("permit_cost", cast.ToFloat64(v))
		}

		for _, name := range quoteJSONFieldNames {
			if !e.Request.Form.Has(name) {
				continue
			}
			raw := strings.TrimSpace(e.Request.FormValue(name))
			if raw == "" {
				continue
			}
			value, err := decodeQuoteJSONField(name, raw)
			if err != nil {
				data := quoteEditFormData(record)
				data.Errors[name] = fmt.Sprintf("Invalid %s data: %v", name, err)
				return templates.QuoteFormPage(data).Render(e.Request.Context(), e.Response)
			}
			// Stored as a raw JSON string so the recalculation reads the
			// same representation before and after save.
			normalized, err := json.Marshal(value)
			if err != nil {
				return e.String(http.StatusInternalServerError, "Failed to encode quote data")
			}
			record.Set(name, string(normalized))
		}

		if _, err := recalculateAndStore(app, record); err != nil {
			log.Printf("quote_update: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to save quote")
		}

		SetToast(e, "success", "Quote saved")
		return e.Redirect(http.StatusFound, fmt.Sprintf("/quotes/%s", record.Id))
	}
}
