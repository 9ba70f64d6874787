package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pocketbase/pocketbase/core"

	"constructly/testhelpers"
)

func TestHandleQuoteView_ShowsSectionsAndSummary(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	seedPricingData(t, app)
	quote := testhelpers.CreateTestQuote(t, app, "View Quote")
	quote.Set("quote_number", "Q-2026-0007")
	quote.Set("concrete_rows", `[{"Name":"Slab","Element":"slab","Length":10,"Width":5,"Height":0.15,"Mix":"1:2:4","Count":1}]`)
	quote.Set("percentages", `{"Labor":30,"Profit":10}`)
	if err := app.Save(quote); err != nil {
		t.Fatalf("save quote: %v", err)
	}

	handler := HandleQuoteView(app)
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/quotes/%s", quote.Id), nil)
	req.SetPathValue("id", quote.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"Q-2026-0007", "Concrete Works", "Cement", "Labor", "Grand Total",
		"B Superstructure", "Measured Works Total")
}

func TestHandleQuoteView_PaintingWastageFromSettings(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quote := testhelpers.CreateTestQuote(t, app, "Paint Quote")
	quote.Set("painting", `[{"ID":"p1","Location":"Walls","SurfaceArea":132,"Finishing":{"Category":"emulsion","Subtype":"vinyl-matt","Coats":2}}]`)
	if err := app.Save(quote); err != nil {
		t.Fatalf("save quote: %v", err)
	}

	render := func() string {
		handler := HandleQuoteView(app)
		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/quotes/%s", quote.Id), nil)
		req.SetPathValue("id", quote.Id)
		rec := httptest.NewRecorder()
		e := newTestRequestEvent(app, req, rec)
		if err := handler(e); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		return rec.Body.String()
	}

	// 132 m² x 2 coats at 11 m²/L needs 24 L net; the default 10% wastage
	// purchases 26.5 L.
	testhelpers.AssertHTMLContains(t, render(), "Finishing paint", "26.50")

	// A stored wastage setting replaces the default: 24 L at 22% rounds up
	// to 29.5 L purchased.
	col, err := app.FindCollectionByNameOrId("settings")
	if err != nil {
		t.Fatalf("settings collection: %v", err)
	}
	setting := core.NewRecord(col)
	setting.Set("key", "finishes_wastage_pct")
	setting.Set("value", 22)
	if err := app.Save(setting); err != nil {
		t.Fatalf("save setting: %v", err)
	}
	testhelpers.AssertHTMLContains(t, render(), "29.50")
}

func TestHandleQuoteView_RoofingFeedsElementG(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	seedPricingData(t, app)
	testhelpers.CreateTestMaterial(t, app, "Roofing Sheets", "pc", 1100)
	quote := testhelpers.CreateTestQuote(t, app, "Roof Quote")
	quote.Set("roofing", `[{"ID":"r1","Name":"Main house","LengthM":10,"WidthM":8,"ExternalPerimeterM":36}]`)
	if err := app.Save(quote); err != nil {
		t.Fatalf("save quote: %v", err)
	}

	handler := HandleQuoteView(app)
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/quotes/%s", quote.Id), nil)
	req.SetPathValue("id", quote.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"Roofing Works", "Roofing sheets", "G Roofing")
}

func TestHandleQuoteView_EmptyQuote(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quote := testhelpers.CreateTestQuote(t, app, "Empty Quote")

	handler := HandleQuoteView(app)
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/quotes/%s", quote.Id), nil)
	req.SetPathValue("id", quote.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	// No works sections, but the summary still renders.
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "Empty Quote", "Summary", "Grand Total")
}

func TestHandleQuoteView_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleQuoteView(app)
	req := httptest.NewRequest(http.MethodGet, "/quotes/missing", nil)
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
