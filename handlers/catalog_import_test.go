package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"constructly/testhelpers"
)

func multipartUpload(t *testing.T, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func TestHandleCatalogImportPage(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleCatalogImportPage(app)
	req := httptest.NewRequest(http.MethodGet, "/catalog/import", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "Import Catalog", "Validate")
}

func TestHandleCatalogTemplate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleCatalogTemplate(app)
	req := httptest.NewRequest(http.MethodGet, "/catalog/import/template", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "catalog-template.xlsx") {
		t.Errorf("unexpected content disposition %q", cd)
	}

	// The served template must pass the importer's own validation.
	body, contentType := multipartUpload(t, "catalog-template.xlsx", rec.Body.String())
	validate := HandleCatalogImportValidate(app)
	req = httptest.NewRequest(http.MethodPost, "/catalog/import", body)
	req.Header.Set("Content-Type", contentType)
	rec = httptest.NewRecorder()
	e = newTestRequestEvent(app, req, rec)
	if err := validate(e); err != nil {
		t.Fatalf("validate error: %v", err)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "1 valid", "Import 1 Valid Rows")
}

func TestHandleCatalogImportValidate_CSV(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	csv := "Name,Unit,Price,Category\nCement,bag,800,concrete\n,pc,15,masonry\nSand,m3,not-a-number,concrete\n"
	body, contentType := multipartUpload(t, "prices.csv", csv)

	handler := HandleCatalogImportValidate(app)
	req := httptest.NewRequest(http.MethodPost, "/catalog/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	// 3 rows: 1 valid, 2 with errors (missing name, bad price).
	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"Validation Results", "3 rows", "1 valid", "2 with errors", "Import 1 Valid Rows")
}

func TestHandleCatalogImportValidate_UnsupportedType(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	body, contentType := multipartUpload(t, "prices.pdf", "junk")

	handler := HandleCatalogImportValidate(app)
	req := httptest.NewRequest(http.MethodPost, "/catalog/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleCatalogImportCommit(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestMaterial(t, app, "Cement", "bag", 700)

	handler := HandleCatalogImportCommit(app)
	form := url.Values{}
	form.Set("rows", `[{"name":"Cement","unit":"bag","price":"820"},{"name":"River Sand","unit":"m³","price":"2500","category":"concrete"}]`)
	req := httptest.NewRequest(http.MethodPost, "/catalog/import/commit", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "Imported 1 new and updated 1 existing")

	cement, _ := app.FindRecordsByFilter("material_base_prices", "name = {:n}", "", 1, 0, map[string]any{"n": "Cement"})
	if len(cement) == 0 || cement[0].GetFloat("price") != 820 {
		t.Error("expected Cement price updated to 820")
	}
	sand, _ := app.FindRecordsByFilter("material_base_prices", "name = {:n}", "", 1, 0, map[string]any{"n": "River Sand"})
	if len(sand) == 0 {
		t.Error("expected River Sand to be created")
	}
}

func TestHandleCatalogErrorReport(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleCatalogErrorReport(app)
	form := url.Values{}
	form.Set("errors", `[{"row":2,"field":"price","message":"Price must be a number"}]`)
	req := httptest.NewRequest(http.MethodPost, "/catalog/import/errors", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "import-errors.xlsx") {
		t.Errorf("unexpected content disposition %q", cd)
	}
	if rec.Body.Len() == 0 {
		t.Error("expected non-empty report")
	}
}
