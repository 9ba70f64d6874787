package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"
)

// ValidationError represents a single field-level error on one row.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult is returned after parsing and validating an uploaded file.
type ValidationResult struct {
	TotalRows  int                 `json:"total_rows"`
	ValidRows  int                 `json:"valid_rows"`
	ErrorRows  int                 `json:"error_rows"`
	Errors     []ValidationError   `json:"errors"`
	ParsedRows []map[string]string `json:"-"`
	FileName   string              `json:"-"`
}

// catalogImportColumns maps accepted header labels to field keys.
var catalogImportColumns = map[string]string{
	"name":     "name",
	"material": "name",
	"unit":     "unit",
	"uom":      "unit",
	"price":    "price",
	"rate":     "price",
	"category": "category",
}

// parseCSV reads a CSV file and returns headers + data rows.
func parseCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	headers := allRows[0]
	dataRows := allRows[1:]
	return headers, dataRows, nil
}

// parseExcel reads an xlsx file and returns headers + data rows from the first sheet.
func parseExcel(file multipart.File) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	headers := rows[0]
	dataRows := rows[1:]
	return headers, dataRows, nil
}

// mapCatalogHeaders maps uploaded column headers to catalog field keys.
// Returns an ordered list of field keys (one per column, "" for unrecognized).
func mapCatalogHeaders(headers []string) []string {
	mapped := make([]string, len(headers))
	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		norm = strings.TrimSuffix(norm, " *")
		norm = strings.TrimSpace(norm)
		mapped[i] = catalogImportColumns[norm]
	}
	return mapped
}

// ValidateCatalogFile parses and validates an uploaded material price file.
// Accepted columns: Name (required), Unit, Price (required, non-negative
// number), Category.
func ValidateCatalogFile(file multipart.File, fileName string) (*ValidationResult, error) {
	var headers []string
	var dataRows [][]string
	var err error

	lowerName := strings.ToLower(fileName)
	if strings.HasSuffix(lowerName, ".csv") {
		headers, dataRows, err = parseCSV(file)
	} else if strings.HasSuffix(lowerName, ".xlsx") {
		headers, dataRows, err = parseExcel(file)
	} else {
		return nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
	if err != nil {
		return nil, err
	}

	columnKeys := mapCatalogHeaders(headers)

	result := &ValidationResult{
		TotalRows:  len(dataRows),
		FileName:   fileName,
		ParsedRows: make([]map[string]string, 0, len(dataRows)),
	}

	for rowIdx, row := range dataRows {
		rowNum := rowIdx + 2 // 1-indexed, +1 for header row
		rowData := make(map[string]string)
		var rowErrors []ValidationError

		for colIdx, key := range columnKeys {
			if key == "" {
				continue
			}
			value := ""
			if colIdx < len(row) {
				value = strings.TrimSpace(row[colIdx])
			}
			rowData[key] = value
		}

		if rowData["name"] == "" {
			rowErrors = append(rowErrors, ValidationError{
				Row:     rowNum,
				Field:   "Name",
				Message: "Name is required",
			})
		}
		if rowData["price"] == "" {
			rowErrors = append(rowErrors, ValidationError{
				Row:     rowNum,
				Field:   "Price",
				Message: "Price is required",
			})
		} else if price, convErr := cast.ToFloat64E(rowData["price"]); convErr != nil {
			rowErrors = append(rowErrors, ValidationError{
				Row:     rowNum,
				Field:   "Price",
				Message: fmt.Sprintf("Price %q is not a number", rowData["price"]),
			})
		} else if price < 0 {
			rowErrors = append(rowErrors, ValidationError{
				Row:     rowNum,
				Field:   "Price",
				Message: "Price must not be negative",
			})
		}

		if len(rowErrors) > 0 {
			result.Errors = append(result.Errors, rowErrors...)
		}
		result.ParsedRows = append(result.ParsedRows, rowData)
	}

	// Compute summary
	errorRowSet := make(map[int]bool)
	for _, e := range result.Errors {
		errorRowSet[e.Row] = true
	}
	result.ErrorRows = len(errorRowSet)
	result.ValidRows = result.TotalRows - result.ErrorRows

	return result, nil
}

// ImportCatalogRows writes validated rows into material_base_prices. Rows
// whose name matches an existing record update that record's price and unit;
// the rest create new records. Returns created and updated counts.
func ImportCatalogRows(app *pocketbase.PocketBase, rows []map[string]string) (created, updated int, err error) {
	col, err := app.FindCollectionByNameOrId("material_base_prices")
	if err != nil {
		return 0, 0, fmt.Errorf("find material_base_prices: %w", err)
	}

	for _, rowData := range rows {
		name := rowData["name"]
		if name == "" {
			continue
		}
		price := cast.ToFloat64(rowData["price"])

		existing, _ := app.FindRecordsByFilter(col,
			"name = {:name}", "", 1, 0,
			map[string]any{"name": name},
		)

		var record *core.Record
		if len(existing) > 0 {
			record = existing[0]
			updated++
		} else {
			record = core.NewRecord(col)
			record.Set("name", name)
			created++
		}
		record.Set("price", price)
		if unit := rowData["unit"]; unit != "" {
			record.Set("unit", unit)
		}
		if category := rowData["category"]; category != "" {
			record.Set("category", category)
		}
		if err := app.Save(record); err != nil {
			return created, updated, fmt.Errorf("save material %q: %w", name, err)
		}
	}
	return created, updated, nil
}

// GenerateCatalogTemplate creates a starter .xlsx with the accepted import
// columns and one sample row. Starred headers survive the validator's
// header mapping.
func GenerateCatalogTemplate() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Materials"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1E40AF"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})

	f.SetCellValue(sheet, "A1", "Name *")
	f.SetCellValue(sheet, "B1", "Unit")
	f.SetCellValue(sheet, "C1", "Price *")
	f.SetCellValue(sheet, "D1", "Category")
	f.SetCellStyle(sheet, "A1", "D1", headerStyle)
	f.SetColWidth(sheet, "A", "A", 28)
	f.SetColWidth(sheet, "B", "B", 10)
	f.SetColWidth(sheet, "C", "C", 12)
	f.SetColWidth(sheet, "D", "D", 18)

	f.SetCellValue(sheet, "A2", "Cement")
	f.SetCellValue(sheet, "B2", "bag")
	f.SetCellValue(sheet, "C2", 800)
	f.SetCellValue(sheet, "D2", "Binders")

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write template: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateErrorReport creates a downloadable .xlsx file from validation errors.
func GenerateErrorReport(errors []ValidationError) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Errors"
	defaultSheet := f.GetSheetName(0)
	f.SetSheetName(defaultSheet, sheet)

	// Header style
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DC2626"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})

	// Headers
	f.SetCellValue(sheet, "A1", "Row #")
	f.SetCellValue(sheet, "B1", "Field")
	f.SetCellValue(sheet, "C1", "Error")
	f.SetCellStyle(sheet, "A1", "C1", headerStyle)
	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 22)
	f.SetColWidth(sheet, "C", "C", 55)

	for i, e := range errors {
		row := fmt.Sprintf("%d", i+2)
		f.SetCellValue(sheet, "A"+row, e.Row)
		f.SetCellValue(sheet, "B"+row, e.Field)
		f.SetCellValue(sheet, "C"+row, e.Message)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write error report: %w", err)
	}
	return buf.Bytes(), nil
}
