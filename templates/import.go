package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"constructly/services"
)

// CatalogImportData feeds the catalog import page through its three stages:
// upload, validation review and commit confirmation.
type CatalogImportData struct {
	Result     *services.ValidationResult
	RowsJSON   string // validated rows, carried to the commit step
	ErrorsJSON string // validation errors, carried to the report download
	Committed  bool
	Created    int
	Updated    int
}

// CatalogImportPage renders the full catalog import page.
func CatalogImportPage(data CatalogImportData) templ.Component {
	return page("Import Catalog", CatalogImportContent(data))
}

// CatalogImportContent renders the import fragment for the current stage.
func CatalogImportContent(data CatalogImportData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Import Catalog</h1>
<p>Upload a CSV or Excel file with columns: Name, Unit, Price, Category.
<a href="/catalog/import/template">Download template</a></p>
<form method="post" action="/catalog/import" enctype="multipart/form-data" class="upload-form">
<input type="file" name="file" accept=".csv,.xlsx" required>
<button type="submit" class="btn btn-primary">Validate</button>
</form>
`); err != nil {
			return err
		}

		if data.Committed {
			_, err := fmt.Fprintf(w, `<div class="alert alert-success">Imported %d new and updated %d existing materials.</div>
`, data.Created, data.Updated)
			return err
		}

		if data.Result == nil {
			return nil
		}

		if _, err := fmt.Fprintf(w, `<h2>Validation Results</h2>
<p>%d rows: %d valid, %d with errors.</p>
`, data.Result.TotalRows, data.Result.ValidRows, data.Result.ErrorRows); err != nil {
			return err
		}

		if len(data.Result.Errors) > 0 {
			if _, err := io.WriteString(w, `<table class="data-table">
<thead><tr><th>Row</th><th>Field</th><th>Message</th></tr></thead>
<tbody>
`); err != nil {
				return err
			}
			for _, e := range data.Result.Errors {
				if _, err := fmt.Fprintf(w, `<tr><td>%d</td><td>%s</td><td>%s</td></tr>
`, e.Row, esc(e.Field), esc(e.Message)); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, `</tbody>
</table>
<form method="post" action="/catalog/import/errors">
<input type="hidden" name="errors" value="%s">
<button type="submit" class="btn">Download Error Report</button>
</form>
`, esc(data.ErrorsJSON)); err != nil {
				return err
			}
		}

		if data.Result.ValidRows > 0 {
			if _, err := fmt.Fprintf(w, `<form method="post" action="/catalog/import/commit">
<input type="hidden" name="rows" value="%s">
<button type="submit" class="btn btn-primary">Import %d Valid Rows</button>
</form>
`, esc(data.RowsJSON), data.Result.ValidRows); err != nil {
				return err
			}
		}
		return nil
	})
}
