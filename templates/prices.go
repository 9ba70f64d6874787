package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// PriceRow is one material on the price list with its effective price for
// the selected region.
type PriceRow struct {
	MaterialID         string
	Name               string
	Unit               string
	Category           string
	BaseFormatted      string
	EffectiveFormatted string
	HasOverride        bool
	OverrideValue      string
	Structured         bool // breakdown-priced materials have no scalar row
}

// PriceListData feeds the regional price list page.
type PriceListData struct {
	Region  string
	Regions []string
	Rows    []PriceRow
}

// PriceListPage renders the full price list page.
func PriceListPage(data PriceListData) templ.Component {
	return page("Material Prices", PriceListContent(data))
}

// PriceListContent renders the price list fragment. Each row carries an
// inline override form posting back to the same region.
func PriceListContent(data PriceListData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<div class="page-header">
<h1>Material Prices</h1>
<form method="get" action="/prices" class="region-picker">
<label for="region">Region</label>
<select id="region" name="region" onchange="this.form.submit()">`); err != nil {
			return err
		}
		if err := selectOptions(w, data.Regions, data.Region); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</select>
</form>
</div>
<table class="data-table">
<thead><tr><th>Material</th><th>Unit</th><th>Category</th><th class="num">Base</th><th class="num">Effective</th><th>Your Price</th></tr></thead>
<tbody>
`); err != nil {
			return err
		}

		for _, row := range data.Rows {
			if err := writePriceRow(w, data.Region, row); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</tbody>\n</table>\n")
		return err
	})
}

// PriceRowFragment renders a single price row for HTMX swaps after an
// override change.
func PriceRowFragment(region string, row PriceRow) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return writePriceRow(w, region, row)
	})
}

func writePriceRow(w io.Writer, region string, row PriceRow) error {
	if _, err := fmt.Fprintf(w, `<tr id="price-row-%s">
<td>%s</td>
<td>%s</td>
<td>%s</td>
<td class="num">%s</td>
<td class="num">%s</td>
<td>
`, esc(row.MaterialID), esc(row.Name), esc(row.Unit), esc(row.Category),
		esc(row.BaseFormatted), esc(row.EffectiveFormatted)); err != nil {
		return err
	}

	if row.Structured {
		if _, err := io.WriteString(w, `<span class="muted">catalog priced</span>`); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintf(w, `<form hx-post="/prices/%s/override" hx-target="#price-row-%s" hx-swap="outerHTML" class="override-form">
<input type="hidden" name="region" value="%s">
<input type="number" step="0.01" name="price" value="%s" placeholder="Override">
<button type="submit" class="btn btn-sm">Set</button>
`, esc(row.MaterialID), esc(row.MaterialID), esc(region), esc(row.OverrideValue)); err != nil {
			return err
		}
		if row.HasOverride {
			if _, err := fmt.Fprintf(w, `<button type="button" class="btn btn-sm" hx-delete="/prices/%s/override?region=%s" hx-target="#price-row-%s" hx-swap="outerHTML">Clear</button>
`, esc(row.MaterialID), esc(region), esc(row.MaterialID)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</form>"); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "\n</td>\n</tr>\n")
	return err
}
