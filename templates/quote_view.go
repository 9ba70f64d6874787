package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// QuoteViewRow is one formatted line in a works section.
type QuoteViewRow struct {
	Index       string
	Description string
	Unit        string
	Qty         string
	Rate        string
	Amount      string
}

// QuoteViewSection is a works section with its formatted subtotal.
type QuoteViewSection struct {
	Title    string
	Rows     []QuoteViewRow
	Subtotal string
}

// SummaryLine is one label/value pair in the cost summary.
type SummaryLine struct {
	Label string
	Value string
	Bold  bool
}

// QuoteViewData feeds the quote detail page.
type QuoteViewData struct {
	ID           string
	QuoteNumber  string
	Title        string
	ClientName   string
	Region       string
	ContractType string
	Status       string
	CreatedDate  string

	Sections []QuoteViewSection
	Elements []SummaryLine
	Summary  []SummaryLine
	Warnings []string
}

// QuoteViewPage renders the full quote detail page.
func QuoteViewPage(data QuoteViewData) templ.Component {
	return page(data.Title, QuoteViewContent(data))
}

// QuoteViewContent renders the quote detail fragment.
func QuoteViewContent(data QuoteViewData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<div class="page-header">
<div>
<h1>%s</h1>
<p class="subtitle">%s &middot; %s &middot; %s &middot; %s</p>
</div>
<div class="actions">
<a href="/quotes/%s/edit" class="btn">Edit</a>
<a href="/quotes/%s/export/excel" class="btn">Excel</a>
<a href="/quotes/%s/export/pdf" class="btn">PDF</a>
<a href="/quotes/%s/schedule" class="btn">Material Schedule</a>
</div>
</div>
`, esc(data.Title), esc(data.QuoteNumber), esc(data.ClientName), esc(data.Region),
			esc(data.CreatedDate), esc(data.ID), esc(data.ID), esc(data.ID), esc(data.ID)); err != nil {
			return err
		}

		for _, warning := range data.Warnings {
			if _, err := fmt.Fprintf(w, `<div class="alert alert-warning">%s</div>
`, esc(warning)); err != nil {
				return err
			}
		}

		for _, section := range data.Sections {
			if _, err := fmt.Fprintf(w, `<h2>%s</h2>
<table class="data-table">
<thead><tr><th>#</th><th>Description</th><th>Unit</th><th class="num">Qty</th><th class="num">Rate</th><th class="num">Amount</th></tr></thead>
<tbody>
`, esc(section.Title)); err != nil {
				return err
			}
			for _, row := range section.Rows {
				if _, err := fmt.Fprintf(w, `<tr><td>%s</td><td>%s</td><td>%s</td><td class="num">%s</td><td class="num">%s</td><td class="num">%s</td></tr>
`, esc(row.Index), esc(row.Description), esc(row.Unit), esc(row.Qty), esc(row.Rate), esc(row.Amount)); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, `<tr class="subtotal"><td colspan="5">Subtotal &mdash; %s</td><td class="num">%s</td></tr>
</tbody>
</table>
`, esc(section.Title), esc(section.Subtotal)); err != nil {
				return err
			}
		}

		if len(data.Elements) > 0 {
			if _, err := io.WriteString(w, `<h2>Measured Works by Element</h2>
<table class="summary-table">
<tbody>
`); err != nil {
				return err
			}
			for _, line := range data.Elements {
				cls := ""
				if line.Bold {
					cls = ` class="total"`
				}
				if _, err := fmt.Fprintf(w, `<tr%s><td>%s</td><td class="num">%s</td></tr>
`, cls, esc(line.Label), esc(line.Value)); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, "</tbody>\n</table>\n"); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, `<h2>Summary</h2>
<table class="summary-table">
<tbody>
`); err != nil {
			return err
		}
		for _, line := range data.Summary {
			cls := ""
			if line.Bold {
				cls = ` class="total"`
			}
			if _, err := fmt.Fprintf(w, `<tr%s><td>%s</td><td class="num">%s</td></tr>
`, cls, esc(line.Label), esc(line.Value)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</tbody>\n</table>\n")
		return err
	})
}
