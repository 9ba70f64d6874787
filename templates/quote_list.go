package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// QuoteListItem is one row on the quotes index.
type QuoteListItem struct {
	ID             string
	QuoteNumber    string
	Title          string
	ClientName     string
	Region         string
	ContractType   string
	Status         string
	TotalFormatted string
	CreatedDate    string
}

// QuoteListData feeds the quotes index page.
type QuoteListData struct {
	Quotes []QuoteListItem
}

// QuoteListPage renders the full quotes index page.
func QuoteListPage(data QuoteListData) templ.Component {
	return page("Quotes", QuoteListContent(data))
}

// QuoteListContent renders just the quotes list fragment for HTMX swaps.
func QuoteListContent(data QuoteListData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="page-header">
<h1>Quotes</h1>
<a href="/quotes/create" class="btn btn-primary">New Quote</a>
</div>
`); err != nil {
			return err
		}

		if len(data.Quotes) == 0 {
			_, err := io.WriteString(w, `<p class="empty-state">No quotes yet. Create your first quote to get started.</p>`)
			return err
		}

		if _, err := io.WriteString(w, `<table class="data-table">
<thead><tr><th>Quote No</th><th>Title</th><th>Client</th><th>Region</th><th>Status</th><th class="num">Total</th><th>Created</th><th></th></tr></thead>
<tbody>
`); err != nil {
			return err
		}
		for _, q := range data.Quotes {
			if _, err := fmt.Fprintf(w, `<tr id="quote-row-%s">
<td>%s</td>
<td><a href="/quotes/%s">%s</a></td>
<td>%s</td>
<td>%s</td>
<td><span class="badge badge-%s">%s</span></td>
<td class="num">%s</td>
<td>%s</td>
<td>
<a href="/quotes/%s/edit" class="btn btn-sm">Edit</a>
<button class="btn btn-sm btn-danger" hx-delete="/quotes/%s" hx-confirm="Delete this quote?" hx-target="#quote-row-%s" hx-swap="outerHTML">Delete</button>
</td>
</tr>
`,
				esc(q.ID), esc(q.QuoteNumber), esc(q.ID), esc(q.Title), esc(q.ClientName),
				esc(q.Region), esc(q.Status), esc(q.Status), esc(q.TotalFormatted),
				esc(q.CreatedDate), esc(q.ID), esc(q.ID), esc(q.ID)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</tbody>\n</table>\n")
		return err
	})
}
