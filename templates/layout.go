// Package templates renders the server-side HTML pages. Components are
// hand-written templ.ComponentFunc values so handlers can render either a
// full page or just the content fragment for HTMX swaps.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// esc HTML-escapes a user-supplied string for safe interpolation.
func esc(s string) string {
	return templ.EscapeString(s)
}

// page wraps a content component in the full HTML shell with the top nav.
func page(title string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<script src="/static/htmx.min.js"></script>
<link rel="stylesheet" href="/static/app.css">
</head>
<body>
<nav class="topnav">
<a href="/quotes" class="brand">Constructly</a>
<a href="/quotes">Quotes</a>
<a href="/prices">Prices</a>
<a href="/catalog/import">Import Catalog</a>
</nav>
<div id="toast-container"></div>
<main id="content">
`, esc(title)); err != nil {
			return err
		}
		if err := content.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n</main>\n</body>\n</html>\n")
		return err
	})
}

// fieldError renders the validation message for a form field, if any.
func fieldError(w io.Writer, errors map[string]string, field string) error {
	msg, ok := errors[field]
	if !ok {
		return nil
	}
	_, err := fmt.Fprintf(w, `<p class="field-error">%s</p>`, esc(msg))
	return err
}

// selectOptions renders <option> tags, marking the selected value.
func selectOptions(w io.Writer, options []string, selected string) error {
	for _, opt := range options {
		sel := ""
		if opt == selected {
			sel = " selected"
		}
		if _, err := fmt.Fprintf(w, `<option value="%s"%s>%s</option>`, esc(opt), sel, esc(opt)); err != nil {
			return err
		}
	}
	return nil
}
