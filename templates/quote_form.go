package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// QuoteFormData feeds both the create and edit forms. On edit, the JSON
// payload fields carry the stored line data for the client-side editor.
type QuoteFormData struct {
	Action       string // POST target
	Heading      string
	Title        string
	ClientName   string
	Region       string
	ContractType string
	Status       string
	DistanceKm   string
	PermitCost   string

	// Raw JSON payloads for the structured line editors.
	ConcreteRows   string
	Walls          string
	Painting       string
	Roofing        string
	Finishes       string
	Equipment      string
	Services       string
	Subcontractors string
	Preliminaries  string
	Percentages    string

	Regions       []string
	ContractTypes []string
	Errors        map[string]string
	IsEdit        bool
}

// QuoteFormPage renders the full create/edit page.
func QuoteFormPage(data QuoteFormData) templ.Component {
	return page(data.Heading, QuoteFormContent(data))
}

// QuoteFormContent renders the create/edit form fragment.
func QuoteFormContent(data QuoteFormData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<h1>%s</h1>
<form method="post" action="%s" class="quote-form">
<div class="form-group">
<label for="title">Title</label>
<input type="text" id="title" name="title" value="%s" required>
`, esc(data.Heading), esc(data.Action), esc(data.Title)); err != nil {
			return err
		}
		if err := fieldError(w, data.Errors, "title"); err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w, `</div>
<div class="form-group">
<label for="client_name">Client</label>
<input type="text" id="client_name" name="client_name" value="%s">
</div>
<div class="form-group">
<label for="region">Region</label>
<select id="region" name="region">`, esc(data.ClientName)); err != nil {
			return err
		}
		if err := selectOptions(w, data.Regions, data.Region); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `</select>
</div>
<div class="form-group">
<label for="contract_type">Contract Type</label>
<select id="contract_type" name="contract_type">`); err != nil {
			return err
		}
		if err := selectOptions(w, data.ContractTypes, data.ContractType); err != nil {
			return err
		}
		if err := fieldError(w, data.Errors, "contract_type"); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "</select>\n</div>\n"); err != nil {
			return err
		}

		if data.IsEdit {
			if err := writeEditFields(w, data); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `<div class="form-actions">
<button type="submit" class="btn btn-primary">Save</button>
<a href="/quotes" class="btn">Cancel</a>
</div>
</form>
`)
		return err
	})
}

// writeEditFields emits the edit-only inputs: status, transport, permits and
// the JSON line editors.
func writeEditFields(w io.Writer, data QuoteFormData) error {
	if _, err := fmt.Fprintf(w, `<div class="form-group">
<label for="status">Status</label>
<select id="status" name="status">`); err != nil {
		return err
	}
	if err := selectOptions(w, []string{"draft", "final"}, data.Status); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, `</select>
</div>
<div class="form-group">
<label for="distance_km">Transport Distance (km)</label>
<input type="number" step="0.1" id="distance_km" name="distance_km" value="%s">
</div>
<div class="form-group">
<label for="permit_cost">Permit Cost</label>
<input type="number" step="0.01" id="permit_cost" name="permit_cost" value="%s">
</div>
`, esc(data.DistanceKm), esc(data.PermitCost)); err != nil {
		return err
	}

	jsonFields := []struct {
		name, label, value string
	}{
		{"concrete_rows", "Concrete Elements", data.ConcreteRows},
		{"walls", "Walls", data.Walls},
		{"painting", "Painting", data.Painting},
		{"roofing", "Roofing", data.Roofing},
		{"finishes", "Finishes", data.Finishes},
		{"equipment", "Equipment", data.Equipment},
		{"services", "Services", data.Services},
		{"subcontractors", "Subcontractors", data.Subcontractors},
		{"preliminaries", "Preliminaries", data.Preliminaries},
		{"percentages", "Percentages", data.Percentages},
	}
	for _, f := range jsonFields {
		if _, err := fmt.Fprintf(w, `<div class="form-group json-editor" data-field="%s">
<label for="%s">%s</label>
<textarea id="%s" name="%s" rows="4">%s</textarea>
</div>
`, esc(f.name), esc(f.name), esc(f.label), esc(f.name), esc(f.name), esc(f.value)); err != nil {
			return err
		}
	}
	return nil
}
