package services

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Contingency applied to the material schedule subtotal.
const scheduleContingencyPct = 0.05

// Schedule line types. Subheaders and notes carry no pricing.
const (
	ScheduleTypeItem      = "item"
	ScheduleTypeSubheader = "subheader"
	ScheduleTypeNote      = "note"
)

// ScheduleLine is one line of the material schedule.
type ScheduleLine struct {
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Unit        string  `json:"unit,omitempty"`
	Quantity    float64 `json:"quantity,omitempty"`
	Rate        float64 `json:"rate,omitempty"`
	Amount      float64 `json:"amount,omitempty"`
}

// ScheduleSection groups schedule lines under a works title.
type ScheduleSection struct {
	Title string         `json:"title"`
	Items []ScheduleLine `json:"items"`
}

// ScheduleSummary holds the schedule arithmetic.
type ScheduleSummary struct {
	SubTotal          float64 `json:"sub_total"`
	ContingencyAmount float64 `json:"contingency_amount"`
	GrandTotal        float64 `json:"grand_total"`
}

// Schedule is the material schedule document exchanged with the formatting
// model and fed to the document generators.
type Schedule struct {
	Project  string            `json:"project"`
	Sections []ScheduleSection `json:"sections"`
	Summary  ScheduleSummary   `json:"summary"`
}

// Recompute replaces the summary with arithmetic derived from the priced
// lines. Subheaders and notes contribute nothing.
func (s *Schedule) Recompute() {
	var sub float64
	for _, section := range s.Sections {
		for _, line := range section.Items {
			if line.Type != ScheduleTypeItem {
				continue
			}
			sub += sanitizeQty(line.Amount)
		}
	}
	s.Summary = ScheduleSummary{
		SubTotal:          sub,
		ContingencyAmount: sub * scheduleContingencyPct,
		GrandTotal:        sub + sub*scheduleContingencyPct,
	}
}

// BuildSchedule converts export data into a material schedule. Every number
// comes from the calculators; nothing here is estimated.
func BuildSchedule(project string, data ExportData) Schedule {
	schedule := Schedule{Project: project}
	for _, section := range data.Sections {
		if len(section.Rows) == 0 {
			continue
		}
		out := ScheduleSection{Title: section.Title}
		for _, r := range section.Rows {
			out.Items = append(out.Items, ScheduleLine{
				Type:        ScheduleTypeItem,
				Description: r.Description,
				Unit:        r.Unit,
				Quantity:    r.Qty,
				Rate:        r.Rate,
				Amount:      r.Amount,
			})
		}
		schedule.Sections = append(schedule.Sections, out)
	}
	schedule.Recompute()
	return schedule
}

// ParseSchedule reads a schedule from model output. The model wraps JSON in
// markdown fences more often than not, so those are stripped first. The
// returned summary is always recomputed from the lines: the model's wording
// is trusted, its arithmetic never.
func ParseSchedule(text string) (Schedule, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	// Tolerate prose around the document by cutting to the outermost braces.
	if start := strings.Index(cleaned, "{"); start > 0 {
		cleaned = cleaned[start:]
	}
	if end := strings.LastIndex(cleaned, "}"); end >= 0 && end < len(cleaned)-1 {
		cleaned = cleaned[:end+1]
	}

	var schedule Schedule
	if err := json.Unmarshal([]byte(cleaned), &schedule); err != nil {
		return Schedule{}, fmt.Errorf("parse schedule: %w", err)
	}
	schedule.Recompute()
	return schedule, nil
}

// SchedulePrompt builds the formatting prompt for the model. The schedule's
// own numbers are embedded as the authoritative source.
func SchedulePrompt(schedule Schedule) (string, error) {
	payload, err := json.MarshalIndent(schedule, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal schedule: %w", err)
	}

	var b strings.Builder
	b.WriteString("ACT AS AN EXPERT QUANTITY SURVEYOR. Reformat this material schedule professionally.\n\n")
	b.WriteString("SCHEDULE DATA:\n")
	b.Write(payload)
	b.WriteString("\n\nSTRICT REQUIREMENTS:\n")
	b.WriteString("- Use ONLY the data provided - NO estimation or mock data\n")
	b.WriteString("- Keep every quantity, rate and amount exactly as given\n")
	b.WriteString("- Use professional construction terminology\n")
	b.WriteString("- Follow Kenyan construction standards\n")
	b.WriteString("- You may add lines with type \"subheader\" or \"note\" for readability\n")
	b.WriteString("- Return VALID JSON only, in the same structure as the input, no other text\n")
	return b.String(), nil
}
