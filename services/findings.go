package services

// Severity levels for validation findings.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Finding is an advisory validation result returned alongside a
// calculation. Findings never block the calculation from completing; the
// quote stays editable with whatever values were given.
type Finding struct {
	Field    string `json:"field"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// HasErrors reports whether any finding is error-level.
func HasErrors(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}
