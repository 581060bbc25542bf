package diag

// Severity orders diagnostics; a formatter run never fails on anything below
// SevError.
type Severity uint8

const (
	SevInfo Severity = iota
	// SevWarning marks regions the formatter could not lay out and kept verbatim.
	SevWarning
	// SevError marks input the lexer could not tokenize.
	SevError
)

var severityNames = [...]string{
	SevInfo:    "info",
	SevWarning: "warning",
	SevError:   "error",
}

// String returns the lower-case label used in CLI and JSON output.
func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "unknown"
}
