package diag

import "svfmt/internal/source"

// Reporter — минимальный контракт получения диагностик от лексера и парсеров.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note)
}

// Emit forwards d to r; a nil reporter drops it.
func Emit(r Reporter, d Diagnostic) {
	if r != nil {
		r.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes)
	}
}

// Warn reports a SevWarning diagnostic without notes.
func Warn(r Reporter, code Code, primary source.Span, msg string) {
	Emit(r, New(SevWarning, code, primary, msg))
}

// BagReporter — адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r.Bag != nil {
		r.Bag.Add(Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary, Notes: notes})
	}
}
