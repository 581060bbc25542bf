package diag

import "svfmt/internal/source"

// Note points at a secondary location, e.g. where a verbatim region resumed.
type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Primary: primary, Message: msg}
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

// Retarget moves every span of diags into file. Diagnostics restored from the
// result cache were recorded against another FileSet.
func Retarget(diags []Diagnostic, file source.FileID) []Diagnostic {
	for i := range diags {
		diags[i].Primary.File = file
		for j := range diags[i].Notes {
			diags[i].Notes[j].Span.File = file
		}
	}
	return diags
}
