package diagfmt

import (
	"svfmt/internal/diag"
	"svfmt/internal/source"
)

// JSONOpts configures Build.
type JSONOpts struct {
	IncludePositions bool // add 1-based line/col next to the byte range
	IncludeNotes     bool
	Paths            PathStyle
}

type Position struct {
	Line uint32 `json:"line"`
	Col  uint32 `json:"col"`
}

// Location is a byte range [Start, End) of File, optionally resolved.
type Location struct {
	File  string    `json:"file"`
	Start uint32    `json:"start_byte"`
	End   uint32    `json:"end_byte"`
	From  *Position `json:"from,omitempty"`
	To    *Position `json:"to,omitempty"`
}

type Note struct {
	Message  string   `json:"message"`
	Location Location `json:"location"`
}

// Diagnostic is the JSON form of diag.Diagnostic.
type Diagnostic struct {
	Severity string   `json:"severity"`
	Code     string   `json:"code"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Location Location `json:"location"`
	Notes    []Note   `json:"notes,omitempty"`
}

// Build converts diags for encoding/json. Diagnostics of files unknown to fs
// are dropped.
func Build(diags []diag.Diagnostic, fs *source.FileSet, opts JSONOpts) []Diagnostic {
	if fs == nil {
		return nil
	}
	out := make([]Diagnostic, 0, len(diags))
	for _, d := range diags {
		loc, ok := locate(d.Primary, fs, opts)
		if !ok {
			continue
		}
		jd := Diagnostic{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Message:  d.Message,
			Location: loc,
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				if nloc, ok := locate(n.Span, fs, opts); ok {
					jd.Notes = append(jd.Notes, Note{Message: n.Msg, Location: nloc})
				}
			}
		}
		out = append(out, jd)
	}
	return out
}

func locate(span source.Span, fs *source.FileSet, opts JSONOpts) (Location, bool) {
	f := fs.Get(span.File)
	if f == nil {
		return Location{}, false
	}
	loc := Location{File: opts.Paths.apply(f.Path), Start: span.Start, End: span.End}
	if opts.IncludePositions {
		from, to := f.Position(span.Start), f.Position(span.End)
		loc.From = &Position{Line: from.Line, Col: from.Col}
		loc.To = &Position{Line: to.Line, Col: to.Col}
	}
	return loc, true
}
