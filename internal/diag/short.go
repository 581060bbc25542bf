package diag

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"svfmt/internal/source"
)

type shortLine struct {
	path     string
	pos      source.LineCol
	severity string
	code     string
	msg      string
}

// FormatShort renders one line per diagnostic ("warning SYN2007 a.sv:3:1 msg"),
// sorted by position. Notes become "note" lines when includeNotes is set.
// Spans whose file is unknown to fs are skipped.
func FormatShort(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil {
		return ""
	}
	var lines []shortLine
	add := func(sp source.Span, sev string, d *Diagnostic, msg string) {
		f := fs.Get(sp.File)
		if f == nil {
			return
		}
		lines = append(lines, shortLine{
			path:     f.Path,
			pos:      f.Position(sp.Start),
			severity: sev,
			code:     d.Code.ID(),
			msg:      oneLine(msg),
		})
	}
	for i := range diags {
		d := &diags[i]
		add(d.Primary, d.Severity.String(), d, d.Message)
		if includeNotes {
			for _, n := range d.Notes {
				add(n.Span, "note", d, n.Msg)
			}
		}
	}

	slices.SortStableFunc(lines, func(a, b shortLine) int {
		return cmp.Or(
			strings.Compare(a.path, b.path),
			cmp.Compare(a.pos.Line, b.pos.Line),
			cmp.Compare(a.pos.Col, b.pos.Col),
			strings.Compare(a.severity, b.severity),
			strings.Compare(a.code, b.code),
			strings.Compare(a.msg, b.msg),
		)
	})

	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = fmt.Sprintf("%s %s %s:%d:%d %s", l.severity, l.code, l.path, l.pos.Line, l.pos.Col, l.msg)
	}
	return strings.Join(out, "\n")
}

func oneLine(msg string) string {
	return strings.TrimSpace(strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(msg))
}
