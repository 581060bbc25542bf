package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"svfmt/internal/diag"
	"svfmt/internal/source"
)

// PrettyOpts configures Pretty.
type PrettyOpts struct {
	Color     bool
	Context   int // строк исходника до и после основной
	Paths     PathStyle
	ShowNotes bool
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждой печатает
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем строку исходника с подчёркиванием ^~~~ по Span и, если включено,
// Notes в том же формате. diags ожидаются отсортированными.
func Pretty(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	if fs == nil {
		return
	}
	p := printer{w: w, fs: fs, opts: opts}
	for i := range diags {
		p.diagnostic(&diags[i])
	}
}

type printer struct {
	w    io.Writer
	fs   *source.FileSet
	opts PrettyOpts
}

func (p *printer) paint(attrs []color.Attribute, s string) string {
	if !p.opts.Color {
		return s
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s)
}

func severityAttrs(sev diag.Severity) []color.Attribute {
	switch sev {
	case diag.SevError:
		return []color.Attribute{color.FgRed, color.Bold}
	case diag.SevWarning:
		return []color.Attribute{color.FgYellow, color.Bold}
	default:
		return []color.Attribute{color.FgCyan, color.Bold}
	}
}

func (p *printer) diagnostic(d *diag.Diagnostic) {
	f := p.fs.Get(d.Primary.File)
	if f == nil {
		return
	}
	start := f.Position(d.Primary.Start)
	fmt.Fprintf(p.w, "%s:%d:%d: %s %s: %s\n",
		p.paint([]color.Attribute{color.Bold}, p.opts.Paths.apply(f.Path)),
		start.Line, start.Col,
		p.paint(severityAttrs(d.Severity), strings.ToUpper(d.Severity.String())),
		d.Code.ID(), d.Message)
	p.excerpt(f, d.Primary, severityAttrs(d.Severity))

	if !p.opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		nf := p.fs.Get(n.Span.File)
		if nf == nil {
			continue
		}
		pos := nf.Position(n.Span.Start)
		fmt.Fprintf(p.w, "  %s %s:%d:%d: %s\n",
			p.paint([]color.Attribute{color.FgCyan}, "note:"),
			p.opts.Paths.apply(nf.Path), pos.Line, pos.Col, n.Msg)
	}
}

// excerpt prints the primary line with its neighbours and underlines the
// span on the first line it touches.
func (p *printer) excerpt(f *source.File, span source.Span, attrs []color.Attribute) {
	if len(f.Content) == 0 {
		return
	}
	start, end := f.Position(span.Start), f.Position(span.End)
	ctx := uint32(max(p.opts.Context, 0)) //nolint:gosec // clamped above
	first := uint32(1)
	if start.Line > ctx {
		first = start.Line - ctx
	}
	last := min(start.Line+ctx, f.LineCount())
	gutter := len(fmt.Sprint(last))

	for line := first; line <= last; line++ {
		text := f.GetLine(line)
		text = strings.TrimRight(text, "\r\n")
		fmt.Fprintf(p.w, " %*d | %s\n", gutter, line, text)
		if line != start.Line {
			continue
		}
		col := int(start.Col) - 1
		width := 1
		if end.Line == start.Line && end.Col > start.Col {
			width = int(end.Col - start.Col)
		}
		pad := runewidth.StringWidth(prefix(text, col))
		under := runewidth.StringWidth(prefix(text[min(col, len(text)):], width))
		under = max(under, 1)
		marker := "^" + strings.Repeat("~", under-1)
		fmt.Fprintf(p.w, " %s | %s%s\n", strings.Repeat(" ", gutter), strings.Repeat(" ", pad), p.paint(attrs, marker))
	}
}

// prefix returns the first n bytes of s, clamped.
func prefix(s string, n int) string {
	if n > len(s) {
		n = len(s)
	}
	if n < 0 {
		n = 0
	}
	return strings.ReplaceAll(s[:n], "\t", "    ")
}
