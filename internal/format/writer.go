package format

import (
	"bytes"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"
)

// Writer accumulates formatted output with lazy indentation and tracks the
// display column of the current line.
type Writer struct {
	opt         Options
	buf         bytes.Buffer
	indentLevel int
	atLineStart bool
	col         int
}

func NewWriter(sizeHint int, opt Options) *Writer {
	w := &Writer{opt: opt.withDefaults(), atLineStart: true}
	w.buf.Grow(sizeHint)
	return w
}

func (w *Writer) Bytes() []byte { return w.buf.Bytes() }
func (w *Writer) Len() int      { return w.buf.Len() }

// Column is the display width of the current line, indentation included.
func (w *Writer) Column() int { return w.col }

// SetIndent sets the level used by the next line that starts.
func (w *Writer) SetIndent(level int) {
	if level < 0 {
		level = 0
	}
	w.indentLevel = level
}

func (w *Writer) writeIndent() {
	if !w.atLineStart {
		return
	}
	w.atLineStart = false
	if w.indentLevel == 0 {
		return
	}
	if w.opt.UseTabs {
		w.buf.WriteString(strings.Repeat("\t", w.indentLevel))
	} else {
		w.buf.WriteString(strings.Repeat(" ", w.indentLevel*w.opt.IndentWidth))
	}
	w.col += w.indentLevel * w.opt.IndentWidth
}

// WriteString writes s after any pending indentation. s may span lines; the
// column then restarts after its last newline.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	w.writeIndent()
	w.buf.WriteString(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		w.col = displayWidth(s[i+1:], w.opt.IndentWidth)
		return
	}
	w.col += displayWidth(s, w.opt.IndentWidth)
}

// Space writes one space unless the line is empty or already ends in one.
func (w *Writer) Space() {
	if w.atLineStart || w.buf.Len() == 0 {
		return
	}
	if b := w.buf.Bytes(); b[len(b)-1] == ' ' {
		return
	}
	w.buf.WriteByte(' ')
	w.col++
}

// Newline ends the current line.
func (w *Writer) Newline() {
	w.buf.WriteByte('\n')
	w.atLineStart = true
	w.col = 0
}

// Newlines ends the current line and adds blank empty lines.
func (w *Writer) Newlines(blank int) {
	w.Newline()
	for range blank {
		w.Newline()
	}
}

// displayWidth measures s in terminal cells; tabs count as tab cells.
func displayWidth(s string, tab int) int {
	if s == "" {
		return 0
	}
	s = norm.NFC.String(s)
	width := 0
	for _, part := range strings.Split(s, "\t") {
		width += runewidth.StringWidth(part)
	}
	return width + strings.Count(s, "\t")*tab
}
