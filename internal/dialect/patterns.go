package dialect

import (
	"bytes"
	"fmt"
	"slices"

	"svfmt/internal/source"
)

var (
	cDirectives  = []string{"include", "define", "ifdef", "ifndef", "endif", "pragma", "if", "else", "undef"}
	svDirectives = []string{"include", "define", "ifdef", "ifndef", "endif", "timescale", "default_nettype", "else", "undef"}
)

// ObserveLine records preprocessor evidence for one source line: `#include`
// and friends vote for C, backtick directives for SystemVerilog.
func ObserveLine(e *Evidence, line []byte, span source.Span) {
	if e == nil {
		return
	}
	trimmed := bytes.TrimLeft(line, " \t")
	if len(trimmed) < 2 {
		return
	}
	switch trimmed[0] {
	case '#':
		word := leadingWord(bytes.TrimLeft(trimmed[1:], " \t"))
		if slices.Contains(cDirectives, word) {
			e.Add(Hint{Dialect: C, Score: 6, Reason: fmt.Sprintf("preprocessor line `#%s`", word), Span: span})
		}
	case '`':
		word := leadingWord(trimmed[1:])
		if slices.Contains(svDirectives, word) {
			e.Add(Hint{Dialect: SystemVerilog, Score: 6, Reason: fmt.Sprintf("compiler directive `%s", word), Span: span})
		}
	}
}

func leadingWord(b []byte) string {
	n := 0
	for n < len(b) && isIdentByte(b[n]) {
		n++
	}
	return string(b[:n])
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
