package dialect

import (
	"bytes"

	"svfmt/internal/source"
)

// Collect scans src for identifiers and preprocessor lines. Comments and
// string literals are not skipped; they rarely outvote real code.
func Collect(file source.FileID, src []byte) *Evidence {
	e := NewEvidence()
	var off uint32
	for line := range bytes.Lines(src) {
		n := uint32(len(line)) //nolint:gosec // buffers are far below 4 GiB
		ObserveLine(e, line, source.Span{File: file, Start: off, End: off + n})
		scanIdents(e, file, line, off)
		off += n
	}
	return e
}

func scanIdents(e *Evidence, file source.FileID, line []byte, base uint32) {
	for i := 0; i < len(line); {
		if !isIdentByte(line[i]) || ('0' <= line[i] && line[i] <= '9') {
			i++
			continue
		}
		j := i
		for j < len(line) && isIdentByte(line[j]) {
			j++
		}
		// `define и #include уже учтены ObserveLine
		if i == 0 || (line[i-1] != '`' && line[i-1] != '#') {
			RecordIdent(e, string(line[i:j]), source.Span{File: file, Start: base + uint32(i), End: base + uint32(j)}) //nolint:gosec // line offsets fit
		}
		i = j
	}
}

// Detect classifies src. Unknown is returned when nothing votes or the
// winner holds less than minConfidence of the total score.
func Detect(src []byte) Classification {
	c := Collect(0, src).Classify()
	if c.Kind != Unknown && c.Confidence < minConfidence {
		c.Kind = Unknown
	}
	return c
}

const minConfidence = 0.6
