package source

import (
	"bytes"
	"path/filepath"
	"sort"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// foldCRLF заменяет \r\n на \n; одиночные \r остаются, их трогает только
// форматтер внутри пробельных промежутков.
func foldCRLF(content []byte) ([]byte, bool) {
	if !bytes.Contains(content, []byte("\r\n")) {
		return content, false
	}
	return bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n")), true
}

// buildLineIndex records the offset of every '\n'.
func buildLineIndex(content []byte) []uint32 {
	idx := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	for off := 0; ; {
		i := bytes.IndexByte(content[off:], '\n')
		if i < 0 {
			return idx
		}
		off += i
		idx = append(idx, uint32(off)) //nolint:gosec // content length checked in add
		off++
	}
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// число '\n' строго перед off = номер строки - 1
	line := sort.Search(len(lineIdx), func(i int) bool { return lineIdx[i] >= off })
	var lineStart uint32
	if line > 0 {
		lineStart = lineIdx[line-1] + 1
	}
	return LineCol{Line: uint32(line) + 1, Col: off - lineStart + 1} //nolint:gosec // line <= len(lineIdx)
}

// normalizePath даёт единый вид путей в диагностиках и диффах.
func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
