package source

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileSet owns the normalised contents of every file of one run. A FileID is
// an index into it and never changes once issued.
type FileSet struct {
	files []File
}

func NewFileSet() *FileSet {
	return &FileSet{}
}

func (fileSet *FileSet) add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("file set overflow: %w", err))
	}
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(fmt.Errorf("%s: file too large for 32-bit offsets: %w", path, err))
	}
	fileSet.files = append(fileSet.files, File{
		ID:      FileID(n),
		Path:    normalizePath(path),
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	return FileID(n)
}

// Load reads path from disk and adds it through AddBytes.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- path comes from the command line
	if err != nil {
		return 0, err
	}
	return fileSet.AddBytes(path, content, 0), nil
}

// AddBytes strips a UTF-8 BOM and folds CRLF into LF before storing content;
// the flags record both so File.Restore can undo them on output.
func (fileSet *FileSet) AddBytes(path string, content []byte, flags FileFlags) FileID {
	if rest, ok := bytes.CutPrefix(content, utf8BOM); ok {
		content = rest
		flags |= FileHadBOM
	}
	if folded, ok := foldCRLF(content); ok {
		content = folded
		flags |= FileNormalizedCRLF
	}
	return fileSet.add(path, content, flags)
}

// AddVirtual stores content as is (tests, stdin already normalised).
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.add(name, content, FileVirtual)
}

// Get returns nil for an ID this set never issued.
func (fileSet *FileSet) Get(id FileID) *File {
	if int(id) >= len(fileSet.files) {
		return nil
	}
	return &fileSet.files[id]
}

// Resolve converts a span into line and column positions.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fileSet.Get(span.File)
	if f == nil {
		return LineCol{}, LineCol{}
	}
	return f.Position(span.Start), f.Position(span.End)
}

func (f *File) Position(off uint32) LineCol {
	return toLineCol(f.LineIdx, off)
}

// LineCount is the number of lines, counting a trailing line without '\n'.
func (f *File) LineCount() uint32 {
	return uint32(len(f.LineIdx)) + 1 //nolint:gosec // bounded by content length, checked in add
}

// Restore re-applies the line ending and BOM conventions the file was loaded
// with to content (typically the formatted output).
func (f *File) Restore(content []byte) []byte {
	out := content
	if f.Flags&FileNormalizedCRLF != 0 {
		out = bytes.ReplaceAll(out, []byte("\n"), []byte("\r\n"))
	}
	if f.Flags&FileHadBOM != 0 {
		out = append(append([]byte(nil), utf8BOM...), out...)
	}
	return out
}

// GetLine returns line n (1-based) without its '\n', or "" past the end.
func (f *File) GetLine(n uint32) string {
	if n == 0 || n > f.LineCount() {
		return ""
	}
	var start uint32
	if n > 1 {
		start = f.LineIdx[n-2] + 1
	}
	end := uint32(len(f.Content)) //nolint:gosec // checked in add
	if n-1 < uint32(len(f.LineIdx)) { //nolint:gosec // same
		end = f.LineIdx[n-1]
	}
	return string(f.Content[start:end])
}
