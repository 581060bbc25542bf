package source

type (
	FileID    uint32
	FileFlags uint8
)

const (
	// FileVirtual: содержимое не с диска (stdin, тесты).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File is one normalised input. Content is LF-only without a BOM and is what
// the parsers and the formatter see; Flags remember what AddBytes removed.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of '\n'
	Hash    [32]byte // sha256 of Content, keys the result cache
	Flags   FileFlags
}

// LineCol is a 1-based position; Col counts bytes.
type LineCol struct {
	Line uint32
	Col  uint32
}
