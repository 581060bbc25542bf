package driver

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"svfmt/internal/cst"
	"svfmt/internal/diag"
	"svfmt/internal/dialect"
	"svfmt/internal/layout"
	"svfmt/internal/parser"
	"svfmt/internal/source"
	"svfmt/internal/tsparse"
)

// Language binds a parser to the layout table its tree kinds follow.
type Language struct {
	Name  string
	Table *layout.Table
	parse func(ctx context.Context, file source.FileID, src []byte, maxDiag int) (*cst.Node, *diag.Bag, error)
}

// Parse builds the tree of src.
func (l Language) Parse(ctx context.Context, file source.FileID, src []byte, maxDiag int) (*cst.Node, *diag.Bag, error) {
	return l.parse(ctx, file, src, maxDiag)
}

var (
	SystemVerilog = Language{
		Name:  "systemverilog",
		Table: layout.Verilog(),
		parse: func(_ context.Context, file source.FileID, src []byte, maxDiag int) (*cst.Node, *diag.Bag, error) {
			return parser.Verilog{Opts: parser.Options{MaxDiagnostics: maxDiag, File: file}}.Parse(src)
		},
	}
	C = Language{
		Name:  "c",
		Table: layout.C(),
		parse: func(ctx context.Context, file source.FileID, src []byte, maxDiag int) (*cst.Node, *diag.Bag, error) {
			return tsparse.C{Opts: tsparse.Options{MaxDiagnostics: maxDiag, File: file}}.ParseContext(ctx, src)
		},
	}
)

var languages = map[string]Language{
	".sv":  SystemVerilog,
	".svh": SystemVerilog,
	".v":   SystemVerilog,
	".vh":  SystemVerilog,
	".c":   C,
	".h":   C,
}

// LanguageFor picks the language by file extension.
func LanguageFor(path string) (Language, bool) {
	lang, ok := languages[strings.ToLower(filepath.Ext(path))]
	return lang, ok
}

// Extensions lists the handled file extensions, sorted.
func Extensions() []string {
	out := make([]string, 0, len(languages))
	for ext := range languages {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// DetectLanguage guesses the language of src, falling back to SystemVerilog.
func DetectLanguage(src []byte) Language {
	if dialect.Detect(src).Kind == dialect.C {
		return C
	}
	return SystemVerilog
}
