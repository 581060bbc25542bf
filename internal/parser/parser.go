package parser

import (
	"fmt"

	"fortio.org/safecast"

	"svfmt/internal/cst"
	"svfmt/internal/diag"
	"svfmt/internal/lexer"
	"svfmt/internal/source"
	"svfmt/internal/token"
)

// maxDepth bounds recursion on pathological nesting; deeper input ends up in
// an ERROR node instead of a stack overflow.
const maxDepth = 512

type Options struct {
	MaxDiagnostics int // 0 — без лимита
	File           source.FileID
}

// Verilog is the built-in SystemVerilog/Verilog parser.
type Verilog struct {
	Opts Options
}

var _ cst.Parser = Verilog{}

// Parse lexes and parses src. Syntax errors never fail the call: the
// offending items become ERROR nodes and are reported in the bag.
func (v Verilog) Parse(src []byte) (*cst.Node, *diag.Bag, error) {
	srcLen, err := safecast.Conv[uint32](len(src))
	if err != nil {
		return nil, nil, fmt.Errorf("parser: source too large: %w", err)
	}
	bag := diag.NewBag(v.Opts.MaxDiagnostics)
	rep := diag.NewDedupReporter(diag.BagReporter{Bag: bag})

	file := &source.File{ID: v.Opts.File, Content: src}
	toks := lexer.Tokenize(file, lexer.Options{Reporter: rep})

	p := Parser{src: src, file: v.Opts.File, rep: rep}
	for _, tok := range toks {
		if tok.IsExtra() {
			p.extras = append(p.extras, tok)
		} else {
			p.toks = append(p.toks, tok)
		}
	}

	root := p.parseSourceFile(srcLen)
	insertExtras(root, p.extras, p.leafOf)
	bag.Sort()
	return root, bag, nil
}

// Parse is a shortcut for Verilog{}.Parse.
func Parse(src []byte) (*cst.Node, *diag.Bag, error) {
	return Verilog{}.Parse(src)
}

// Parser — состояние парсера на один файл
type Parser struct {
	src    []byte
	file   source.FileID
	toks   []token.Token // значимые токены, последний — EOF
	extras []token.Token // комментарии и директивы
	pos    int
	depth  int
	rep    diag.Reporter
}

func (p *Parser) parseSourceFile(srcLen uint32) *cst.Node {
	root := &cst.Node{Kind: "source_file", Named: true, Start: 0, End: srcLen}
	for !p.atEOF() {
		root.Children = append(root.Children, p.parseItemOrError())
	}
	return root
}
