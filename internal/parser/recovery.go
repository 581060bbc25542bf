package parser

import (
	"fmt"

	"svfmt/internal/cst"
	"svfmt/internal/diag"
	"svfmt/internal/token"
)

// blockClosers end a body; item loops stop in front of them.
var blockClosers = map[string]bool{
	"end": true, "join": true, "join_any": true, "join_none": true, "endcase": true,
	"endmodule": true, "endinterface": true, "endprogram": true, "endpackage": true,
	"endclass": true, "endfunction": true, "endtask": true, "endgenerate": true,
	"endgroup": true, "endclocking": true, "}": true,
}

// itemStarters stop error recovery once at least one token was consumed.
var itemStarters = map[string]bool{
	"module": true, "macromodule": true, "interface": true, "program": true, "package": true,
	"class": true, "function": true, "task": true, "always": true, "always_comb": true,
	"always_ff": true, "always_latch": true, "initial": true, "final": true, "assign": true,
	"generate": true, "typedef": true, "import": true, "parameter": true, "localparam": true,
}

// verbatimBlocks are constructs the parser does not model. They are kept
// as one ERROR node from the opener through the matching closer.
var verbatimBlocks = map[string]string{
	"property": "endproperty", "sequence": "endsequence", "covergroup": "endgroup",
	"clocking": "endclocking", "specify": "endspecify", "config": "endconfig",
	"checker": "endchecker", "primitive": "endprimitive", "table": "endtable",
}

// atVerbatimBlock reports an opener of an unmodelled block. Named blocks
// need a following name so that "table[0] = 1" stays an assignment.
func (p *Parser) atVerbatimBlock() bool {
	tok := p.peek()
	if tok.Kind != token.Ident && tok.Kind != token.Keyword {
		return false
	}
	if _, ok := verbatimBlocks[tok.Text]; !ok {
		return false
	}
	next := p.peekN(1)
	if tok.Text == "specify" || tok.Text == "table" {
		return next.Kind != token.Op
	}
	return next.IsIdent()
}

func (p *Parser) atBlockCloser() bool {
	tok := p.peek()
	return (tok.Kind == token.Keyword || tok.Kind == token.Op) && blockClosers[tok.Text]
}

// parseItemOrError parses one item; on failure it rewinds and wraps the
// region in an ERROR node. It always consumes at least one token.
func (p *Parser) parseItemOrError() *cst.Node {
	return p.orError(p.parseItem)
}

func (p *Parser) orError(parse func() (*cst.Node, bool)) *cst.Node {
	start, depth := p.pos, p.depth
	if n, ok := parse(); ok && p.pos > start {
		return n
	}
	p.pos, p.depth = start, depth
	return p.errorItem()
}

// parseBodyStatement parses the statement of if/loop/always bodies. It
// refuses to start at a closer so that a missing statement does not eat
// the enclosing block's end.
func (p *Parser) parseBodyStatement() (*cst.Node, bool) {
	if p.atEOF() || p.atBlockCloser() {
		return nil, false
	}
	return p.parseItemOrError(), true
}

func (p *Parser) errorItem() *cst.Node {
	first := p.peek()
	var kids []*cst.Node

	if closer, ok := verbatimBlocks[first.Text]; ok && p.atVerbatimBlock() {
		kids = append(kids, p.bump())
		for !p.atEOF() {
			tok := p.peek()
			kids = append(kids, p.bump())
			if tok.Text == closer {
				break
			}
		}
		if p.at(":") && p.peekN(1).IsIdent() {
			kids = append(kids, p.bump(), p.bump())
		}
	} else {
		depth := 0
		for !p.atEOF() {
			tok := p.peek()
			isWord := tok.Kind == token.Keyword || tok.Kind == token.Op
			if len(kids) > 0 && depth == 0 && isWord && (blockClosers[tok.Text] || itemStarters[tok.Text]) {
				break
			}
			kids = append(kids, p.bump())
			if isWord {
				switch tok.Text {
				case "(", "[", "{", "'{", "begin", "fork", "case", "casex", "casez", "generate":
					depth++
				case ")", "]", "}", "end", "join", "join_any", "join_none", "endcase", "endgenerate":
					if depth > 0 {
						depth--
					}
				case ";":
					if depth == 0 {
						return p.finishError(first, kids)
					}
				}
			}
		}
	}
	return p.finishError(first, kids)
}

func (p *Parser) finishError(first token.Token, kids []*cst.Node) *cst.Node {
	if len(kids) == 0 {
		// только EOF: пустой ERROR нулевой ширины
		return &cst.Node{Kind: cst.KindError, Named: true, Start: first.Span.Start, End: first.Span.Start}
	}
	n := mk(cst.KindError, kids...)
	p.warn(diag.SynUnparseable, p.span(n.Start, n.End),
		fmt.Sprintf("cannot parse construct starting with %q; kept verbatim", first.Text))
	return n
}
