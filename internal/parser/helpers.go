package parser

import (
	"svfmt/internal/cst"
	"svfmt/internal/diag"
	"svfmt/internal/source"
	"svfmt/internal/token"
)

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

// peekN смотрит на n токенов вперёд, EOF за концом
func (p *Parser) peekN(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) atEOF() bool {
	return p.peek().Kind == token.EOF
}

// at проверяет ключевое слово или оператор по тексту
func (p *Parser) at(texts ...string) bool {
	tok := p.peek()
	if tok.Kind != token.Keyword && tok.Kind != token.Op {
		return false
	}
	for _, t := range texts {
		if tok.Text == t {
			return true
		}
	}
	return false
}

func (p *Parser) atKind(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atIdent() bool {
	return p.peek().IsIdent()
}

func (p *Parser) leafOf(tok token.Token) *cst.Node {
	n := &cst.Node{Start: tok.Span.Start, End: tok.Span.End}
	if k := tok.Kind.NodeKind(); k != "" {
		n.Kind = cst.Kind(k)
		n.Named = true
	} else {
		n.Kind = cst.Kind(tok.Text)
	}
	return n
}

// bump съедает текущий токен и возвращает лист
func (p *Parser) bump() *cst.Node {
	tok := p.peek()
	if tok.Kind != token.EOF {
		p.pos++
	}
	return p.leafOf(tok)
}

// accept съедает токен с данным текстом, если он есть
func (p *Parser) accept(text string) *cst.Node {
	if p.at(text) {
		return p.bump()
	}
	return nil
}

// expect требует токен с данным текстом; диагностику пишет вызывающий уровень
func (p *Parser) expect(text string) (*cst.Node, bool) {
	if p.at(text) {
		return p.bump(), true
	}
	return nil, false
}

func (p *Parser) expectIdent() (*cst.Node, bool) {
	if p.atIdent() {
		return p.bump(), true
	}
	return nil, false
}

// mk строит именованный узел, пропуская nil-детей
func mk(kind cst.Kind, kids ...*cst.Node) *cst.Node {
	filtered := kids[:0:0]
	for _, k := range kids {
		if k != nil {
			filtered = append(filtered, k)
		}
	}
	return cst.New(kind, filtered...)
}

func (p *Parser) enter() bool {
	p.depth++
	return p.depth <= maxDepth
}

func (p *Parser) leave() {
	p.depth--
}

func (p *Parser) span(start, end uint32) source.Span {
	return source.Span{File: p.file, Start: start, End: end}
}

func (p *Parser) warn(code diag.Code, sp source.Span, msg string) {
	diag.Warn(p.rep, code, sp, msg)
}
