package token

import (
	"svfmt/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// Is reports whether the token is the keyword or operator text.
func (t Token) Is(text string) bool {
	return (t.Kind == Keyword || t.Kind == Op) && t.Text == text
}

// IsExtra reports tokens that the parser skips: comments and directives.
func (t Token) IsExtra() bool {
	return t.Kind == Comment || t.Kind == Directive
}

// IsIdent reports identifier-like tokens that can name things.
func (t Token) IsIdent() bool {
	return t.Kind == Ident || t.Kind == MacroUsage
}

// IsLiteral reports whether the token is a number or string literal.
func (t Token) IsLiteral() bool {
	return t.Kind == Number || t.Kind == String
}

// IsAssignOp reports assignment operators, including nonblocking "<=".
func (t Token) IsAssignOp() bool {
	if t.Kind != Op {
		return false
	}
	_, ok := assignOps[t.Text]
	return ok
}

var assignOps = map[string]struct{}{
	"=": {}, "<=": {}, "+=": {}, "-=": {}, "*=": {}, "/=": {}, "%=": {},
	"&=": {}, "|=": {}, "^=": {}, "<<=": {}, ">>=": {}, "<<<=": {}, ">>>=": {},
}
