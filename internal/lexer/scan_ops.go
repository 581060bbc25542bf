package lexer

import (
	"svfmt/internal/token"
)

// Жадность: сначала 4-символьные, затем 3, 2 и 1.
var operators = [...][]string{
	{"<<<=", ">>>="},
	{"===", "!==", "==?", "!=?", "<<<", ">>>", "<<=", ">>=", "<->", "->>", "|->", "|=>"},
	{
		"**", "<=", ">=", "==", "!=", "&&", "||", "<<", ">>", "+=", "-=", "*=", "/=", "%=",
		"&=", "|=", "^=", "++", "--", "->", "::", "+:", "-:", "~&", "~|", "~^", "^~", "##", ".*", ":=",
	},
}

const singleOps = "+-*/%=<>!~&|^?:;,.()[]{}#@$"

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	for _, group := range operators {
		for _, op := range group {
			if lx.cursor.HasPrefix(op) {
				for range op {
					lx.cursor.Bump()
				}
				return lx.emit(token.Op, start)
			}
		}
	}

	ch := lx.cursor.Peek()
	for i := 0; i < len(singleOps); i++ {
		if singleOps[i] == ch {
			lx.cursor.Bump()
			return lx.emit(token.Op, start)
		}
	}
	return lx.scanInvalid("unexpected character")
}
