package lexer

import (
	"svfmt/internal/token"
)

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	tok := lx.emit(token.Ident, start)
	if token.IsKeyword(tok.Text) {
		tok.Kind = token.Keyword
	}
	return tok
}

// \bus[0] — всё до пробела
func (lx *Lexer) scanEscapedIdent() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	if lx.cursor.EOF() || isSpace(lx.cursor.Peek()) {
		return lx.invalidFrom(start, "lone backslash")
	}
	for !lx.cursor.EOF() && !isSpace(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.emit(token.Ident, start)
}

func (lx *Lexer) scanSystemIdent() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // $
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.emit(token.SystemIdent, start)
}

// scanBacktick handles `directive lines and `MACRO usages.
func (lx *Lexer) scanBacktick() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // `
	if !isIdentStartByte(lx.cursor.Peek()) {
		return lx.invalidFrom(start, "stray backtick")
	}
	nameStart := lx.cursor.Off
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	name := string(lx.file.Content[nameStart:lx.cursor.Off])

	if name == "define" {
		lx.scanDefineBody()
		return lx.emit(token.Directive, start)
	}
	if token.IsDirective(name) {
		lx.scanDirectiveRest()
		return lx.emit(token.Directive, start)
	}

	// `MACRO(args) — аргументы берём целиком, если скобка вплотную
	if lx.cursor.Peek() == '(' {
		lx.scanBalancedParens()
	}
	return lx.emit(token.MacroUsage, start)
}

// scanDefineBody consumes to the end of the line, following backslash
// continuations. Trailing blanks are left out of the token.
func (lx *Lexer) scanDefineBody() {
	end := lx.cursor.Off
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' {
			break
		}
		if b == '\\' && lx.cursor.PeekAt(1) == '\n' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			end = lx.cursor.Off
			continue
		}
		lx.cursor.Bump()
		if b != ' ' && b != '\t' {
			end = lx.cursor.Off
		}
	}
	lx.cursor.Reset(Mark(end))
}

// scanDirectiveRest consumes the directive arguments up to the end of the
// line or the start of a comment.
func (lx *Lexer) scanDirectiveRest() {
	end := lx.cursor.Off
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' {
			break
		}
		if b == '/' && (lx.cursor.PeekAt(1) == '/' || lx.cursor.PeekAt(1) == '*') {
			break
		}
		if b == '"' {
			lx.skipStringBody()
			end = lx.cursor.Off
			continue
		}
		lx.cursor.Bump()
		if b != ' ' && b != '\t' {
			end = lx.cursor.Off
		}
	}
	lx.cursor.Reset(Mark(end))
}

func (lx *Lexer) scanBalancedParens() {
	depth := 0
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				lx.cursor.Bump()
				return
			}
		case '"':
			lx.skipStringBody()
			continue
		}
		lx.cursor.Bump()
	}
}
