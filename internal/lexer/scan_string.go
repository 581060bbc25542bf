package lexer

import (
	"svfmt/internal/diag"
	"svfmt/internal/token"
)

func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	if !lx.skipStringBody() {
		lx.report(diag.LexUnterminatedString, lx.cursor.SpanFrom(start), "unterminated string literal")
		return lx.emit(token.Invalid, start)
	}
	return lx.emit(token.String, start)
}

// skipStringBody consumes a double-quoted string with the cursor on the
// opening quote. It stops before a raw newline when the string is not closed.
func (lx *Lexer) skipStringBody() bool {
	lx.cursor.Bump() // "
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '"':
			lx.cursor.Bump()
			return true
		case '\\':
			lx.cursor.Bump()
			if !lx.cursor.EOF() {
				lx.cursor.Bump()
			}
		case '\n':
			return false
		default:
			lx.cursor.Bump()
		}
	}
	return false
}

func (lx *Lexer) scanComment() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // /
	if lx.cursor.Bump() == '/' {
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		// хвостовые пробелы строки не часть комментария
		end := lx.cursor.Off
		for end > uint32(start)+2 && (lx.file.Content[end-1] == ' ' || lx.file.Content[end-1] == '\t' || lx.file.Content[end-1] == '\r') {
			end--
		}
		lx.cursor.Reset(Mark(end))
		return lx.emit(token.Comment, start)
	}

	for !lx.cursor.EOF() {
		if lx.cursor.Peek() == '*' && lx.cursor.PeekAt(1) == '/' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			return lx.emit(token.Comment, start)
		}
		lx.cursor.Bump()
	}
	lx.report(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
	return lx.emit(token.Comment, start)
}

func (lx *Lexer) scanInvalid(msg string) token.Token {
	start := lx.cursor.Mark()
	lx.bumpRune()
	return lx.invalidFrom(start, msg)
}

func (lx *Lexer) invalidFrom(start Mark, msg string) token.Token {
	tok := lx.emit(token.Invalid, start)
	lx.report(diag.LexUnknownChar, tok.Span, msg)
	return tok
}

// bumpRune skips one UTF-8 sequence.
func (lx *Lexer) bumpRune() {
	b := lx.cursor.Bump()
	if b < utf8RuneSelf {
		return
	}
	for !lx.cursor.EOF() && lx.cursor.Peek()&0xC0 == 0x80 {
		lx.cursor.Bump()
	}
}
