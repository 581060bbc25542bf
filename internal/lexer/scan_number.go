package lexer

import (
	"svfmt/internal/diag"
	"svfmt/internal/token"
)

var timeUnits = []string{"fs", "ps", "ns", "us", "ms", "s"}

// scanNumber: 42, 1_000, 3.14, 1e-3, 10ns, 8'hFF, 4 'b10x1.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	lx.scanDecimalDigits()

	isReal := false
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		lx.cursor.Bump()
		lx.scanDecimalDigits()
		isReal = true
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		off := uint32(1)
		if s := lx.cursor.PeekAt(1); s == '+' || s == '-' {
			off = 2
		}
		if isDec(lx.cursor.PeekAt(off)) {
			for range off {
				lx.cursor.Bump()
			}
			lx.scanDecimalDigits()
			isReal = true
		}
	}

	if lx.scanTimeUnit() {
		return lx.emit(token.Number, start)
	}
	if !isReal {
		// размер перед базой: пробелы между ними допустимы
		save := lx.cursor.Mark()
		for b := lx.cursor.Peek(); b == ' ' || b == '\t'; b = lx.cursor.Peek() {
			lx.cursor.Bump()
		}
		if lx.cursor.Peek() == '\'' && lx.atBase(1) {
			lx.scanBasedTail(start)
			return lx.emit(token.Number, start)
		}
		lx.cursor.Reset(save)
	}
	if isIdentStartByte(lx.cursor.Peek()) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.report(diag.LexBadNumber, sp, "malformed number")
		return lx.emit(token.Invalid, start)
	}
	return lx.emit(token.Number, start)
}

func (lx *Lexer) scanDecimalDigits() {
	for b := lx.cursor.Peek(); isDec(b) || b == '_'; b = lx.cursor.Peek() {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) scanTimeUnit() bool {
	for _, u := range timeUnits {
		if lx.cursor.HasPrefix(u) && !isIdentContinueByte(lx.cursor.PeekAt(uint32(len(u)))) { //nolint:gosec
			for range u {
				lx.cursor.Bump()
			}
			return true
		}
	}
	return false
}

// atBase reports "'b", "'sh" ... starting n bytes after the cursor.
func (lx *Lexer) atBase(n uint32) bool {
	b := lx.cursor.PeekAt(n)
	if b == 's' || b == 'S' {
		b = lx.cursor.PeekAt(n + 1)
	}
	return isBaseChar(b)
}

// scanBasedTail consumes "'[s]<base> <digits>" with the cursor on the apostrophe.
func (lx *Lexer) scanBasedTail(start Mark) {
	lx.cursor.Bump() // '
	if b := lx.cursor.Peek(); b == 's' || b == 'S' {
		lx.cursor.Bump()
	}
	lx.cursor.Bump() // base
	digitsAt := lx.cursor.Mark()
	for b := lx.cursor.Peek(); b == ' ' || b == '\t'; b = lx.cursor.Peek() {
		lx.cursor.Bump()
	}
	n := 0
	for isBasedDigit(lx.cursor.Peek()) {
		lx.cursor.Bump()
		n++
	}
	if n == 0 {
		lx.cursor.Reset(digitsAt)
		lx.report(diag.LexBadNumber, lx.cursor.SpanFrom(start), "based literal without digits")
	}
}

// scanApostrophe: 'hFF, '0, '1, 'x, 'z, '{ and the cast apostrophe.
func (lx *Lexer) scanApostrophe() token.Token {
	start := lx.cursor.Mark()
	if lx.atBase(1) {
		lx.scanBasedTail(start)
		return lx.emit(token.Number, start)
	}
	switch lx.cursor.PeekAt(1) {
	case '0', '1', 'x', 'X', 'z', 'Z':
		if !isIdentContinueByte(lx.cursor.PeekAt(2)) {
			lx.cursor.Bump()
			lx.cursor.Bump()
			return lx.emit(token.Number, start)
		}
	case '{':
		lx.cursor.Bump()
		lx.cursor.Bump()
		return lx.emit(token.Op, start)
	}
	lx.cursor.Bump()
	return lx.emit(token.Op, start)
}
