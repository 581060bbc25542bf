package lexer

import "unicode/utf8"

const utf8RuneSelf = utf8.RuneSelf

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// '$' is allowed inside SystemVerilog identifiers.
func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b) || b == '$'
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v'
}

func isBaseChar(b byte) bool {
	switch b {
	case 'b', 'B', 'o', 'O', 'd', 'D', 'h', 'H':
		return true
	}
	return false
}

// цифры значения в based literal, включая x/z/? и '_'
func isBasedDigit(b byte) bool {
	return isDec(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F') ||
		b == 'x' || b == 'X' || b == 'z' || b == 'Z' || b == '?' || b == '_'
}
