package diag

import "fmt"

// Code is a stable numeric diagnostic id; the thousands digit selects the
// producer (1 lexer, 2 parsers, 3 formatter).
type Code uint16

const (
	UnknownCode Code = 0

	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004

	// SynUnparseable marks a region kept verbatim by the formatter.
	SynUnparseable     Code = 2007
	SynTreeSitterError Code = 2008

	FmtInfo Code = 3000
)

var codeTitles = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Bad number",
	SynUnparseable:              "Region left unformatted",
	SynTreeSitterError:          "Tree-sitter inserted a missing node",
	FmtInfo:                     "Formatter information",
}

var codePrefixes = [...]string{1: "LEX", 2: "SYN", 3: "FMT"}

// ID renders the code as e.g. "SYN2007".
func (c Code) ID() string {
	if group := int(c) / 1000; group > 0 && group < len(codePrefixes) {
		return fmt.Sprintf("%s%04d", codePrefixes[group], int(c))
	}
	return "E0000"
}

func (c Code) Title() string {
	if title, ok := codeTitles[c]; ok {
		return title
	}
	return codeTitles[UnknownCode]
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
