package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token (unknown byte, broken literal).
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Ident       // foo, \escaped.name
	SystemIdent // $display
	MacroUsage  // `WIDTH, `uvm_info(...)
	Number      // 42, 4'b1010, 'x, 1.5e3, 10ns
	String      // "text"
	Keyword     // module, begin, logic ...
	Op          // operators and punctuation
	Comment     // line or block comment
	Directive   // `define, `ifdef ... to end of line
)

var kindNames = [...]string{
	Invalid:     "Invalid",
	EOF:         "EOF",
	Ident:       "Ident",
	SystemIdent: "SystemIdent",
	MacroUsage:  "MacroUsage",
	Number:      "Number",
	String:      "String",
	Keyword:     "Keyword",
	Op:          "Op",
	Comment:     "Comment",
	Directive:   "Directive",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// NodeKind is the CST kind of a leaf built from a token of this kind.
// Keywords and operators are anonymous: their kind is their text.
func (k Kind) NodeKind() string {
	switch k {
	case Ident:
		return "simple_identifier"
	case SystemIdent:
		return "system_tf_identifier"
	case MacroUsage:
		return "text_macro_usage"
	case Number:
		return "number"
	case String:
		return "string_literal"
	case Comment:
		return "comment"
	case Directive:
		return "directive"
	case Invalid:
		return "ERROR"
	}
	return ""
}
