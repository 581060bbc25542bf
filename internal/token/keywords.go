package token

// keywords is the IEEE 1800 reserved word list minus the rarely used
// specify/UDP/config families, which lex as identifiers.
var keywords = map[string]struct{}{
	"always": {}, "always_comb": {}, "always_ff": {}, "always_latch": {},
	"and": {}, "assert": {}, "assign": {}, "assume": {}, "automatic": {},
	"begin": {}, "bind": {}, "bit": {}, "break": {}, "buf": {}, "byte": {},
	"case": {}, "casex": {}, "casez": {}, "chandle": {}, "class": {},
	"clocking": {}, "const": {}, "constraint": {}, "context": {}, "continue": {},
	"cover": {}, "covergroup": {}, "deassign": {}, "default": {}, "defparam": {},
	"disable": {}, "do": {}, "edge": {}, "else": {}, "end": {}, "endcase": {},
	"endclass": {}, "endclocking": {}, "endfunction": {}, "endgenerate": {},
	"endgroup": {}, "endinterface": {}, "endmodule": {}, "endpackage": {},
	"endprogram": {}, "endtask": {}, "enum": {}, "event": {}, "export": {},
	"extends": {}, "extern": {}, "final": {}, "for": {}, "force": {},
	"foreach": {}, "forever": {}, "fork": {}, "function": {}, "generate": {},
	"genvar": {}, "if": {}, "iff": {}, "implements": {}, "import": {},
	"initial": {}, "inout": {}, "input": {}, "inside": {}, "int": {},
	"integer": {}, "interface": {}, "join": {}, "join_any": {}, "join_none": {},
	"local": {}, "localparam": {}, "logic": {}, "longint": {}, "modport": {},
	"module": {}, "nand": {}, "negedge": {}, "new": {}, "nor": {}, "not": {},
	"null": {}, "or": {}, "output": {}, "package": {}, "packed": {},
	"parameter": {}, "posedge": {}, "priority": {}, "program": {},
	"protected": {}, "pure": {}, "rand": {}, "randc": {}, "real": {},
	"realtime": {}, "ref": {}, "reg": {}, "release": {}, "repeat": {},
	"return": {}, "shortint": {}, "shortreal": {}, "signed": {}, "static": {},
	"string": {}, "struct": {}, "super": {}, "supply0": {}, "supply1": {},
	"task": {}, "this": {}, "time": {}, "tri": {}, "tri0": {}, "tri1": {},
	"type": {}, "typedef": {}, "union": {}, "unique": {}, "unique0": {},
	"unsigned": {}, "var": {}, "virtual": {}, "void": {}, "wait": {},
	"wand": {}, "while": {}, "wire": {}, "with": {}, "wor": {}, "xnor": {}, "xor": {},
	"macromodule": {}, "tagged": {}, "dist": {}, "soft": {}, "solve": {}, "before": {},
	"uwire": {}, "triand": {}, "trior": {}, "trireg": {}, "interconnect": {},
}

// IsKeyword reports whether word is a reserved word.
func IsKeyword(word string) bool {
	_, ok := keywords[word]
	return ok
}

// directives are the compiler directives that occupy a whole line. Any other
// `name is a macro usage.
var directives = map[string]struct{}{
	"define": {}, "undef": {}, "undefineall": {}, "ifdef": {}, "ifndef": {},
	"elsif": {}, "else": {}, "endif": {}, "include": {}, "timescale": {},
	"default_nettype": {}, "resetall": {}, "celldefine": {}, "endcelldefine": {},
	"pragma": {}, "line": {}, "begin_keywords": {}, "end_keywords": {},
	"unconnected_drive": {}, "nounconnected_drive": {},
}

// IsDirective reports whether name (without the backtick) is a compiler directive.
func IsDirective(name string) bool {
	_, ok := directives[name]
	return ok
}

// IsDataTypeKeyword reports keywords that start a data type.
func IsDataTypeKeyword(word string) bool {
	switch word {
	case "logic", "bit", "reg", "byte", "shortint", "int", "longint", "integer",
		"time", "real", "shortreal", "realtime", "string", "chandle", "event",
		"wire", "tri", "tri0", "tri1", "wand", "wor", "supply0", "supply1",
		"struct", "union", "enum", "signed", "unsigned", "var", "void", "type":
		return true
	}
	return false
}
