package dialect

import (
	"svfmt/internal/source"
)

type keywordSignal struct {
	Dialect Kind
	Score   int
	Reason  string
}

var keywordSignals = map[string][]keywordSignal{
	// SystemVerilog
	"module":       {{Dialect: SystemVerilog, Score: 6, Reason: "keyword `module`"}},
	"endmodule":    {{Dialect: SystemVerilog, Score: 8, Reason: "keyword `endmodule`"}},
	"endfunction":  {{Dialect: SystemVerilog, Score: 6, Reason: "keyword `endfunction`"}},
	"endtask":      {{Dialect: SystemVerilog, Score: 6, Reason: "keyword `endtask`"}},
	"endpackage":   {{Dialect: SystemVerilog, Score: 6, Reason: "keyword `endpackage`"}},
	"endinterface": {{Dialect: SystemVerilog, Score: 6, Reason: "keyword `endinterface`"}},
	"endclass":     {{Dialect: SystemVerilog, Score: 6, Reason: "keyword `endclass`"}},
	"always_ff":    {{Dialect: SystemVerilog, Score: 5, Reason: "keyword `always_ff`"}},
	"always_comb":  {{Dialect: SystemVerilog, Score: 5, Reason: "keyword `always_comb`"}},
	"always":       {{Dialect: SystemVerilog, Score: 4, Reason: "keyword `always`"}},
	"posedge":      {{Dialect: SystemVerilog, Score: 4, Reason: "keyword `posedge`"}},
	"negedge":      {{Dialect: SystemVerilog, Score: 4, Reason: "keyword `negedge`"}},
	"begin":        {{Dialect: SystemVerilog, Score: 3, Reason: "keyword `begin`"}},
	"end":          {{Dialect: SystemVerilog, Score: 2, Reason: "keyword `end`"}},
	"logic":        {{Dialect: SystemVerilog, Score: 3, Reason: "keyword `logic`"}},
	"wire":         {{Dialect: SystemVerilog, Score: 3, Reason: "keyword `wire`"}},
	"reg":          {{Dialect: SystemVerilog, Score: 2, Reason: "keyword `reg`"}},
	"assign":       {{Dialect: SystemVerilog, Score: 3, Reason: "keyword `assign`"}},
	"input":        {{Dialect: SystemVerilog, Score: 2, Reason: "keyword `input`"}},
	"output":       {{Dialect: SystemVerilog, Score: 2, Reason: "keyword `output`"}},
	// `function` and `typedef` exist in both; keep them low-signal.
	"function": {{Dialect: SystemVerilog, Score: 1, Reason: "keyword `function`"}},
	"typedef": {
		{Dialect: SystemVerilog, Score: 1, Reason: "keyword `typedef`"},
		{Dialect: C, Score: 1, Reason: "keyword `typedef`"},
	},

	// C
	"void":     {{Dialect: C, Score: 3, Reason: "keyword `void`"}},
	"return":   {{Dialect: C, Score: 2, Reason: "keyword `return`"}},
	"char":     {{Dialect: C, Score: 3, Reason: "keyword `char`"}},
	"unsigned": {{Dialect: C, Score: 2, Reason: "keyword `unsigned`"}},
	"sizeof":   {{Dialect: C, Score: 4, Reason: "keyword `sizeof`"}},
	"switch":   {{Dialect: C, Score: 2, Reason: "keyword `switch`"}},
	"goto":     {{Dialect: C, Score: 3, Reason: "keyword `goto`"}},
	"extern":   {{Dialect: C, Score: 2, Reason: "keyword `extern`"}},
	"NULL":     {{Dialect: C, Score: 4, Reason: "macro `NULL`"}},
	"int":      {{Dialect: C, Score: 1, Reason: "keyword `int`"}},
	"struct": {
		{Dialect: C, Score: 2, Reason: "keyword `struct`"},
		{Dialect: SystemVerilog, Score: 1, Reason: "keyword `struct`"},
	},
}

// RecordIdent collects keyword evidence for an identifier. Both languages
// are case-sensitive, so only exact spellings count.
func RecordIdent(e *Evidence, ident string, span source.Span) {
	if e == nil || ident == "" {
		return
	}
	for _, sig := range keywordSignals[ident] {
		e.Add(Hint{
			Dialect: sig.Dialect,
			Score:   sig.Score,
			Reason:  sig.Reason,
			Span:    span,
		})
	}
}
