package layout

import (
	"testing"

	"svfmt/internal/cst"
)

func TestDecideVerilog(t *testing.T) {
	tab := Verilog()
	tests := []struct {
		name string
		pos  Position
		want Decision
	}{
		{"top item", Position{Kind: "module_declaration", Parent: "source_file"}, Decision{BreakBefore: true}},
		{"header inline", Position{Kind: "module_header", Parent: "module_declaration", Count: 3}, Decision{}},
		{"body item", Position{Kind: "data_declaration", Parent: "module_declaration", Index: 1, Count: 3}, Decision{BreakBefore: true, IndentDelta: 1}},
		{"closer", Position{Kind: "endmodule", Parent: "module_declaration", Index: 2, Count: 3}, Decision{BreakBefore: true}},
		{"block label", Position{Kind: "block_label", Parent: "seq_block", Index: 1, Count: 3}, Decision{}},
		{"if body", Position{Kind: "blocking_assignment", Parent: "conditional_statement", Index: 4, Prev: ")"}, Decision{BreakBefore: true, IndentDelta: 1}},
		{"if block body", Position{Kind: "seq_block", Parent: "conditional_statement", Index: 4, Prev: ")"}, Decision{}},
		{"else after block", Position{Kind: "else", Parent: "conditional_statement", Index: 5, Prev: "seq_block"}, Decision{}},
		{"else after stmt", Position{Kind: "else", Parent: "conditional_statement", Index: 5, Prev: "blocking_assignment"}, Decision{BreakBefore: true}},
		{"else if", Position{Kind: "conditional_statement", Parent: "conditional_statement", Index: 6, Prev: "else"}, Decision{}},
		{"always timing", Position{Kind: "procedural_timing_control_statement", Parent: "always_construct", Index: 1}, Decision{}},
		{"timing assignment", Position{Kind: "nonblocking_assignment", Parent: "procedural_timing_control_statement", Index: 1}, Decision{}},
		{"timing if", Position{Kind: "conditional_statement", Parent: "procedural_timing_control_statement", Index: 1}, Decision{BreakBefore: true, IndentDelta: 1}},
		{"case item body", Position{Kind: "blocking_assignment", Parent: "case_item", Index: 2}, Decision{}},
		{"flat list item", Position{Kind: "port", Parent: "list_of_ports", Index: 1, Count: 5}, Decision{}},
		{"wrapped open", Position{Kind: "(", Parent: "tf_port_list", Index: 0, Count: 5, Wrapped: true}, Decision{}},
		{"wrapped item", Position{Kind: "tf_port_item", Parent: "tf_port_list", Index: 1, Count: 5, Wrapped: true}, Decision{BreakBefore: true, IndentDelta: 1}},
		{"wrapped comma", Position{Kind: ",", Parent: "tf_port_list", Index: 2, Count: 5, Wrapped: true}, Decision{}},
		{"wrapped close", Position{Kind: ")", Parent: "tf_port_list", Index: 4, Count: 5, Wrapped: true}, Decision{BreakBefore: true}},
		{"error atomic", Position{Kind: cst.KindError, Parent: "module_declaration", Index: 1, Count: 3}, Decision{BreakBefore: true, IndentDelta: 1, InlineChildren: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tab.Decide(tt.pos); got != tt.want {
				t.Errorf("Decide(%+v) = %+v, want %+v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestVerilogIgnoresJoinedErrors(t *testing.T) {
	p := Position{Kind: "net_declaration", Parent: "module_declaration", Prev: cst.KindError, Index: 2, Count: 4, Joined: true}
	if d := Verilog().Decide(p); d != (Decision{BreakBefore: true, IndentDelta: 1}) {
		t.Errorf("Decide(%+v) = %+v, want a body break", p, d)
	}
}

func TestBlankLines(t *testing.T) {
	tab := Verilog()
	tests := []struct {
		name string
		q    BlankQuery
		want int
	}{
		{"first in file", BlankQuery{Parent: "source_file", Kind: "module_declaration", Source: 3}, 0},
		{"collapse", BlankQuery{Parent: "module_declaration", Kind: "data_declaration", Prev: "data_declaration", Index: 3, Source: 3}, 1},
		{"keep none", BlankQuery{Parent: "module_declaration", Kind: "data_declaration", Prev: "data_declaration", Index: 3}, 0},
		{"first body item", BlankQuery{Parent: "module_declaration", Kind: "data_declaration", Prev: "module_header", Index: 1, Source: 2}, 0},
		{"after label", BlankQuery{Parent: "seq_block", Kind: "blocking_assignment", Prev: "block_label", Index: 2, Source: 1}, 0},
		{"before closer", BlankQuery{Parent: "module_declaration", Kind: "endmodule", Prev: "data_declaration", Index: 4, Source: 2}, 0},
		{"between functions", BlankQuery{Parent: "class_declaration", Kind: "function_declaration", Prev: "function_declaration", Index: 2}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tab.BlankLines(tt.q); got != tt.want {
				t.Errorf("BlankLines = %d, want %d", got, tt.want)
			}
		})
	}
}

func tok(kind cst.Kind, text string, parent cst.Kind) Token {
	named := kind != cst.Kind(text)
	return Token{Kind: kind, Text: text, Named: named, Parent: parent}
}

func TestSpaceVerilog(t *testing.T) {
	tab := Verilog()
	tests := []struct {
		name string
		prev Token
		next Token
		ctx  cst.Kind
		want bool
	}{
		{"keyword ident", tok("module", "module", "module_header"), tok("simple_identifier", "m", "module_header"), "module_header", true},
		{"name paren", tok("simple_identifier", "m", "module_header"), Token{Kind: "(", Text: "(", Parent: "list_of_ports", First: true}, "module_header", false},
		{"after paren", tok("(", "(", "list_of_ports"), tok("simple_identifier", "a", "port"), "list_of_ports", false},
		{"before comma", tok("simple_identifier", "a", "port"), tok(",", ",", "list_of_ports"), "list_of_ports", false},
		{"after comma", tok(",", ",", "list_of_ports"), tok("simple_identifier", "b", "port"), "list_of_ports", true},
		{"if paren", tok("if", "if", "conditional_statement"), tok("(", "(", "conditional_statement"), "conditional_statement", true},
		{"instance ports", tok("simple_identifier", "u0", "hierarchical_instance"), Token{Kind: "(", Text: "(", Parent: "list_of_port_connections", First: true}, "hierarchical_instance", true},
		{"binary op", tok("simple_identifier", "a", "binary_expression"), tok("+", "+", "binary_expression"), "binary_expression", true},
		{"unary op", Token{Kind: "-", Text: "-", Parent: "unary_expression", First: true}, tok("simple_identifier", "a", "unary_expression"), "unary_expression", false},
		{"postfix inc", tok("simple_identifier", "i", "inc_or_dec_expression"), Token{Kind: "++", Text: "++", Parent: "inc_or_dec_expression", Last: true}, "inc_or_dec_expression", false},
		{"range colon", tok("number", "7", "packed_dimension"), tok(":", ":", "packed_dimension"), "packed_dimension", false},
		{"case colon", tok("simple_identifier", "IDLE", "case_item"), tok(":", ":", "case_item"), "case_item", false},
		{"after case colon", tok(":", ":", "case_item"), tok("simple_identifier", "q", "blocking_assignment"), "case_item", true},
		{"ternary colon", tok("simple_identifier", "a", "conditional_expression"), tok(":", ":", "conditional_expression"), "conditional_expression", true},
		{"label colon", tok("begin", "begin", "seq_block"), tok(":", ":", "block_label"), "seq_block", true},
		{"scope", tok("simple_identifier", "p", "package_import_item"), tok("::", "::", "package_import_item"), "package_import_item", false},
		{"after scope", tok("::", "::", "class_scope"), tok("simple_identifier", "x", "class_scope"), "class_scope", false},
		{"named port dot", tok(".", ".", "named_port_connection"), tok("simple_identifier", "clk", "named_port_connection"), "named_port_connection", false},
		{"packed dim", tok("logic", "logic", "data_type"), tok("[", "[", "packed_dimension"), "data_type", true},
		{"bit select", tok("simple_identifier", "a", "index_expression"), tok("[", "[", "index_expression"), "index_expression", false},
		{"replication", tok("simple_identifier", "W", "multiple_concatenation"), tok("{", "{", "concatenation"), "multiple_concatenation", false},
		{"call", tok("system_tf_identifier", "$display", "function_call"), Token{Kind: "(", Text: "(", Parent: "list_of_arguments", First: true}, "function_call", false},
		{"cast", tok("int", "int", "cast"), tok("'", "'", "cast"), "cast", false},
		{"delay", tok("#", "#", "delay_control"), tok("number", "10", "delay_control"), "delay_control", false},
		{"comment", tok(";", ";", "x"), tok(cst.KindComment, "// c", "x"), "x", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tab.Space(SpaceQuery{Prev: tt.prev, Next: tt.next, Context: tt.ctx})
			if got != tt.want {
				t.Errorf("Space(%q, %q) = %v, want %v", tt.prev.Text, tt.next.Text, got, tt.want)
			}
		})
	}
}

func TestLexicalSafety(t *testing.T) {
	tab := Verilog()
	tests := []struct {
		prev, next string
		want       bool
	}{
		{"~", "&", true},  // ~& would lex as one operator
		{"-", "-", true},  // --
		{"/", "/", true},  // comment
		{"#", "#", true},  // ##
		{"8", "'", true},  // sized literal
		{"a", "b", true},  // identifiers merge
		{"(", "a", false}, // safe to glue
	}
	for _, tt := range tests {
		q := SpaceQuery{
			Prev: Token{Kind: cst.Kind(tt.prev), Text: tt.prev, Parent: "unary_expression", First: true},
			Next: Token{Kind: cst.Kind(tt.next), Text: tt.next, Parent: "unary_expression", Last: true},
		}
		if got := tab.Space(q); got != tt.want {
			t.Errorf("Space(%q, %q) = %v, want %v", tt.prev, tt.next, got, tt.want)
		}
	}
}

func TestCTable(t *testing.T) {
	tab := C()
	if tab.Decide(Position{Kind: "return_statement", Parent: "compound_statement", Index: 1, Count: 3}) != (Decision{BreakBefore: true, IndentDelta: 1}) {
		t.Error("compound body item should indent")
	}
	if d := tab.Decide(Position{Kind: "preproc_include", Parent: "translation_unit"}); !d.BreakAfter || !d.InlineChildren {
		t.Errorf("preproc_include decision = %+v", d)
	}
	star := Token{Kind: "*", Text: "*", Parent: "pointer_declarator", First: true}
	inner := Token{Kind: "*", Text: "*", Parent: "pointer_declarator", First: true}
	if !tab.Space(SpaceQuery{Prev: Token{Kind: "primitive_type", Text: "char", Named: true}, Next: star}) {
		t.Error("space expected between type and pointer star")
	}
	if tab.Space(SpaceQuery{Prev: star, Next: inner}) {
		t.Error("** in a C declarator must stay glued")
	}
	arrow := Token{Kind: "->", Text: "->", Parent: "field_expression"}
	if tab.Space(SpaceQuery{Prev: Token{Kind: "identifier", Text: "p", Named: true}, Next: arrow}) {
		t.Error("no space before ->")
	}
	afterError := Position{Kind: "expression_statement", Parent: "compound_statement", Prev: cst.KindError, Index: 2, Count: 4}
	if d := tab.Decide(afterError); d != (Decision{BreakBefore: true, IndentDelta: 1}) {
		t.Errorf("statement on its own line after ERROR = %+v", d)
	}
	afterError.Joined = true
	if d := tab.Decide(afterError); d != (Decision{IndentDelta: 1}) {
		t.Errorf("statement sharing a line with ERROR = %+v, want inline", d)
	}
	firstError := Position{Kind: cst.KindError, Parent: "compound_statement", Prev: "{", Index: 1, Count: 3, Joined: true}
	if d := tab.Decide(firstError); !d.BreakBefore {
		t.Errorf("first body item must break after the brace, got %+v", d)
	}
	if tab.Name == Verilog().Name {
		t.Error("tables must differ")
	}
}
