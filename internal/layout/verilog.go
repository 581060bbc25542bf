package layout

import (
	"sync"

	"svfmt/internal/cst"
)

// VerilogVersion changes whenever a Verilog rule changes output.
const VerilogVersion = "sv-3"

var (
	verilogOnce  sync.Once
	verilogTable *Table
)

// Verilog returns the rule table for the built-in SystemVerilog parser.
func Verilog() *Table {
	verilogOnce.Do(func() { verilogTable = newVerilog() })
	return verilogTable
}

func newVerilog() *Table {
	block := Rule{Role: RoleBlock, Header: 1}
	body := Rule{Role: RoleBody}
	list := Rule{Role: RoleList}

	t := &Table{
		Name:    "systemverilog",
		Version: VerilogVersion,
		rules: map[cst.Kind]Rule{
			"source_file": {Role: RoleTop},

			"module_declaration":    block,
			"interface_declaration": block,
			"program_declaration":   block,
			"package_declaration":   block,
			"class_declaration":     block,
			"function_declaration":  block,
			"task_declaration":      block,
			"generate_region":       block,
			"seq_block":             block,
			"par_block":             block,
			"case_statement":        block,
			"struct_body":           block,
			"constraint_block":      block,

			"conditional_statement":               body,
			"loop_statement":                      body,
			"always_construct":                    body,
			"initial_construct":                   body,
			"final_construct":                     body,
			"procedural_timing_control_statement": body,
			"case_item":                           body,
			"wait_statement":                      body,
			"labeled_statement":                   body,
			"immediate_assertion":                 body,
			"concurrent_assertion":                body,

			"list_of_ports":                 list,
			"list_of_port_declarations":     list,
			"parameter_port_list":           list,
			"parameter_value_assignment":    list,
			"tf_port_list":                  list,
			"list_of_arguments":             list,
			"list_of_port_connections":      list,
			"list_of_parameter_assignments": list,
			"enum_body":                     list,
			"modport_port_list":             list,
		},
		closers: setOf("end", "join", "join_any", "join_none", "endcase", "endmodule",
			"endinterface", "endprogram", "endpackage", "endclass", "endfunction", "endtask",
			"endgenerate", "}"),
		labels: setOf("block_label", "end_label"),
		statements: setOf("seq_block", "par_block", "conditional_statement", "case_statement",
			"loop_statement", "jump_statement", "disable_statement", "wait_statement",
			"event_trigger", "immediate_assertion", "concurrent_assertion",
			"procedural_timing_control_statement", "blocking_assignment",
			"nonblocking_assignment", "expression_statement", "null_statement",
			"labeled_statement", "procedural_continuous_assignment", cst.KindError),
		blocks:     setOf("seq_block", "par_block", "null_statement"),
		chained:    setOf("conditional_statement"),
		elseTokens: setOf("else", "while"),
		inlineBody: setOf("case_item", "labeled_statement", "immediate_assertion", "concurrent_assertion"),

		timing:        "procedural_timing_control_statement",
		timingParents: setOf("always_construct", "initial_construct", "final_construct"),
		timingInline: setOf("seq_block", "par_block", "blocking_assignment",
			"nonblocking_assignment", "expression_statement", "null_statement", "event_trigger",
			"procedural_timing_control_statement", "wait_statement", "jump_statement",
			"disable_statement"),

		listOpeners: setOf("(", "#", "{"),
		listClosers: setOf(")", "}"),

		major: setOf("module_declaration", "interface_declaration", "program_declaration",
			"package_declaration", "class_declaration", "function_declaration", "task_declaration"),
		breakAfter: setOf(cst.KindDirective),
		atomic:     setOf(cst.KindError, "string_literal"),

		sp: spacing{
			tightAfter:  setOf("(", "[", "{", "'{", "'", "#", "##", "@"),
			tightAround: setOf(".", "::"),
			callNames: setOf("simple_identifier", "system_tf_identifier", "text_macro_usage",
				"new", "'", "#", "@"),
			spacedParens:   setOf("list_of_port_connections"),
			unaryParents:   setOf("unary_expression", "inc_or_dec_expression"),
			postfixParents: setOf("inc_or_dec_expression"),
			rangeParents:   setOf("packed_dimension", "unpacked_dimension", "index_expression", "value_range"),
			spacedColon:    setOf("conditional_expression", "block_label", "end_label"),
			compactIn:      setOf("streaming_concatenation", "multiple_concatenation"),
			tightSelects:   setOf("index_expression", "unpacked_dimension"),
			macroKind:      "text_macro_usage",
			glue: []string{
				"<<<=", ">>>=", "===", "!==", "==?", "!=?", "<<<", ">>>", "<<=", ">>=", "<->",
				"->>", "|->", "|=>", "**", "<=", ">=", "==", "!=", "&&", "||", "<<", ">>", "+=",
				"-=", "*=", "/=", "%=", "&=", "|=", "^=", "++", "--", "->", "::", "+:", "-:",
				"~&", "~|", "~^", "^~", "##", ".*", ":=", "'{", "//", "/*",
			},
		},
	}
	return t
}
