package layout

import (
	"sync"

	"svfmt/internal/cst"
)

// CVersion changes whenever a C rule changes output.
const CVersion = "c-3"

var (
	cOnce  sync.Once
	cTable *Table
)

// C returns the rule table for tree-sitter-c trees.
func C() *Table {
	cOnce.Do(func() { cTable = newC() })
	return cTable
}

func newC() *Table {
	block := Rule{Role: RoleBlock, Header: 1}
	body := Rule{Role: RoleBody}
	list := Rule{Role: RoleList}

	return &Table{
		Name:    "c",
		Version: CVersion,
		rules: map[cst.Kind]Rule{
			"translation_unit": {Role: RoleTop},

			"compound_statement":     block,
			"field_declaration_list": block,
			"enumerator_list":        block,
			"declaration_list":       block,

			"if_statement":      body,
			"else_clause":       body,
			"for_statement":     body,
			"while_statement":   body,
			"do_statement":      body,
			"labeled_statement": body,

			"case_statement": {Role: RoleCase},

			"preproc_if":      {Role: RoleDirective, Header: 2},
			"preproc_ifdef":   {Role: RoleDirective, Header: 2},
			"preproc_elif":    {Role: RoleDirective, Header: 2},
			"preproc_elifdef": {Role: RoleDirective, Header: 2},
			"preproc_else":    {Role: RoleDirective, Header: 1},

			"parameter_list": list,
			"argument_list":  list,
		},
		closers: setOf("}", "#endif"),
		labels:  setOf(),
		statements: setOf("compound_statement", "expression_statement", "if_statement",
			"for_statement", "while_statement", "do_statement", "return_statement",
			"break_statement", "continue_statement", "goto_statement", "switch_statement",
			"labeled_statement", "declaration", "case_statement", cst.KindError),
		blocks:     setOf("compound_statement"),
		chained:    setOf("if_statement"),
		elseTokens: setOf("else", "else_clause", "while"),
		inlineBody: setOf("labeled_statement"),

		listOpeners: setOf("("),
		listClosers: setOf(")"),

		major: setOf("function_definition"),
		breakAfter: setOf("preproc_include", "preproc_def", "preproc_function_def",
			"preproc_call", cst.KindDirective),
		atomic: setOf(cst.KindError, "string_literal", "char_literal", "system_lib_string",
			"concatenated_string", "preproc_include", "preproc_def", "preproc_function_def",
			"preproc_call", "preproc_arg"),
		keepErrorLines: true,

		sp: spacing{
			tightAfter:     setOf("(", "[", "{", "."),
			tightAround:    setOf(".", "->"),
			callNames:      setOf("identifier", "field_identifier", "sizeof", ")"),
			unaryParents:   setOf("unary_expression", "pointer_expression", "update_expression", "pointer_declarator", "abstract_pointer_declarator"),
			postfixParents: setOf("update_expression"),
			rangeParents:   setOf(),
			spacedColon:    setOf("conditional_expression", "bitfield_clause"),
			compactIn:      setOf(),
			tightSelects:   setOf("subscript_expression", "array_declarator"),
			castParents:    setOf("cast_expression"),
			glue: []string{
				"<<=", ">>=", "...", "->", "++", "--", "<<", ">>", "<=", ">=", "==", "!=",
				"&&", "||", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "//", "/*",
			},
		},
	}
}
