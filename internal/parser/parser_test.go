package parser_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"svfmt/internal/cst"
	"svfmt/internal/diag"
	"svfmt/internal/parser"
)

func parse(t *testing.T, src string) (*cst.Node, *diag.Bag) {
	t.Helper()
	root, bag, err := parser.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := cst.Validate(root, len(src)); err != nil {
		t.Fatalf("invalid tree for %q: %v", src, err)
	}
	return root, bag
}

func TestParseSexp(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "module with port list",
			src:  "module  m (  a,b);endmodule",
			want: "(source_file (module_declaration (module_header (simple_identifier) " +
				"(list_of_ports (port (simple_identifier)) (port (simple_identifier))))))",
		},
		{
			name: "ansi ports",
			src:  "module m(input logic clk, output [3:0] q); endmodule",
			want: "(source_file (module_declaration (module_header (simple_identifier) " +
				"(list_of_port_declarations " +
				"(ansi_port_declaration (data_type) (simple_identifier)) " +
				"(ansi_port_declaration (data_type (packed_dimension (number) (number))) (simple_identifier))))))",
		},
		{
			name: "always_ff with if/else",
			src:  "module m; always_ff @(posedge clk) if (rst) q <= 0; else q <= d; endmodule",
			want: "(source_file (module_declaration (module_header (simple_identifier)) " +
				"(always_construct (procedural_timing_control_statement " +
				"(event_control (event_expression (simple_identifier))) " +
				"(conditional_statement (simple_identifier) " +
				"(nonblocking_assignment (simple_identifier) (number)) " +
				"(nonblocking_assignment (simple_identifier) (simple_identifier)))))))",
		},
		{
			name: "instantiation",
			src:  "module t; foo #(.W(8)) u0 (.a(x), .b()); endmodule",
			want: "(source_file (module_declaration (module_header (simple_identifier)) " +
				"(module_instantiation (simple_identifier) " +
				"(parameter_value_assignment (named_parameter_assignment (simple_identifier) (number))) " +
				"(hierarchical_instance (simple_identifier) (list_of_port_connections " +
				"(named_port_connection (simple_identifier) (simple_identifier)) " +
				"(named_port_connection (simple_identifier)))))))",
		},
		{
			name: "data declaration",
			src:  "logic [7:0] a, b = 1;",
			want: "(source_file (data_declaration (data_type (packed_dimension (number) (number))) " +
				"(variable_decl_assignment (simple_identifier)) " +
				"(variable_decl_assignment (simple_identifier) (number))))",
		},
		{
			name: "continuous assign",
			src:  "assign y = a & b;",
			want: "(source_file (continuous_assign (net_assignment (simple_identifier) " +
				"(binary_expression (simple_identifier) (simple_identifier)))))",
		},
		{
			name: "comments become leaves",
			src:  "// c\nmodule m; // t\nendmodule",
			want: "(source_file (comment) (module_declaration (module_header (simple_identifier)) (comment)))",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, bag := parse(t, tt.src)
			if bag.HasErrors() || bag.HasWarnings() {
				t.Errorf("unexpected diagnostics: %+v", bag.Items())
			}
			if diff := cmp.Diff(tt.want, cst.Sexp(root)); diff != "" {
				t.Errorf("sexp mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseErrorRecovery(t *testing.T) {
	src := "module m; assign = ; wire w; endmodule"
	root, bag := parse(t, src)
	mod := root.Children[0]
	if mod.Kind != "module_declaration" {
		t.Fatalf("first item = %s, want module_declaration", mod.Kind)
	}
	var kinds []string
	for _, c := range mod.Children {
		kinds = append(kinds, string(c.Kind))
	}
	want := []string{"module_header", "ERROR", "net_declaration", "endmodule"}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("module children (-want +got):\n%s", diff)
	}
	if got := mod.Children[1].Text([]byte(src)); got != "assign = ;" {
		t.Errorf("ERROR text = %q", got)
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.SynUnparseable {
		t.Errorf("diagnostics = %+v, want one SynUnparseable", bag.Items())
	}
}

func TestParseGenerateLoop(t *testing.T) {
	for _, src := range []string{
		"module m; for (genvar i = 0; i < 4; i++) begin : g assign y[i] = a[i]; end endmodule",
		"module m; generate for (genvar i = 0; i < 4; i++) begin : g assign y[i] = a[i]; end endgenerate endmodule",
	} {
		root, bag := parse(t, src)
		if bag.Len() != 0 {
			t.Errorf("%q: unexpected diagnostics: %+v", src, bag.Items())
		}
		var kinds []cst.Kind
		cst.Walk(root, func(n *cst.Node, _ int) bool {
			switch n.Kind {
			case cst.KindError, "genvar_initialization", "loop_statement", "block_label":
				kinds = append(kinds, n.Kind)
			}
			return true
		})
		want := []cst.Kind{"loop_statement", "genvar_initialization", "block_label"}
		if diff := cmp.Diff(want, kinds); diff != "" {
			t.Errorf("%q: kinds (-want +got):\n%s", src, diff)
		}
	}
}

func TestParseVerbatimBlock(t *testing.T) {
	src := "property p; a |-> b; endproperty\nmodule m; endmodule\n"
	root, _ := parse(t, src)
	if len(root.Children) != 2 {
		t.Fatalf("got %d top-level items", len(root.Children))
	}
	if !root.Children[0].IsError() {
		t.Errorf("property block kind = %s, want ERROR", root.Children[0].Kind)
	}
	if got := root.Children[0].Text([]byte(src)); got != "property p; a |-> b; endproperty" {
		t.Errorf("verbatim text = %q", got)
	}
	if root.Children[1].Kind != "module_declaration" {
		t.Errorf("second item = %s", root.Children[1].Kind)
	}
}

func TestParseDeepNesting(t *testing.T) {
	src := "assign x = " + strings.Repeat("(", 2000) + "1" + strings.Repeat(")", 2000) + ";"
	root, bag := parse(t, src)
	if len(root.Children) != 1 || !root.Children[0].IsError() {
		t.Fatalf("deep nesting should collapse into one ERROR item, got %s", cst.Sexp(root))
	}
	if !bag.HasWarnings() {
		t.Error("expected an unparseable-construct warning")
	}
}

func TestParseCoversEveryByte(t *testing.T) {
	src := `package p;
  typedef enum logic [1:0] {IDLE, RUN = 2} state_t;
  typedef struct packed { logic a; logic [3:0] b; } pair_t;
endpackage

module top #(parameter int W = 8) (input logic clk, rst_n, output logic [W-1:0] q);
  import p::*;
  state_t st;
  always_comb begin : comb
    unique case (st)
      IDLE: q = '0;
      RUN, 3: begin q = {W{1'b1}}; end
      default: q = q + 1;
    endcase
  end
  function automatic int f(input int a);
    return a << 1;
  endfunction
  initial begin
    for (int i = 0; i < 4; i++) $display("%d", i);
    #10 wait (rst_n) ;
    fork
      a = 1;
    join_none
  end
endmodule : top
`
	root, bag := parse(t, src)
	if bag.HasWarnings() || bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diag.FormatShort(bag.Items(), nil, false))
	}
	prev := uint32(0)
	cst.Walk(root, func(n *cst.Node, _ int) bool {
		if n.IsLeaf() {
			if strings.TrimSpace(src[prev:n.Start]) != "" {
				t.Errorf("bytes %d..%d not covered by any leaf: %q", prev, n.Start, src[prev:n.Start])
			}
			prev = n.End
		}
		return true
	})
	if strings.TrimSpace(src[prev:]) != "" {
		t.Errorf("trailing bytes not covered: %q", src[prev:])
	}
}
