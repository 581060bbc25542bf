package dialect

import "testing"

func TestDetect(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want Kind
	}{
		{"module", "module  m (  a,b);endmodule", SystemVerilog},
		{"always", "always_ff @(posedge clk) q <= d;", SystemVerilog},
		{"directive", "`timescale 1ns/1ps\n", SystemVerilog},
		{"c main", "#include <stdio.h>\nint main(void) { return 0; }\n", C},
		{"c sizeof", "unsigned n = sizeof(char);", C},
		{"empty", "", Unknown},
		{"prose", "hello world", Unknown},
		{"tie", "typedef", Unknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Detect([]byte(tc.src)).Kind; got != tc.want {
				t.Fatalf("Detect(%q) = %v, want %v", tc.src, got, tc.want)
			}
		})
	}
}

func TestClassifyRunnerUp(t *testing.T) {
	e := NewEvidence()
	e.Add(Hint{Dialect: SystemVerilog, Score: 6})
	e.Add(Hint{Dialect: C, Score: 2})
	e.Add(Hint{Dialect: C, Score: 0})
	e.Add(Hint{Dialect: Unknown, Score: 9})
	c := e.Classify()
	if c.Kind != SystemVerilog || c.RunnerUp != C || c.RunnerUpScore != 2 {
		t.Fatalf("classification = %+v", c)
	}
	if c.Total != 8 || c.Signals != 4 || c.Confidence != 0.75 {
		t.Fatalf("classification = %+v", c)
	}

	var none *Evidence
	if got := none.Classify(); got.Kind != Unknown || got.Signals != 0 {
		t.Fatalf("nil evidence = %+v", got)
	}
}

func TestCollectSkipsDirectiveWords(t *testing.T) {
	e := Collect(0, []byte("`define WIDTH 8\n"))
	hints := e.Hints()
	if len(hints) != 1 || hints[0].Dialect != SystemVerilog || hints[0].Reason != "compiler directive `define" {
		t.Fatalf("hints = %+v", hints)
	}
}
