package format

import (
	"errors"
	"testing"

	"svfmt/internal/cst"
	"svfmt/internal/layout"
)

func TestScanTextReadsThroughSpanReader(t *testing.T) {
	src := []byte("module m;  \n")
	root := cst.New("source_file", &cst.Node{Kind: "verbatim", Start: 0, End: 11})
	sc := newScan(root, src, layout.Verilog())

	if got := sc.text(root.Children[0]); got != "module m;  " {
		t.Errorf("text = %q", got)
	}
	if got := sc.unitText(root.Children[0]); got != "module m;" {
		t.Errorf("unitText = %q", got)
	}
	if sc.err != nil {
		t.Fatalf("unexpected error %v", sc.err)
	}

	if got := sc.text(&cst.Node{Kind: "x", Start: 4, End: 40}); got != "" {
		t.Errorf("out-of-range text = %q, want empty", got)
	}
	sc.text(&cst.Node{Kind: "y", Start: 50, End: 60})
	var inv *InvariantError
	if !errors.As(sc.err, &inv) || inv.Offset != 4 {
		t.Fatalf("err = %v, want the first InvariantError at offset 4", sc.err)
	}
}
