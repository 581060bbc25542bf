package tsparse_test

import (
	"strings"
	"testing"

	"svfmt/internal/cst"
	"svfmt/internal/format"
	"svfmt/internal/layout"
	"svfmt/internal/tsparse"
)

func TestParseCSpans(t *testing.T) {
	src := []byte("int main(void) {\n  /* c */ return 0;\n}\n")
	root, bag, err := tsparse.C{}.Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	if bag.Len() != 0 {
		t.Errorf("unexpected diagnostics: %+v", bag.Items())
	}
	if root.Kind != "translation_unit" {
		t.Errorf("root kind = %s", root.Kind)
	}
	if err := cst.Validate(root, len(src)); err != nil {
		t.Fatal(err)
	}
	var comments int
	cst.Walk(root, func(n *cst.Node, _ int) bool {
		if n.IsLeaf() && n.Kind == "return" && n.Text(src) != "return" {
			t.Errorf("return leaf text = %q", n.Text(src))
		}
		if n.IsComment() {
			comments++
			if n.Text(src) != "/* c */" {
				t.Errorf("comment text = %q", n.Text(src))
			}
		}
		return true
	})
	if comments != 1 {
		t.Errorf("found %d comments, want 1", comments)
	}
}

func TestParseCReportsErrors(t *testing.T) {
	src := []byte("int main( { return 0; }\n")
	root, bag, err := tsparse.C{}.Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	if err := cst.Validate(root, len(src)); err != nil {
		t.Fatal(err)
	}
	if bag.Len() == 0 {
		t.Error("expected diagnostics for a broken function")
	}
}

func TestRenderC(t *testing.T) {
	src := []byte("int   main(void){return 0;}")
	root, _, err := tsparse.C{}.Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	got, err := format.Render(root, src, format.Options{Table: layout.C()})
	if err != nil {
		t.Fatal(err)
	}
	want := "int main(void) {\n    return 0;\n}\n"
	if string(got) != want {
		t.Errorf("mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestRenderCKeepsErrorLine(t *testing.T) {
	src := []byte("int f(void) { x = ; }\n")
	root, bag, err := tsparse.C{}.Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	if bag.Len() == 0 {
		t.Fatal("expected a syntax diagnostic")
	}
	opts := format.Options{Table: layout.C()}
	got, err := format.Render(root, src, opts)
	if err != nil {
		t.Fatal(err)
	}
	for _, line := range strings.Split(string(got), "\n") {
		if strings.TrimSpace(line) == "x" {
			t.Fatalf("statement split around the error:\n%s", got)
		}
	}
	root, _, err = tsparse.C{}.Parse(got)
	if err != nil {
		t.Fatal(err)
	}
	again, err := format.Render(root, got, opts)
	if err != nil {
		t.Fatal(err)
	}
	if string(again) != string(got) {
		t.Errorf("second pass changed output:\nfirst  %q\nsecond %q", got, again)
	}
}

func TestParseCKeepsNULSourceVerbatim(t *testing.T) {
	src := []byte("A0 #\x00#00000000000000000")
	root, bag, err := tsparse.C{}.Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	if err := cst.Validate(root, len(src)); err != nil {
		t.Fatal(err)
	}
	if len(root.Children) != 1 || !root.Children[0].IsError() {
		t.Fatalf("tree = %s, want one ERROR item", cst.Sexp(root))
	}
	if bag.Len() != 1 || bag.Items()[0].Primary.Start != 4 {
		t.Errorf("diagnostics = %+v, want one at the NUL byte", bag.Items())
	}
	opts := format.Options{Table: layout.C()}
	got, err := format.Render(root, src, opts)
	if err != nil {
		t.Fatal(err)
	}
	if want := string(src) + "\n"; string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
	root, _, err = tsparse.C{}.Parse(got)
	if err != nil {
		t.Fatal(err)
	}
	again, err := format.Render(root, got, opts)
	if err != nil || string(again) != string(got) {
		t.Errorf("second pass = %q, %v", again, err)
	}
}
