package diagfmt

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"svfmt/internal/diag"
	"svfmt/internal/source"
)

func sample() (*source.FileSet, []diag.Diagnostic) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("rtl/test.sv", []byte("module m;\nassign   =  ;\nendmodule\n"))
	d := diag.New(diag.SevWarning, diag.SynUnparseable, source.Span{File: id, Start: 10, End: 23}, "unparseable region kept verbatim")
	d.Notes = []diag.Note{{Span: source.Span{File: id, Start: 0, End: 6}, Msg: "inside this module"}}
	return fs, []diag.Diagnostic{d}
}

func TestPrettyExcerpt(t *testing.T) {
	fs, diags := sample()
	var buf bytes.Buffer
	Pretty(&buf, diags, fs, PrettyOpts{Context: 1, ShowNotes: true})

	want := "rtl/test.sv:2:1: WARNING SYN2007: unparseable region kept verbatim\n" +
		" 1 | module m;\n" +
		" 2 | assign   =  ;\n" +
		"   | ^~~~~~~~~~~~~\n" +
		" 3 | endmodule\n" +
		"  note: rtl/test.sv:1:1: inside this module\n"
	if got := buf.String(); got != want {
		t.Fatalf("Pretty:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyBasename(t *testing.T) {
	fs, diags := sample()
	var buf bytes.Buffer
	Pretty(&buf, diags, fs, PrettyOpts{Paths: PathStyle{Mode: PathBasename}})
	want := "test.sv:2:1: WARNING SYN2007: unparseable region kept verbatim\n" +
		" 2 | assign   =  ;\n" +
		"   | ^~~~~~~~~~~~~\n"
	if got := buf.String(); got != want {
		t.Fatalf("Pretty:\n%s\nwant:\n%s", got, want)
	}
}

func TestBuild(t *testing.T) {
	fs, diags := sample()
	diags = append(diags, diag.New(diag.SevError, diag.LexBadNumber, source.Span{File: 9}, "lost"))
	out := Build(diags, fs, JSONOpts{IncludePositions: true})
	if len(out) != 1 {
		t.Fatalf("want 1 diagnostic (unknown file dropped), got %d", len(out))
	}
	got := out[0]
	if got.Code != "SYN2007" || got.Severity != "warning" || got.Title != "Region left unformatted" {
		t.Errorf("diagnostic = %+v", got)
	}
	if got.Location.From == nil || *got.Location.From != (Position{Line: 2, Col: 1}) || got.Location.End != 23 {
		t.Errorf("location = %+v", got.Location)
	}
	if len(got.Notes) != 0 {
		t.Errorf("notes included without IncludeNotes: %+v", got.Notes)
	}

	data, err := json.Marshal(Build(diags[:1], fs, JSONOpts{IncludeNotes: true, Paths: PathStyle{Mode: PathBasename}}))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"file":"test.sv"`, `"message":"inside this module"`} {
		if !bytes.Contains(data, []byte(want)) {
			t.Errorf("json %s lacks %s", data, want)
		}
	}
	if bytes.Contains(data, []byte(`"from"`)) {
		t.Errorf("positions must be omitted: %s", data)
	}
}

func TestPathStyle(t *testing.T) {
	base := t.TempDir()
	inside := filepath.Join(base, "rtl", "top.sv")
	if got := (PathStyle{Mode: PathRelative, Base: base}).apply(inside); got != "rtl/top.sv" {
		t.Errorf("relative = %q", got)
	}
	outside := filepath.Join(filepath.Dir(base), "elsewhere.sv")
	if got := (PathStyle{Mode: PathRelative, Base: base}).apply(outside); got != outside {
		t.Errorf("outside base = %q, want unchanged", got)
	}
	if got := (PathStyle{}).apply("a/b.sv"); got != "a/b.sv" {
		t.Errorf("as given = %q", got)
	}
}
