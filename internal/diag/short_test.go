package diag

import (
	"testing"

	"svfmt/internal/source"
)

func TestFormatShort(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.AddVirtual("rtl/top.sv", []byte("a\nb\n"))

	diags := []Diagnostic{
		{
			Severity: SevWarning,
			Code:     SynUnparseable,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: file, Start: 2, End: 3},
		},
		New(SevError, LexUnknownChar, source.Span{File: file, Start: 0, End: 1}, "unexpected '#'").
			WithNote(source.Span{File: file, Start: 2, End: 3}, "resumed here"),
	}

	expected := "error LEX1001 rtl/top.sv:1:1 unexpected '#'\n" +
		"note LEX1001 rtl/top.sv:2:1 resumed here\n" +
		"warning SYN2007 rtl/top.sv:2:1 first line second"

	if got := FormatShort(diags, fs, true); got != expected {
		t.Fatalf("unexpected diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
	if got := FormatShort(diags, fs, false); got != "error LEX1001 rtl/top.sv:1:1 unexpected '#'\n"+
		"warning SYN2007 rtl/top.sv:2:1 first line second" {
		t.Fatalf("notes must be skipped without includeNotes, got:\n%s", got)
	}
}

func TestFormatShortUnknownFile(t *testing.T) {
	fs := source.NewFileSet()
	diags := []Diagnostic{New(SevInfo, FmtInfo, source.Span{File: 7}, "lost")}
	if got := FormatShort(diags, fs, false); got != "" {
		t.Fatalf("expected empty output for unresolved file, got %q", got)
	}
}

func TestBagLimitAndSort(t *testing.T) {
	b := NewBag(3)
	sp := func(s, e uint32) source.Span { return source.Span{Start: s, End: e} }

	b.Add(New(SevWarning, SynUnparseable, sp(10, 12), "w"))
	b.Add(New(SevError, LexUnterminatedString, sp(1, 2), "e"))
	b.Add(New(SevWarning, SynUnparseable, sp(10, 12), "w again"))
	if b.Add(New(SevInfo, FmtInfo, sp(0, 0), "dropped")) {
		t.Fatal("Add must refuse diagnostics over the limit")
	}

	b.Sort()
	items := b.Items()
	if len(items) != 3 || items[0].Code != LexUnterminatedString {
		t.Fatalf("items after sort = %+v", items)
	}
	if items[1].Message != "w" {
		t.Fatalf("sort must be stable, got %q first", items[1].Message)
	}
	if !b.HasErrors() || !b.HasWarnings() {
		t.Fatal("bag must report both errors and warnings")
	}
	if b.Verbatim() != 2 {
		t.Fatalf("Verbatim() = %d, want 2", b.Verbatim())
	}

	var nilBag *Bag
	if nilBag.Len() != 0 || nilBag.HasErrors() || nilBag.Verbatim() != 0 {
		t.Fatal("nil bag must be empty")
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})
	for range 3 {
		Warn(r, SynUnparseable, source.Span{Start: 4, End: 9}, "region left verbatim")
	}
	Emit(r, New(SevError, LexUnknownChar, source.Span{Start: 4, End: 9}, "unexpected '#'"))
	Warn(nil, SynUnparseable, source.Span{}, "dropped")
	if bag.Len() != 2 {
		t.Fatalf("want 2 diagnostics, got %d", bag.Len())
	}
}

func TestRetarget(t *testing.T) {
	d := New(SevWarning, SynUnparseable, source.Span{File: 1, Start: 2, End: 3}, "x").
		WithNote(source.Span{File: 1}, "n")
	got := Retarget([]Diagnostic{d}, 5)
	if got[0].Primary.File != 5 || got[0].Notes[0].Span.File != 5 {
		t.Fatalf("Retarget = %+v", got[0])
	}
}

func TestSeverityString(t *testing.T) {
	for sev, want := range map[Severity]string{SevInfo: "info", SevWarning: "warning", SevError: "error", Severity(9): "unknown"} {
		if got := sev.String(); got != want {
			t.Errorf("Severity(%d).String() = %q, want %q", sev, got, want)
		}
	}
}
