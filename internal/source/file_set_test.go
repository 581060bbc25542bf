package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetIDs(t *testing.T) {
	fs := NewFileSet()
	a := fs.AddVirtual("rtl/./top.sv", []byte("module a; endmodule"))
	b := fs.AddVirtual("rtl/top.sv", []byte("module b; endmodule"))
	if a != 0 || b != 1 {
		t.Fatalf("ids = %d, %d; want 0, 1", a, b)
	}
	// старая версия остаётся доступной
	if got := string(fs.Get(a).Content); got != "module a; endmodule" {
		t.Errorf("first version content = %q", got)
	}
	if got := fs.Get(b).Path; got != "rtl/top.sv" {
		t.Errorf("path = %q, want cleaned path", got)
	}
	if fs.Get(7) != nil {
		t.Error("Get must return nil for an unknown id")
	}
	if start, end := fs.Resolve(Span{File: 7}); start != (LineCol{}) || end != (LineCol{}) {
		t.Errorf("Resolve on unknown file = %v %v", start, end)
	}
}

func TestAddBytesKeepsLoneCR(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddBytes("x.sv", []byte("a\rb\n"), 0))
	if string(f.Content) != "a\rb\n" || f.Flags&FileNormalizedCRLF != 0 {
		t.Fatalf("content = %q flags = %b", f.Content, f.Flags)
	}
	if got := string(f.Restore(f.Content)); got != "a\rb\n" {
		t.Fatalf("Restore = %q", got)
	}
}

func TestFileSetLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.sv")
	raw := []byte("\xEF\xBB\xBFmodule m;\r\nendmodule\r\n")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if got, want := string(f.Content), "module m;\nendmodule\n"; got != want {
		t.Fatalf("content = %q, want %q", got, want)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("flags = %b, want BOM and CRLF bits", f.Flags)
	}
	if got := string(f.Restore(f.Content)); got != string(raw) {
		t.Fatalf("Restore = %q, want %q", got, string(raw))
	}
}

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("x.sv", []byte("ab\ncd\n\nef"))
	f := fs.Get(id)

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{2, LineCol{Line: 1, Col: 3}}, // сам '\n' принадлежит первой строке
		{3, LineCol{Line: 2, Col: 1}},
		{6, LineCol{Line: 3, Col: 1}},
		{8, LineCol{Line: 4, Col: 2}},
	}
	for _, tt := range tests {
		if got := f.Position(tt.off); got != tt.want {
			t.Errorf("Position(%d) = %+v, want %+v", tt.off, got, tt.want)
		}
	}

	if got := f.GetLine(2); got != "cd" {
		t.Errorf("GetLine(2) = %q, want %q", got, "cd")
	}
	if got := f.GetLine(3); got != "" {
		t.Errorf("GetLine(3) = %q, want empty", got)
	}
	if got := f.GetLine(4); got != "ef" {
		t.Errorf("GetLine(4) = %q, want %q", got, "ef")
	}
	if f.LineCount() != 4 {
		t.Errorf("LineCount() = %d, want 4", f.LineCount())
	}
	if got := f.GetLine(9); got != "" {
		t.Errorf("GetLine(9) = %q, want empty", got)
	}
}
