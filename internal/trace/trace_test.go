package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "DEBUG"} {
		if _, err := ParseLevel(s); err != nil {
			t.Errorf("ParseLevel(%q) unexpected error: %v", s, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("ParseLevel must reject unknown levels")
	}
}

func TestShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelDebug, Scope(0), false},
		{LevelError, ScopeDriver, true},
		{LevelError, ScopePass, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)

	span := BeginFile(tr, "rtl/top.sv", 0)
	Point(tr, ScopeNode, "module_declaration", "", span.ID())
	span.WithExtra("changed", "true").WithExtra("bytes", "42").End("ok")

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 lines (node point filtered), got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "\u2192 file file rtl/top.sv") {
		t.Errorf("unexpected begin line %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "\u2190 file file rtl/top.sv (ok) {bytes=42, changed=true}") {
		t.Errorf("unexpected end line %q", lines[1])
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Point(tr, ScopeNode, "comment", "trailing", 0)

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if got["name"] != "comment" || got["scope"] != "node" || got["kind"] != "point" || got["detail"] != "trailing" {
		t.Fatalf("unexpected event %v", got)
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		Point(r, ScopePass, name, "", 0)
	}
	snap := r.Snapshot()
	if len(snap) != 2 || snap[0].Name != "b" || snap[1].Name != "c" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatal("missing tracer must resolve to Nop")
	}
	r := NewRingTracer(8, LevelPhase)
	ctx := WithTracer(context.Background(), r)
	span := Begin(FromContext(ctx), ScopeDriver, "fmt", 0)
	ctx = WithSpan(ctx, span)
	if CurrentSpan(ctx) != span.ID() || span.ID() == 0 {
		t.Fatalf("span id not propagated: %d vs %d", CurrentSpan(ctx), span.ID())
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr != Nop {
		t.Fatal("off level must yield Nop")
	}
	span := Begin(tr, ScopeDriver, "fmt", 0)
	if span.ID() != 0 || span.End("") != 0 {
		t.Fatal("span of a disabled tracer must be inert")
	}
}

func TestNewModes(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	Point(tr, ScopePass, "parse", "", 0)
	ring := RingOf(tr)
	if ring == nil || len(ring.Snapshot()) != 1 {
		t.Fatalf("both mode must keep a ring copy, got %v", ring)
	}
	if !strings.Contains(buf.String(), "pass parse") {
		t.Fatalf("both mode must stream too, got %q", buf.String())
	}

	tr, err = New(Config{Level: LevelPhase, Mode: ModeRing})
	if err != nil {
		t.Fatal(err)
	}
	if RingOf(tr) == nil {
		t.Fatal("ring mode must return a ring tracer")
	}
	if RingOf(Nop) != nil {
		t.Fatal("Nop has no ring")
	}
	if _, err := ParseMode("disk"); err == nil {
		t.Fatal("ParseMode must reject unknown modes")
	}
	if m, err := ParseMode("RING"); err != nil || m != ModeRing {
		t.Fatalf("ParseMode(RING) = %v, %v", m, err)
	}
}

func TestRingDump(t *testing.T) {
	r := NewRingTracer(4, LevelDetail)
	BeginFile(r, "a.sv", 0).End("changed")
	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatNDJSON); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 || !strings.Contains(lines[1], `"path":"a.sv"`) {
		t.Fatalf("unexpected dump:\n%s", buf.String())
	}
}
