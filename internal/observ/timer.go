package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Timer collects the --timings report of one run. Wall stages (Begin) time
// the run itself; summed stages (Add) accumulate per-file work from many
// goroutines and may exceed the wall time. A nil *Timer records nothing.
type Timer struct {
	mu     sync.Mutex
	order  []string
	stages map[string]*stage
}

type stage struct {
	wall  bool
	dur   time.Duration
	calls int
	note  string
}

func NewTimer() *Timer { return &Timer{stages: make(map[string]*stage)} }

func (t *Timer) get(name string) *stage {
	st, ok := t.stages[name]
	if !ok {
		st = &stage{}
		t.stages[name] = st
		t.order = append(t.order, name)
	}
	return st
}

// Begin starts a wall stage; the returned func stops it with a note.
func (t *Timer) Begin(name string) func(note string) {
	if t == nil {
		return func(string) {}
	}
	t.mu.Lock()
	st := t.get(name)
	st.wall = true
	t.mu.Unlock()
	start := time.Now()
	return func(note string) {
		d := time.Since(start)
		t.mu.Lock()
		defer t.mu.Unlock()
		st.dur += d
		st.note = note
	}
}

// Add folds d into the summed stage name.
func (t *Timer) Add(name string, d time.Duration) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	st := t.get(name)
	st.dur += d
	st.calls++
}

type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Count      int     `json:"count,omitempty"`
	Note       string  `json:"note,omitempty"`
}

// Report lists stages in first-use order. TotalMS sums the wall stages, or
// the summed ones when no wall stage was recorded.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	if t == nil {
		return Report{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	var r Report
	var wall, summed time.Duration
	for _, name := range t.order {
		st := t.stages[name]
		note := st.note
		if st.wall {
			wall += st.dur
		} else {
			summed += st.dur
			note = fmt.Sprintf("%d files", st.calls)
		}
		r.Phases = append(r.Phases, PhaseReport{Name: name, DurationMS: millis(st.dur), Count: st.calls, Note: note})
	}
	if wall == 0 {
		wall = summed
	}
	r.TotalMS = millis(wall)
	return r
}

// Summary renders Report for stderr.
func (t *Timer) Summary() string {
	r := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range r.Phases {
		fmt.Fprintf(&sb, "  %-12s %9.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			sb.WriteString("  (" + p.Note + ")")
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "  %-12s %9.2f ms\n", "total", r.TotalMS)
	return sb.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
