package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimerAddAccumulates(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Add("parse", time.Millisecond)
		}()
	}
	wg.Wait()

	r := tm.Report()
	if len(r.Phases) != 1 {
		t.Fatalf("phases = %d, want 1", len(r.Phases))
	}
	if r.Phases[0].Count != 10 || r.Phases[0].Note != "10 files" {
		t.Fatalf("phase = %+v, want 10 calls", r.Phases[0])
	}
	if r.Phases[0].DurationMS != 10 || r.TotalMS != 10 {
		t.Fatalf("duration = %v ms, total = %v ms, want 10", r.Phases[0].DurationMS, r.TotalMS)
	}
}

func TestTimerTotalUsesWallStages(t *testing.T) {
	tm := NewTimer()
	stop := tm.Begin("format")
	tm.Add("render", time.Hour)
	stop("3 files, jobs=2")

	r := tm.Report()
	if r.Phases[0].Name != "format" || r.Phases[1].Name != "render" {
		t.Fatalf("stages out of first-use order: %+v", r.Phases)
	}
	if r.TotalMS >= float64(time.Hour/time.Millisecond) {
		t.Fatalf("total %v ms includes summed stage", r.TotalMS)
	}
	s := tm.Summary()
	if !strings.Contains(s, "(3 files, jobs=2)") || !strings.Contains(s, "(1 files)") {
		t.Fatalf("summary missing notes:\n%s", s)
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.Begin("x")("")
	tm.Add("y", time.Second)
	if r := tm.Report(); len(r.Phases) != 0 {
		t.Fatalf("nil timer reported %v", r)
	}
}
