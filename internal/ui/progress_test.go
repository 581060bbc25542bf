package ui

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"svfmt/internal/driver"
)

func TestProgressModelTracksFiles(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("svfmt", events).(*progressModel)

	m.Update(eventMsg{File: "a.sv", Stage: driver.StageParse, Status: driver.StatusQueued})
	m.Update(eventMsg{File: "b.sv", Stage: driver.StageParse, Status: driver.StatusQueued})
	m.Update(eventMsg{File: "c.sv", Stage: driver.StageParse, Status: driver.StatusQueued})
	m.Update(eventMsg{File: "a.sv", Stage: driver.StageRender, Status: driver.StatusWorking})

	if len(m.rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(m.rows))
	}
	if m.rows[0].state != stateRendering {
		t.Fatalf("a.sv state = %s", m.rows[0].state)
	}

	m.Update(eventMsg{File: "a.sv", Stage: driver.StageFile, Status: driver.StatusDone, Changed: true})
	m.Update(eventMsg{File: "b.sv", Stage: driver.StageRender, Status: driver.StatusError, Err: errors.New("boom")})
	m.Update(eventMsg{File: "c.sv", Stage: driver.StageFile, Status: driver.StatusDone})
	// события после финального состояния игнорируются
	m.Update(eventMsg{File: "a.sv", Stage: driver.StageWrite, Status: driver.StatusWorking})
	m.Update(eventMsg{File: "b.sv", Stage: driver.StageFile, Status: driver.StatusError})

	want := []fileState{stateReformatted, stateFailed, stateUnchanged}
	for i, w := range want {
		if m.rows[i].state != w {
			t.Errorf("row %d = %s, want %s", i, m.rows[i].state, w)
		}
	}
	if m.percent() != 1 {
		t.Errorf("percent = %v, want 1", m.percent())
	}
	view := m.View()
	for _, s := range []string{"svfmt (3/3)", "reformatted", "unchanged", "error"} {
		if !strings.Contains(view, s) {
			t.Errorf("view missing %q:\n%s", s, view)
		}
	}

	_, cmd := m.Update(doneMsg{})
	if cmd == nil || !m.done || !strings.Contains(m.View(), "done: svfmt") {
		t.Fatal("doneMsg must finish the model")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("doneMsg must quit the program")
	}
}

func TestVisibleRowsPrefersFailures(t *testing.T) {
	m := NewProgressModel("svfmt", nil).(*progressModel)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	for i := range 10 {
		m.apply(driver.Event{File: fmt.Sprintf("f%d.sv", i), Stage: driver.StageParse, Status: driver.StatusQueued})
	}
	m.apply(driver.Event{File: "f9.sv", Stage: driver.StageFile, Status: driver.StatusError})
	m.apply(driver.Event{File: "f8.sv", Stage: driver.StageParse, Status: driver.StatusWorking})

	rows := m.visibleRows()
	if len(rows) != 4 {
		t.Fatalf("visible = %d, want 4", len(rows))
	}
	if rows[0].path != "f9.sv" || rows[1].path != "f8.sv" || rows[2].path != "f0.sv" {
		t.Fatalf("unexpected order %+v", rows)
	}
	if !strings.Contains(m.View(), "+6 more") {
		t.Fatalf("view must count hidden rows:\n%s", m.View())
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdef", 10); got != "abcdef" {
		t.Fatalf("got %q", got)
	}
	if got := truncate("abcdefghij", 6); got != "abc..." {
		t.Fatalf("got %q", got)
	}
	if got := truncate("rtl/core/alu_top.sv", 10); got != "rtl/cor..." {
		t.Fatalf("got %q", got)
	}
	if got := truncate("abcdef", 2); got != "ab" {
		t.Fatalf("got %q", got)
	}
}
