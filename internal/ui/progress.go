package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"svfmt/internal/driver"
)

// fileState is the row state of one file; the order follows the driver
// stages.
type fileState uint8

const (
	stateQueued fileState = iota
	stateParsing
	stateRendering
	stateWriting
	stateUnchanged
	stateReformatted
	stateFailed
)

var stateInfo = [...]struct {
	label  string
	color  string
	weight float64 // share of the file's work done on entering the state
}{
	stateQueued:      {"queued", "8", 0},
	stateParsing:     {"parsing", "6", 0.1},
	stateRendering:   {"formatting", "6", 0.5},
	stateWriting:     {"writing", "6", 0.9},
	stateUnchanged:   {"unchanged", "7", 1},
	stateReformatted: {"reformatted", "2", 1},
	stateFailed:      {"error", "1", 1},
}

func (s fileState) String() string { return stateInfo[s].label }
func (s fileState) final() bool    { return s >= stateUnchanged }

var workingStates = map[driver.Stage]fileState{
	driver.StageParse:  stateParsing,
	driver.StageRender: stateRendering,
	driver.StageWrite:  stateWriting,
}

type fileRow struct {
	path  string
	state fileState
}

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	rows    []fileRow
	byPath  map[string]int
	width   int
	height  int
	done    bool
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model for a multi-file run. A row
// appears with the first event of a file; the model quits when events is
// closed.
func NewProgressModel(title string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 76

	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     bar,
		byPath:  make(map[string]int),
		width:   80,
		height:  24,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(driver.Event(msg)), m.next())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 4
		}
		if msg.Height > 0 {
			m.height = msg.Height
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

// apply moves the file's row forward; a final state is never left.
func (m *progressModel) apply(ev driver.Event) tea.Cmd {
	if ev.File == "" {
		return nil
	}
	i, ok := m.byPath[ev.File]
	if !ok {
		i = len(m.rows)
		m.byPath[ev.File] = i
		m.rows = append(m.rows, fileRow{path: ev.File})
	}
	row := &m.rows[i]
	if row.state.final() {
		return nil
	}
	switch {
	case ev.Status == driver.StatusError:
		row.state = stateFailed
	case ev.Stage == driver.StageFile && ev.Changed:
		row.state = stateReformatted
	case ev.Stage == driver.StageFile:
		row.state = stateUnchanged
	case ev.Status == driver.StatusWorking:
		if s, ok := workingStates[ev.Stage]; ok {
			row.state = s
		}
	}
	return m.bar.SetPercent(m.percent())
}

func (m *progressModel) percent() float64 {
	if len(m.rows) == 0 {
		return 0
	}
	var sum float64
	for _, r := range m.rows {
		sum += stateInfo[r.state].weight
	}
	return sum / float64(len(m.rows))
}

func (m *progressModel) count(pred func(fileState) bool) int {
	n := 0
	for _, r := range m.rows {
		if pred(r.state) {
			n++
		}
	}
	return n
}

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	header := fmt.Sprintf("%s (%d/%d)", m.title, m.count(fileState.final), len(m.rows))
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(header))
	b.WriteString("\n\n")

	const labelWidth = 12
	nameWidth := max(m.width-labelWidth-4, 20)
	shown := m.visibleRows()
	for _, r := range shown {
		info := stateInfo[r.state]
		label := lipgloss.NewStyle().Foreground(lipgloss.Color(info.color)).Render(fmt.Sprintf("%*s", labelWidth, info.label))
		fmt.Fprintf(&b, "  %s %s\n", label, truncate(r.path, nameWidth))
	}
	if hidden := len(m.rows) - len(shown); hidden > 0 {
		fmt.Fprintf(&b, "  %*s\n", labelWidth, fmt.Sprintf("+%d more", hidden))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteString("\n")
	return b.String()
}

// visibleRows fits the list into the terminal: failures and files in flight
// first, then the rest in arrival order.
func (m *progressModel) visibleRows() []fileRow {
	limit := max(m.height-6, 3)
	if len(m.rows) <= limit {
		return m.rows
	}
	out := make([]fileRow, 0, limit)
	for _, pick := range []func(fileState) bool{
		func(s fileState) bool { return s == stateFailed },
		func(s fileState) bool { return !s.final() && s != stateQueued },
		func(s fileState) bool { return s != stateFailed && (s.final() || s == stateQueued) },
	} {
		for _, r := range m.rows {
			if len(out) == limit {
				return out
			}
			if pick(r.state) {
				out = append(out, r)
			}
		}
	}
	return out
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
