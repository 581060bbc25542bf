package driver

import "time"

// Stage describes a step of formatting one file.
type Stage string

const (
	StageParse  Stage = "parse"
	StageRender Stage = "render"
	StageWrite  Stage = "write"
	// StageFile closes a file: exactly one Done or Error per file.
	StageFile Stage = "file"
)

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for a file.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
	Changed bool // StageFile only: the output differs from the input
}

// ProgressSink consumes progress events. It may be called from several
// goroutines at once.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
