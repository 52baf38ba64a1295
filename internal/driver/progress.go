package driver

import "time"

// Stage names a step of a tokenize run as shown by progress sinks.
type Stage string

const (
	// StageLoad reads and normalizes source files.
	StageLoad Stage = "load"
	// StageCache looks up cached token streams.
	StageCache Stage = "cache"
	// StageLex runs the scanner.
	StageLex Stage = "lex"
)

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for a file (or for the whole run when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Tokens  int
	Invalid int
	Cached  bool
	Elapsed time.Duration
	Err     error
}

// ProgressSink consumes progress events. Implementations must be goroutine-safe.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

// OnEvent sends evt, blocking while the channel is full.
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
