package dispatch

import (
	"io"
	"time"

	"github.com/robotalks/pinata.go/pkg/target/cryp"
)

// State is the dispatcher state.
type State int

const (
	// StateIdle means waiting for an opcode.
	StateIdle State = iota
	// StateProcessing means a handler is running.
	StateProcessing
)

func (s State) String() string {
	if s == StateProcessing {
		return "processing"
	}
	return "idle"
}

// StateNotifier is called when dispatcher state changed.
type StateNotifier interface {
	StateChanged(State)
}

// StateChangedFunc is func type of StateNotifier.
type StateChangedFunc func(State)

// StateChanged implements StateNotifier.
func (f StateChangedFunc) StateChanged(state State) {
	f(state)
}

// Report summarizes a finished command.
type Report struct {
	Outcome cryp.Outcome
	Repeats int
}

// Handler processes one command after its opcode was read.
// It reads its own payload from link and writes the response.
type Handler interface {
	HandleCommand(c *Context, link io.ReadWriter) (Report, error)
}

// HandleCommandFunc is func type of Handler.
type HandleCommandFunc func(*Context, io.ReadWriter) (Report, error)

// HandleCommand implements Handler.
func (f HandleCommandFunc) HandleCommand(c *Context, link io.ReadWriter) (Report, error) {
	return f(c, link)
}

// Event describes a command whose response has been sent.
type Event struct {
	Seq      uint64
	Opcode   byte
	Report   Report
	Duration time.Duration
}

// Observer is called after each completed command.
type Observer interface {
	CommandDone(Event)
}

// CommandDoneFunc is func type of Observer.
type CommandDoneFunc func(Event)

// CommandDone implements Observer.
func (f CommandDoneFunc) CommandDone(evt Event) {
	f(evt)
}
