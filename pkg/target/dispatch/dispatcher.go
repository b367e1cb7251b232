package dispatch

import (
	"context"
	"io"
	"sync/atomic"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/pinata.go/pkg/target/rxbuf"
)

// Dispatcher reads opcodes from a link and runs their handlers.
type Dispatcher struct {
	Context  *Context
	Notifier StateNotifier
	Observer Observer

	handlers map[byte]Handler
	state    int32
	seq      uint64
}

// New creates a Dispatcher without handlers.
func New(c *Context) *Dispatcher {
	return &Dispatcher{Context: c, handlers: make(map[byte]Handler)}
}

// Handle registers the handler for opcode.
func (d *Dispatcher) Handle(opcode byte, h Handler) *Dispatcher {
	d.handlers[opcode] = h
	return d
}

// State gets the state.
func (d *Dispatcher) State() State {
	return State(atomic.LoadInt32(&d.state))
}

// Serve processes commands until the link fails or ctx is done.
// ctx is only checked between commands; to interrupt a blocking read the
// caller closes the link.
func (d *Dispatcher) Serve(ctx context.Context, link io.ReadWriter) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := d.Dispatch(link); err != nil {
			return err
		}
	}
}

// Dispatch reads one opcode and processes the command.
// Unknown opcodes are dropped without a response.
func (d *Dispatcher) Dispatch(link io.ReadWriter) error {
	var op [1]byte
	if _, err := io.ReadFull(link, op[:]); err != nil {
		return &rxbuf.LinkError{Op: "read", Err: err}
	}
	h := d.handlers[op[0]]
	if h == nil {
		glog.V(1).Infof("unknown opcode %#02x ignored", op[0])
		return nil
	}

	d.setState(StateProcessing)
	start := time.Now()
	report, err := h.HandleCommand(d.Context, link)
	elapsed := time.Since(start)
	d.setState(StateIdle)
	if err != nil {
		glog.Errorf("command op=%#02x failed: %v", op[0], err)
		return err
	}

	evt := Event{
		Seq:      atomic.AddUint64(&d.seq, 1),
		Opcode:   op[0],
		Report:   report,
		Duration: elapsed,
	}
	glog.V(2).Infof("command %d op=%#02x outcome=%s repeats=%d in %s",
		evt.Seq, evt.Opcode, report.Outcome, report.Repeats, elapsed)
	if o := d.Observer; o != nil {
		o.CommandDone(evt)
	}
	return nil
}

func (d *Dispatcher) setState(state State) {
	if State(atomic.SwapInt32(&d.state, int32(state))) == state {
		return
	}
	if n := d.Notifier; n != nil {
		n.StateChanged(state)
	}
}

func send(w io.Writer, p []byte) error {
	n, err := w.Write(p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return &rxbuf.LinkError{Op: "write", Err: err}
	}
	return nil
}
