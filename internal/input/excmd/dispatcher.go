package excmd

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Vedant-Asati03/vim-engine/internal/engine/buffer"
	"github.com/Vedant-Asati03/vim-engine/internal/event"
	"github.com/Vedant-Asati03/vim-engine/internal/telemetry"
)

// Outcome statuses.
const (
	StatusEmpty = "command_empty"
	StatusError = "command_error"
	StatusEcho  = "command_echo"
)

// ErrDuplicateCommand is returned by Register for a name already taken.
var ErrDuplicateCommand = errors.New("excmd: duplicate command")

// Outcome is the result of executing one command line.
type Outcome struct {
	// Status is a machine-readable outcome such as "command_write_force".
	Status string

	// Message is a short human-readable result ("write!", the echoed text,
	// or the unknown command word).
	Message string

	// Command is the parsed line. It is zero for empty input.
	Command Command
}

// Env is what a command handler can reach.
type Env struct {
	Bus    *event.Bus
	Buffer *buffer.Buffer
}

// Snapshot returns the buffer view, or a zero view without a buffer.
func (e Env) Snapshot() buffer.View {
	if e.Buffer == nil {
		return buffer.View{}
	}
	return e.Buffer.Snapshot()
}

func (e Env) emit(topic string, payload any) {
	if e.Bus == nil {
		return
	}
	_, _ = e.Bus.Emit(topic, payload)
}

// Handler executes one parsed command.
type Handler func(env Env, cmd Command) Outcome

// Dispatcher maps command words to handlers.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	env      Env
	observer telemetry.Observer
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithObserver sets the telemetry observer.
func WithObserver(o telemetry.Observer) Option {
	return func(d *Dispatcher) {
		d.observer = telemetry.OrNop(o)
	}
}

// NewDispatcher creates a dispatcher with the built-in commands.
func NewDispatcher(bus *event.Bus, buf *buffer.Buffer, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[string]Handler),
		env:      Env{Bus: bus, Buffer: buf},
		observer: telemetry.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	for name, h := range builtins() {
		d.handlers[name] = h
	}
	return d
}

// Register adds a handler under each name. Names are command words without
// "!"; handlers see Command.Force themselves.
func (d *Dispatcher) Register(h Handler, names ...string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, name := range names {
		if _, ok := d.handlers[name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateCommand, name)
		}
	}
	for _, name := range names {
		d.handlers[name] = h
	}
	return nil
}

// Names returns the registered command words, sorted.
func (d *Dispatcher) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute trims text, publishes command.submit and runs the matching
// handler.
func (d *Dispatcher) Execute(text string) Outcome {
	text = strings.TrimSpace(text)
	span := d.observer.SpanStart("command.execute", telemetry.Attrs{"text": text})
	d.env.emit(TopicSubmit, SubmitPayload{Text: text})

	cmd, ok := Parse(text)
	if !ok {
		span.SetAttr("status", StatusEmpty)
		span.End(nil)
		return Outcome{Status: StatusEmpty}
	}

	d.mu.RLock()
	h, found := d.handlers[cmd.Name]
	d.mu.RUnlock()

	var out Outcome
	if found {
		out = h(d.env, cmd)
	} else {
		out = unknown(d.env, cmd)
	}
	out.Command = cmd
	span.SetAttr("status", out.Status)
	span.End(nil)
	return out
}

func unknown(env Env, cmd Command) Outcome {
	env.emit(TopicError, ErrorPayload{Command: cmd.Word(), Text: cmd.Raw})
	return Outcome{Status: StatusError, Message: cmd.Word()}
}
