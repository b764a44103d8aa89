package mode

import (
	"github.com/Vedant-Asati03/vim-engine/internal/engine/buffer"
	"github.com/Vedant-Asati03/vim-engine/internal/event"
	"github.com/Vedant-Asati03/vim-engine/internal/input/excmd"
	"github.com/Vedant-Asati03/vim-engine/internal/input/keymap"
	"github.com/Vedant-Asati03/vim-engine/internal/telemetry"
)

// Flags set by modes on Enter and cleared on Exit. Bindings can guard on
// them with when clauses.
const (
	FlagVisualActive  = "visual_active"
	FlagCommandActive = "command_active"
)

// CommandState is the command-line text being edited and the lines
// submitted so far.
type CommandState struct {
	Text    string
	History []string
}

// VisualState holds the fixed end of the visual selection.
type VisualState struct {
	Anchor buffer.Position
	Active bool
}

// Context is the state shared by every mode and action.
type Context struct {
	Buffer    *buffer.Buffer
	Registers *buffer.RegisterBank
	Bus       *event.Bus
	Resolver  *keymap.Resolver

	// Commands executes submitted command lines. Without it, a submit only
	// publishes command.submit.
	Commands *excmd.Dispatcher

	// Flags are the keymap guard flags.
	Flags map[string]bool

	Command CommandState
	Visual  VisualState

	Observer telemetry.Observer

	// Extras holds host extensions.
	Extras map[string]any
}

// NewContext creates a context over buf. Registers default to the buffer's
// bank.
func NewContext(buf *buffer.Buffer, bus *event.Bus, resolver *keymap.Resolver) *Context {
	ctx := &Context{
		Buffer:   buf,
		Bus:      bus,
		Resolver: resolver,
		Flags:    make(map[string]bool),
		Observer: telemetry.Nop(),
		Extras:   make(map[string]any),
	}
	if buf != nil {
		ctx.Registers = buf.Registers()
	}
	return ctx
}

// SetFlag sets a keymap guard flag.
func (c *Context) SetFlag(name string, v bool) {
	if c.Flags == nil {
		c.Flags = make(map[string]bool)
	}
	c.Flags[name] = v
}

// Flag reads a keymap guard flag. Missing flags are false.
func (c *Context) Flag(name string) bool {
	return c.Flags[name]
}

// Emit publishes on the bus, if there is one.
func (c *Context) Emit(topic string, payload any) {
	if c.Bus == nil {
		return
	}
	if _, err := c.Bus.Emit(topic, payload); err != nil {
		c.observer().Event("mode.emit_error", telemetry.Attrs{"topic": topic, "error": err.Error()})
	}
}

func (c *Context) observer() telemetry.Observer {
	return telemetry.OrNop(c.Observer)
}

// registers returns the context's bank, falling back to the buffer's.
func (c *Context) registers() *buffer.RegisterBank {
	if c.Registers != nil {
		return c.Registers
	}
	return c.Buffer.Registers()
}
