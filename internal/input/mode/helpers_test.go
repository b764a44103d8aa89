package mode

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Vedant-Asati03/vim-engine/internal/engine/buffer"
	"github.com/Vedant-Asati03/vim-engine/internal/event"
	"github.com/Vedant-Asati03/vim-engine/internal/input/excmd"
	"github.com/Vedant-Asati03/vim-engine/internal/input/key"
	"github.com/Vedant-Asati03/vim-engine/internal/input/keymap"
)

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type fixture struct {
	reg   *keymap.Registry
	ctx   *Context
	mgr   *Manager
	clock *fakeClock
	rec   *event.Recorder
}

func switchTo(name string) ActionFunc {
	return func(*Context, keymap.Match) Result {
		return Result{Consumed: true, SwitchTo: name, Message: "enter_" + name}
	}
}

// newFixture wires the four modes over text with a small keymap:
// "i", "v", ":" and "g g" in normal, Enter in command.
func newFixture(t *testing.T, text string) *fixture {
	t.Helper()
	reg := keymap.NewRegistry()
	actions := []keymap.Action{
		keymap.NewAction("core.enter_insert", "", switchTo(Insert)),
		keymap.NewAction("core.enter_visual", "", switchTo(Visual)),
		keymap.NewAction("core.enter_command", "", switchTo(Command)),
		keymap.NewAction("core.cursor_top", "", ActionFunc(func(ctx *Context, _ keymap.Match) Result {
			_ = ctx.Buffer.SetCursor(buffer.Pos(0, 0))
			return Result{Consumed: true, Status: "cursor_top"}
		})),
		keymap.NewAction("command.submit_line", "", ActionFunc(func(ctx *Context, _ keymap.Match) Result {
			return SubmitLine(ctx)
		})),
		keymap.NewAction("plain", "", "not a handler"),
	}
	for _, a := range actions {
		require.NoError(t, reg.RegisterAction(a, false))
	}
	bindings := []keymap.Binding{
		keymap.MustBinding("normal.i", Normal, "i", "core.enter_insert"),
		keymap.MustBinding("normal.v", Normal, "v", "core.enter_visual"),
		keymap.MustBinding("normal.colon", Normal, ":", "core.enter_command"),
		keymap.MustBinding("normal.gg", Normal, "g g", "core.cursor_top").WithTimeout(500 * time.Millisecond),
		keymap.MustBinding("normal.plain", Normal, "Z", "plain"),
		keymap.MustBinding("command.enter", Command, "Enter", "command.submit_line"),
	}
	for _, b := range bindings {
		require.NoError(t, reg.RegisterBinding(b, false))
	}

	bus := event.NewBus()
	buf := buffer.New(buffer.WithText(text))
	ctx := NewContext(buf, bus, keymap.NewResolver(reg))
	ctx.Commands = excmd.NewDispatcher(bus, buf)

	clock := newFakeClock()
	mgr := NewManager(ctx, WithClock(clock.Now))
	require.NoError(t, mgr.Register(NewNormalMode(0)))
	require.NoError(t, mgr.Register(NewInsertMode(0)))
	require.NoError(t, mgr.Register(NewVisualMode(0)))
	require.NoError(t, mgr.Register(NewCommandMode(0)))

	return &fixture{reg: reg, ctx: ctx, mgr: mgr, clock: clock, rec: event.Record(bus, "**")}
}

func (f *fixture) press(t *testing.T, specs ...string) Result {
	t.Helper()
	var res Result
	for _, spec := range specs {
		s, err := key.Parse(spec)
		require.NoError(t, err)
		res, err = f.mgr.HandleKey(s)
		require.NoError(t, err)
	}
	return res
}

func (f *fixture) typeText(t *testing.T, text string) {
	t.Helper()
	for _, r := range text {
		_, err := f.mgr.HandleKey(key.TextStroke(r))
		require.NoError(t, err)
	}
}
