package mode

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Vedant-Asati03/vim-engine/internal/input/key"
	"github.com/Vedant-Asati03/vim-engine/internal/telemetry"
)

// Manager errors.
var (
	ErrModeExists   = errors.New("mode: already registered")
	ErrUnknownMode  = errors.New("mode: unknown mode")
	ErrNoActiveMode = errors.New("mode: no active mode")
)

// TopicSwitch is published after every mode change.
const TopicSwitch = "mode.switch"

// SwitchPayload accompanies mode.switch.
type SwitchPayload struct {
	From string
	To   string
}

// Timer is a pending sequence timeout for one mode.
type Timer struct {
	Deadline   time.Time
	Timeout    time.Duration
	Generation uint64
}

// ChangeFunc is called after the active mode changes.
type ChangeFunc func(from, to string)

// Manager owns the registered modes, the active mode and their timers.
type Manager struct {
	ctx    *Context
	modes  map[string]Mode
	order  []string
	active string

	timers     map[string]Timer
	generation uint64

	now       func() time.Time
	listeners []ChangeFunc
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithClock sets the time source used for timer deadlines.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewManager creates a manager over ctx.
func NewManager(ctx *Context, opts ...ManagerOption) *Manager {
	m := &Manager{
		ctx:    ctx,
		modes:  make(map[string]Mode),
		timers: make(map[string]Timer),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Context returns the shared mode context.
func (m *Manager) Context() *Context {
	return m.ctx
}

// Register adds a mode. The first registered mode becomes active and is
// entered with an empty previous name.
func (m *Manager) Register(md Mode) error {
	name := md.Name()
	if _, ok := m.modes[name]; ok {
		return fmt.Errorf("%w: %s", ErrModeExists, name)
	}
	m.modes[name] = md
	m.order = append(m.order, name)
	if m.active == "" {
		m.active = name
		md.Enter(m.ctx, "")
	}
	return nil
}

// OnChange registers fn to run after every switch.
func (m *Manager) OnChange(fn ChangeFunc) {
	m.listeners = append(m.listeners, fn)
}

// Modes returns the registered mode names in registration order.
func (m *Manager) Modes() []string {
	return append([]string(nil), m.order...)
}

// Get returns a registered mode.
func (m *Manager) Get(name string) (Mode, bool) {
	md, ok := m.modes[name]
	return md, ok
}

// Active returns the active mode, or nil before any Register.
func (m *Manager) Active() Mode {
	return m.modes[m.active]
}

// ActiveName returns the active mode name.
func (m *Manager) ActiveName() string {
	return m.active
}

// Pending returns the armed timer of a mode.
func (m *Manager) Pending(name string) (Timer, bool) {
	t, ok := m.timers[name]
	return t, ok
}

// Switch makes name the active mode. Switching to the active mode does
// nothing.
func (m *Manager) Switch(name string) error {
	next, ok := m.modes[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMode, name)
	}
	from := m.active
	if from == name {
		return nil
	}

	span := m.ctx.observer().SpanStart("mode.switch", telemetry.Attrs{"from": from, "to": name})
	if prev, ok := m.modes[from]; ok {
		m.cancel(from)
		prev.Exit(m.ctx, name)
	}
	m.active = name
	next.Enter(m.ctx, from)
	m.cancel(name)
	span.End(nil)

	m.ctx.Emit(TopicSwitch, SwitchPayload{From: from, To: name})
	for _, fn := range m.listeners {
		fn(from, name)
	}
	return nil
}

// HandleKey routes a stroke to the active mode and applies the result:
// the mode's timer is armed or cancelled, then any requested switch runs.
func (m *Manager) HandleKey(s key.Stroke) (Result, error) {
	md := m.Active()
	if md == nil {
		return Result{}, ErrNoActiveMode
	}
	s = s.Normalize()
	span := m.ctx.observer().SpanStart("mode.handle_key", telemetry.Attrs{
		"mode": md.Name(),
		"key":  s.Token(),
	})
	res := md.HandleKey(m.ctx, s)
	span.SetAttr("status", res.Status)
	err := m.apply(md, res)
	span.End(err)
	return res, err
}

// ProcessTimeouts fires every timer whose deadline has passed, in mode name
// order.
func (m *Manager) ProcessTimeouts() map[string]Result {
	now := m.now()
	type due struct {
		name string
		gen  uint64
	}
	var expired []due
	for name, t := range m.timers {
		if !t.Deadline.After(now) {
			expired = append(expired, due{name, t.Generation})
		}
	}
	sort.Slice(expired, func(i, j int) bool { return expired[i].name < expired[j].name })

	results := make(map[string]Result, len(expired))
	for _, d := range expired {
		results[d.name] = m.fire(d.name, d.gen)
	}
	return results
}

// ForceTimeout fires the timer of name regardless of its deadline. An empty
// name fires every armed timer.
func (m *Manager) ForceTimeout(name string) map[string]Result {
	results := make(map[string]Result)
	if name != "" {
		t, ok := m.timers[name]
		if !ok {
			return results
		}
		results[name] = m.fire(name, t.Generation)
		return results
	}

	names := make([]string, 0, len(m.timers))
	gens := make(map[string]uint64, len(m.timers))
	for n, t := range m.timers {
		names = append(names, n)
		gens[n] = t.Generation
	}
	sort.Strings(names)
	for _, n := range names {
		results[n] = m.fire(n, gens[n])
	}
	return results
}

// fire runs a mode's timeout if gen is still the armed generation.
func (m *Manager) fire(name string, gen uint64) Result {
	t, ok := m.timers[name]
	if !ok || t.Generation != gen {
		return Result{Status: StatusTimeout}
	}
	delete(m.timers, name)
	md, ok := m.modes[name]
	if !ok {
		return Result{Status: StatusTimeout}
	}

	span := m.ctx.observer().SpanStart("mode.timeout", telemetry.Attrs{"mode": name})
	res := md.HandleTimeout(m.ctx)
	span.SetAttr("status", res.Status)
	err := m.apply(md, res)
	span.End(err)
	return res
}

func (m *Manager) apply(md Mode, res Result) error {
	if res.Timeout > 0 {
		m.arm(md.Name(), res.Timeout)
	} else {
		m.cancel(md.Name())
	}
	if res.SwitchTo != "" {
		return m.Switch(res.SwitchTo)
	}
	return nil
}

func (m *Manager) arm(name string, d time.Duration) {
	m.generation++
	m.timers[name] = Timer{
		Deadline:   m.now().Add(d),
		Timeout:    d,
		Generation: m.generation,
	}
}

func (m *Manager) cancel(name string) {
	delete(m.timers, name)
}
