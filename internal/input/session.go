package input

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Vedant-Asati03/vim-engine/internal/engine/buffer"
	"github.com/Vedant-Asati03/vim-engine/internal/event"
	"github.com/Vedant-Asati03/vim-engine/internal/input/action"
	"github.com/Vedant-Asati03/vim-engine/internal/input/excmd"
	"github.com/Vedant-Asati03/vim-engine/internal/input/key"
	"github.com/Vedant-Asati03/vim-engine/internal/input/keymap"
	"github.com/Vedant-Asati03/vim-engine/internal/input/mode"
	"github.com/Vedant-Asati03/vim-engine/internal/telemetry"
)

// Mirror attribute keys.
const (
	AttrMode    = "mode"
	AttrSession = "session"
	AttrCommand = "command"
)

// Session is one editing session: a buffer and the modal machinery that
// edits it.
type Session struct {
	id       string
	config   Config
	observer telemetry.Observer

	registry *keymap.Registry
	resolver *keymap.Resolver
	loader   *keymap.Loader
	watcher  *keymap.Watcher

	buffer   *buffer.Buffer
	bus      *event.Bus
	commands *excmd.Dispatcher
	ctx      *mode.Context
	manager  *mode.Manager

	hooks   *HookManager
	metrics *Metrics
}

// NewSession builds a session from cfg.
func NewSession(cfg Config) (*Session, error) {
	def := DefaultConfig()
	if cfg.InitialMode == "" {
		cfg.InitialMode = def.InitialMode
	}
	if cfg.PendingTimeout <= 0 {
		cfg.PendingTimeout = def.PendingTimeout
	}
	if cfg.Clock == nil {
		cfg.Clock = def.Clock
	}
	obs := telemetry.OrNop(cfg.Observer)

	s := &Session{
		id:       uuid.NewString(),
		config:   cfg,
		observer: obs,
		loader:   keymap.NewLoader(),
		hooks:    NewHookManager(),
		metrics:  &Metrics{},
	}

	s.registry = keymap.NewRegistry(keymap.WithObserver(obs))
	if !cfg.SkipDefaults {
		if err := action.LoadDefaults(s.registry, cfg.Keymap); err != nil {
			return nil, fmt.Errorf("load default keymap: %w", err)
		}
	}
	for _, dir := range cfg.KeymapDirs {
		s.loader.AddSearchPath(dir)
	}
	watched, err := s.loader.LoadAndRegister(s.registry)
	if err != nil {
		return nil, fmt.Errorf("load keymap dirs: %w", err)
	}
	for _, path := range cfg.KeymapFiles {
		watched = append(watched, path)
		if _, err := s.loader.Apply(s.registry, path); err != nil {
			return nil, fmt.Errorf("load keymap %s: %w", path, err)
		}
	}
	s.resolver = keymap.NewResolver(s.registry, keymap.WithResolverObserver(obs))

	bufOpts := []buffer.Option{buffer.WithText(cfg.Text)}
	if cfg.UndoLimit > 0 {
		bufOpts = append(bufOpts, buffer.WithUndoLimit(cfg.UndoLimit))
	}
	s.buffer = buffer.New(bufOpts...)
	if cfg.Clipboard != nil {
		s.buffer.Registers().SetClipboard(cfg.Clipboard)
	}

	s.bus = event.NewBus(
		event.WithClock(cfg.Clock),
		event.WithErrorHandler(func(err error) {
			obs.Event("event.handler_error", telemetry.Attrs{"error": err.Error()})
		}),
	)
	s.commands = excmd.NewDispatcher(s.bus, s.buffer, excmd.WithObserver(obs))

	s.ctx = mode.NewContext(s.buffer, s.bus, s.resolver)
	s.ctx.Commands = s.commands
	s.ctx.Observer = obs

	s.manager = mode.NewManager(s.ctx, mode.WithClock(cfg.Clock))
	s.manager.OnChange(func(from, to string) {
		s.metrics.switches.Add(1)
	})
	for _, m := range []mode.Mode{
		mode.NewNormalMode(cfg.PendingTimeout),
		mode.NewInsertMode(cfg.PendingTimeout),
		mode.NewVisualMode(cfg.PendingTimeout),
		mode.NewCommandMode(cfg.PendingTimeout),
	} {
		if err := s.manager.Register(m); err != nil {
			return nil, err
		}
	}
	if err := s.manager.Switch(cfg.InitialMode); err != nil {
		return nil, err
	}

	if cfg.WatchKeymaps && len(watched) > 0 {
		if err := s.watchKeymaps(watched); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Session) watchKeymaps(paths []string) error {
	w, err := keymap.NewWatcher(s.registry, s.loader,
		keymap.WithWatcherObserver(s.observer),
		keymap.WithReloadHandler(func(r keymap.ReloadResult) {
			_, _ = s.bus.Emit("keymap.reload", r)
		}),
	)
	if err != nil {
		return fmt.Errorf("keymap watcher: %w", err)
	}
	for _, p := range paths {
		if err := w.Watch(p); err != nil {
			_ = w.Close()
			return fmt.Errorf("watch %s: %w", p, err)
		}
	}
	s.watcher = w
	return nil
}

// Close stops the keymap watcher, if any.
func (s *Session) Close() error {
	if s.watcher == nil {
		return nil
	}
	err := s.watcher.Close()
	s.watcher = nil
	return err
}

// HandleKey runs the hooks, then the active mode.
func (s *Session) HandleKey(st key.Stroke) (mode.Result, error) {
	st = st.Normalize()
	s.metrics.keys.Add(1)
	if name, ok := s.hooks.run(st, s.manager.ActiveName()); ok {
		s.metrics.hookConsumptions.Add(1)
		s.observer.Event("input.hook_consumed", telemetry.Attrs{"hook": name, "key": st.Token()})
		return mode.Result{Consumed: true, Status: "hook", Message: name}, nil
	}
	res, err := s.manager.HandleKey(st)
	if res.Consumed {
		s.metrics.consumed.Add(1)
	}
	return res, err
}

// HandleKeys parses each spec with key.Parse and feeds it. It stops at the
// first error and returns the results so far.
func (s *Session) HandleKeys(specs ...string) ([]mode.Result, error) {
	results := make([]mode.Result, 0, len(specs))
	for _, spec := range specs {
		st, err := key.Parse(spec)
		if err != nil {
			return results, err
		}
		res, err := s.HandleKey(st)
		results = append(results, res)
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

// TypeText feeds every rune of text as a text stroke.
func (s *Session) TypeText(text string) error {
	for _, r := range text {
		if _, err := s.HandleKey(key.TextStroke(r)); err != nil {
			return err
		}
	}
	return nil
}

// ProcessTimeouts fires expired pending timers.
func (s *Session) ProcessTimeouts() map[string]mode.Result {
	res := s.manager.ProcessTimeouts()
	s.metrics.timeouts.Add(uint64(len(res)))
	return res
}

// ForceTimeout fires the timer of one mode, or of every mode when name is
// empty.
func (s *Session) ForceTimeout(name string) map[string]mode.Result {
	res := s.manager.ForceTimeout(name)
	s.metrics.timeouts.Add(uint64(len(res)))
	return res
}

// Mirror returns what a host renders: the buffer plus the mode, session id
// and command-line text as attributes.
func (s *Session) Mirror() buffer.Mirror {
	attrs := map[string]string{
		AttrMode:    s.manager.ActiveName(),
		AttrSession: s.id,
	}
	if s.manager.ActiveName() == mode.Command {
		attrs[AttrCommand] = ":" + s.ctx.Command.Text
	}
	return s.buffer.Mirror(attrs)
}

// ApplyMirror adopts a host edit.
func (s *Session) ApplyMirror(m buffer.Mirror) error {
	return s.buffer.ApplyMirror(m)
}

// LoadKeymap loads a keymap file into the registry and returns the number
// of bindings registered.
func (s *Session) LoadKeymap(path string) (int, error) {
	return s.loader.Apply(s.registry, path)
}

// Describe returns a one-line summary for logs.
func (s *Session) Describe() string {
	st := s.registry.Stats()
	return strings.Join([]string{
		"session=" + s.id,
		"mode=" + s.manager.ActiveName(),
		fmt.Sprintf("actions=%d", st.ActionCount),
		fmt.Sprintf("bindings=%d", st.BindingCount),
	}, " ")
}

// SessionID returns the unique session id.
func (s *Session) SessionID() string { return s.id }

// Mode returns the active mode name.
func (s *Session) Mode() string { return s.manager.ActiveName() }

// Registry returns the keymap registry.
func (s *Session) Registry() *keymap.Registry { return s.registry }

// Resolver returns the keymap resolver.
func (s *Session) Resolver() *keymap.Resolver { return s.resolver }

// Bus returns the event bus.
func (s *Session) Bus() *event.Bus { return s.bus }

// Buffer returns the edited buffer.
func (s *Session) Buffer() *buffer.Buffer { return s.buffer }

// Commands returns the Ex command dispatcher.
func (s *Session) Commands() *excmd.Dispatcher { return s.commands }

// Context returns the shared mode context.
func (s *Session) Context() *mode.Context { return s.ctx }

// Manager returns the mode manager.
func (s *Session) Manager() *mode.Manager { return s.manager }

// Hooks returns the pre-key hook chain.
func (s *Session) Hooks() *HookManager { return s.hooks }

// Metrics returns the session counters.
func (s *Session) Metrics() *Metrics { return s.metrics }
