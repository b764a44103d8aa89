package input

import (
	"sort"

	"github.com/Vedant-Asati03/vim-engine/internal/input/key"
)

// HookPriority defines the execution order for hooks.
// Lower values execute first.
type HookPriority int

const (
	// HookPriorityHigh runs early in the hook chain.
	HookPriorityHigh HookPriority = -100
	// HookPriorityNormal is the default priority.
	HookPriorityNormal HookPriority = 0
	// HookPriorityLow runs late in the hook chain.
	HookPriorityLow HookPriority = 100
)

// Hook sees every key before the active mode does.
type Hook interface {
	// PreKey returns true to consume the key; the mode never sees it.
	PreKey(s key.Stroke, mode string) bool
}

// HookFunc adapts a function to Hook.
type HookFunc func(s key.Stroke, mode string) bool

// PreKey implements Hook.
func (f HookFunc) PreKey(s key.Stroke, mode string) bool {
	return f(s, mode)
}

type hookEntry struct {
	name     string
	priority HookPriority
	seq      int
	hook     Hook
}

// HookManager runs hooks in priority order, then registration order.
type HookManager struct {
	hooks []hookEntry
	seq   int
}

// NewHookManager creates an empty hook chain.
func NewHookManager() *HookManager {
	return &HookManager{}
}

// Register adds a named hook. A hook with the same name is replaced.
func (m *HookManager) Register(name string, priority HookPriority, h Hook) {
	m.Unregister(name)
	m.seq++
	m.hooks = append(m.hooks, hookEntry{name: name, priority: priority, seq: m.seq, hook: h})
	sort.SliceStable(m.hooks, func(i, j int) bool {
		if m.hooks[i].priority != m.hooks[j].priority {
			return m.hooks[i].priority < m.hooks[j].priority
		}
		return m.hooks[i].seq < m.hooks[j].seq
	})
}

// Unregister removes a hook by name and reports whether it existed.
func (m *HookManager) Unregister(name string) bool {
	for i, e := range m.hooks {
		if e.name == name {
			m.hooks = append(m.hooks[:i], m.hooks[i+1:]...)
			return true
		}
	}
	return false
}

// Names returns the hook names in execution order.
func (m *HookManager) Names() []string {
	names := make([]string, len(m.hooks))
	for i, e := range m.hooks {
		names[i] = e.name
	}
	return names
}

// run returns the name of the consuming hook, if any.
func (m *HookManager) run(s key.Stroke, mode string) (string, bool) {
	for _, e := range m.hooks {
		if e.hook.PreKey(s, mode) {
			return e.name, true
		}
	}
	return "", false
}
