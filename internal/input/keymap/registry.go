package keymap

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Vedant-Asati03/vim-engine/internal/telemetry"
)

// Stats is a lightweight snapshot of the registry.
type Stats struct {
	ActionCount  int
	BindingCount int
	Modes        []string
	Revision     uint64
}

// Registry owns the action and binding tables.
//
// It is safe for concurrent use so a file watcher can reload bindings while
// the session reads them; the revision is the only signal derived caches
// need to watch.
type Registry struct {
	mu sync.RWMutex

	actions  map[string]Action
	bindings map[string]Binding

	// index maps mode -> key signature -> binding ids.
	index map[string]map[string]map[string]struct{}

	revision uint64
	obs      telemetry.Observer
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithObserver reports registry mutations to o.
func WithObserver(o telemetry.Observer) RegistryOption {
	return func(r *Registry) {
		r.obs = telemetry.OrNop(o)
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		actions:  make(map[string]Action),
		bindings: make(map[string]Binding),
		index:    make(map[string]map[string]map[string]struct{}),
		obs:      telemetry.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Revision returns the mutation counter.
func (r *Registry) Revision() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.revision
}

// RegisterAction adds an action. An existing id is replaced only when
// replace is set.
func (r *Registry) RegisterAction(a Action, replace bool) error {
	if a.ID == "" {
		return fmt.Errorf("%w: empty action id", ErrInvalidBinding)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.actions[a.ID]; exists && !replace {
		return fmt.Errorf("%w: %q", ErrDuplicateAction, a.ID)
	}
	r.actions[a.ID] = a
	r.revision++
	return nil
}

// Action returns the action registered under id.
func (r *Registry) Action(id string) (Action, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.actions[id]
	return a, ok
}

// Actions returns every action sorted by id.
func (r *Registry) Actions() []Action {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Action, 0, len(r.actions))
	for _, a := range r.actions {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// RegisterBinding indexes a binding.
//
// The action must already be registered. Without replace, an overlapping
// binding yields a *ConflictError and an existing id yields
// ErrDuplicateBinding. With replace, the conflicting bindings and any binding
// with the same id are removed first.
func (r *Registry) RegisterBinding(b Binding, replace bool) error {
	span := r.obs.SpanStart("keymap.register_binding", telemetry.Attrs{
		"binding_id": b.ID,
		"mode":       b.Mode,
		"keys":       b.Signature(),
	})
	err := r.registerBinding(b, replace)
	span.End(err)
	return err
}

func (r *Registry) registerBinding(b Binding, replace bool) error {
	if err := b.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.actions[b.ActionID]; !ok {
		return fmt.Errorf("%w: binding %q references %q", ErrUnknownAction, b.ID, b.ActionID)
	}

	conflicts := r.conflictsLocked(b, "")
	if len(conflicts) > 0 && !replace {
		return &ConflictError{Binding: b.clone(), Conflicts: conflicts}
	}

	if replace {
		for _, c := range conflicts {
			r.removeLocked(c)
		}
		if existing, ok := r.bindings[b.ID]; ok {
			r.removeLocked(existing)
		}
	} else if _, ok := r.bindings[b.ID]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateBinding, b.ID)
	}

	r.insertLocked(b.clone())
	r.revision++
	return nil
}

// UnregisterBinding removes a binding and returns it.
func (r *Registry) UnregisterBinding(id string) (Binding, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bindings[id]
	if !ok {
		return Binding{}, false
	}
	r.removeLocked(b)
	r.revision++
	return b, true
}

// UnregisterSource removes every binding whose Source is source and returns
// how many were removed.
func (r *Registry) UnregisterSource(source string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for _, b := range r.bindings {
		if b.Source == source {
			r.removeLocked(b)
			removed++
		}
	}
	if removed > 0 {
		r.revision++
	}
	return removed
}

// UpdateBinding applies update to a copy of the binding with the given id
// and re-indexes it. The id cannot be changed. On a conflict the original
// binding stays in place and the *ConflictError is returned.
func (r *Registry) UpdateBinding(id string, update func(*Binding)) (Binding, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.bindings[id]
	if !ok {
		return Binding{}, fmt.Errorf("%w: %q", ErrBindingNotFound, id)
	}

	updated := current.clone()
	update(&updated)
	updated.ID = id
	if err := updated.Validate(); err != nil {
		return Binding{}, err
	}
	if _, ok := r.actions[updated.ActionID]; !ok {
		return Binding{}, fmt.Errorf("%w: binding %q references %q", ErrUnknownAction, id, updated.ActionID)
	}

	r.removeLocked(current)
	if conflicts := r.conflictsLocked(updated, ""); len(conflicts) > 0 {
		r.insertLocked(current)
		return Binding{}, &ConflictError{Binding: updated, Conflicts: conflicts}
	}

	r.insertLocked(updated)
	r.revision++
	return updated.clone(), nil
}

// Binding returns the binding registered under id.
func (r *Registry) Binding(id string) (Binding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bindings[id]
	if !ok {
		return Binding{}, false
	}
	return b.clone(), true
}

// DetectConflicts returns the registered bindings b would collide with,
// sorted by id. A binding with the same id is not reported against itself.
func (r *Registry) DetectConflicts(b Binding) []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.conflictsLocked(b, b.ID)
}

// conflictsLocked lists overlapping bindings under b's mode and signature.
// Caller must hold the lock.
func (r *Registry) conflictsLocked(b Binding, ignore string) []Binding {
	ids := r.index[b.Mode][b.Signature()]
	if len(ids) == 0 {
		return nil
	}

	var out []Binding
	for id := range ids {
		if id == ignore {
			continue
		}
		existing := r.bindings[id]
		if guardsOverlap(b.When, existing.When) {
			out = append(out, existing.clone())
		}
	}
	sortBindings(out)
	return out
}

// Bindings returns the bindings of mode, or of every mode when mode is
// empty, sorted by mode then id.
func (r *Registry) Bindings(mode string) []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.bindingsLocked(mode)
}

func (r *Registry) bindingsLocked(mode string) []Binding {
	out := make([]Binding, 0, len(r.bindings))
	for _, b := range r.bindings {
		if mode == "" || b.Mode == mode {
			out = append(out, b.clone())
		}
	}
	sortBindings(out)
	return out
}

// snapshot returns the bindings of mode with the revision they belong to.
func (r *Registry) snapshot(mode string) (uint64, []Binding) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.revision, r.bindingsLocked(mode)
}

// OverrideSequenceTimeouts sets the ambiguity window of the selected
// bindings without re-registering them. With ids, exactly those bindings are
// updated (an unknown id fails before anything changes). Otherwise every
// binding of mode is updated, or every binding when mode is empty.
func (r *Registry) OverrideSequenceTimeouts(timeout time.Duration, mode string, ids ...string) error {
	if timeout <= 0 {
		return ErrInvalidTimeout
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var targets []string
	if len(ids) > 0 {
		for _, id := range ids {
			if _, ok := r.bindings[id]; !ok {
				return fmt.Errorf("%w: %q", ErrBindingNotFound, id)
			}
		}
		targets = ids
	} else {
		for id, b := range r.bindings {
			if mode == "" || b.Mode == mode {
				targets = append(targets, id)
			}
		}
	}
	if len(targets) == 0 {
		return nil
	}

	for _, id := range targets {
		b := r.bindings[id]
		b.Sequence = b.Sequence.WithTimeout(timeout)
		r.bindings[id] = b
	}
	r.revision++
	return nil
}

// Stats returns counts and the sorted list of modes with bindings.
func (r *Registry) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	modes := make([]string, 0, len(r.index))
	for m := range r.index {
		modes = append(modes, m)
	}
	sort.Strings(modes)

	return Stats{
		ActionCount:  len(r.actions),
		BindingCount: len(r.bindings),
		Modes:        modes,
		Revision:     r.revision,
	}
}

// insertLocked stores and indexes b. Caller must hold the write lock.
func (r *Registry) insertLocked(b Binding) {
	r.bindings[b.ID] = b
	bySig, ok := r.index[b.Mode]
	if !ok {
		bySig = make(map[string]map[string]struct{})
		r.index[b.Mode] = bySig
	}
	sig := b.Signature()
	ids, ok := bySig[sig]
	if !ok {
		ids = make(map[string]struct{})
		bySig[sig] = ids
	}
	ids[b.ID] = struct{}{}
}

// removeLocked drops b from the table and the index. Caller must hold the
// write lock.
func (r *Registry) removeLocked(b Binding) {
	delete(r.bindings, b.ID)
	bySig := r.index[b.Mode]
	if bySig == nil {
		return
	}
	sig := b.Signature()
	if ids := bySig[sig]; ids != nil {
		delete(ids, b.ID)
		if len(ids) == 0 {
			delete(bySig, sig)
		}
	}
	if len(bySig) == 0 {
		delete(r.index, b.Mode)
	}
}
