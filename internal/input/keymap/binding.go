package keymap

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Vedant-Asati03/vim-engine/internal/input/key"
)

// Binding maps a key sequence in one mode to an action.
type Binding struct {
	// ID is unique across the registry.
	ID string

	// Mode is the mode the binding is active in ("normal", "visual", ...).
	Mode string

	// Sequence is the key sequence that triggers this binding.
	Sequence key.Sequence

	// ActionID names a registered Action.
	ActionID string

	// Description provides documentation for the binding.
	Description string

	// When guards must all hold for the binding to match.
	When []When

	// Priority determines precedence when multiple bindings match.
	// Higher priority wins. Default is 0.
	Priority int

	// Tags group bindings for display and filtering.
	Tags []string

	// Source identifies where the binding came from ("defaults", a file path).
	Source string
}

// NewBinding creates a binding from a key specification such as "g g",
// "<C-r>" or "ESC".
func NewBinding(id, mode, keys, actionID string) (Binding, error) {
	seq, err := key.ParseSequence(keys)
	if err != nil {
		return Binding{}, fmt.Errorf("binding %q: %w", id, err)
	}
	return Binding{ID: id, Mode: mode, Sequence: seq, ActionID: actionID}, nil
}

// MustBinding is NewBinding for known-valid specifications.
func MustBinding(id, mode, keys, actionID string) Binding {
	b, err := NewBinding(id, mode, keys, actionID)
	if err != nil {
		panic(err)
	}
	return b
}

// WithWhen adds guard clauses in "flag" / "!flag" form.
func (b Binding) WithWhen(clauses ...string) Binding {
	b.When = append(append([]When(nil), b.When...), ParseWhens(clauses...)...)
	return b
}

// WithDescription sets the description for this binding.
func (b Binding) WithDescription(desc string) Binding {
	b.Description = desc
	return b
}

// WithPriority sets the priority for this binding.
func (b Binding) WithPriority(priority int) Binding {
	b.Priority = priority
	return b
}

// WithTags sets the tags, removing duplicates while keeping order.
func (b Binding) WithTags(tags ...string) Binding {
	b.Tags = dedupe(tags)
	return b
}

// WithSource sets the source for this binding.
func (b Binding) WithSource(source string) Binding {
	b.Source = source
	return b
}

// WithTimeout sets the ambiguity window of the sequence.
func (b Binding) WithTimeout(d time.Duration) Binding {
	b.Sequence = b.Sequence.WithTimeout(d)
	return b
}

// Signature returns the key signature used for conflict detection.
func (b Binding) Signature() string {
	return b.Sequence.Signature()
}

// Validate checks the fields required for registration.
func (b Binding) Validate() error {
	switch {
	case strings.TrimSpace(b.ID) == "":
		return fmt.Errorf("%w: empty id", ErrInvalidBinding)
	case strings.TrimSpace(b.Mode) == "":
		return fmt.Errorf("%w: binding %q has no mode", ErrInvalidBinding, b.ID)
	case b.Sequence.Len() == 0:
		return fmt.Errorf("%w: binding %q has no keys", ErrInvalidBinding, b.ID)
	case b.ActionID == "":
		return fmt.Errorf("%w: binding %q has no action", ErrInvalidBinding, b.ID)
	}
	return nil
}

// Matches reports whether every guard holds for flags.
func (b Binding) Matches(flags map[string]bool) bool {
	return evaluateAll(b.When, flags)
}

// HasTag reports whether the binding carries tag.
func (b Binding) HasTag(tag string) bool {
	for _, t := range b.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// clone returns a copy that shares no slices with b.
func (b Binding) clone() Binding {
	c := b
	c.Sequence = b.Sequence.Clone()
	if b.When != nil {
		c.When = append([]When(nil), b.When...)
	}
	if b.Tags != nil {
		c.Tags = append([]string(nil), b.Tags...)
	}
	return c
}

func dedupe(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}

func sortBindings(list []Binding) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].Mode != list[j].Mode {
			return list[i].Mode < list[j].Mode
		}
		return list[i].ID < list[j].ID
	})
}

func bindingIDs(list []Binding) []string {
	ids := make([]string, len(list))
	for i, b := range list {
		ids[i] = b.ID
	}
	return ids
}
