package history

import "errors"

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("history: nothing to undo")
	ErrNothingToRedo = errors.New("history: nothing to redo")
)

// Timeline is a linear undo log of entries of type E.
// It is not safe for concurrent use.
type Timeline[E any] struct {
	entries []E
	index   int

	// maxEntries caps the log; 0 means unlimited.
	maxEntries int
}

// NewTimeline creates an empty timeline keeping at most maxEntries entries.
// When the cap is exceeded the oldest entry is dropped. maxEntries <= 0
// means unlimited.
func NewTimeline[E any](maxEntries int) *Timeline[E] {
	if maxEntries < 0 {
		maxEntries = 0
	}
	return &Timeline[E]{maxEntries: maxEntries}
}

// Push appends an entry, discarding anything that could have been redone.
func (t *Timeline[E]) Push(e E) {
	if t.index < len(t.entries) {
		var zero E
		for i := t.index; i < len(t.entries); i++ {
			t.entries[i] = zero
		}
		t.entries = t.entries[:t.index]
	}
	t.entries = append(t.entries, e)
	t.index = len(t.entries)

	if t.maxEntries > 0 && len(t.entries) > t.maxEntries {
		drop := len(t.entries) - t.maxEntries
		t.entries = append(t.entries[:0], t.entries[drop:]...)
		t.index = len(t.entries)
	}
}

// Undo steps back and returns the entry to revert.
// The second result is false at the start of the timeline.
func (t *Timeline[E]) Undo() (E, bool) {
	if t.index == 0 {
		var zero E
		return zero, false
	}
	t.index--
	return t.entries[t.index], true
}

// Redo steps forward and returns the entry to re-apply.
// The second result is false at the end of the timeline.
func (t *Timeline[E]) Redo() (E, bool) {
	if t.index >= len(t.entries) {
		var zero E
		return zero, false
	}
	e := t.entries[t.index]
	t.index++
	return e, true
}

// CanUndo reports whether Undo would return an entry.
func (t *Timeline[E]) CanUndo() bool {
	return t.index > 0
}

// CanRedo reports whether Redo would return an entry.
func (t *Timeline[E]) CanRedo() bool {
	return t.index < len(t.entries)
}

// Len returns the number of stored entries, including redoable ones.
func (t *Timeline[E]) Len() int {
	return len(t.entries)
}

// Index returns how many entries are currently applied.
func (t *Timeline[E]) Index() int {
	return t.index
}

// Entries returns a copy of the stored entries.
func (t *Timeline[E]) Entries() []E {
	out := make([]E, len(t.entries))
	copy(out, t.entries)
	return out
}

// Clear drops every entry.
func (t *Timeline[E]) Clear() {
	t.entries = nil
	t.index = 0
}
