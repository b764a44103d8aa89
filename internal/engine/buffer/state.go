package buffer

// State is the cursor and selection bookkeeping of a buffer.
type State struct {
	Cursor Position

	// Selection is nil when nothing is selected.
	Selection *Selection

	// ActiveRegister is the register yanks and deletes target.
	ActiveRegister string

	// LastChangeTick is the document version of the last edit.
	LastChangeTick uint64
}

func newState() State {
	return State{ActiveRegister: UnnamedRegister}
}

// HasSelection reports whether a selection is set.
func (s State) HasSelection() bool {
	return s.Selection != nil
}

func (s State) clone() State {
	if s.Selection != nil {
		sel := *s.Selection
		s.Selection = &sel
	}
	return s
}
