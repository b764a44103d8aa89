package buffer

// View is a read-only snapshot of a buffer.
type View struct {
	Version   uint64
	Text      string
	Cursor    Position
	Selection *Selection
}

// Mirror is what a host pulls to render. Attributes carry free-form UI hints
// such as the current mode.
type Mirror struct {
	Text       string
	Cursor     Position
	Selection  *Selection
	Attributes map[string]string
}

// Snapshot returns a view of the current buffer.
func (b *Buffer) Snapshot() View {
	st := b.state.clone()
	return View{
		Version:   b.doc.Version(),
		Text:      b.doc.Text(),
		Cursor:    st.Cursor,
		Selection: st.Selection,
	}
}

// Mirror returns a host snapshot carrying a copy of attrs.
func (b *Buffer) Mirror(attrs map[string]string) Mirror {
	st := b.state.clone()
	copied := make(map[string]string, len(attrs))
	for k, v := range attrs {
		copied[k] = v
	}
	return Mirror{
		Text:       b.doc.Text(),
		Cursor:     st.Cursor,
		Selection:  st.Selection,
		Attributes: copied,
	}
}

// ApplyMirror adopts an edit made by the host, such as an IME commit or a
// paste handled by the widget. A text change is committed as one undoable
// host_edit; the cursor and selection are validated against the resulting
// document. On a validation error nothing changes.
func (b *Buffer) ApplyMirror(m Mirror) error {
	next := b.doc
	if m.Text != b.doc.Text() {
		next = b.doc.Replace(m.Text)
	}
	if err := next.Validate(m.Cursor); err != nil {
		return err
	}
	if m.Selection != nil {
		if err := next.Validate(m.Selection.Anchor); err != nil {
			return err
		}
		if err := next.Validate(m.Selection.Cursor); err != nil {
			return err
		}
	}

	if next != b.doc {
		before := b.doc.Text()
		cursorBefore := b.state.Cursor
		b.commit(next)
		b.undo.Push(UndoEntry{
			Label:        LabelHostEdit,
			BeforeText:   before,
			AfterText:    next.Text(),
			CursorBefore: cursorBefore,
			CursorAfter:  m.Cursor,
		})
	}
	b.state.Cursor = m.Cursor
	if m.Selection != nil {
		sel := *m.Selection
		b.state.Selection = &sel
	} else {
		b.state.Selection = nil
	}
	return nil
}
