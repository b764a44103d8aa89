package buffer

import (
	"github.com/Vedant-Asati03/vim-engine/internal/engine/history"
)

// Undo entry labels written by the built-in mutations.
const (
	LabelInsert   = "insert_text"
	LabelDelete   = "delete_range"
	LabelHostEdit = "host_edit"
)

// UndoEntry captures one committed edit.
type UndoEntry struct {
	Label        string
	BeforeText   string
	AfterText    string
	CursorBefore Position
	CursorAfter  Position
}

// Buffer is the façade over document, state, registers and undo history.
type Buffer struct {
	doc       *Document
	state     State
	registers *RegisterBank
	undo      *history.Timeline[UndoEntry]
}

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithText sets the initial document text.
func WithText(text string) Option {
	return func(b *Buffer) {
		b.doc = NewDocument(text)
	}
}

// WithRegisters shares an existing register bank.
func WithRegisters(r *RegisterBank) Option {
	return func(b *Buffer) {
		if r != nil {
			b.registers = r
		}
	}
}

// WithUndoLimit caps the undo timeline. 0 means unlimited.
func WithUndoLimit(n int) Option {
	return func(b *Buffer) {
		b.undo = history.NewTimeline[UndoEntry](n)
	}
}

// New creates an empty buffer.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		doc:       NewDocument(""),
		state:     newState(),
		registers: NewRegisterBank(),
		undo:      history.NewTimeline[UndoEntry](0),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Document returns the current document.
func (b *Buffer) Document() *Document {
	return b.doc
}

// Text returns the document text.
func (b *Buffer) Text() string {
	return b.doc.Text()
}

// Version returns the document version.
func (b *Buffer) Version() uint64 {
	return b.doc.Version()
}

// Registers returns the register bank.
func (b *Buffer) Registers() *RegisterBank {
	return b.registers
}

// State returns a copy of the cursor and selection state.
func (b *Buffer) State() State {
	return b.state.clone()
}

// Cursor returns the cursor position.
func (b *Buffer) Cursor() Position {
	return b.state.Cursor
}

// SetCursor moves the cursor to a valid position.
func (b *Buffer) SetCursor(p Position) error {
	if err := b.doc.Validate(p); err != nil {
		return err
	}
	b.state.Cursor = p
	return nil
}

// ClampPosition moves p into the document bounds.
func (b *Buffer) ClampPosition(p Position) Position {
	return b.doc.Clamp(p)
}

// Selection returns the selection, if any.
func (b *Buffer) Selection() (Selection, bool) {
	if b.state.Selection == nil {
		return Selection{}, false
	}
	return *b.state.Selection, true
}

// SetSelection sets the selection after validating both endpoints.
func (b *Buffer) SetSelection(anchor, cursor Position) error {
	if err := b.doc.Validate(anchor); err != nil {
		return err
	}
	if err := b.doc.Validate(cursor); err != nil {
		return err
	}
	b.state.Selection = &Selection{Anchor: anchor, Cursor: cursor}
	return nil
}

// ClearSelection drops the selection.
func (b *Buffer) ClearSelection() {
	b.state.Selection = nil
}

// ActiveRegister returns the register yanks target by default.
func (b *Buffer) ActiveRegister() string {
	return b.state.ActiveRegister
}

// SetActiveRegister selects the default target register. Empty resets it to
// the unnamed register.
func (b *Buffer) SetActiveRegister(name string) {
	if name == "" {
		name = UnnamedRegister
	}
	b.state.ActiveRegister = name
}

// Dirty reports unsaved changes.
func (b *Buffer) Dirty() bool {
	return b.doc.Dirty()
}

// MarkClean clears the dirty flag, typically after the host saved.
func (b *Buffer) MarkClean() {
	b.doc = b.doc.Clean()
}

// ReplaceRange substitutes the text between start and end (in either order)
// with text, commits a new document version, moves the cursor to the end of
// the inserted text and records an undo entry. Both positions are validated
// first; on error nothing changes.
func (b *Buffer) ReplaceRange(start, end Position, text, label string) error {
	if err := b.doc.Validate(start); err != nil {
		return err
	}
	if err := b.doc.Validate(end); err != nil {
		return err
	}
	start, end = Order(start, end)

	text = NormalizeNewlines(text)
	before := b.doc.Text()
	so, eo := b.doc.Offset(start), b.doc.Offset(end)
	after := before[:so] + text + before[eo:]

	cursorBefore := b.state.Cursor
	b.commit(b.doc.Replace(after))
	b.state.Cursor = b.doc.PositionAt(so + len(text))

	b.undo.Push(UndoEntry{
		Label:        label,
		BeforeText:   before,
		AfterText:    after,
		CursorBefore: cursorBefore,
		CursorAfter:  b.state.Cursor,
	})
	return nil
}

// InsertText inserts text at p.
func (b *Buffer) InsertText(p Position, text string) error {
	return b.ReplaceRange(p, p, text, LabelInsert)
}

// DeleteRange removes the text between start and end.
func (b *Buffer) DeleteRange(start, end Position) error {
	return b.ReplaceRange(start, end, "", LabelDelete)
}

// TextRange returns the text between start and end (in either order), end
// exclusive.
func (b *Buffer) TextRange(start, end Position) (string, error) {
	if err := b.doc.Validate(start); err != nil {
		return "", err
	}
	if err := b.doc.Validate(end); err != nil {
		return "", err
	}
	start, end = Order(start, end)
	text := b.doc.Text()
	return text[b.doc.Offset(start):b.doc.Offset(end)], nil
}

// Undo reverts the most recent edit. It returns history.ErrNothingToUndo
// when there is none.
func (b *Buffer) Undo() error {
	e, ok := b.undo.Undo()
	if !ok {
		return history.ErrNothingToUndo
	}
	b.commit(b.doc.Replace(e.BeforeText))
	b.state.Cursor = b.doc.Clamp(e.CursorBefore)
	return nil
}

// Redo re-applies the most recently undone edit. It returns
// history.ErrNothingToRedo when there is none.
func (b *Buffer) Redo() error {
	e, ok := b.undo.Redo()
	if !ok {
		return history.ErrNothingToRedo
	}
	b.commit(b.doc.Replace(e.AfterText))
	b.state.Cursor = b.doc.Clamp(e.CursorAfter)
	return nil
}

// CanUndo reports whether Undo has an entry to revert.
func (b *Buffer) CanUndo() bool {
	return b.undo.CanUndo()
}

// CanRedo reports whether Redo has an entry to re-apply.
func (b *Buffer) CanRedo() bool {
	return b.undo.CanRedo()
}

// UndoEntries returns the recorded undo entries, oldest first.
func (b *Buffer) UndoEntries() []UndoEntry {
	return b.undo.Entries()
}

// PrevPosition returns the position one grapheme cluster before p, wrapping
// to the end of the previous line. The start of the document stays put.
func (b *Buffer) PrevPosition(p Position) Position {
	p = b.doc.Clamp(p)
	if p.Col > 0 {
		return Position{Row: p.Row, Col: prevCluster(b.doc.Line(p.Row), p.Col)}
	}
	if p.Row > 0 {
		return Position{Row: p.Row - 1, Col: b.doc.LineLen(p.Row - 1)}
	}
	return p
}

// NextPosition returns the position one grapheme cluster after p, wrapping
// to the start of the next line. The end of the document stays put.
func (b *Buffer) NextPosition(p Position) Position {
	p = b.doc.Clamp(p)
	if p.Col < b.doc.LineLen(p.Row) {
		return Position{Row: p.Row, Col: nextCluster(b.doc.Line(p.Row), p.Col)}
	}
	if p.Row < b.doc.LineCount()-1 {
		return Position{Row: p.Row + 1, Col: 0}
	}
	return p
}

// commit installs doc and keeps state consistent with it.
func (b *Buffer) commit(doc *Document) {
	b.doc = doc
	b.state.LastChangeTick = doc.Version()
	if b.state.Selection != nil {
		sel := Selection{
			Anchor: doc.Clamp(b.state.Selection.Anchor),
			Cursor: doc.Clamp(b.state.Selection.Cursor),
		}
		b.state.Selection = &sel
	}
}
