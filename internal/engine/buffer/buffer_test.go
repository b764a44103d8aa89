package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vedant-Asati03/vim-engine/internal/engine/history"
)

func TestNewDocumentLines(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"", []string{""}},
		{"alpha", []string{"alpha"}},
		{"a\nb", []string{"a", "b"}},
		{"a\n", []string{"a", ""}},
		{"a\r\nb\rc", []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			d := NewDocument(tt.text)
			assert.Equal(t, tt.want, d.Lines())
			assert.Zero(t, d.Version())
			assert.False(t, d.Dirty())
		})
	}
}

func TestDocumentImmutableByReplacement(t *testing.T) {
	d := NewDocument("one\ntwo\nthree")
	next := d.Replace("one\nTWO\n2\nthree")

	assert.Equal(t, "one\ntwo\nthree", d.Text())
	assert.Equal(t, "one\nTWO\n2\nthree", next.Text())
	assert.Equal(t, uint64(1), next.Version())
	assert.True(t, next.Dirty())

	lines := next.Lines()
	lines[0] = "mutated"
	assert.Equal(t, "one", next.Line(0))
	assert.Equal(t, "", next.Line(5))
}

func TestInsertCarriageReturns(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		cursor Position
	}{
		{"crlf", "x\r\ny", "ax\nyb", Pos(1, 1)},
		{"lone cr", "x\ry", "ax\nyb", Pos(1, 1)},
		{"trailing crlf", "x\r\n", "ax\nb", Pos(1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(WithText("ab"))
			require.NoError(t, b.InsertText(Pos(0, 1), tt.text))
			assert.Equal(t, tt.want, b.Text())
			assert.Equal(t, tt.cursor, b.Cursor())

			entries := b.UndoEntries()
			require.Len(t, entries, 1)
			assert.Equal(t, b.Text(), entries[0].AfterText)
			assert.Equal(t, b.Cursor(), entries[0].CursorAfter)

			require.NoError(t, b.Undo())
			assert.Equal(t, "ab", b.Text())
			require.NoError(t, b.Redo())
			assert.Equal(t, tt.want, b.Text())
			assert.Equal(t, tt.cursor, b.Cursor())
		})
	}
}

func TestDocumentOffsets(t *testing.T) {
	d := NewDocument("héllo\nwörld")
	p := Pos(1, 2)
	off := d.Offset(p)
	assert.Equal(t, p, d.PositionAt(off))
	assert.Equal(t, "rld", d.Text()[off:])
	assert.Equal(t, d.End(), d.PositionAt(1000))
}

func TestReplaceRangeRoundTrip(t *testing.T) {
	b := New(WithText("hello world"))
	start := Pos(0, 6)

	require.NoError(t, b.ReplaceRange(start, Pos(0, 11), "there", "replace"))
	assert.Equal(t, "hello there", b.Text())
	assert.Equal(t, uint64(1), b.Version())
	assert.Equal(t, Pos(0, 11), b.Cursor(), "cursor at end of inserted text")
	assert.Equal(t, uint64(1), b.State().LastChangeTick)

	got, err := b.TextRange(start, Pos(0, start.Col+len("there")))
	require.NoError(t, err)
	assert.Equal(t, "there", got)

	entries := b.UndoEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, UndoEntry{
		Label:        "replace",
		BeforeText:   "hello world",
		AfterText:    "hello there",
		CursorBefore: Pos(0, 0),
		CursorAfter:  Pos(0, 11),
	}, entries[0])
}

func TestReplaceRangeMultiline(t *testing.T) {
	b := New(WithText("ab\ncd"))
	require.NoError(t, b.ReplaceRange(Pos(1, 1), Pos(0, 1), "X\nY", "swap order"))
	assert.Equal(t, "aX\nYd", b.Text())
	assert.Equal(t, Pos(1, 1), b.Cursor())
}

func TestValidationErrors(t *testing.T) {
	b := New(WithText("abc\nde"))

	tests := []struct {
		name string
		pos  Position
		want error
	}{
		{"negative row", Pos(-1, 0), ErrRowOutOfRange},
		{"row past end", Pos(2, 0), ErrRowOutOfRange},
		{"column past line", Pos(1, 3), ErrColumnOutOfRange},
		{"negative column", Pos(0, -1), ErrColumnOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := b.ReplaceRange(Pos(0, 0), tt.pos, "x", "bad")
			require.ErrorIs(t, err, tt.want)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.pos, ve.Position)

			assert.Equal(t, "abc\nde", b.Text(), "no partial write")
			assert.Zero(t, b.Version())
			assert.False(t, b.CanUndo())
		})
	}

	_, err := b.TextRange(Pos(0, 0), Pos(9, 9))
	assert.ErrorIs(t, err, ErrRowOutOfRange)
	assert.ErrorIs(t, b.SetCursor(Pos(0, 4)), ErrColumnOutOfRange)
	assert.NoError(t, b.SetCursor(Pos(0, 3)))
}

func TestInsertAndDelete(t *testing.T) {
	b := New(WithText("ac"))
	require.NoError(t, b.InsertText(Pos(0, 1), "b"))
	assert.Equal(t, "abc", b.Text())
	assert.Equal(t, Pos(0, 2), b.Cursor())

	require.NoError(t, b.DeleteRange(Pos(0, 2), Pos(0, 0)))
	assert.Equal(t, "c", b.Text())
	assert.Equal(t, Pos(0, 0), b.Cursor())

	entries := b.UndoEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, LabelInsert, entries[0].Label)
	assert.Equal(t, LabelDelete, entries[1].Label)
}

func TestTextRangeReorders(t *testing.T) {
	b := New(WithText("alpha\nbeta"))
	got, err := b.TextRange(Pos(1, 2), Pos(0, 3))
	require.NoError(t, err)
	assert.Equal(t, "ha\nbe", got)
}

func TestUndoRedo(t *testing.T) {
	b := New(WithText("one"))
	require.NoError(t, b.InsertText(Pos(0, 3), " two"))
	require.NoError(t, b.InsertText(Pos(0, 7), " three"))

	require.NoError(t, b.Undo())
	assert.Equal(t, "one two", b.Text())
	assert.Equal(t, Pos(0, 7), b.Cursor())
	assert.Equal(t, uint64(3), b.Version(), "undo commits a new version")

	require.NoError(t, b.Redo())
	assert.Equal(t, "one two three", b.Text())

	require.NoError(t, b.Undo())
	require.NoError(t, b.Undo())
	assert.Equal(t, "one", b.Text())
	assert.ErrorIs(t, b.Undo(), history.ErrNothingToUndo)

	require.NoError(t, b.InsertText(Pos(0, 0), ">"))
	assert.ErrorIs(t, b.Redo(), history.ErrNothingToRedo, "edit after undo drops the redo tail")
}

func TestUndoLimit(t *testing.T) {
	b := New(WithUndoLimit(1))
	require.NoError(t, b.InsertText(Pos(0, 0), "a"))
	require.NoError(t, b.InsertText(Pos(0, 1), "b"))
	require.NoError(t, b.Undo())
	assert.Equal(t, "a", b.Text())
	assert.False(t, b.CanUndo())
}

func TestSelection(t *testing.T) {
	b := New(WithText("abc"))
	_, ok := b.Selection()
	assert.False(t, ok)

	require.NoError(t, b.SetSelection(Pos(0, 2), Pos(0, 0)))
	sel, ok := b.Selection()
	require.True(t, ok)
	start, end := sel.Ordered()
	assert.Equal(t, Pos(0, 0), start)
	assert.Equal(t, Pos(0, 2), end)

	state := b.State()
	state.Selection.Anchor = Pos(0, 1)
	sel, _ = b.Selection()
	assert.Equal(t, Pos(0, 2), sel.Anchor, "State returns a copy")

	require.NoError(t, b.DeleteRange(Pos(0, 0), Pos(0, 3)))
	sel, _ = b.Selection()
	assert.Equal(t, Pos(0, 0), sel.Anchor, "selection clamped after edit")

	b.ClearSelection()
	assert.False(t, b.State().HasSelection())
	assert.Error(t, b.SetSelection(Pos(0, 0), Pos(3, 0)))
}

func TestDirtyTracking(t *testing.T) {
	b := New(WithText("x"))
	assert.False(t, b.Dirty())
	require.NoError(t, b.InsertText(Pos(0, 0), "y"))
	assert.True(t, b.Dirty())
	b.MarkClean()
	assert.False(t, b.Dirty())
	assert.Equal(t, uint64(1), b.Version())
}

func TestGraphemeSteps(t *testing.T) {
	// "e" + combining acute is one cluster of two runes.
	b := New(WithText("ae\u0301b\nz"))

	assert.Equal(t, Pos(0, 1), b.NextPosition(Pos(0, 0)))
	assert.Equal(t, Pos(0, 3), b.NextPosition(Pos(0, 1)))
	assert.Equal(t, Pos(0, 1), b.PrevPosition(Pos(0, 3)))
	assert.Equal(t, Pos(1, 0), b.NextPosition(Pos(0, 4)), "wraps to next line")
	assert.Equal(t, Pos(0, 4), b.PrevPosition(Pos(1, 0)), "wraps to previous line end")
	assert.Equal(t, Pos(0, 0), b.PrevPosition(Pos(0, 0)))
	assert.Equal(t, Pos(1, 1), b.NextPosition(Pos(1, 1)))
}

func TestSnapshotAndMirror(t *testing.T) {
	b := New(WithText("abc"))
	require.NoError(t, b.SetSelection(Pos(0, 0), Pos(0, 1)))

	v := b.Snapshot()
	assert.Equal(t, "abc", v.Text)
	require.NotNil(t, v.Selection)

	attrs := map[string]string{"mode": "visual"}
	m := b.Mirror(attrs)
	attrs["mode"] = "normal"
	assert.Equal(t, "visual", m.Attributes["mode"])

	m.Selection.Cursor = Pos(0, 3)
	sel, _ := b.Selection()
	assert.Equal(t, Pos(0, 1), sel.Cursor, "mirror does not alias state")
}

func TestApplyMirror(t *testing.T) {
	b := New(WithText("abc"))
	m := b.Mirror(nil)
	m.Text = "abXc"
	m.Cursor = Pos(0, 3)

	require.NoError(t, b.ApplyMirror(m))
	assert.Equal(t, "abXc", b.Text())
	assert.Equal(t, Pos(0, 3), b.Cursor())
	entries := b.UndoEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, LabelHostEdit, entries[0].Label)

	bad := b.Mirror(nil)
	bad.Text = "q"
	bad.Cursor = Pos(0, 5)
	assert.ErrorIs(t, b.ApplyMirror(bad), ErrColumnOutOfRange)
	assert.Equal(t, "abXc", b.Text())

	same := b.Mirror(nil)
	same.Cursor = Pos(0, 0)
	require.NoError(t, b.ApplyMirror(same))
	assert.Len(t, b.UndoEntries(), 1, "cursor-only change records no undo entry")
}
