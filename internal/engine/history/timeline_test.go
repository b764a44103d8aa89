package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimelineUndoRedo(t *testing.T) {
	tl := NewTimeline[string](0)
	assert.False(t, tl.CanUndo())
	_, ok := tl.Undo()
	assert.False(t, ok)

	tl.Push("a")
	tl.Push("b")
	assert.Equal(t, 2, tl.Len())

	e, ok := tl.Undo()
	require.True(t, ok)
	assert.Equal(t, "b", e)
	assert.True(t, tl.CanRedo())

	e, ok = tl.Redo()
	require.True(t, ok)
	assert.Equal(t, "b", e)

	_, ok = tl.Redo()
	assert.False(t, ok, "redo at the end")
}

func TestTimelinePushAfterUndoTruncates(t *testing.T) {
	tl := NewTimeline[string](0)
	tl.Push("a")
	tl.Push("b")
	tl.Push("c")

	_, _ = tl.Undo()
	_, _ = tl.Undo()
	tl.Push("d")

	assert.False(t, tl.CanRedo())
	_, ok := tl.Redo()
	assert.False(t, ok, "redo after undo-then-edit returns nothing")
	assert.Equal(t, []string{"a", "d"}, tl.Entries())

	e, ok := tl.Undo()
	require.True(t, ok)
	assert.Equal(t, "d", e)
}

func TestTimelineCap(t *testing.T) {
	tl := NewTimeline[int](2)
	for i := 1; i <= 4; i++ {
		tl.Push(i)
	}
	assert.Equal(t, []int{3, 4}, tl.Entries())
	assert.Equal(t, 2, tl.Index())
}

func TestTimelineClear(t *testing.T) {
	tl := NewTimeline[int](-1)
	tl.Push(1)
	tl.Clear()
	assert.Zero(t, tl.Len())
	assert.False(t, tl.CanUndo())
}
