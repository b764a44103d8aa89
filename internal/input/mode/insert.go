package mode

import (
	"time"

	"github.com/Vedant-Asati03/vim-engine/internal/engine/buffer"
	"github.com/Vedant-Asati03/vim-engine/internal/input/key"
)

// Insert mode statuses.
const (
	StatusInsertText = "insert_text"
	StatusBackspace  = "insert_backspace"
)

// InsertMode inserts typed text at the cursor.
type InsertMode struct {
	seq sequencer
}

// NewInsertMode creates an insert mode. A non-positive timeout selects
// DefaultPendingTimeout.
func NewInsertMode(timeout time.Duration) *InsertMode {
	return &InsertMode{seq: newSequencer(Insert, timeout)}
}

// Name implements Mode.
func (m *InsertMode) Name() string { return Insert }

// Enter implements Mode.
func (m *InsertMode) Enter(ctx *Context, prev string) {
	m.seq.reset()
}

// Exit implements Mode.
func (m *InsertMode) Exit(ctx *Context, next string) {
	m.seq.reset()
}

// HandleKey implements Mode.
func (m *InsertMode) HandleKey(ctx *Context, s key.Stroke) Result {
	if res, ok := m.seq.feed(ctx, s); ok {
		return res
	}

	switch {
	case s.Is(key.KeyEscape):
		return Result{Consumed: true, SwitchTo: Normal, Message: "exit_insert"}
	case s.Is(key.KeyBackspace):
		return m.backspace(ctx)
	case s.Is(key.KeyEnter):
		return m.insert(ctx, "\n")
	case s.Is(key.KeyTab):
		return m.insert(ctx, "\t")
	}
	if text := s.InputText(); text != "" {
		return m.insert(ctx, text)
	}
	return Result{}
}

// HandleTimeout implements Mode.
func (m *InsertMode) HandleTimeout(ctx *Context) Result {
	if res, ok := m.seq.expire(ctx); ok {
		return res
	}
	return Result{Status: StatusTimeout}
}

func (m *InsertMode) insert(ctx *Context, text string) Result {
	if err := ctx.Buffer.InsertText(ctx.Buffer.Cursor(), text); err != nil {
		return Result{Consumed: true, Status: "error", Message: err.Error()}
	}
	return Result{Consumed: true, Status: StatusInsertText}
}

// backspace removes the grapheme before the cursor, joining with the
// previous line at column 0.
func (m *InsertMode) backspace(ctx *Context) Result {
	cur := ctx.Buffer.Cursor()
	prev := ctx.Buffer.PrevPosition(cur)
	if prev == cur {
		return Result{Consumed: true, Status: StatusBackspace}
	}
	if err := ctx.Buffer.ReplaceRange(prev, cur, "", buffer.LabelDelete); err != nil {
		return Result{Consumed: true, Status: "error", Message: err.Error()}
	}
	return Result{Consumed: true, Status: StatusBackspace}
}
