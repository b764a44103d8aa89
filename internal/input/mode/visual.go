package mode

import (
	"time"

	"github.com/Vedant-Asati03/vim-engine/internal/input/key"
)

// VisualMode maintains a selection between a fixed anchor and the cursor.
type VisualMode struct {
	seq sequencer
	ops operatorTokens
}

// NewVisualMode creates a visual mode. A non-positive timeout selects
// DefaultPendingTimeout.
func NewVisualMode(timeout time.Duration) *VisualMode {
	seq := newSequencer(Visual, timeout)
	return &VisualMode{
		seq: seq,
		ops: operatorTokens{timeout: seq.defaultTimeout},
	}
}

// Name implements Mode.
func (m *VisualMode) Name() string { return Visual }

// Enter anchors the selection at the cursor.
func (m *VisualMode) Enter(ctx *Context, prev string) {
	m.seq.reset()
	m.ops.reset()
	ctx.SetFlag(FlagVisualActive, true)

	anchor := ctx.Buffer.Cursor()
	ctx.Visual = VisualState{Anchor: anchor, Active: true}
	_ = ctx.Buffer.SetSelection(anchor, anchor)
}

// Exit drops the selection.
func (m *VisualMode) Exit(ctx *Context, next string) {
	m.seq.reset()
	m.ops.reset()
	ctx.SetFlag(FlagVisualActive, false)
	ctx.Visual = VisualState{}
	ctx.Buffer.ClearSelection()
}

// HandleKey implements Mode.
func (m *VisualMode) HandleKey(ctx *Context, s key.Stroke) Result {
	if res, ok := m.seq.feed(ctx, s); ok {
		if res.Status != StatusPending {
			m.ops.reset()
		}
		return res
	}
	if s.Is(key.KeyEscape) {
		m.ops.reset()
		return Result{Consumed: true, SwitchTo: Normal, Message: "exit_visual"}
	}
	return m.ops.feed(ctx, s.Token())
}

// HandleTimeout implements Mode.
func (m *VisualMode) HandleTimeout(ctx *Context) Result {
	if res, ok := m.seq.expire(ctx); ok {
		m.ops.reset()
		return res
	}
	if res, ok := m.ops.expire(); ok {
		return res
	}
	return Result{Status: StatusTimeout}
}
