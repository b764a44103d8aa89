package mode

import (
	"time"

	"github.com/Vedant-Asati03/vim-engine/internal/input/key"
)

// NormalMode resolves keys through the keymap and hands everything else to
// the operator pipeline.
type NormalMode struct {
	seq sequencer
	ops operatorTokens
}

// NewNormalMode creates a normal mode. A non-positive timeout selects
// DefaultPendingTimeout.
func NewNormalMode(timeout time.Duration) *NormalMode {
	seq := newSequencer(Normal, timeout)
	return &NormalMode{
		seq: seq,
		ops: operatorTokens{timeout: seq.defaultTimeout},
	}
}

// Name implements Mode.
func (m *NormalMode) Name() string { return Normal }

// Enter implements Mode.
func (m *NormalMode) Enter(ctx *Context, prev string) {
	m.seq.reset()
	m.ops.reset()
}

// Exit implements Mode.
func (m *NormalMode) Exit(ctx *Context, next string) {
	m.seq.reset()
	m.ops.reset()
}

// HandleKey implements Mode.
func (m *NormalMode) HandleKey(ctx *Context, s key.Stroke) Result {
	if res, ok := m.seq.feed(ctx, s); ok {
		if res.Status != StatusPending {
			m.ops.reset()
		}
		return res
	}
	if s.Is(key.KeyEscape) {
		m.ops.reset()
		return Result{Consumed: true, Status: StatusOK, Message: "normal_reset"}
	}
	return m.ops.feed(ctx, s.Token())
}

// HandleTimeout implements Mode.
func (m *NormalMode) HandleTimeout(ctx *Context) Result {
	if res, ok := m.seq.expire(ctx); ok {
		m.ops.reset()
		return res
	}
	if res, ok := m.ops.expire(); ok {
		return res
	}
	return Result{Status: StatusTimeout}
}
