package mode

import (
	"time"

	"github.com/Vedant-Asati03/vim-engine/internal/input/key"
	"github.com/Vedant-Asati03/vim-engine/internal/input/keymap"
)

// sequencer accumulates tokens for one mode and drives the resolver.
type sequencer struct {
	mode           string
	pending        []string
	defaultTimeout time.Duration
}

func newSequencer(mode string, timeout time.Duration) sequencer {
	if timeout <= 0 {
		timeout = DefaultPendingTimeout
	}
	return sequencer{mode: mode, defaultTimeout: timeout}
}

func (s *sequencer) reset() {
	s.pending = s.pending[:0]
}

func (s *sequencer) hasPending() bool {
	return len(s.pending) > 0
}

// feed appends the stroke and resolves. It returns false on a miss, after
// clearing the pending tokens, so the mode can run its fallback.
func (s *sequencer) feed(ctx *Context, st key.Stroke) (Result, bool) {
	if ctx.Resolver == nil {
		return Result{}, false
	}
	s.pending = append(s.pending, st.Token())
	res := ctx.Resolver.Resolve(s.mode, s.pending, ctx.Flags)

	switch res.Status {
	case keymap.StatusMatch:
		s.reset()
		return Execute(ctx, *res.Match), true
	case keymap.StatusPending:
		timeout := res.Timeout
		if timeout <= 0 {
			timeout = s.defaultTimeout
		}
		return Result{
			Consumed: true,
			Status:   StatusPending,
			Message:  MessageAwaitingSequence,
			Timeout:  timeout,
		}, true
	default:
		s.reset()
		return Result{}, false
	}
}

// expire re-resolves the pending tokens once. It returns false when nothing
// was pending.
func (s *sequencer) expire(ctx *Context) (Result, bool) {
	if !s.hasPending() || ctx.Resolver == nil {
		return Result{}, false
	}
	tokens := append([]string(nil), s.pending...)
	s.reset()

	res := ctx.Resolver.Resolve(s.mode, tokens, ctx.Flags)
	if res.Status == keymap.StatusMatch {
		return Execute(ctx, *res.Match), true
	}
	return Result{Status: StatusTimeout, Message: MessagePendingTimeout}, true
}
