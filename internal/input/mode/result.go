package mode

import (
	"time"

	"github.com/Vedant-Asati03/vim-engine/internal/input/key"
	"github.com/Vedant-Asati03/vim-engine/internal/input/keymap"
	"github.com/Vedant-Asati03/vim-engine/internal/telemetry"
)

// Well-known mode names.
const (
	Normal  = "normal"
	Insert  = "insert"
	Visual  = "visual"
	Command = "command"
)

// Common result statuses and messages.
const (
	StatusOK       = "ok"
	StatusPending  = "pending"
	StatusTimeout  = "timeout"
	StatusOperator = "operator"
	StatusMiss     = "miss"

	MessageAwaitingSequence = "awaiting_sequence"
	MessagePendingTimeout   = "pending_timeout"
	MessageOperatorPending  = "operator_pending"
	MessageOperatorPlan     = "operator_plan"
	MessageOperatorTimeout  = "operator_timeout"
)

// DefaultPendingTimeout is used when a pending prefix carries no timeout.
const DefaultPendingTimeout = key.DefaultTimeout

// Result is what a mode reports for one key or timeout.
type Result struct {
	// Consumed is false when the host should handle the key itself.
	Consumed bool

	// SwitchTo names the mode the manager should switch to.
	SwitchTo string

	Status  string
	Message string

	// Timeout arms the mode's pending timer when positive.
	Timeout time.Duration
}

// ActionFunc is the handler type bound actions carry.
type ActionFunc func(ctx *Context, m keymap.Match) Result

// Mode is one editing mode.
type Mode interface {
	Name() string
	Enter(ctx *Context, prev string)
	Exit(ctx *Context, next string)
	HandleKey(ctx *Context, s key.Stroke) Result
	HandleTimeout(ctx *Context) Result
}

// Execute runs the action of m. Handlers of an unknown type only mark the
// key consumed.
func Execute(ctx *Context, m keymap.Match) Result {
	span := ctx.observer().SpanStart("keymap.execute", telemetry.Attrs{
		"binding_id": m.Binding.ID,
		"action":     m.Action.ID,
	})
	var res Result
	switch h := m.Action.Handler.(type) {
	case ActionFunc:
		res = h(ctx, m)
	case func(*Context, keymap.Match) Result:
		res = h(ctx, m)
	default:
		res = Result{Consumed: true}
	}
	span.SetAttr("status", res.Status)
	span.End(nil)
	return res
}
