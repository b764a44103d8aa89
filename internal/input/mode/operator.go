package mode

import (
	"time"

	"github.com/Vedant-Asati03/vim-engine/internal/input/vim"
)

// TopicOperatorPlan carries a vim.OperatorContext for every parsed plan.
const TopicOperatorPlan = "operator.plan"

// operatorTokens collects unresolved tokens for the operator pipeline.
type operatorTokens struct {
	tokens  []string
	timeout time.Duration
}

func (o *operatorTokens) reset() {
	o.tokens = o.tokens[:0]
}

func (o *operatorTokens) any() bool {
	return len(o.tokens) > 0
}

// feed appends token and parses. A plan is published and clears the
// tokens; otherwise the mode waits for more input.
func (o *operatorTokens) feed(ctx *Context, token string) Result {
	o.tokens = append(o.tokens, token)
	p := vim.NewPipeline(ctx.Buffer,
		vim.WithRegisters(ctx.registers()),
		vim.WithObserver(ctx.observer()),
	)
	if plan, ok := p.Parse(o.tokens); ok {
		o.reset()
		ctx.Emit(TopicOperatorPlan, p.BuildContext(plan))
		return Result{Consumed: true, Status: StatusOperator, Message: MessageOperatorPlan}
	}
	return Result{
		Consumed: true,
		Status:   StatusPending,
		Message:  MessageOperatorPending,
		Timeout:  o.timeout,
	}
}

// expire drops leftover tokens.
func (o *operatorTokens) expire() (Result, bool) {
	if !o.any() {
		return Result{}, false
	}
	o.reset()
	return Result{Status: StatusTimeout, Message: MessageOperatorTimeout}, true
}
