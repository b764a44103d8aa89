package vim

import (
	"strings"

	"github.com/Vedant-Asati03/vim-engine/internal/engine/buffer"
	"github.com/Vedant-Asati03/vim-engine/internal/telemetry"
)

// Draft accumulates what the stages recognized so far.
type Draft struct {
	// Count is the parsed count, 0 when none was typed.
	Count int

	Motion   string
	Operator string

	// RawKeys are the tokens consumed by the stages, in order.
	RawKeys []string
}

// ExecutionPlan is a fully parsed operator invocation.
type ExecutionPlan struct {
	OperatorID   string
	MotionID     string
	Count        int
	RegisterName string
	RawInput     []string
}

// HasCount reports whether a count was typed.
func (p *ExecutionPlan) HasCount() bool {
	return p.Count > 0
}

// EffectiveCount returns the count, or 1 when none was typed.
func (p *ExecutionPlan) EffectiveCount() int {
	if p.Count <= 0 {
		return 1
	}
	return p.Count
}

// Keys returns the raw input joined for display.
func (p *ExecutionPlan) Keys() string {
	return strings.Join(p.RawInput, "")
}

// OperatorContext is what an operator implementation receives.
type OperatorContext struct {
	Buffer       *buffer.Buffer
	Registers    *buffer.RegisterBank
	Count        int
	MotionID     string
	RegisterName string
	Metadata     map[string]string
}

// MotionParser treats the next token as the motion id.
type MotionParser struct{}

// Parse records the motion on d and returns the remaining tokens.
func (MotionParser) Parse(tokens []string, d *Draft) []string {
	if len(tokens) == 0 {
		return tokens
	}
	d.Motion = tokens[0]
	d.RawKeys = append(d.RawKeys, tokens[0])
	return tokens[1:]
}

// OperatorResolver produces a plan from the draft and the remaining tokens.
type OperatorResolver struct{}

// Resolve returns a plan, or false when no operator is present.
func (OperatorResolver) Resolve(tokens []string, d *Draft) (*ExecutionPlan, bool) {
	if len(tokens) == 0 && d.Motion == "" {
		return nil, false
	}
	if len(tokens) > 0 {
		d.Operator = tokens[0]
	}
	if d.Operator == "" {
		return nil, false
	}
	d.RawKeys = append(d.RawKeys, tokens...)

	raw := make([]string, len(d.RawKeys))
	copy(raw, d.RawKeys)
	return &ExecutionPlan{
		OperatorID:   d.Operator,
		MotionID:     d.Motion,
		Count:        d.Count,
		RegisterName: buffer.UnnamedRegister,
		RawInput:     raw,
	}, true
}

// Pipeline chains the count, motion and operator stages.
type Pipeline struct {
	buf       *buffer.Buffer
	registers *buffer.RegisterBank
	observer  telemetry.Observer

	counts    CountParser
	motions   MotionParser
	operators OperatorResolver
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithRegisters overrides the register bank handed to operators.
func WithRegisters(r *buffer.RegisterBank) Option {
	return func(p *Pipeline) {
		if r != nil {
			p.registers = r
		}
	}
}

// WithObserver sets the telemetry observer.
func WithObserver(o telemetry.Observer) Option {
	return func(p *Pipeline) {
		p.observer = telemetry.OrNop(o)
	}
}

// NewPipeline creates a pipeline bound to buf. The buffer's register bank
// is used unless WithRegisters overrides it.
func NewPipeline(buf *buffer.Buffer, opts ...Option) *Pipeline {
	p := &Pipeline{buf: buf, observer: telemetry.Nop()}
	if buf != nil {
		p.registers = buf.Registers()
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse runs every stage over tokens. It never mutates tokens.
func (p *Pipeline) Parse(tokens []string) (*ExecutionPlan, bool) {
	span := p.observer.SpanStart("operator.parse", telemetry.Attrs{
		"keys": strings.Join(tokens, ""),
	})
	defer span.End(nil)

	d := &Draft{}
	rest := p.counts.Parse(tokens, d)
	rest = p.motions.Parse(rest, d)
	plan, ok := p.operators.Resolve(rest, d)
	if ok {
		span.SetAttr("operator", plan.OperatorID)
	}
	return plan, ok
}

// BuildContext packages plan with the pipeline's buffer and registers.
func (p *Pipeline) BuildContext(plan *ExecutionPlan) OperatorContext {
	return OperatorContext{
		Buffer:       p.buf,
		Registers:    p.registers,
		Count:        plan.Count,
		MotionID:     plan.MotionID,
		RegisterName: plan.RegisterName,
		Metadata:     map[string]string{"operator": plan.OperatorID},
	}
}
