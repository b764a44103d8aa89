// Package vim turns the tokens a mode could not resolve through its keymap
// into operator execution plans.
//
// The pipeline runs three stages over a token list:
//
//	[count] motion operator
//
//   - CountParser takes leading digit tokens ("0" included).
//   - MotionParser takes the next token as the motion id.
//   - OperatorResolver takes the first remaining token as the operator id.
//
// A plan needs an operator. A lone motion, or an empty token list, yields
// no plan and the caller keeps accumulating.
//
// The grammar is deliberately narrow. Text objects, marks and register
// prefixes are not parsed; RegisterName is always the unnamed register.
//
//	p := vim.NewPipeline(buf)
//	plan, ok := p.Parse([]string{"2", "w", "d"})
//	// plan.OperatorID == "d", plan.MotionID == "w", plan.Count == 2
//	ctx := p.BuildContext(plan)
package vim
