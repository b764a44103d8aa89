package action

import (
	"github.com/Vedant-Asati03/vim-engine/internal/engine/buffer"
	"github.com/Vedant-Asati03/vim-engine/internal/input/keymap"
	"github.com/Vedant-Asati03/vim-engine/internal/input/mode"
)

// Visual topics.
const (
	TopicSelection = "visual.selection"
	TopicYank      = "visual.yank"
	TopicDelete    = "visual.delete"
)

// Visual statuses.
const (
	StatusVisualSelect = "visual_select"
	StatusVisualYank   = "visual_yank"
	StatusVisualDelete = "visual_delete"
	StatusVisualChange = "visual_change"
	StatusVisualSwap   = "visual_swap"
	StatusNoSelection  = "no_selection"
)

// SelectionPayload accompanies visual.selection.
type SelectionPayload struct {
	Anchor buffer.Position
	Cursor buffer.Position
	Swap   bool
}

// YankPayload accompanies visual.yank.
type YankPayload struct {
	Register string
	Text     string
	Range    [2]buffer.Position
}

// DeletePayload accompanies visual.delete.
type DeletePayload struct {
	Label    string
	Text     string
	Register string
	Range    [2]buffer.Position
}

// anchor returns the visual anchor, fixing it at the cursor when unset.
func anchor(ctx *mode.Context) buffer.Position {
	if !ctx.Visual.Active {
		ctx.Visual = mode.VisualState{Anchor: ctx.Buffer.Cursor(), Active: true}
	}
	return ctx.Visual.Anchor
}

func extendTo(ctx *mode.Context, target buffer.Position) mode.Result {
	buf := ctx.Buffer
	target = buf.ClampPosition(target)
	if err := buf.SetCursor(target); err != nil {
		return errorResult(err)
	}
	a := anchor(ctx)
	if err := buf.SetSelection(a, target); err != nil {
		return errorResult(err)
	}
	ctx.Emit(TopicSelection, SelectionPayload{Anchor: a, Cursor: target})
	return mode.Result{Consumed: true, Status: StatusVisualSelect}
}

// ExtendLeft moves the live end one grapheme left, wrapping to the end of
// the previous line.
func ExtendLeft(ctx *mode.Context, _ keymap.Match) mode.Result {
	return extendTo(ctx, ctx.Buffer.PrevPosition(ctx.Buffer.Cursor()))
}

// ExtendRight moves the live end one grapheme right, wrapping to the start
// of the next line.
func ExtendRight(ctx *mode.Context, _ keymap.Match) mode.Result {
	return extendTo(ctx, ctx.Buffer.NextPosition(ctx.Buffer.Cursor()))
}

// ExtendUp moves the live end one line up.
func ExtendUp(ctx *mode.Context, _ keymap.Match) mode.Result {
	cur := ctx.Buffer.Cursor()
	if cur.Row == 0 {
		return extendTo(ctx, cur)
	}
	return extendTo(ctx, buffer.Pos(cur.Row-1, cur.Col))
}

// ExtendDown moves the live end one line down. On the last line it moves to
// the end of the line.
func ExtendDown(ctx *mode.Context, _ keymap.Match) mode.Result {
	cur := ctx.Buffer.Cursor()
	doc := ctx.Buffer.Document()
	if cur.Row >= doc.LineCount()-1 {
		return extendTo(ctx, buffer.Pos(cur.Row, doc.LineLen(cur.Row)))
	}
	return extendTo(ctx, buffer.Pos(cur.Row+1, cur.Col))
}

// YankSelection copies the selection into the active register.
func YankSelection(ctx *mode.Context, _ keymap.Match) mode.Result {
	sel, ok := ctx.Buffer.Selection()
	if !ok {
		return mode.Result{Status: StatusNoSelection}
	}
	start, end := sel.Ordered()
	text, err := ctx.Buffer.TextRange(start, end)
	if err != nil {
		return errorResult(err)
	}
	reg := activeRegister(ctx)
	yankTo(ctx, reg, text)
	ctx.Emit(TopicYank, YankPayload{Register: reg, Text: text, Range: [2]buffer.Position{start, end}})
	return mode.Result{Consumed: true, Status: StatusVisualYank, Message: reg}
}

// DeleteSelection removes the selection into the active register and
// returns to normal mode.
func DeleteSelection(ctx *mode.Context, _ keymap.Match) mode.Result {
	return removeSelection(ctx, "visual_delete", StatusVisualDelete, mode.Normal)
}

// ChangeSelection removes the selection and enters insert mode.
func ChangeSelection(ctx *mode.Context, _ keymap.Match) mode.Result {
	return removeSelection(ctx, "visual_change", StatusVisualChange, mode.Insert)
}

func removeSelection(ctx *mode.Context, label, status, next string) mode.Result {
	buf := ctx.Buffer
	sel, ok := buf.Selection()
	if !ok {
		return mode.Result{Status: StatusNoSelection}
	}
	start, end := sel.Ordered()
	text, err := buf.TextRange(start, end)
	if err != nil {
		return errorResult(err)
	}
	reg := activeRegister(ctx)
	yankTo(ctx, reg, text)
	if err := buf.ReplaceRange(start, end, "", label); err != nil {
		return errorResult(err)
	}
	buf.ClearSelection()
	ctx.Visual.Anchor = buf.Cursor()
	ctx.Emit(TopicDelete, DeletePayload{
		Label:    label,
		Text:     text,
		Register: reg,
		Range:    [2]buffer.Position{start, end},
	})
	return mode.Result{Consumed: true, SwitchTo: next, Status: status, Message: text}
}

// SwapAnchor exchanges the anchor and the live end of the selection.
func SwapAnchor(ctx *mode.Context, _ keymap.Match) mode.Result {
	buf := ctx.Buffer
	cur := buf.Cursor()
	old := anchor(ctx)
	ctx.Visual.Anchor = cur
	if err := buf.SetCursor(old); err != nil {
		return errorResult(err)
	}
	if err := buf.SetSelection(cur, old); err != nil {
		return errorResult(err)
	}
	ctx.Emit(TopicSelection, SelectionPayload{Anchor: cur, Cursor: old, Swap: true})
	return mode.Result{Consumed: true, Status: StatusVisualSwap}
}
