package action

import (
	"errors"
	"strings"

	"github.com/Vedant-Asati03/vim-engine/internal/engine/buffer"
	"github.com/Vedant-Asati03/vim-engine/internal/engine/history"
	"github.com/Vedant-Asati03/vim-engine/internal/input/keymap"
	"github.com/Vedant-Asati03/vim-engine/internal/input/mode"
	"github.com/Vedant-Asati03/vim-engine/internal/telemetry"
)

// Core statuses.
const (
	StatusNoop       = "noop"
	StatusCursorMove = "cursor_move"
	StatusDeleteChar = "delete_char"
	StatusUndo       = "undo"
	StatusRedo       = "redo"
	StatusPaste      = "paste"
)

func switchMode(target, message string) mode.ActionFunc {
	return func(*mode.Context, keymap.Match) mode.Result {
		return mode.Result{Consumed: true, SwitchTo: target, Message: message}
	}
}

// EnterInsert switches to insert mode.
var EnterInsert = switchMode(mode.Insert, "enter_insert")

// ExitToNormal switches back to normal mode.
var ExitToNormal = switchMode(mode.Normal, "exit_insert")

// EnterVisual switches to visual mode.
var EnterVisual = switchMode(mode.Visual, "enter_visual")

// EnterCommand switches to command-line mode.
var EnterCommand = switchMode(mode.Command, "enter_command")

// Noop consumes the key.
func Noop(*mode.Context, keymap.Match) mode.Result {
	return mode.Result{Consumed: true, Status: StatusNoop}
}

func moveTo(ctx *mode.Context, p buffer.Position) mode.Result {
	if err := ctx.Buffer.SetCursor(ctx.Buffer.ClampPosition(p)); err != nil {
		return errorResult(err)
	}
	return mode.Result{Consumed: true, Status: StatusCursorMove}
}

func errorResult(err error) mode.Result {
	return mode.Result{Consumed: true, Status: "error", Message: err.Error()}
}

// CursorLeft moves one grapheme left within the line.
func CursorLeft(ctx *mode.Context, _ keymap.Match) mode.Result {
	cur := ctx.Buffer.Cursor()
	if cur.Col == 0 {
		return mode.Result{Consumed: true, Status: StatusCursorMove}
	}
	return moveTo(ctx, ctx.Buffer.PrevPosition(cur))
}

// CursorRight moves one grapheme right, stopping on the last character.
func CursorRight(ctx *mode.Context, _ keymap.Match) mode.Result {
	cur := ctx.Buffer.Cursor()
	next := ctx.Buffer.NextPosition(cur)
	if next.Row != cur.Row || next.Col >= ctx.Buffer.Document().LineLen(cur.Row) {
		return mode.Result{Consumed: true, Status: StatusCursorMove}
	}
	return moveTo(ctx, next)
}

// CursorUp moves one line up, clamping the column.
func CursorUp(ctx *mode.Context, _ keymap.Match) mode.Result {
	cur := ctx.Buffer.Cursor()
	return moveTo(ctx, buffer.Pos(cur.Row-1, cur.Col))
}

// CursorDown moves one line down, clamping the column.
func CursorDown(ctx *mode.Context, _ keymap.Match) mode.Result {
	cur := ctx.Buffer.Cursor()
	return moveTo(ctx, buffer.Pos(cur.Row+1, cur.Col))
}

// CursorTop moves to the start of the document.
func CursorTop(ctx *mode.Context, _ keymap.Match) mode.Result {
	return moveTo(ctx, buffer.Pos(0, 0))
}

// CursorBottom moves to the start of the last line.
func CursorBottom(ctx *mode.Context, _ keymap.Match) mode.Result {
	return moveTo(ctx, buffer.Pos(ctx.Buffer.Document().LineCount()-1, 0))
}

// DeleteChar deletes the grapheme under the cursor into the active
// register. It does nothing past the end of the line.
func DeleteChar(ctx *mode.Context, _ keymap.Match) mode.Result {
	buf := ctx.Buffer
	cur := buf.Cursor()
	if cur.Col >= buf.Document().LineLen(cur.Row) {
		return mode.Result{Consumed: true, Status: StatusDeleteChar}
	}
	next := buf.NextPosition(cur)
	text, err := buf.TextRange(cur, next)
	if err != nil {
		return errorResult(err)
	}
	if err := buf.DeleteRange(cur, next); err != nil {
		return errorResult(err)
	}
	yankTo(ctx, activeRegister(ctx), text)
	return mode.Result{Consumed: true, Status: StatusDeleteChar, Message: text}
}

// Undo reverts the last edit.
func Undo(ctx *mode.Context, _ keymap.Match) mode.Result {
	if err := ctx.Buffer.Undo(); err != nil {
		if errors.Is(err, history.ErrNothingToUndo) {
			return mode.Result{Consumed: true, Status: StatusUndo, Message: "nothing_to_undo"}
		}
		return errorResult(err)
	}
	return mode.Result{Consumed: true, Status: StatusUndo}
}

// Redo re-applies the last undone edit.
func Redo(ctx *mode.Context, _ keymap.Match) mode.Result {
	if err := ctx.Buffer.Redo(); err != nil {
		if errors.Is(err, history.ErrNothingToRedo) {
			return mode.Result{Consumed: true, Status: StatusRedo, Message: "nothing_to_redo"}
		}
		return errorResult(err)
	}
	return mode.Result{Consumed: true, Status: StatusRedo}
}

// PasteAfter puts the active register after the cursor. Linewise text goes
// on a new line below the cursor line.
func PasteAfter(ctx *mode.Context, _ keymap.Match) mode.Result {
	buf := ctx.Buffer
	reg := ctx.Registers.Get(activeRegister(ctx))
	if reg.Text == "" {
		return mode.Result{Consumed: true, Status: StatusPaste, Message: "empty_register"}
	}

	cur := buf.Cursor()
	if reg.Type == buffer.Linewise {
		line := strings.TrimSuffix(reg.Text, "\n")
		end := buffer.Pos(cur.Row, buf.Document().LineLen(cur.Row))
		if err := buf.InsertText(end, "\n"+line); err != nil {
			return errorResult(err)
		}
		return moveTo(ctx, buffer.Pos(cur.Row+1, 0))
	}

	at := cur
	if cur.Col < buf.Document().LineLen(cur.Row) {
		at = buf.NextPosition(cur)
	}
	if err := buf.InsertText(at, reg.Text); err != nil {
		return errorResult(err)
	}
	return mode.Result{Consumed: true, Status: StatusPaste}
}

// Append moves past the character under the cursor and enters insert mode.
func Append(ctx *mode.Context, _ keymap.Match) mode.Result {
	buf := ctx.Buffer
	cur := buf.Cursor()
	if cur.Col < buf.Document().LineLen(cur.Row) {
		if err := buf.SetCursor(buf.NextPosition(cur)); err != nil {
			return errorResult(err)
		}
	}
	return mode.Result{Consumed: true, SwitchTo: mode.Insert, Message: "enter_insert"}
}

// yankTo stores text charwise in reg. The register keeps the text when the
// system clipboard rejects it; that failure is reported as a
// "register.clipboard_error" event.
func yankTo(ctx *mode.Context, reg, text string) {
	if err := ctx.Registers.YankTo(reg, text, buffer.Charwise); err != nil {
		telemetry.OrNop(ctx.Observer).Event("register.clipboard_error", telemetry.Attrs{
			"register": reg,
			"error":    err.Error(),
		})
	}
}

func activeRegister(ctx *mode.Context) string {
	if name := ctx.Buffer.ActiveRegister(); name != "" {
		return name
	}
	return buffer.UnnamedRegister
}
