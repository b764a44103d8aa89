package mode

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Vedant-Asati03/vim-engine/internal/input/excmd"
	"github.com/Vedant-Asati03/vim-engine/internal/input/key"
)

// Command-line topics.
const (
	TopicCommandStart = "command.start"
	TopicCommandEnd   = "command.end"
)

// Command-line statuses.
const (
	StatusEditing       = "editing"
	StatusCommandSubmit = "command_submit"
	MessageCancel       = "command_cancel"
)

// CommandLine is the payload of command.end. Text is the submitted line,
// or empty when the line was cancelled.
type CommandLine struct {
	Text string
}

// CommandMode edits the command line and submits it. The line lives in
// Context.Command.Text; the mode keeps its own copy so command.end still
// carries a line that a submit already cleared.
type CommandMode struct {
	seq  sequencer
	line string
}

// NewCommandMode creates a command mode. A non-positive timeout selects
// DefaultPendingTimeout.
func NewCommandMode(timeout time.Duration) *CommandMode {
	return &CommandMode{seq: newSequencer(Command, timeout)}
}

// Name implements Mode.
func (m *CommandMode) Name() string { return Command }

// Enter starts an empty command line.
func (m *CommandMode) Enter(ctx *Context, prev string) {
	m.seq.reset()
	m.set(ctx, "")
	ctx.SetFlag(FlagCommandActive, true)
	ctx.Emit(TopicCommandStart, nil)
}

// Exit publishes the final text and clears it. A line still present in
// Context.Command.Text was never submitted, so it ends as cancelled.
func (m *CommandMode) Exit(ctx *Context, next string) {
	m.seq.reset()
	ctx.SetFlag(FlagCommandActive, false)
	line := m.line
	if ctx.Command.Text != "" {
		line = ""
	}
	ctx.Emit(TopicCommandEnd, CommandLine{Text: line})
	m.set(ctx, "")
}

func (m *CommandMode) set(ctx *Context, text string) {
	m.line = text
	ctx.Command.Text = text
}

// HandleKey implements Mode.
func (m *CommandMode) HandleKey(ctx *Context, s key.Stroke) Result {
	if res, ok := m.seq.feed(ctx, s); ok {
		return res
	}

	switch {
	case s.Is(key.KeyEscape):
		m.set(ctx, "")
		return Result{Consumed: true, SwitchTo: Normal, Message: MessageCancel}
	case s.Is(key.KeyEnter):
		return SubmitLine(ctx)
	case s.Is(key.KeyBackspace):
		text := m.line
		if text != "" {
			_, size := utf8.DecodeLastRuneInString(text)
			text = text[:len(text)-size]
		}
		m.set(ctx, text)
		if text == "" {
			return Result{Consumed: true, SwitchTo: Normal, Message: MessageCancel}
		}
		return Result{Consumed: true, Status: StatusEditing}
	}
	if text := s.InputText(); text != "" {
		m.set(ctx, m.line+text)
		return Result{Consumed: true, Status: StatusEditing}
	}
	return Result{Status: StatusMiss, Message: "unhandled"}
}

// HandleTimeout implements Mode.
func (m *CommandMode) HandleTimeout(ctx *Context) Result {
	if res, ok := m.seq.expire(ctx); ok {
		return res
	}
	return Result{Status: StatusTimeout}
}

// SubmitLine executes the command-line text, records it in the history,
// clears it and returns to Normal. Without a dispatcher the line is only
// published on command.submit.
func SubmitLine(ctx *Context) Result {
	text := strings.TrimSpace(ctx.Command.Text)
	ctx.Command.History = append(ctx.Command.History, text)
	ctx.Command.Text = ""

	if ctx.Commands == nil {
		ctx.Emit(excmd.TopicSubmit, excmd.SubmitPayload{Text: text})
		return Result{Consumed: true, SwitchTo: Normal, Status: StatusCommandSubmit, Message: text}
	}
	out := ctx.Commands.Execute(text)
	return Result{Consumed: true, SwitchTo: Normal, Status: out.Status, Message: out.Message}
}
