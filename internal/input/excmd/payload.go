package excmd

import "github.com/Vedant-Asati03/vim-engine/internal/engine/buffer"

// Event topics published by the dispatcher.
const (
	TopicSubmit = "command.submit"
	TopicEcho   = "command.echo"
	TopicWrite  = "command.write"
	TopicQuit   = "command.quit"
	TopicEdit   = "command.edit"
	TopicError  = "command.error"
)

// SubmitPayload accompanies command.submit.
type SubmitPayload struct {
	Text string
}

// EchoPayload accompanies command.echo.
type EchoPayload struct {
	Message string
}

// WritePayload accompanies command.write and command.edit.
type WritePayload struct {
	Force    bool
	Args     []string
	Snapshot buffer.View
}

// QuitPayload accompanies command.quit.
type QuitPayload struct {
	Force bool
}

// ErrorPayload accompanies command.error.
type ErrorPayload struct {
	Command string
	Text    string
}
