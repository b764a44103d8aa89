package input

import (
	"time"

	"github.com/Vedant-Asati03/vim-engine/internal/engine/buffer"
	"github.com/Vedant-Asati03/vim-engine/internal/input/action"
	"github.com/Vedant-Asati03/vim-engine/internal/input/key"
	"github.com/Vedant-Asati03/vim-engine/internal/telemetry"
)

// Config configures a Session.
type Config struct {
	// Text is the initial buffer text.
	Text string

	// InitialMode is the mode active after construction (default: "normal").
	InitialMode string

	// PendingTimeout is the fallback wait for ambiguous prefixes and
	// operator tokens. Default: 1000ms
	PendingTimeout time.Duration

	// UndoLimit caps the undo timeline. Zero keeps the buffer default.
	UndoLimit int

	// Keymap tunes the default keymap.
	Keymap action.Options

	// SkipDefaults registers no built-in actions or bindings.
	SkipDefaults bool

	// KeymapDirs are searched for *.yaml, *.toml and *.json keymaps,
	// loaded after the defaults.
	KeymapDirs []string

	// KeymapFiles are loaded after KeymapDirs, in order.
	KeymapFiles []string

	// WatchKeymaps reloads the loaded keymap files when they change on disk.
	WatchKeymaps bool

	// Clipboard backs the "+" and "*" registers when set.
	Clipboard buffer.ClipboardProvider

	// Observer receives spans and events. Default: telemetry.Nop()
	Observer telemetry.Observer

	// Clock drives pending timers. Default: time.Now
	Clock func() time.Time
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		InitialMode:    "normal",
		PendingTimeout: key.DefaultTimeout,
		Observer:       telemetry.Nop(),
		Clock:          time.Now,
	}
}
