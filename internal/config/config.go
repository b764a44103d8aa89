package config

import (
	"errors"
	"strings"
	"time"

	"github.com/Vedant-Asati03/vim-engine/internal/clipboard"
	"github.com/Vedant-Asati03/vim-engine/internal/input"
	"github.com/Vedant-Asati03/vim-engine/internal/input/action"
	"github.com/Vedant-Asati03/vim-engine/internal/input/key"
	"github.com/Vedant-Asati03/vim-engine/internal/input/mode"
)

// Log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config is the complete engine configuration.
type Config struct {
	Logging   Logging   `toml:"logging" yaml:"logging"`
	Keymap    Keymap    `toml:"keymap" yaml:"keymap"`
	Modes     Modes     `toml:"modes" yaml:"modes"`
	Buffer    Buffer    `toml:"buffer" yaml:"buffer"`
	Clipboard Clipboard `toml:"clipboard" yaml:"clipboard"`
}

// Logging configures the slog handler built by the host.
type Logging struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`
	// Format is "text" or "json".
	Format string `toml:"format" yaml:"format"`
	// File, when set, receives the log instead of stderr.
	File string `toml:"file" yaml:"file"`
}

// Keymap configures the default keymap and user keymap files.
type Keymap struct {
	Dirs             []string `toml:"dirs" yaml:"dirs"`
	Files            []string `toml:"files" yaml:"files"`
	Watch            bool     `toml:"watch" yaml:"watch"`
	SkipDefaults     bool     `toml:"skip_defaults" yaml:"skip_defaults"`
	DefaultTimeoutMS int      `toml:"default_timeout_ms" yaml:"default_timeout_ms"`
	IncludeActions   []string `toml:"include_actions" yaml:"include_actions"`
	ExcludeActions   []string `toml:"exclude_actions" yaml:"exclude_actions"`
	IncludeBindings  []string `toml:"include_bindings" yaml:"include_bindings"`
	ExcludeBindings  []string `toml:"exclude_bindings" yaml:"exclude_bindings"`
}

// Modes configures the mode manager.
type Modes struct {
	Initial          string `toml:"initial" yaml:"initial"`
	PendingTimeoutMS int    `toml:"pending_timeout_ms" yaml:"pending_timeout_ms"`
}

// Buffer configures the edited buffer.
type Buffer struct {
	UndoLimit int `toml:"undo_limit" yaml:"undo_limit"`
}

// Clipboard selects the provider behind the "+" and "*" registers.
type Clipboard struct {
	// System uses the OS clipboard. Otherwise the registers stay in memory.
	System bool `toml:"system" yaml:"system"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: Logging{
			Level:  "info",
			Format: FormatText,
		},
		Keymap: Keymap{
			DefaultTimeoutMS: int(key.DefaultTimeout / time.Millisecond),
		},
		Modes: Modes{
			Initial:          mode.Normal,
			PendingTimeoutMS: int(mode.DefaultPendingTimeout / time.Millisecond),
		},
	}
}

// Validate checks every setting and joins all problems found.
func (c *Config) Validate() error {
	var errs []error
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, &ValidationError{Path: "logging.level", Value: c.Logging.Level, Message: "want debug, info, warn or error"})
	}
	switch c.Logging.Format {
	case FormatText, FormatJSON:
	default:
		errs = append(errs, &ValidationError{Path: "logging.format", Value: c.Logging.Format, Message: "want text or json"})
	}
	if c.Keymap.DefaultTimeoutMS <= 0 {
		errs = append(errs, &ValidationError{Path: "keymap.default_timeout_ms", Value: c.Keymap.DefaultTimeoutMS, Message: "must be positive"})
	}
	if c.Modes.PendingTimeoutMS <= 0 {
		errs = append(errs, &ValidationError{Path: "modes.pending_timeout_ms", Value: c.Modes.PendingTimeoutMS, Message: "must be positive"})
	}
	switch c.Modes.Initial {
	case mode.Normal, mode.Insert, mode.Visual, mode.Command:
	default:
		errs = append(errs, &ValidationError{Path: "modes.initial", Value: c.Modes.Initial, Message: "unknown mode"})
	}
	if c.Buffer.UndoLimit < 0 {
		errs = append(errs, &ValidationError{Path: "buffer.undo_limit", Value: c.Buffer.UndoLimit, Message: "must not be negative"})
	}
	return errors.Join(errs...)
}

// PendingTimeout returns Modes.PendingTimeoutMS as a duration.
func (c *Config) PendingTimeout() time.Duration {
	return time.Duration(c.Modes.PendingTimeoutMS) * time.Millisecond
}

// SessionConfig maps the settings onto a session configuration. Text,
// Observer and Clock are left for the host.
func (c *Config) SessionConfig() input.Config {
	sc := input.DefaultConfig()
	sc.InitialMode = c.Modes.Initial
	sc.PendingTimeout = c.PendingTimeout()
	sc.UndoLimit = c.Buffer.UndoLimit
	sc.SkipDefaults = c.Keymap.SkipDefaults
	sc.KeymapDirs = append([]string(nil), c.Keymap.Dirs...)
	sc.KeymapFiles = append([]string(nil), c.Keymap.Files...)
	sc.WatchKeymaps = c.Keymap.Watch
	sc.Keymap = action.Options{
		DefaultTimeout:  time.Duration(c.Keymap.DefaultTimeoutMS) * time.Millisecond,
		IncludeActions:  c.Keymap.IncludeActions,
		ExcludeActions:  c.Keymap.ExcludeActions,
		IncludeBindings: c.Keymap.IncludeBindings,
		ExcludeBindings: c.Keymap.ExcludeBindings,
	}
	if c.Clipboard.System {
		sc.Clipboard = clipboard.NewSystem()
	} else {
		sc.Clipboard = &clipboard.Memory{}
	}
	return sc
}
